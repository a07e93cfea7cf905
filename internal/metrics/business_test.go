package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine matches a Prometheus sample by name, a partial label pattern and value.
// The exporter adds otel scope labels, so labels are matched loosely.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}

func TestBusinessMetrics_Records(t *testing.T) {
	provider, err := NewProvider("biz_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "biz_test")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "crypto", "encrypt", StatusSuccess)
	bm.RecordOperation(ctx, "crypto", "encrypt", StatusSuccess)
	bm.RecordOperation(ctx, "crypto", "decrypt", StatusError)
	bm.RecordOperation(ctx, "password", "password_verify", StatusMismatch)
	bm.RecordDuration(ctx, "totp", "totp_validate", 5*time.Millisecond, StatusInvalid)
	bm.RecordDuration(ctx, "totp", "totp_validate", 7*time.Millisecond, StatusInvalid)

	output := scrape(t, provider)

	assertMetricLine(t, output, `biz_test_operations_total`,
		`domain="crypto".*operation="encrypt".*status="success"`, `2`)
	assertMetricLine(t, output, `biz_test_operations_total`,
		`domain="crypto".*operation="decrypt".*status="error"`, `1`)
	assertMetricLine(t, output, `biz_test_operations_total`,
		`domain="password".*operation="password_verify".*status="mismatch"`, `1`)
	assertMetricLine(t, output, `biz_test_operation_duration_seconds_count`,
		`domain="totp".*operation="totp_validate".*status="invalid"`, `2`)
}

func TestObserve(t *testing.T) {
	provider, err := NewProvider("observe_test")
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "observe_test")
	require.NoError(t, err)

	Observe(context.Background(), bm, "password", "password_hash", time.Now(), StatusSuccess)

	output := scrape(t, provider)
	assertMetricLine(t, output, `observe_test_operations_total`,
		`domain="password".*operation="password_hash".*status="success"`, `1`)
	assertMetricLine(t, output, `observe_test_operation_duration_seconds_count`,
		`domain="password".*operation="password_hash".*status="success"`, `1`)
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusFromError(nil))
	assert.Equal(t, StatusError, StatusFromError(errors.New("boom")))
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()
	assert.IsType(t, &NoOpBusinessMetrics{}, bm)

	assert.NotPanics(t, func() {
		bm.RecordOperation(context.Background(), "crypto", "encrypt", StatusSuccess)
		bm.RecordDuration(context.Background(), "crypto", "encrypt", time.Millisecond, StatusError)
		Observe(context.Background(), bm, "totp", "totp_setup", time.Now(), StatusSuccess)
	})
}
