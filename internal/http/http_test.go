package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/allisson/aether/internal/config"
	cryptoHTTP "github.com/allisson/aether/internal/crypto/http"
	cryptoMocks "github.com/allisson/aether/internal/crypto/service/mocks"
	"github.com/allisson/aether/internal/metrics"
	passwordDomain "github.com/allisson/aether/internal/password/domain"
	passwordHTTP "github.com/allisson/aether/internal/password/http"
	passwordMocks "github.com/allisson/aether/internal/password/service/mocks"
	totpHTTP "github.com/allisson/aether/internal/totp/http"
	totpMocks "github.com/allisson/aether/internal/totp/service/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestServer() *Server {
	return NewServer("127.0.0.1", 0, discardLogger)
}

func testConfig() *config.Config {
	return &config.Config{
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 1,
		RateLimitBurst:          2,
	}
}

func testHandlers() Handlers {
	return Handlers{
		Crypto: cryptoHTTP.NewCryptoHandler(&cryptoMocks.MockEncryptionService{}, discardLogger),
		Password: passwordHTTP.NewPasswordHandler(
			&passwordMocks.MockHashService{},
			passwordDomain.DefaultPasswordRule(),
			discardLogger,
		),
		TOTP: totpHTTP.NewTOTPHandler(&totpMocks.MockAuthenticator{}, nil, totpHTTP.Options{}, discardLogger),
	}
}

func setupTestRouter(t *testing.T, cfg *config.Config, provider *metrics.Provider) *Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := createTestServer()
	server.SetupRouter(ctx, cfg, testHandlers(), provider)
	return server
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Run("Ready", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	})

	t.Run("NotReadyAfterShutdown", func(t *testing.T) {
		server := createTestServer()
		require.NoError(t, server.Shutdown(context.Background()))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready"}`, w.Body.String())
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger))
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})
	router.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	})

	w := serve(router, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, w.Code)

	requestID := w.Header().Get("X-Request-Id")
	parsed, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	w = serve(router, http.MethodGet, "/fail", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := serve(router, http.MethodGet, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSetupRouter_Routes(t *testing.T) {
	server := setupTestRouter(t, &config.Config{}, nil)
	handler := server.GetHandler()
	require.NotNil(t, handler)

	t.Run("Health", func(t *testing.T) {
		w := serve(handler, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})

	t.Run("Ready", func(t *testing.T) {
		w := serve(handler, http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	// Malformed bodies prove the route is registered and reaches the handler.
	for _, path := range []string{
		"/v1/crypto/encrypt",
		"/v1/crypto/decrypt",
		"/v1/passwords/hash",
		"/v1/passwords/verify",
		"/v1/passwords/check",
		"/v1/totp/setup",
		"/v1/totp/validate",
	} {
		t.Run(path, func(t *testing.T) {
			w := serve(handler, http.MethodPost, path, "{")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	t.Run("PasswordCheck", func(t *testing.T) {
		w := serve(handler, http.MethodPost, "/v1/passwords/check", `{"password":"abc1"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, false, response["valid"])
	})

	t.Run("NotFound", func(t *testing.T) {
		w := serve(handler, http.MethodGet, "/nonexistent", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("NoMetricsEndpoint", func(t *testing.T) {
		w := serve(handler, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSetupRouter_RateLimit(t *testing.T) {
	server := setupTestRouter(t, testConfig(), nil)
	handler := server.GetHandler()

	for range 2 {
		w := serve(handler, http.MethodPost, "/v1/passwords/check", `{"password":"abc"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(handler, http.MethodPost, "/v1/passwords/check", `{"password":"abc"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Probes are never throttled.
	w = serve(handler, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_RecordsHTTPMetrics(t *testing.T) {
	provider, err := metrics.NewProvider("router_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server := setupTestRouter(t, &config.Config{}, provider)
	serve(server.GetHandler(), http.MethodGet, "/health", "")

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "router_test_http_requests_total")
}

func TestIPRateLimiter_EvictIdle(t *testing.T) {
	limiter := newIPRateLimiter(1, 1)
	limiter.get("10.0.0.1")

	limiter.evictIdle(time.Now().Add(-time.Minute))
	_, ok := limiter.limiters.Load("10.0.0.1")
	assert.True(t, ok)

	limiter.evictIdle(time.Now().Add(time.Minute))
	_, ok = limiter.limiters.Load("10.0.0.1")
	assert.False(t, ok)
}

func TestRateLimitMiddleware_StopsCleanupWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	RateLimitMiddleware(ctx, 1, 1, discardLogger)
	cancel()
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("127.0.0.1", 0, discardLogger, provider)

	w := serve(metricsServer.GetHandler(), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestServer_StartWithoutRouter(t *testing.T) {
	assert.Error(t, createTestServer().Start(context.Background()))
}

type fakeRunnable struct {
	startErr error
	stop     chan struct{}
	stopped  atomic.Bool
}

func newFakeRunnable(startErr error) *fakeRunnable {
	return &fakeRunnable{startErr: startErr, stop: make(chan struct{})}
}

func (f *fakeRunnable) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stop
	return nil
}

func (f *fakeRunnable) Shutdown(ctx context.Context) error {
	if f.stopped.CompareAndSwap(false, true) {
		close(f.stop)
	}
	return nil
}

func TestServe(t *testing.T) {
	t.Run("ShutsDownOnContextCancel", func(t *testing.T) {
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

		api := createTestServer()
		api.SetupRouter(context.Background(), &config.Config{}, Handlers{}, nil)
		other := newFakeRunnable(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- Serve(ctx, 5*time.Second, discardLogger, api, other)
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
		assert.True(t, other.stopped.Load())
	})

	t.Run("StopsOthersWhenOneFails", func(t *testing.T) {
		failing := newFakeRunnable(errors.New("bind: address already in use"))
		healthy := newFakeRunnable(nil)

		err := Serve(context.Background(), time.Second, discardLogger, failing, healthy)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
		assert.True(t, healthy.stopped.Load())
	})
}
