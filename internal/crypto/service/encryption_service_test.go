package service

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	apperrors "github.com/allisson/aether/internal/errors"
)

func newTestEncryptionService(
	t *testing.T,
	variant cryptoDomain.CipherVariant,
	serializer Serializer,
) (EncryptionService, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	svc, err := NewEncryptionService(variant, NewRandomSource(), serializer, fs)
	require.NoError(t, err)
	return svc, fs
}

func TestNewEncryptionService(t *testing.T) {
	t.Run("Success_BothVariants", func(t *testing.T) {
		for _, variant := range []cryptoDomain.CipherVariant{cryptoDomain.AES128, cryptoDomain.AES256} {
			svc, err := NewEncryptionService(variant, NewRandomSource(), NewJSONSerializer(), afero.NewMemMapFs())
			require.NoError(t, err)
			assert.NotNil(t, svc)
		}
	})

	t.Run("Error_UnknownVariant", func(t *testing.T) {
		svc, err := NewEncryptionService(
			cryptoDomain.CipherVariant("des"),
			NewRandomSource(),
			NewJSONSerializer(),
			afero.NewMemMapFs(),
		)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestEncryptionService_Bytes(t *testing.T) {
	svc, _ := newTestEncryptionService(t, cryptoDomain.AES256, NewJSONSerializer())
	plaintext := []byte("Hello, World!")

	t.Run("Success_RoundTrip", func(t *testing.T) {
		envelope, err := svc.Encrypt(plaintext, "correct horse")
		require.NoError(t, err)
		assert.Len(t, envelope, 32)

		decrypted, err := svc.Decrypt(envelope, "correct horse")
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("Success_EmptyPlaintext", func(t *testing.T) {
		envelope, err := svc.Encrypt([]byte{}, "pass")
		require.NoError(t, err)
		assert.Len(t, envelope, 32)

		decrypted, err := svc.Decrypt(envelope, "pass")
		require.NoError(t, err)
		assert.Empty(t, decrypted)
	})

	t.Run("Success_NonDeterministic", func(t *testing.T) {
		e1, err := svc.Encrypt(plaintext, "pass")
		require.NoError(t, err)
		e2, err := svc.Encrypt(plaintext, "pass")
		require.NoError(t, err)
		assert.NotEqual(t, e1, e2)
	})

	t.Run("Success_CrossInstance", func(t *testing.T) {
		other, _ := newTestEncryptionService(t, cryptoDomain.AES256, NewYAMLSerializer())

		envelope, err := svc.Encrypt(plaintext, "shared")
		require.NoError(t, err)

		decrypted, err := other.Decrypt(envelope, "shared")
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("Error_WrongPassphrase", func(t *testing.T) {
		envelope, err := svc.Encrypt(plaintext, "right")
		require.NoError(t, err)

		got, err := svc.Decrypt(envelope, "wrong")
		assertNotRecovered(t, plaintext, got, err)
	})

	t.Run("Error_VariantMismatch", func(t *testing.T) {
		aes128, _ := newTestEncryptionService(t, cryptoDomain.AES128, NewJSONSerializer())

		envelope, err := svc.Encrypt(plaintext, "pass")
		require.NoError(t, err)

		got, err := aes128.Decrypt(envelope, "pass")
		assertNotRecovered(t, plaintext, got, err)
	})

	t.Run("Error_EmptyPassphrase", func(t *testing.T) {
		_, err := svc.Encrypt(plaintext, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		_, err = svc.Decrypt(make([]byte, 32), "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("Error_TruncatedEnvelope", func(t *testing.T) {
		_, err := svc.Decrypt(make([]byte, 20), "pass")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

func TestEncryptionService_String(t *testing.T) {
	svc, _ := newTestEncryptionService(t, cryptoDomain.AES128, NewJSONSerializer())

	t.Run("Success_RoundTrip", func(t *testing.T) {
		envelope, err := svc.EncryptString("héllo wörld ✓", "pass")
		require.NoError(t, err)

		decrypted, err := svc.DecryptString(envelope, "pass")
		require.NoError(t, err)
		assert.Equal(t, "héllo wörld ✓", decrypted)
	})

	t.Run("Error_InvalidUTF8Plaintext", func(t *testing.T) {
		envelope, err := svc.Encrypt([]byte{0xff, 0xfe, 0xfd}, "pass")
		require.NoError(t, err)

		_, err = svc.DecryptString(envelope, "pass")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_EmptyPassphrase", func(t *testing.T) {
		_, err := svc.EncryptString("text", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestEncryptionService_Object(t *testing.T) {
	record := sampleRecord{
		Name:   "config",
		Count:  7,
		Tags:   []string{"x"},
		Labels: map[string]string{"k": "v"},
	}

	for _, serializer := range []Serializer{NewJSONSerializer(), NewYAMLSerializer()} {
		t.Run(serializer.Name(), func(t *testing.T) {
			svc, _ := newTestEncryptionService(t, cryptoDomain.AES256, serializer)

			t.Run("Success_RoundTrip", func(t *testing.T) {
				envelope, err := svc.EncryptObject(record, "pass")
				require.NoError(t, err)

				var out sampleRecord
				require.NoError(t, svc.DecryptObject(envelope, "pass", &out))
				assert.Equal(t, record, out)
			})

			t.Run("Error_UnsupportedType", func(t *testing.T) {
				_, err := svc.EncryptObject(withFunc{Name: "x", Fn: func() {}}, "pass")
				assert.ErrorIs(t, err, apperrors.ErrUnsupportedType)
			})

			t.Run("Error_EmptyPassphrase", func(t *testing.T) {
				_, err := svc.EncryptObject(record, "")
				assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			})
		})
	}

	t.Run("Error_UndecodablePlaintext", func(t *testing.T) {
		svc, _ := newTestEncryptionService(t, cryptoDomain.AES256, NewJSONSerializer())

		envelope, err := svc.EncryptString("{not json", "pass")
		require.NoError(t, err)

		var out sampleRecord
		err = svc.DecryptObject(envelope, "pass", &out)
		assert.ErrorIs(t, err, apperrors.ErrFormat)
	})
}

func TestEncryptionService_Files(t *testing.T) {
	t.Run("Success_EncryptToFileCreatesDirectories", func(t *testing.T) {
		svc, fs := newTestEncryptionService(t, cryptoDomain.AES256, NewJSONSerializer())

		err := svc.EncryptToFile([]byte("file contents"), "pass", "/data/nested/out.enc")
		require.NoError(t, err)

		exists, err := afero.DirExists(fs, "/data/nested")
		require.NoError(t, err)
		assert.True(t, exists)

		decrypted, err := svc.DecryptFromFile("/data/nested/out.enc", "pass")
		require.NoError(t, err)
		assert.Equal(t, []byte("file contents"), decrypted)
	})

	t.Run("Success_EncryptFileDecryptFile", func(t *testing.T) {
		svc, fs := newTestEncryptionService(t, cryptoDomain.AES128, NewJSONSerializer())
		require.NoError(t, afero.WriteFile(fs, "/in/plain.txt", []byte("line one\nline two\n"), 0o600))

		require.NoError(t, svc.EncryptFile("/in/plain.txt", "/out/plain.txt.enc", "pass"))

		raw, err := afero.ReadFile(fs, "/out/plain.txt.enc")
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "line one")

		require.NoError(t, svc.DecryptFile("/out/plain.txt.enc", "/restored/plain.txt", "pass"))

		restored, err := afero.ReadFile(fs, "/restored/plain.txt")
		require.NoError(t, err)
		assert.Equal(t, "line one\nline two\n", string(restored))
	})

	t.Run("Error_MissingSource", func(t *testing.T) {
		svc, _ := newTestEncryptionService(t, cryptoDomain.AES256, NewJSONSerializer())

		err := svc.EncryptFile("/missing.txt", "/out.enc", "pass")
		assert.Error(t, err)

		_, err = svc.DecryptFromFile("/missing.enc", "pass")
		assert.Error(t, err)
	})

	t.Run("Error_EmptyPassphraseDoesNotWrite", func(t *testing.T) {
		svc, fs := newTestEncryptionService(t, cryptoDomain.AES256, NewJSONSerializer())

		err := svc.EncryptToFile([]byte("x"), "", "/out/x.enc")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		exists, err := afero.Exists(fs, "/out/x.enc")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Error_WrongPassphraseDoesNotWrite", func(t *testing.T) {
		svc, fs := newTestEncryptionService(t, cryptoDomain.AES256, NewJSONSerializer())
		require.NoError(t, svc.EncryptToFile([]byte("secret"), "right", "/x.enc"))

		err := svc.DecryptFile("/x.enc", "/x.txt", "wrong")
		if err != nil {
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			exists, existsErr := afero.Exists(fs, "/x.txt")
			require.NoError(t, existsErr)
			assert.False(t, exists)
		}
	})
}
