package directory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"pomade/config"
	"pomade/infras/directory"
	"pomade/infras/otel/mocks"
	"pomade/shared/failure"
)

func newDirectory(baseURL string) directory.Directory {
	cfg := &config.Config{}
	cfg.External.Directory.BaseURL = baseURL
	cfg.External.Directory.TimeoutSeconds = 2

	return directory.New(cfg, mocks.NewOtel())
}

func TestDirectory_LookupByEmail(t *testing.T) {
	t.Run("returns the profile on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/by-email/jamie@example.com", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"status": "success",
				"data": {
					"name": "Jamie Rivera",
					"email": "jamie@example.com",
					"phoneNumber": "555-0199",
					"role": "customer",
					"createdAt": "2026-01-15T10:00:00Z"
				}
			}`))
		}))
		defer server.Close()

		profile, err := newDirectory(server.URL).LookupByEmail(context.Background(), "jamie@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "Jamie Rivera", profile.Name)
		assert.Equal(t, "555-0199", profile.PhoneNumber)
		assert.Equal(t, "customer", profile.Role)
	})

	t.Run("maps 404 to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status": "error", "message": "User not found"}`))
		}))
		defer server.Close()

		_, err := newDirectory(server.URL).LookupByEmail(context.Background(), "ghost@example.com")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("rejects non-success envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "error", "message": "directory degraded"}`))
		}))
		defer server.Close()

		_, err := newDirectory(server.URL).LookupByEmail(context.Background(), "jamie@example.com")

		assert.Error(t, err)
	})

	t.Run("rejects unexpected status codes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newDirectory(server.URL).LookupByEmail(context.Background(), "jamie@example.com")

		assert.Error(t, err)
	})

	t.Run("unreachable directory", func(t *testing.T) {
		_, err := newDirectory("http://127.0.0.1:1").LookupByEmail(context.Background(), "jamie@example.com")

		assert.Error(t, err)
	})
}
