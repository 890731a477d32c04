package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/service/auth"
	authModels "github.com/m04kA/StudioBookingService/internal/service/auth/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAuthenticator struct {
	identity *authModels.Identity
	err      error
	gotToken string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, raw string) (*authModels.Identity, error) {
	f.gotToken = raw
	return f.identity, f.err
}

type observation struct {
	method, path string
	status       int
}

type fakeHTTPMetrics struct {
	mu   sync.Mutex
	seen []observation
}

func (m *fakeHTTPMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observation{method, path, status})
}

func customer() *authModels.Identity {
	return &authModels.Identity{UserID: "u-1", Email: "amina@example.com", Role: domain.RoleCustomer}
}

func echoIdentity(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", identity.UserID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	t.Run("valid bearer token", func(t *testing.T) {
		authn := &fakeAuthenticator{identity: customer()}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
		req.Header.Set("Authorization", "Bearer abc.def")

		Auth(authn, nopLogger{})(echoIdentity(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "u-1", rec.Header().Get("X-User"))
		assert.Equal(t, "abc.def", authn.gotToken)
	})

	t.Run("missing header", func(t *testing.T) {
		authn := &fakeAuthenticator{identity: customer()}
		rec := httptest.NewRecorder()

		Auth(authn, nopLogger{})(echoIdentity(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, authn.gotToken)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		Auth(&fakeAuthenticator{identity: customer()}, nopLogger{})(echoIdentity(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	for name, err := range map[string]error{
		"revoked token":  auth.ErrTokenRevoked,
		"invalid token":  auth.ErrUnauthenticated,
		"internal error": errors.New("redis down"),
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer token")

			Auth(&fakeAuthenticator{err: err}, nopLogger{})(echoIdentity(t)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		identity *authModels.Identity
		want     int
	}{
		{name: "no session", want: http.StatusUnauthorized},
		{name: "customer", identity: customer(), want: http.StatusForbidden},
		{name: "admin", identity: &authModels.Identity{UserID: "a-1", Role: domain.RoleAdmin}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/roster", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()

			RequireAdmin(nopLogger{})(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestGetRequester(t *testing.T) {
	_, ok := GetRequester(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), &authModels.Identity{
		UserID: "a-1",
		Email:  "owner@example.com",
		Role:   domain.RoleAdmin,
	})
	requester, ok := GetRequester(ctx)
	require.True(t, ok)
	assert.Equal(t, "a-1", requester.UserID)
	assert.Equal(t, "owner@example.com", requester.Email)
	assert.True(t, requester.IsAdmin)
}

func newLimiter(t *testing.T, rps float64, burst int, trusted ...string) *RateLimiter {
	t.Helper()
	limiter, err := NewRateLimiter(rps, burst, trusted, nopLogger{})
	require.NoError(t, err)
	return limiter
}

func created() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func TestRateLimiter(t *testing.T) {
	h := newLimiter(t, 0.001, 2).Middleware()(created())

	call := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, call("41.90.1.1:40000"))
	assert.Equal(t, http.StatusCreated, call("41.90.1.1:40001"))
	assert.Equal(t, http.StatusTooManyRequests, call("41.90.1.1:40002"))

	// У другого клиента свой лимит
	assert.Equal(t, http.StatusCreated, call("41.90.1.2:40000"))
}

func TestRateLimiter_IgnoresForwardedHeadersFromUntrustedPeer(t *testing.T) {
	limiter := newLimiter(t, 1, 2)
	h := limiter.Middleware()(created())

	allowed := 0
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", nil)
		req.RemoteAddr = "203.0.113.9:51000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.1.%d.%d", i/250, i%250))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.2.0.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusCreated {
			allowed++
		}
	}

	assert.LessOrEqual(t, allowed, 3)
	assert.Equal(t, 1, limiter.Len())
}

func TestRateLimiter_TrustedProxy(t *testing.T) {
	h := newLimiter(t, 0.001, 1, "10.0.0.0/8").Middleware()(created())

	call := func(client string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = "10.0.0.5:8080"
		req.Header.Set("X-Forwarded-For", client+", 10.0.0.5")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, call("41.90.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("41.90.1.1"))
	assert.Equal(t, http.StatusCreated, call("41.90.1.2"))
}

func TestRateLimiter_SweepRemovesIdleClients(t *testing.T) {
	limiter := newLimiter(t, 1, 2)
	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.getLimiter("41.90.1.1")
	now = now.Add(DefaultIdleTTL / 2)
	limiter.getLimiter("41.90.1.2")
	require.Equal(t, 2, limiter.Len())

	now = now.Add(DefaultIdleTTL/2 + time.Second)
	assert.Equal(t, 1, limiter.Sweep())
	assert.Equal(t, 1, limiter.Len())

	now = now.Add(DefaultIdleTTL)
	assert.Equal(t, 1, limiter.Sweep())
	assert.Zero(t, limiter.Len())
}

func TestNewRateLimiter_InvalidProxy(t *testing.T) {
	_, err := NewRateLimiter(1, 1, []string{"not-an-ip"}, nopLogger{})
	assert.Error(t, err)

	_, err = NewRateLimiter(1, 1, []string{"10.0.0.0/33"}, nopLogger{})
	assert.Error(t, err)
}

func TestClientIP(t *testing.T) {
	t.Run("untrusted peer", func(t *testing.T) {
		limiter := newLimiter(t, 1, 1)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		req.Header.Set("X-Real-IP", "198.51.100.7")
		req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")

		assert.Equal(t, "192.0.2.10", limiter.clientIP(req))
	})

	t.Run("trusted proxy", func(t *testing.T) {
		limiter := newLimiter(t, 1, 1, "192.0.2.10")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		assert.Equal(t, "192.0.2.10", limiter.clientIP(req))

		req.Header.Set("X-Real-IP", "198.51.100.7")
		assert.Equal(t, "198.51.100.7", limiter.clientIP(req))

		req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")
		assert.Equal(t, "203.0.113.5", limiter.clientIP(req))

		req.Header.Set("X-Forwarded-For", "garbage")
		assert.Equal(t, "198.51.100.7", limiter.clientIP(req))
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("keeps client id", func(t *testing.T) {
		const id = "6f1c2a8e-3b7d-4c55-9a0e-2d4f8b1e7c90"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, id, seen)
		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.NotEqual(t, "<script>", seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	collector := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(collector))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	require.Len(t, collector.seen, 1)
	assert.Equal(t, observation{http.MethodGet, "/bookings/{bookingId}", http.StatusNotFound}, collector.seen[0])
}
