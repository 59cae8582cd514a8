package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeAuthenticator struct {
	tokens map[string]string
	err    error
}

func (a fakeAuthenticator) Authenticate(_ context.Context, idToken string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	uid, ok := a.tokens[idToken]
	if !ok {
		return "", fmt.Errorf("%w: invalid token", domain.ErrAuth)
	}
	return uid, nil
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	uid, _ := GetUserID(r.Context())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(uid))
}

func TestAuth(t *testing.T) {
	auth := Auth(fakeAuthenticator{tokens: map[string]string{"good": "user-1"}}, logger.NewNop())
	h := auth(http.HandlerFunc(echoUserID))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "валидный токен", header: "Bearer good", wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "регистр схемы", header: "bearer good", wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "нет заголовка", header: "", wantStatus: http.StatusUnauthorized},
		{name: "другая схема", header: "Basic Zm9v", wantStatus: http.StatusUnauthorized},
		{name: "неверный токен", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuth_ProviderUnavailable(t *testing.T) {
	auth := Auth(fakeAuthenticator{err: fmt.Errorf("%w: firebase down", domain.ErrExternalService)}, logger.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer good")

	auth(http.HandlerFunc(echoUserID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	uid, ok := GetUserID(WithUserID(context.Background(), "user-7"))
	assert.True(t, ok)
	assert.Equal(t, "user-7", uid)
}

func TestInternalToken(t *testing.T) {
	h := InternalToken("s3cret", logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for token, want := range map[string]int{
		"s3cret": http.StatusNoContent,
		"wrong":  http.StatusUnauthorized,
		"":       http.StatusUnauthorized,
	} {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/internal/bookings/1/status", nil)
		if token != "" {
			req.Header.Set(InternalTokenHeader, token)
		}
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, want, rec.Code, "token=%q", token)
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	h := limiter.Middleware(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", nil)
		req.RemoteAddr = remote
		if forwarded != "" {
			req.Header.Set("X-Forwarded-For", forwarded)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1234", ""))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5678", ""))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:9999", ""))

	// Другой клиент не затронут
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1234", ""))
}

func TestRateLimiter_IgnoresForwardedFromUntrustedPeer(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	h := limiter.Middleware(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 429, 429, 429}, codes)
	assert.Len(t, limiter.visitors, 1)
}

func TestRateLimiter_TrustedProxyForwardsClient(t *testing.T) {
	limiter, err := NewRateLimiter(1, 1).WithTrustedProxies([]string{"10.0.0.0/8", "192.0.2.1"})
	require.NoError(t, err)
	h := limiter.Middleware(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("203.0.113.5"))
	assert.Equal(t, http.StatusOK, call("203.0.113.6, 192.0.2.1"))
	// Подделанный левый адрес не помогает: учитывается адрес, добавленный прокси
	assert.Equal(t, http.StatusTooManyRequests, call("1.2.3.4, 203.0.113.5"))

	_, err = NewRateLimiter(1, 1).WithTrustedProxies([]string{"not-an-ip"})
	assert.Error(t, err)
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(60, 5)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		limiter.limiter(fmt.Sprintf("203.0.113.%d", i))
	}
	require.Len(t, limiter.visitors, 50)

	now = now.Add(limiter.idleTTL)
	limiter.limiter("198.51.100.1")

	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "198.51.100.1")
}

type observation struct {
	method string
	route  string
	status int
}

type fakeMetrics struct{ observed []observation }

func (m *fakeMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	m.observed = append(m.observed, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/42", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, observation{method: http.MethodGet, route: "/api/v1/bookings/{bookingId}", status: http.StatusNotFound}, m.observed[0])
}
