package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/storefront/internal/config"
	"github.com/templui/storefront/internal/ctxkeys"
	"github.com/templui/storefront/internal/metrics"
)

func TestRateLimiterSlidingWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, false)
	defer rl.Close()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))

	now = now.Add(10 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.hits)
}

func TestRateLimitRespondsTooManyRequests(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, false)
	defer rl.Close()

	calls := 0
	h := RateLimit(rl)(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h(rec, req)
		require.Equal(t, want, rec.Code, "request %d", i)
	}

	assert.Equal(t, 1, calls)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[::1]:8080"
	assert.Equal(t, "::1", getClientIP(req, true))

	req.Header.Set("X-Real-IP", "9.9.9.9")
	assert.Equal(t, "9.9.9.9", getClientIP(req, true))
	assert.Equal(t, "::1", getClientIP(req, false))

	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "1.1.1.1", getClientIP(req, true))
	assert.Equal(t, "::1", getClientIP(req, false))
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, false)
	defer rl.Close()

	calls := 0
	h := RateLimit(rl)(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	var codes []int
	for i := range 5 {
		req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rec := httptest.NewRecorder()
		h(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 429, 429, 429}, codes)
	assert.Equal(t, 2, calls)
}

func TestRateLimitBehindTrustedProxy(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, true)
	defer rl.Close()

	h := RateLimit(rl)(func(w http.ResponseWriter, r *http.Request) {})

	for _, client := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", client+", 10.0.0.1")
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, client)
	}
}

func TestRequestLoggingSetsRequestIDAndObservesRoute(t *testing.T) {
	m := metrics.New()
	mux := http.NewServeMux()

	var seenID string
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		seenID = ctxkeys.RequestID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})

	h := Chain(mux, RequestLogging(m))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))

	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", seenID)
}

func TestSecurityHeadersIncludeNonce(t *testing.T) {
	var templNonce string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		templNonce = templ.GetNonce(r.Context())
	}), NonceMiddleware, SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	require.NotEmpty(t, templNonce)
	assert.Contains(t, csp, "'nonce-"+templNonce+"'")
	assert.Contains(t, csp, "https://js.stripe.com")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestConfigMiddlewareStoresSanitizedConfig(t *testing.T) {
	cfg := &config.Config{AppName: "Storefront", StripeSecretKey: "sk_live", StripePublishableKey: "pk_live"}

	var got *config.Config
	var path string
	h := Config(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.Config(r.Context())
		path = ctxkeys.URLPath(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/success", nil))

	require.NotNil(t, got)
	assert.Empty(t, got.StripeSecretKey)
	assert.Equal(t, "pk_live", got.StripePublishableKey)
	assert.Equal(t, "/success", path)
}

func TestRateLimitBodyIsJSON(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute, false)
	defer rl.Close()

	rec := httptest.NewRecorder()
	RateLimit(rl)(func(http.ResponseWriter, *http.Request) {})(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["error"], "Too many requests")
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}
