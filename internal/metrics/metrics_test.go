package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Checkout("payment", ResultCreated)
	m.Checkout("payment", ResultCreated)
	m.Checkout("", ResultInvalid)
	m.WebhookEvent("invoice.paid")
	m.WebhookEvent(TypeUnhandled)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CheckoutSessions.WithLabelValues("payment", ResultCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckoutSessions.WithLabelValues("unknown", ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookEvents.WithLabelValues("invoice.paid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookEvents.WithLabelValues(TypeUnhandled)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Checkout("subscription", ResultProviderError)
	m.ObserveRequest(http.MethodPost, "/webhook", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_checkout_sessions_total{mode="subscription",result="provider_error"} 1`)
	assert.Contains(t, string(body), `storefront_http_request_duration_seconds_count{method="POST",route="/webhook",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
