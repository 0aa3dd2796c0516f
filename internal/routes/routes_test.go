package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/templui/storefront"
	"github.com/templui/storefront/internal/app"
	"github.com/templui/storefront/internal/config"
	"github.com/templui/storefront/internal/db"
	"github.com/templui/storefront/internal/metrics"
	"github.com/templui/storefront/internal/middleware"
	"github.com/templui/storefront/internal/repository"
	"github.com/templui/storefront/internal/service"
	"github.com/templui/storefront/internal/service/payment"
)

const testWebhookSecret = "whsec_routes_test"

type stubProvider struct {
	calls int
}

func (p *stubProvider) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (string, error) {
	p.calls++
	return "sess_test_1", nil
}

func (p *stubProvider) VerifyEvent(payload []byte, signature string) (stripe.Event, error) {
	return payment.VerifyEvent(payload, signature, testWebhookSecret)
}

func (p *stubProvider) Name() string { return "stub" }

func newTestApp(t *testing.T, rateLimit int) (*app.App, *stubProvider) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Init(ctx, "sqlite", filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(ctx, conn.DB, "sqlite"))

	cfg := &config.Config{
		AppName:              "Storefront",
		AppEnv:               "development",
		StripePublishableKey: "pk_test_1",
		StripePriceIDMonthly: "price_monthly",
		SuccessURL:           "http://localhost/success",
		CancelURL:            "http://localhost/cancel",
	}

	catalog, err := service.NewCatalogService(storefront.ContentFS, cfg.PlanPriceID)
	require.NoError(t, err)

	m := metrics.New()
	provider := &stubProvider{}
	a := &app.App{
		Cfg:             cfg,
		DB:              conn,
		Metrics:         m,
		PaymentProvider: provider,
		EventService: service.NewEventService(
			repository.NewEventRepository(conn),
			repository.NewCustomerStatusRepository(conn),
			nil,
			m,
		),
		CatalogService:  catalog,
		CheckoutLimiter: middleware.NewRateLimiter(rateLimit, time.Minute, false),
	}
	t.Cleanup(func() { _ = a.Close() })

	return a, provider
}

func TestCheckoutRoute(t *testing.T) {
	a, provider := newTestApp(t, 30)
	h := SetupRoutes(a)

	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(`{"name":"Premium Mug","price":2500}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sessionId":"sess_test_1"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, 1, provider.calls)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/create-checkout-session", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestCheckoutRouteRateLimited(t *testing.T) {
	a, provider := newTestApp(t, 2)
	h := SetupRoutes(a)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", strings.NewReader(`{"priceId":"price_monthly"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 2, provider.calls)
}

func TestWebhookRouteRecordsInvoicePaid(t *testing.T) {
	a, _ := newTestApp(t, 30)
	h := SetupRoutes(a)

	payload := `{"id":"evt_1","object":"event","type":"invoice.paid","created":1700000000,"data":{"object":{"id":"in_1","object":"invoice","customer":"cus_1"}}}`
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  testWebhookSecret,
	})

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signed.Header)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true}`, rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics.WebhookEvents.WithLabelValues("invoice.paid")))

	history, err := a.EventService.CustomerHistory(context.Background(), "cus_1")
	require.NoError(t, err)
	require.NotNil(t, history.Status)
	assert.Equal(t, "paid", history.Status.Status)
	assert.Len(t, history.Events, 1)
}

func TestWebhookRouteRejectsBadSignature(t *testing.T) {
	a, _ := newTestApp(t, 30)
	h := SetupRoutes(a)

	payload := `{"id":"evt_1","object":"event","type":"invoice.paid","created":1700000000,"data":{"object":{"id":"in_1","object":"invoice","customer":"cus_1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1700000000,v1=00ff")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Webhook Error: ")
	assert.Equal(t, 0, testutil.CollectAndCount(a.Metrics.WebhookEvents))
}

func TestStorefrontPages(t *testing.T) {
	a, _ := newTestApp(t, 30)
	h := SetupRoutes(a)

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/", http.StatusOK, `data-price="2500"`},
		{"/", http.StatusOK, `data-price-id="price_monthly"`},
		{"/success", http.StatusOK, "Payment successful"},
		{"/cancel", http.StatusOK, "Checkout canceled"},
		{"/assets/js/checkout.js", http.StatusOK, "redirectToCheckout"},
		{"/assets/css/output.css", http.StatusOK, ".bg-indigo-600{"},
		{"/healthz", http.StatusOK, "ok"},
		{"/metrics", http.StatusOK, "storefront_"},
		{"/nope", http.StatusNotFound, "Page not found"},
		{"/missing/page", http.StatusNotFound, "/missing/page"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.status, rec.Code, tt.path)
		assert.Contains(t, rec.Body.String(), tt.contains, tt.path)
	}
}
