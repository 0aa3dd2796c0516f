package routes

import (
	"net/http"

	"github.com/templui/storefront/assets"
	"github.com/templui/storefront/internal/app"
	"github.com/templui/storefront/internal/handler"
	"github.com/templui/storefront/internal/middleware"
	"github.com/templui/storefront/internal/service/payment"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.CatalogService)
	checkout := handler.NewCheckoutHandler(app.PaymentProvider, payment.RedirectURLs{
		Success: app.Cfg.SuccessURL,
		Cancel:  app.Cfg.CancelURL,
	}, app.Metrics)
	webhook := handler.NewWebhookHandler(app.PaymentProvider, app.EventService)
	health := handler.NewHealthHandler(app.DB)

	rateLimit := middleware.RateLimit(app.CheckoutLimiter)

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assets.AssetsFS))))

	// Storefront
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /success", home.SuccessPage)
	mux.HandleFunc("GET /cancel", home.CancelPage)

	// Checkout and provider callbacks. Registered without a method so the
	// handlers answer 405 with Allow: POST themselves.
	mux.HandleFunc("/create-checkout-session", rateLimit(checkout.CreateSession))
	mux.HandleFunc("/webhook", webhook.Receive)

	// Operations
	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", app.Metrics.Handler())

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.NonceMiddleware, // must run before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging(app.Metrics), // last, sees the matched route
	)
}
