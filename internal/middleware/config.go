package middleware

import (
	"net/http"

	"github.com/templui/storefront/internal/config"
	"github.com/templui/storefront/internal/ctxkeys"
)

// Config middleware adds the sanitized app configuration to the request context.
// Provider secrets never reach templates.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), safe)
			ctx = ctxkeys.WithURLPath(ctx, r.URL.Path)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
