package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// nonceKey is separate from templ's own key so SecurityHeaders can read it
type nonceKey struct{}

// NonceMiddleware generates a per-request CSP nonce. Templates read it via
// templ.GetNonce(ctx), SecurityHeaders via GetNonce.
func NonceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := generateNonce()
		if err != nil {
			slog.Error("failed to generate csp nonce", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := templ.WithNonce(r.Context(), nonce)
		ctx = context.WithValue(ctx, nonceKey{}, nonce)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}

// 16 bytes, 24 base64 chars
func generateNonce() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// SecurityHeaders sets CSP and the usual hardening headers. Stripe.js is
// loaded from js.stripe.com and talks to api.stripe.com.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scriptSrc := "'self' https://js.stripe.com"
		if nonce := GetNonce(r.Context()); nonce != "" {
			scriptSrc = fmt.Sprintf("%s 'nonce-%s'", scriptSrc, nonce)
		}

		csp := fmt.Sprintf("default-src 'self'; "+
			"script-src %s; "+
			"style-src 'self' 'unsafe-inline'; "+
			"connect-src 'self' https://api.stripe.com; "+
			"frame-src https://js.stripe.com https://checkout.stripe.com; "+
			"img-src 'self' data: https://*.stripe.com; "+
			"base-uri 'self'; "+
			"frame-ancestors 'none'", scriptSrc)

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
