package ui

import (
	"context"

	"github.com/templui/storefront/internal/ctxkeys"
)

const defaultAppName = "Storefront"

func appName(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
		return cfg.AppName
	}
	return defaultAppName
}

func pageTitle(ctx context.Context, title string) string {
	return title + " · " + appName(ctx)
}

// publishableKey is read from the sanitized config the Config middleware
// puts in ctx. Stripe.js is initialised with it in checkout.js.
func publishableKey(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil {
		return cfg.StripePublishableKey
	}
	return ""
}
