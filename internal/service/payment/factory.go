package payment

import (
	"fmt"
	"log/slog"

	"github.com/templui/storefront/internal/config"
)

// NewProvider creates the payment provider from configuration.
// Missing secrets are a startup failure, never a per-request one.
func NewProvider(cfg *config.Config) (Provider, error) {
	slog.Info("initializing payment provider", "provider", ProviderStripe)

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("%w: STRIPE_SECRET_KEY is required", ErrConfigurationMissing)
	}
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("%w: STRIPE_WEBHOOK_SECRET is required", ErrConfigurationMissing)
	}

	return NewStripeProvider(cfg), nil
}
