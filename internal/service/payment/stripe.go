package payment

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/templui/storefront/internal/config"
)

const ProviderStripe = "stripe"

type StripeProvider struct {
	sessions      checkoutsession.Client
	webhookSecret string
}

func NewStripeProvider(cfg *config.Config) *StripeProvider {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{
			Timeout: cfg.StripeTimeout,
		},
		// One attempt per checkout request, no SDK-level retries
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     slogLeveledLogger{},
	})

	slog.Info("stripe provider initialized", "app_env", cfg.AppEnv)

	return newStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret, backend)
}

func newStripeProvider(secretKey, webhookSecret string, backend stripe.Backend) *StripeProvider {
	return &StripeProvider{
		sessions: checkoutsession.Client{
			B:   backend,
			Key: secretKey,
		},
		webhookSecret: webhookSecret,
	}
}

func (s *StripeProvider) Name() string {
	return ProviderStripe
}

func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (string, error) {
	params.Context = ctx

	sess, err := s.sessions.New(params)
	if err != nil {
		return "", newProviderError("checkout.session.create", err)
	}

	slog.Info("stripe checkout created", "session_id", sess.ID, "mode", SessionMode(params))
	return sess.ID, nil
}

func (s *StripeProvider) VerifyEvent(payload []byte, signature string) (stripe.Event, error) {
	return VerifyEvent(payload, signature, s.webhookSecret)
}

// VerifyEvent checks the Stripe-Signature header against the exact payload
// bytes and returns the parsed event.
func VerifyEvent(payload []byte, signature, secret string) (stripe.Event, error) {
	if signature == "" {
		return stripe.Event{}, fmt.Errorf("%w: missing Stripe-Signature header", ErrSignatureInvalid)
	}

	// Use ConstructEventWithOptions to ignore API version mismatch
	// Stripe's API versions are backwards compatible, so this is safe
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		secret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	return event, nil
}

// slogLeveledLogger routes stripe-go's internal logging through slog
type slogLeveledLogger struct{}

func (slogLeveledLogger) Debugf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", ProviderStripe)
}

func (slogLeveledLogger) Infof(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...), "component", ProviderStripe)
}

func (slogLeveledLogger) Warnf(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...), "component", ProviderStripe)
}

func (slogLeveledLogger) Errorf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), "component", ProviderStripe)
}
