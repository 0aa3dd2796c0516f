package payment

import (
	"context"

	"github.com/stripe/stripe-go/v81"
)

// Provider defines what the storefront needs from the payment provider
type Provider interface {
	// CreateCheckoutSession creates a hosted checkout session and returns its id
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (string, error)

	// VerifyEvent authenticates a raw webhook payload and parses it
	VerifyEvent(payload []byte, signature string) (stripe.Event, error)

	// Name returns the provider name
	Name() string
}
