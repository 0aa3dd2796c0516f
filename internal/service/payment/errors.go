package payment

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v81"
)

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrSignatureInvalid     = errors.New("webhook signature verification failed")
	ErrConfigurationMissing = errors.New("payment configuration missing")
)

// ProviderError wraps a failed call to the payment provider.
// Message carries the provider's own message verbatim.
type ProviderError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func newProviderError(op string, err error) *ProviderError {
	msg := err.Error()

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		msg = stripeErr.Msg
	}

	return &ProviderError{Op: op, Message: msg, Err: err}
}

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
