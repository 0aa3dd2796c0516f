package payment

import (
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/templui/storefront/internal/model"
	"github.com/templui/storefront/internal/validation"
)

// RedirectURLs are the provider-hosted checkout's exits back to the storefront.
type RedirectURLs struct {
	Success string
	Cancel  string
}

// BuildSessionParams maps an order request onto a checkout session request.
// It performs no I/O. Failures wrap ErrInvalidRequest.
func BuildSessionParams(order model.OrderRequest, urls RedirectURLs) (*stripe.CheckoutSessionParams, error) {
	err := validation.ValidateOrder(order)
	if err != nil {
		return nil, invalidRequest("%v", err)
	}

	name := strings.TrimSpace(order.Name)
	priceID := strings.TrimSpace(order.PriceID)
	hasInline := name != "" || order.Price != nil

	switch {
	case order.IsSubscription() && hasInline:
		return nil, invalidRequest("provide either name and price, or priceId, not both")
	case order.IsSubscription():
		return subscriptionParams(priceID, urls), nil
	case name != "" && order.Price != nil:
		err = validation.ValidateProductName(name)
		if err != nil {
			return nil, invalidRequest("%v", err)
		}
		if *order.Price <= 0 {
			return nil, invalidRequest("price must be a positive amount in cents")
		}
		return paymentParams(name, *order.Price, urls), nil
	default:
		return nil, invalidRequest("name and price, or priceId, are required")
	}
}

func paymentParams(name string, unitAmount int64, urls RedirectURLs) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(model.CurrencyUSD),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
					UnitAmount: stripe.Int64(unitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(urls.Success),
		CancelURL:  stripe.String(urls.Cancel),
	}
}

func subscriptionParams(priceID string, urls RedirectURLs) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(urls.Success),
		CancelURL:  stripe.String(urls.Cancel),
	}
}

// SessionMode returns the checkout mode of built params, for logs and metrics.
func SessionMode(params *stripe.CheckoutSessionParams) string {
	if params == nil || params.Mode == nil {
		return ""
	}
	return *params.Mode
}
