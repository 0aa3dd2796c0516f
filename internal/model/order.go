package model

import "strings"

// OrderRequest is the browser's description of what to buy.
// Exactly one shape is valid: Name+Price for a one-time product,
// or PriceID alone for a subscription plan.
type OrderRequest struct {
	Name    string `json:"name" validate:"max=250"`
	Price   *int64 `json:"price" validate:"omitempty,lte=99999999"` // minor units (cents)
	PriceID string `json:"priceId" validate:"max=255"`
}

// IsSubscription reports whether the request names a recurring price.
func (o OrderRequest) IsSubscription() bool {
	return strings.TrimSpace(o.PriceID) != ""
}

const (
	CheckoutModePayment      = "payment"
	CheckoutModeSubscription = "subscription"
)

// CurrencyUSD is the only currency one-time products are sold in.
const CurrencyUSD = "usd"
