package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{2500, "$25.00"},
		{800, "$8.00"},
		{5, "$0.05"},
		{250000, "$2,500.00"},
		{-199, "-$1.99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCents(tt.cents), "cents=%d", tt.cents)
	}
}

func TestOrderRequestIsSubscription(t *testing.T) {
	assert.True(t, OrderRequest{PriceID: "price_123"}.IsSubscription())
	assert.False(t, OrderRequest{Name: "Premium Mug"}.IsSubscription())
	assert.False(t, OrderRequest{Name: "Premium Mug", PriceID: "  "}.IsSubscription())
}
