package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/storefront/internal/model"
)

func price(v int64) *int64 { return &v }

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name    string
		order   model.OrderRequest
		wantErr string
	}{
		{name: "one-time", order: model.OrderRequest{Name: "Premium Mug", Price: price(2500)}},
		{name: "subscription", order: model.OrderRequest{PriceID: "price_123"}},
		{name: "empty passes field rules", order: model.OrderRequest{}},
		{name: "price above provider max", order: model.OrderRequest{Name: "Car", Price: price(100000000)}, wantErr: "price must be at most 99999999"},
		{name: "name too long", order: model.OrderRequest{Name: strings.Repeat("a", 251), Price: price(1)}, wantErr: "name is too long"},
		{name: "price id too long", order: model.OrderRequest{PriceID: strings.Repeat("p", 256)}, wantErr: "priceId is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrder(tt.order)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateProductName(t *testing.T) {
	require.NoError(t, ValidateProductName("  Sticker Pack "))
	assert.EqualError(t, ValidateProductName("   "), "name is required")
	assert.Error(t, ValidateProductName(strings.Repeat("é", 251)))
}
