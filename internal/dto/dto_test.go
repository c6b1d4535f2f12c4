package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/domain"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Amount
	}{
		{"quoted", `{"price":"12.50"}`, "12.50"},
		{"number", `{"price":12.5}`, "12.5"},
		{"garbage string", `{"price":"abc"}`, "abc"},
		{"negative", `{"price":-5}`, "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in ProductInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			assert.Equal(t, tt.want, in.Price)
		})
	}
}

func TestNewProductDTO_FormatsPrice(t *testing.T) {
	p := domain.Product{ID: 3, Name: "Laptop", Price: decimal.RequireFromString("999.9"), Stock: 4}

	got := NewProductDTO(p)

	assert.Equal(t, "999.90", got.Price)
	assert.Equal(t, 4, got.Stock)
}

func TestNewOrderDTO_EmptyProducts(t *testing.T) {
	o := domain.Order{ID: 1, CustomerID: 2, TotalAmount: decimal.RequireFromString("25.5"), OrderDate: time.Unix(0, 0).UTC()}

	got := NewOrderDTO(o)

	assert.Equal(t, []uint{}, got.ProductIDs)
	assert.Equal(t, "25.50", got.TotalAmount)
}

func TestNewCustomerDTOs_NeverNil(t *testing.T) {
	assert.NotNil(t, NewCustomerDTOs(nil))
}
