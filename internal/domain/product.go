package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          uint
	Name        string
	Description string
	Stock       int
	Price       decimal.Decimal
}

// TotalPrice sums the current prices of products using exact decimal
// arithmetic.
func TotalPrice(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}
