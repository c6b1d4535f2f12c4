package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order keeps the total computed when it was placed; later price changes on
// its products do not affect it.
type Order struct {
	ID          uint
	CustomerID  uint
	ProductIDs  []uint
	TotalAmount decimal.Decimal
	OrderDate   time.Time
}
