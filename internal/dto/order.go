package dto

import (
	"time"

	"crm/internal/domain"
)

type OrderInput struct {
	CustomerID uint       `json:"customerId"`
	ProductIDs []uint     `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate,omitempty"`
}

type OrderDTO struct {
	ID          uint      `json:"id"`
	CustomerID  uint      `json:"customerId"`
	ProductIDs  []uint    `json:"productIds"`
	TotalAmount string    `json:"totalAmount"`
	OrderDate   time.Time `json:"orderDate"`
}

func NewOrderDTO(o domain.Order) OrderDTO {
	productIDs := o.ProductIDs
	if productIDs == nil {
		productIDs = []uint{}
	}
	return OrderDTO{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ProductIDs:  productIDs,
		TotalAmount: o.TotalAmount.StringFixed(2),
		OrderDate:   o.OrderDate,
	}
}

func NewOrderDTOs(orders []domain.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderDTO(o))
	}
	return out
}

type CreateOrderResponse struct {
	TraceID string   `json:"traceId"`
	Order   OrderDTO `json:"order"`
	Message string   `json:"message"`
}

type ListOrdersResponse struct {
	TraceID string     `json:"traceId"`
	Orders  []OrderDTO `json:"orders"`
}
