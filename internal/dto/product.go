package dto

import (
	"bytes"
	"encoding/json"

	"crm/internal/domain"
)

// Amount is a decimal carried as text. Both "12.50" and a bare 12.50 decode
// into it, so malformed prices reach the price validator instead of failing
// JSON decoding.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(data)
	return nil
}

type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Amount `json:"price"`
	Stock       *int   `json:"stock,omitempty"`
}

type ProductDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
	Price       string `json:"price"`
}

func NewProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price.StringFixed(2),
	}
}

func NewProductDTOs(products []domain.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductDTO(p))
	}
	return out
}

type CreateProductResponse struct {
	TraceID string     `json:"traceId"`
	Product ProductDTO `json:"product"`
	Message string     `json:"message"`
}

type ListProductsResponse struct {
	TraceID  string       `json:"traceId"`
	Products []ProductDTO `json:"products"`
}
