package dto

import (
	"crm/internal/domain"
)

// CustomerInput is the single named input record shared by single and bulk
// customer creation.
type CustomerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

type BulkStatus string

const (
	BulkAllSuccess BulkStatus = "ALL_SUCCESS"
	BulkPartial    BulkStatus = "PARTIAL"
	BulkAllFailed  BulkStatus = "ALL_FAILED"
)

// BulkCreateResult partitions a batch: Customers holds the persisted rows and
// Errors one "Row <n>: <reason>" entry per rejected row, in input order.
type BulkCreateResult struct {
	Status    BulkStatus
	Customers []domain.Customer
	Errors    []string
}

type CustomerDTO struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

func NewCustomerDTO(c domain.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func NewCustomerDTOs(customers []domain.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(customers))
	for _, c := range customers {
		out = append(out, NewCustomerDTO(c))
	}
	return out
}

type CreateCustomerResponse struct {
	TraceID  string      `json:"traceId"`
	Customer CustomerDTO `json:"customer"`
	Message  string      `json:"message"`
}

type BulkCreateCustomersResponse struct {
	TraceID   string        `json:"traceId"`
	Status    string        `json:"status"`
	Customers []CustomerDTO `json:"customers"`
	Errors    []string      `json:"errors"`
}

type ListCustomersResponse struct {
	TraceID   string        `json:"traceId"`
	Customers []CustomerDTO `json:"customers"`
}
