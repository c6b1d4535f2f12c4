package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/dto"
	apperrors "crm/internal/errors"
	"crm/internal/response"
)

const maxBulkRows = 1000

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, in dto.CustomerInput) (*domain.Customer, error)
	BulkCreateCustomers(ctx context.Context, inputs []dto.CustomerInput) (*dto.BulkCreateResult, error)
}

type CustomerController struct {
	service CustomerService
	logger  *zap.Logger
}

func NewCustomerController(service CustomerService, logger *zap.Logger) *CustomerController {
	return &CustomerController{
		service: service,
		logger:  logger,
	}
}

func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)

	customers, err := c.service.ListCustomers(r.Context())
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, dto.ListCustomersResponse{
		TraceID:   traceID,
		Customers: dto.NewCustomerDTOs(customers),
	})
}

func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var in dto.CustomerInput
	if err := response.DecodeJSON(r, &in); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be a valid customer object",
		})
		return
	}

	customer, err := c.service.CreateCustomer(r.Context(), in)
	if err != nil {
		response.WriteError(w, logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusCreated, dto.CreateCustomerResponse{
		TraceID:  traceID,
		Customer: dto.NewCustomerDTO(*customer),
		Message:  "Customer created successfully",
	})
}

func (c *CustomerController) BulkCreate(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var inputs []dto.CustomerInput
	if err := response.DecodeJSON(r, &inputs); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be a JSON array of customers",
		})
		return
	}

	if len(inputs) > maxBulkRows {
		response.WriteValidationError(w, c.logger, traceID, "too many rows", apperrors.ValidationDetail{
			Field:   "body",
			Message: "bulk request exceeds maximum of 1000 rows",
		})
		return
	}

	result, err := c.service.BulkCreateCustomers(r.Context(), inputs)
	if err != nil {
		var rowErrors []string
		if result != nil {
			rowErrors = result.Errors
		}
		response.WriteErrorWithRows(w, logger, traceID, err, rowErrors)
		return
	}

	statusCode := http.StatusOK
	if result.Status == dto.BulkPartial {
		statusCode = http.StatusPartialContent
	} else if result.Status == dto.BulkAllFailed {
		statusCode = http.StatusUnprocessableEntity
	}

	response.WriteJSON(w, c.logger, statusCode, dto.BulkCreateCustomersResponse{
		TraceID:   traceID,
		Status:    string(result.Status),
		Customers: dto.NewCustomerDTOs(result.Customers),
		Errors:    result.Errors,
	})
}
