package controller

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/dto"
	apperrors "crm/internal/errors"
	"crm/internal/response"
)

const maxOrderProducts = 100

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, in dto.OrderInput) (*domain.Order, error)
}

type OrderLister interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// createOrderRequest keeps customerId optional at decode time so that an
// absent field is told apart from an explicit 0.
type createOrderRequest struct {
	CustomerID *uint      `json:"customerId"`
	ProductIDs []uint     `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate,omitempty"`
}

type OrderController struct {
	useCase CreateOrderUseCase
	lister  OrderLister
	logger  *zap.Logger
}

func NewOrderController(useCase CreateOrderUseCase, lister OrderLister, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		lister:  lister,
		logger:  logger,
	}
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)

	orders, err := c.lister.ListOrders(r.Context())
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, dto.ListOrdersResponse{
		TraceID: traceID,
		Orders:  dto.NewOrderDTOs(orders),
	})
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	var req createOrderRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be a valid order object",
		})
		return
	}

	if validationErr := validateOrderRequest(req); validationErr != nil {
		ve, _ := apperrors.IsValidationError(validationErr)
		response.WriteValidationError(w, c.logger, traceID, ve.Message, ve.Details...)
		return
	}

	order, err := c.useCase.CreateOrder(r.Context(), dto.OrderInput{
		CustomerID: *req.CustomerID,
		ProductIDs: req.ProductIDs,
		OrderDate:  req.OrderDate,
	})
	if err != nil {
		response.WriteError(w, logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusCreated, dto.CreateOrderResponse{
		TraceID: traceID,
		Order:   dto.NewOrderDTO(*order),
		Message: "Order created successfully",
	})
}

// validateOrderRequest checks request shape only. Unknown ids, including 0,
// and an empty product list are left to the use case.
func validateOrderRequest(req createOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.CustomerID == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId is required",
		})
	}

	if len(req.ProductIDs) > maxOrderProducts {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productIds",
			Message: "productIds exceeds maximum of 100",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
