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

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in dto.ProductInput) (*domain.Product, error)
}

type ProductController struct {
	service ProductService
	logger  *zap.Logger
}

func NewProductController(service ProductService, logger *zap.Logger) *ProductController {
	return &ProductController{
		service: service,
		logger:  logger,
	}
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)

	products, err := c.service.ListProducts(r.Context())
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusOK, dto.ListProductsResponse{
		TraceID:  traceID,
		Products: dto.NewProductDTOs(products),
	})
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := response.TraceID(r)

	var in dto.ProductInput
	if err := response.DecodeJSON(r, &in); err != nil {
		c.logger.Warn("invalid JSON body", zap.String("traceId", traceID), zap.Error(err))
		response.WriteValidationError(w, c.logger, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be a valid product object",
		})
		return
	}

	if err := validateProductInput(in); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		response.WriteValidationError(w, c.logger, traceID, ve.Message, ve.Details...)
		return
	}

	product, err := c.service.CreateProduct(r.Context(), in)
	if err != nil {
		response.WriteError(w, c.logger, traceID, err)
		return
	}

	response.WriteJSON(w, c.logger, http.StatusCreated, dto.CreateProductResponse{
		TraceID: traceID,
		Product: dto.NewProductDTO(*product),
		Message: "Product created successfully",
	})
}

func validateProductInput(in dto.ProductInput) error {
	var details []apperrors.ValidationDetail

	if in.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if in.Price == "" {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price is required"})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
