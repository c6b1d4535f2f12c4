package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/dto"
	apperrors "crm/internal/errors"
)

type mockProductService struct {
	ListProductsFunc  func(ctx context.Context) ([]domain.Product, error)
	CreateProductFunc func(ctx context.Context, in dto.ProductInput) (*domain.Product, error)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.ListProductsFunc(ctx)
}

func (m *mockProductService) CreateProduct(ctx context.Context, in dto.ProductInput) (*domain.Product, error) {
	return m.CreateProductFunc(ctx, in)
}

func TestCreate_Success(t *testing.T) {
	var got dto.ProductInput
	svc := &mockProductService{
		CreateProductFunc: func(ctx context.Context, in dto.ProductInput) (*domain.Product, error) {
			got = in
			return &domain.Product{ID: 2, Name: in.Name, Price: decimal.RequireFromString("15.5")}, nil
		},
	}
	ctrl := NewProductController(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Mouse","price":15.5}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, dto.Amount("15.5"), got.Price)

	var body dto.CreateProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "15.50", body.Product.Price)
	assert.Equal(t, "Product created successfully", body.Message)
}

func TestCreate_MissingFields(t *testing.T) {
	ctrl := NewProductController(&mockProductService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
	assert.Contains(t, rec.Body.String(), "price is required")
}

func TestCreate_OutOfRange(t *testing.T) {
	svc := &mockProductService{
		CreateProductFunc: func(ctx context.Context, in dto.ProductInput) (*domain.Product, error) {
			return nil, apperrors.NewOutOfRangeError("price", "Price must be positive")
		},
	}
	ctrl := NewProductController(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":"Pen","price":"0"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "OUT_OF_RANGE")
}

func TestList(t *testing.T) {
	svc := &mockProductService{
		ListProductsFunc: func(ctx context.Context) ([]domain.Product, error) {
			return []domain.Product{{ID: 1, Name: "Pen", Price: decimal.NewFromInt(2)}}, nil
		},
	}
	ctrl := NewProductController(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.ListProductsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 1)
	assert.Equal(t, "2.00", body.Products[0].Price)
}
