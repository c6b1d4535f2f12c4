package usecase

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/dto"
	apperrors "crm/internal/errors"
)

const (
	msgNoProducts      = "Order must include at least one product"
	msgInvalidCustomer = "Invalid customer ID"
	msgInvalidProducts = "Some product IDs are invalid"
)

type CustomerFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.Customer, error)
}

type ProductResolver interface {
	GetProductsByIDs(ctx context.Context, ids []uint) ([]domain.Product, []uint, error)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error)
}

type Metrics interface {
	OrderCreated()
}

type CreateOrderUseCase struct {
	customers CustomerFinder
	products  ProductResolver
	placer    OrderPlacer
	metrics   Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewCreateOrderUseCase(
	customers CustomerFinder,
	products ProductResolver,
	placer OrderPlacer,
	metrics Metrics,
	logger *zap.Logger,
) *CreateOrderUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &CreateOrderUseCase{
		customers: customers,
		products:  products,
		placer:    placer,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateOrder resolves the customer and every product outside any
// transaction, snapshots the total, then hands the order to the placer.
// Any failed lookup aborts the whole order.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, in dto.OrderInput) (*domain.Order, error) {
	uc.logger.Info("create order started", zap.Uint("customerId", in.CustomerID), zap.Int("productCount", len(in.ProductIDs)))

	if len(in.ProductIDs) == 0 {
		return nil, apperrors.NewInvalidInputError(msgNoProducts)
	}

	if _, err := uc.customers.FindByID(ctx, in.CustomerID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError(msgInvalidCustomer, in.CustomerID)
		}
		return nil, err
	}

	products, missing, err := uc.products.GetProductsByIDs(ctx, in.ProductIDs)
	if err != nil {
		return nil, err
	}
	// A repeated id resolves to a single row, so it fails the count like an
	// unknown one.
	if len(missing) > 0 || len(products) != len(in.ProductIDs) {
		uc.logger.Warn("unresolved products in order",
			zap.Uints("missingIds", missing),
			zap.Int("requested", len(in.ProductIDs)),
			zap.Int("resolved", len(products)),
		)
		return nil, apperrors.NewNotFoundError(msgInvalidProducts, missing...)
	}
	if len(products) == 0 {
		return nil, apperrors.NewInvalidInputError(msgNoProducts)
	}

	productIDs := make([]uint, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	orderDate := uc.now().UTC()
	if in.OrderDate != nil {
		orderDate = in.OrderDate.UTC()
	}

	order, err := uc.placer.PlaceOrder(ctx, domain.Order{
		CustomerID:  in.CustomerID,
		ProductIDs:  productIDs,
		TotalAmount: domain.TotalPrice(products),
		OrderDate:   orderDate,
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.OrderCreated()
	return order, nil
}

type nopMetrics struct{}

func (nopMetrics) OrderCreated() {}
