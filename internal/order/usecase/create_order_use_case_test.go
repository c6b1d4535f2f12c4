package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/dto"
	apperrors "crm/internal/errors"
)

// Mock implementations
type mockCustomerFinder struct {
	FindByIDFunc func(ctx context.Context, id uint) (*domain.Customer, error)
}

func (m *mockCustomerFinder) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockProductResolver struct {
	GetProductsByIDsFunc func(ctx context.Context, ids []uint) ([]domain.Product, []uint, error)
}

func (m *mockProductResolver) GetProductsByIDs(ctx context.Context, ids []uint) ([]domain.Product, []uint, error) {
	return m.GetProductsByIDsFunc(ctx, ids)
}

type mockOrderPlacer struct {
	calls          int
	PlaceOrderFunc func(ctx context.Context, order domain.Order) (*domain.Order, error)
}

func (m *mockOrderPlacer) PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	m.calls++
	return m.PlaceOrderFunc(ctx, order)
}

type countingMetrics struct {
	orders int
}

func (m *countingMetrics) OrderCreated() { m.orders++ }

func existingCustomer() *mockCustomerFinder {
	return &mockCustomerFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Customer, error) {
			return &domain.Customer{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}
}

func pricedProducts(prices map[uint]string) *mockProductResolver {
	return &mockProductResolver{
		GetProductsByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, []uint, error) {
			var found []domain.Product
			var missing []uint
			seen := map[uint]bool{}
			for _, id := range ids {
				if seen[id] {
					continue
				}
				seen[id] = true
				price, ok := prices[id]
				if !ok {
					missing = append(missing, id)
					continue
				}
				found = append(found, domain.Product{ID: id, Price: decimal.RequireFromString(price)})
			}
			return found, missing, nil
		},
	}
}

func echoPlacer() *mockOrderPlacer {
	return &mockOrderPlacer{
		PlaceOrderFunc: func(ctx context.Context, order domain.Order) (*domain.Order, error) {
			order.ID = 1
			return &order, nil
		},
	}
}

// Tests

func TestCreateOrder_SumsExactly(t *testing.T) {
	metrics := &countingMetrics{}
	placer := echoPlacer()
	uc := NewCreateOrderUseCase(existingCustomer(), pricedProducts(map[uint]string{1: "10.00", 2: "15.50"}), placer, metrics, zap.NewNop())

	order, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 7, ProductIDs: []uint{2, 1}})

	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, "25.50", order.TotalAmount.StringFixed(2))
	assert.Equal(t, []uint{1, 2}, order.ProductIDs)
	assert.Equal(t, uint(7), order.CustomerID)
	assert.Equal(t, 1, metrics.orders)
}

func TestCreateOrder_NoFloatDrift(t *testing.T) {
	uc := NewCreateOrderUseCase(existingCustomer(), pricedProducts(map[uint]string{1: "0.10", 2: "0.20"}), echoPlacer(), nil, zap.NewNop())

	order, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{1, 2}})

	require.NoError(t, err)
	assert.Equal(t, "0.3", order.TotalAmount.String())
}

func TestCreateOrder_DefaultsDateToNow(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := NewCreateOrderUseCase(existingCustomer(), pricedProducts(map[uint]string{1: "1.00"}), echoPlacer(), nil, zap.NewNop())
	uc.now = func() time.Time { return fixed }

	order, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{1}})

	require.NoError(t, err)
	assert.Equal(t, fixed, order.OrderDate)
}

func TestCreateOrder_ExplicitDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	given := time.Date(2024, 12, 24, 18, 0, 0, 0, loc)
	uc := NewCreateOrderUseCase(existingCustomer(), pricedProducts(map[uint]string{1: "1.00"}), echoPlacer(), nil, zap.NewNop())

	order, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{1}, OrderDate: &given})

	require.NoError(t, err)
	assert.True(t, given.Equal(order.OrderDate))
	assert.Equal(t, time.UTC, order.OrderDate.Location())
}

func TestCreateOrder_EmptyProductsBeforeResolution(t *testing.T) {
	customers := &mockCustomerFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Customer, error) {
			t.Fatal("customer must not be resolved for an empty order")
			return nil, nil
		},
	}
	uc := NewCreateOrderUseCase(customers, &mockProductResolver{}, &mockOrderPlacer{}, nil, zap.NewNop())

	_, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1})

	ie, ok := apperrors.IsInvalidInputError(err)
	require.True(t, ok)
	assert.Equal(t, "Order must include at least one product", ie.Message)
}

func TestCreateOrder_RepeatedProductFailsCount(t *testing.T) {
	placer := echoPlacer()
	uc := NewCreateOrderUseCase(existingCustomer(), pricedProducts(map[uint]string{1: "1.00", 3: "3.00"}), placer, nil, zap.NewNop())

	_, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{1, 1}})

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Some product IDs are invalid", nfe.Message)
	_, invalid := apperrors.IsInvalidInputError(err)
	assert.False(t, invalid)
	assert.Equal(t, 0, placer.calls)

	_, err = uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{3, 1, 3}})
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, 0, placer.calls)
}

func TestCreateOrder_UnknownCustomerCheckedBeforeProducts(t *testing.T) {
	customers := &mockCustomerFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer with id 99 not found")
		},
	}
	products := &mockProductResolver{
		GetProductsByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, []uint, error) {
			t.Fatal("products must not be resolved for an unknown customer")
			return nil, nil, nil
		},
	}
	uc := NewCreateOrderUseCase(customers, products, &mockOrderPlacer{}, nil, zap.NewNop())

	_, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 99, ProductIDs: []uint{1, 1}})

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid customer ID", nfe.Message)
}

func TestCreateOrder_PassesIDsAsGiven(t *testing.T) {
	var got []uint
	products := &mockProductResolver{
		GetProductsByIDsFunc: func(ctx context.Context, ids []uint) ([]domain.Product, []uint, error) {
			got = ids
			return []domain.Product{
				{ID: 2, Price: decimal.RequireFromString("2.00")},
				{ID: 5, Price: decimal.RequireFromString("5.00")},
			}, nil, nil
		},
	}
	uc := NewCreateOrderUseCase(existingCustomer(), products, echoPlacer(), nil, zap.NewNop())

	order, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{5, 2}})

	require.NoError(t, err)
	assert.Equal(t, []uint{5, 2}, got)
	assert.Equal(t, []uint{2, 5}, order.ProductIDs)
	assert.Equal(t, "7.00", order.TotalAmount.StringFixed(2))
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	customers := &mockCustomerFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer with id 99 not found")
		},
	}
	placer := echoPlacer()
	uc := NewCreateOrderUseCase(customers, pricedProducts(map[uint]string{1: "1.00"}), placer, nil, zap.NewNop())

	order, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 99, ProductIDs: []uint{1}})

	assert.Nil(t, order)
	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid customer ID", nfe.Message)
	assert.Equal(t, 0, placer.calls)
}

func TestCreateOrder_CustomerLookupFails(t *testing.T) {
	customers := &mockCustomerFinder{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Customer, error) {
			return nil, errors.New("timeout")
		},
	}
	uc := NewCreateOrderUseCase(customers, &mockProductResolver{}, &mockOrderPlacer{}, nil, zap.NewNop())

	_, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{1}})

	assert.EqualError(t, err, "timeout")
}

func TestCreateOrder_UnknownProducts(t *testing.T) {
	placer := echoPlacer()
	uc := NewCreateOrderUseCase(existingCustomer(), pricedProducts(map[uint]string{1: "1.00"}), placer, nil, zap.NewNop())

	_, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{1, 5, 6}})

	nfe, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Some product IDs are invalid", nfe.Message)
	assert.Equal(t, []uint{5, 6}, nfe.MissingIDs)
	assert.Equal(t, 0, placer.calls)
}

func TestCreateOrder_PlacerFails(t *testing.T) {
	metrics := &countingMetrics{}
	placer := &mockOrderPlacer{
		PlaceOrderFunc: func(ctx context.Context, order domain.Order) (*domain.Order, error) {
			return nil, errors.New("deadlock")
		},
	}
	uc := NewCreateOrderUseCase(existingCustomer(), pricedProducts(map[uint]string{1: "1.00"}), placer, metrics, zap.NewNop())

	_, err := uc.CreateOrder(context.Background(), dto.OrderInput{CustomerID: 1, ProductIDs: []uint{1}})

	assert.Error(t, err)
	assert.Equal(t, 0, metrics.orders)
}
