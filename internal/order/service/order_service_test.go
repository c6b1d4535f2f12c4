package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crm/internal/domain"
	apperrors "crm/internal/errors"
)

type mockOrderRepository struct {
	FindAllFunc func(ctx context.Context) ([]domain.Order, error)
	InsertFunc  func(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

func (m *mockOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return m.FindAllFunc(ctx)
}

func (m *mockOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	return m.InsertFunc(ctx, tx, order)
}

type mockOrderProductRepository struct {
	InsertAllFunc func(ctx context.Context, tx *sql.Tx, orderID uint, productIDs []uint) error
}

func (m *mockOrderProductRepository) InsertAll(ctx context.Context, tx *sql.Tx, orderID uint, productIDs []uint) error {
	return m.InsertAllFunc(ctx, tx, orderID, productIDs)
}

func newTestOrderService(t *testing.T, orders OrderRepository, links OrderProductRepository) (*OrderService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderService(db, orders, links, zap.NewNop()), mock
}

func testOrder() domain.Order {
	return domain.Order{
		CustomerID:  1,
		ProductIDs:  []uint{1, 2},
		TotalAmount: decimal.RequireFromString("25.50"),
		OrderDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	var linkedOrder uint
	var linkedProducts []uint
	orders := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
			assert.NotNil(t, tx)
			return 42, nil
		},
	}
	links := &mockOrderProductRepository{
		InsertAllFunc: func(ctx context.Context, tx *sql.Tx, orderID uint, productIDs []uint) error {
			linkedOrder = orderID
			linkedProducts = productIDs
			return nil
		},
	}
	svc, mock := newTestOrderService(t, orders, links)
	mock.ExpectBegin()
	mock.ExpectCommit()

	order, err := svc.PlaceOrder(context.Background(), testOrder())

	require.NoError(t, err)
	assert.Equal(t, uint(42), order.ID)
	assert.Equal(t, uint(42), linkedOrder)
	assert.Equal(t, []uint{1, 2}, linkedProducts)
	assert.Equal(t, "25.50", order.TotalAmount.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_LinkFailureRollsBack(t *testing.T) {
	orders := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) { return 42, nil },
	}
	links := &mockOrderProductRepository{
		InsertAllFunc: func(ctx context.Context, tx *sql.Tx, orderID uint, productIDs []uint) error {
			return apperrors.NewNotFoundError("Some product IDs are invalid", 2)
		},
	}
	svc, mock := newTestOrderService(t, orders, links)
	mock.ExpectBegin()
	mock.ExpectRollback()

	order, err := svc.PlaceOrder(context.Background(), testOrder())

	assert.Nil(t, order)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_InsertFailureSkipsLinks(t *testing.T) {
	orders := &mockOrderRepository{
		InsertFunc: func(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
			return 0, errors.New("connection reset")
		},
	}
	links := &mockOrderProductRepository{
		InsertAllFunc: func(ctx context.Context, tx *sql.Tx, orderID uint, productIDs []uint) error {
			t.Fatal("links must not be written when the order insert fails")
			return nil
		},
	}
	svc, mock := newTestOrderService(t, orders, links)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.PlaceOrder(context.Background(), testOrder())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders(t *testing.T) {
	orders := &mockOrderRepository{
		FindAllFunc: func(ctx context.Context) ([]domain.Order, error) {
			return []domain.Order{testOrder()}, nil
		},
	}
	svc, _ := newTestOrderService(t, orders, &mockOrderProductRepository{})

	first, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	second, err := svc.ListOrders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
