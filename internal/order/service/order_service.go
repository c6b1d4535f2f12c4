package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/infrastructure/mysql"
)

type OrderRepository interface {
	FindAll(ctx context.Context) ([]domain.Order, error)
	Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error)
}

type OrderProductRepository interface {
	InsertAll(ctx context.Context, tx *sql.Tx, orderID uint, productIDs []uint) error
}

type OrderService struct {
	db          mysql.TransactionManager
	orderRepo   OrderRepository
	productRepo OrderProductRepository
	logger      *zap.Logger
}

func NewOrderService(
	db mysql.TransactionManager,
	orderRepo OrderRepository,
	productRepo OrderProductRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

// PlaceOrder persists an already resolved order and its product links in one
// transaction. Nothing is written unless both steps succeed.
func (s *OrderService) PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	err := mysql.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		id, err := s.orderRepo.Insert(ctx, tx, order)
		if err != nil {
			return err
		}
		order.ID = id

		return s.productRepo.InsertAll(ctx, tx, id, order.ProductIDs)
	})
	if err != nil {
		s.logger.Error("transaction rolled back", zap.Uint("customerId", order.CustomerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("transaction committed",
		zap.Uint("orderId", order.ID),
		zap.Int("productCount", len(order.ProductIDs)),
		zap.String("totalAmount", order.TotalAmount.StringFixed(2)),
	)
	return &order, nil
}
