package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/dto"
	"crm/internal/infrastructure/mysql"
	"crm/internal/validation"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error)
	Insert(ctx context.Context, tx *sql.Tx, product domain.Product) (uint, error)
}

type Metrics interface {
	ProductCreated()
}

type ProductService struct {
	db      mysql.TransactionManager
	repo    Repository
	metrics Metrics
	logger  *zap.Logger
}

func NewProductService(db mysql.TransactionManager, repo Repository, metrics Metrics, logger *zap.Logger) *ProductService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &ProductService{db: db, repo: repo, metrics: metrics, logger: logger}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// CreateProduct validates price then stock; the first violation is returned.
// A missing stock defaults to zero.
func (s *ProductService) CreateProduct(ctx context.Context, in dto.ProductInput) (*domain.Product, error) {
	price, err := validation.ParsePrice(string(in.Price))
	if err != nil {
		return nil, err
	}

	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	if err := validation.ValidateStock(stock); err != nil {
		return nil, err
	}

	product := domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Stock:       stock,
		Price:       price,
	}

	err = mysql.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		id, err := s.repo.Insert(ctx, tx, product)
		if err != nil {
			return err
		}
		product.ID = id
		return nil
	})
	if err != nil {
		s.logger.Error("create product failed", zap.Error(err))
		return nil, err
	}

	s.metrics.ProductCreated()
	s.logger.Info("product created", zap.Uint("productId", product.ID), zap.String("price", price.StringFixed(2)))
	return &product, nil
}

// GetProductsByIDs resolves ids in one query and reports the ids that did not
// resolve, in request order.
func (s *ProductService) GetProductsByIDs(ctx context.Context, ids []uint) ([]domain.Product, []uint, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	foundSet := make(map[uint]struct{}, len(found))
	for _, p := range found {
		foundSet[p.ID] = struct{}{}
	}

	var notFoundIDs []uint
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			notFoundIDs = append(notFoundIDs, id)
		}
	}

	return found, notFoundIDs, nil
}

type nopMetrics struct{}

func (nopMetrics) ProductCreated() {}
