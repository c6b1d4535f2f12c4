package product

import (
	"database/sql"

	"go.uber.org/zap"

	"crm/internal/metrics"
	"crm/internal/product/controller"
	"crm/internal/product/repository"
	"crm/internal/product/service"
)

type Module struct {
	Service    *service.ProductService
	Controller *controller.ProductController
}

func NewModule(db *sql.DB, registry *metrics.Registry, logger *zap.Logger) *Module {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewProductService(db, repo, registry, logger.Named("product"))
	return &Module{
		Service:    svc,
		Controller: controller.NewProductController(svc, logger),
	}
}
