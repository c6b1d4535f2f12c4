package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"crm/internal/customer/controller"
	"crm/internal/customer/repository"
	"crm/internal/customer/service"
	"crm/internal/metrics"
)

type Module struct {
	Repository *repository.MySQLCustomerRepository
	Service    *service.CustomerService
	Controller *controller.CustomerController
}

func NewModule(db *sql.DB, registry *metrics.Registry, logger *zap.Logger) *Module {
	repo := repository.NewMySQLCustomerRepository(db)
	svc := service.NewCustomerService(db, repo, registry, logger.Named("customer"))
	return &Module{
		Repository: repo,
		Service:    svc,
		Controller: controller.NewCustomerController(svc, logger),
	}
}
