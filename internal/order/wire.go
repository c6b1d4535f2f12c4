package order

import (
	"database/sql"

	"go.uber.org/zap"

	customerrepo "crm/internal/customer/repository"
	"crm/internal/metrics"
	"crm/internal/order/controller"
	orderrepo "crm/internal/order/repository"
	"crm/internal/order/service"
	"crm/internal/order/usecase"
	productservice "crm/internal/product/service"
)

type Module struct {
	Repository *orderrepo.MySQLOrderRepository
	Service    *service.OrderService
	UseCase    *usecase.CreateOrderUseCase
	Controller *controller.OrderController
}

func NewModule(
	db *sql.DB,
	customers *customerrepo.MySQLCustomerRepository,
	products *productservice.ProductService,
	registry *metrics.Registry,
	logger *zap.Logger,
) *Module {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderProductRepo := orderrepo.NewMySQLOrderProductRepository(db)

	svc := service.NewOrderService(db, orderRepo, orderProductRepo, logger.Named("order"))
	uc := usecase.NewCreateOrderUseCase(customers, products, svc, registry, logger.Named("order"))

	return &Module{
		Repository: orderRepo,
		Service:    svc,
		UseCase:    uc,
		Controller: controller.NewOrderController(uc, svc, logger),
	}
}
