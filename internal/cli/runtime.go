package cli

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"crm/internal/config"
	"crm/internal/customer"
	"crm/internal/infrastructure/logger"
	"crm/internal/infrastructure/mysql"
	"crm/internal/metrics"
	"crm/internal/order"
	"crm/internal/product"
)

type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadRuntime(opts *RootOptions) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &runtime{cfg: cfg, logger: zapLogger}, nil
}

func (rt *runtime) close() {
	_ = rt.logger.Sync()
}

// app is the wired service graph shared by serve, report and schedule.
type app struct {
	*runtime
	db        *sql.DB
	registry  *metrics.Registry
	customers *customer.Module
	products  *product.Module
	orders    *order.Module
}

func newApp(rt *runtime) (*app, error) {
	db, err := mysql.NewConnection(rt.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	rt.logger.Info("database connected", zap.String("host", rt.cfg.Database.Host), zap.String("database", rt.cfg.Database.Name))

	var registry *metrics.Registry
	if rt.cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
	}

	customers := customer.NewModule(db, registry, rt.logger)
	products := product.NewModule(db, registry, rt.logger)
	orders := order.NewModule(db, customers.Repository, products.Service, registry, rt.logger)

	return &app{
		runtime:   rt,
		db:        db,
		registry:  registry,
		customers: customers,
		products:  products,
		orders:    orders,
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("closing database", zap.Error(err))
	}
	a.runtime.close()
}
