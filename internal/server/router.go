package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"crm/internal/metrics"
)

type ResourceController interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type CustomerController interface {
	ResourceController
	BulkCreate(w http.ResponseWriter, r *http.Request)
}

type RouterConfig struct {
	Customers   CustomerController
	Products    ResourceController
	Orders      ResourceController
	GraphQL     http.Handler
	Metrics     *metrics.Registry
	MetricsPath string
	Logger      *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cfg.Metrics.Middleware)

	r.Get("/healthcheck", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", cfg.Customers.List)
			r.Post("/", cfg.Customers.Create)
			r.Post("/bulk", cfg.Customers.BulkCreate)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.Products.List)
			r.Post("/", cfg.Products.Create)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", cfg.Orders.List)
			r.Post("/", cfg.Orders.Create)
		})
	})

	r.Method(http.MethodPost, "/graphql", cfg.GraphQL)

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		r.Method(http.MethodGet, cfg.MetricsPath, cfg.Metrics.Handler())
	}

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("traceId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
