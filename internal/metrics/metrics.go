package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crm"

// Registry owns the CRM collectors on a private prometheus registry. A nil
// *Registry is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	customersCreated     prometheus.Counter
	customerRowsRejected prometheus.Counter
	productsCreated      prometheus.Counter
	ordersCreated        prometheus.Counter
}

func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served.",
		},
		[]string{"route", "method", "status"},
	)
	r.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	r.customersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Customers persisted by single or bulk creation.",
	})
	r.customerRowsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customer_rows_rejected_total",
		Help:      "Bulk customer rows rejected by validation.",
	})
	r.productsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Products persisted.",
	})
	r.ordersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Orders persisted.",
	})

	r.registry.MustRegister(
		r.requestsTotal,
		r.requestDuration,
		r.customersCreated,
		r.customerRowsRejected,
		r.productsCreated,
		r.ordersCreated,
	)

	return r
}

func (r *Registry) CustomersCreated(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.customersCreated.Add(float64(n))
}

func (r *Registry) CustomerRowsRejected(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.customerRowsRejected.Add(float64(n))
}

func (r *Registry) ProductCreated() {
	if r == nil {
		return
	}
	r.productsCreated.Inc()
}

func (r *Registry) OrderCreated() {
	if r == nil {
		return
	}
	r.ordersCreated.Inc()
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware records request counts and durations labelled by the matched
// chi route pattern, which keeps label cardinality bounded.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		r.requestsTotal.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
		r.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
