package handler

import (
	"net/http"
	"time"

	"github.com/mlefebvre/banking-txn-api/internal/infra/observability"
	"github.com/mlefebvre/banking-txn-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services bundles the five analytical services the router exposes.
type Services struct {
	Transactions *service.TransactionService
	Stats        *service.StatsService
	Customers    *service.CustomerService
	Fraud        *service.FraudService
	System       *service.SystemService
}

// NewRouter creates the HTTP router with all routes and middleware.
// The route surface mirrors the public API contract of the banking
// transactions dataset.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	// All computation is in-memory; the timeout is an operational guard,
	// not a correctness requirement.
	r.Use(middleware.Timeout(30 * time.Second))

	// --- Operational endpoints ---
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/", rootHandler())

	// --- API ---
	r.Route("/api", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", listTransactionsHandler(svcs.Transactions, logger))
			r.Get("/types", transactionTypesHandler(svcs.Transactions, logger))
			r.Get("/recent", recentTransactionsHandler(svcs.Transactions, logger))
			r.Post("/search", searchTransactionsHandler(svcs.Transactions, logger))
			r.Get("/by-customer/{customerId}", transactionsByCustomerHandler(svcs.Transactions, logger))
			r.Get("/to-merchant/{merchantId}", transactionsToMerchantHandler(svcs.Transactions, logger))
			r.Delete("/{id}", deleteTransactionHandler(logger))
			r.Get("/{id}", getTransactionHandler(svcs.Transactions, logger))
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/overview", statsOverviewHandler(svcs.Stats, logger))
			r.Get("/amount-distribution", amountDistributionHandler(svcs.Stats, logger))
			r.Get("/by-type", statsByTypeHandler(svcs.Stats, logger))
			r.Get("/daily", statsDailyHandler(svcs.Stats, logger))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", listCustomersHandler(svcs.Customers, logger))
			r.Get("/top", topCustomersHandler(svcs.Customers, logger))
			r.Get("/{customerId}", customerProfileHandler(svcs.Customers, logger))
		})

		r.Route("/fraud", func(r chi.Router) {
			r.Get("/summary", fraudSummaryHandler(svcs.Fraud, logger))
			r.Get("/by-type", fraudByTypeHandler(svcs.Fraud, logger))
			r.Post("/predict", fraudPredictHandler(svcs.Fraud, logger))
		})

		r.Route("/system", func(r chi.Router) {
			r.Get("/health", healthHandler(svcs.System, logger))
			r.Get("/metadata", metadataHandler(svcs.System, logger))
			r.Get("/metrics", opsSnapshotHandler(svcs.System, logger))
		})
	})

	return r
}

func rootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "API is running correctly"})
	}
}
