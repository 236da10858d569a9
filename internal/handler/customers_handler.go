package handler

import (
	"net/http"

	"github.com/mlefebvre/banking-txn-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Customers — GET /api/customers*
// ============================================================

func listCustomersHandler(svc *service.CustomerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/customers")
		defer span.End()

		page, limit, err := parsePagination(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, svc.List(ctx, page, limit))
	}
}

func topCustomersHandler(svc *service.CustomerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/customers/top")
		defer span.End()

		n, err := parseBoundedInt(r, "n", 10)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, svc.Top(ctx, n))
	}
}

func customerProfileHandler(svc *service.CustomerService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/customers/{customerId}")
		defer span.End()

		customerID := chi.URLParam(r, "customerId")
		span.SetAttributes(attribute.String("customer.id", customerID))

		profile, err := svc.Profile(ctx, customerID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}
