package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// ============================================================
// Transactions — GET /api/transactions
// ============================================================

func listTransactionsHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/transactions")
		defer span.End()

		page, limit, err := parsePagination(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		minAmount, err := parseOptionalFloat(r, "min_amount")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		maxAmount, err := parseOptionalFloat(r, "max_amount")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		typeFilter := r.URL.Query().Get("type")
		span.SetAttributes(attribute.Int("page", page), attribute.Int("limit", limit))

		writeJSON(w, http.StatusOK, svc.Query(ctx, page, limit, typeFilter, minAmount, maxAmount))
	}
}

// ============================================================
// Transaction types — GET /api/transactions/types
// ============================================================

func transactionTypesHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/transactions/types")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Types(ctx))
	}
}

// ============================================================
// Recent transactions — GET /api/transactions/recent?n=
// ============================================================

func recentTransactionsHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/transactions/recent")
		defer span.End()

		n, err := parseBoundedInt(r, "n", 10)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, svc.Recent(ctx, n))
	}
}

// ============================================================
// Search — POST /api/transactions/search
// ============================================================

func searchTransactionsHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/transactions/search")
		defer span.End()

		page, limit, err := parsePagination(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		var criteria domain.SearchCriteria
		if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		writeJSON(w, http.StatusOK, svc.Query(ctx, page, limit, criteria.Type, criteria.MinAmount, criteria.MaxAmount))
	}
}

// ============================================================
// By customer / to merchant
// ============================================================

func transactionsByCustomerHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/transactions/by-customer/{customerId}")
		defer span.End()

		customerID := chi.URLParam(r, "customerId")
		if _, err := strconv.Atoi(customerID); err != nil {
			writeError(w, http.StatusBadRequest, "customer id must be numeric")
			return
		}
		span.SetAttributes(attribute.String("customer.id", customerID))

		writeJSON(w, http.StatusOK, svc.ByCustomer(ctx, customerID))
	}
}

func transactionsToMerchantHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/transactions/to-merchant/{merchantId}")
		defer span.End()

		merchantID := chi.URLParam(r, "merchantId")
		if _, err := strconv.Atoi(merchantID); err != nil {
			writeError(w, http.StatusBadRequest, "merchant id must be numeric")
			return
		}

		writeJSON(w, http.StatusOK, svc.ToMerchant(ctx, merchantID))
	}
}

// ============================================================
// Delete — DELETE /api/transactions/{id}
// The dataset is read-only; deletion is acknowledged but never applied.
// ============================================================

func deleteTransactionHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "DELETE /api/transactions/{id}")
		defer span.End()

		id := chi.URLParam(r, "id")
		logger.Info("transaction delete simulated", zap.String("transaction_id", id))
		writeJSON(w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Transaction %s deleted successfully (simulation)", id),
		})
	}
}

// ============================================================
// Lookup — GET /api/transactions/{id}
// ============================================================

func getTransactionHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/transactions/{id}")
		defer span.End()

		id := chi.URLParam(r, "id")
		if _, err := strconv.Atoi(id); err != nil {
			writeError(w, http.StatusBadRequest, "transaction id must be numeric")
			return
		}

		record, err := svc.GetByID(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}
