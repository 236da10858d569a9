package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Fraud — GET/POST /api/fraud/*
// ============================================================

func fraudSummaryHandler(svc *service.FraudService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/fraud/summary")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Summary(ctx))
	}
}

func fraudByTypeHandler(svc *service.FraudService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/fraud/by-type")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.ByType(ctx))
	}
}

func fraudPredictHandler(svc *service.FraudService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/fraud/predict")
		defer span.End()

		var input domain.PredictionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		writeJSON(w, http.StatusOK, svc.Predict(ctx, input))
	}
}
