package handler

import (
	"net/http"

	"github.com/mlefebvre/banking-txn-api/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Statistics — GET /api/stats/*
// ============================================================

func statsOverviewHandler(svc *service.StatsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/stats/overview")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Overview(ctx))
	}
}

func amountDistributionHandler(svc *service.StatsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/stats/amount-distribution")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.AmountDistribution(ctx))
	}
}

func statsByTypeHandler(svc *service.StatsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/stats/by-type")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.ByType(ctx))
	}
}

func statsDailyHandler(svc *service.StatsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/stats/daily")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.ByTime(ctx))
	}
}
