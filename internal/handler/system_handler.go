package handler

import (
	"net/http"

	"github.com/mlefebvre/banking-txn-api/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// System — GET /api/system/*
// ============================================================

func healthHandler(svc *service.SystemService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/system/health")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Health(ctx))
	}
}

func metadataHandler(svc *service.SystemService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/system/metadata")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.Metadata(ctx))
	}
}

func opsSnapshotHandler(svc *service.SystemService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/system/metrics")
		defer span.End()

		writeJSON(w, http.StatusOK, svc.OpsSnapshot(ctx))
	}
}
