package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlefebvre/banking-txn-api/internal/config"
	"github.com/mlefebvre/banking-txn-api/internal/handler"
	"github.com/mlefebvre/banking-txn-api/internal/infra/dataset"
	"github.com/mlefebvre/banking-txn-api/internal/infra/observability"
	"github.com/mlefebvre/banking-txn-api/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("dataset_path", cfg.DatasetPath),
		zap.Duration("request_timeout", cfg.RequestTimeout),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "banking-txn-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Dataset ---
	store := dataset.NewStore()
	loader := dataset.NewLoader(store, cfg.DatasetPath, logger)
	if loader.Load() {
		metrics.IncrDatasetLoad("success")
		metrics.SetDatasetRows(store.Table().Len())
	} else {
		// The API stays up over an empty table; every endpoint degrades to
		// zero/empty results.
		metrics.IncrDatasetLoad("failure")
		logger.Warn("dataset load failed, serving empty results")
	}

	// --- Services ---
	svcs := handler.Services{
		Transactions: service.NewTransactionService(store, metrics, logger),
		Stats:        service.NewStatsService(store, logger),
		Customers:    service.NewCustomerService(store, logger),
		Fraud:        service.NewFraudService(store, metrics, logger),
		System:       service.NewSystemService(store, metrics, logger),
	}

	// --- Router ---
	router := handler.NewRouter(svcs, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
