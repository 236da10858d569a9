package service

import (
	"context"
	"time"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/infra/observability"
	"github.com/mlefebvre/banking-txn-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var systemTracer = otel.Tracer("service/system")

// Version is the reported API version.
const Version = "1.0.0"

// SystemService exposes operational introspection: health, dataset
// metadata, and a JSON metrics snapshot.
type SystemService struct {
	data    port.DatasetReader
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewSystemService creates a new system service.
func NewSystemService(data port.DatasetReader, metrics *observability.Metrics, logger *zap.Logger) *SystemService {
	return &SystemService{data: data, metrics: metrics, logger: logger}
}

// Health reports whether the service is up and the dataset is in memory.
func (s *SystemService) Health(ctx context.Context) *domain.HealthStatus {
	_, span := systemTracer.Start(ctx, "SystemService.Health")
	defer span.End()

	t := s.data.Table()
	status := &domain.HealthStatus{
		Status:        "ok",
		DatasetLoaded: !t.IsEmpty(),
		TotalRows:     t.Len(),
	}
	if !t.IsEmpty() {
		status.SnapshotID = t.SnapshotID()
	}
	return status
}

// Metadata describes the running version and the loaded dataset snapshot.
func (s *SystemService) Metadata(ctx context.Context) *domain.Metadata {
	_, span := systemTracer.Start(ctx, "SystemService.Metadata")
	defer span.End()

	t := s.data.Table()
	meta := &domain.Metadata{
		Version:   Version,
		TotalRows: t.Len(),
	}
	if !t.IsEmpty() {
		meta.SnapshotID = t.SnapshotID()
		meta.LastUpdate = t.LoadedAt().Format(time.RFC3339)
	}
	return meta
}

// OpsSnapshot reads the request and dataset counters back as JSON.
func (s *SystemService) OpsSnapshot(ctx context.Context) *domain.OpsSnapshot {
	_, span := systemTracer.Start(ctx, "SystemService.OpsSnapshot")
	defer span.End()

	return s.metrics.OpsSnapshot()
}
