package observability

import (
	"net/http"
	"time"

	"github.com/mlefebvre/banking-txn-api/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	requestsTotal    *prometheus.CounterVec
	datasetRows      prometheus.Gauge
	datasetLoads     *prometheus.CounterVec
	fraudPredictions *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txnapi_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txnapi_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
		datasetRows: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "txnapi_dataset_rows",
				Help: "Rows in the currently published dataset.",
			},
		),
		datasetLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txnapi_dataset_loads_total",
				Help: "Dataset load attempts by result.",
			},
			[]string{"result"},
		),
		fraudPredictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txnapi_fraud_predictions_total",
				Help: "Fraud risk predictions by resulting level.",
			},
			[]string{"risk_level"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// SetDatasetRows records the row count of the published table.
func (m *Metrics) SetDatasetRows(n int) {
	m.datasetRows.Set(float64(n))
}

// IncrDatasetLoad increments the load counter with a result label
// ("success" or "failure").
func (m *Metrics) IncrDatasetLoad(result string) {
	m.datasetLoads.WithLabelValues(result).Inc()
}

// IncrFraudPrediction counts a risk-scorer outcome.
func (m *Metrics) IncrFraudPrediction(riskLevel string) {
	m.fraudPredictions.WithLabelValues(riskLevel).Inc()
}

// OpsSnapshot reads selected counters back for the JSON metrics endpoint.
func (m *Metrics) OpsSnapshot() *domain.OpsSnapshot {
	success := getCounterValue(m.requestsTotal, "success")
	errored := getCounterValue(m.requestsTotal, "error")
	total := success + errored

	errorRate := float64(0)
	if total > 0 {
		errorRate = errored / total
	}

	return &domain.OpsSnapshot{
		TotalRequests: int64(total),
		ErrorRate:     errorRate,
		DatasetRows:   int64(getGaugeValue(m.datasetRows)),
		DatasetLoads:  int64(getCounterValue(m.datasetLoads, "success") + getCounterValue(m.datasetLoads, "failure")),
	}
}

// MetricsMiddleware records request duration per route pattern and counts
// requests by outcome (4xx/5xx count as errors).
func MetricsMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			operation := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()
			m.RecordRequestDuration(operation, time.Since(start))
			if ww.Status() >= 400 {
				m.IncrRequest("error")
			} else {
				m.IncrRequest("success")
			}
		})
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	metric := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(metric); err != nil {
		return 0
	}
	if metric.Counter != nil && metric.Counter.Value != nil {
		return *metric.Counter.Value
	}
	return 0
}

func getGaugeValue(g prometheus.Gauge) float64 {
	metric := &dto.Metric{}
	if err := g.Write(metric); err != nil {
		return 0
	}
	if metric.Gauge != nil && metric.Gauge.Value != nil {
		return *metric.Gauge.Value
	}
	return 0
}
