package service

import (
	"context"
	"sort"
	"strings"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/infra/dataset"
	"github.com/mlefebvre/banking-txn-api/internal/infra/observability"
	"github.com/mlefebvre/banking-txn-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var fraudTracer = otel.Tracer("service/fraud")

// Risk scorer thresholds. The scorer is a rule table, not a model.
const (
	baseProbability     = 0.10
	highAmountThreshold = 1000.0
	highAmountWeight    = 0.50
	riskyTypeWeight     = 0.30
	drainedWeight       = 0.20
	probabilityCap      = 0.99
	fraudThreshold      = 0.70
)

// FraudService computes fraud indicators over the shared table and scores
// individual transactions with threshold rules.
type FraudService struct {
	data    port.DatasetReader
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewFraudService creates a new fraud analysis service.
func NewFraudService(data port.DatasetReader, metrics *observability.Metrics, logger *zap.Logger) *FraudService {
	return &FraudService{data: data, metrics: metrics, logger: logger}
}

// Summary counts the rows flagged by the schema's fraud indicator. With no
// indicator column or an empty table every figure is zero.
func (s *FraudService) Summary(ctx context.Context) *domain.FraudSummary {
	_, span := fraudTracer.Start(ctx, "FraudService.Summary")
	defer span.End()

	t := s.data.Table()
	summary := &domain.FraudSummary{}
	if t.IsEmpty() {
		return summary
	}

	total := countFrauds(t)
	summary.TotalFrauds = total
	summary.FlaggedBySystem = total
	summary.FraudRate = round5(float64(total) / float64(t.Len()))
	return summary
}

// ByType groups the flagged rows by transaction type, sorted by type.
func (s *FraudService) ByType(ctx context.Context) []domain.FraudTypeStat {
	_, span := fraudTracer.Start(ctx, "FraudService.ByType")
	defer span.End()

	t := s.data.Table()
	sc := t.Schema()
	stats := []domain.FraudTypeStat{}
	if sc.FraudColumn == "" || sc.TypeColumn == "" {
		return stats
	}

	counts := make(map[string]int)
	for _, row := range t.Rows() {
		if !sc.IsFraud(row) {
			continue
		}
		counts[row.String(sc.TypeColumn)]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		stats = append(stats, domain.FraudTypeStat{Type: k, Count: counts[k]})
	}
	return stats
}

// Predict scores one transaction with the rule table: high amount, risky
// type, and a drained source account each add risk. The probability is
// capped at 0.99 and the transaction is flagged above 0.70.
func (s *FraudService) Predict(ctx context.Context, input domain.PredictionInput) *domain.FraudPrediction {
	_, span := fraudTracer.Start(ctx, "FraudService.Predict")
	defer span.End()

	prob := baseProbability

	if input.Amount > highAmountThreshold {
		prob += highAmountWeight
	}

	upper := strings.ToUpper(input.Type)
	if strings.Contains(upper, "TRANSFER") || strings.Contains(upper, "CASH_OUT") {
		prob += riskyTypeWeight
	}

	if input.OldBalanceOrg > 0 && input.NewBalanceOrg == 0 && input.Amount > 0 {
		prob += drainedWeight
	}

	if prob > probabilityCap {
		prob = probabilityCap
	}

	isFraud := prob > fraudThreshold
	level := "Low"
	if isFraud {
		level = "High"
	}
	s.metrics.IncrFraudPrediction(level)

	return &domain.FraudPrediction{
		IsFraud:     isFraud,
		Probability: round2(prob),
		RiskLevel:   level,
	}
}

// countFrauds applies the schema fraud predicate to every row. Shared with
// the stats overview so both report the same definition of "fraud".
func countFrauds(t *dataset.Table) int {
	sc := t.Schema()
	if sc.FraudColumn == "" {
		return 0
	}
	n := 0
	for _, row := range t.Rows() {
		if sc.IsFraud(row) {
			n++
		}
	}
	return n
}
