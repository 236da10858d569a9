package service

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/infra/dataset"
	"github.com/mlefebvre/banking-txn-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var statsTracer = otel.Tracer("service/stats")

// histogram bucket edges, half-open [low, high). Labels and edges are
// parallel; the last bucket is unbounded.
var (
	bucketLabels = []string{"0-50", "50-100", "100-500", "500-1000", "1000+"}
	bucketUpper  = []float64{50, 100, 500, 1000, math.Inf(1)}
)

const maxTimePeriods = 10

// StatsService is the aggregation engine: global KPIs, histograms, and
// groupings. Everything is recomputed from the shared table on each call.
type StatsService struct {
	data   port.DatasetReader
	logger *zap.Logger
}

// NewStatsService creates a new aggregation service.
func NewStatsService(data port.DatasetReader, logger *zap.Logger) *StatsService {
	return &StatsService{data: data, logger: logger}
}

// Overview computes the global KPIs. On an empty table every figure is zero
// and the most common type reads "N/A".
func (s *StatsService) Overview(ctx context.Context) *domain.StatsOverview {
	_, span := statsTracer.Start(ctx, "StatsService.Overview")
	defer span.End()

	t := s.data.Table()
	overview := &domain.StatsOverview{MostCommonType: "N/A"}
	if t.IsEmpty() {
		return overview
	}

	overview.TotalTransactions = t.Len()

	sc := t.Schema()
	if sc.HasAmount {
		var sum, best float64
		bestIdx := -1
		for i, row := range t.Rows() {
			v := amountValue(sc, row)
			sum += v
			if bestIdx == -1 || v > best {
				best = v
				bestIdx = i
			}
		}
		overview.AverageAmount = round2(sum / float64(t.Len()))

		top := t.Rows()[bestIdx]
		amount, _ := top.Float("amount")
		overview.TopTransaction = &domain.TopTransaction{
			ID:     topID(t, top, bestIdx),
			Amount: amount,
			Date:   topDate(t, top),
		}
	}

	if mode := modeOf(t, sc.TypeColumn); mode != "" {
		overview.MostCommonType = mode
	}

	overview.FraudRate = round5(float64(countFrauds(t)) / float64(t.Len()))
	return overview
}

// AmountDistribution histograms absolute amounts into the fixed buckets.
// All five labels are always present, in order, even at count zero, so the
// response shape never depends on the data.
func (s *StatsService) AmountDistribution(ctx context.Context) *domain.AmountDistribution {
	_, span := statsTracer.Start(ctx, "StatsService.AmountDistribution")
	defer span.End()

	dist := &domain.AmountDistribution{
		Bins:   append([]string{}, bucketLabels...),
		Counts: make([]int, len(bucketLabels)),
	}

	t := s.data.Table()
	sc := t.Schema()
	if !sc.HasAmount {
		return dist
	}

	for _, row := range t.Rows() {
		v := amountValue(sc, row)
		for i, upper := range bucketUpper {
			if v < upper {
				dist.Counts[i]++
				break
			}
		}
	}
	return dist
}

// ByType groups the table on the type-like column and reports count and
// average amount per group, most frequent first. Ties keep first-seen order.
func (s *StatsService) ByType(ctx context.Context) []domain.TypeStat {
	_, span := statsTracer.Start(ctx, "StatsService.ByType")
	defer span.End()

	t := s.data.Table()
	sc := t.Schema()
	stats := []domain.TypeStat{}
	if sc.TypeColumn == "" {
		return stats
	}

	type group struct {
		count int
		sum   float64
	}
	groups := make(map[string]*group)
	order := []string{}
	for _, row := range t.Rows() {
		key := row.String(sc.TypeColumn)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
		g.sum += amountValue(sc, row)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].count > groups[order[j]].count
	})

	for _, key := range order {
		g := groups[key]
		stats = append(stats, domain.TypeStat{
			Type:      key,
			Count:     g.count,
			AvgAmount: round2(g.sum / float64(g.count)),
		})
	}
	return stats
}

// ByTime groups on the schema's coarse time unit: the step column when it
// exists, otherwise the date truncated to its year-month prefix. Periods are
// sorted ascending and capped at the first ten.
func (s *StatsService) ByTime(ctx context.Context) []domain.PeriodStat {
	_, span := statsTracer.Start(ctx, "StatsService.ByTime")
	defer span.End()

	t := s.data.Table()
	sc := t.Schema()
	stats := []domain.PeriodStat{}
	if sc.TimeColumn == "" {
		return stats
	}

	type group struct {
		count int
		sum   float64
	}
	groups := make(map[string]*group)
	keys := []string{}
	for _, row := range t.Rows() {
		key := periodKey(sc, row)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			keys = append(keys, key)
		}
		g.count++
		g.sum += amountValue(sc, row)
	}

	byStep := sc.TimeColumn == "step"
	sort.Slice(keys, func(i, j int) bool {
		if byStep {
			a, _ := strconv.ParseFloat(keys[i], 64)
			b, _ := strconv.ParseFloat(keys[j], 64)
			return a < b
		}
		return keys[i] < keys[j]
	})
	if len(keys) > maxTimePeriods {
		keys = keys[:maxTimePeriods]
	}

	for _, key := range keys {
		g := groups[key]
		label := key
		if byStep {
			label = "Step " + key
		}
		stats = append(stats, domain.PeriodStat{
			Period:    label,
			Count:     g.count,
			AvgAmount: round2(g.sum / float64(g.count)),
		})
	}
	return stats
}

// periodKey coarsens a row's time value: the raw step, or the YYYY-MM
// prefix of the date.
func periodKey(sc dataset.Schema, row dataset.Row) string {
	v := row.String(sc.TimeColumn)
	if sc.TimeColumn == "date" && len(v) > 7 {
		return v[:7]
	}
	return v
}

// amountValue is the amount used in aggregations: the absolute value under
// the signed-amount schema, the raw value otherwise.
func amountValue(sc dataset.Schema, row dataset.Row) float64 {
	v, _ := row.Float("amount")
	if sc.SignedAmounts {
		return math.Abs(v)
	}
	return v
}

// modeOf returns the most frequent value of a column; the first value to
// reach the winning count wins ties. Empty values are skipped.
func modeOf(t *dataset.Table, col string) string {
	if col == "" {
		return ""
	}
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, row := range t.Rows() {
		v := row.String(col)
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}

func topID(t *dataset.Table, row dataset.Row, idx int) string {
	if t.HasColumn("id") {
		return row.String("id")
	}
	return strconv.Itoa(idx)
}

func topDate(t *dataset.Table, row dataset.Row) string {
	if t.HasColumn("date") {
		return row.String("date")
	}
	return "N/A"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}
