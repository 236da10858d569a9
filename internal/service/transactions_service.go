// Package service provides the business logic layer: the query engine,
// aggregation engine, customer rollup, fraud scoring, and system
// introspection. Every service is a stateless reader of the shared table.
package service

import (
	"context"
	"math"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/infra/dataset"
	"github.com/mlefebvre/banking-txn-api/internal/infra/observability"
	"github.com/mlefebvre/banking-txn-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var txTracer = otel.Tracer("service/transactions")

const (
	maxPageSize      = 100
	counterpartyCap  = 50 // by-customer / to-merchant result cap
	defaultListLimit = 100
)

// TransactionService is the query engine over the shared table: filtering,
// pagination, and per-row normalization.
type TransactionService struct {
	data    port.DatasetReader
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewTransactionService creates a new transaction query service.
func NewTransactionService(data port.DatasetReader, metrics *observability.Metrics, logger *zap.Logger) *TransactionService {
	return &TransactionService{data: data, metrics: metrics, logger: logger}
}

// Query filters the table by type and absolute amount range, then paginates.
// Page and pageSize are clamped before use so the caller can never produce a
// zero denominator. An empty table yields an empty page, never an error.
func (s *TransactionService) Query(ctx context.Context, page, pageSize int, typeFilter string, minAmount, maxAmount *float64) *domain.TransactionPage {
	_, span := txTracer.Start(ctx, "TransactionService.Query")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	span.SetAttributes(attribute.Int("page", page), attribute.Int("page_size", pageSize))

	t := s.data.Table()
	result := &domain.TransactionPage{Page: page, Transactions: []domain.TransactionRecord{}}
	if t.IsEmpty() {
		return result
	}

	filtered := filterRows(t, typeFilter, minAmount, maxAmount)
	result.TotalItems = len(filtered)
	result.TotalPages = int(math.Ceil(float64(result.TotalItems) / float64(pageSize)))

	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	for _, row := range filtered[start:end] {
		result.Transactions = append(result.Transactions, normalizeRow(t, row))
	}
	return result
}

// filterRows applies the filters in order: type equality, amount lower
// bound, amount upper bound. A filter is a no-op when its parameter is unset
// or its backing column does not exist. Amount bounds compare absolute
// values so both schema variants behave the same.
func filterRows(t *dataset.Table, typeFilter string, minAmount, maxAmount *float64) []dataset.Row {
	sc := t.Schema()
	out := make([]dataset.Row, 0, t.Len())
	for _, row := range t.Rows() {
		if typeFilter != "" && sc.TypeColumn != "" && row.String(sc.TypeColumn) != typeFilter {
			continue
		}
		if sc.HasAmount && (minAmount != nil || maxAmount != nil) {
			amount, _ := row.Float("amount")
			abs := math.Abs(amount)
			if minAmount != nil && abs < *minAmount {
				continue
			}
			if maxAmount != nil && abs > *maxAmount {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

// List returns the first limit rows of the table, normalized.
func (s *TransactionService) List(ctx context.Context, limit int) []domain.TransactionRecord {
	_, span := txTracer.Start(ctx, "TransactionService.List")
	defer span.End()

	if limit < 1 {
		limit = defaultListLimit
	}

	t := s.data.Table()
	records := make([]domain.TransactionRecord, 0, limit)
	for _, row := range t.Rows() {
		if len(records) == limit {
			break
		}
		records = append(records, normalizeRow(t, row))
	}
	return records
}

// Types returns the distinct transaction types in first-seen order.
func (s *TransactionService) Types(ctx context.Context) []string {
	_, span := txTracer.Start(ctx, "TransactionService.Types")
	defer span.End()

	t := s.data.Table()
	sc := t.Schema()
	types := []string{}
	if sc.TypeColumn == "" {
		return types
	}

	seen := make(map[string]bool)
	for _, row := range t.Rows() {
		v := row.String(sc.TypeColumn)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		types = append(types, v)
	}
	return types
}

// Recent returns the last n rows of the table, most recently loaded first.
func (s *TransactionService) Recent(ctx context.Context, n int) []domain.TransactionRecord {
	_, span := txTracer.Start(ctx, "TransactionService.Recent")
	defer span.End()

	t := s.data.Table()
	rows := t.Rows()
	if n > len(rows) {
		n = len(rows)
	}
	if n < 0 {
		n = 0
	}

	records := make([]domain.TransactionRecord, 0, n)
	for i := len(rows) - 1; i >= len(rows)-n; i-- {
		records = append(records, normalizeRow(t, rows[i]))
	}
	return records
}

// ByCustomer returns the customer's transactions in table order, capped at
// 50. Keys are compared as strings to tolerate numeric and text variants.
func (s *TransactionService) ByCustomer(ctx context.Context, customerID string) []domain.TransactionRecord {
	_, span := txTracer.Start(ctx, "TransactionService.ByCustomer")
	defer span.End()

	t := s.data.Table()
	return matchKey(t, t.Schema().CustomerColumn, customerID)
}

// ToMerchant returns the transactions sent to a merchant, capped at 50.
func (s *TransactionService) ToMerchant(ctx context.Context, merchantID string) []domain.TransactionRecord {
	_, span := txTracer.Start(ctx, "TransactionService.ToMerchant")
	defer span.End()

	t := s.data.Table()
	return matchKey(t, t.Schema().MerchantColumn, merchantID)
}

func matchKey(t *dataset.Table, col, key string) []domain.TransactionRecord {
	records := []domain.TransactionRecord{}
	if col == "" {
		return records
	}
	for _, row := range t.Rows() {
		if row.String(col) != key {
			continue
		}
		records = append(records, normalizeRow(t, row))
		if len(records) == counterpartyCap {
			break
		}
	}
	return records
}

// GetByID looks up a single transaction by its stringified id. A missing id
// column, an empty table, and an unknown id all report not-found.
func (s *TransactionService) GetByID(ctx context.Context, id string) (*domain.TransactionRecord, error) {
	_, span := txTracer.Start(ctx, "TransactionService.GetByID")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", id))

	t := s.data.Table()
	if !t.HasColumn("id") {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	for _, row := range t.Rows() {
		if row.String("id") == id {
			rec := normalizeRow(t, row)
			return &rec, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
}
