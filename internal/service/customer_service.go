package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/infra/dataset"
	"github.com/mlefebvre/banking-txn-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var customerTracer = otel.Tracer("service/customers")

// CustomerService derives per-customer views from the shared table by
// grouping on the customer key. Nothing is persisted; every call recomputes.
type CustomerService struct {
	data   port.DatasetReader
	logger *zap.Logger
}

// NewCustomerService creates a new customer rollup service.
func NewCustomerService(data port.DatasetReader, logger *zap.Logger) *CustomerService {
	return &CustomerService{data: data, logger: logger}
}

// List returns the unique customers in first-seen order, paginated. Page is
// clamped to >= 1 and pageSize to 1..100.
func (s *CustomerService) List(ctx context.Context, page, pageSize int) *domain.CustomerPage {
	_, span := customerTracer.Start(ctx, "CustomerService.List")
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

	result := &domain.CustomerPage{Page: page, Customers: []domain.CustomerSummary{}}

	t := s.data.Table()
	col := t.Schema().CustomerColumn
	if t.IsEmpty() || col == "" {
		return result
	}

	ids := uniqueKeys(t, col)
	result.TotalItems = len(ids)
	result.TotalPages = int(math.Ceil(float64(len(ids)) / float64(pageSize)))

	start := (page - 1) * pageSize
	if start > len(ids) {
		start = len(ids)
	}
	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}

	for _, id := range ids[start:end] {
		result.Customers = append(result.Customers, domain.CustomerSummary{
			ID:   id,
			Name: s.displayName(t, col, id),
		})
	}
	return result
}

// Profile computes the full rollup for one customer: identity plus the
// stats block split by amount sign. Unknown customers report not-found.
func (s *CustomerService) Profile(ctx context.Context, customerID string) (*domain.CustomerProfile, error) {
	_, span := customerTracer.Start(ctx, "CustomerService.Profile")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", customerID))

	t := s.data.Table()
	col := t.Schema().CustomerColumn
	if t.IsEmpty() || col == "" {
		return nil, &domain.ErrNotFound{Resource: "customer", ID: customerID}
	}

	var spent, received, balance float64
	count := 0
	for _, row := range t.Rows() {
		if row.String(col) != customerID {
			continue
		}
		count++
		amount, _ := row.Float("amount")
		balance += amount
		if amount < 0 {
			spent += amount
		} else if amount > 0 {
			received += amount
		}
	}
	if count == 0 {
		return nil, &domain.ErrNotFound{Resource: "customer", ID: customerID}
	}

	return &domain.CustomerProfile{
		ID:   customerID,
		Name: s.displayName(t, col, customerID),
		Stats: domain.CustomerStats{
			TransactionCount: count,
			TotalSpent:       math.Abs(round2(spent)),
			TotalReceived:    round2(received),
			CurrentBalance:   round2(balance),
		},
	}, nil
}

// Top ranks customers by transaction count, descending. Equal counts keep
// first-seen order.
func (s *CustomerService) Top(ctx context.Context, n int) []domain.TopCustomer {
	_, span := customerTracer.Start(ctx, "CustomerService.Top")
	defer span.End()

	top := []domain.TopCustomer{}

	t := s.data.Table()
	col := t.Schema().CustomerColumn
	if t.IsEmpty() || col == "" || n < 1 {
		return top
	}

	counts := make(map[string]int)
	order := uniqueKeys(t, col)
	for _, row := range t.Rows() {
		if key := row.String(col); key != "" {
			counts[key]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}

	for _, id := range order {
		top = append(top, domain.TopCustomer{ID: id, TransactionCount: counts[id]})
	}
	return top
}

// displayName looks up the first matching row's nameOrig, else synthesizes
// "Client_{id}".
func (s *CustomerService) displayName(t *dataset.Table, col, id string) string {
	if t.HasColumn("nameOrig") {
		for _, row := range t.Rows() {
			if row.String(col) == id {
				return row.String("nameOrig")
			}
		}
	}
	return fmt.Sprintf("Client_%s", id)
}

// uniqueKeys collects the non-empty values of a column, deduplicated in
// first-seen order.
func uniqueKeys(t *dataset.Table, col string) []string {
	seen := make(map[string]bool)
	keys := []string{}
	for _, row := range t.Rows() {
		v := row.String(col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		keys = append(keys, v)
	}
	return keys
}
