package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mlefebvre/banking-txn-api/internal/domain"
	"github.com/mlefebvre/banking-txn-api/internal/infra/dataset"
	"github.com/mlefebvre/banking-txn-api/internal/infra/observability"

	"go.uber.org/zap"
)

func newTransactionService(t *testing.T, csvText string) *TransactionService {
	t.Helper()
	return NewTransactionService(newStore(t, csvText), observability.NewMetrics(), zap.NewNop())
}

// sequentialCSV builds n rows with ids 1..n and amount = id.
func sequentialCSV(n int) string {
	var b strings.Builder
	b.WriteString("id,date,amount,use_chip,client_id,merchant_id\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d,2023-01-%02d,%d,Swipe Transaction,7,44\n", i, i%28+1, i)
	}
	return b.String()
}

func TestQuery_PaginationCoversTheTable(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(25))
	ctx := context.Background()

	var collected []domain.TransactionRecord
	first := svc.Query(ctx, 1, 10, "", nil, nil)
	if first.TotalItems != 25 {
		t.Fatalf("expected 25 items, got %d", first.TotalItems)
	}
	if first.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", first.TotalPages)
	}
	for page := 1; page <= first.TotalPages; page++ {
		collected = append(collected, svc.Query(ctx, page, 10, "", nil, nil).Transactions...)
	}

	if len(collected) != 25 {
		t.Fatalf("expected concatenated pages to cover the table, got %d rows", len(collected))
	}
	for i, rec := range collected {
		if want := fmt.Sprintf("%d", i+1); rec.ID != want {
			t.Fatalf("expected table order preserved: row %d has id %q", i, rec.ID)
		}
	}
}

func TestQuery_Idempotent(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(25))
	ctx := context.Background()

	a := svc.Query(ctx, 2, 10, "", nil, nil)
	b := svc.Query(ctx, 2, 10, "", nil, nil)
	if len(a.Transactions) != len(b.Transactions) {
		t.Fatal("repeated query changed shape")
	}
	for i := range a.Transactions {
		if a.Transactions[i].ID != b.Transactions[i].ID {
			t.Fatal("repeated query changed content")
		}
	}
}

func TestQuery_ClampsPageAndPageSize(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(5))
	ctx := context.Background()

	page := svc.Query(ctx, 0, -3, "", nil, nil)
	if page.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", page.Page)
	}
	if len(page.Transactions) != 1 {
		t.Errorf("expected pageSize clamped to 1, got %d rows", len(page.Transactions))
	}

	page = svc.Query(ctx, 1, 1000, "", nil, nil)
	if page.TotalPages != 1 {
		t.Errorf("expected pageSize capped at 100, got %d pages", page.TotalPages)
	}
}

func TestQuery_PastLastPageIsEmptyNotError(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(5))

	page := svc.Query(context.Background(), 99, 10, "", nil, nil)
	if len(page.Transactions) != 0 {
		t.Errorf("expected empty page past the end, got %d rows", len(page.Transactions))
	}
	if page.TotalItems != 5 {
		t.Errorf("expected totals still reported, got %d", page.TotalItems)
	}
}

func TestQuery_EmptyTable(t *testing.T) {
	svc := NewTransactionService(dataset.NewStore(), observability.NewMetrics(), zap.NewNop())

	page := svc.Query(context.Background(), 1, 10, "", nil, nil)
	if page.TotalItems != 0 || page.TotalPages != 0 || len(page.Transactions) != 0 {
		t.Errorf("expected fully empty page, got %+v", page)
	}
}

func TestQuery_TypeFilter(t *testing.T) {
	svc := newTransactionService(t, "id,amount,use_chip\n"+
		"1,10,Swipe Transaction\n2,20,Online Transaction\n3,30,Swipe Transaction\n")

	page := svc.Query(context.Background(), 1, 10, "Swipe Transaction", nil, nil)
	if page.TotalItems != 2 {
		t.Fatalf("expected 2 matches, got %d", page.TotalItems)
	}
	for _, rec := range page.Transactions {
		if rec.Type != "Swipe Transaction" {
			t.Errorf("filter leaked type %q", rec.Type)
		}
	}
}

func TestQuery_AmountBoundsUseAbsoluteValues(t *testing.T) {
	svc := newTransactionService(t, "step,type,amount\n1,PAYMENT,-80\n1,TRANSFER,200\n2,PAYMENT,-5\n")

	min, max := 50.0, 100.0
	page := svc.Query(context.Background(), 1, 10, "", &min, &max)
	if page.TotalItems != 1 {
		t.Fatalf("expected 1 match, got %d", page.TotalItems)
	}
	if page.Transactions[0].Amount != -80 {
		t.Errorf("expected the -80 row to match by magnitude, got %f", page.Transactions[0].Amount)
	}
}

func TestTypes_DistinctFirstSeen(t *testing.T) {
	svc := newTransactionService(t, "id,amount,use_chip\n"+
		"1,10,Swipe Transaction\n2,20,Online Transaction\n3,30,Swipe Transaction\n4,40,\n")

	types := svc.Types(context.Background())
	want := []string{"Swipe Transaction", "Online Transaction"}
	if len(types) != len(want) {
		t.Fatalf("expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, types)
		}
	}
}

func TestRecent_ReturnsTailReversed(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(10))

	recent := svc.Recent(context.Background(), 3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(recent))
	}
	for i, want := range []string{"10", "9", "8"} {
		if recent[i].ID != want {
			t.Errorf("expected id %s at position %d, got %s", want, i, recent[i].ID)
		}
	}
}

func TestRecent_NLargerThanTable(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(2))

	if got := len(svc.Recent(context.Background(), 10)); got != 2 {
		t.Errorf("expected whole table, got %d rows", got)
	}
}

func TestByCustomer_CapsAtFifty(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(60))

	records := svc.ByCustomer(context.Background(), "7")
	if len(records) != 50 {
		t.Errorf("expected cap of 50, got %d", len(records))
	}
	if len(svc.ByCustomer(context.Background(), "999")) != 0 {
		t.Error("expected no rows for unknown customer")
	}
}

func TestToMerchant_MatchesKey(t *testing.T) {
	svc := newTransactionService(t, "id,amount,client_id,merchant_id\n1,10,7,44\n2,20,8,45\n3,30,9,44\n")

	records := svc.ToMerchant(context.Background(), "44")
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
}

func TestGetByID(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(5))
	ctx := context.Background()

	rec, err := svc.GetByID(ctx, "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "3" {
		t.Errorf("expected id 3, got %s", rec.ID)
	}

	_, err = svc.GetByID(ctx, "777")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGetByID_NoIDColumn(t *testing.T) {
	svc := newTransactionService(t, "step,type,amount\n1,PAYMENT,10\n")

	_, err := svc.GetByID(context.Background(), "1")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found without an id column, got %v", err)
	}
}

func TestList_Limit(t *testing.T) {
	svc := newTransactionService(t, sequentialCSV(8))

	if got := len(svc.List(context.Background(), 3)); got != 3 {
		t.Errorf("expected 3 rows, got %d", got)
	}
	if got := len(svc.List(context.Background(), 0)); got != 8 {
		t.Errorf("expected default limit to return whole small table, got %d", got)
	}
}
