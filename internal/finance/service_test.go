package finance

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// countingDataset wraps StaticDataset and counts KPI accessor calls so cache
// behavior is observable.
type countingDataset struct {
	*StaticDataset
	kpiCalls int
}

func (d *countingDataset) KPIs() []FinancialKPI {
	d.kpiCalls++
	return d.StaticDataset.KPIs()
}

func newCachedService(t *testing.T, data Dataset) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc, err := NewService(data, NewCache(client, time.Minute))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestNewServiceValidatesDataset(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Fatal("expected error for nil dataset")
	}
	if _, err := NewService(NewStaticDataset(), nil); err != nil {
		t.Fatalf("static dataset should validate: %v", err)
	}
}

func TestKPIListUsesCache(t *testing.T) {
	data := &countingDataset{StaticDataset: NewStaticDataset()}
	svc, cleanup := newCachedService(t, data)
	defer cleanup()

	callsAfterValidation := data.kpiCalls

	ctx := context.Background()
	kpis, err := svc.KPIList(ctx)
	if err != nil {
		t.Fatalf("kpi list: %v", err)
	}
	if len(kpis) != 6 {
		t.Fatalf("expected 6 KPIs got %d", len(kpis))
	}
	if data.kpiCalls != callsAfterValidation+1 {
		t.Fatalf("expected one dataset read, got %d", data.kpiCalls-callsAfterValidation)
	}

	if _, err := svc.KPIList(ctx); err != nil {
		t.Fatalf("cached kpi list: %v", err)
	}
	if data.kpiCalls != callsAfterValidation+1 {
		t.Fatalf("second read should hit cache, dataset reads %d", data.kpiCalls-callsAfterValidation)
	}

	if err := svc.cache.Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
	if _, err := svc.KPIList(ctx); err != nil {
		t.Fatalf("kpi list after bump: %v", err)
	}
	if data.kpiCalls != callsAfterValidation+2 {
		t.Fatalf("bump should force a reload, dataset reads %d", data.kpiCalls-callsAfterValidation)
	}
}

func TestCashFlowLedgerSummary(t *testing.T) {
	svc, cleanup := newCachedService(t, NewStaticDataset())
	defer cleanup()

	stmt, err := svc.CashFlowLedger(context.Background())
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if len(stmt.Entries) != 7 {
		t.Fatalf("expected 7 entries got %d", len(stmt.Entries))
	}
	if stmt.Summary.TotalInflow != 5570000 {
		t.Fatalf("unexpected inflow total %.0f", stmt.Summary.TotalInflow)
	}
	if stmt.Summary.TotalOutflow != 2770000 {
		t.Fatalf("unexpected outflow total %.0f", stmt.Summary.TotalOutflow)
	}
	if stmt.Summary.ClosingBalance != 7100000 {
		t.Fatalf("closing balance must be the authored final balance, got %.0f", stmt.Summary.ClosingBalance)
	}
}

func TestAccountsSummaries(t *testing.T) {
	svc, cleanup := newCachedService(t, NewStaticDataset())
	defer cleanup()

	view, err := svc.Accounts(context.Background())
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if view.PayableSummary.OverdueCount != 2 {
		t.Fatalf("expected 2 overdue payables got %d", view.PayableSummary.OverdueCount)
	}
	if view.PayableSummary.OverdueTotal != 970000 {
		t.Fatalf("unexpected overdue payable total %.0f", view.PayableSummary.OverdueTotal)
	}
	if view.ReceivableSummary.OverdueCount != 1 {
		t.Fatalf("expected 1 overdue receivable got %d", view.ReceivableSummary.OverdueCount)
	}
}

func TestValidatePeriod(t *testing.T) {
	for _, valid := range []string{"2025", "2025-Q1", "2024-Q4"} {
		if err := ValidatePeriod(valid); err != nil {
			t.Fatalf("expected %q valid: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "25", "2025-Q5", "2025-07", "latest"} {
		if err := ValidatePeriod(invalid); err == nil {
			t.Fatalf("expected %q invalid", invalid)
		}
	}
}
