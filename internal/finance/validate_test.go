package finance

import (
	"strings"
	"testing"
)

func TestStaticDatasetIsConsistent(t *testing.T) {
	if err := ValidateDataset(NewStaticDataset()); err != nil {
		t.Fatalf("authored dataset must validate: %v", err)
	}
}

func TestPnLTotalsEqualItemizedSums(t *testing.T) {
	pnl := NewStaticDataset().ProfitLoss()

	var revenueSum float64
	for _, item := range pnl.Revenue.Items {
		revenueSum += item.Amount
	}
	if revenueSum != pnl.Revenue.Total {
		t.Fatalf("revenue total %.0f != itemized sum %.0f", pnl.Revenue.Total, revenueSum)
	}

	var cosSum float64
	for _, item := range pnl.CostOfSales.Items {
		cosSum += item.Amount
	}
	if cosSum != pnl.CostOfSales.Total {
		t.Fatalf("cost of sales total %.0f != itemized sum %.0f", pnl.CostOfSales.Total, cosSum)
	}

	var opexSum float64
	for _, item := range pnl.OperatingExpenses.Items {
		opexSum += item.Amount
	}
	if opexSum != pnl.OperatingExpenses.Total {
		t.Fatalf("opex total %.0f != itemized sum %.0f", pnl.OperatingExpenses.Total, opexSum)
	}

	if pnl.NetProfit != pnl.OperatingProfit-pnl.Taxes {
		t.Fatalf("net profit %.0f != operating profit %.0f - taxes %.0f", pnl.NetProfit, pnl.OperatingProfit, pnl.Taxes)
	}
}

// driftedDataset perturbs one authored value to simulate fixture drift.
type driftedDataset struct {
	*StaticDataset
	pnl      *ProfitLossSummary
	cf       []CashFlowEntry
	expenses []ExpenseCategoryEntry
}

func (d *driftedDataset) ProfitLoss() ProfitLossSummary {
	if d.pnl != nil {
		return *d.pnl
	}
	return d.StaticDataset.ProfitLoss()
}

func (d *driftedDataset) CashFlow() []CashFlowEntry {
	if d.cf != nil {
		return d.cf
	}
	return d.StaticDataset.CashFlow()
}

func (d *driftedDataset) ExpenseBreakdown() []ExpenseCategoryEntry {
	if d.expenses != nil {
		return d.expenses
	}
	return d.StaticDataset.ExpenseBreakdown()
}

func TestValidateDatasetRejectsDriftedPnLTotal(t *testing.T) {
	pnl := NewStaticDataset().ProfitLoss()
	pnl.Revenue.Total += 500000
	err := ValidateDataset(&driftedDataset{StaticDataset: NewStaticDataset(), pnl: &pnl})
	if err == nil || !strings.Contains(err.Error(), "revenue total") {
		t.Fatalf("expected revenue total error, got %v", err)
	}
}

func TestValidateDatasetRejectsBrokenBalanceChain(t *testing.T) {
	cf := NewStaticDataset().CashFlow()
	cf[3].Balance += 1000
	err := ValidateDataset(&driftedDataset{StaticDataset: NewStaticDataset(), cf: cf})
	if err == nil || !strings.Contains(err.Error(), "does not chain") {
		t.Fatalf("expected balance chain error, got %v", err)
	}
}

func TestValidateDatasetRejectsDriftedPercentages(t *testing.T) {
	expenses := NewStaticDataset().ExpenseBreakdown()
	expenses[0].Percentage += 5
	err := ValidateDataset(&driftedDataset{StaticDataset: NewStaticDataset(), expenses: expenses})
	if err == nil || !strings.Contains(err.Error(), "expense breakdown percentages") {
		t.Fatalf("expected percentage sum error, got %v", err)
	}
}

func TestStatusBadgeFallback(t *testing.T) {
	cases := map[AccountStatus]string{
		StatusPending:          "amber",
		StatusOverdue:          "red",
		StatusPaid:             "green",
		AccountStatus("Weird"): "neutral",
	}
	for status, want := range cases {
		if got := StatusBadge(status); got != want {
			t.Fatalf("badge for %s: want %s got %s", status, want, got)
		}
	}
}
