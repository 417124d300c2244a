package finance

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

const (
	amountTolerance  = 0.01
	percentTolerance = 0.5
)

// ValidateDataset checks the structural and arithmetic consistency of a
// dataset before it reaches chart or report code. Authored totals and
// balances stay as supplied; validation only rejects fixtures that have
// drifted from their itemized components.
func ValidateDataset(d Dataset) error {
	v := validator.New()

	for i, rec := range d.MonthlySeries() {
		if err := v.Struct(rec); err != nil {
			return fmt.Errorf("monthly record %d: %w", i, err)
		}
	}
	for i, entry := range d.CashFlow() {
		if err := v.Struct(entry); err != nil {
			return fmt.Errorf("cash flow entry %d: %w", i, err)
		}
	}
	for i, entry := range append(d.Payables(), d.Receivables()...) {
		if err := v.Struct(entry); err != nil {
			return fmt.Errorf("account entry %d: %w", i, err)
		}
	}
	for i, kpi := range d.KPIs() {
		if err := v.Struct(kpi); err != nil {
			return fmt.Errorf("kpi %d: %w", i, err)
		}
	}
	for i, tx := range d.Transactions() {
		if err := v.Struct(tx); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	if err := validateBreakdownPercentages(d); err != nil {
		return err
	}
	if err := validateCashFlowChain(d.CashFlow()); err != nil {
		return err
	}
	return validateProfitLoss(d.ProfitLoss())
}

func validateBreakdownPercentages(d Dataset) error {
	var expenseSum float64
	for _, e := range d.ExpenseBreakdown() {
		expenseSum += e.Percentage
	}
	if len(d.ExpenseBreakdown()) > 0 && math.Abs(expenseSum-100) > percentTolerance {
		return fmt.Errorf("expense breakdown percentages sum to %.1f, want ~100", expenseSum)
	}
	var incomeSum float64
	for _, e := range d.IncomeBreakdown() {
		incomeSum += e.Percentage
	}
	if len(d.IncomeBreakdown()) > 0 && math.Abs(incomeSum-100) > percentTolerance {
		return fmt.Errorf("income breakdown percentages sum to %.1f, want ~100", incomeSum)
	}
	return nil
}

// validateCashFlowChain checks entries after the first against the running
// balance rule. The opening balance behind the first entry is not part of
// the dataset, so the first row is taken as given.
func validateCashFlowChain(entries []CashFlowEntry) error {
	for i := 1; i < len(entries); i++ {
		want := entries[i-1].Balance + entries[i].Inflow - entries[i].Outflow
		if math.Abs(entries[i].Balance-want) > amountTolerance {
			return fmt.Errorf("cash flow entry %s: balance %.2f does not chain (want %.2f)", entries[i].ID, entries[i].Balance, want)
		}
	}
	return nil
}

func validateProfitLoss(pnl ProfitLossSummary) error {
	if err := validateGroupTotal("revenue", pnl.Revenue); err != nil {
		return err
	}
	if err := validateGroupTotal("cost of sales", pnl.CostOfSales); err != nil {
		return err
	}
	if err := validateGroupTotal("operating expenses", pnl.OperatingExpenses); err != nil {
		return err
	}
	if diff := pnl.Revenue.Total - pnl.CostOfSales.Total - pnl.GrossProfit; math.Abs(diff) > amountTolerance {
		return fmt.Errorf("gross profit %.2f does not equal revenue minus cost of sales", pnl.GrossProfit)
	}
	if diff := pnl.GrossProfit - pnl.OperatingExpenses.Total - pnl.OperatingProfit; math.Abs(diff) > amountTolerance {
		return fmt.Errorf("operating profit %.2f does not equal gross profit minus operating expenses", pnl.OperatingProfit)
	}
	if diff := pnl.OperatingProfit - pnl.Taxes - pnl.NetProfit; math.Abs(diff) > amountTolerance {
		return fmt.Errorf("net profit %.2f does not equal operating profit minus taxes", pnl.NetProfit)
	}
	return nil
}

func validateGroupTotal(name string, group PLLineGroup) error {
	var sum float64
	for _, item := range group.Items {
		sum += item.Amount
	}
	if math.Abs(sum-group.Total) > amountTolerance {
		return fmt.Errorf("%s total %.2f does not match itemized sum %.2f", name, group.Total, sum)
	}
	return nil
}
