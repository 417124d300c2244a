package finance

// AccountSummary is the derived view of a payables or receivables table:
// total owed, how much of it is overdue, and the overdue row count.
type AccountSummary struct {
	Total        float64 `json:"total"`
	Outstanding  float64 `json:"outstanding"`
	OverdueTotal float64 `json:"overdueTotal"`
	OverdueCount int     `json:"overdueCount"`
}

// SummarizeAccounts reduces account entries into totals. Paid rows count
// toward Total only.
func SummarizeAccounts(entries []AccountEntry) AccountSummary {
	var s AccountSummary
	for _, e := range entries {
		s.Total += e.Amount
		switch e.Status {
		case StatusPending:
			s.Outstanding += e.Amount
		case StatusOverdue:
			s.Outstanding += e.Amount
			s.OverdueTotal += e.Amount
			s.OverdueCount++
		}
	}
	return s
}

// CashFlowSummary is the derived view of the cash-flow ledger.
type CashFlowSummary struct {
	TotalInflow    float64 `json:"totalInflow"`
	TotalOutflow   float64 `json:"totalOutflow"`
	NetMovement    float64 `json:"netMovement"`
	ClosingBalance float64 `json:"closingBalance"`
}

// SummarizeCashFlow totals ledger movement. The closing balance is the
// authored balance of the final entry, not a recomputation.
func SummarizeCashFlow(entries []CashFlowEntry) CashFlowSummary {
	var s CashFlowSummary
	for _, e := range entries {
		s.TotalInflow += e.Inflow
		s.TotalOutflow += e.Outflow
	}
	s.NetMovement = s.TotalInflow - s.TotalOutflow
	if len(entries) > 0 {
		s.ClosingBalance = entries[len(entries)-1].Balance
	}
	return s
}

// BreakdownTotals sums the amount columns of both breakdown tables.
func BreakdownTotals(expenses []ExpenseCategoryEntry, income []IncomeSourceEntry) (expenseTotal, incomeTotal float64) {
	for _, e := range expenses {
		expenseTotal += e.Amount
	}
	for _, i := range income {
		incomeTotal += i.Amount
	}
	return expenseTotal, incomeTotal
}

// StatusBadge maps an account status to its display badge style. Unknown
// statuses fall back to a neutral badge.
func StatusBadge(status AccountStatus) string {
	switch status {
	case StatusPending:
		return "amber"
	case StatusOverdue:
		return "red"
	case StatusPaid:
		return "green"
	default:
		return "neutral"
	}
}
