package finance

import (
	"context"
	"fmt"
	"regexp"
)

var periodPattern = regexp.MustCompile(`^\d{4}(-Q[1-4])?$`)

// DefaultPeriod is used when the caller supplies no period.
const DefaultPeriod = "2025"

// ValidatePeriod accepts a fiscal year ("2025") or quarter ("2025-Q3").
// The period scopes display labels only; the underlying collections are
// authored per-year and are not filtered by it.
func ValidatePeriod(period string) error {
	if !periodPattern.MatchString(period) {
		return fmt.Errorf("invalid period %q", period)
	}
	return nil
}

// CashFlowStatement pairs the ledger with its derived totals.
type CashFlowStatement struct {
	Entries []CashFlowEntry `json:"entries"`
	Summary CashFlowSummary `json:"summary"`
}

// AccountsView pairs payables and receivables with their summaries.
type AccountsView struct {
	Payables          []AccountEntry `json:"payables"`
	PayableSummary    AccountSummary `json:"payableSummary"`
	Receivables       []AccountEntry `json:"receivables"`
	ReceivableSummary AccountSummary `json:"receivableSummary"`
}

// BreakdownView pairs the expense and income breakdowns with totals.
type BreakdownView struct {
	Expenses     []ExpenseCategoryEntry `json:"expenses"`
	Income       []IncomeSourceEntry    `json:"income"`
	ExpenseTotal float64                `json:"expenseTotal"`
	IncomeTotal  float64                `json:"incomeTotal"`
}

// Service coordinates dataset access with the cache layer. The dataset is
// validated once at construction so malformed fixtures fail fast instead of
// surfacing as rendering errors.
type Service struct {
	data  Dataset
	cache *Cache
}

// NewService wires a Dataset with a Cache helper.
func NewService(data Dataset, cache *Cache) (*Service, error) {
	if data == nil {
		return nil, fmt.Errorf("finance: dataset required")
	}
	if err := ValidateDataset(data); err != nil {
		return nil, fmt.Errorf("finance: dataset invalid: %w", err)
	}
	return &Service{data: data, cache: cache}, nil
}

// Dataset exposes the validated dataset for the report generator, which
// reads all collections in one pass.
func (s *Service) Dataset() Dataset {
	return s.data
}

// KPIList returns the KPI cards.
func (s *Service) KPIList(ctx context.Context) ([]FinancialKPI, error) {
	var kpis []FinancialKPI
	err := s.fetch(ctx, "kpi", &kpis, func(context.Context) (interface{}, error) {
		return s.data.KPIs(), nil
	})
	return kpis, err
}

// MonthlyTrend returns the monthly revenue/expense series in chart order.
func (s *Service) MonthlyTrend(ctx context.Context) ([]MonthlyFinanceRecord, error) {
	var series []MonthlyFinanceRecord
	err := s.fetch(ctx, "monthly", &series, func(context.Context) (interface{}, error) {
		return s.data.MonthlySeries(), nil
	})
	return series, err
}

// CashFlowLedger returns the ledger with derived totals.
func (s *Service) CashFlowLedger(ctx context.Context) (CashFlowStatement, error) {
	var stmt CashFlowStatement
	err := s.fetch(ctx, "cashflow", &stmt, func(context.Context) (interface{}, error) {
		entries := s.data.CashFlow()
		return CashFlowStatement{Entries: entries, Summary: SummarizeCashFlow(entries)}, nil
	})
	return stmt, err
}

// Accounts returns payables and receivables with summaries.
func (s *Service) Accounts(ctx context.Context) (AccountsView, error) {
	var view AccountsView
	err := s.fetch(ctx, "accounts", &view, func(context.Context) (interface{}, error) {
		payables := s.data.Payables()
		receivables := s.data.Receivables()
		return AccountsView{
			Payables:          payables,
			PayableSummary:    SummarizeAccounts(payables),
			Receivables:       receivables,
			ReceivableSummary: SummarizeAccounts(receivables),
		}, nil
	})
	return view, err
}

// Breakdowns returns the expense and income category splits.
func (s *Service) Breakdowns(ctx context.Context) (BreakdownView, error) {
	var view BreakdownView
	err := s.fetch(ctx, "breakdowns", &view, func(context.Context) (interface{}, error) {
		expenses := s.data.ExpenseBreakdown()
		income := s.data.IncomeBreakdown()
		expenseTotal, incomeTotal := BreakdownTotals(expenses, income)
		return BreakdownView{Expenses: expenses, Income: income, ExpenseTotal: expenseTotal, IncomeTotal: incomeTotal}, nil
	})
	return view, err
}

// TransactionRegister returns the transaction rows.
func (s *Service) TransactionRegister(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	err := s.fetch(ctx, "transactions", &txs, func(context.Context) (interface{}, error) {
		return s.data.Transactions(), nil
	})
	return txs, err
}

// ProfitLossStatement returns the P&L summary.
func (s *Service) ProfitLossStatement(ctx context.Context) (ProfitLossSummary, error) {
	var pnl ProfitLossSummary
	err := s.fetch(ctx, "pnl", &pnl, func(context.Context) (interface{}, error) {
		return s.data.ProfitLoss(), nil
	})
	return pnl, err
}

// QuarterlyComparison returns the quarter-over-quarter view.
func (s *Service) QuarterlyComparison(ctx context.Context) ([]QuarterComparison, error) {
	var quarters []QuarterComparison
	err := s.fetch(ctx, "quarterly", &quarters, func(context.Context) (interface{}, error) {
		return s.data.QuarterlyComparison(), nil
	})
	return quarters, err
}

func (s *Service) fetch(ctx context.Context, section string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, "finance", section)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}
