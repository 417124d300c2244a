package finance

import "time"

// AccountStatus tracks settlement state for payables and receivables.
type AccountStatus string

const (
	StatusPending AccountStatus = "Pending"
	StatusOverdue AccountStatus = "Overdue"
	StatusPaid    AccountStatus = "Paid"
)

// ChangeType classifies a KPI's period-over-period movement.
type ChangeType string

const (
	ChangeIncrease ChangeType = "increase"
	ChangeDecrease ChangeType = "decrease"
	ChangeFlat     ChangeType = "flat"
)

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// MonthlyFinanceRecord is one calendar month of revenue and expenses.
// Slice ordering is chronological and significant for chart axes.
type MonthlyFinanceRecord struct {
	Month    string  `json:"month" validate:"required"`
	Revenue  float64 `json:"revenue" validate:"gte=0"`
	Expenses float64 `json:"expenses" validate:"gte=0"`
}

// CashFlowEntry is one row of the cash-flow ledger. Balance is authored
// data, expected to chain as prior balance + inflow - outflow.
type CashFlowEntry struct {
	ID          string  `json:"id" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category"`
	Inflow      float64 `json:"inflow" validate:"gte=0"`
	Outflow     float64 `json:"outflow" validate:"gte=0"`
	Balance     float64 `json:"balance"`
}

// AccountEntry is a payable (Party = vendor) or receivable (Party = client).
type AccountEntry struct {
	ID            string        `json:"id" validate:"required"`
	Party         string        `json:"party" validate:"required"`
	InvoiceNumber string        `json:"invoiceNumber" validate:"required"`
	DueDate       string        `json:"dueDate" validate:"required"`
	Amount        float64       `json:"amount" validate:"gte=0"`
	Status        AccountStatus `json:"status" validate:"oneof=Pending Overdue Paid"`
}

// ExpenseCategoryEntry is one slice of the expense breakdown.
type ExpenseCategoryEntry struct {
	Category   string  `json:"category" validate:"required"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Color      string  `json:"color" validate:"required"`
}

// IncomeSourceEntry is one slice of the income breakdown.
type IncomeSourceEntry struct {
	Source     string  `json:"source" validate:"required"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Color      string  `json:"color" validate:"required"`
}

// FinancialKPI is a named metric with its period-over-period change.
type FinancialKPI struct {
	Name       string     `json:"name" validate:"required"`
	Value      float64    `json:"value"`
	Change     float64    `json:"change"`
	ChangeType ChangeType `json:"changeType" validate:"oneof=increase decrease flat"`
	Period     string     `json:"period" validate:"required"`
}

// PLLineGroup is an itemized section of the P&L statement with its total.
type PLLineGroup struct {
	Items []PLLineItem `json:"items" validate:"required,dive"`
	Total float64      `json:"total"`
}

// PLLineItem is a single labelled amount within a P&L group.
type PLLineItem struct {
	Label  string  `json:"label" validate:"required"`
	Amount float64 `json:"amount"`
}

// ProfitLossSummary is the nested P&L statement. Totals are authored data;
// Validate checks they agree with the itemized lines.
type ProfitLossSummary struct {
	Period            string      `json:"period" validate:"required"`
	Revenue           PLLineGroup `json:"revenue"`
	CostOfSales       PLLineGroup `json:"costOfSales"`
	GrossProfit       float64     `json:"grossProfit"`
	OperatingExpenses PLLineGroup `json:"operatingExpenses"`
	OperatingProfit   float64     `json:"operatingProfit"`
	Taxes             float64     `json:"taxes"`
	NetProfit         float64     `json:"netProfit"`
}

// Transaction is one line of the transaction register.
type Transaction struct {
	Date          string          `json:"date" validate:"required"`
	Type          TransactionType `json:"type" validate:"oneof=Income Expense"`
	Category      string          `json:"category"`
	Description   string          `json:"description" validate:"required"`
	Amount        float64         `json:"amount" validate:"gte=0"`
	PaymentStatus string          `json:"paymentStatus"`
}

// QuarterComparison holds one quarter of the quarter-over-quarter view.
type QuarterComparison struct {
	Quarter  string  `json:"quarter" validate:"required"`
	Revenue  float64 `json:"revenue" validate:"gte=0"`
	Expenses float64 `json:"expenses" validate:"gte=0"`
	Profit   float64 `json:"profit"`
}

// Dataset provides the finance collections consumed by charts, tables and
// the report generator. The period selector on the analytics page is
// accepted upstream but never narrows these collections.
type Dataset interface {
	MonthlySeries() []MonthlyFinanceRecord
	CashFlow() []CashFlowEntry
	Payables() []AccountEntry
	Receivables() []AccountEntry
	ExpenseBreakdown() []ExpenseCategoryEntry
	IncomeBreakdown() []IncomeSourceEntry
	KPIs() []FinancialKPI
	ProfitLoss() ProfitLossSummary
	QuarterlyComparison() []QuarterComparison
	Transactions() []Transaction
	GeneratedAt() time.Time
}
