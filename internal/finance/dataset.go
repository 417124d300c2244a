package finance

import "time"

// StaticDataset serves the authored finance collections. Values are fixed at
// construction and never mutated; accessors return copies so callers cannot
// alter the backing data.
type StaticDataset struct {
	monthly      []MonthlyFinanceRecord
	cashFlow     []CashFlowEntry
	payables     []AccountEntry
	receivables  []AccountEntry
	expenses     []ExpenseCategoryEntry
	income       []IncomeSourceEntry
	kpis         []FinancialKPI
	pnl          ProfitLossSummary
	quarters     []QuarterComparison
	transactions []Transaction
	now          func() time.Time
}

// NewStaticDataset builds the dataset with the authored figures.
func NewStaticDataset() *StaticDataset {
	return &StaticDataset{
		monthly: []MonthlyFinanceRecord{
			{Month: "Jan", Revenue: 2400000, Expenses: 1900000},
			{Month: "Feb", Revenue: 2700000, Expenses: 2050000},
			{Month: "Mar", Revenue: 3100000, Expenses: 2150000},
			{Month: "Apr", Revenue: 2900000, Expenses: 2300000},
			{Month: "May", Revenue: 3300000, Expenses: 2500000},
			{Month: "Jun", Revenue: 3400000, Expenses: 2600000},
			{Month: "Jul", Revenue: 3500000, Expenses: 2700000},
			{Month: "Aug", Revenue: 3400000, Expenses: 2650000},
			{Month: "Sep", Revenue: 3500000, Expenses: 2750000},
			{Month: "Oct", Revenue: 3600000, Expenses: 2800000},
			{Month: "Nov", Revenue: 3500000, Expenses: 2750000},
			{Month: "Dec", Revenue: 3700000, Expenses: 2850000},
		},
		cashFlow: []CashFlowEntry{
			{ID: "CF-001", Date: "2025-07-01", Description: "Sponsorship payment - Absa Bank", Category: "Sponsorship", Inflow: 2500000, Outflow: 0, Balance: 6800000},
			{ID: "CF-002", Date: "2025-07-03", Description: "Venue deposit - KICC", Category: "Venue", Inflow: 0, Outflow: 850000, Balance: 5950000},
			{ID: "CF-003", Date: "2025-07-08", Description: "Ticket sales settlement", Category: "Ticketing", Inflow: 1240000, Outflow: 0, Balance: 7190000},
			{ID: "CF-004", Date: "2025-07-12", Description: "Staff payroll", Category: "Payroll", Inflow: 0, Outflow: 1400000, Balance: 5790000},
			{ID: "CF-005", Date: "2025-07-15", Description: "Registration fees - SME Expo", Category: "Registration", Inflow: 680000, Outflow: 0, Balance: 6470000},
			{ID: "CF-006", Date: "2025-07-21", Description: "Digital marketing campaign", Category: "Marketing", Inflow: 0, Outflow: 520000, Balance: 5950000},
			{ID: "CF-007", Date: "2025-07-28", Description: "Partnership installment - Safaricom", Category: "Partnership", Inflow: 1150000, Outflow: 0, Balance: 7100000},
		},
		payables: []AccountEntry{
			{ID: "AP-001", Party: "KICC Convention Centre", InvoiceNumber: "INV-2041", DueDate: "2025-08-05", Amount: 1250000, Status: StatusPending},
			{ID: "AP-002", Party: "Savanna Catering Ltd", InvoiceNumber: "INV-2042", DueDate: "2025-07-20", Amount: 640000, Status: StatusOverdue},
			{ID: "AP-003", Party: "Stagecraft Productions", InvoiceNumber: "INV-2043", DueDate: "2025-08-15", Amount: 980000, Status: StatusPending},
			{ID: "AP-004", Party: "Nairobi Print House", InvoiceNumber: "INV-2044", DueDate: "2025-07-10", Amount: 210000, Status: StatusPaid},
			{ID: "AP-005", Party: "Acme Security Services", InvoiceNumber: "INV-2045", DueDate: "2025-07-18", Amount: 330000, Status: StatusOverdue},
		},
		receivables: []AccountEntry{
			{ID: "AR-001", Party: "Absa Bank Kenya", InvoiceNumber: "VB-1101", DueDate: "2025-08-10", Amount: 2500000, Status: StatusPending},
			{ID: "AR-002", Party: "Safaricom PLC", InvoiceNumber: "VB-1102", DueDate: "2025-07-25", Amount: 1150000, Status: StatusPaid},
			{ID: "AR-003", Party: "East African Breweries", InvoiceNumber: "VB-1103", DueDate: "2025-07-12", Amount: 900000, Status: StatusOverdue},
			{ID: "AR-004", Party: "Kenya Airways", InvoiceNumber: "VB-1104", DueDate: "2025-08-20", Amount: 1400000, Status: StatusPending},
		},
		expenses: []ExpenseCategoryEntry{
			{Category: "Salaries & Wages", Amount: 10200000, Percentage: 34, Color: "#0ea5e9"},
			{Category: "Venue & Production", Amount: 8400000, Percentage: 28, Color: "#f97316"},
			{Category: "Marketing", Amount: 4500000, Percentage: 15, Color: "#22c55e"},
			{Category: "Catering", Amount: 3300000, Percentage: 11, Color: "#a855f7"},
			{Category: "Office & Admin", Amount: 2400000, Percentage: 8, Color: "#eab308"},
			{Category: "Travel", Amount: 1200000, Percentage: 4, Color: "#64748b"},
		},
		income: []IncomeSourceEntry{
			{Source: "Sponsorships", Amount: 18500000, Percentage: 47.4, Color: "#0ea5e9"},
			{Source: "Ticket Sales", Amount: 9200000, Percentage: 23.6, Color: "#f97316"},
			{Source: "Registration Fees", Amount: 6400000, Percentage: 16.4, Color: "#22c55e"},
			{Source: "Partnerships", Amount: 4100000, Percentage: 10.5, Color: "#a855f7"},
			{Source: "Other", Amount: 800000, Percentage: 2.1, Color: "#64748b"},
		},
		kpis: []FinancialKPI{
			{Name: "Total Revenue", Value: 39000000, Change: 12.4, ChangeType: ChangeIncrease, Period: "FY 2025"},
			{Name: "Net Profit", Value: 6300000, Change: 8.2, ChangeType: ChangeIncrease, Period: "FY 2025"},
			{Name: "Operating Costs", Value: 16000000, Change: 3.1, ChangeType: ChangeIncrease, Period: "FY 2025"},
			{Name: "Profit Margin", Value: 16.2, Change: 1.4, ChangeType: ChangeIncrease, Period: "FY 2025"},
			{Name: "ROI", Value: 23.5, Change: 2.2, ChangeType: ChangeDecrease, Period: "FY 2025"},
			{Name: "Cash Balance", Value: 7100000, Change: 5.6, ChangeType: ChangeIncrease, Period: "FY 2025"},
		},
		pnl: ProfitLossSummary{
			Period: "FY 2025",
			Revenue: PLLineGroup{
				Items: []PLLineItem{
					{Label: "Sponsorships", Amount: 18500000},
					{Label: "Ticket Sales", Amount: 9200000},
					{Label: "Registration Fees", Amount: 6400000},
					{Label: "Partnerships", Amount: 4100000},
					{Label: "Other", Amount: 800000},
				},
				Total: 39000000,
			},
			CostOfSales: PLLineGroup{
				Items: []PLLineItem{
					{Label: "Venue Hire", Amount: 5200000},
					{Label: "Event Production", Amount: 4600000},
					{Label: "Catering", Amount: 3100000},
					{Label: "Awards & Trophies", Amount: 1100000},
				},
				Total: 14000000,
			},
			GrossProfit: 25000000,
			OperatingExpenses: PLLineGroup{
				Items: []PLLineItem{
					{Label: "Salaries & Wages", Amount: 8400000},
					{Label: "Marketing", Amount: 3600000},
					{Label: "Office & Admin", Amount: 1900000},
					{Label: "Travel", Amount: 1300000},
					{Label: "Technology", Amount: 800000},
				},
				Total: 16000000,
			},
			OperatingProfit: 9000000,
			Taxes:           2700000,
			NetProfit:       6300000,
		},
		quarters: []QuarterComparison{
			{Quarter: "Q1 2025", Revenue: 8200000, Expenses: 6100000, Profit: 2100000},
			{Quarter: "Q2 2025", Revenue: 9600000, Expenses: 7400000, Profit: 2200000},
			{Quarter: "Q3 2025", Revenue: 10400000, Expenses: 8100000, Profit: 2300000},
			{Quarter: "Q4 2025", Revenue: 10800000, Expenses: 8400000, Profit: 2400000},
		},
		transactions: []Transaction{
			{Date: "2025-07-01", Type: TransactionIncome, Category: "Sponsorship", Description: "Absa Bank headline sponsorship", Amount: 2500000, PaymentStatus: "Paid"},
			{Date: "2025-07-03", Type: TransactionExpense, Category: "Venue", Description: "KICC venue deposit", Amount: 850000, PaymentStatus: "Paid"},
			{Date: "2025-07-08", Type: TransactionIncome, Category: "Ticketing", Description: "Gala dinner ticket settlement", Amount: 1240000, PaymentStatus: "Paid"},
			{Date: "2025-07-12", Type: TransactionExpense, Category: "Payroll", Description: "July staff payroll", Amount: 1400000, PaymentStatus: "Paid"},
			{Date: "2025-07-15", Type: TransactionIncome, Category: "Registration", Description: "SME Expo registration fees", Amount: 680000, PaymentStatus: "Paid"},
			{Date: "2025-07-21", Type: TransactionExpense, Category: "Marketing", Description: "Digital marketing campaign", Amount: 520000, PaymentStatus: "Pending"},
			{Date: "2025-07-28", Type: TransactionIncome, Category: "Partnership", Description: "Safaricom partnership installment", Amount: 1150000, PaymentStatus: "Paid"},
		},
		now: time.Now,
	}
}

// WithNow overrides the dataset clock for tests.
func (d *StaticDataset) WithNow(fn func() time.Time) *StaticDataset {
	if fn != nil {
		d.now = fn
	}
	return d
}

func (d *StaticDataset) MonthlySeries() []MonthlyFinanceRecord {
	return append([]MonthlyFinanceRecord(nil), d.monthly...)
}

func (d *StaticDataset) CashFlow() []CashFlowEntry {
	return append([]CashFlowEntry(nil), d.cashFlow...)
}

func (d *StaticDataset) Payables() []AccountEntry {
	return append([]AccountEntry(nil), d.payables...)
}

func (d *StaticDataset) Receivables() []AccountEntry {
	return append([]AccountEntry(nil), d.receivables...)
}

func (d *StaticDataset) ExpenseBreakdown() []ExpenseCategoryEntry {
	return append([]ExpenseCategoryEntry(nil), d.expenses...)
}

func (d *StaticDataset) IncomeBreakdown() []IncomeSourceEntry {
	return append([]IncomeSourceEntry(nil), d.income...)
}

func (d *StaticDataset) KPIs() []FinancialKPI {
	return append([]FinancialKPI(nil), d.kpis...)
}

func (d *StaticDataset) ProfitLoss() ProfitLossSummary {
	return d.pnl
}

func (d *StaticDataset) QuarterlyComparison() []QuarterComparison {
	return append([]QuarterComparison(nil), d.quarters...)
}

func (d *StaticDataset) Transactions() []Transaction {
	return append([]Transaction(nil), d.transactions...)
}

func (d *StaticDataset) GeneratedAt() time.Time {
	return d.now()
}
