package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/valuable-brands/backoffice/internal/finance"
	"github.com/valuable-brands/backoffice/internal/shared"
)

// Document is a fully assembled report ready for PDF conversion.
type Document struct {
	Type       Type
	Title      string
	Filename   string
	HTML       string
	FooterHTML string
}

// Builder assembles multi-section report documents from a finance dataset.
type Builder struct {
	company string
	now     func() time.Time
}

// NewBuilder constructs a Builder for the given company name.
func NewBuilder(company string) *Builder {
	return &Builder{company: company, now: time.Now}
}

// WithNow overrides the builder clock for tests.
func (b *Builder) WithNow(fn func() time.Time) *Builder {
	if fn != nil {
		b.now = fn
	}
	return b
}

// Build renders the HTML document for the requested report type. Period is
// a display label only; the dataset is not filtered by it.
func (b *Builder) Build(data finance.Dataset, typ Type, period string) (Document, error) {
	if data == nil {
		return Document{}, fmt.Errorf("report: dataset required")
	}
	if _, ok := titles[typ]; !ok {
		return Document{}, fmt.Errorf("report: unknown type %q", typ)
	}
	generatedAt := b.now()

	var w strings.Builder
	w.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	w.WriteString("body{font-family:sans-serif;margin:28px;color:#0f172a;}")
	w.WriteString("h1{font-size:22px;margin-bottom:2px;}h2{font-size:15px;margin:18px 0 6px;}")
	w.WriteString(".meta{color:#64748b;font-size:11px;margin-bottom:18px;}")
	w.WriteString("table{width:100%;border-collapse:collapse;margin-bottom:14px;font-size:11px;}")
	w.WriteString("th,td{border:1px solid #e2e8f0;padding:5px 7px;text-align:right;}")
	w.WriteString("th{text-align:left;background:#f1f5f9;}td.label{text-align:left;}")
	w.WriteString("tr.total td{font-weight:bold;background:#f8fafc;}")
	w.WriteString(".page-break{page-break-before:always;}")
	w.WriteString("</style></head><body>")

	w.WriteString(fmt.Sprintf("<h1>%s</h1>", escape(b.company)))
	w.WriteString(fmt.Sprintf("<h2>%s</h2>", escape(titles[typ])))
	w.WriteString(fmt.Sprintf("<p class=\"meta\">Period: %s &middot; Generated %s</p>",
		escape(period), generatedAt.Format("2 Jan 2006 15:04")))

	switch typ {
	case TypeSummary:
		writeKPISection(&w, data.KPIs())
		writeBreakdownSections(&w, data.IncomeBreakdown(), data.ExpenseBreakdown())
	case TypeDetailed:
		writeKPISection(&w, data.KPIs())
		writeBreakdownSections(&w, data.IncomeBreakdown(), data.ExpenseBreakdown())
		w.WriteString("<div class=\"page-break\"></div>")
		writeTransactionSection(&w, data.Transactions())
		w.WriteString("<div class=\"page-break\"></div>")
		writeCashflowSections(&w, data.CashFlow(), data.Payables(), data.Receivables())
	case TypeTransactions:
		writeTransactionSection(&w, data.Transactions())
	case TypeCashflow:
		writeCashflowSections(&w, data.CashFlow(), data.Payables(), data.Receivables())
	case TypePnL:
		writePnLSection(&w, data.ProfitLoss())
	}

	w.WriteString("</body></html>")

	return Document{
		Type:       typ,
		Title:      titles[typ],
		Filename:   Filename(b.company, typ, generatedAt),
		HTML:       w.String(),
		FooterHTML: footerHTML(b.company),
	}, nil
}

// footerHTML is the per-page footer fragment: page number, page count and
// the confidentiality notice. The pageNumber/totalPages spans are filled in
// by the PDF converter.
func footerHTML(company string) string {
	return fmt.Sprintf("<html><head><style>p{font-family:sans-serif;font-size:8px;color:#64748b;width:100%%;text-align:center;}</style></head><body><p>%s &mdash; Confidential. For internal use only. Page <span class=\"pageNumber\"></span> of <span class=\"totalPages\"></span></p></body></html>", escape(company))
}

// formatKPIValue applies the display rule for KPI cards: margin and ROI
// metrics read as percentages, everything else as currency.
func formatKPIValue(kpi finance.FinancialKPI) string {
	name := strings.ToLower(kpi.Name)
	if strings.Contains(name, "margin") || strings.Contains(name, "roi") {
		return shared.FormatPercent(kpi.Value)
	}
	return shared.FormatKES(kpi.Value)
}

func formatChange(kpi finance.FinancialKPI) string {
	switch kpi.ChangeType {
	case finance.ChangeIncrease:
		return fmt.Sprintf("+%.1f%%", kpi.Change)
	case finance.ChangeDecrease:
		return fmt.Sprintf("-%.1f%%", kpi.Change)
	default:
		return "0.0%"
	}
}

func writeKPISection(w *strings.Builder, kpis []finance.FinancialKPI) {
	w.WriteString("<h2>Key Performance Indicators</h2><table><thead><tr><th>Indicator</th><th>Value</th><th>Change</th><th>Period</th></tr></thead><tbody>")
	for _, kpi := range kpis {
		w.WriteString("<tr><td class=\"label\">")
		w.WriteString(escape(kpi.Name))
		w.WriteString("</td><td>")
		w.WriteString(escape(formatKPIValue(kpi)))
		w.WriteString("</td><td>")
		w.WriteString(escape(formatChange(kpi)))
		w.WriteString("</td><td>")
		w.WriteString(escape(kpi.Period))
		w.WriteString("</td></tr>")
	}
	w.WriteString("</tbody></table>")
}

func writeBreakdownSections(w *strings.Builder, income []finance.IncomeSourceEntry, expenses []finance.ExpenseCategoryEntry) {
	w.WriteString("<h2>Income Breakdown</h2><table><thead><tr><th>Source</th><th>Amount</th><th>Share</th></tr></thead><tbody>")
	for _, e := range income {
		w.WriteString("<tr><td class=\"label\">")
		w.WriteString(escape(e.Source))
		w.WriteString("</td><td>")
		w.WriteString(escape(shared.FormatKES(e.Amount)))
		w.WriteString("</td><td>")
		w.WriteString(escape(shared.FormatPercent(e.Percentage)))
		w.WriteString("</td></tr>")
	}
	w.WriteString("</tbody></table>")

	w.WriteString("<h2>Expense Breakdown</h2><table><thead><tr><th>Category</th><th>Amount</th><th>Share</th></tr></thead><tbody>")
	for _, e := range expenses {
		w.WriteString("<tr><td class=\"label\">")
		w.WriteString(escape(e.Category))
		w.WriteString("</td><td>")
		w.WriteString(escape(shared.FormatKES(e.Amount)))
		w.WriteString("</td><td>")
		w.WriteString(escape(shared.FormatPercent(e.Percentage)))
		w.WriteString("</td></tr>")
	}
	w.WriteString("</tbody></table>")
}

// writeTransactionSection renders one row per transaction with income and
// expense amounts in separate columns; only the column matching the
// transaction type is populated.
func writeTransactionSection(w *strings.Builder, txs []finance.Transaction) {
	w.WriteString("<h2>Transactions</h2><table><thead><tr><th>Date</th><th>Category</th><th>Description</th><th>Income</th><th>Expense</th><th>Status</th></tr></thead><tbody>")
	for _, tx := range txs {
		income, expense := "", ""
		if tx.Type == finance.TransactionIncome {
			income = shared.FormatKES(tx.Amount)
		} else {
			expense = shared.FormatKES(tx.Amount)
		}
		w.WriteString("<tr><td class=\"label\">")
		w.WriteString(escape(tx.Date))
		w.WriteString("</td><td class=\"label\">")
		w.WriteString(escape(tx.Category))
		w.WriteString("</td><td class=\"label\">")
		w.WriteString(escape(tx.Description))
		w.WriteString("</td><td>")
		w.WriteString(escape(income))
		w.WriteString("</td><td>")
		w.WriteString(escape(expense))
		w.WriteString("</td><td>")
		w.WriteString(escape(tx.PaymentStatus))
		w.WriteString("</td></tr>")
	}
	w.WriteString("</tbody></table>")
}

// writeCashflowSections renders the ledger followed by payables and
// receivables. Zero inflow/outflow cells are left blank rather than "KES 0".
func writeCashflowSections(w *strings.Builder, entries []finance.CashFlowEntry, payables, receivables []finance.AccountEntry) {
	w.WriteString("<h2>Cash Flow</h2><table><thead><tr><th>Date</th><th>Description</th><th>Category</th><th>Inflow</th><th>Outflow</th><th>Balance</th></tr></thead><tbody>")
	for _, e := range entries {
		inflow, outflow := "", ""
		if e.Inflow != 0 {
			inflow = shared.FormatKES(e.Inflow)
		}
		if e.Outflow != 0 {
			outflow = shared.FormatKES(e.Outflow)
		}
		w.WriteString("<tr><td class=\"label\">")
		w.WriteString(escape(e.Date))
		w.WriteString("</td><td class=\"label\">")
		w.WriteString(escape(e.Description))
		w.WriteString("</td><td class=\"label\">")
		w.WriteString(escape(e.Category))
		w.WriteString("</td><td>")
		w.WriteString(escape(inflow))
		w.WriteString("</td><td>")
		w.WriteString(escape(outflow))
		w.WriteString("</td><td>")
		w.WriteString(escape(shared.FormatKES(e.Balance)))
		w.WriteString("</td></tr>")
	}
	w.WriteString("</tbody></table>")

	writeAccountSection(w, "Accounts Payable", "Vendor", payables)
	writeAccountSection(w, "Accounts Receivable", "Client", receivables)
}

func writeAccountSection(w *strings.Builder, heading, partyHeader string, entries []finance.AccountEntry) {
	w.WriteString(fmt.Sprintf("<h2>%s</h2><table><thead><tr><th>%s</th><th>Invoice</th><th>Due Date</th><th>Amount</th><th>Status</th></tr></thead><tbody>", escape(heading), escape(partyHeader)))
	for _, e := range entries {
		w.WriteString("<tr><td class=\"label\">")
		w.WriteString(escape(e.Party))
		w.WriteString("</td><td class=\"label\">")
		w.WriteString(escape(e.InvoiceNumber))
		w.WriteString("</td><td class=\"label\">")
		w.WriteString(escape(e.DueDate))
		w.WriteString("</td><td>")
		w.WriteString(escape(shared.FormatKES(e.Amount)))
		w.WriteString("</td><td>")
		w.WriteString(escape(string(e.Status)))
		w.WriteString("</td></tr>")
	}
	w.WriteString("</tbody></table>")
}

// writePnLSection renders each statement group with a highlighted total
// row, followed by the highlighted profit lines.
func writePnLSection(w *strings.Builder, pnl finance.ProfitLossSummary) {
	w.WriteString("<h2>Profit &amp; Loss</h2><table><tbody>")

	writePnLGroup(w, "Revenue", pnl.Revenue)
	writePnLGroup(w, "Cost of Sales", pnl.CostOfSales)
	writePnLTotal(w, "Gross Profit", pnl.GrossProfit)
	writePnLGroup(w, "Operating Expenses", pnl.OperatingExpenses)
	writePnLTotal(w, "Operating Profit", pnl.OperatingProfit)

	w.WriteString("<tr><td class=\"label\">Taxes</td><td>")
	w.WriteString(escape(shared.FormatKES(pnl.Taxes)))
	w.WriteString("</td></tr>")
	writePnLTotal(w, "Net Profit", pnl.NetProfit)

	w.WriteString("</tbody></table>")
}

func writePnLGroup(w *strings.Builder, name string, group finance.PLLineGroup) {
	w.WriteString(fmt.Sprintf("<tr><th colspan=\"2\">%s</th></tr>", escape(name)))
	for _, item := range group.Items {
		w.WriteString("<tr><td class=\"label\">")
		w.WriteString(escape(item.Label))
		w.WriteString("</td><td>")
		w.WriteString(escape(shared.FormatKES(item.Amount)))
		w.WriteString("</td></tr>")
	}
	writePnLTotal(w, "Total "+name, group.Total)
}

func writePnLTotal(w *strings.Builder, label string, amount float64) {
	w.WriteString("<tr class=\"total\"><td class=\"label\">")
	w.WriteString(escape(label))
	w.WriteString("</td><td>")
	w.WriteString(escape(shared.FormatKES(amount)))
	w.WriteString("</td></tr>")
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&#39;",
)

func escape(v string) string {
	return htmlEscaper.Replace(v)
}
