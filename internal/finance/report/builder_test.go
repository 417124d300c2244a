package report

import (
	"strings"
	"testing"
	"time"

	"github.com/valuable-brands/backoffice/internal/finance"
)

var testClock = func() time.Time {
	return time.Date(2025, 8, 14, 10, 30, 0, 0, time.UTC)
}

func newTestBuilder() *Builder {
	return NewBuilder("Valuable Brands").WithNow(testClock)
}

func TestParseType(t *testing.T) {
	for _, valid := range []string{"summary", "detailed", "transactions", "cashflow", "pnl"} {
		if _, err := ParseType(valid); err != nil {
			t.Fatalf("expected %q to parse: %v", valid, err)
		}
	}
	if _, err := ParseType("quarterly"); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestFilenameConvention(t *testing.T) {
	got := Filename("Valuable Brands", TypeSummary, testClock())
	want := "VB_Financial_Summary_Report_2025-08-14.pdf"
	if got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestSummaryFormatsMarginAndROIAsPercent(t *testing.T) {
	doc, err := newTestBuilder().Build(finance.NewStaticDataset(), TypeSummary, "2025")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !strings.Contains(doc.HTML, "<td>16.2%</td>") {
		t.Fatalf("profit margin should render as percentage")
	}
	if !strings.Contains(doc.HTML, "<td>23.5%</td>") {
		t.Fatalf("ROI should render as percentage")
	}
	if !strings.Contains(doc.HTML, "KES 39,000,000") {
		t.Fatalf("total revenue should render through the currency formatter")
	}
	if strings.Contains(doc.HTML, "KES 16.2") || strings.Contains(doc.HTML, "KES 23.5") {
		t.Fatalf("percentage KPIs must not be currency formatted")
	}
}

func TestCashflowReportRowsMatchLedger(t *testing.T) {
	data := finance.NewStaticDataset()
	doc, err := newTestBuilder().Build(data, TypeCashflow, "2025")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	entries := data.CashFlow()
	cursor := 0
	for _, e := range entries {
		idx := strings.Index(doc.HTML[cursor:], e.Description)
		if idx < 0 {
			t.Fatalf("entry %s missing or out of order", e.ID)
		}
		cursor += idx
	}

	// Zero inflow/outflow cells stay blank, never "KES 0".
	if strings.Contains(doc.HTML, "KES 0<") {
		t.Fatalf("zero movement cells must be blank")
	}
	if !strings.Contains(doc.HTML, "<td></td>") {
		t.Fatalf("expected blank cells for zero inflow/outflow")
	}
}

func TestPnLReportHighlightsTotals(t *testing.T) {
	doc, err := newTestBuilder().Build(finance.NewStaticDataset(), TypePnL, "FY 2025")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, label := range []string{"Total Revenue", "Total Cost of Sales", "Gross Profit", "Total Operating Expenses", "Operating Profit", "Net Profit"} {
		needle := "<tr class=\"total\"><td class=\"label\">" + label
		if !strings.Contains(doc.HTML, needle) {
			t.Fatalf("missing highlighted total row for %s", label)
		}
	}
	if !strings.Contains(doc.HTML, "KES 6,300,000") {
		t.Fatalf("net profit amount missing")
	}
}

func TestTransactionReportSplitsColumns(t *testing.T) {
	doc, err := newTestBuilder().Build(finance.NewStaticDataset(), TypeTransactions, "2025")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	// An income row carries the amount in the income column and a blank
	// expense column.
	if !strings.Contains(doc.HTML, "<td>KES 2,500,000</td><td></td>") {
		t.Fatalf("income transaction should populate only the income column")
	}
	if !strings.Contains(doc.HTML, "<td></td><td>KES 850,000</td>") {
		t.Fatalf("expense transaction should populate only the expense column")
	}
}

func TestDetailedReportInsertsPageBreaks(t *testing.T) {
	doc, err := newTestBuilder().Build(finance.NewStaticDataset(), TypeDetailed, "2025")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := strings.Count(doc.HTML, "page-break"); got < 2 {
		t.Fatalf("expected page breaks before transactions and cash flow, got %d", got)
	}
}

func TestFooterCarriesPageNumberAndNotice(t *testing.T) {
	doc, err := newTestBuilder().Build(finance.NewStaticDataset(), TypeSummary, "2025")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	for _, needle := range []string{"pageNumber", "totalPages", "Confidential"} {
		if !strings.Contains(doc.FooterHTML, needle) {
			t.Fatalf("footer missing %s", needle)
		}
	}
}

func TestBuildRejectsUnknownType(t *testing.T) {
	if _, err := newTestBuilder().Build(finance.NewStaticDataset(), Type("weekly"), "2025"); err == nil {
		t.Fatal("expected unknown type error")
	}
}
