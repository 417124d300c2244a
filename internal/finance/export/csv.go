package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/valuable-brands/backoffice/internal/finance"
)

// WriteKPICSV serialises the KPI cards to CSV.
func WriteKPICSV(w io.Writer, kpis []finance.FinancialKPI) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Indicator", "Value", "Change", "Change Type", "Period"}); err != nil {
		return err
	}
	for _, kpi := range kpis {
		if err := writer.Write([]string{
			kpi.Name,
			formatFloat(kpi.Value),
			formatFloat(kpi.Change),
			string(kpi.ChangeType),
			kpi.Period,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMonthlyCSV emits the monthly revenue/expense series as CSV.
func WriteMonthlyCSV(w io.Writer, records []finance.MonthlyFinanceRecord) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Month", "Revenue", "Expenses"}); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write([]string{rec.Month, formatFloat(rec.Revenue), formatFloat(rec.Expenses)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCashFlowCSV emits the ledger as CSV. Zero movement cells are left
// empty, matching the PDF rendering.
func WriteCashFlowCSV(w io.Writer, entries []finance.CashFlowEntry) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Date", "Description", "Category", "Inflow", "Outflow", "Balance"}); err != nil {
		return err
	}
	for _, e := range entries {
		inflow, outflow := "", ""
		if e.Inflow != 0 {
			inflow = formatFloat(e.Inflow)
		}
		if e.Outflow != 0 {
			outflow = formatFloat(e.Outflow)
		}
		if err := writer.Write([]string{e.Date, e.Description, e.Category, inflow, outflow, formatFloat(e.Balance)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteAccountsCSV emits payables or receivables as CSV.
func WriteAccountsCSV(w io.Writer, entries []finance.AccountEntry) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Party", "Invoice", "Due Date", "Amount", "Status"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.Party, e.InvoiceNumber, e.DueDate, formatFloat(e.Amount), string(e.Status)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
