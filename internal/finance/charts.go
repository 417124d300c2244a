package finance

// ChartSeries is one named series of a bar chart spec.
type ChartSeries struct {
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// BarChartSpec is a declarative two-series bar chart: labels along the x
// axis and formatted values for tooltips/legends. Rendering is left to the
// SVG renderer or a client-side library.
type BarChartSpec struct {
	Title           string        `json:"title"`
	Labels          []string      `json:"labels"`
	Series          []ChartSeries `json:"series"`
	FormattedValues [][]string    `json:"formattedValues"`
}

// PieSlice is one slice of a pie chart spec. Color comes straight from the
// dataset entry; no palette is computed.
type PieSlice struct {
	Label          string  `json:"label"`
	Value          float64 `json:"value"`
	Percentage     float64 `json:"percentage"`
	Color          string  `json:"color"`
	FormattedValue string  `json:"formattedValue"`
}

// PieChartSpec is a declarative pie chart.
type PieChartSpec struct {
	Title  string     `json:"title"`
	Slices []PieSlice `json:"slices"`
}

// CurrencyFormatter renders an amount for display inside a chart spec.
type CurrencyFormatter func(float64) string

// MonthlyBarSpec maps the monthly series to a revenue-vs-expenses bar spec.
func MonthlyBarSpec(records []MonthlyFinanceRecord, format CurrencyFormatter) BarChartSpec {
	spec := BarChartSpec{
		Title: "Revenue vs Expenses",
		Series: []ChartSeries{
			{Label: "Revenue", Color: "#0ea5e9"},
			{Label: "Expenses", Color: "#f97316"},
		},
	}
	for _, rec := range records {
		spec.Labels = append(spec.Labels, rec.Month)
		spec.Series[0].Values = append(spec.Series[0].Values, rec.Revenue)
		spec.Series[1].Values = append(spec.Series[1].Values, rec.Expenses)
		spec.FormattedValues = append(spec.FormattedValues, []string{format(rec.Revenue), format(rec.Expenses)})
	}
	return spec
}

// QuarterlyBarSpec maps the quarterly comparison to a bar spec.
func QuarterlyBarSpec(quarters []QuarterComparison, format CurrencyFormatter) BarChartSpec {
	spec := BarChartSpec{
		Title: "Quarterly Comparison",
		Series: []ChartSeries{
			{Label: "Revenue", Color: "#0ea5e9"},
			{Label: "Expenses", Color: "#f97316"},
		},
	}
	for _, q := range quarters {
		spec.Labels = append(spec.Labels, q.Quarter)
		spec.Series[0].Values = append(spec.Series[0].Values, q.Revenue)
		spec.Series[1].Values = append(spec.Series[1].Values, q.Expenses)
		spec.FormattedValues = append(spec.FormattedValues, []string{format(q.Revenue), format(q.Expenses)})
	}
	return spec
}

// ExpensePieSpec maps the expense breakdown to a pie spec using each
// entry's authored color.
func ExpensePieSpec(entries []ExpenseCategoryEntry, format CurrencyFormatter) PieChartSpec {
	spec := PieChartSpec{Title: "Expense Breakdown"}
	for _, e := range entries {
		spec.Slices = append(spec.Slices, PieSlice{
			Label:          e.Category,
			Value:          e.Amount,
			Percentage:     e.Percentage,
			Color:          e.Color,
			FormattedValue: format(e.Amount),
		})
	}
	return spec
}

// IncomePieSpec maps the income breakdown to a pie spec.
func IncomePieSpec(entries []IncomeSourceEntry, format CurrencyFormatter) PieChartSpec {
	spec := PieChartSpec{Title: "Income Sources"}
	for _, e := range entries {
		spec.Slices = append(spec.Slices, PieSlice{
			Label:          e.Source,
			Value:          e.Amount,
			Percentage:     e.Percentage,
			Color:          e.Color,
			FormattedValue: format(e.Amount),
		})
	}
	return spec
}
