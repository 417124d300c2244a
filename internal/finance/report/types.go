package report

import (
	"fmt"
	"strings"
	"time"
)

// Type selects which report document is assembled.
type Type string

const (
	TypeSummary      Type = "summary"
	TypeDetailed     Type = "detailed"
	TypeTransactions Type = "transactions"
	TypeCashflow     Type = "cashflow"
	TypePnL          Type = "pnl"
)

var titles = map[Type]string{
	TypeSummary:      "Financial Summary Report",
	TypeDetailed:     "Detailed Financial Report",
	TypeTransactions: "Transaction Report",
	TypeCashflow:     "Cash Flow Report",
	TypePnL:          "Profit & Loss Statement",
}

// ParseType validates a report type string.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := titles[t]; !ok {
		return "", fmt.Errorf("report: unknown type %q", s)
	}
	return t, nil
}

// Title returns the display title for a report type.
func Title(t Type) string {
	return titles[t]
}

// Filename derives the download name: company initials, the title with
// spaces replaced by underscores, and the generation date.
func Filename(company string, t Type, generatedAt time.Time) string {
	return fmt.Sprintf("%s_%s_%s.pdf",
		initials(company),
		strings.ReplaceAll(Title(t), " ", "_"),
		generatedAt.Format("2006-01-02"),
	)
}

func initials(company string) string {
	fields := strings.Fields(company)
	if len(fields) < 2 {
		return strings.ReplaceAll(strings.TrimSpace(company), " ", "")
	}
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.ToUpper(f[:1]))
	}
	return b.String()
}
