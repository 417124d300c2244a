package shared

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyPrefix is the display code for all monetary values.
const CurrencyPrefix = "KES"

var printer = message.NewPrinter(language.English)

// FormatKES renders an amount as a KES string with locale digit grouping,
// e.g. FormatKES(1000000) == "KES 1,000,000". Fractions are rounded to the
// nearest shilling.
func FormatKES(amount float64) string {
	rounded := math.Round(amount)
	return printer.Sprintf("%s %v", CurrencyPrefix, number.Decimal(rounded, number.MaxFractionDigits(0)))
}

// FormatPercent renders a ratio value as a percentage string, trimming a
// trailing ".0" so whole percentages read "34%" rather than "34.0%".
func FormatPercent(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}
