package view

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Korean)

// formatCount renders an integer with digit grouping, e.g. 1,800.
func formatCount(n int) string {
	return printer.Sprintf("%v", number.Decimal(n))
}

// formatAmount renders a monetary amount with grouping and at most two decimals.
func formatAmount(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// formatDeadline turns YYYY-MM-DD into YYYY.MM.DD; an empty date renders as "-".
func formatDeadline(date string) string {
	if date == "" {
		return "-"
	}
	return strings.Join(strings.SplitN(date, "-", 3), ".")
}
