package recommendation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BritishEnglish)

// FormatPounds renders whole pounds with digit grouping, e.g. "£1,900".
func FormatPounds(amount int) string {
	return printer.Sprintf("£%d", amount)
}

// FormatCostRange renders an install cost range, e.g. "£1,000 - £1,900".
func FormatCostRange(min, max int) string {
	return FormatPounds(min) + " - " + FormatPounds(max)
}

// FormatAnnualSaving renders a yearly saving, e.g. "£230 a year".
func FormatAnnualSaving(saving int) string {
	return FormatPounds(saving) + " a year"
}
