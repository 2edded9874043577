package views

import (
	"net/url"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats an average cost for a KPI card, e.g. "$ 1,234.50".
func Money(v float64) string { return printer.Sprintf("$ %.2f", v) }

// Minutes formats an average delivery time, e.g. "31.25 minutes".
func Minutes(v float64) string { return printer.Sprintf("%.2f minutes", v) }

// Percent formats the on-time share, e.g. "66.67%".
func Percent(v float64) string { return printer.Sprintf("%.2f%%", v) }

// Count formats a record count with thousands separators.
func Count(n int) string { return printer.Sprintf("%d", n) }

// chartURL builds a chart image URL carrying the current selection.
func chartURL(path, vehicleType string) string {
	return path + "?" + url.Values{"vehicle_type": {vehicleType}}.Encode()
}
