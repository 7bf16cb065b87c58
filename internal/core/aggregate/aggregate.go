// Package aggregate holds the pure transforms behind the dashboard charts.
// Each function consumes an immutable record snapshot plus the viewer's
// toggle values and returns a small structured result ready for figure
// assembly. No function performs I/O or touches shared state, so concurrent
// calls are safe by construction.
package aggregate

import "github.com/shopspring/decimal"

// Axis titles and plotly tick formats shared by the chart results.
const (
	TitleDownloads  = "downloads"
	TitlePercentage = "percentage"

	TickCount         = ",d"  // integer with thousands separators
	TickPercent       = "%"   // whole percentages
	TickPercentTenths = ".1%" // percentages with one decimal digit
)

// share divides part by total in exact decimal arithmetic and reports the
// result as a float suitable for a figure. A zero total yields zero rather
// than propagating an undefined division.
func share(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(part).Div(decimal.NewFromInt(total)).InexactFloat64()
}
