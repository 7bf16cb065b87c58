package charts

// MAColors assigns each marshmallow major family its fixed series color.
var MAColors = map[string]string{
	"2.x": "#4f446e",
	"3.x": "#d15858",
}

// PythonColors assigns donut slice colors per Python minor version.
var PythonColors = map[string]string{
	"2.6": "#4376a1",
	"2.7": "#316998",
	"3.0": "#fff1af",
	"3.1": "#fff1af",
	"3.2": "#fff1af",
	"3.3": "#fff1af",
	"3.4": "#ffea87",
	"3.5": "#ffe66d",
	"3.6": "#e8d264",
	"3.7": "#d1bd5a",
	"3.8": "#baa850",
	"3.9": "#a39346",
}

// Fallback slice colors for Python versions missing from the table, one per
// donut so unmapped slices still read as belonging to their major.
const (
	ma2FallbackColor = "#6991b4"
	ma3FallbackColor = "#fff3bc"
)

// baseFont returns a fresh copy of the dashboard-wide font so callers can
// hold a mutable pointer.
func baseFont() *Font {
	return &Font{
		Family: "monaco, consolas, menlo, monospace",
		Color:  "#363636",
	}
}
