package charts

import (
	"strings"

	"cloud.google.com/go/civil"

	"github.com/marshmallow-code/dashboard/internal/core/aggregate"
)

// Series names shown in legends, hovers and annotations.
const (
	seriesMA2 = "ma2"
	seriesMA3 = "ma3"
)

// Majors renders the 2-vs-3 totals as one horizontal two-bar trace.
func Majors(t aggregate.MajorTotals) *Figure {
	return &Figure{
		Data: []Trace{
			Bar{
				Type:        TypeBar,
				X:           []float64{t.MA2, t.MA3},
				Y:           []string{seriesMA2, seriesMA3},
				Orientation: "h",
				Marker:      &Marker{Color: []string{MAColors["2.x"], MAColors["3.x"]}},
			},
		},
		Layout: Layout{
			Font:   baseFont(),
			Margin: &Margin{T: 10},
			XAxis:  &Axis{Title: t.AxisTitle, TickFormat: t.TickFormat},
		},
	}
}

// Weekly renders the week-by-week comparison: grouped bars for counts,
// stacked bars for percentages.
func Weekly(c aggregate.WeeklyComparison) *Figure {
	barmode := "group"
	if c.Stacked {
		barmode = "stack"
	}
	return &Figure{
		Data: []Trace{
			Bar{
				Type:   TypeBar,
				Name:   seriesMA2,
				X:      weekStrings(c.MA2.Weeks),
				Y:      c.MA2.Values,
				Marker: &Marker{Color: MAColors["2.x"]},
			},
			Bar{
				Type:   TypeBar,
				Name:   seriesMA3,
				X:      weekStrings(c.MA3.Weeks),
				Y:      c.MA3.Values,
				Marker: &Marker{Color: MAColors["3.x"]},
			},
		},
		Layout: Layout{
			Font:    baseFont(),
			BarMode: barmode,
			Margin:  &Margin{T: 30},
			XAxis:   &Axis{Title: "week"},
			YAxis:   &Axis{Title: c.AxisTitle, TickFormat: c.TickFormat},
		},
	}
}

// Versions renders the top-ten ranking as horizontal bars, one color per
// major family so the mix is readable at a glance.
func Versions(r aggregate.RankedVersions) *Figure {
	colors := make([]string, len(r.Labels))
	for i, label := range r.Labels {
		colors[i] = familyColor(label)
	}
	return &Figure{
		Data: []Trace{
			Bar{
				Type:        TypeBar,
				X:           r.Values,
				Y:           r.Labels,
				Orientation: "h",
				Marker:      &Marker{Color: colors},
			},
		},
		Layout: Layout{
			Font:   baseFont(),
			Margin: &Margin{T: 5, B: 50},
			XAxis:  &Axis{Title: r.AxisTitle, TickFormat: r.TickFormat},
		},
	}
}

// PythonMinor renders the two Python-version donuts side by side with a
// centered major-version annotation in each hole.
func PythonMinor(g aggregate.PythonMinorGroups) *Figure {
	return &Figure{
		Data: []Trace{
			pieTrace(seriesMA2, g.MA2, 0, ma2FallbackColor),
			pieTrace(seriesMA3, g.MA3, 1, ma3FallbackColor),
		},
		Layout: Layout{
			Font:   baseFont(),
			Grid:   &Grid{Rows: 1, Columns: 2},
			Margin: &Margin{T: 5, B: 60},
			Legend: &Legend{X: 1, Y: 0},
			Annotations: []Annotation{
				{Text: seriesMA2, Font: &Font{Size: 25}, X: 0.2, Y: 0.5},
				{Text: seriesMA3, Font: &Font{Size: 25}, X: 0.81, Y: 0.5},
			},
		},
	}
}

func pieTrace(name string, b aggregate.PieBreakdown, column int, fallback string) Pie {
	colors := make([]string, len(b.Labels))
	for i, label := range b.Labels {
		c, ok := PythonColors[label]
		if !ok {
			c = fallback
		}
		colors[i] = c
	}
	return Pie{
		Type:      TypePie,
		Name:      name,
		Labels:    b.Labels,
		Values:    b.Values,
		Hole:      0.6,
		TextInfo:  "label",
		HoverInfo: "label+percent+value",
		Marker:    &Marker{Colors: colors},
		Domain:    &Domain{Column: column},
	}
}

// familyColor picks the major-family color by the leading version digit.
func familyColor(label string) string {
	if strings.HasPrefix(label, "2") {
		return MAColors["2.x"]
	}
	return MAColors["3.x"]
}

func weekStrings(weeks []civil.Date) []string {
	out := make([]string, len(weeks))
	for i, w := range weeks {
		out[i] = w.String()
	}
	return out
}
