// Package charts assembles aggregation results into plotly figure
// specifications. The structs here mirror the subset of the plotly schema
// the dashboard emits; the browser hands the marshaled JSON to Plotly.react
// unchanged.
package charts

// Trace type discriminators.
const (
	TypeBar = "bar"
	TypePie = "pie"
)

// Figure is one renderable chart: its traces plus the shared layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a single renderable series. Bar and Pie are the only shapes the
// dashboard produces.
type Trace interface {
	traceType() string
}

// Bar is one bar series. X and Y carry either numbers or category labels
// depending on the orientation.
type Bar struct {
	Type        string  `json:"type"`
	Name        string  `json:"name,omitempty"`
	X           any     `json:"x"`
	Y           any     `json:"y"`
	Orientation string  `json:"orientation,omitempty"`
	Marker      *Marker `json:"marker,omitempty"`
}

func (b Bar) traceType() string { return b.Type }

// Pie is one donut. Values are raw counts; plotly derives the percentages.
type Pie struct {
	Type      string   `json:"type"`
	Name      string   `json:"name,omitempty"`
	Labels    []string `json:"labels"`
	Values    []int64  `json:"values"`
	Hole      float64  `json:"hole,omitempty"`
	TextInfo  string   `json:"textinfo,omitempty"`
	HoverInfo string   `json:"hoverinfo,omitempty"`
	Marker    *Marker  `json:"marker,omitempty"`
	Domain    *Domain  `json:"domain,omitempty"`
}

func (p Pie) traceType() string { return p.Type }

// Marker styles a trace. Color takes a single color or a per-point list for
// bars; Colors is the per-slice list pies use.
type Marker struct {
	Color  any      `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// Domain places a trace inside a layout grid cell.
type Domain struct {
	Column int `json:"column"`
}

// Layout carries figure-wide styling. Pointer fields marshal only when set,
// leaving the rest to plotly defaults.
type Layout struct {
	Font        *Font        `json:"font,omitempty"`
	BarMode     string       `json:"barmode,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Grid        *Grid        `json:"grid,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Font is the text style applied figure-wide or per annotation.
type Font struct {
	Family string `json:"family,omitempty"`
	Color  string `json:"color,omitempty"`
	Size   int    `json:"size,omitempty"`
}

// Margin overrides the plot margins that are set; zero fields are omitted
// and keep their plotly defaults.
type Margin struct {
	T int `json:"t,omitempty"`
	B int `json:"b,omitempty"`
	L int `json:"l,omitempty"`
	R int `json:"r,omitempty"`
}

// Axis titles one axis and pins its tick format.
type Axis struct {
	Title      string `json:"title,omitempty"`
	TickFormat string `json:"tickformat,omitempty"`
}

// Grid splits the figure into equally sized cells for multi-trace layouts.
type Grid struct {
	Rows    int `json:"rows,omitempty"`
	Columns int `json:"columns,omitempty"`
}

// Legend pins the legend anchor. Zero is a meaningful coordinate, so both
// fields always marshal.
type Legend struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Annotation is a fixed text label in paper coordinates. ShowArrow always
// marshals because plotly defaults it to true.
type Annotation struct {
	Text      string  `json:"text"`
	Font      *Font   `json:"font,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ShowArrow bool    `json:"showarrow"`
}
