package svg

// BarOpts customises the grouped bar chart renderer.
type BarOpts struct {
	Title        string
	Description  string
	SeriesALabel string
	SeriesBLabel string
	ColorA       string
	ColorB       string
	AxisColor    string
	GridColor    string
	Padding      float64
	TickCount    int
}

// PieOpts customises the pie chart renderer.
type PieOpts struct {
	Title       string
	Description string
	LabelColor  string
}

// Slice is one pie segment. Color is supplied by the caller from the
// dataset entry.
type Slice struct {
	Label string
	Value float64
	Color string
}

// Defaults for the finance charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPieSize = 280
	DefaultPadding = 24.0
	DefaultTicks   = 5
)
