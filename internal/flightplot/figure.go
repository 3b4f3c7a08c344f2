// Package flightplot turns a flight telemetry table into a three-panel 3D
// figure and renders it either as an interactive page or a static image.
package flightplot

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/flightplot/internal/flightdata"
	"github.com/banshee-data/flightplot/internal/units"
)

// Figure layout: one row of three panels.
const (
	figureRows = 1
	figureCols = 3
)

// Figure is the drawable description of a telemetry table. It holds no
// rendering state, so the same Figure can be drawn by any backend.
type Figure struct {
	// Title names the figure page, usually the source file.
	Title  string
	Rows   int
	Cols   int
	Panels []Panel
}

// Panel is one 3D plotting region dedicated to a single quantity.
type Panel struct {
	Quantity   flightdata.Quantity
	Title      string
	AxisLabels [3]string
	Line       Line
	// Min and Max bound the line on each axis; both are zero for an empty line.
	Min, Max r3.Vec
}

// Line is a single continuous polyline through Vertices in order.
type Line struct {
	Vertices []r3.Vec
}

// BuildFigure lays out the Position, Velocity and Acceleration panels for t.
// It is deterministic: equal tables give equal figures.
func BuildFigure(t *flightdata.Table) Figure {
	fig := Figure{
		Title:  figureTitle(t.Source),
		Rows:   figureRows,
		Cols:   figureCols,
		Panels: make([]Panel, 0, len(flightdata.Quantities)),
	}
	for _, q := range flightdata.Quantities {
		lo, hi := t.Bounds(q)
		fig.Panels = append(fig.Panels, Panel{
			Quantity:   q,
			Title:      q.String(),
			AxisLabels: units.AxisLabels(q.Unit()),
			Line:       Line{Vertices: t.Series(q)},
			Min:        lo,
			Max:        hi,
		})
	}
	return fig
}

func figureTitle(source string) string {
	if source == "" {
		return "Flight telemetry"
	}
	return "Flight telemetry: " + source
}
