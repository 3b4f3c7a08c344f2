package flightplot

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// axisEdges are the unit-cube edges drawn as the X, Y and Z axes, all
// starting from the corner nearest the data minimum.
var axisEdges = [3][2]r3.Vec{
	{{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5}},
	{{X: -0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5}},
	{{X: -0.5, Y: -0.5, Z: -0.5}, {X: -0.5, Y: -0.5, Z: 0.5}},
}

// WriteImage draws fig with gonum/plot in the given format ("svg", "png", or
// any other format draw.NewFormattedCanvas accepts) and writes it to w. Each
// panel is an orthographic projection of its 3D line with labelled axis
// edges; panels are tiled in one row with padding between them.
func WriteImage(w io.Writer, fig Figure, st Style, format string) error {
	if fig.Rows <= 0 || fig.Cols <= 0 || len(fig.Panels) != fig.Rows*fig.Cols {
		return fmt.Errorf("figure layout %dx%d does not hold %d panels", fig.Rows, fig.Cols, len(fig.Panels))
	}

	lineColor, err := parseHexColor(st.LineColor)
	if err != nil {
		return err
	}

	plots := make([]*plot.Plot, len(fig.Panels))
	for i, p := range fig.Panels {
		plots[i], err = panelPlot(p, st, lineColor)
		if err != nil {
			return fmt.Errorf("panel %s: %w", p.Title, err)
		}
	}

	width := vg.Points(float64(st.PanelWidth * fig.Cols))
	height := vg.Points(float64(st.PanelHeight * fig.Rows))
	canvas, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", format, err)
	}

	tiles := draw.Tiles{
		Rows:      fig.Rows,
		Cols:      fig.Cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	grid := make([][]*plot.Plot, fig.Rows)
	for r := range grid {
		grid[r] = plots[r*fig.Cols : (r+1)*fig.Cols]
	}

	canvases := plot.Align(grid, tiles, draw.New(canvas))
	for r := range grid {
		for c := range grid[r] {
			grid[r][c].Draw(canvases[r][c])
		}
	}

	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("write %s figure: %w", format, err)
	}
	return nil
}

func panelPlot(p Panel, st Style, lineColor color.Color) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.HideAxes()

	proj := newProjector(p.Min, p.Max, st.Azimuth, st.Elevation)

	ends := make(plotter.XYs, len(axisEdges))
	for i, edge := range axisEdges {
		seg := plotter.XYs{proj.cube(edge[0]), proj.cube(edge[1])}
		axis, err := plotter.NewLine(seg)
		if err != nil {
			return nil, err
		}
		axis.Width = vg.Points(0.5)
		axis.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		pl.Add(axis)
		ends[i] = seg[1]
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    ends,
		Labels: p.AxisLabels[:],
	})
	if err != nil {
		return nil, err
	}
	pl.Add(labels)

	if len(p.Line.Vertices) > 0 {
		line, err := plotter.NewLine(proj.projectAll(p.Line.Vertices))
		if err != nil {
			return nil, err
		}
		line.Color = lineColor
		line.Width = vg.Points(1.5)
		pl.Add(line)
	}

	return pl, nil
}
