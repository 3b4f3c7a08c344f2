package flightplot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders fig as a single go-echarts page with one Line3D chart per
// panel. The flex layout places the panels side by side and wraps them on
// narrow windows instead of overlapping titles.
func WriteHTML(w io.Writer, fig Figure, st Style) error {
	page := components.NewPage()
	page.PageTitle = fig.Title
	page.SetLayout(components.PageFlexLayout)
	if st.AssetsHost != "" {
		page.SetAssetsHost(st.AssetsHost)
	}

	for _, p := range fig.Panels {
		page.AddCharts(line3D(p, st))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html figure: %w", err)
	}
	return nil
}

// RenderHTML is WriteHTML into a byte slice.
func RenderHTML(fig Figure, st Style) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, fig, st); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func line3D(p Panel, st Style) *charts.Line3D {
	chart := charts.NewLine3D()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  p.Title,
			Theme:      st.Theme,
			Width:      fmt.Sprintf("%dpx", st.PanelWidth),
			Height:     fmt.Sprintf("%dpx", st.PanelHeight),
			AssetsHost: st.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: p.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: p.AxisLabels[0], Show: opts.Bool(true)}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: p.AxisLabels[1], Show: opts.Bool(true)}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: p.AxisLabels[2], Show: opts.Bool(true)}),
	)

	data := make([]opts.Chart3DData, len(p.Line.Vertices))
	for i, v := range p.Line.Vertices {
		data[i] = opts.Chart3DData{Value: []interface{}{v.X, v.Y, v.Z}}
	}

	chart.AddSeries(p.Title, data,
		charts.WithLineStyleOpts(opts.LineStyle{Color: st.LineColor, Width: 2}),
	)
	return chart
}
