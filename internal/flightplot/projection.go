package flightplot

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/plotter"
)

// projector maps data coordinates onto the image plane of an orthographic
// camera. Each axis is first scaled into the unit cube centred on the origin,
// so a panel keeps its box shape whatever the data ranges are.
type projector struct {
	lo, span  r3.Vec
	right, up r3.Vec
}

// newProjector frames the box [lo, hi] for a camera at the given azimuth and
// elevation in degrees. An axis with zero extent is given unit span.
func newProjector(lo, hi r3.Vec, azimuthDeg, elevationDeg float64) projector {
	span := r3.Sub(hi, lo)
	if span.X == 0 {
		span.X = 1
	}
	if span.Y == 0 {
		span.Y = 1
	}
	if span.Z == 0 {
		span.Z = 1
	}

	az := azimuthDeg * math.Pi / 180
	el := elevationDeg * math.Pi / 180
	return projector{
		lo:    lo,
		span:  span,
		right: r3.Vec{X: -math.Sin(az), Y: math.Cos(az)},
		up: r3.Vec{
			X: -math.Sin(el) * math.Cos(az),
			Y: -math.Sin(el) * math.Sin(az),
			Z: math.Cos(el),
		},
	}
}

// normalize moves v into the [-0.5, 0.5] cube.
func (p projector) normalize(v r3.Vec) r3.Vec {
	d := r3.Sub(v, p.lo)
	return r3.Vec{
		X: d.X/p.span.X - 0.5,
		Y: d.Y/p.span.Y - 0.5,
		Z: d.Z/p.span.Z - 0.5,
	}
}

// cube projects a point already in unit-cube coordinates.
func (p projector) cube(n r3.Vec) plotter.XY {
	return plotter.XY{X: r3.Dot(n, p.right), Y: r3.Dot(n, p.up)}
}

// project maps a data point to the image plane.
func (p projector) project(v r3.Vec) plotter.XY {
	return p.cube(p.normalize(v))
}

// projectAll maps verts in order.
func (p projector) projectAll(verts []r3.Vec) plotter.XYs {
	out := make(plotter.XYs, len(verts))
	for i, v := range verts {
		out[i] = p.project(v)
	}
	return out
}
