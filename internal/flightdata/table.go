// Package flightdata loads flight telemetry tables from delimited text.
//
// A telemetry file is comma-separated with a header row. Only the nine
// columns in RequiredColumns are read; any others are ignored. Rows keep
// their file order, which is the order the plotted path is traced in.
package flightdata

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Record is one sample: the position, velocity and acceleration triples.
type Record struct {
	Position     r3.Vec // m
	Velocity     r3.Vec // m/s
	Acceleration r3.Vec // m/s²
}

// Get returns the triple for q.
func (r Record) Get(q Quantity) r3.Vec {
	switch q {
	case Velocity:
		return r.Velocity
	case Acceleration:
		return r.Acceleration
	default:
		return r.Position
	}
}

// Table is a loaded telemetry file. It is not modified after loading.
type Table struct {
	// Source is the path the table was read from, empty for Read.
	Source string
	// Columns is the header as it appeared in the file.
	Columns []string
	// Records holds the samples in file order.
	Records []Record
}

// Len returns the number of samples.
func (t *Table) Len() int {
	return len(t.Records)
}

// Series returns the triples of q in row order. The slice is freshly
// allocated so callers may keep it.
func (t *Table) Series(q Quantity) []r3.Vec {
	out := make([]r3.Vec, len(t.Records))
	for i, rec := range t.Records {
		out[i] = rec.Get(q)
	}
	return out
}

// Bounds returns the per-axis minimum and maximum of q. An empty table
// yields two zero vectors.
func (t *Table) Bounds(q Quantity) (lo, hi r3.Vec) {
	if len(t.Records) == 0 {
		return r3.Vec{}, r3.Vec{}
	}

	xs := make([]float64, len(t.Records))
	ys := make([]float64, len(t.Records))
	zs := make([]float64, len(t.Records))
	for i, rec := range t.Records {
		v := rec.Get(q)
		xs[i], ys[i], zs[i] = v.X, v.Y, v.Z
	}

	lo = r3.Vec{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
	hi = r3.Vec{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}
	return lo, hi
}
