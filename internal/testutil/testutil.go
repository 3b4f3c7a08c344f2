// Package testutil provides shared test utilities and fixtures.
//
// The telemetry builders produce CSV text in the layout the simulator writes,
// so loader, renderer and CLI tests share one notion of a well-formed file.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// TelemetryHeader is the header written by the simulator's motion log.
var TelemetryHeader = []string{
	"Time",
	"Sx", "Sy", "Sz",
	"Vx", "Vy", "Vz",
	"Ax", "Ay", "Az",
}

// Sample is one fixture row, in TelemetryHeader order.
type Sample struct {
	Time       float64
	Sx, Sy, Sz float64
	Vx, Vy, Vz float64
	Ax, Ay, Az float64
}

func (s Sample) fields() []float64 {
	return []float64{s.Time, s.Sx, s.Sy, s.Sz, s.Vx, s.Vy, s.Vz, s.Ax, s.Ay, s.Az}
}

// TelemetryCSV renders samples as a CSV document with TelemetryHeader.
func TelemetryCSV(samples ...Sample) string {
	var b strings.Builder
	b.WriteString(strings.Join(TelemetryHeader, ","))
	b.WriteByte('\n')
	for _, s := range samples {
		vals := s.fields()
		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// BallisticSamples returns n samples of a simple climb-out so fixtures have
// distinct values in every column.
func BallisticSamples(n int) []Sample {
	out := make([]Sample, n)
	for i := range out {
		tt := float64(i) * 0.1
		out[i] = Sample{
			Time: tt,
			Sx:   2 * tt, Sy: 0.5 * tt, Sz: 30*tt - 4.905*tt*tt,
			Vx: 2, Vy: 0.5, Vz: 30 - 9.81*tt,
			Ax: 0, Ay: 0, Az: -9.81,
		}
	}
	return out
}

// DropColumn removes the named column from every line of a CSV document.
func DropColumn(doc, column string) string {
	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	header := strings.Split(lines[0], ",")
	drop := -1
	for i, h := range header {
		if h == column {
			drop = i
		}
	}
	if drop < 0 {
		panic(fmt.Sprintf("testutil: column %q not in header", column))
	}
	for i, line := range lines {
		cells := strings.Split(line, ",")
		cells = append(cells[:drop], cells[drop+1:]...)
		lines[i] = strings.Join(cells, ",")
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteTempCSV writes doc into a fresh temporary directory and returns its path.
func WriteTempCSV(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motion.csv")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
