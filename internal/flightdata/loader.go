package flightdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/flightplot/internal/fsutil"
	"github.com/banshee-data/flightplot/internal/monitoring"
)

const utf8BOM = "\ufeff"

// errNonFinite marks NaN and ±Inf cells. Every cell must be finite so both
// output backends draw the same samples.
var errNonFinite = errors.New("value is not finite")

// Load reads the telemetry table at path from fsys in full.
// Failures to open or read the file match ErrDataAccess; a header without
// the required columns or a malformed cell matches ErrSchema.
func Load(fsys fsutil.FileSystem, path string) (*Table, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataAccess, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrDataAccess, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrDataAccess, path)
	}

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Source = path

	monitoring.Logf("loaded %s samples from %s (%s)",
		humanize.Comma(int64(t.Len())), path, humanize.Bytes(uint64(info.Size())))
	return t, nil
}

// Read parses a telemetry table from r.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", ErrSchema)
	}
	if err != nil {
		return nil, classifyReadError(err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: header}
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, classifyReadError(err)
		}

		rec, err := parseRecord(fields, idx, row)
		if err != nil {
			return nil, err
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// columnIndex maps each required column to its position in header. The first
// occurrence wins when a label repeats.
func columnIndex(header []string) (map[string]int, error) {
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := seen[name]; !dup {
			seen[name] = i
		}
	}

	idx := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i, ok := seen[col]
		if !ok {
			return nil, &MissingColumnError{Column: col}
		}
		idx[col] = i
	}
	return idx, nil
}

func parseRecord(fields []string, idx map[string]int, row int) (Record, error) {
	var rec Record
	for _, q := range Quantities {
		cols := q.Columns()
		var comp [3]float64
		for axis, col := range cols {
			raw := strings.TrimSpace(fields[idx[col]])
			v, err := strconv.ParseFloat(raw, 64)
			if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
				err = errNonFinite
			}
			if err != nil {
				return Record{}, &ParseError{Row: row, Column: col, Value: raw, Err: err}
			}
			comp[axis] = v
		}
		vec := r3.Vec{X: comp[0], Y: comp[1], Z: comp[2]}
		switch q {
		case Position:
			rec.Position = vec
		case Velocity:
			rec.Velocity = vec
		case Acceleration:
			rec.Acceleration = vec
		}
	}
	return rec, nil
}

// classifyReadError separates malformed CSV from I/O failures underneath it.
func classifyReadError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return fmt.Errorf("%w: %w", ErrDataAccess, err)
}
