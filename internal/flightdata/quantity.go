package flightdata

import "github.com/banshee-data/flightplot/internal/units"

// Quantity identifies one of the three vector triples carried by each sample.
type Quantity int

const (
	Position Quantity = iota
	Velocity
	Acceleration
)

// Quantities lists every quantity in panel order.
var Quantities = [...]Quantity{Position, Velocity, Acceleration}

var quantityNames = map[Quantity]string{
	Position:     "Position",
	Velocity:     "Velocity",
	Acceleration: "Acceleration",
}

// quantityColumns is the single source of truth for the CSV header labels.
var quantityColumns = map[Quantity][3]string{
	Position:     {"Sx", "Sy", "Sz"},
	Velocity:     {"Vx", "Vy", "Vz"},
	Acceleration: {"Ax", "Ay", "Az"},
}

var quantityUnits = map[Quantity]string{
	Position:     units.Meters,
	Velocity:     units.MetersPerSecond,
	Acceleration: units.MetersPerSecondSquared,
}

// RequiredColumns holds the nine header labels a telemetry file must carry,
// in the order they are checked.
var RequiredColumns = []string{
	"Sx", "Sy", "Sz",
	"Vx", "Vy", "Vz",
	"Ax", "Ay", "Az",
}

func (q Quantity) String() string {
	if n, ok := quantityNames[q]; ok {
		return n
	}
	return "unknown"
}

// Columns returns the X, Y and Z header labels for q.
func (q Quantity) Columns() [3]string {
	return quantityColumns[q]
}

// Unit returns the SI unit q is recorded in.
func (q Quantity) Unit() string {
	return quantityUnits[q]
}
