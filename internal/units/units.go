// Package units provides shared constants and label formatting for the SI
// units used by flight telemetry.
package units

import "fmt"

// Unit constants
const (
	Meters                 = "m"
	MetersPerSecond        = "m/s"
	MetersPerSecondSquared = "m/s²"
)

// Axes are the component names of a vector triple, in column order.
var Axes = [3]string{"X", "Y", "Z"}

// AxisLabel formats an axis title such as "X (m/s)".
func AxisLabel(axis, unit string) string {
	if unit == "" {
		return axis
	}
	return fmt.Sprintf("%s (%s)", axis, unit)
}

// AxisLabels returns the X, Y and Z axis titles for a quantity measured in unit.
func AxisLabels(unit string) [3]string {
	var labels [3]string
	for i, axis := range Axes {
		labels[i] = AxisLabel(axis, unit)
	}
	return labels
}
