// internal/driver/dts/reading.go
package dts

// Reading is one distance measurement extracted from a data frame.
type Reading struct {
	// Millimeters is the raw distance. Meaningless when NoTarget is set.
	// The sensor's physical envelope is 20-6000 mm; values outside it are
	// passed through unmodified.
	Millimeters uint16

	// NoTarget is set when the sensor reports the reserved no-target value.
	NoTarget bool
}

// Meters converts the raw millimeter value.
func (r Reading) Meters() float64 {
	return float64(r.Millimeters) / 1000.0
}
