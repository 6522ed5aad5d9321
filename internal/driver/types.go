// internal/driver/types.go
package driver

import (
	"io"
	"time"
)

// Sample is one published measurement after change filtering.
type Sample struct {
	At time.Time

	// Meters is the distance. Meaningless when NoTarget is set.
	Meters float64

	// NoTarget marks a reading where the sensor saw nothing in range.
	NoTarget bool
}

// Port is the minimal serial transport contract the driver needs.
// *serialport.Port satisfies it; tests use a scripted implementation.
// Reads are expected to time out quickly rather than block: the driver polls.
type Port interface {
	io.ReadWriter

	// ResetInput discards bytes the device already queued.
	ResetInput() error

	// Flush blocks until written bytes have left the transmitter.
	Flush() error
}
