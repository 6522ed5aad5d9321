// internal/writer/modbus_target.go
package writer

import (
	"math"

	"github.com/tamzrod/range-replicator/internal/driver"
)

// noTargetRegister is written when the sensor reports no target. It is the
// same reserved value the sensor itself uses on the wire.
const noTargetRegister uint16 = 0xFFFF

// maxRegisterMM is the largest distance the register can carry without
// colliding with the reserved no-target value.
const maxRegisterMM = 0xFFFE

// modbusTarget replicates distance readings into one holding register on a
// Modbus TCP endpoint, in raw millimeters.
type modbusTarget struct {
	endpoint string
	register uint16
	cli      registerClient
}

func (t *modbusTarget) Name() string { return "modbus:" + t.endpoint }

func (t *modbusTarget) Publish(s driver.Sample) error {
	if s.NoTarget {
		return t.cli.WriteRegister(t.register, noTargetRegister)
	}

	mm := math.Round(s.Meters * 1000.0)
	if mm < 0 {
		mm = 0
	}
	if mm > maxRegisterMM {
		mm = maxRegisterMM
	}
	return t.cli.WriteRegister(t.register, uint16(mm))
}

func (t *modbusTarget) Close() error { return nil }
