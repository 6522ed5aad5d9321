// internal/writer/types.go
package writer

import "github.com/tamzrod/range-replicator/internal/driver"

// Target delivers one published sample to one destination.
type Target interface {
	Name() string
	Publish(s driver.Sample) error
	Close() error
}

// Writer fans samples out to every configured target.
type Writer interface {
	Write(s driver.Sample) error
}

// registerClient is the exact contract the modbus target and status writer
// use. IMPORTANT: there must be NO other version of this interface anywhere.
type registerClient interface {
	WriteRegister(addr, value uint16) error
	WriteRegisters(addr uint16, regs []uint16) error
}
