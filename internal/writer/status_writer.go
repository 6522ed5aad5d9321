// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/range-replicator/internal/status"
)

// StatusWriter is the delivery-only contract for sensor status.
// It receives a snapshot and writes it verbatim.
// No logic, no state, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// deviceStatusWriter delivers snapshots into a fixed status block of holding
// registers on one modbus endpoint.
type deviceStatusWriter struct {
	cli      registerClient
	baseSlot uint16

	needFull bool
	last     status.Snapshot
	nameRegs []uint16
}

func newDeviceStatusWriter(cli registerClient, baseSlot uint16, deviceName string) *deviceStatusWriter {
	return &deviceStatusWriter{
		cli:      cli,
		baseSlot: baseSlot,
		needFull: true, // full re-assert on first successful write
		last:     status.Snapshot{Health: status.HealthUnknown},
		nameRegs: encodeDeviceNameRegs(deviceName),
	}
}

// WriteStatus delivers a status snapshot. On any write failure, the next
// successful call re-asserts the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw.cli == nil {
		return errors.New("status writer: no client")
	}

	base := sw.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := status.Encode(s)
		for i := 0; i < status.SlotDeviceNameSlots && i < len(sw.nameRegs); i++ {
			regs[status.SlotDeviceNameStart+i] = sw.nameRegs[i]
		}

		if err := sw.cli.WriteRegisters(base, regs); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	var errs []string

	// Slot 0 — health_code
	if sw.last.Health != s.Health {
		if err := sw.cli.WriteRegister(base+status.SlotHealthCode, s.Health); err != nil {
			errs = append(errs, fmt.Sprintf("health write failed: %v", err))
		} else {
			sw.last.Health = s.Health
		}
	}

	// Slot 1 — seconds_stale
	if sw.last.SecondsStale != s.SecondsStale {
		if err := sw.cli.WriteRegister(base+status.SlotSecondsStale, s.SecondsStale); err != nil {
			errs = append(errs, fmt.Sprintf("seconds write failed: %v", err))
		} else {
			sw.last.SecondsStale = s.SecondsStale
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each sensor owns a fixed SlotsPerDevice block.
	return sw.baseSlot * status.SlotsPerDevice
}

// encodeDeviceNameRegs packs up to 16 ASCII characters into 8 uint16
// registers, two characters per register, big-endian within each.
func encodeDeviceNameRegs(name string) []uint16 {
	out := make([]uint16, status.SlotDeviceNameSlots)

	b := []byte(name)
	if len(b) > status.DeviceNameMaxChars {
		b = b[:status.DeviceNameMaxChars]
	}

	for i, c := range b {
		reg := i / 2
		if i%2 == 0 {
			out[reg] |= uint16(c) << 8
		} else {
			out[reg] |= uint16(c)
		}
	}
	return out
}
