// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/range-replicator/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	b := cfg.Bridge

	// ------------------------------------------------------------
	// SENSOR VALIDATION
	// ------------------------------------------------------------

	if b.Sensor.Port == "" {
		return errors.New("sensor.port is required")
	}
	if b.Sensor.BaudRate < 0 {
		return fmt.Errorf("sensor.baud_rate must be >= 0, got %d", b.Sensor.BaudRate)
	}
	if b.Sensor.SettleMs < 0 {
		return fmt.Errorf("sensor.settle_ms must be >= 0, got %d", b.Sensor.SettleMs)
	}
	if b.Sensor.PollIntervalMs < 0 {
		return fmt.Errorf("sensor.poll_interval_ms must be >= 0, got %d", b.Sensor.PollIntervalMs)
	}

	// ------------------------------------------------------------
	// TARGET VALIDATION
	// ------------------------------------------------------------

	if len(b.Targets) == 0 {
		return errors.New("at least one target is required")
	}

	statusSeen := false

	// key = endpoint | register
	registerOwner := make(map[string]int)

	for i, t := range b.Targets {
		switch t.Type {
		case TargetLog:
			// No further fields.

		case TargetModbus:
			if t.Endpoint == "" {
				return fmt.Errorf("target[%d]: endpoint is required for modbus targets", i)
			}

			key := fmt.Sprintf("%s|%d", t.Endpoint, t.Register)
			if prev, exists := registerOwner[key]; exists {
				return fmt.Errorf(
					"register collision: endpoint=%s register=%d used by targets %d and %d",
					t.Endpoint, t.Register, prev, i,
				)
			}
			registerOwner[key] = i

		case TargetTCP:
			if t.Endpoint == "" {
				return fmt.Errorf("target[%d]: endpoint is required for tcp targets", i)
			}

		case "":
			return fmt.Errorf("target[%d]: type is required", i)

		default:
			return fmt.Errorf("target[%d]: unknown type %q", i, t.Type)
		}

		if t.TimeoutMs < 0 {
			return fmt.Errorf("target[%d]: timeout_ms must be >= 0, got %d", i, t.TimeoutMs)
		}

		// ------------------------------------------------------------
		// DEVICE STATUS BLOCK VALIDATION (OPT-IN)
		// ------------------------------------------------------------

		if t.StatusSlot != nil {
			if t.Type != TargetModbus {
				return fmt.Errorf("target[%d]: status_slot requires a modbus target", i)
			}
			if statusSeen {
				return errors.New("status_slot may be set on at most one target")
			}
			statusSeen = true
		}

		// device_name sanity (ASCII only)
		for j := 0; j < len(t.DeviceName); j++ {
			if t.DeviceName[j] > 0x7F {
				return fmt.Errorf("target[%d]: device_name must contain ASCII characters only", i)
			}
		}
	}

	// ------------------------------------------------------------
	// STATUS BLOCK GEOMETRY VALIDATION
	// ------------------------------------------------------------

	// The status block owns a fixed span of registers; no data register on
	// the same endpoint may land inside it.
	for i, t := range b.Targets {
		if t.StatusSlot == nil {
			continue
		}

		start := *t.StatusSlot * status.SlotsPerDevice
		end := start + status.SlotsPerDevice - 1

		for j, other := range b.Targets {
			if other.Type != TargetModbus || other.Endpoint != t.Endpoint {
				continue
			}
			if other.Register >= start && other.Register <= end {
				return fmt.Errorf(
					"register collision: target[%d] register %d falls inside target[%d] status block %d-%d",
					j, other.Register, i, start, end,
				)
			}
		}
	}

	return nil
}
