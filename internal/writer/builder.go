// internal/writer/builder.go
package writer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/range-replicator/internal/config"
	wmodbus "github.com/tamzrod/range-replicator/internal/writer/modbus"
)

// Built is everything the daemon needs from the target configuration.
type Built struct {
	Targets []Target

	// Status is non-nil when a modbus target opted into the status block.
	Status StatusWriter
}

// Build constructs one Target per config entry, sharing one modbus client
// per endpoint, plus the optional status writer. The returned closer shuts
// every client down.
func Build(bc cfg.BridgeConfig, logger zerolog.Logger) (Built, func() error, error) {
	var built Built
	var closers []func() error

	closeAll := func() error {
		var last error
		for _, fn := range closers {
			if err := fn(); err != nil {
				last = err
			}
		}
		return last
	}

	// One client per unique modbus endpoint.
	clients := make(map[string]*wmodbus.Client)

	for i, t := range bc.Targets {
		switch t.Type {
		case cfg.TargetLog:
			built.Targets = append(built.Targets, NewLogTarget(logger))

		case cfg.TargetModbus:
			cli, ok := clients[t.Endpoint]
			if !ok {
				var err error
				cli, err = wmodbus.New(wmodbus.Config{
					Endpoint: t.Endpoint,
					UnitID:   t.UnitID,
					Timeout:  time.Duration(t.TimeoutMs) * time.Millisecond,
				})
				if err != nil {
					_ = closeAll()
					return Built{}, nil, fmt.Errorf("target[%d]: %w", i, err)
				}
				clients[t.Endpoint] = cli
				closers = append(closers, cli.Close)
			}

			built.Targets = append(built.Targets, &modbusTarget{
				endpoint: t.Endpoint,
				register: t.Register,
				cli:      cli,
			})

			if t.StatusSlot != nil {
				built.Status = newDeviceStatusWriter(cli, *t.StatusSlot, t.DeviceName)
			}

		case cfg.TargetTCP:
			tt, err := newTCPTarget(t.Endpoint, time.Duration(t.TimeoutMs)*time.Millisecond)
			if err != nil {
				_ = closeAll()
				return Built{}, nil, fmt.Errorf("target[%d]: %w", i, err)
			}
			built.Targets = append(built.Targets, tt)

		default:
			// Validate() rejects unknown types before we get here.
			_ = closeAll()
			return Built{}, nil, fmt.Errorf("target[%d]: unknown type %q", i, t.Type)
		}
	}

	return built, closeAll, nil
}
