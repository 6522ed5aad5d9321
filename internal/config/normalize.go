// internal/config/normalize.go
package config

import "github.com/tamzrod/range-replicator/internal/status"

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// SENSOR DEFAULTS
	// ------------------------------------------------------------

	s := &cfg.Bridge.Sensor
	if s.BaudRate == 0 {
		s.BaudRate = DefaultBaudRate
	}
	if s.SettleMs == 0 {
		s.SettleMs = DefaultSettleMs
	}
	if s.PollIntervalMs == 0 {
		s.PollIntervalMs = DefaultPollIntervalMs
	}

	// ------------------------------------------------------------
	// TARGET DEFAULTS
	// ------------------------------------------------------------

	for i := range cfg.Bridge.Targets {
		t := &cfg.Bridge.Targets[i]

		switch t.Type {
		case TargetModbus, TargetTCP:
			if t.TimeoutMs == 0 {
				t.TimeoutMs = DefaultModbusTimeoutMs
			}
		}

		// device_name: ASCII already validated, truncate to the block's
		// capacity.
		if len(t.DeviceName) > status.DeviceNameMaxChars {
			t.DeviceName = t.DeviceName[:status.DeviceNameMaxChars]
		}
	}
}
