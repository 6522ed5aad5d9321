// internal/config/config.go
package config

// ---- DEFAULTS ----

const (
	DefaultBaudRate        = 9600
	DefaultSettleMs        = 1000
	DefaultPollIntervalMs  = 60000
	DefaultModbusTimeoutMs = 2000
)

// ---- TARGET TYPES ----

const (
	TargetLog    = "log"
	TargetModbus = "modbus"
	TargetTCP    = "tcp"
)

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	Sensor  SensorConfig   `yaml:"sensor"`
	Targets []TargetConfig `yaml:"targets"`
}

// ---- SENSOR ----

type SensorConfig struct {
	Port           string `yaml:"port"`
	BaudRate       int    `yaml:"baud_rate"`
	SettleMs       int    `yaml:"settle_ms"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
}

// ---- TARGET ----

type TargetConfig struct {
	Type string `yaml:"type"`

	// Shared by modbus and tcp targets.
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// Modbus target fields.
	UnitID   uint8  `yaml:"unit_id"`
	Register uint16 `yaml:"register"`

	// Device status block (optional, opt-in; modbus targets only).
	StatusSlot *uint16 `yaml:"status_slot"`
	DeviceName string  `yaml:"device_name"`
}
