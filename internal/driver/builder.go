// internal/driver/builder.go
package driver

import (
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/tamzrod/range-replicator/internal/config"
	"github.com/tamzrod/range-replicator/internal/serialport"
)

// Build opens the configured UART and constructs the driver around it.
// The returned closer releases the port.
func Build(sc cfg.SensorConfig, logger zerolog.Logger) (*Driver, func() error, error) {
	port, err := serialport.Open(sc.Port, serialport.Options{BaudRate: sc.BaudRate})
	if err != nil {
		return nil, nil, err
	}

	d, err := New(port, Config{
		PollInterval: time.Duration(sc.PollIntervalMs) * time.Millisecond,
		Settle:       time.Duration(sc.SettleMs) * time.Millisecond,
		Logger:       logger,
	})
	if err != nil {
		_ = port.Close()
		return nil, nil, err
	}

	return d, port.Close, nil
}
