// internal/writer/log.go
package writer

import (
	"github.com/rs/zerolog"

	"github.com/tamzrod/range-replicator/internal/driver"
)

// logTarget renders samples as structured log lines. It is the simplest
// target and doubles as an audit trail beside a modbus or tcp target.
type logTarget struct {
	log zerolog.Logger
}

func NewLogTarget(logger zerolog.Logger) Target {
	return &logTarget{log: logger}
}

func (t *logTarget) Name() string { return "log" }

func (t *logTarget) Publish(s driver.Sample) error {
	if s.NoTarget {
		t.log.Info().Time("at", s.At).Bool("no_target", true).Msg("range")
		return nil
	}
	t.log.Info().Time("at", s.At).Float64("meters", s.Meters).Msg("range")
	return nil
}

func (t *logTarget) Close() error { return nil }
