// internal/driver/driver.go
package driver

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/range-replicator/internal/driver/dts"
	"github.com/tamzrod/range-replicator/internal/status"
)

const (
	// maxBytesPerPass bounds one ingestion pass so a flood of serial data
	// cannot starve the caller's scheduling slice.
	maxBytesPerPass = 32

	// commTimeout is how much silence the driver tolerates before it
	// resends the start command.
	commTimeout = 10 * time.Second
)

// ErrShortWrite reports a start command that did not reach the port whole.
var ErrShortWrite = errors.New("driver: short write to serial port")

// Config is the minimal runtime config the driver needs.
type Config struct {
	// PollInterval is the session tick cadence.
	PollInterval time.Duration

	// Settle is how long Run waits before the first start command, giving
	// the sensor time to stabilize after power-up.
	Settle time.Duration

	// Clock overrides time.Now in tests.
	Clock func() time.Time

	Logger zerolog.Logger
}

// Driver owns all mutable sensor state: decode buffer, publish gate and
// session flags. Run is the only goroutine that touches it; the last-activity
// timestamp alone is shared, for health reporting, and is therefore atomic.
type Driver struct {
	port Port
	cfg  Config
	now  func() time.Time
	log  zerolog.Logger

	dec  dts.Decoder
	gate gate

	started  bool
	lastComm atomic.Int64 // unix nanos of last sensor activity; 0 = never
}

// New creates a driver around an open port.
func New(port Port, cfg Config) (*Driver, error) {
	if port == nil {
		return nil, errors.New("driver: port required")
	}
	if cfg.PollInterval <= 0 {
		return nil, errors.New("driver: poll interval must be > 0")
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Driver{port: port, cfg: cfg, now: now, log: cfg.Logger}, nil
}

// Start flushes stray input and sends the start command. Queued bytes belong
// to a previous session and would only confuse the decoder.
func (d *Driver) Start() error {
	if err := d.port.ResetInput(); err != nil {
		return fmt.Errorf("driver: reset input: %w", err)
	}

	n, err := d.port.Write(dts.StartCommand)
	if err != nil {
		return fmt.Errorf("driver: write start command: %w", err)
	}
	if n != len(dts.StartCommand) {
		return ErrShortWrite
	}
	if err := d.port.Flush(); err != nil {
		return fmt.Errorf("driver: flush: %w", err)
	}

	d.started = true
	d.touch()
	d.log.Info().Msg("start command sent")
	d.log.Debug().Hex("command", dts.StartCommand).Msg("start command bytes")
	return nil
}

// Tick is the slow periodic entry point: initial handshake if the session
// never started, re-handshake after prolonged silence. Silence is a liveness
// problem, not an error; the sensor may have been power-cycled or desynced.
func (d *Driver) Tick() error {
	switch silence := d.sinceActivity(); {
	case !d.started:
		d.log.Debug().Msg("sending initial start command")
		return d.Start()
	case silence > commTimeout:
		d.log.Warn().Dur("silence", silence).Msg("no communication from sensor, resending start command")
		return d.Start()
	}
	return nil
}

// IngestOnce performs one bounded, non-blocking ingestion pass: it reads at
// most maxBytesPerPass bytes from the port, advances the frame decoder and
// returns whatever passes the change filter. Partial frames stay buffered in
// the decoder across passes. Decode rejections are logged and recovered, so
// malformed input never surfaces as an error here.
func (d *Driver) IngestOnce() []Sample {
	var chunk [maxBytesPerPass]byte
	n, err := d.port.Read(chunk[:])
	if err != nil {
		d.log.Warn().Err(err).Msg("serial read failed")
		return nil
	}
	if n == 0 {
		return nil
	}
	d.touch()

	var out []Sample
	for _, b := range chunk[:n] {
		r, err := d.dec.Feed(b)
		if err != nil {
			d.log.Debug().Err(err).Int("buffered", d.dec.Buffered()).Msg("frame rejected")
			continue
		}
		if r == nil {
			continue
		}

		s, ok := d.gate.offer(*r)
		if !ok {
			d.log.Debug().Float64("meters", r.Meters()).Msg("distance unchanged, suppressed")
			continue
		}
		s.At = d.now()
		if s.NoTarget {
			d.log.Info().Msg("no valid target detected")
		} else {
			d.log.Info().Uint16("mm", r.Millimeters).Float64("meters", s.Meters).Msg("distance")
		}
		out = append(out, s)
	}
	return out
}

// Reset synchronously clears all mutable state: decode buffer, publish gate,
// session flags and any queued input. Safe to call between passes.
func (d *Driver) Reset() {
	d.dec.Reset()
	d.gate.reset()
	d.started = false
	d.lastComm.Store(0)
	if err := d.port.ResetInput(); err != nil {
		d.log.Debug().Err(err).Msg("reset: drain input failed")
	}
	d.log.Debug().Msg("driver reset complete")
}

// LastActivity returns when the sensor last produced or accepted bytes, or
// the zero time if it never has. Safe to call from any goroutine.
func (d *Driver) LastActivity() time.Time {
	ns := d.lastComm.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// Health classifies sensor liveness for status reporting.
func (d *Driver) Health() uint16 {
	switch silence := d.sinceActivity(); {
	case d.lastComm.Load() == 0:
		return status.HealthUnknown
	case silence > commTimeout:
		return status.HealthStale
	default:
		return status.HealthOK
	}
}

func (d *Driver) touch() {
	d.lastComm.Store(d.now().UnixNano())
}

func (d *Driver) sinceActivity() time.Duration {
	ns := d.lastComm.Load()
	if ns == 0 {
		return 0
	}
	return d.now().Sub(time.Unix(0, ns))
}
