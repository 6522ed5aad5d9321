// internal/driver/runner.go
package driver

import (
	"context"
	"time"

	"github.com/tamzrod/range-replicator/internal/driver/dts"
)

// ingestInterval paces the fast ingestion loop. At 9600 baud the line feeds
// under a thousand bytes per second; 32 bytes per pass at this cadence keeps
// comfortably ahead of it.
const ingestInterval = 20 * time.Millisecond

// Run drives the driver until ctx is done: a fast ticker for ingestion and a
// slow one for the session tick. Samples are emitted on out. One goroutine
// owns all driver state. No overlap, no retries.
func (d *Driver) Run(ctx context.Context, out chan<- Sample) {
	d.log.Info().
		Dur("poll_interval", d.cfg.PollInterval).
		Dur("settle", d.cfg.Settle).
		Float64("publish_threshold_m", publishThreshold).
		Int("buffer_size", dts.BufferSize).
		Msg("range driver starting")

	if d.cfg.Settle > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.cfg.Settle):
		}
	}

	if err := d.Start(); err != nil {
		// Tick retries the handshake; startup failure is not fatal.
		d.log.Error().Err(err).Msg("initial start command failed")
	}

	ingest := time.NewTicker(ingestInterval)
	defer ingest.Stop()
	session := time.NewTicker(d.cfg.PollInterval)
	defer session.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ingest.C:
			for _, s := range d.IngestOnce() {
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}

		case <-session.C:
			if err := d.Tick(); err != nil {
				d.log.Error().Err(err).Msg("session tick failed")
			}
		}
	}
}
