// cmd/replicator/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/range-replicator/internal/config"
	"github.com/tamzrod/range-replicator/internal/driver"
	"github.com/tamzrod/range-replicator/internal/status"
	"github.com/tamzrod/range-replicator/internal/writer"
)

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("app", "range-replicator").Logger()
}

func main() {
	logger := newLogger()

	if len(os.Args) < 2 {
		logger.Fatal().Msg("usage: replicator <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	bridge := cfg.Bridge
	logger.Info().
		Str("port", bridge.Sensor.Port).
		Int("baud_rate", bridge.Sensor.BaudRate).
		Int("settle_ms", bridge.Sensor.SettleMs).
		Int("poll_interval_ms", bridge.Sensor.PollIntervalMs).
		Int("targets", len(bridge.Targets)).
		Msg("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --------------------
	// Build the pipeline
	// --------------------

	// ---- sensor driver ----
	drv, closeDriver, err := driver.Build(bridge.Sensor, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("driver build failed")
	}
	defer closeDriver()

	// ---- targets + optional status block ----
	built, closeTargets, err := writer.Build(bridge, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("writer build failed")
	}
	defer closeTargets()

	dataWriter := writer.New(built.Targets)

	// ---- channel between driver and writer ----
	out := make(chan driver.Sample)

	// Orchestrator (runner-owned snapshot + 1Hz seconds ticker)
	go func() {
		snap := statusSnapshot(drv, time.Now())

		secTicker := time.NewTicker(time.Second)
		defer secTicker.Stop()

		// Full block write on start (identity re-assert) if enabled.
		if built.Status != nil {
			if err := built.Status.WriteStatus(snap); err != nil {
				logger.Error().Err(err).Msg("status write failed on start")
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case s := <-out:
				// --- data delivery ---
				if err := dataWriter.Write(s); err != nil {
					logger.Error().Err(err).Msg("writer error")
				}

			case <-secTicker.C:
				// --- status update (device-level truth) ---
				if built.Status == nil {
					continue
				}

				next := statusSnapshot(drv, time.Now())
				if next == snap {
					continue
				}
				snap = next
				if err := built.Status.WriteStatus(snap); err != nil {
					logger.Error().Err(err).Msg("status write failed")
				}
			}
		}
	}()

	// sensor producer
	go drv.Run(ctx, out)

	// --------------------
	// Block until shutdown signal
	// --------------------

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Info().Str("signal", s.String()).Msg("shutting down")
	cancel()
}

// statusSnapshot derives the status block contents from driver liveness.
func statusSnapshot(drv *driver.Driver, now time.Time) status.Snapshot {
	snap := status.Snapshot{Health: drv.Health()}

	if last := drv.LastActivity(); !last.IsZero() {
		stale := int64(now.Sub(last) / time.Second)
		switch {
		case stale < 0:
			snap.SecondsStale = 0
		case stale > 65535:
			snap.SecondsStale = 65535
		default:
			snap.SecondsStale = uint16(stale)
		}
	}
	return snap
}
