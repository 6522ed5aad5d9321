package driver

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/range-replicator/internal/driver/dts"
	"github.com/tamzrod/range-replicator/internal/serialport"
	"github.com/tamzrod/range-replicator/internal/status"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestDriver(t *testing.T) (*Driver, *serialport.ScriptedPort, *fakeClock) {
	t.Helper()
	port := serialport.NewScriptedPort()
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	d, err := New(port, Config{
		PollInterval: 100 * time.Millisecond,
		Clock:        clock.now,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)
	return d, port, clock
}

// buildFrame wraps a payload in the sensor's header, big-endian declared
// length and big-endian checksum trailer.
func buildFrame(payload []byte) []byte {
	f := []byte{0xA5, 0x03, 0x20, 0x01, 0x00}
	f = append(f, byte(len(payload)>>8), byte(len(payload)))
	f = append(f, payload...)
	crc := dts.Checksum(f)
	return append(f, byte(crc>>8), byte(crc))
}

// distanceFrame builds a minimal measurement frame carrying mm at the
// distance offset.
func distanceFrame(mm uint16) []byte {
	payload := make([]byte, 14)
	payload[6] = byte(mm)
	payload[7] = byte(mm >> 8)
	return buildFrame(payload)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, Config{PollInterval: time.Second})
	assert.Error(t, err)

	_, err = New(serialport.NewScriptedPort(), Config{})
	assert.Error(t, err)
}

func TestDriver_StartWritesCommand(t *testing.T) {
	d, port, _ := newTestDriver(t)

	require.NoError(t, d.Start())

	assert.Equal(t, 1, port.ResetCalls, "stray input must be drained before the handshake")
	assert.Equal(t, dts.StartCommand, port.Written())
	assert.Equal(t, 1, port.FlushCalls)
	assert.Equal(t, status.HealthOK, d.Health())
}

func TestDriver_TickSendsInitialStart(t *testing.T) {
	d, port, _ := newTestDriver(t)

	require.NoError(t, d.Tick())
	assert.Equal(t, dts.StartCommand, port.Written())

	// A live, recently-active session must stay quiet.
	require.NoError(t, d.Tick())
	assert.Len(t, port.Written(), len(dts.StartCommand))
}

func TestDriver_TickResendsAfterSilence(t *testing.T) {
	d, port, clock := newTestDriver(t)
	require.NoError(t, d.Start())

	clock.advance(9 * time.Second)
	require.NoError(t, d.Tick())
	assert.Len(t, port.Written(), len(dts.StartCommand), "9s of silence is tolerated")

	clock.advance(2 * time.Second)
	require.NoError(t, d.Tick())
	assert.Len(t, port.Written(), 2*len(dts.StartCommand), "11s of silence triggers a re-handshake")

	// The re-handshake restamps activity, so the next tick is quiet again.
	require.NoError(t, d.Tick())
	assert.Len(t, port.Written(), 2*len(dts.StartCommand))
}

func TestDriver_IngestOncePublishesDistance(t *testing.T) {
	d, port, clock := newTestDriver(t)
	require.NoError(t, d.Start())

	port.Queue(distanceFrame(1234))
	samples := d.IngestOnce()

	require.Len(t, samples, 1)
	assert.InDelta(t, 1.234, samples[0].Meters, 1e-9)
	assert.False(t, samples[0].NoTarget)
	assert.Equal(t, clock.t, samples[0].At)
}

func TestDriver_IngestOnceSuppressesUnchangedDistance(t *testing.T) {
	d, port, _ := newTestDriver(t)
	require.NoError(t, d.Start())

	port.Queue(distanceFrame(1234))
	port.Queue(distanceFrame(1234))

	var samples []Sample
	for port.Pending() > 0 {
		samples = append(samples, d.IngestOnce()...)
	}
	assert.Len(t, samples, 1, "identical repeat must be suppressed")
}

func TestDriver_IngestOnceAcrossSplitFrame(t *testing.T) {
	d, port, _ := newTestDriver(t)
	require.NoError(t, d.Start())

	frame := distanceFrame(2500)
	port.Queue(frame[:10])
	assert.Empty(t, d.IngestOnce(), "partial frame must stay buffered")

	port.Queue(frame[10:])
	samples := d.IngestOnce()
	require.Len(t, samples, 1)
	assert.InDelta(t, 2.5, samples[0].Meters, 1e-9)
}

func TestDriver_NoTargetPublishedOnce(t *testing.T) {
	d, port, _ := newTestDriver(t)
	require.NoError(t, d.Start())

	port.Queue(distanceFrame(0xFFFF))
	port.Queue(distanceFrame(0xFFFF))

	var samples []Sample
	for port.Pending() > 0 {
		samples = append(samples, d.IngestOnce()...)
	}
	require.Len(t, samples, 1)
	assert.True(t, samples[0].NoTarget)
}

func TestDriver_IngestOnceIsBounded(t *testing.T) {
	d, port, _ := newTestDriver(t)
	require.NoError(t, d.Start())

	noise := make([]byte, 100)
	for i := range noise {
		noise[i] = 0x55
	}
	port.Queue(noise)

	assert.Empty(t, d.IngestOnce())
	assert.Equal(t, 100-maxBytesPerPass, port.Pending(), "one pass reads a bounded slice of the backlog")
}

func TestDriver_HealthTransitions(t *testing.T) {
	d, _, clock := newTestDriver(t)

	assert.Equal(t, status.HealthUnknown, d.Health(), "no activity yet")

	require.NoError(t, d.Start())
	assert.Equal(t, status.HealthOK, d.Health())

	clock.advance(11 * time.Second)
	assert.Equal(t, status.HealthStale, d.Health())
}

func TestDriver_Reset(t *testing.T) {
	d, port, _ := newTestDriver(t)
	require.NoError(t, d.Start())

	port.Queue([]byte{0xA5, 0x03})
	d.Reset()

	assert.Equal(t, status.HealthUnknown, d.Health())
	assert.Zero(t, port.Pending(), "queued input is drained")
	assert.True(t, d.LastActivity().IsZero())

	// The session is forgotten, so the next tick re-handshakes.
	require.NoError(t, d.Tick())
	assert.Len(t, port.Written(), 2*len(dts.StartCommand))
}

func TestDriver_RunPublishesToChannel(t *testing.T) {
	port := serialport.NewScriptedPort()
	d, err := New(port, Config{
		PollInterval: 50 * time.Millisecond,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Sample, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx, out)
	}()

	// Let the handshake drain the input queue before scripting a frame.
	require.Eventually(t, func() bool {
		return len(port.Written()) > 0
	}, 2*time.Second, 5*time.Millisecond)
	port.Queue(distanceFrame(3210))

	select {
	case s := <-out:
		assert.InDelta(t, 3.210, s.Meters, 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("no sample published")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}
