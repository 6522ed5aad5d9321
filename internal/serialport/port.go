// internal/serialport/port.go

// Package serialport adapts a UART device to the transport contract the
// range driver polls: short-timeout reads, input queue reset and a drain
// after writes.
package serialport

import (
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate matches the DTS6012M factory configuration (9600 8N1).
const DefaultBaudRate = 9600

// readTimeout keeps ingestion passes non-blocking: Read returns whatever is
// available (possibly nothing) within this window.
const readTimeout = 5 * time.Millisecond

// Options configures the UART. The sensor is fixed at 8 data bits, no
// parity, one stop bit; only the device path and baud rate vary.
type Options struct {
	BaudRate int
}

// Port wraps a real serial port.
type Port struct {
	p serial.Port
}

// Open opens the UART at path in 8N1 framing with a short read timeout.
func Open(path string, opts Options) (*Port, error) {
	baud := opts.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}

	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	if err := p.SetReadTimeout(readTimeout); err != nil {
		_ = p.Close()
		return nil, err
	}
	return &Port{p: p}, nil
}

func (p *Port) Read(b []byte) (int, error)  { return p.p.Read(b) }
func (p *Port) Write(b []byte) (int, error) { return p.p.Write(b) }

// ResetInput discards unread bytes queued by the device.
func (p *Port) ResetInput() error { return p.p.ResetInputBuffer() }

// Flush blocks until the transmit buffer has drained onto the wire.
func (p *Port) Flush() error { return p.p.Drain() }

func (p *Port) Close() error { return p.p.Close() }
