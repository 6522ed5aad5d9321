// internal/driver/dts/frame.go
package dts

import "fmt"

// Decoder carves validated frames out of a raw UART byte stream. It is a
// fixed-size accumulation buffer plus a write cursor: no allocation on the
// hot path, no goroutines, single owner. Corrupt input is recovered locally,
// either by shedding one leading byte (the matched header was a false
// positive inside garbage) or by discarding the whole buffer (overflow, or a
// frame that can never fit).
type Decoder struct {
	buf [BufferSize]byte
	n   int
}

// Feed ingests one byte and advances the state machine by one step.
//
// A non-nil Reading means the byte completed a valid data frame carrying the
// distance field. A nil Reading with nil error means the decoder needs more
// input, shed a leading byte while scanning for a header, or consumed a valid
// frame whose payload is too short to carry a distance. A non-nil error
// reports a rejection that has already been recovered; the stream stays
// usable and the caller only needs to log it.
func (d *Decoder) Feed(b byte) (*Reading, error) {
	if d.n == len(d.buf) {
		// Overflow policy: drop-and-resync. Recovery beats retention, so
		// the incoming byte's frame context is discarded with the rest.
		d.n = 0
		return nil, ErrBufferOverflow
	}
	d.buf[d.n] = b
	d.n++

	if d.n < minFrameLen {
		return nil, nil
	}

	if !d.headerAtFront() {
		d.dropOne()
		return nil, nil
	}

	declared := int(d.buf[lenOffset])<<8 | int(d.buf[lenOffset+1])
	if declared > maxDeclaredLen {
		d.dropOne()
		return nil, fmt.Errorf("%w: %d", ErrOversizedPayload, declared)
	}

	total := minFrameLen + declared + crcLen
	if total > len(d.buf) {
		// No amount of byte shedding lets this frame fit.
		d.n = 0
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, total)
	}
	if d.n < total {
		// Suspension point: the partial frame stays buffered across calls.
		return nil, nil
	}

	r, err := parseFrame(d.buf[:total])
	if err != nil {
		d.dropOne()
		return nil, err
	}

	// Frame consumed: shift any trailing bytes down to the front.
	d.n = copy(d.buf[:], d.buf[total:d.n])
	return r, nil
}

// parseFrame validates one complete candidate frame and extracts its distance
// field. The slice is a view into the decoder buffer: read during this call,
// never kept. A nil Reading with nil error is a structurally valid frame
// whose payload lacks the distance field; the caller consumes it anyway.
func parseFrame(frame []byte) (*Reading, error) {
	if len(frame) < minValidFrame {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(frame))
	}

	want := uint16(frame[len(frame)-2])<<8 | uint16(frame[len(frame)-1])
	if got := Checksum(frame[:len(frame)-crcLen]); got != want {
		return nil, fmt.Errorf("%w: calculated 0x%04X received 0x%04X", ErrCRCMismatch, got, want)
	}

	declared := int(frame[lenOffset])<<8 | int(frame[lenOffset+1])
	if declared < minDistanceLen {
		return nil, nil
	}

	raw := uint16(frame[distOffset]) | uint16(frame[distOffset+1])<<8
	if raw == noTargetRaw {
		return &Reading{NoTarget: true}, nil
	}
	return &Reading{Millimeters: raw}, nil
}

func (d *Decoder) headerAtFront() bool {
	return d.buf[0] == frameHeader[0] &&
		d.buf[1] == frameHeader[1] &&
		d.buf[2] == frameHeader[2] &&
		d.buf[3] == frameHeader[3]
}

// dropOne sheds the leading byte: the resynchronization step.
func (d *Decoder) dropOne() {
	copy(d.buf[:], d.buf[1:d.n])
	d.n--
}

// Reset discards all buffered bytes.
func (d *Decoder) Reset() {
	d.n = 0
}

// Buffered reports how many bytes are waiting for frame completion.
func (d *Decoder) Buffered() int {
	return d.n
}
