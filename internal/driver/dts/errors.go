// internal/driver/dts/errors.go
package dts

import "errors"

// Decode rejections. Every one of these is recovered inside the decoder by
// resynchronizing; they are surfaced only so callers can log them.
var (
	ErrBufferOverflow   = errors.New("dts: buffer full before frame completed")
	ErrOversizedPayload = errors.New("dts: declared payload length too large")
	ErrFrameTooLarge    = errors.New("dts: frame does not fit in buffer")
	ErrFrameTooShort    = errors.New("dts: frame below minimum length")
	ErrCRCMismatch      = errors.New("dts: crc mismatch")
)
