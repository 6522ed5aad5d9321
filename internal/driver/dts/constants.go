// internal/driver/dts/constants.go
package dts

// DTS6012M frame layout constants.
// These values define the wire protocol and MUST NOT be configurable.

// ---- FRAME GEOMETRY ----

const (
	// BufferSize is the capacity of the decoder's accumulation buffer.
	BufferSize = 64

	headerLen   = 4
	minFrameLen = 7
	lenOffset   = 5
	distOffset  = 13
	crcLen      = 2

	// maxDeclaredLen caps the declared payload length field. Anything larger
	// is corrupt framing: the matched header was garbage.
	maxDeclaredLen = 32

	// minDistanceLen is the smallest declared payload length that still
	// carries the distance field.
	minDistanceLen = 14

	// minValidFrame is header + meta plus the CRC trailer.
	minValidFrame = 9
)

// ---- RESERVED VALUES ----

// noTargetRaw is the reserved distance value meaning no target detected.
const noTargetRaw uint16 = 0xFFFF

// frameHeader is the fixed pattern identifying a frame start.
var frameHeader = [headerLen]byte{0xA5, 0x03, 0x20, 0x01}

// StartCommand begins continuous ranging. The trailing two bytes are the
// Modbus CRC16 of the first seven, stored big-endian.
var StartCommand = []byte{0xA5, 0x03, 0x20, 0x01, 0x00, 0x00, 0x00, 0x02, 0x6E}
