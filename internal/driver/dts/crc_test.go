package dts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_ReferenceVectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint16
	}{
		{"empty is the seed", nil, 0xFFFF},
		{"standard check string", []byte("123456789"), 0x4B37},
		{"single zero byte", []byte{0x00}, 0x40BF},
		{"start command head", []byte{0xA5, 0x03, 0x20, 0x01, 0x00, 0x00, 0x00}, 0x026E},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Checksum(tc.in))
		})
	}
}

func TestChecksum_StartCommandTrailerMatches(t *testing.T) {
	// The canned start command carries its own CRC in the last two bytes,
	// big-endian.
	head := StartCommand[:len(StartCommand)-2]
	crc := Checksum(head)
	assert.Equal(t, byte(crc>>8), StartCommand[len(StartCommand)-2])
	assert.Equal(t, byte(crc), StartCommand[len(StartCommand)-1])
}
