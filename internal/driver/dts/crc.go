// internal/driver/dts/crc.go
package dts

// Checksum computes the Modbus CRC16 the sensor firmware uses: seed 0xFFFF,
// polynomial 0xA001, LSB first, no lookup table.
// Pure function. Must match the firmware bit for bit.
func Checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&0x0001 != 0 {
				crc = (crc >> 1) ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
