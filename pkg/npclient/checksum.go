package npclient

import "encoding/binary"

// Checksum computes the integrity code consumers verify on every packet. It
// runs over the full packet image with the checksum field zeroed.
//
// The arithmetic is signed 32-bit with wrapping overflow and arithmetic right
// shifts, reading little-endian signed 16-bit words and signed bytes. An empty
// buffer yields 0.
func Checksum(buf []byte) uint32 {
	if len(buf) == 0 {
		return 0
	}
	var (
		c  = int32(len(buf))
		a0 int32
		a2 int32
		p  = buf
	)
	for len(p) >= 4 {
		a0 = int32(int16(binary.LittleEndian.Uint16(p)))
		a2 = int32(int16(binary.LittleEndian.Uint16(p[2:])))
		p = p[4:]
		c += a0
		a2 ^= c << 5
		a2 <<= 11
		c ^= a2
		c += c >> 11
	}

	switch len(p) {
	case 3:
		a0 = int32(int16(binary.LittleEndian.Uint16(p)))
		a2 = int32(int8(p[2]))
		c += a0
		a2 = (a2 << 2) ^ c
		c ^= a2 << 16
		a2 = c >> 11
	case 2:
		a2 = int32(int16(binary.LittleEndian.Uint16(p)))
		c += a2
		c ^= c << 11
		a2 = c >> 17
	case 1:
		a2 = int32(int8(p[0]))
		c += a2
		c ^= c << 10
		a2 = c >> 1
	}
	if len(p) != 0 {
		c += a2
	}

	c ^= c << 3
	c += c >> 5
	c ^= c << 4
	c += c >> 17
	c ^= c << 25
	c += c >> 6
	return uint32(c)
}
