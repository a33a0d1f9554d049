package npclient

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/srediag/plugin-npclient/api"
)

const (
	// PacketSize is the size of the packet image handed to the game.
	PacketSize = 68
	// AxisMax bounds every axis of the packet.
	AxisMax = 16383

	offStatus   = 0
	offFrame    = 2
	offChecksum = 4
	offAxes     = 8
	offPadding  = 32
)

// Packet is one answer to a data request. The axis fields and Checksum are
// the values before obfuscation; Wire is the exact image the game receives.
type Packet struct {
	Status   api.Status
	Frame    int16
	Checksum uint32

	Roll, Pitch, Yaw float32
	TX, TY, TZ       float32

	// Wire is the encoded packet after checksum and, when Obfuscated, the cipher.
	Wire       [PacketSize]byte
	Obfuscated bool
}

// Clamp limits x to [-AxisMax, AxisMax].
func Clamp(x float64) float64 {
	if x > AxisMax {
		return AxisMax
	}
	if x < -AxisMax {
		return -AxisMax
	}
	return x
}

// encodePlain writes the unobfuscated image of p into dst, using p.Checksum as is.
func (p *Packet) encodePlain(dst []byte) {
	_ = dst[PacketSize-1]
	binary.LittleEndian.PutUint16(dst[offStatus:], uint16(p.Status))
	binary.LittleEndian.PutUint16(dst[offFrame:], uint16(p.Frame))
	binary.LittleEndian.PutUint32(dst[offChecksum:], p.Checksum)
	for i, v := range [...]float32{p.Roll, p.Pitch, p.Yaw, p.TX, p.TY, p.TZ} {
		binary.LittleEndian.PutUint32(dst[offAxes+4*i:], math.Float32bits(v))
	}
	clear(dst[offPadding:PacketSize])
}

// seal computes the checksum over the image with a zeroed checksum field, then
// obfuscates the image when table is enabled.
func (p *Packet) seal(table CipherTable) {
	p.Checksum = 0
	p.encodePlain(p.Wire[:])
	p.Checksum = Checksum(p.Wire[:])
	binary.LittleEndian.PutUint32(p.Wire[offChecksum:], p.Checksum)
	p.Obfuscated = table.Enabled()
	if p.Obfuscated {
		Cipher(p.Wire[:], table[:])
	}
}

// DecodePacket parses an unobfuscated packet image.
func DecodePacket(src []byte) (Packet, error) {
	if len(src) < PacketSize {
		return Packet{}, fmt.Errorf("packet needs %d bytes, got %d", PacketSize, len(src))
	}
	var p Packet
	p.Status = api.Status(int16(binary.LittleEndian.Uint16(src[offStatus:])))
	p.Frame = int16(binary.LittleEndian.Uint16(src[offFrame:]))
	p.Checksum = binary.LittleEndian.Uint32(src[offChecksum:])
	axes := [...]*float32{&p.Roll, &p.Pitch, &p.Yaw, &p.TX, &p.TY, &p.TZ}
	for i, a := range axes {
		*a = math.Float32frombits(binary.LittleEndian.Uint32(src[offAxes+4*i:]))
	}
	copy(p.Wire[:], src[:PacketSize])
	return p, nil
}

// VerifyChecksum reports whether an unobfuscated image carries a valid checksum.
func VerifyChecksum(src []byte) bool {
	if len(src) < PacketSize {
		return false
	}
	var img [PacketSize]byte
	copy(img[:], src)
	want := binary.LittleEndian.Uint32(img[offChecksum:])
	clear(img[offChecksum : offChecksum+4])
	return Checksum(img[:]) == want
}
