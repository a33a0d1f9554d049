// Package freetrack describes the shared pose record published by a head tracking application and
// read by legacy head tracker clients.
//
// The record is a fixed 108-byte little-endian layout:
//
//	off  field
//	  0  DataID     int32   countdown, the only field accessed atomically
//	  4  CamWidth   int32
//	  8  CamHeight  int32
//	 12  Yaw Pitch Roll X Y Z                     float32 x6
//	 36  RawYaw RawPitch RawRoll RawX RawY RawZ   float32 x6
//	 60  X1 Y1 X2 Y2 X3 Y3 X4 Y4                  float32 x8
//	 92  GameId     uint32
//	 96  Table      [8]byte
//	104  GameId2    uint32
//
// Every field except DataID is read and written without synchronization. A
// reader may observe a torn record; GameId == GameId2 is the consistency fence
// the producer restores only after it finished writing.
package freetrack

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/srediag/plugin-npclient/internal/shm"
)

const (
	// StateSize is the size of the shared record in bytes.
	StateSize = 108
	// TableSize is the size of the obfuscation table.
	TableSize = 8

	// DefaultName and DefaultLockName are the segment and lock names legacy clients open.
	DefaultName     = "FT_SharedMem"
	DefaultLockName = "FT_Mutext"

	// CountdownDisabled marks the record as not running.
	CountdownDisabled int32 = -1
	// CountdownReset asks the consumer to zero its pose once.
	CountdownReset int32 = 0
)

const (
	offDataID    = 0
	offCamWidth  = 4
	offCamHeight = 8
	offPose      = 12
	offRaw       = 36
	offPoints    = 60
	offGameID    = 92
	offTable     = 96
	offGameID2   = 104
)

// Point is one tracked 2-D point.
type Point struct {
	X, Y float32
}

// PoseSample is one published pose. Rotations are radians, translations millimetres.
type PoseSample struct {
	Yaw, Pitch, Roll float32
	X, Y, Z          float32

	RawYaw, RawPitch, RawRoll float32
	RawX, RawY, RawZ          float32

	Points [4]Point
}

// State is a view of the shared record. Copies share the same bytes.
type State struct {
	mem []byte
}

// View wraps mem, which must hold at least StateSize bytes and be 4-byte aligned.
func View(mem []byte) (State, error) {
	if len(mem) < StateSize {
		return State{}, fmt.Errorf("freetrack: record needs %d bytes, got %d", StateSize, len(mem))
	}
	return State{mem: mem[:StateSize]}, nil
}

// Bytes returns the raw record.
func (s State) Bytes() []byte { return s.mem }

// Countdown atomically loads DataID.
func (s State) Countdown() int32 {
	return shm.AtomicLoadInt32(s.mem, offDataID)
}

// CompareAndSwapCountdown atomically replaces DataID with new if it still holds old.
func (s State) CompareAndSwapCountdown(old, new int32) bool {
	return shm.AtomicCompareAndSwapInt32(s.mem, offDataID, old, new)
}

// StoreCountdown atomically stores DataID.
func (s State) StoreCountdown(v int32) {
	shm.AtomicStoreInt32(s.mem, offDataID, v)
}

// Disable atomically marks the record as not running.
func (s State) Disable() {
	shm.AtomicSwapInt32(s.mem, offDataID, CountdownDisabled)
}

func (s State) GameID() uint32 { return binary.LittleEndian.Uint32(s.mem[offGameID:]) }

func (s State) SetGameID(id uint32) { binary.LittleEndian.PutUint32(s.mem[offGameID:], id) }

func (s State) GameID2() uint32 { return binary.LittleEndian.Uint32(s.mem[offGameID2:]) }

func (s State) SetGameID2(id uint32) { binary.LittleEndian.PutUint32(s.mem[offGameID2:], id) }

// Consistent reports whether the identity tags agree.
func (s State) Consistent() bool {
	return s.GameID() == s.GameID2()
}

// Table returns a copy of the obfuscation table.
func (s State) Table() [TableSize]byte {
	var t [TableSize]byte
	copy(t[:], s.mem[offTable:offTable+TableSize])
	return t
}

func (s State) SetTable(t [TableSize]byte) {
	copy(s.mem[offTable:offTable+TableSize], t[:])
}

// CamSize returns the camera dimensions.
func (s State) CamSize() (width, height int32) {
	return int32(binary.LittleEndian.Uint32(s.mem[offCamWidth:])),
		int32(binary.LittleEndian.Uint32(s.mem[offCamHeight:]))
}

func (s State) SetCamSize(width, height int32) {
	binary.LittleEndian.PutUint32(s.mem[offCamWidth:], uint32(width))
	binary.LittleEndian.PutUint32(s.mem[offCamHeight:], uint32(height))
}

// Pose reads all pose fields.
func (s State) Pose() PoseSample {
	var p PoseSample
	p.Yaw, p.Pitch, p.Roll = s.f32(offPose), s.f32(offPose+4), s.f32(offPose+8)
	p.X, p.Y, p.Z = s.f32(offPose+12), s.f32(offPose+16), s.f32(offPose+20)
	p.RawYaw, p.RawPitch, p.RawRoll = s.f32(offRaw), s.f32(offRaw+4), s.f32(offRaw+8)
	p.RawX, p.RawY, p.RawZ = s.f32(offRaw+12), s.f32(offRaw+16), s.f32(offRaw+20)
	for i := range p.Points {
		p.Points[i].X = s.f32(offPoints + 8*i)
		p.Points[i].Y = s.f32(offPoints + 8*i + 4)
	}
	return p
}

// SetPose writes all pose fields.
func (s State) SetPose(p PoseSample) {
	for i, v := range [...]float32{p.Yaw, p.Pitch, p.Roll, p.X, p.Y, p.Z} {
		s.putF32(offPose+4*i, v)
	}
	for i, v := range [...]float32{p.RawYaw, p.RawPitch, p.RawRoll, p.RawX, p.RawY, p.RawZ} {
		s.putF32(offRaw+4*i, v)
	}
	for i, pt := range p.Points {
		s.putF32(offPoints+8*i, pt.X)
		s.putF32(offPoints+8*i+4, pt.Y)
	}
}

func (s State) f32(off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(s.mem[off:]))
}

func (s State) putF32(off int, v float32) {
	binary.LittleEndian.PutUint32(s.mem[off:], math.Float32bits(v))
}
