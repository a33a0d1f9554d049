package freetrack

import (
	"fmt"
	"io"
	"os"

	"github.com/valyala/bytebufferpool"
)

// FormatState renders a human readable summary of the record.
func FormatState(s State) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w, h := s.CamSize()
	p := s.Pose()
	t := s.Table()
	fmt.Fprintf(buf, "countdown:%d cam:%dx%d game:%d game2:%d consistent:%t\n",
		s.Countdown(), w, h, s.GameID(), s.GameID2(), s.Consistent())
	fmt.Fprintf(buf, "pose yaw:%.4f pitch:%.4f roll:%.4f x:%.2f y:%.2f z:%.2f\n",
		p.Yaw, p.Pitch, p.Roll, p.X, p.Y, p.Z)
	fmt.Fprintf(buf, "raw  yaw:%.4f pitch:%.4f roll:%.4f x:%.2f y:%.2f z:%.2f\n",
		p.RawYaw, p.RawPitch, p.RawRoll, p.RawX, p.RawY, p.RawZ)
	for i, pt := range p.Points {
		fmt.Fprintf(buf, "point%d %.2f %.2f\n", i+1, pt.X, pt.Y)
	}
	fmt.Fprintf(buf, "table % x\n", t[:])
	return buf.String()
}

// DebugStateDetail prints the record stored in the segment file at path, e.g.
// /dev/shm/FT_SharedMem.
func DebugStateDetail(w io.Writer, path string) error {
	mem, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// copy into a fresh slice so the countdown word is aligned for the atomic load
	aligned := make([]byte, len(mem))
	copy(aligned, mem)
	st, err := View(aligned)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "path:%s\n%s", path, FormatState(st))
	return err
}
