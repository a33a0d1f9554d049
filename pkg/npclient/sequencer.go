package npclient

import (
	"math"

	"github.com/srediag/plugin-npclient/pkg/freetrack"
)

// Phase is the state of the shared record as seen by one poll.
type Phase int

const (
	// PhaseNoSession: no mapping, no registered game, or the identity tags do
	// not match the registered game.
	PhaseNoSession Phase = iota
	// PhaseReset: the countdown was 0; the pose is zeroed.
	PhaseReset
	// PhaseLive: the countdown was positive; the fresh pose is used.
	PhaseLive
	// PhaseDisabled: the countdown was -1 (or any negative value).
	PhaseDisabled
)

func (p Phase) String() string {
	switch p {
	case PhaseNoSession:
		return "no-session"
	case PhaseReset:
		return "reset"
	case PhaseLive:
		return "live"
	case PhaseDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Axes are the six pose values in protocol units, before clamping.
type Axes struct {
	Yaw, Pitch, Roll float64
	X, Y, Z          float64
}

// ScaleAxes converts a published pose to protocol units: radians map onto
// ±AxisMax over ±pi and millimetres onto ±AxisMax over ±500. The products are
// computed in float32 as legacy clients do.
func ScaleAxes(p freetrack.PoseSample) Axes {
	return Axes{
		Yaw:   float64(p.Yaw*AxisMax) / math.Pi,
		Pitch: float64(p.Pitch*AxisMax) / math.Pi,
		Roll:  float64(p.Roll*AxisMax) / math.Pi,
		X:     float64(p.X*AxisMax) / 500,
		Y:     float64(p.Y*AxisMax) / 500,
		Z:     float64(p.Z*AxisMax) / 500,
	}
}

// Step is the outcome of one Sequencer.Advance.
type Step struct {
	Phase Phase
	// Countdown is the value observed, or CountdownDisabled when the record was not read.
	Countdown int32
	// Axes is the pose to report, which is the held pose outside PhaseLive.
	Axes Axes
	// Swapped reports whether this poll's compare-and-swap on the countdown won.
	Swapped bool
}

// Running reports whether the step delivers tracking data.
func (s Step) Running() bool {
	return s.Phase == PhaseReset || s.Phase == PhaseLive
}

// Sequencer holds the per-session state driven by the shared countdown: the
// last known good pose and the cipher table captured on the first valid read.
// It is not safe for concurrent use; Bridge serializes it.
type Sequencer struct {
	held        Axes
	table       CipherTable
	tableLoaded bool
}

// Held returns the pose reported while not live.
func (q *Sequencer) Held() Axes { return q.held }

// Table returns the captured cipher table and whether it was captured yet.
func (q *Sequencer) Table() (CipherTable, bool) { return q.table, q.tableLoaded }

// Advance runs one poll against st. A nil st means the mapping is absent.
// binding is the registered game id; 0 means none.
//
// Shared memory is only touched through the countdown's compare-and-swap, and
// only when the identity tags validate.
func (q *Sequencer) Advance(st *freetrack.State, binding uint32) Step {
	if st == nil || binding == 0 || st.GameID() != binding || !st.Consistent() {
		return Step{Phase: PhaseNoSession, Countdown: freetrack.CountdownDisabled, Axes: q.held}
	}

	pose := st.Pose()
	if !q.tableLoaded {
		q.table = CipherTable(st.Table())
		q.tableLoaded = true
	}

	n := st.Countdown()
	switch {
	case n == freetrack.CountdownReset:
		q.held = Axes{}
		ok := st.CompareAndSwapCountdown(n, freetrack.CountdownDisabled)
		return Step{Phase: PhaseReset, Countdown: n, Axes: q.held, Swapped: ok}
	case n > 0:
		q.held = ScaleAxes(pose)
		ok := st.CompareAndSwapCountdown(n, n-1)
		return Step{Phase: PhaseLive, Countdown: n, Axes: q.held, Swapped: ok}
	default:
		return Step{Phase: PhaseDisabled, Countdown: n, Axes: q.held}
	}
}
