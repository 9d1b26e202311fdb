package motion

import (
	"math"

	"github.com/kinetre/motive/ease"
)

// Advance selects the record's time delta, moves its clock and resolves the
// eased progress and status for the new time. Pure given the record and the
// tick's deltas; safe to run concurrently across disjoint records.
//
// Callers must not pass records whose status is already terminal; those are
// drained through the completion list instead of being re-evaluated.
func Advance(st *State, d Deltas) (float64, Status) {
	t := st.Time + st.delta(d)*st.PlaybackSpeed
	if t < 0 {
		t = 0
	}
	st.Time = t
	progress, status := resolve(&st.Params, t)
	st.Status = status
	return progress, status
}

// Seek positions the record at an absolute elapsed time and resolves it.
// Used by the sequence player to re-drive member records.
func Seek(st *State, elapsed float64) (float64, Status) {
	if elapsed < 0 {
		elapsed = 0
	}
	st.Time = elapsed
	progress, status := resolve(&st.Params, elapsed)
	st.Status = status
	return progress, status
}

// Finish forces the record to its completed end state and returns the final
// shaped progress. Reports false for unbounded (infinite-loop) records,
// which have no end state.
func Finish(st *State) (float64, bool) {
	total := TotalDuration(st.Params)
	if math.IsInf(total, 1) {
		return 0, false
	}
	st.Time = total
	st.Status = StatusCompleted
	loops := st.Loops
	if loops < 0 {
		loops = 0
	}
	return shape(&st.Params, 1, loops), true
}

func (p *Params) delta(d Deltas) float64 {
	switch p.TimeKind {
	case TimeUnscaled:
		return d.Unscaled
	case TimeReal:
		return d.Real
	default:
		return d.Scaled
	}
}

// resolve converts cumulative elapsed time into an eased progress value and
// a status. All branches are total over their numeric domain; every division
// is guarded structurally by branching on duration/delay first.
func resolve(p *Params, time float64) (float64, Status) {
	var (
		t         float64 // normalized fraction of the current loop
		loops     int     // clamped completed-loop count
		delayed   bool
		completed bool
	)

	// A negative delay reads as no delay; otherwise the every-loop cycle
	// length could reach zero and poison the modulo below
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}

	switch {
	case p.Duration <= 0 && p.DelayType == DelayFirstLoop:
		// Instantaneous motion behind a single up-front delay
		rem := time - delay
		completed = p.Loops >= 0 && rem > 0
		switch {
		case completed:
			t = 1
			loops = p.Loops
		case rem < 0:
			delayed = true
			loops = -1
		}

	case p.Duration <= 0:
		// Delay-only units: each loop is one delay span
		if delay <= 0 {
			completed = p.Loops >= 0
			if completed {
				t = 1
				loops = p.Loops
			}
			delayed = !completed
			break
		}
		cl := clampLoops(int(math.Floor(time/delay)), p.Loops)
		completed = p.Loops >= 0 && cl > p.Loops-1
		if completed {
			t = 1
		} else {
			delayed = true
		}
		loops = cl

	case p.DelayType == DelayFirstLoop:
		rem := time - delay
		cl := clampLoops(int(math.Floor(rem/p.Duration)), p.Loops)
		completed = p.Loops >= 0 && cl > p.Loops-1
		delayed = rem < 0
		if completed {
			t = 1
		} else {
			t = clamp01((rem - p.Duration*float64(cl)) / p.Duration)
		}
		loops = cl

	default:
		// Positive duration, delay repeated before every loop
		cycle := p.Duration + delay
		cur := math.Mod(time, cycle) - delay
		cl := clampLoops(int(math.Floor(time/cycle)), p.Loops)
		completed = p.Loops >= 0 && cl > p.Loops-1
		delayed = cur < 0
		if completed {
			t = 1
		} else {
			t = clamp01(cur / p.Duration)
		}
		loops = cl
	}

	progress := shape(p, t, loops)
	switch {
	case completed:
		return progress, StatusCompleted
	case delayed:
		return progress, StatusDelayed
	default:
		return progress, StatusPlaying
	}
}

// shape maps the loop fraction through easing and the loop policy
func shape(p *Params, t float64, loops int) float64 {
	n := loops
	if n < 0 {
		n = 0
	}
	switch p.LoopType {
	case LoopYoyo:
		pr := p.eval(t)
		if (n+int(math.Floor(t)))%2 == 1 {
			pr = 1 - pr
		}
		return pr
	case LoopIncremental:
		return p.eval(1)*float64(n) + p.eval(math.Mod(t, 1))
	default:
		return p.eval(t)
	}
}

func (p *Params) eval(t float64) float64 {
	if p.Curve != nil {
		return p.Curve(t)
	}
	return ease.Eval(p.Ease, t)
}

func clampLoops(cl, loops int) int {
	if loops >= 0 && cl > loops {
		cl = loops
	}
	if cl < 0 {
		cl = 0
	}
	return cl
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
