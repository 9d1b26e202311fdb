package motion

import (
	"math"

	"github.com/kinetre/motive/ease"
)

// Status is the lifecycle state of a motion record
type Status uint8

const (
	// StatusScheduled means the record is stored but has not been evaluated yet
	StatusScheduled Status = iota

	// StatusDelayed means elapsed time is still inside a delay phase
	StatusDelayed

	// StatusPlaying means the record is producing interpolated output
	StatusPlaying

	// StatusCompleted means the record reached its total duration; it is
	// drained into the completion list and never evaluated again
	StatusCompleted

	// StatusCanceled is set externally; observed and drained on the next tick
	StatusCanceled

	// StatusDisposed is terminal; the slot is eligible for recycling
	StatusDisposed
)

// Active reports whether the record should still be evaluated each tick
func (s Status) Active() bool {
	return s <= StatusPlaying
}

// Terminal reports whether the record can never produce output again
func (s Status) Terminal() bool {
	return s >= StatusCompleted
}

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusDelayed:
		return "delayed"
	case StatusPlaying:
		return "playing"
	case StatusCompleted:
		return "completed"
	case StatusCanceled:
		return "canceled"
	case StatusDisposed:
		return "disposed"
	}
	return "unknown"
}

// LoopType selects how successive loop repetitions reshape progress
type LoopType uint8

const (
	// LoopRestart replays each loop from the start
	LoopRestart LoopType = iota

	// LoopYoyo reflects every odd loop, ping-ponging between endpoints
	LoopYoyo

	// LoopIncremental accumulates one full span per completed loop,
	// growing without bound; used for additive motion
	LoopIncremental
)

// DelayType selects whether the delay applies once or before every loop
type DelayType uint8

const (
	// DelayFirstLoop applies the delay once, before the first loop
	DelayFirstLoop DelayType = iota

	// DelayEveryLoop applies the delay at the start of each loop
	DelayEveryLoop
)

// TimeKind selects which of the three per-tick deltas advances a record
type TimeKind uint8

const (
	// TimeScaled advances with scaled game time (frozen by pause)
	TimeScaled TimeKind = iota

	// TimeUnscaled advances with hitch-clamped frame time
	TimeUnscaled

	// TimeReal advances with raw wall-clock time
	TimeReal
)

// Deltas carries the three externally supplied per-tick time deltas, in
// seconds. All are non-negative.
type Deltas struct {
	Scaled   float64
	Unscaled float64
	Real     float64
}

// Params holds one record's immutable animation parameters
type Params struct {
	Duration float64 // seconds, <= 0 means instantaneous/delay-only
	Delay    float64 // seconds
	Loops    int     // negative = infinite

	LoopType  LoopType
	DelayType DelayType

	Ease  ease.Kind
	Curve ease.Curve // non-nil overrides Ease

	TimeKind      TimeKind
	PlaybackSpeed float64
}

// State is one motion record: immutable parameters plus runtime state.
// Time is cumulative elapsed seconds since scheduling, always >= 0.
type State struct {
	Params

	Time   float64
	Status Status
}

// Adapter knows how to produce an output value from the endpoints, the
// per-record options payload and an eased progress. Exactly one adapter
// and options value apply for a record's lifetime.
type Adapter[V, O any] interface {
	Evaluate(start, end V, options O, progress float64) V
}

// TotalDuration returns the full timeline length of p in seconds, or +Inf
// for infinite loops
func TotalDuration(p Params) float64 {
	if p.Loops < 0 {
		return math.Inf(1)
	}
	d := p.Duration
	if d < 0 {
		d = 0
	}
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}
	if p.DelayType == DelayEveryLoop {
		return (d + delay) * float64(p.Loops)
	}
	return delay + d*float64(p.Loops)
}
