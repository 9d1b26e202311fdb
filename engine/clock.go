package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kinetre/motive/motion"
	"github.com/kinetre/motive/parameter"
)

// Clock converts wall-clock time into the three per-tick deltas:
//
//   - Real: raw elapsed wall time, unaffected by pause or scale
//   - Unscaled: elapsed time clamped by parameter.MaxDeltaTime so a stalled
//     frame does not teleport motions forward
//   - Scaled: unscaled time multiplied by the time scale, frozen while paused
type Clock struct {
	mu      sync.Mutex
	last    time.Time
	started bool

	scale    float64
	isPaused atomic.Bool
}

// NewClock creates a clock at time scale 1, running
func NewClock() *Clock {
	return &Clock{scale: 1}
}

// Step consumes the time elapsed since the previous Step and returns the
// tick's deltas. The first Step anchors the clock and returns zero deltas.
func (c *Clock) Step(now time.Time) motion.Deltas {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		c.started = true
		c.last = now
		return motion.Deltas{}
	}

	real := now.Sub(c.last).Seconds()
	if real < 0 {
		real = 0
	}
	c.last = now

	unscaled := real
	if maxDelta := parameter.MaxDeltaTime.Seconds(); unscaled > maxDelta {
		unscaled = maxDelta
	}

	scaled := unscaled * c.scale
	if c.isPaused.Load() {
		scaled = 0
	}

	return motion.Deltas{Scaled: scaled, Unscaled: unscaled, Real: real}
}

// SetScale sets the multiplier applied to scaled time. Negative scales are
// allowed; records clamp their own time at zero.
func (c *Clock) SetScale(scale float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scale = scale
}

// Scale returns the current time scale
func (c *Clock) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// Pause freezes scaled time; unscaled and real time keep advancing
func (c *Clock) Pause() {
	c.isPaused.Store(true)
}

// Resume continues scaled time advancement
func (c *Clock) Resume() {
	c.isPaused.Store(false)
}

// IsPaused returns current pause state
func (c *Clock) IsPaused() bool {
	return c.isPaused.Load()
}
