package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kinetre/motive/motion"
	"github.com/kinetre/motive/parameter"
)

// Tickable is anything driven once per tick with the tick's deltas.
// Every Store implements it.
type Tickable interface {
	Tick(motion.Deltas)
}

// Runner drives registered stores on a fixed tick without busy-wait.
// It owns the goroutine; Stop is idempotent and waits for the loop to exit.
type Runner struct {
	clock    *Clock
	interval time.Duration

	mu      sync.RWMutex
	targets []Tickable

	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	running   atomic.Bool
	tickCount atomic.Uint64
}

// NewRunner creates a runner ticking at the given interval
// (parameter.TickInterval when interval <= 0) against the given clock.
func NewRunner(clock *Clock, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = parameter.TickInterval
	}
	if clock == nil {
		clock = NewClock()
	}
	return &Runner{
		clock:    clock,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Add registers a tick target. Safe before or after Start.
func (r *Runner) Add(t Tickable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, t)
}

// Clock returns the runner's clock for pause/scale control
func (r *Runner) Clock() *Clock {
	return r.clock
}

// Start launches the tick loop. Subsequent calls are no-ops.
func (r *Runner) Start() {
	if !r.running.CompareAndSwap(false, true) {
		return
	}
	r.wg.Add(1)
	go r.loop()
}

// Stop terminates the tick loop and blocks until it has exited
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	r.wg.Wait()
	r.running.Store(false)
}

// TickCount returns the number of ticks executed so far
func (r *Runner) TickCount() uint64 {
	return r.tickCount.Load()
}

func (r *Runner) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case now := <-ticker.C:
			r.StepOnce(now)
		}
	}
}

// StepOnce advances the clock to now and ticks every target once. Exposed
// so hosts with their own frame loop can drive the engine directly instead
// of running the internal ticker.
func (r *Runner) StepOnce(now time.Time) {
	d := r.clock.Step(now)

	r.mu.RLock()
	targets := r.targets
	r.mu.RUnlock()

	for _, t := range targets {
		t.Tick(d)
	}
	r.tickCount.Add(1)
}
