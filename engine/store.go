package engine

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/kinetre/motive/motion"
	"github.com/kinetre/motive/parameter"
)

// slot is one record's storage: parameters, runtime state, endpoints and
// callbacks, addressed by a stable index and guarded by a generation tag
type slot[V, O any] struct {
	state   motion.State
	start   V
	end     V
	options O

	generation uint32
	occupied   bool
	detached   bool // sequence-owned: moved by seeking, not by Tick
	ticked     bool // evaluated this tick, pending bind

	bind       func(V)
	onComplete func()
	onCancel   func()
}

// Store is a dense arena of motion records of one value kind. Slots are
// addressed by stable integer index, recycled through a free list and
// versioned with a generation tag so stale handles fail fast.
//
// The mutex guards slot acquire/release and batch phase boundaries; during
// a batch every worker writes only its own disjoint index range.
type Store[V, O any] struct {
	id      uint32
	adapter motion.Adapter[V, O]

	mu    sync.Mutex
	slots []slot[V, O]
	free  []uint32
	live  int

	// Per-tick buffers, reused across ticks
	outputs   []V
	terminals []uint32
	applyFns  []func(V)
	applyVals []V
	drainCbs  []func()

	pool worker.DynamicWorkerPool
}

type storeConfig struct {
	workers int
}

// StoreOption configures a Store at construction
type StoreOption func(*storeConfig)

// WithWorkers enables data-parallel evaluation over a persistent pool of n
// workers. Small batches still run serially; fan-out only pays off past
// parameter.ParallelThreshold live records.
func WithWorkers(n int) StoreOption {
	return func(c *storeConfig) {
		c.workers = n
	}
}

// NewStore creates a record store evaluating values through the given
// adapter and registers it with the handle registry.
func NewStore[V, O any](a motion.Adapter[V, O], opts ...StoreOption) *Store[V, O] {
	var cfg storeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Store[V, O]{
		adapter:   a,
		slots:     make([]slot[V, O], 0, parameter.StoreInitialCapacity),
		outputs:   make([]V, 0, parameter.StoreInitialCapacity),
		free:      make([]uint32, 0, parameter.StoreInitialCapacity),
		terminals: make([]uint32, 0, 16),
	}
	if cfg.workers > 1 {
		s.pool = worker.NewDynamicWorkerPool(cfg.workers, parameter.WorkerQueueLen, parameter.WorkerIdleTimeout)
	}
	s.id = registerStore(s)
	return s
}

// Create schedules a new record and returns its handle. A zero
// PlaybackSpeed is normalized to 1 so the zero Params value plays.
func (s *Store[V, O]) Create(start, end V, options O, p motion.Params) Handle {
	if p.PlaybackSpeed == 0 {
		p.PlaybackSpeed = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		var zeroV V
		s.slots = append(s.slots, slot[V, O]{generation: 1})
		s.outputs = append(s.outputs, zeroV)
		idx = uint32(len(s.slots) - 1)
	}

	sl := &s.slots[idx]
	sl.state = motion.State{Params: p, Status: motion.StatusScheduled}
	sl.start = start
	sl.end = end
	sl.options = options
	sl.occupied = true
	s.live++

	return Handle{Store: s.id, Index: idx, Generation: sl.generation}
}

// Bind registers the callback that receives this record's evaluated output
// during the apply phase of each tick (and on seeks).
func (s *Store[V, O]) Bind(h Handle, fn func(V)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, err := s.slotLocked(h.Index, h.Generation, h.Store)
	if err != nil {
		return err
	}
	sl.bind = fn
	return nil
}

// WithOnComplete registers a callback fired when the record is drained as
// completed, before its slot recycles.
func (s *Store[V, O]) WithOnComplete(h Handle, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, err := s.slotLocked(h.Index, h.Generation, h.Store)
	if err != nil {
		return err
	}
	sl.onComplete = fn
	return nil
}

// WithOnCancel registers a callback fired when the record is drained as
// canceled, before its slot recycles.
func (s *Store[V, O]) WithOnCancel(h Handle, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, err := s.slotLocked(h.Index, h.Generation, h.Store)
	if err != nil {
		return err
	}
	sl.onCancel = fn
	return nil
}

// Count returns the number of live records (including sequence-owned ones)
func (s *Store[V, O]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Outputs returns the dense output buffer aligned with record indices.
// Contents are valid until the next Tick.
func (s *Store[V, O]) Outputs() []V {
	return s.outputs
}

// Terminals returns the indices that reached a terminal status during the
// last Tick. Contents are valid until the next Tick.
func (s *Store[V, O]) Terminals() []uint32 {
	return s.terminals
}

// slotLocked resolves an index/generation pair to its live slot.
// Caller holds mu.
func (s *Store[V, O]) slotLocked(index, generation, store uint32) (*slot[V, O], error) {
	if store != s.id || int(index) >= len(s.slots) {
		return nil, ErrStaleHandle
	}
	sl := &s.slots[index]
	if !sl.occupied || sl.generation != generation {
		return nil, ErrStaleHandle
	}
	return sl, nil
}

// opsSlotLocked is the registry-facing variant: the registry already
// resolved the store, so only index and generation are checked.
func (s *Store[V, O]) opsSlotLocked(index, generation uint32) (*slot[V, O], error) {
	return s.slotLocked(index, generation, s.id)
}

// releaseLocked retires a slot and returns the callback the caller must
// invoke once the lock is dropped. Caller holds mu.
func (s *Store[V, O]) releaseLocked(index uint32, canceled bool) func() {
	sl := &s.slots[index]
	cb := sl.onComplete
	if canceled {
		cb = sl.onCancel
	}
	sl.state.Status = motion.StatusDisposed
	sl.occupied = false
	sl.detached = false
	sl.ticked = false
	sl.bind = nil
	sl.onComplete = nil
	sl.onCancel = nil
	sl.generation++
	s.free = append(s.free, index)
	s.live--
	return cb
}
