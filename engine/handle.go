package engine

import (
	"sync"

	"github.com/kinetre/motive/motion"
)

// Handle is an opaque reference to a live motion record. Handles stay valid
// until the record is drained through the completion list; any use after
// that fails with ErrStaleHandle.
type Handle struct {
	Store      uint32
	Index      uint32
	Generation uint32
}

// Valid reports whether h was ever issued. The zero Handle is never valid.
func (h Handle) Valid() bool {
	return h.Generation != 0 && h.Store != 0
}

// storeOps is the type-erased surface a store exposes to the handle
// registry, so handles of different value kinds can be driven uniformly
// (sequence players hold handles from arbitrary stores).
type storeOps interface {
	seek(index, generation uint32, elapsed float64) error
	cancel(index, generation uint32) error
	complete(index, generation uint32) error
	detach(index, generation uint32) (float64, error)
	status(index, generation uint32) (motion.Status, error)
}

// Store IDs start at 1 so the zero Handle can never resolve
var registry struct {
	mu     sync.RWMutex
	stores []storeOps
}

func registerStore(ops storeOps) uint32 {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.stores = append(registry.stores, ops)
	return uint32(len(registry.stores))
}

func lookup(h Handle) (storeOps, error) {
	if !h.Valid() {
		return nil, ErrStaleHandle
	}
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if int(h.Store) > len(registry.stores) {
		return nil, ErrStaleHandle
	}
	return registry.stores[h.Store-1], nil
}

// Cancel marks the record canceled. Records driven per tick are routed to
// the completion list on the next tick; sequence-owned records are finalized
// immediately since nothing else will observe them.
func Cancel(h Handle) error {
	ops, err := lookup(h)
	if err != nil {
		return err
	}
	return ops.cancel(h.Index, h.Generation)
}

// Complete forces the record to its final value and status: the bound
// callback receives the end-state output, the completion callback fires and
// the slot recycles. Fails with ErrUnbounded for infinite loops.
func Complete(h Handle) error {
	ops, err := lookup(h)
	if err != nil {
		return err
	}
	return ops.complete(h.Index, h.Generation)
}

// Seek positions the record at an absolute elapsed time and applies the
// resulting output through its bound callback.
func Seek(h Handle, elapsed float64) error {
	ops, err := lookup(h)
	if err != nil {
		return err
	}
	return ops.seek(h.Index, h.Generation, elapsed)
}

// StatusOf reports the record's current status.
func StatusOf(h Handle) (motion.Status, error) {
	ops, err := lookup(h)
	if err != nil {
		return motion.StatusDisposed, err
	}
	return ops.status(h.Index, h.Generation)
}

// AddToSequence removes the record from independent per-tick driving and
// reports its total timeline length. From then on only seeking moves it.
// Infinite-loop motions cannot be sequenced.
func AddToSequence(h Handle) (float64, error) {
	ops, err := lookup(h)
	if err != nil {
		return 0, err
	}
	return ops.detach(h.Index, h.Generation)
}
