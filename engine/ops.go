package engine

import (
	"math"

	"github.com/kinetre/motive/motion"
)

// Registry-facing handle operations. Each takes the store lock only around
// slot access; user callbacks always run after the lock is dropped.

func (s *Store[V, O]) seek(index, generation uint32, elapsed float64) error {
	s.mu.Lock()
	sl, err := s.opsSlotLocked(index, generation)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	// Terminal is one-way for per-tick records: a canceled or completed slot
	// waits for the drain, it is never resurrected. Sequence-owned records
	// reach Completed through seeking and stay addressable until their
	// player drains them.
	if !sl.detached && sl.state.Status.Terminal() {
		s.mu.Unlock()
		return ErrStaleHandle
	}
	progress, _ := motion.Seek(&sl.state, elapsed)
	out := s.adapter.Evaluate(sl.start, sl.end, sl.options, progress)
	s.outputs[index] = out
	bind := sl.bind
	s.mu.Unlock()

	if bind != nil {
		bind(out)
	}
	return nil
}

func (s *Store[V, O]) cancel(index, generation uint32) error {
	s.mu.Lock()
	sl, err := s.opsSlotLocked(index, generation)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if sl.detached {
		// Nothing ticks a sequence-owned record, so drain it here
		cb := s.releaseLocked(index, true)
		s.mu.Unlock()
		if cb != nil {
			cb()
		}
		return nil
	}
	if sl.state.Status.Active() {
		sl.state.Status = motion.StatusCanceled
	}
	s.mu.Unlock()
	return nil
}

func (s *Store[V, O]) complete(index, generation uint32) error {
	s.mu.Lock()
	sl, err := s.opsSlotLocked(index, generation)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !sl.detached && sl.state.Status.Terminal() {
		s.mu.Unlock()
		return ErrStaleHandle
	}
	progress, ok := motion.Finish(&sl.state)
	if !ok {
		s.mu.Unlock()
		return ErrUnbounded
	}
	out := s.adapter.Evaluate(sl.start, sl.end, sl.options, progress)
	s.outputs[index] = out
	bind := sl.bind
	cb := s.releaseLocked(index, false)
	s.mu.Unlock()

	if bind != nil {
		bind(out)
	}
	if cb != nil {
		cb()
	}
	return nil
}

func (s *Store[V, O]) detach(index, generation uint32) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, err := s.opsSlotLocked(index, generation)
	if err != nil {
		return 0, err
	}
	if sl.detached {
		return 0, ErrDetached
	}
	if sl.state.Status.Terminal() {
		return 0, ErrStaleHandle
	}
	total := motion.TotalDuration(sl.state.Params)
	if math.IsInf(total, 1) {
		return 0, ErrUnbounded
	}
	sl.detached = true
	return total, nil
}

func (s *Store[V, O]) status(index, generation uint32) (motion.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, err := s.opsSlotLocked(index, generation)
	if err != nil {
		return motion.StatusDisposed, err
	}
	return sl.state.Status, nil
}
