package engine

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/kinetre/motive/motion"
	"github.com/kinetre/motive/parameter"
)

// Tick advances every per-tick-driven record by the tick's deltas in four
// phases:
//
//  1. evaluation: the pure step runs per record; disjoint index chunks fan
//     out over the worker pool when the batch is large enough
//  2. sweep: just-terminal records are routed to the completion list and
//     bind callbacks are staged with their evaluated outputs
//  3. apply: staged binds run outside the lock; sequence drivers re-drive
//     their members here, strictly after their own evaluation
//  4. drain: completion/cancel callbacks run, then slots recycle with a
//     generation bump
//
// Records already in a terminal status are never handed to the evaluation
// step; Completed and Canceled drain, Disposed slots are skipped entirely.
func (s *Store[V, O]) Tick(d motion.Deltas) {
	s.mu.Lock()
	n := len(s.slots)
	s.terminals = s.terminals[:0]
	s.applyFns = s.applyFns[:0]
	s.applyVals = s.applyVals[:0]
	s.drainCbs = s.drainCbs[:0]

	if s.pool == nil || s.live < parameter.ParallelThreshold {
		s.evalRange(0, n, d)
	} else {
		var wg sync.WaitGroup
		id := 0
		for lo := 0; lo < n; lo += parameter.EvalChunkSize {
			hi := min(lo+parameter.EvalChunkSize, n)
			wg.Add(1)
			lo, hi := lo, hi
			s.pool.SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					s.evalRange(lo, hi, d)
					return nil, nil
				},
			})
			id++
		}
		wg.Wait()
	}

	for i := 0; i < n; i++ {
		sl := &s.slots[i]
		if !sl.occupied {
			continue
		}
		if sl.ticked {
			sl.ticked = false
			if sl.bind != nil {
				s.applyFns = append(s.applyFns, sl.bind)
				s.applyVals = append(s.applyVals, s.outputs[i])
			}
		}
		if sl.detached {
			continue
		}
		if st := sl.state.Status; st == motion.StatusCompleted || st == motion.StatusCanceled {
			s.terminals = append(s.terminals, uint32(i))
		}
	}
	s.mu.Unlock()

	for i, fn := range s.applyFns {
		fn(s.applyVals[i])
	}

	s.mu.Lock()
	for _, idx := range s.terminals {
		sl := &s.slots[idx]
		if !sl.occupied {
			// already released by an apply callback
			continue
		}
		st := sl.state.Status
		if st != motion.StatusCompleted && st != motion.StatusCanceled {
			// slot was recycled and re-issued during the apply phase
			continue
		}
		if cb := s.releaseLocked(idx, st == motion.StatusCanceled); cb != nil {
			s.drainCbs = append(s.drainCbs, cb)
		}
	}
	s.mu.Unlock()

	for _, cb := range s.drainCbs {
		cb()
	}
}

// evalRange runs the evaluation step over [lo, hi). Workers receive
// disjoint ranges, so slot and output writes never alias.
func (s *Store[V, O]) evalRange(lo, hi int, d motion.Deltas) {
	for i := lo; i < hi; i++ {
		sl := &s.slots[i]
		if !sl.occupied || sl.detached || !sl.state.Status.Active() {
			continue
		}
		progress, _ := motion.Advance(&sl.state, d)
		s.outputs[i] = s.adapter.Evaluate(sl.start, sl.end, sl.options, progress)
		sl.ticked = true
	}
}
