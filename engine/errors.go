package engine

import "errors"

var (
	// ErrStaleHandle is returned when operating on a handle whose slot was
	// recycled or never issued. It indicates a use-after-dispose logic bug
	// in the caller; the handle must not be retried.
	ErrStaleHandle = errors.New("motion handle is stale or disposed")

	// ErrUnbounded is returned when an infinite-loop motion is forced to a
	// final state or measured for sequencing.
	ErrUnbounded = errors.New("motion has unbounded total duration")

	// ErrDetached is returned when a motion already owned by a sequence is
	// added to another one.
	ErrDetached = errors.New("motion is already owned by a sequence")
)
