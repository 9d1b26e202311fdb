package parameter

import "time"

// Engine Timing
const (
	// TickInterval is the default fixed tick rate of the runner (~60 Hz)
	TickInterval = 16 * time.Millisecond

	// MaxDeltaTime clamps the unscaled per-tick delta so a stalled frame
	// (debugger, window drag) does not teleport every motion forward
	MaxDeltaTime = 250 * time.Millisecond
)

// Store & Evaluation
const (
	// StoreInitialCapacity is the starting slot count of a motion store
	StoreInitialCapacity = 64

	// ParallelThreshold is the live-record count below which a tick runs
	// serially; worker fan-out costs more than it saves on small batches
	ParallelThreshold = 256

	// EvalChunkSize is the number of consecutive slots handed to one
	// worker task during a parallel tick
	EvalChunkSize = 128

	// WorkerQueueLen is the task queue depth of the evaluation pool
	WorkerQueueLen = 256

	// WorkerIdleTimeout is how long pool workers linger before exiting
	WorkerIdleTimeout = 1 * time.Second
)

// Sequences
const (
	// SequenceInitialCapacity is the starting item capacity of a pooled
	// sequence buffer; the backing array doubles when exhausted
	SequenceInitialCapacity = 8
)
