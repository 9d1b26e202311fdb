package sequence

import (
	"errors"
	"sort"
	"sync"

	"github.com/kinetre/motive/engine"
	"github.com/kinetre/motive/motion"
	"github.com/kinetre/motive/parameter"
)

// ErrStaleBuilder is returned when a builder token is used after Run or
// Dispose. The backing storage has been released; the caller must Rent a
// fresh builder instead of retrying.
var ErrStaleBuilder = errors.New("sequence builder already consumed or disposed")

// Item places an already-created motion at an offset on the sequence
// timeline. Duration is queried once at registration and treated as
// immutable for sequencing purposes.
type Item struct {
	Offset   float64
	Duration float64
	Handle   engine.Handle
}

// itemArray is the growable item storage shared between builders and the
// players they produce; pooled separately from buffers because Run
// transfers ownership of the array to the player.
type itemArray struct {
	items []Item
}

var arrayPool = sync.Pool{
	New: func() any {
		return &itemArray{items: make([]Item, 0, parameter.SequenceInitialCapacity)}
	},
}

// buffer is the pooled builder backing store. version increments on every
// release so stale Builder tokens are detected by compare.
type buffer struct {
	arr     *itemArray
	tail    float64
	total   float64
	version uint32
}

var builderPool = sync.Pool{
	New: func() any { return &buffer{} },
}

// Builder is a transient, single-use token for composing a sequence.
// Rent one, Append/Insert already-created motions, then consume it exactly
// once with Run (or abandon it with Dispose). Builders are not safe for
// concurrent use; pool exclusion covers only Rent and release.
type Builder struct {
	buf     *buffer
	version uint32
}

// Rent acquires a builder from the shared pool
func Rent() Builder {
	buf := builderPool.Get().(*buffer)
	if buf.arr == nil {
		buf.arr = arrayPool.Get().(*itemArray)
		buf.arr.items = buf.arr.items[:0]
	}
	buf.tail = 0
	buf.total = 0
	return Builder{buf: buf, version: buf.version}
}

func (b Builder) valid() bool {
	return b.buf != nil && b.version == b.buf.version
}

// Append registers h at the running tail offset and advances the tail (and
// the total duration) by the motion's own total length. The motion is
// removed from independent per-tick driving.
func (b Builder) Append(h engine.Handle) error {
	if !b.valid() {
		return ErrStaleBuilder
	}
	dur, err := engine.AddToSequence(h)
	if err != nil {
		return err
	}
	b.buf.arr.items = append(b.buf.arr.items, Item{Offset: b.buf.tail, Duration: dur, Handle: h})
	b.buf.tail += dur
	if b.buf.tail > b.buf.total {
		b.buf.total = b.buf.tail
	}
	return nil
}

// Insert registers h at an explicit offset. Offsets need not be monotonic;
// the total duration becomes max(total, offset + motion length).
func (b Builder) Insert(offset float64, h engine.Handle) error {
	if !b.valid() {
		return ErrStaleBuilder
	}
	if offset < 0 {
		offset = 0
	}
	dur, err := engine.AddToSequence(h)
	if err != nil {
		return err
	}
	b.buf.arr.items = append(b.buf.arr.items, Item{Offset: offset, Duration: dur, Handle: h})
	if end := offset + dur; end > b.buf.total {
		b.buf.total = end
	}
	return nil
}

// Duration returns the aggregate timeline length accumulated so far
func (b Builder) Duration() (float64, error) {
	if !b.valid() {
		return 0, ErrStaleBuilder
	}
	return b.buf.total, nil
}

// Run consumes the builder: items are stably sorted by offset, a driver
// record spanning [0, total] is scheduled on host, and a player bound to
// the driver re-drives the members each tick. The builder token is
// invalidated and its storage returns to the pool; the sorted item array
// now belongs to the player.
func (b Builder) Run(host *engine.Store[float64, struct{}]) (engine.Handle, error) {
	if !b.valid() {
		return engine.Handle{}, ErrStaleBuilder
	}
	buf := b.buf
	arr := buf.arr
	total := buf.total

	sort.SliceStable(arr.items, func(i, j int) bool {
		return arr.items[i].Offset < arr.items[j].Offset
	})

	buf.arr = nil
	buf.version++
	builderPool.Put(buf)

	p := &Player{items: arr, total: total}
	driver := host.Create(0, total, struct{}{}, motion.Params{
		Duration: total,
		Loops:    1,
	})
	p.driver = driver
	if err := p.attach(host, driver); err != nil {
		// The driver drained before the player was wired up (a concurrently
		// ticked host can retire a zero-length driver immediately). Nothing
		// owns the members now, so abort drains them and frees the array.
		p.abort()
		return engine.Handle{}, err
	}
	return driver, nil
}

// Dispose abandons the builder: registered motions are canceled (they are
// no longer per-tick driven, so nothing else would ever drain them) and the
// storage returns to the pool. A builder must be disposed exactly once;
// disposing a consumed or already-disposed token fails.
func (b Builder) Dispose() error {
	if !b.valid() {
		return ErrStaleBuilder
	}
	buf := b.buf
	buf.version++
	for i := range buf.arr.items {
		_ = engine.Cancel(buf.arr.items[i].Handle)
	}
	buf.arr.items = buf.arr.items[:0]
	builderPool.Put(buf)
	return nil
}
