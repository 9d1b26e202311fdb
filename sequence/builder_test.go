package sequence

import (
	"errors"
	"math"
	"testing"

	"github.com/kinetre/motive/engine"
	"github.com/kinetre/motive/motion"
)

type lerp struct{}

func (lerp) Evaluate(start, end float64, _ struct{}, progress float64) float64 {
	return start + (end-start)*progress
}

func newHost() *engine.Store[float64, struct{}] {
	return engine.NewStore[float64, struct{}](lerp{})
}

func unit(duration float64) motion.Params {
	return motion.Params{Duration: duration, Loops: 1}
}

func tick(s *engine.Store[float64, struct{}], dt float64) {
	s.Tick(motion.Deltas{Scaled: dt, Unscaled: dt, Real: dt})
}

// Append(A dur 1), Append(B dur 2) composes a 3 second timeline with A
// active during [0,1) and B during [1,3)
func TestAppendRunRoundTrip(t *testing.T) {
	host := newHost()
	a := host.Create(0, 1, struct{}{}, unit(1))
	b := host.Create(0, 1, struct{}{}, unit(2))

	aVal, bVal := -1.0, -1.0
	host.Bind(a, func(v float64) { aVal = v })
	host.Bind(b, func(v float64) { bVal = v })

	builder := Rent()
	if err := builder.Append(a); err != nil {
		t.Fatalf("Expected append to succeed, got %v", err)
	}
	if err := builder.Append(b); err != nil {
		t.Fatalf("Expected append to succeed, got %v", err)
	}
	if total, _ := builder.Duration(); total != 3 {
		t.Fatalf("Expected total duration 3, got %v", total)
	}

	driver, err := builder.Run(host)
	if err != nil {
		t.Fatalf("Expected run to succeed, got %v", err)
	}

	tick(host, 0.5) // elapsed 0.5: A halfway, B not yet started
	if math.Abs(aVal-0.5) > 1e-9 {
		t.Errorf("Expected A at 0.5, got %v", aVal)
	}
	if bVal != -1 {
		t.Errorf("Expected B untouched before its offset, got %v", bVal)
	}

	tick(host, 0.5) // elapsed 1.0: A done, B starting
	if aVal != 1 {
		t.Errorf("Expected A at 1, got %v", aVal)
	}
	if bVal != 0 {
		t.Errorf("Expected B at 0, got %v", bVal)
	}

	tick(host, 1.0) // elapsed 2.0: B halfway
	if math.Abs(bVal-0.5) > 1e-9 {
		t.Errorf("Expected B at 0.5, got %v", bVal)
	}

	tick(host, 1.0) // elapsed 3.0: driver completes, members drain
	if bVal != 1 {
		t.Errorf("Expected B at 1, got %v", bVal)
	}
	if _, err := engine.StatusOf(driver); !errors.Is(err, engine.ErrStaleHandle) {
		t.Errorf("Expected driver drained, got %v", err)
	}
	if _, err := engine.StatusOf(a); !errors.Is(err, engine.ErrStaleHandle) {
		t.Errorf("Expected member A drained, got %v", err)
	}
	if host.Count() != 0 {
		t.Errorf("Expected empty store after sequence finished, got %d", host.Count())
	}
}

// Insert at 0.5 with duration 1 ends at 1.5, inside the existing 3 second
// span: total duration is unchanged but the member starts at its offset
func TestInsertKeepsTotalAndOffsets(t *testing.T) {
	host := newHost()
	a := host.Create(0, 1, struct{}{}, unit(1))
	b := host.Create(0, 1, struct{}{}, unit(2))
	c := host.Create(0, 1, struct{}{}, unit(1))

	cVal := -1.0
	host.Bind(c, func(v float64) { cVal = v })

	builder := Rent()
	builder.Append(a)
	builder.Append(b)
	if err := builder.Insert(0.5, c); err != nil {
		t.Fatalf("Expected insert to succeed, got %v", err)
	}
	if total, _ := builder.Duration(); total != 3 {
		t.Errorf("Expected total duration still 3, got %v", total)
	}

	if _, err := builder.Run(host); err != nil {
		t.Fatalf("Expected run to succeed, got %v", err)
	}

	tick(host, 0.25) // elapsed 0.25: C not due
	if cVal != -1 {
		t.Errorf("Expected C untouched before 0.5, got %v", cVal)
	}
	tick(host, 0.5) // elapsed 0.75: C at local 0.25
	if math.Abs(cVal-0.25) > 1e-9 {
		t.Errorf("Expected C at 0.25, got %v", cVal)
	}
}

// Insert past the current end extends the total via max(total, offset+len)
func TestInsertExtendsTotal(t *testing.T) {
	host := newHost()
	a := host.Create(0, 1, struct{}{}, unit(1))
	c := host.Create(0, 1, struct{}{}, unit(2))

	builder := Rent()
	builder.Append(a)
	builder.Insert(4, c)
	if total, _ := builder.Duration(); total != 6 {
		t.Errorf("Expected total duration 6, got %v", total)
	}
	builder.Run(host)
}

func TestPostRunUseFails(t *testing.T) {
	host := newHost()
	a := host.Create(0, 1, struct{}{}, unit(1))

	builder := Rent()
	builder.Append(a)
	if _, err := builder.Run(host); err != nil {
		t.Fatalf("Expected run to succeed, got %v", err)
	}

	b := host.Create(0, 1, struct{}{}, unit(1))
	if err := builder.Append(b); !errors.Is(err, ErrStaleBuilder) {
		t.Errorf("Expected ErrStaleBuilder on append after run, got %v", err)
	}
	if _, err := builder.Run(host); !errors.Is(err, ErrStaleBuilder) {
		t.Errorf("Expected ErrStaleBuilder on second run, got %v", err)
	}
	if err := builder.Dispose(); !errors.Is(err, ErrStaleBuilder) {
		t.Errorf("Expected ErrStaleBuilder on dispose after run, got %v", err)
	}
}

func TestDoubleDisposeFails(t *testing.T) {
	builder := Rent()
	if err := builder.Dispose(); err != nil {
		t.Fatalf("Expected first dispose to succeed, got %v", err)
	}
	if err := builder.Dispose(); !errors.Is(err, ErrStaleBuilder) {
		t.Errorf("Expected ErrStaleBuilder on double dispose, got %v", err)
	}
}

// Abandoning a builder cancels its members: they are no longer per-tick
// driven, so nothing else would ever drain them
func TestDisposeCancelsMembers(t *testing.T) {
	host := newHost()
	a := host.Create(0, 1, struct{}{}, unit(1))
	canceled := false
	host.WithOnCancel(a, func() { canceled = true })

	builder := Rent()
	builder.Append(a)
	if err := builder.Dispose(); err != nil {
		t.Fatalf("Expected dispose to succeed, got %v", err)
	}
	if !canceled {
		t.Error("Expected member cancel callback on dispose")
	}
	if _, err := engine.StatusOf(a); !errors.Is(err, engine.ErrStaleHandle) {
		t.Errorf("Expected member drained, got %v", err)
	}
}

// A released token must stay dead even after its buffer is re-rented
func TestStaleTokenAfterPoolReuse(t *testing.T) {
	first := Rent()
	if err := first.Dispose(); err != nil {
		t.Fatalf("Expected dispose to succeed, got %v", err)
	}

	second := Rent()
	defer second.Dispose()

	host := newHost()
	a := host.Create(0, 1, struct{}{}, unit(1))
	if err := first.Append(a); !errors.Is(err, ErrStaleBuilder) {
		t.Errorf("Expected stale first token, got %v", err)
	}
	if err := second.Append(a); err != nil {
		t.Errorf("Expected fresh token to work, got %v", err)
	}
}

// Canceling the driver cancels all members
func TestDriverCancelAbortsMembers(t *testing.T) {
	host := newHost()
	a := host.Create(0, 1, struct{}{}, unit(1))
	canceled := false
	host.WithOnCancel(a, func() { canceled = true })

	builder := Rent()
	builder.Append(a)
	driver, err := builder.Run(host)
	if err != nil {
		t.Fatalf("Expected run to succeed, got %v", err)
	}

	tick(host, 0.25)
	if err := engine.Cancel(driver); err != nil {
		t.Fatalf("Expected driver cancel to succeed, got %v", err)
	}
	tick(host, 0.25) // drain tick

	if !canceled {
		t.Error("Expected member cancel callback after driver cancel")
	}
	if host.Count() != 0 {
		t.Errorf("Expected empty store, got %d live", host.Count())
	}
}

// If the driver drains before the player is wired to it, the members and
// the pooled item array must not leak
func TestAttachFailureAbortsMembers(t *testing.T) {
	host := newHost()
	a := host.Create(0, 1, struct{}{}, unit(1))
	canceled := false
	host.WithOnCancel(a, func() { canceled = true })

	dur, err := engine.AddToSequence(a)
	if err != nil {
		t.Fatalf("Expected sequencing to succeed, got %v", err)
	}
	arr := arrayPool.Get().(*itemArray)
	arr.items = append(arr.items, Item{Offset: 0, Duration: dur, Handle: a})
	p := &Player{items: arr, total: dur}

	// A zero-length driver retired before wiring, as a concurrently
	// ticked host can do
	driver := host.Create(0, 0, struct{}{}, motion.Params{Loops: 1})
	tick(host, 0.1)

	if err := p.attach(host, driver); !errors.Is(err, engine.ErrStaleHandle) {
		t.Fatalf("Expected stale driver on attach, got %v", err)
	}
	p.abort()

	if !canceled {
		t.Error("Expected member cancel callback after failed wiring")
	}
	if _, err := engine.StatusOf(a); !errors.Is(err, engine.ErrStaleHandle) {
		t.Errorf("Expected member drained, got %v", err)
	}
	if p.items != nil {
		t.Error("Expected item array returned to the pool")
	}
}

func TestEmptySequenceCompletesImmediately(t *testing.T) {
	host := newHost()
	builder := Rent()
	driver, err := builder.Run(host)
	if err != nil {
		t.Fatalf("Expected run of empty sequence to succeed, got %v", err)
	}
	tick(host, 0.1)
	if _, err := engine.StatusOf(driver); !errors.Is(err, engine.ErrStaleHandle) {
		t.Errorf("Expected zero-length driver drained on first tick, got %v", err)
	}
}
