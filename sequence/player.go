package sequence

import (
	"github.com/kinetre/motive/engine"
)

// Player owns a compiled sequence: the sorted item array, the total
// duration and the driver handle. It is mutated only by the driver's
// per-tick callbacks and is destroyed when the driver reaches a terminal
// status.
type Player struct {
	items  *itemArray
	total  float64
	driver engine.Handle
	done   bool
}

// attach wires the player to its driver record. Any failure means the
// driver already drained out from under us.
func (p *Player) attach(host *engine.Store[float64, struct{}], driver engine.Handle) error {
	if err := host.Bind(driver, p.drive); err != nil {
		return err
	}
	if err := host.WithOnComplete(driver, p.finish); err != nil {
		return err
	}
	return host.WithOnCancel(driver, p.abort)
}

// drive receives the driver's elapsed time each tick and forwards it to
// every member that is due, in time order. It runs in the host store's
// apply phase, strictly after the driver's own evaluation.
func (p *Player) drive(elapsed float64) {
	if p.done {
		return
	}
	for i := range p.items.items {
		it := &p.items.items[i]
		if elapsed < it.Offset {
			// items are sorted by offset; nothing later is due yet
			break
		}
		local := elapsed - it.Offset
		if local > it.Duration {
			local = it.Duration
		}
		_ = engine.Seek(it.Handle, local)
	}
}

// finish runs when the driver completes: every member is forced to its
// final value and drained, then the item storage returns to the pool
func (p *Player) finish() {
	if p.done {
		return
	}
	p.done = true
	for i := range p.items.items {
		_ = engine.Complete(p.items.items[i].Handle)
	}
	p.release()
}

// abort runs when the driver is canceled: members are canceled in place
func (p *Player) abort() {
	if p.done {
		return
	}
	p.done = true
	for i := range p.items.items {
		_ = engine.Cancel(p.items.items[i].Handle)
	}
	p.release()
}

func (p *Player) release() {
	arr := p.items
	p.items = nil
	arr.items = arr.items[:0]
	arrayPool.Put(arr)
}
