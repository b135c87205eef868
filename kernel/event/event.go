// Package event implements the kernel's wait/notify primitive: EventCount
// fixed wait queues a thread can block on, plus a latch for each hardware
// IRQ event so that an IRQ firing before anyone waits on it is not lost.
// Software events, including the virtual timer slots, have no latch and no
// pending queue: a Send on one with no waiter is dropped.
// Events in the hardware IRQ range additionally mask their PIC line when
// they fire and stay masked until the RESET kcall clears the latch,
// mirroring how a real interrupt stays disabled until acknowledged.
package event

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
	"nanokernel/kernel/cpu"
	"nanokernel/kernel/queue"
	"nanokernel/kernel/sched"
)

// irqEventLimit is the boundary below which an event id corresponds to a
// hardware IRQ line rather than a software-only event (e.g. a virtual
// timer slot from abi.VTimerEvent). Only events below this line drive the
// PIC; it matches cpu.IRQCount, the number of lines the simulated 8259
// pair actually has.
const irqEventLimit = cpu.IRQCount

var (
	// ErrBadEvent is returned for an event id outside [0, abi.EventCount).
	ErrBadEvent = &kernel.Error{Module: "event", Message: "event id out of range"}
)

// Table owns the per-event wait queues and IRQ latches for one thread
// table. It never transitions a TCB itself beyond what sched.Table exposes;
// all state-machine legality is enforced there.
type Table struct {
	waitQueues [abi.EventCount]queue.FIFO
	latched    [abi.EventCount]bool
	sched      *sched.Table
}

// NewTable returns an event table bound to the given thread table.
func NewTable(s *sched.Table) *Table {
	t := &Table{sched: s}
	for i := range t.waitQueues {
		t.waitQueues[i] = queue.New()
	}
	return t
}

func (t *Table) valid(event int) bool {
	return event >= 0 && event < abi.EventCount
}

// Wait blocks tid (which must be the currently RUNNING thread) on event. If
// the event is already latched - it fired before anything waited on it -
// tid is returned straight to QUEUED without ever going WAITING, mirroring
// a non-blocking poll that found work already done.
func (t *Table) Wait(tid, event int) *kernel.Error {
	if !t.valid(event) {
		return ErrBadEvent
	}

	if t.latched[event] {
		return t.sched.Yield()
	}

	t.waitQueues[event].Push(tid, t.sched.SetNext())

	blocked, err := t.sched.Block()
	if err != nil {
		return err
	}
	kcb, _ := t.sched.Get(blocked)
	kcb.Info.Event = uint8(event)
	return nil
}

// Remove splices tid out of event's wait queue without waking it, used
// before forcibly terminating a thread that is WAITING or PAUSEDW on that
// event.
func (t *Table) Remove(tid, event int) (bool, *kernel.Error) {
	if !t.valid(event) {
		return false, ErrBadEvent
	}

	return t.waitQueues[event].Remove(tid, t.sched.GetNext(), t.sched.SetNext()), nil
}

// Send fires event: the longest-waiting thread blocked on it (if any) is
// woken and requeued as QUEUED, with its fault/result register loaded with
// the event id exactly as event_send's eax assignment did. If event
// belongs to the hardware IRQ range, its PIC line is masked and the event
// is latched so a future Wait returns immediately, until RESET unmasks the
// line and clears the latch again.
func (t *Table) Send(event int) *kernel.Error {
	if !t.valid(event) {
		return ErrBadEvent
	}

	if woken := t.waitQueues[event].Pop(t.sched.GetNext()); woken != queue.NoIndex {
		tcb, err := t.sched.Get(woken)
		if err == nil {
			tcb.Info.Event = 0
			tcb.Info.Regs.EAX = uint32(event)
		}
		if werr := t.sched.Wake(woken); werr != nil {
			return werr
		}
	}

	if event < irqEventLimit {
		cpu.PIC.Mask(event)
		t.latched[event] = true
	}

	return nil
}

// ClearLatch drops event's latch, used once a thread has consumed the
// latched condition via the RESET kcall. For a hardware IRQ event this
// also unmasks its PIC line, since Send masked it on delivery and nothing
// else in this kernel is responsible for turning the line back on.
func (t *Table) ClearLatch(event int) *kernel.Error {
	if !t.valid(event) {
		return ErrBadEvent
	}
	t.latched[event] = false
	if event < irqEventLimit {
		cpu.PIC.Reset(event)
	}
	return nil
}

// Latched reports whether event is currently latched.
func (t *Table) Latched(event int) bool {
	if !t.valid(event) {
		return false
	}
	return t.latched[event]
}
