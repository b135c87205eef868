// Package sched owns the thread table: the fixed array of thread control
// blocks, the legal state-transition graph between them, and the FIFO run
// queue that feeds the dispatcher. It has no notion of events or faults;
// those live in the event and kcall packages and reach into the table only
// through the link-field accessors it exposes for queue.FIFO.
package sched

import "nanokernel/kernel/abi"

// TCB is a single thread control block: the scheduling metadata plus the
// exchange format (abi.ThreadInfo) that SETSTATE/GETSTATE/SPAWN hand to user
// mode. next is the intrusive link used by the run queue and, while a
// thread is WAITING, by whichever event queue currently holds it.
type TCB struct {
	Info abi.ThreadInfo
	next int
}

// InUse reports whether this slot holds a live thread.
func (t *TCB) InUse() bool {
	return t.Info.State != abi.ThreadFree
}
