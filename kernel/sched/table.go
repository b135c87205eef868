package sched

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
	"nanokernel/kernel/cpu"
	"nanokernel/kernel/queue"
)

var (
	// ErrTableFull is returned by Table.Spawn when every thread slot is
	// occupied.
	ErrTableFull = &kernel.Error{Module: "sched", Message: "thread table is full"}

	// ErrNoThread is returned by Table.Get for a tid with no live thread.
	ErrNoThread = &kernel.Error{Module: "sched", Message: "no such thread"}

	// ErrEmptyRunQueue is returned by Dispatch when no thread is runnable.
	ErrEmptyRunQueue = &kernel.Error{Module: "sched", Message: "run queue is empty"}
)

// Table is the kernel's fixed-size thread table plus the FIFO run queue
// that orders its QUEUED members. active holds the tid currently RUNNING,
// or NoIndex if nothing is.
type Table struct {
	threads  [abi.ThreadTableSize]TCB
	runQueue queue.FIFO
	active   int

	// fpu is the single simulated hardware FPU/SSE register file, shared
	// by whichever thread is RUNNING. Dispatch saves it out to the
	// outgoing thread and loads it in from the incoming one, same as a
	// real FXSAVE/FXRSTOR context switch, gated on FPUUsed so a thread
	// that never touches the FPU costs nothing extra to switch.
	fpu [128]byte
}

// Init prepares an empty table with nothing runnable.
func (t *Table) Init() {
	t.runQueue = queue.New()
	t.active = queue.NoIndex
	for i := range t.threads {
		t.threads[i].Info.State = abi.ThreadFree
		t.threads[i].next = queue.NoIndex
	}
}

// getNext and setNext expose the TCB link field so packages outside sched
// (the event wait queues, the dead/fault notify queues) can build their own
// queue.FIFO over the same arena without sched knowing anything about
// events or faults.
func (t *Table) getNext(tid int) int   { return t.threads[tid].next }
func (t *Table) setNext(tid, next int) { t.threads[tid].next = next }

// GetNext returns the accessor pair bound to this table, for handing to an
// event.Table or other consumer that needs to link the same TCB arena into
// its own queues.
func (t *Table) GetNext() func(int) int  { return t.getNext }
func (t *Table) SetNext() func(int, int) { return t.setNext }

// Spawn allocates a fresh thread, leaves it QUEUED and ready to run, and
// returns its tid.
func (t *Table) Spawn() (int, *kernel.Error) {
	for tid := range t.threads {
		if t.threads[tid].Info.State == abi.ThreadFree {
			tcb := &t.threads[tid]
			tcb.Info = abi.ThreadInfo{ID: int32(tid)}
			tcb.next = queue.NoIndex
			tcb.transition(abi.ThreadQueued)
			t.runQueue.Push(tid, t.setNext)
			return tid, nil
		}
	}

	return -1, ErrTableFull
}

// Get returns the TCB for tid.
func (t *Table) Get(tid int) (*TCB, *kernel.Error) {
	if tid < 0 || tid >= len(t.threads) || t.threads[tid].Info.State == abi.ThreadFree {
		return nil, ErrNoThread
	}
	return &t.threads[tid], nil
}

// Active returns the tid of the RUNNING thread, or queue.NoIndex if none.
func (t *Table) Active() int {
	return t.active
}

// Dispatch pops the next QUEUED thread and makes it RUNNING, demoting the
// previously active thread back to QUEUED first if one was running.
func (t *Table) Dispatch() (int, *kernel.Error) {
	if t.runQueue.Empty() {
		return -1, ErrEmptyRunQueue
	}

	if t.active != queue.NoIndex {
		prev := &t.threads[t.active]
		if prev.Info.FPUUsed {
			cpu.FPUSave(&prev.Info.FPUArea, &t.fpu)
		}
		prev.transition(abi.ThreadQueued)
		t.runQueue.Push(t.active, t.setNext)
	}

	next := t.runQueue.Pop(t.getNext)
	nextTCB := &t.threads[next]
	if nextTCB.Info.FPUUsed {
		cpu.FPULoad(&t.fpu, &nextTCB.Info.FPUArea)
	}
	nextTCB.transition(abi.ThreadRunning)
	t.active = next
	return next, nil
}

// Yield moves the active thread back onto the run queue without picking a
// replacement; the caller (the kcall dispatcher) follows up with Dispatch.
func (t *Table) Yield() *kernel.Error {
	if t.active == queue.NoIndex {
		return ErrNoThread
	}

	tcb := &t.threads[t.active]
	tcb.transition(abi.ThreadQueued)
	t.runQueue.Push(t.active, t.setNext)
	t.active = queue.NoIndex
	return nil
}

// Wake moves tid from WAITING to QUEUED and enqueues it, used by the event
// package once it has removed tid from an event's wait queue.
func (t *Table) Wake(tid int) *kernel.Error {
	tcb, err := t.Get(tid)
	if err != nil {
		return err
	}

	tcb.transition(abi.ThreadQueued)
	t.runQueue.Push(tid, t.setNext)
	return nil
}

// Block moves the active thread to WAITING and clears active, used by the
// event package once it has queued the thread onto an event's wait list.
// It returns the tid that was blocked.
func (t *Table) Block() (int, *kernel.Error) {
	if t.active == queue.NoIndex {
		return -1, ErrNoThread
	}

	tid := t.active
	t.threads[tid].transition(abi.ThreadWaiting)
	t.active = queue.NoIndex
	return tid, nil
}

// Pause suspends tid, pulling it out of the run queue if it was QUEUED.
// A WAITING thread becomes PAUSEDW; the caller is responsible for leaving
// it linked into its event's wait queue, since PAUSEDW threads still need
// to be found and woken by that queue. A RUNNING thread becomes PAUSED and
// active is cleared.
func (t *Table) Pause(tid int) *kernel.Error {
	tcb, err := t.Get(tid)
	if err != nil {
		return err
	}

	switch tcb.Info.State {
	case abi.ThreadQueued:
		t.runQueue.Remove(tid, t.getNext, t.setNext)
		tcb.transition(abi.ThreadPaused)
	case abi.ThreadRunning:
		tcb.transition(abi.ThreadPaused)
		t.active = queue.NoIndex
	case abi.ThreadWaiting:
		tcb.transition(abi.ThreadPausedWaiting)
	default:
		return &kernel.Error{Module: "sched", Message: "thread not in a pausable state"}
	}

	return nil
}

// Resume reverses Pause: PAUSED becomes QUEUED and rejoins the run queue,
// PAUSEDW becomes WAITING and is left for its event's wait queue to manage.
func (t *Table) Resume(tid int) *kernel.Error {
	tcb, err := t.Get(tid)
	if err != nil {
		return err
	}

	switch tcb.Info.State {
	case abi.ThreadPaused:
		tcb.transition(abi.ThreadQueued)
		t.runQueue.Push(tid, t.setNext)
	case abi.ThreadPausedWaiting:
		tcb.transition(abi.ThreadWaiting)
	default:
		return &kernel.Error{Module: "sched", Message: "thread not in a paused state"}
	}

	return nil
}

// Exit terminates tid immediately, freeing its slot. Valid from RUNNING,
// QUEUED, WAITING or PAUSED; a PAUSEDW thread must be Resumed back to
// WAITING first. The exit status is the caller's to publish onto the dead
// queue before calling Exit, since the slot is unusable the instant this
// returns.
func (t *Table) Exit(tid int) *kernel.Error {
	tcb, err := t.Get(tid)
	if err != nil {
		return err
	}

	switch tcb.Info.State {
	case abi.ThreadQueued:
		t.runQueue.Remove(tid, t.getNext, t.setNext)
	case abi.ThreadRunning:
		t.active = queue.NoIndex
	case abi.ThreadWaiting:
		// caller has already removed tid from its event's wait queue
	case abi.ThreadPaused:
		// already off the run queue
	default:
		return &kernel.Error{Module: "sched", Message: "thread not in an exitable state"}
	}

	tcb.transition(abi.ThreadFree)
	return nil
}
