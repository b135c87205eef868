package kcall

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
)

// ErrNotPausable mirrors TE_STATE: the target thread isn't in a state the
// call accepts.
var ErrNotPausable = &kernel.Error{Module: "kcall", Message: "thread is not in a pausable state"}

// Spawn allocates a new thread preloaded with initial, leaves it QUEUED,
// and returns its tid. Unlike the historical ABI's raw t_info pointer, the
// caller hands the initial register/paging state directly since there is
// no user address space to read it from.
func (k *Kernel) Spawn(initial abi.ThreadInfo) (int, *kernel.Error) {
	tid, err := k.Threads.Spawn()
	if err != nil {
		return -1, err
	}

	tcb, _ := k.Threads.Get(tid)
	id := tcb.Info.ID
	tcb.Info = initial
	tcb.Info.ID = id
	tcb.Info.State = abi.ThreadQueued

	return tid, nil
}

// GetTID returns the tid of the currently RUNNING thread.
func (k *Kernel) GetTID() int {
	return k.Threads.Active()
}

// Yield requeues the active thread and dispatches the next runnable one,
// returning the new active tid.
func (k *Kernel) Yield() (int, *kernel.Error) {
	if err := k.Threads.Yield(); err != nil {
		return -1, err
	}
	return k.Threads.Dispatch()
}

// Pause suspends tid.
func (k *Kernel) Pause(tid int) *kernel.Error {
	if _, err := k.thread(tid); err != nil {
		return err
	}
	return k.Threads.Pause(tid)
}

// Resume reverses a prior Pause of tid.
func (k *Kernel) Resume(tid int) *kernel.Error {
	if _, err := k.thread(tid); err != nil {
		return err
	}
	return k.Threads.Resume(tid)
}

// GetState returns a copy of tid's info snapshot.
func (k *Kernel) GetState(tid int) (abi.ThreadInfo, *kernel.Error) {
	tcb, err := k.thread(tid)
	if err != nil {
		return abi.ThreadInfo{}, err
	}
	return tcb.Info, nil
}

// SetState overwrites tid's mutable info fields from info. The State field
// of info is never applied directly - the state machine is the only thing
// allowed to move a TCB between states - except that newly setting
// ThreadDead in info.Flags triggers the kill/exit path, publishing tid to
// the dead queue and detaching it from every queue it currently sits in.
func (k *Kernel) SetState(tid int, info abi.ThreadInfo) *kernel.Error {
	tcb, err := k.thread(tid)
	if err != nil {
		return err
	}

	wasDead := tcb.Info.Flags&abi.ThreadDead != 0
	nowDead := info.Flags&abi.ThreadDead != 0

	state := tcb.Info.State
	id := tcb.Info.ID
	tcb.Info = info
	tcb.Info.ID = id
	tcb.Info.State = state

	if nowDead && !wasDead {
		return k.markDead(tid)
	}
	return nil
}

// markDead detaches tid from whatever queue currently holds it and
// publishes it to the dead queue, without freeing its slot - Reap does
// that once the exit status has been collected. A PAUSEDW thread is first
// normalized to WAITING since the state graph has no direct PAUSEDW->dead
// path; its event membership is unaffected by that normalization.
func (k *Kernel) markDead(tid int) *kernel.Error {
	tcb, err := k.thread(tid)
	if err != nil {
		return err
	}

	if tcb.Info.State == abi.ThreadPausedWaiting {
		if err := k.Threads.Resume(tid); err != nil {
			return err
		}
	}

	switch tcb.Info.State {
	case abi.ThreadWaiting:
		k.Events.Remove(tid, int(tcb.Info.Event))
	case abi.ThreadQueued, abi.ThreadRunning, abi.ThreadPaused:
		// Pause leaves the thread off the run queue/active slot without
		// disturbing anything markDead still needs.
		if tcb.Info.State != abi.ThreadPaused {
			k.Threads.Pause(tid)
		}
	}

	return k.dead.Publish(tid)
}

// GetDead blocks the calling reaper tid until a thread is available to
// reap, or returns immediately with one already queued.
func (k *Kernel) GetDead(tid int) *kernel.Error {
	return k.dead.Wait(tid)
}

// GetFault blocks the calling debugger tid until a faulted thread is
// available, or returns immediately with one already queued.
func (k *Kernel) GetFault(tid int) *kernel.Error {
	return k.fault.Wait(tid)
}

// Reap returns the final info snapshot (including the exit status left in
// Regs.EAX by SetState's dead path) for a thread previously surfaced by
// GetDead, and frees its slot.
func (k *Kernel) Reap(tid int) (abi.ThreadInfo, *kernel.Error) {
	tcb, err := k.thread(tid)
	if err != nil {
		return abi.ThreadInfo{}, err
	}
	if tcb.Info.Flags&abi.ThreadDead == 0 {
		return abi.ThreadInfo{}, ErrNotPausable
	}

	info := tcb.Info
	if err := k.Threads.Exit(tid); err != nil {
		return abi.ThreadInfo{}, err
	}

	return info, nil
}

// Wait blocks tid on event, per the WAIT kcall.
func (k *Kernel) Wait(tid, evt int) *kernel.Error {
	return k.Events.Wait(tid, evt)
}

// Reset clears event's latch and unmasks its PIC line if it is a hardware
// IRQ, making it deliverable again.
func (k *Kernel) Reset(evt int) *kernel.Error {
	return k.Events.ClearLatch(evt)
}
