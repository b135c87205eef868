// Package kcall implements the kernel-call dispatcher: the single surface
// user mode traps into to spawn and control threads, wait on events, reap
// exited threads, collect faults, and manage paging contexts and frames.
// Each exported method corresponds to one KCALL_* id from abi and is the
// Go-typed equivalent of decoding that call's arguments out of a trapped
// thread's register file and encoding its result back into eax.
package kcall

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
	"nanokernel/kernel/event"
	"nanokernel/kernel/mm/vmm"
	"nanokernel/kernel/notify"
	"nanokernel/kernel/sched"
	"nanokernel/kernel/vtimer"
)

// DefaultPITFrequency is the PIT tick rate (in Hz) the virtual timer clock
// assumes absent a board-specific calibration; the router scales all
// sixteen virtual timer periods against it.
const DefaultPITFrequency = 100

// Kernel ties together every subsystem the dispatcher coordinates. One
// instance exists per running kernel; kmain.Kmain builds it at boot.
type Kernel struct {
	Threads sched.Table
	Events  *event.Table
	PCtxs   vmm.Table
	Clock   *vtimer.Clock

	dead  *notify.Queue
	fault *notify.Queue
}

// New builds an uninitialized Kernel; call Init before using it.
func New() *Kernel {
	return &Kernel{}
}

// Init brings up the thread table, the boot paging context, the virtual
// timer clock, and the dead and fault notification queues. It must run
// before any kcall is served.
func (k *Kernel) Init() *kernel.Error {
	k.Threads.Init()
	k.Events = event.NewTable(&k.Threads)
	k.Clock = vtimer.NewClock(DefaultPITFrequency)
	k.dead = notify.NewQueue(&k.Threads)
	k.fault = notify.NewQueue(&k.Threads)

	return k.PCtxs.Init()
}

// Tick advances the virtual timer clock by one PIT interrupt, sends an
// event for every virtual timer slot that fires this tick, bumps the
// currently RUNNING thread's tick counter, and ends its time slice by
// demoting it back to QUEUED, mirroring timer_handler's image->tick++
// followed by its TS_RUNNING -> TS_QUEUED preemption.
func (k *Kernel) Tick() *kernel.Error {
	mask := k.Clock.Tick()
	for i := 0; i < vtimer.Count; i++ {
		if vtimer.Fired(mask, i) {
			if err := k.Events.Send(abi.VTimerEvent(i)); err != nil {
				return err
			}
		}
	}

	if active := k.Threads.Active(); active >= 0 {
		tcb, err := k.thread(active)
		if err != nil {
			return err
		}
		tcb.Info.SchedTicks++
		if err := k.Threads.Yield(); err != nil {
			return err
		}
	}

	return nil
}

// thread is a convenience wrapper returning ErrExist-shaped errors for
// dispatcher handlers that all need "does this tid exist" as their first
// check.
func (k *Kernel) thread(tid int) (*sched.TCB, *kernel.Error) {
	tcb, err := k.Threads.Get(tid)
	if err != nil {
		return nil, ErrNoSuchThread
	}
	return tcb, nil
}

// ErrNoSuchThread is returned by any handler given a tid with no live
// thread, mirroring TE_EXIST.
var ErrNoSuchThread = &kernel.Error{Module: "kcall", Message: "no such thread"}
