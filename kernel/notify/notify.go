// Package notify implements the producer/consumer rendezvous shared by the
// dead queue (a reaper waits for REAP-able exited threads) and the fault
// queue (a debugger waits for faulted threads). Both are the same shape:
// one side publishes a payload thread id, the other waits for one to show
// up, and whichever side arrives second never blocks.
package notify

import (
	"nanokernel/kernel"
	"nanokernel/kernel/queue"
	"nanokernel/kernel/sched"
)

// Queue pairs a queue.NotifyQueue with the thread table whose TCBs it
// parks consumers on.
type Queue struct {
	nq    queue.NotifyQueue
	sched *sched.Table
}

// NewQueue returns an empty notify queue bound to sched.
func NewQueue(s *sched.Table) *Queue {
	return &Queue{nq: queue.NewNotifyQueue(), sched: s}
}

// Publish announces payload (a thread id - the one that just died or
// faulted) to the queue. If a consumer is already parked waiting, it is
// woken immediately with payload loaded into its result register and
// requeued as QUEUED; otherwise payload sits on the ready list until
// somebody calls Wait.
func (q *Queue) Publish(payload int) *kernel.Error {
	woken := q.nq.Publish(payload, q.sched.GetNext(), q.sched.SetNext())
	if woken == queue.NoIndex {
		return nil
	}

	tcb, err := q.sched.Get(woken)
	if err != nil {
		return err
	}
	tcb.Info.Regs.EAX = uint32(payload)
	return q.sched.Wake(woken)
}

// Wait is called by the currently RUNNING consumer thread tid. If a
// payload is already ready it is consumed immediately and tid is requeued
// without ever blocking; otherwise tid is parked and transitions to
// WAITING until a matching Publish wakes it.
func (q *Queue) Wait(tid int) *kernel.Error {
	if payload := q.nq.Take(q.sched.GetNext()); payload != queue.NoIndex {
		tcb, err := q.sched.Get(tid)
		if err != nil {
			return err
		}
		tcb.Info.Regs.EAX = uint32(payload)
		return q.sched.Yield()
	}

	q.nq.Park(tid, q.sched.SetNext())
	_, err := q.sched.Block()
	return err
}

// CancelWait pulls tid out of the parked-consumer list, used when a parked
// reaper or debugger is forcibly terminated before anything was ever
// published to it.
func (q *Queue) CancelWait(tid int) bool {
	return q.nq.CancelWait(tid, q.sched.GetNext(), q.sched.SetNext())
}
