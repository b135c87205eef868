package queue

// NotifyQueue models a producer/consumer rendezvous over a shared arena: a
// producer pushes completed work (a dead thread, a faulted thread) onto
// ready, while waiting consumers queue up on waiting until something is
// ready for them. It backs both the dead queue (REAP waits for exited
// threads) and the fault queue (a debugger waits for faulted threads).
type NotifyQueue struct {
	ready   FIFO
	waiting FIFO
}

// NewNotifyQueue returns an empty NotifyQueue.
func NewNotifyQueue() NotifyQueue {
	return NotifyQueue{ready: New(), waiting: New()}
}

// Publish records idx as ready for consumption. If a consumer is already
// waiting, it is woken (removed from waiting and returned) so the caller
// can requeue it onto the run queue; otherwise idx is queued on ready and
// the caller gets back NoIndex, meaning nobody to wake.
func (q *NotifyQueue) Publish(idx int, getNext func(int) int, setNext func(int, int)) int {
	if !q.waiting.Empty() {
		return q.waiting.Pop(getNext)
	}

	q.ready.Push(idx, setNext)
	return NoIndex
}

// Take returns the next ready item without blocking, or NoIndex if nothing
// is ready yet.
func (q *NotifyQueue) Take(getNext func(int) int) int {
	return q.ready.Pop(getNext)
}

// Park queues tid as a waiting consumer. Callers use this after Take
// returns NoIndex to register the calling thread for a wakeup.
func (q *NotifyQueue) Park(tid int, setNext func(int, int)) {
	q.waiting.Push(tid, setNext)
}

// CancelWait removes tid from the waiting list, used when a paused waiter
// must be pulled out before it is ever woken.
func (q *NotifyQueue) CancelWait(tid int, getNext func(int) int, setNext func(int, int)) bool {
	return q.waiting.Remove(tid, getNext, setNext)
}
