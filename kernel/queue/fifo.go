// Package queue implements the intrusive, index-linked FIFO shared by the
// run queue, the per-event wait queues and the fault/dead notification
// queues. None of these hold a separate list node: the "next" link lives in
// the arena slot itself (a thread control block), and FIFO only ever stores
// the front/back indices into that arena. Callers supply the link-field
// accessors so the same type serves every arena in the kernel.
package queue

// NoIndex marks an empty queue or the end of a link chain.
const NoIndex = -1

// FIFO is an intrusive first-in-first-out queue over indices into an
// external arena.
type FIFO struct {
	front, back int
}

// New returns an empty FIFO.
func New() FIFO {
	return FIFO{front: NoIndex, back: NoIndex}
}

// Empty reports whether the queue holds no elements.
func (q *FIFO) Empty() bool {
	return q.front == NoIndex
}

// Front returns the index at the front of the queue, or NoIndex if empty.
func (q *FIFO) Front() int {
	return q.front
}

// Push appends idx to the back of the queue.
func (q *FIFO) Push(idx int, setNext func(int, int)) {
	setNext(idx, NoIndex)
	if q.front == NoIndex {
		q.front = idx
	} else {
		setNext(q.back, idx)
	}
	q.back = idx
}

// Pop removes and returns the element at the front of the queue, or
// NoIndex if the queue is empty.
func (q *FIFO) Pop(getNext func(int) int) int {
	if q.front == NoIndex {
		return NoIndex
	}

	idx := q.front
	q.front = getNext(idx)
	if q.front == NoIndex {
		q.back = NoIndex
	}

	return idx
}

// Remove splices idx out of the queue regardless of its position. It
// reports whether idx was found. PAUSE uses this to pull a specific thread
// out of a wait queue without disturbing the order of the rest.
func (q *FIFO) Remove(idx int, getNext func(int) int, setNext func(int, int)) bool {
	if q.front == NoIndex {
		return false
	}

	if q.front == idx {
		q.front = getNext(idx)
		if q.front == NoIndex {
			q.back = NoIndex
		}
		setNext(idx, NoIndex)
		return true
	}

	for prev, cur := q.front, getNext(q.front); cur != NoIndex; prev, cur = cur, getNext(cur) {
		if cur == idx {
			next := getNext(cur)
			setNext(prev, next)
			if cur == q.back {
				q.back = prev
			}
			setNext(idx, NoIndex)
			return true
		}
	}

	return false
}
