package queue

import "testing"

// linkArena gives the tests a tiny arena with a next field, mimicking how
// the scheduler's thread table supplies getNext/setNext closures over TCBs.
type linkArena struct {
	next [8]int
}

func newLinkArena() *linkArena {
	a := &linkArena{}
	for i := range a.next {
		a.next[i] = NoIndex
	}
	return a
}

func (a *linkArena) getNext(i int) int   { return a.next[i] }
func (a *linkArena) setNext(i, next int) { a.next[i] = next }

func TestFIFOPushPopOrder(t *testing.T) {
	a := newLinkArena()
	q := New()

	if !q.Empty() {
		t.Fatal("expected new FIFO to be empty")
	}

	q.Push(3, a.setNext)
	q.Push(1, a.setNext)
	q.Push(4, a.setNext)

	if q.Empty() {
		t.Fatal("expected FIFO to be non-empty after pushes")
	}
	if got := q.Front(); got != 3 {
		t.Fatalf("expected front to be 3; got %d", got)
	}

	for _, want := range []int{3, 1, 4} {
		if got := q.Pop(a.getNext); got != want {
			t.Fatalf("expected pop %d; got %d", want, got)
		}
	}

	if !q.Empty() {
		t.Fatal("expected FIFO to be empty after draining")
	}
	if got := q.Pop(a.getNext); got != NoIndex {
		t.Fatalf("expected Pop on empty queue to return NoIndex; got %d", got)
	}
}

func TestFIFORemoveFront(t *testing.T) {
	a := newLinkArena()
	q := New()
	q.Push(1, a.setNext)
	q.Push(2, a.setNext)
	q.Push(3, a.setNext)

	if !q.Remove(1, a.getNext, a.setNext) {
		t.Fatal("expected Remove to find element 1")
	}
	if got := q.Front(); got != 2 {
		t.Fatalf("expected front 2 after removing head; got %d", got)
	}

	var drained []int
	for !q.Empty() {
		drained = append(drained, q.Pop(a.getNext))
	}
	if len(drained) != 2 || drained[0] != 2 || drained[1] != 3 {
		t.Fatalf("unexpected drain order: %v", drained)
	}
}

func TestFIFORemoveMiddleAndBack(t *testing.T) {
	a := newLinkArena()
	q := New()
	q.Push(1, a.setNext)
	q.Push(2, a.setNext)
	q.Push(3, a.setNext)

	if !q.Remove(2, a.getNext, a.setNext) {
		t.Fatal("expected Remove to find middle element 2")
	}

	q.Push(4, a.setNext)

	var drained []int
	for !q.Empty() {
		drained = append(drained, q.Pop(a.getNext))
	}
	if len(drained) != 3 || drained[0] != 1 || drained[1] != 3 || drained[2] != 4 {
		t.Fatalf("unexpected drain order after middle removal: %v", drained)
	}
}

func TestFIFORemoveMissing(t *testing.T) {
	a := newLinkArena()
	q := New()
	q.Push(1, a.setNext)

	if q.Remove(5, a.getNext, a.setNext) {
		t.Fatal("expected Remove to report false for an absent element")
	}
}

func TestFIFORemoveOnlyElement(t *testing.T) {
	a := newLinkArena()
	q := New()
	q.Push(7, a.setNext)

	if !q.Remove(7, a.getNext, a.setNext) {
		t.Fatal("expected Remove to find the sole element")
	}
	if !q.Empty() {
		t.Fatal("expected queue to be empty after removing its only element")
	}
}
