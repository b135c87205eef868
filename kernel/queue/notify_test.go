package queue

import "testing"

func TestNotifyPublishWakesWaiter(t *testing.T) {
	a := newLinkArena()
	nq := NewNotifyQueue()

	nq.Park(2, a.setNext)

	woken := nq.Publish(5, a.getNext, a.setNext)
	if woken != 2 {
		t.Fatalf("expected Publish to wake waiter 2; got %d", woken)
	}

	if got := nq.Take(a.getNext); got != NoIndex {
		t.Fatalf("expected nothing ready after waking a waiter directly; got %d", got)
	}
}

func TestNotifyPublishQueuesWhenNoWaiter(t *testing.T) {
	a := newLinkArena()
	nq := NewNotifyQueue()

	if woken := nq.Publish(5, a.getNext, a.setNext); woken != NoIndex {
		t.Fatalf("expected no waiter to wake; got %d", woken)
	}

	if got := nq.Take(a.getNext); got != 5 {
		t.Fatalf("expected Take to return the published item 5; got %d", got)
	}
	if got := nq.Take(a.getNext); got != NoIndex {
		t.Fatalf("expected Take to drain to NoIndex; got %d", got)
	}
}

func TestNotifyCancelWait(t *testing.T) {
	a := newLinkArena()
	nq := NewNotifyQueue()

	nq.Park(3, a.setNext)

	if !nq.CancelWait(3, a.getNext, a.setNext) {
		t.Fatal("expected CancelWait to find the parked waiter")
	}

	if woken := nq.Publish(5, a.getNext, a.setNext); woken != NoIndex {
		t.Fatalf("expected no waiter left to wake after cancel; got %d", woken)
	}
}
