package notify

import (
	"nanokernel/kernel/abi"
	"nanokernel/kernel/sched"
	"testing"
)

func newFixture() (*sched.Table, *Queue) {
	var s sched.Table
	s.Init()
	return &s, NewQueue(&s)
}

func TestWaitParksThenPublishWakes(t *testing.T) {
	s, q := newFixture()

	reaper, _ := s.Spawn()
	s.Dispatch()

	if err := q.Wait(reaper); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tcb, _ := s.Get(reaper)
	if tcb.Info.State != abi.ThreadWaiting {
		t.Fatalf("expected WAITING while parked; got %s", tcb.Info.State)
	}

	if err := q.Publish(42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tcb.Info.State != abi.ThreadQueued {
		t.Fatalf("expected QUEUED after publish wakes the parked consumer; got %s", tcb.Info.State)
	}
	if tcb.Info.Regs.EAX != 42 {
		t.Fatalf("expected eax loaded with payload 42; got %d", tcb.Info.Regs.EAX)
	}
}

func TestPublishThenWaitConsumesImmediately(t *testing.T) {
	s, q := newFixture()

	if err := q.Publish(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reaper, _ := s.Spawn()
	s.Dispatch()

	if err := q.Wait(reaper); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tcb, _ := s.Get(reaper)
	if tcb.Info.State != abi.ThreadQueued {
		t.Fatalf("expected ready payload to return consumer straight to QUEUED; got %s", tcb.Info.State)
	}
	if tcb.Info.Regs.EAX != 7 {
		t.Fatalf("expected eax loaded with payload 7; got %d", tcb.Info.Regs.EAX)
	}
}

func TestCancelWait(t *testing.T) {
	s, q := newFixture()

	reaper, _ := s.Spawn()
	s.Dispatch()

	if err := q.Wait(reaper); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !q.CancelWait(reaper) {
		t.Fatal("expected CancelWait to find the parked consumer")
	}

	if err := s.Exit(reaper); err != nil {
		t.Fatalf("unexpected error freeing cancelled waiter: %v", err)
	}
}
