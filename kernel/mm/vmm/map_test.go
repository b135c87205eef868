package vmm

import (
	"nanokernel/kernel/abi"
	"nanokernel/kernel/mm"
	"nanokernel/kernel/mm/pmm"
	"testing"
)

// pageNumberForTest builds a page number from a directory index and table
// index, the inverse of dirIndex/tableIndex, so tests can address a
// specific (directory, table) slot without caring about raw page numbers.
func pageNumberForTest(dirIdx, tableIdx int) mm.Page {
	return mm.Page(dirIdx<<10 | tableIdx)
}

func TestSetFrameAndGetFrame(t *testing.T) {
	defer pmm.Reset()

	pc, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	backing, err := pmm.Pool.Alloc()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page := pageNumberForTest(1, 2)
	if err := pc.SetFrame(page, backing, abi.PageFlagPresent|abi.PageFlagWrite); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotFrame, gotFlags, err := pc.GetFrame(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFrame != backing {
		t.Fatalf("expected frame %v; got %v", backing, gotFrame)
	}
	if gotFlags&abi.PageFlagWrite == 0 {
		t.Fatal("expected write flag to be set")
	}

	if got := pmm.Pool.RefCount(backing); got != 2 {
		t.Fatalf("expected SetFrame to add a reference (refcount 2); got %d", got)
	}
}

func TestSetFrameRejectsDoubleMap(t *testing.T) {
	defer pmm.Reset()

	pc, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	backing, _ := pmm.Pool.Alloc()
	page := pageNumberForTest(4, 4)

	if err := pc.SetFrame(page, backing, abi.PageFlagPresent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := pc.SetFrame(page, backing, abi.PageFlagPresent); err != ErrAlreadyMapped {
		t.Fatalf("expected ErrAlreadyMapped; got %v", err)
	}
}

func TestGetFrameUnmapped(t *testing.T) {
	defer pmm.Reset()

	pc, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := pc.GetFrame(pageNumberForTest(9, 9)); err != ErrNotMapped {
		t.Fatalf("expected ErrNotMapped; got %v", err)
	}
}

func TestNewFrameThenFreeFrame(t *testing.T) {
	defer pmm.Reset()

	pc, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page := pageNumberForTest(2, 6)
	frame, err := pc.NewFrame(page, abi.PageFlagPresent|abi.PageFlagUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := pmm.Pool.RefCount(frame); got != 1 {
		t.Fatalf("expected refcount 1 right after NewFrame; got %d", got)
	}

	if err := pc.FreeFrame(page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := pmm.Pool.RefCount(frame); got != 0 {
		t.Fatalf("expected FreeFrame to drop refcount to 0; got %d", got)
	}

	if _, _, err := pc.GetFrame(page); err != ErrNotMapped {
		t.Fatalf("expected page to be unmapped after FreeFrame; got %v", err)
	}
}

func TestTakeFrameTransfersOwnership(t *testing.T) {
	defer pmm.Reset()

	pc, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page := pageNumberForTest(2, 8)
	frame, err := pc.NewFrame(page, abi.PageFlagPresent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := pc.TakeFrame(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != frame {
		t.Fatalf("expected TakeFrame to return %v; got %v", frame, got)
	}

	if refs := pmm.Pool.RefCount(frame); refs != 1 {
		t.Fatalf("expected TakeFrame to leave the reference intact (refcount 1); got %d", refs)
	}

	if _, _, err := pc.GetFrame(page); err != ErrNotMapped {
		t.Fatalf("expected page to be unmapped after TakeFrame; got %v", err)
	}
}

func TestSetFlagsPreservesFrame(t *testing.T) {
	defer pmm.Reset()

	pc, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page := pageNumberForTest(1, 1)
	frame, err := pc.NewFrame(page, abi.PageFlagPresent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := pc.SetFlags(page, abi.PageFlagPresent|abi.PageFlagWrite|abi.PageFlagUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotFrame, gotFlags, err := pc.GetFrame(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFrame != frame {
		t.Fatalf("expected SetFlags to preserve frame %v; got %v", frame, gotFrame)
	}
	if gotFlags&(abi.PageFlagWrite|abi.PageFlagUser) != abi.PageFlagWrite|abi.PageFlagUser {
		t.Fatalf("expected write+user flags to be set; got %v", gotFlags)
	}
}
