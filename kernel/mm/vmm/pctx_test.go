package vmm

import (
	"nanokernel/kernel/abi"
	"nanokernel/kernel/mm/pmm"
	"testing"
)

func TestNewSelfMaps(t *testing.T) {
	defer pmm.Reset()

	pc, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frame, flags := pc.Entry(selfMapIndex)
	if frame != pc.Frame {
		t.Fatalf("expected self-map entry to point at %v; got %v", pc.Frame, frame)
	}
	if flags&abi.PageFlagPresent == 0 {
		t.Fatal("expected self-map entry to be present")
	}
}

func TestExmapWindow(t *testing.T) {
	defer pmm.Reset()

	a, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.SetEntry(5, b.Frame, abi.PageFlagPresent|abi.PageFlagWrite)

	a.Exmap(b)
	frame, flags, err := a.ExmappedEntry(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame != b.Frame || flags&abi.PageFlagPresent == 0 {
		t.Fatalf("expected exmapped entry to mirror b's entry 5; got frame=%v flags=%v", frame, flags)
	}

	a.ClearExmap()
	if _, _, err := a.ExmappedEntry(5); err != ErrExmapNotSet {
		t.Fatalf("expected ErrExmapNotSet after ClearExmap; got %v", err)
	}
}

func TestFreeReleasesOwnedFrames(t *testing.T) {
	defer pmm.Reset()

	pc, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page := pageNumberForTest(3, 7)
	if _, err := pc.NewFrame(page, abi.PageFlagPresent|abi.PageFlagWrite|abi.PageFlagUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	freeBefore := pmm.Pool.Free()

	if err := pc.Free(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := pmm.Pool.Free(); got <= freeBefore {
		t.Fatalf("expected Free to return frames to the pool; before=%d after=%d", freeBefore, got)
	}
}
