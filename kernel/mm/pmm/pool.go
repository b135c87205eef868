// Package pmm implements the kernel's physical frame pool: a fixed-size
// array of simulated RAM plus a LIFO free list and a per-frame reference
// count. Paging contexts acquire frames from here for page directories,
// page tables and user pages, and release them back through Unref once the
// last mapping referencing a frame is torn down.
package pmm

import (
	"nanokernel/kernel"
	"nanokernel/kernel/mm"
)

// FrameCount sizes the simulated physical memory backing this pool. It is a
// compile-time constant for the same reason the thread and paging-context
// tables are sized at compile time: a kernel's physical memory budget is
// not meant to be a runtime-tunable value.
const FrameCount = 2048

var (
	// ErrOutOfMemory is returned by Alloc when the free list is empty.
	ErrOutOfMemory = &kernel.Error{Module: "pmm", Message: "no free physical frames"}

	// ErrFreeUnallocated is returned by Unref when called on a frame
	// whose reference count is already zero.
	ErrFreeUnallocated = &kernel.Error{Module: "pmm", Message: "frame is not allocated"}
)

// Pool is the kernel's single physical frame pool.
var Pool = newPool()

type pool struct {
	memory   [FrameCount][mm.PageSize]byte
	refCount [FrameCount]uint32
	freeList []mm.Frame
}

func newPool() *pool {
	p := &pool{freeList: make([]mm.Frame, 0, FrameCount)}
	for i := FrameCount - 1; i >= 0; i-- {
		p.freeList = append(p.freeList, mm.Frame(i))
	}
	return p
}

// Reset discards all allocations and reinitializes the pool. It exists for
// test isolation; production code never calls it.
func Reset() {
	Pool = newPool()
}

// Alloc reserves a free frame, zeroes its contents and sets its reference
// count to 1.
func (p *pool) Alloc() (mm.Frame, *kernel.Error) {
	if len(p.freeList) == 0 {
		return mm.InvalidFrame, ErrOutOfMemory
	}

	last := len(p.freeList) - 1
	frame := p.freeList[last]
	p.freeList = p.freeList[:last]

	for i := range p.memory[frame] {
		p.memory[frame][i] = 0
	}
	p.refCount[frame] = 1

	return frame, nil
}

// Ref increments the reference count of an already-allocated frame, e.g.
// when a second paging context maps the same frame.
func (p *pool) Ref(frame mm.Frame) {
	p.refCount[frame]++
}

// Unref decrements the reference count of frame, returning it to the free
// list once the count reaches zero.
func (p *pool) Unref(frame mm.Frame) *kernel.Error {
	if p.refCount[frame] == 0 {
		return ErrFreeUnallocated
	}

	p.refCount[frame]--
	if p.refCount[frame] == 0 {
		p.freeList = append(p.freeList, frame)
	}

	return nil
}

// RefCount returns the current reference count of frame.
func (p *pool) RefCount(frame mm.Frame) uint32 {
	return p.refCount[frame]
}

// Bytes returns the page-sized backing slice for frame. The kernel's
// paging-context code uses this to read and write page directory / page
// table entries without a real MMU to walk.
func (p *pool) Bytes(frame mm.Frame) []byte {
	return p.memory[frame][:]
}

// Free returns the number of frames currently on the free list.
func (p *pool) Free() int {
	return len(p.freeList)
}
