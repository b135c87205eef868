package pmm

import "nanokernel/kernel/mm"

// Init wires this pool's Alloc method as the mm package's global frame
// allocator so vmm and the kernel object can call mm.AllocFrame directly.
func Init() {
	mm.SetFrameAllocator(Pool.Alloc)
}
