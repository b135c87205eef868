package vmm

import (
	"encoding/binary"
	"nanokernel/kernel/abi"
	"nanokernel/kernel/mm"
	"nanokernel/kernel/mm/pmm"
)

// entriesPerTable is the number of 4-byte entries in a page directory or
// page table frame.
const entriesPerTable = int(mm.PTEsPerTable)

// selfMapIndex is the directory entry that recursively maps the directory
// itself, giving the kernel a stable way to address its own entries without
// a dedicated "physical memory window".
const selfMapIndex = entriesPerTable - 1

// exmapIndex is the directory entry reserved for temporarily exposing a
// second, inactive context's root frame so its entries can be inspected or
// edited from the active context — the "exmap window" named in the design.
const exmapIndex = entriesPerTable - 2

// systemRegionBase is the first page-directory index considered part of
// the shared kernel/system region: 0xC0000000 (the original driver's
// SYSTEM_ADDR_BASE) divided by the 4MB one directory entry spans. Indices
// below this are the user region, owned outright by one context; indices
// from here up to exmapIndex are shared kernel mappings, cloned into every
// new context and never individually freed by any one of them.
const systemRegionBase = 0xC0000000 >> 22

// readEntry returns the raw directory/table entry at index within frame.
func readEntry(frame mm.Frame, index int) uint32 {
	buf := pmm.Pool.Bytes(frame)
	return binary.LittleEndian.Uint32(buf[index*4:])
}

// writeEntry stores a raw directory/table entry at index within frame.
func writeEntry(frame mm.Frame, index int, entry uint32) {
	buf := pmm.Pool.Bytes(frame)
	binary.LittleEndian.PutUint32(buf[index*4:], entry)
}

// packEntry combines a frame number and flag bits into a raw entry value.
func packEntry(frame mm.Frame, flags abi.PageFlag) uint32 {
	return uint32(frame)<<12 | uint32(flags)
}

// unpackEntry splits a raw entry value back into its frame number and flags.
func unpackEntry(entry uint32) (mm.Frame, abi.PageFlag) {
	return mm.Frame(entry >> 12), abi.PageFlag(entry & 0xfff)
}

// dirIndex returns the page-directory index for page (bits 31:22 of a
// 32-bit virtual address, i.e. the high 10 bits of the page number).
func dirIndex(page mm.Page) int {
	return int(uint32(page) >> 10)
}

// tableIndex returns the page-table index for page (bits 21:12, i.e. the
// low 10 bits of the page number).
func tableIndex(page mm.Page) int {
	return int(uint32(page) & 0x3ff)
}
