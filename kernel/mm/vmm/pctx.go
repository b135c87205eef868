package vmm

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
	"nanokernel/kernel/mm"
	"nanokernel/kernel/mm/pmm"
)

var (
	// ErrExmapNotSet is returned by ExmappedEntry/SetExmappedEntry when
	// called before Exmap has installed a target context.
	ErrExmapNotSet = &kernel.Error{Module: "vmm", Message: "no context installed in the exmap window"}
)

// PagingContext is a single paging context: a root page directory frame
// plus the bookkeeping needed to look through its exmap window at another
// context's directory.
type PagingContext struct {
	// Frame is the physical frame backing this context's page directory.
	Frame mm.Frame

	exmapped    mm.Frame
	hasExmapped bool
}

// New allocates and initializes a fresh paging context: a zeroed directory
// frame with its self-map entry pointing back at itself. If from is
// non-nil, every present system-region entry of from is copied into the
// new context's directory and its underlying table frame's reference count
// bumped, mirroring space_clone's exmap[i] = cmap[i] loop — the new
// context shares the kernel's mappings with from rather than cloning them,
// so a write to a shared system mapping through either context is visible
// through both. Table.Init passes nil for the boot context, which has
// nothing yet to share; with from nil the new context's system region is
// left empty.
func New(from *PagingContext) (*PagingContext, *kernel.Error) {
	frame, err := pmm.Pool.Alloc()
	if err != nil {
		return nil, err
	}

	pc := &PagingContext{Frame: frame}
	writeEntry(frame, selfMapIndex, packEntry(frame, abi.PageFlagPresent|abi.PageFlagWrite))

	if from != nil {
		for idx := systemRegionBase; idx < exmapIndex; idx++ {
			tableFrame, flags := from.Entry(idx)
			if flags&abi.PageFlagPresent == 0 {
				continue
			}
			pc.SetEntry(idx, tableFrame, flags)
			pmm.Pool.Ref(tableFrame)
		}
	}

	return pc, nil
}

// Free releases every user mapping this context owns along with its
// directory frame. It never walks the system region (indices from
// systemRegionBase up to exmapIndex): those entries were installed by New
// as shared references into another context's page tables, and this
// context neither owns nor individually ref-counts them down, mirroring
// space_free's loop bound of SYSTEM_ADDR_BASE>>22 in the original driver.
// It has no notion of its own table id, so it cannot reject freeing the
// boot context itself — that guard lives in Table.Free. It also does not
// check whether the context is still the active one or still referenced
// by a live thread; callers (the kcall dispatcher) are responsible for
// that invariant.
func (pc *PagingContext) Free() *kernel.Error {
	for idx := 0; idx < systemRegionBase; idx++ {
		entry := readEntry(pc.Frame, idx)
		tableFrame, flags := unpackEntry(entry)
		if flags&abi.PageFlagPresent == 0 {
			continue
		}

		for pteIdx := 0; pteIdx < entriesPerTable; pteIdx++ {
			pteEntry := readEntry(tableFrame, pteIdx)
			pageFrame, pageFlags := unpackEntry(pteEntry)
			if pageFlags&abi.PageFlagPresent == 0 {
				continue
			}
			if err := pmm.Pool.Unref(pageFrame); err != nil {
				return err
			}
		}

		if err := pmm.Pool.Unref(tableFrame); err != nil {
			return err
		}
	}

	return pmm.Pool.Unref(pc.Frame)
}

// Entry returns the raw directory entry at index.
func (pc *PagingContext) Entry(index int) (mm.Frame, abi.PageFlag) {
	return unpackEntry(readEntry(pc.Frame, index))
}

// SetEntry installs a raw directory entry at index.
func (pc *PagingContext) SetEntry(index int, frame mm.Frame, flags abi.PageFlag) {
	writeEntry(pc.Frame, index, packEntry(frame, flags))
}

// Exmap installs target's directory frame into this context's exmap window,
// so ExmappedEntry/SetExmappedEntry can read and write target's entries
// without target needing to be the active context.
func (pc *PagingContext) Exmap(target *PagingContext) {
	writeEntry(pc.Frame, exmapIndex, packEntry(target.Frame, abi.PageFlagPresent|abi.PageFlagWrite))
	pc.exmapped = target.Frame
	pc.hasExmapped = true
}

// ClearExmap removes whatever context is currently installed in the exmap
// window.
func (pc *PagingContext) ClearExmap() {
	writeEntry(pc.Frame, exmapIndex, 0)
	pc.hasExmapped = false
}

// ExmappedEntry returns the raw directory entry at index of whichever
// context is currently installed in the exmap window.
func (pc *PagingContext) ExmappedEntry(index int) (mm.Frame, abi.PageFlag, *kernel.Error) {
	if !pc.hasExmapped {
		return mm.InvalidFrame, 0, ErrExmapNotSet
	}

	frame, flags := unpackEntry(readEntry(pc.exmapped, index))
	return frame, flags, nil
}
