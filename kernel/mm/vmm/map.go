package vmm

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
	"nanokernel/kernel/mm"
	"nanokernel/kernel/mm/pmm"
)

var (
	// ErrNotMapped is returned by GetFrame/GetFlags/FreeFrame/TakeFrame
	// when page has no present mapping in the context.
	ErrNotMapped = &kernel.Error{Module: "vmm", Message: "page is not mapped"}

	// ErrAlreadyMapped is returned by SetFrame when page already has a
	// present mapping; callers must FreeFrame or TakeFrame it first.
	ErrAlreadyMapped = &kernel.Error{Module: "vmm", Message: "page already mapped"}
)

// tableFor returns the page-table frame backing page's directory entry,
// allocating and linking a fresh one (ref-counted against the directory)
// if create is true and none exists yet.
func (pc *PagingContext) tableFor(page mm.Page, create bool) (mm.Frame, *kernel.Error) {
	di := dirIndex(page)

	tableFrame, flags := pc.Entry(di)
	if flags&abi.PageFlagPresent != 0 {
		return tableFrame, nil
	}
	if !create {
		return mm.InvalidFrame, ErrNotMapped
	}

	tableFrame, err := pmm.Pool.Alloc()
	if err != nil {
		return mm.InvalidFrame, err
	}

	pc.SetEntry(di, tableFrame, abi.PageFlagPresent|abi.PageFlagWrite|abi.PageFlagUser)
	return tableFrame, nil
}

// GetFrame returns the physical frame mapped at page and the flags it was
// mapped with.
func (pc *PagingContext) GetFrame(page mm.Page) (mm.Frame, abi.PageFlag, *kernel.Error) {
	tableFrame, err := pc.tableFor(page, false)
	if err != nil {
		return mm.InvalidFrame, 0, err
	}

	frame, flags := unpackEntry(readEntry(tableFrame, tableIndex(page)))
	if flags&abi.PageFlagPresent == 0 {
		return mm.InvalidFrame, 0, ErrNotMapped
	}

	return frame, flags, nil
}

// GetFlags returns the mapping flags for page without the frame number.
func (pc *PagingContext) GetFlags(page mm.Page) (abi.PageFlag, *kernel.Error) {
	_, flags, err := pc.GetFrame(page)
	return flags, err
}

// SetFrame maps page to frame with the given flags, taking a reference on
// frame. It fails with ErrAlreadyMapped if page already has a present
// mapping.
func (pc *PagingContext) SetFrame(page mm.Page, frame mm.Frame, flags abi.PageFlag) *kernel.Error {
	tableFrame, err := pc.tableFor(page, true)
	if err != nil {
		return err
	}

	ti := tableIndex(page)
	if _, existing := unpackEntry(readEntry(tableFrame, ti)); existing&abi.PageFlagPresent != 0 {
		return ErrAlreadyMapped
	}

	pmm.Pool.Ref(frame)
	writeEntry(tableFrame, ti, packEntry(frame, flags|abi.PageFlagPresent))
	return nil
}

// SetFlags updates the mapping flags for an already-mapped page, leaving
// the underlying frame and its reference count untouched.
func (pc *PagingContext) SetFlags(page mm.Page, flags abi.PageFlag) *kernel.Error {
	frame, _, err := pc.GetFrame(page)
	if err != nil {
		return err
	}

	tableFrame, _ := pc.tableFor(page, false)
	writeEntry(tableFrame, tableIndex(page), packEntry(frame, flags|abi.PageFlagPresent))
	return nil
}

// NewFrame allocates a fresh physical frame and maps it at page in one step.
func (pc *PagingContext) NewFrame(page mm.Page, flags abi.PageFlag) (mm.Frame, *kernel.Error) {
	frame, err := pmm.Pool.Alloc()
	if err != nil {
		return mm.InvalidFrame, err
	}

	tableFrame, err := pc.tableFor(page, true)
	if err != nil {
		pmm.Pool.Unref(frame)
		return mm.InvalidFrame, err
	}

	ti := tableIndex(page)
	if _, existing := unpackEntry(readEntry(tableFrame, ti)); existing&abi.PageFlagPresent != 0 {
		pmm.Pool.Unref(frame)
		return mm.InvalidFrame, ErrAlreadyMapped
	}

	writeEntry(tableFrame, ti, packEntry(frame, flags|abi.PageFlagPresent))
	return frame, nil
}

// unmap clears page's mapping and returns the frame it pointed to.
func (pc *PagingContext) unmap(page mm.Page) (mm.Frame, *kernel.Error) {
	tableFrame, err := pc.tableFor(page, false)
	if err != nil {
		return mm.InvalidFrame, err
	}

	ti := tableIndex(page)
	frame, flags := unpackEntry(readEntry(tableFrame, ti))
	if flags&abi.PageFlagPresent == 0 {
		return mm.InvalidFrame, ErrNotMapped
	}

	writeEntry(tableFrame, ti, 0)
	return frame, nil
}

// FreeFrame unmaps page and releases the kernel's reference on the frame it
// pointed to, freeing the frame outright if that was the last reference.
func (pc *PagingContext) FreeFrame(page mm.Page) *kernel.Error {
	frame, err := pc.unmap(page)
	if err != nil {
		return err
	}

	return pmm.Pool.Unref(frame)
}

// TakeFrame unmaps page and hands the frame back to the caller without
// releasing the reference that SetFrame/NewFrame took — ownership of that
// reference transfers to the caller, who must eventually Unref it.
func (pc *PagingContext) TakeFrame(page mm.Page) (mm.Frame, *kernel.Error) {
	return pc.unmap(page)
}
