package kcall

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
	"nanokernel/kernel/mm"
	"nanokernel/kernel/mm/vmm"
)

// NewPCtx allocates a fresh paging context, sharing the system region of
// the calling thread's own context, and returns its new id. This mirrors
// newpctx() cloning the currently loaded context (_active_pctx) — since
// this kernel has no analog of a single active-pctx register wired into
// dispatch, the calling thread's own ThreadInfo.PCtx stands in for it,
// falling back to the boot context if no thread happens to be active.
func (k *Kernel) NewPCtx() (int, *kernel.Error) {
	fromID := vmm.BootContextID
	if active := k.Threads.Active(); active >= 0 {
		if tcb, err := k.thread(active); err == nil {
			fromID = int(tcb.Info.PCtx)
		}
	}

	from, err := k.PCtxs.Get(fromID)
	if err != nil {
		from = nil
	}

	return k.PCtxs.New(from)
}

// FreePCtx releases a paging context. Freeing vmm.BootContextID is
// rejected by vmm.Table.Free with ErrFreeBootContext rather than being
// special-cased here.
func (k *Kernel) FreePCtx(id int) *kernel.Error {
	return k.PCtxs.Free(id)
}

func (k *Kernel) pctx(id int) (*vmm.PagingContext, *kernel.Error) {
	return k.PCtxs.Get(id)
}

// SetFrame maps page to frame within paging context pctx.
func (k *Kernel) SetFrame(pctx int, page mm.Page, frame mm.Frame, flags abi.PageFlag) *kernel.Error {
	pc, err := k.pctx(pctx)
	if err != nil {
		return err
	}
	return pc.SetFrame(page, frame, flags)
}

// SetFlags updates the mapping flags for an already-mapped page.
func (k *Kernel) SetFlags(pctx int, page mm.Page, flags abi.PageFlag) *kernel.Error {
	pc, err := k.pctx(pctx)
	if err != nil {
		return err
	}
	return pc.SetFlags(page, flags)
}

// GetFrame returns the frame and flags mapped at page within pctx.
func (k *Kernel) GetFrame(pctx int, page mm.Page) (mm.Frame, abi.PageFlag, *kernel.Error) {
	pc, err := k.pctx(pctx)
	if err != nil {
		return mm.InvalidFrame, 0, err
	}
	return pc.GetFrame(page)
}

// GetFlags returns the mapping flags for page within pctx.
func (k *Kernel) GetFlags(pctx int, page mm.Page) (abi.PageFlag, *kernel.Error) {
	pc, err := k.pctx(pctx)
	if err != nil {
		return 0, err
	}
	return pc.GetFlags(page)
}

// NewFrame allocates a fresh physical frame and maps it at page within pctx.
func (k *Kernel) NewFrame(pctx int, page mm.Page, flags abi.PageFlag) (mm.Frame, *kernel.Error) {
	pc, err := k.pctx(pctx)
	if err != nil {
		return mm.InvalidFrame, err
	}
	return pc.NewFrame(page, flags)
}

// FreeFrame unmaps page within pctx and releases the kernel's reference on
// the frame it pointed to.
func (k *Kernel) FreeFrame(pctx int, page mm.Page) *kernel.Error {
	pc, err := k.pctx(pctx)
	if err != nil {
		return err
	}
	return pc.FreeFrame(page)
}

// TakeFrame unmaps page within pctx and hands the frame back to the caller,
// transferring ownership of its reference.
func (k *Kernel) TakeFrame(pctx int, page mm.Page) (mm.Frame, *kernel.Error) {
	pc, err := k.pctx(pctx)
	if err != nil {
		return mm.InvalidFrame, err
	}
	return pc.TakeFrame(page)
}
