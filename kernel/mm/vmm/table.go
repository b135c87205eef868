package vmm

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
)

var (
	// ErrTableFull is returned by Table.New when every context slot is
	// occupied.
	ErrTableFull = &kernel.Error{Module: "vmm", Message: "paging context table is full"}

	// ErrNoContext is returned by Table.Get/Table.Free for an id with no
	// live context.
	ErrNoContext = &kernel.Error{Module: "vmm", Message: "no such paging context"}

	// ErrFreeBootContext is returned by Table.Free for BootContextID: the
	// boot context is never eligible for release.
	ErrFreeBootContext = &kernel.Error{Module: "vmm", Message: "cannot free the boot paging context"}
)

// BootContextID is the id of the context created by Table.Init and is never
// eligible for Free — freeing it would leave the kernel without a paging
// context to fall back on.
const BootContextID = 0

// Table is the kernel's fixed-size array of paging contexts, indexed by the
// same small integer id the NEWPCTX/FREEPCTX kcalls hand back to user mode.
type Table struct {
	contexts [abi.PagingContextTableSize]*PagingContext
}

// Init allocates the boot context at BootContextID. It must be called
// exactly once before any other Table method. The boot context has no
// predecessor to share a system region with, so it is created with from
// nil.
func (t *Table) Init() *kernel.Error {
	pc, err := New(nil)
	if err != nil {
		return err
	}

	t.contexts[BootContextID] = pc
	return nil
}

// New allocates a fresh paging context sharing from's system region and
// returns its id.
func (t *Table) New(from *PagingContext) (int, *kernel.Error) {
	for id := range t.contexts {
		if t.contexts[id] == nil {
			pc, err := New(from)
			if err != nil {
				return -1, err
			}
			t.contexts[id] = pc
			return id, nil
		}
	}

	return -1, ErrTableFull
}

// Get returns the context for id.
func (t *Table) Get(id int) (*PagingContext, *kernel.Error) {
	if id < 0 || id >= len(t.contexts) || t.contexts[id] == nil {
		return nil, ErrNoContext
	}
	return t.contexts[id], nil
}

// Free releases the context at id and clears its slot. Freeing
// BootContextID is rejected with ErrFreeBootContext, mirroring the
// original driver's "pctx <= 0" guard rather than tearing down the one
// context the kernel always falls back on.
func (t *Table) Free(id int) *kernel.Error {
	if id == BootContextID {
		return ErrFreeBootContext
	}

	pc, err := t.Get(id)
	if err != nil {
		return err
	}

	if err := pc.Free(); err != nil {
		return err
	}

	t.contexts[id] = nil
	return nil
}
