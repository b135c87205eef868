package abi

import "nanokernel/kernel/cpu"

// ThreadInfo is the snapshot exchanged between a thread control block and
// user mode across the GETSTATE/SETSTATE/SPAWN kcalls. Its field order and
// widths mirror the historical t_info wire struct so a caller that already
// knows that layout can decode this snapshot unchanged.
type ThreadInfo struct {
	ID   int32
	PCtx int32

	State ThreadState
	Flags ThreadFlag
	Event uint8
	Fault FaultValue

	FaultAddr uint32

	SchedPriority int8
	SchedFlags    int8
	SchedTicks    uint32

	UsrIP uint32
	UsrSP uint32

	Regs cpu.Regs

	// FPUArea holds this thread's saved FPU/SSE state. FPUUsed gates
	// whether the dispatcher bothers saving/restoring it at all: a
	// thread that never touches the FPU carries 128 bytes of zeroes
	// here forever, mirroring the original driver's fxdata != NULL
	// lazy-allocation guard.
	FPUArea [128]byte
	FPUUsed bool
}
