// Package abi defines the numeric surface that the kernel-call dispatcher
// and the thread/paging subsystems agree on: thread states and flags,
// kcall identifiers and error codes, and the fixed table sizes. The values
// are not invented; they are carried over unchanged from the historical
// ABI header this kernel's wire format descends from, so that a user-mode
// caller written against that header still works against this dispatcher.
package abi

// ThreadState is the lifecycle state of a thread control block.
type ThreadState uint8

// Thread states, in TS_* numeric order.
const (
	ThreadFree          ThreadState = iota // TS_FREE: slot unused
	ThreadQueued                           // TS_QUEUED: runnable, sitting in the run queue
	ThreadRunning                          // TS_RUNNING: currently on the CPU
	ThreadWaiting                          // TS_WAITING: blocked on an event
	ThreadPaused                           // TS_PAUSED: suspended by PAUSE
	ThreadPausedWaiting                    // TS_PAUSEDW: was WAITING when paused
)

// String returns the TS_* name of a thread state, used by diagnostics.
func (s ThreadState) String() string {
	switch s {
	case ThreadFree:
		return "FREE"
	case ThreadQueued:
		return "QUEUED"
	case ThreadRunning:
		return "RUNNING"
	case ThreadWaiting:
		return "WAITING"
	case ThreadPaused:
		return "PAUSED"
	case ThreadPausedWaiting:
		return "PAUSEDW"
	default:
		return "UNKNOWN"
	}
}

// ThreadFlag holds auxiliary per-thread bits orthogonal to ThreadState.
type ThreadFlag uint8

// Thread flags, in TF_* numeric order.
const (
	ThreadDead ThreadFlag = 1 << iota // TF_DEAD: thread has exited, awaiting reap
	ThreadUser                        // TF_USER: thread runs in ring 3
)

// KCallError is the error code a kcall returns to the caller's register
// file. Zero always means success.
type KCallError int32

// Kernel-call error codes, in TE_* numeric order.
const (
	ErrNone     KCallError = 0
	ErrState    KCallError = 1 // TE_STATE: thread not in a state the call accepts
	ErrExist    KCallError = 2 // TE_EXIST: thread/context id does not exist
	ErrResource KCallError = 3 // TE_RESRC: table or frame exhaustion
)

// KCallID identifies a kernel call trapped from user mode.
type KCallID uint32

// Kernel-call identifiers, in KCALL_* numeric order.
const (
	KCallInfo      KCallID = 0x00
	KCallConfig    KCallID = 0x01
	KCallSpawn     KCallID = 0x02
	KCallGetTID    KCallID = 0x03
	KCallYield     KCallID = 0x04
	KCallPause     KCallID = 0x05
	KCallResume    KCallID = 0x06
	KCallGetState  KCallID = 0x07
	KCallSetState  KCallID = 0x08
	KCallGetFault  KCallID = 0x09
	KCallGetDead   KCallID = 0x0A
	KCallReap      KCallID = 0x0B
	KCallWait      KCallID = 0x0D
	KCallReset     KCallID = 0x0E
	KCallSysret    KCallID = 0x0F
	KCallNewPCtx   KCallID = 0x10
	KCallFreePCtx  KCallID = 0x11
	KCallSetFrame  KCallID = 0x12
	KCallSetFlags  KCallID = 0x13
	KCallGetFrame  KCallID = 0x14
	KCallGetFlags  KCallID = 0x15
	KCallNewFrame  KCallID = 0x1C
	KCallFreeFrame KCallID = 0x1D
	KCallTakeFrame KCallID = 0x1E
)

// FaultValue records which kind of exception caused a thread to land in
// the fault queue.
type FaultValue uint8

// Fault values, in FV_* numeric order.
const (
	FaultNone   FaultValue = 0
	FaultPage   FaultValue = 1 // FV_PAGE
	FaultAccess FaultValue = 2 // FV_ACCS
)

// Table sizes. These mirror THREAD_COUNT, PCTX_COUNT and EV_COUNT: fixed at
// compile time because the tables they size are fixed-size arenas, not
// growable containers.
const (
	ThreadTableSize        = 1024
	PagingContextTableSize = 1024
	EventCount             = 256
)

// VTimerEvent returns the event slot reserved for virtual timer n, mirroring
// EV_VTIMER(n) = (EventCount-1-n). Slots count down from the top of the
// event table so they never collide with IRQ-latched hardware slots, which
// are allocated from slot 0 upward.
func VTimerEvent(n int) int {
	return EventCount - 1 - n
}

// PageFlag marks properties of a page-table mapping.
type PageFlag uint32

// Page flags, in PFLAG_* numeric order.
const (
	PageFlagPresent PageFlag = 0x001
	PageFlagWrite   PageFlag = 0x002
	PageFlagUser    PageFlag = 0x004
	PageFlagExec    PageFlag = 0x000
)
