package sched

import (
	"nanokernel/kernel/abi"
	"nanokernel/kernel/kfmt"
)

// legalTransitions enumerates, for each source state, every state a kcall
// or the dispatcher is allowed to move a thread into. A transition missing
// from this table is a programming error, not a recoverable condition: a
// kcall that would require one must reject the request before ever calling
// transition, and the dispatcher itself must never attempt one.
var legalTransitions = map[abi.ThreadState]map[abi.ThreadState]bool{
	abi.ThreadFree: {
		abi.ThreadQueued: true,
	},
	abi.ThreadQueued: {
		abi.ThreadRunning: true,
		abi.ThreadPaused:  true,
		abi.ThreadFree:    true,
	},
	abi.ThreadRunning: {
		abi.ThreadQueued:  true,
		abi.ThreadWaiting: true,
		abi.ThreadPaused:  true,
		abi.ThreadFree:    true,
	},
	abi.ThreadWaiting: {
		abi.ThreadQueued:        true,
		abi.ThreadPausedWaiting: true,
		abi.ThreadFree:          true,
	},
	abi.ThreadPaused: {
		abi.ThreadQueued: true,
		abi.ThreadFree:   true,
	},
	abi.ThreadPausedWaiting: {
		abi.ThreadWaiting: true,
	},
}

// legal reports whether moving a thread directly from `from` to `to` is
// permitted.
func legal(from, to abi.ThreadState) bool {
	dests, ok := legalTransitions[from]
	if !ok {
		return false
	}
	return dests[to]
}

// transition moves tid's TCB from its current state to `to`, asserting the
// move is legal. Callers are expected to have already checked preconditions
// specific to the kcall they're servicing (e.g. GETFAULT only applies to a
// thread with a pending fault); this only guards the state graph itself.
func (tcb *TCB) transition(to abi.ThreadState) {
	from := tcb.Info.State
	kfmt.Assert(legal(from, to), "sched", "illegal thread state transition %s -> %s", from.String(), to.String())
	tcb.Info.State = to
}
