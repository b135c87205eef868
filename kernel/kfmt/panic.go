package kfmt

import "nanokernel/kernel"

// cpuHaltFn is mocked by tests and is automatically inlined by the compiler.
var cpuHaltFn = func() {}

var errRuntimePanic = &kernel.Error{Module: "rt", Message: "unknown cause"}

// SetHaltFn overrides the function invoked by Panic once it has finished
// reporting the error. Nothing in this tree calls it, so the default no-op
// hook stays installed unless a caller replaces it.
func SetHaltFn(fn func()) {
	cpuHaltFn = fn
}

// Panic outputs the supplied error (if not nil) to the configured output
// sink and then calls the halt hook. Panic returns to its caller once the
// hook returns, which the default no-op hook does immediately.
func Panic(e interface{}) {
	var err *kernel.Error

	switch t := e.(type) {
	case *kernel.Error:
		err = t
	case string:
		panicString(t)
		return
	case error:
		errRuntimePanic.Message = t.Error()
		err = errRuntimePanic
	}

	Printf("\n-----------------------------------\n")
	if err != nil {
		Printf("[%s] unrecoverable error: %s\n", err.Module, err.Message)
	}
	Printf("*** kernel panic: system halted ***")
	Printf("\n-----------------------------------")

	cpuHaltFn()
}

func panicString(msg string) {
	errRuntimePanic.Message = msg
	Panic(errRuntimePanic)
}

// Assert panics with a *kernel.Error built from format/args (formatted via
// Sprintf) when cond is false. It is reserved for invariant violations
// (illegal state transitions, double frees) that indicate a programming
// error rather than a recoverable kcall failure.
func Assert(cond bool, module, format string, args ...interface{}) {
	if cond {
		return
	}

	Panic(&kernel.Error{Module: module, Message: Sprintf(format, args...)})
}
