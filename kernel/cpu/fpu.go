package cpu

// FPUSave copies the simulated FPU/SSE state into dst. The original driver
// guards this call on thread->fxdata != nil so threads that never touch the
// FPU skip the save entirely; callers here are expected to apply the same
// guard rather than calling it unconditionally.
func FPUSave(dst *[128]byte, src *[128]byte) {
	*dst = *src
}

// FPULoad is the inverse of FPUSave, restoring a thread's FPU/SSE state
// ahead of resuming it.
func FPULoad(dst *[128]byte, src *[128]byte) {
	*dst = *src
}
