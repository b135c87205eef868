// Package kmain wires the kernel's subsystems together in boot order and
// hands back a Kernel ready to serve kcalls and timer ticks. There is no
// rt0/assembly stage here - no GDT, IDT or multiboot handoff to receive a
// pointer from - so Kmain takes no arguments; a test or host harness calls
// it directly once whatever stands in for "the bootloader" has finished.
package kmain

import (
	"nanokernel/kernel/kcall"
	"nanokernel/kernel/kfmt"
)

// Kmain brings up the thread table, the boot paging context and the
// virtual timer clock, then returns the live Kernel ready to serve kcalls
// and IRQ ticks. Unlike a freestanding kernel's Kmain, this one returns
// rather than looping forever: the caller (a test, a host harness driving
// simulated IRQs) owns the run loop, since there is no real interrupt
// source here to block on.
func Kmain() *kcall.Kernel {
	k := kcall.New()
	if err := k.Init(); err != nil {
		kfmt.Panic(err)
	}

	return k
}
