package kcall

import (
	"nanokernel/kernel"
	"nanokernel/kernel/abi"
)

// Fault pauses tid (mirroring fault_generic/fault_page: the faulting
// thread is frozen, never killed outright) and publishes it to the fault
// queue for a debugger's GetFault to pick up. Fault has no kernel-mode
// branch, and nothing in this tree routes or panics on kernel-mode faults:
// it pauses and publishes whichever tid it is given.
func (k *Kernel) Fault(tid int, fv abi.FaultValue, addr uint32) *kernel.Error {
	tcb, err := k.thread(tid)
	if err != nil {
		return err
	}

	tcb.Info.Fault = fv
	tcb.Info.FaultAddr = addr

	if err := k.Threads.Pause(tid); err != nil {
		return err
	}

	return k.fault.Publish(tid)
}
