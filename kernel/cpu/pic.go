package cpu

// IRQCount is the number of IRQ lines modeled after the cascaded 8259 PIC
// pair, matching original_source's irq_mask/irq_unmask range.
const IRQCount = 16

// picState tracks the mask bit for each IRQ line. A real 8259 is a pair of
// write-only mask registers; this models exactly that surface so event.Table
// can mask a line on delivery and the RESET kcall can unmask it again
// without reaching into hardware.
type picState struct {
	masked [IRQCount]bool
}

// PIC is the kernel's single interrupt controller instance.
var PIC = &picState{}

// Mask disables delivery of irq until Unmask or Reset is called.
func (p *picState) Mask(irq int) {
	p.masked[irq] = true
}

// Unmask re-enables delivery of irq.
func (p *picState) Unmask(irq int) {
	p.masked[irq] = false
}

// Reset clears the mask bit for irq, identical to Unmask. It exists as a
// separate name because the RESET kcall semantically resets the line rather
// than just toggling it, mirroring irq_reset in the original driver.
func (p *picState) Reset(irq int) {
	p.masked[irq] = false
}

// IsMasked reports whether irq is currently masked.
func (p *picState) IsMasked(irq int) bool {
	return p.masked[irq]
}
