package mm

const (
	// PTEShift is equal to log2(sizeof(page table entry)). Page table
	// entries on this architecture are 4-byte values, giving 1024 entries
	// per table/directory frame.
	PTEShift = uintptr(2)

	// PTEsPerTable is the number of entries in a single page table or
	// page directory frame.
	PTEsPerTable = uintptr(1) << (PageShift - PTEShift)

	// PageShift is equal to log2(PageSize). This constant is used when
	// we need to convert a physical address to a page number (shift right by PageShift)
	// and vice-versa.
	PageShift = uintptr(12)

	// PageSize defines the system's page size in bytes.
	PageSize = uintptr(1 << PageShift)
)
