// Package mem is the engine's tagged memory ledger and allocator.
//
// Every allocation is classified by a Tag and charged to a Ledger, which
// keeps one atomic byte counter per tag plus a total. The package-level
// functions use the process-wide ledger returned by Default:
//
//	tex := mem.Alloc[uint32](256*256, mem.TagTexture)
//	defer mem.Dealloc(tex, mem.TagTexture)
//
//	fmt.Print(mem.GetMemoryUsage())
//
// Isolated ledgers are created with NewLedger and bound to an element type
// with For:
//
//	l := mem.NewLedger(&mem.LedgerConfig{AtomicRealloc: true})
//	a := mem.For[float32](l, mem.TagTransform)
//	m := a.Alloc(16)
//	m = a.Realloc(m, 32)
//	a.Dealloc(m)
//
// # Faults
//
// Allocation is infallible from the caller's point of view. A release that
// would drive a counter below zero, a negative slot count or a byte size
// beyond math.MaxInt is a programming error: it is logged and raised as a
// panic carrying *errors.Error. Passing TagUnknown is legal but logs a
// warning on every call.
//
// # Reports
//
// FormatBytes renders byte counts in IEC units and Report / GetMemoryUsage
// produce the aligned per-tag table. NewCollector exposes the same counters
// to Prometheus. Reports are best-effort snapshots and may be torn under
// concurrent allocation.
package mem
