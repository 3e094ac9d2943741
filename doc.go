// Package stringsengine is the memory core of the strings game engine.
//
// The engine's windowing, input, event and game-loop layers are thin
// wrappers over platform APIs; this module holds the part that does its
// own bookkeeping: a tagged allocation ledger and a growable array built
// on ledger-charged raw storage.
//
// # Architecture Overview
//
//	stringsengine/        Root package with the Dropper element-destructor hook
//	├── mem/              Tags, ledger, tagged allocator, reports, Prometheus collector
//	│   └── linear/       Ledger-charged linear memory for wazero guest scripts
//	├── collections/vect/ Growable array with raw buffer, owning and draining iterators
//	├── errors/           Structured fault types raised by the core
//	├── internal/assert/  Fatal assertion reporting
//	└── cmd/memstat/      Synthetic workload, usage report, live dashboard
//
// # Quick Start
//
//	v := vect.New[int]()
//	defer v.Drop()
//
//	for i := range 5 {
//	    v.Push(i)
//	}
//	v.Insert(1, 9)
//	fmt.Println(v.Slice())          // [0 9 1 2 3 4]
//	fmt.Print(mem.GetMemoryUsage()) // Vector: 64 B ...
//
// # Element Destruction
//
// Containers destroy elements they still own when they are dropped. An
// element whose type implements Dropper has Drop called exactly once;
// other values are simply forgotten. Elements handed out by Pop, Remove or
// an iterator belong to the caller.
//
// # Faults
//
// Contract violations (out-of-range indices, capacity overflow, ledger
// underflow) are programming errors. They are logged and raised as a panic
// carrying *errors.Error rather than returned.
package stringsengine
