// Package linear charges WebAssembly guest memory to the engine's ledger.
//
// Engine scripts run as wazero core modules. Their linear memory is
// allocated through a wazero experimental.MemoryAllocator that keeps the
// committed size of every guest memory in a mem.Ledger under one tag:
//
//	host := linear.NewHost(ctx, nil, &linear.Config{MemoryLimitPages: 256, Tag: mem.TagJob})
//	defer host.Close(ctx)
//
//	mod, err := host.Instantiate(ctx, wasmBytes, "ai")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(mem.TaggedAllocation(mem.TagJob)) // 65536 for a one-page memory
//
// On linux and darwin the maximum size is reserved with mmap up front so
// guest memory never moves while it grows; elsewhere it lives on the Go
// heap.
package linear
