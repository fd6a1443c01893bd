// Package wasmvm embeds a WebAssembly virtual machine inside a host
// server process behind a small, stable surface: initialize the engine,
// load a module, call exported functions, unload the module, shut the
// engine down.
//
// # Architecture Overview
//
// The library is organized into a handful of packages with distinct
// responsibilities:
//
//	wasm-vm/
//	├── vm/          High-level adapter: VM, Plugin, Load/Call/Close
//	├── engine/      Low-level wazero integration: Engine, Store, Linker
//	├── hostapi/     Ordered registry of host functions exposed to guests
//	├── wasm/        Core binary format primitives (LEB128, sniffing, builder)
//	└── errors/      Structured error types shared by all packages
//
// # Quick Start
//
// Load a module and call one of its exports:
//
//	v, err := vm.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close(ctx)
//
//	plugin, err := v.Load(ctx, bytecode, registry)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer plugin.Close(ctx)
//
//	rc, err := plugin.Call(ctx, "on_request", vm.I32Pair(confPtr, confLen), true)
//
// # Host Functions
//
// Guests call back into the server through functions defined under the
// "env" namespace. The embedder supplies them as an ordered hostapi.Registry
// at load time; each plugin gets its own bindings, so independent registries
// can coexist in one process.
//
// # Thread Safety
//
// The engine is created before any plugin and closed after the last one;
// sequencing that is the embedder's job. A loaded Plugin is single-owner:
// at most one in-flight call per Plugin at a time. Every call is synchronous
// and blocking; run-away guest code holds the calling goroutine until the
// supplied context is cancelled by an external watchdog.
package wasmvm
