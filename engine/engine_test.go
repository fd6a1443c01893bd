package engine

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasm-vm/wasm"
)

func addModule(t *testing.T) []byte {
	t.Helper()
	b := wasm.NewBuilder()
	sig := wasm.FuncType{
		Params:  []wasm.ValType{wasm.ValI32, wasm.ValI32},
		Results: []wasm.ValType{wasm.ValI32},
	}
	idx := b.Func(sig, []byte{wasm.OpLocalGet, 0, wasm.OpLocalGet, 1, wasm.OpI32Add, wasm.OpEnd})
	b.Export("add", idx)
	return b.Build()
}

func TestEngineLifecycle(t *testing.T) {
	ctx := context.Background()

	eng, err := New(ctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := eng.LiveStores(); got != 0 {
		t.Errorf("LiveStores = %d, want 0", got)
	}

	store, err := eng.NewStore(ctx)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if got := eng.LiveStores(); got != 1 {
		t.Errorf("LiveStores = %d, want 1", got)
	}

	if err := store.Close(ctx); err != nil {
		t.Fatalf("Close store: %v", err)
	}
	if got := eng.LiveStores(); got != 0 {
		t.Errorf("LiveStores after close = %d, want 0", got)
	}

	if err := eng.Close(ctx); err != nil {
		t.Fatalf("Close engine: %v", err)
	}
}

func TestEngineCloseIdempotent(t *testing.T) {
	ctx := context.Background()

	eng, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := eng.Close(ctx); err != nil {
		t.Errorf("second Close: %v", err)
	}

	var nilEng *Engine
	if err := nilEng.Close(ctx); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestNewStoreAfterClose(t *testing.T) {
	ctx := context.Background()

	eng, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.NewStore(ctx); err == nil {
		t.Error("expected error creating store on closed engine")
	}
}

func TestStoreCompile(t *testing.T) {
	ctx := context.Background()

	eng, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close(ctx)

	store, err := eng.NewStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close(ctx)

	compiled, err := store.Compile(ctx, addModule(t))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	defer compiled.Close(ctx)

	if _, err := store.Compile(ctx, []byte("not wasm at all")); err == nil {
		t.Error("expected compile error for garbage bytecode")
	}
}

func TestStoreCloseIdempotent(t *testing.T) {
	ctx := context.Background()

	eng, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close(ctx)

	store, err := eng.NewStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Close(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(ctx); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if got := eng.LiveStores(); got != 0 {
		t.Errorf("LiveStores = %d, want 0 after double close", got)
	}
}

func TestStoreIsolation(t *testing.T) {
	ctx := context.Background()

	eng, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close(ctx)

	// the same host module name must be definable in two stores
	for i := 0; i < 2; i++ {
		store, err := eng.NewStore(ctx)
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close(ctx)

		ln := store.NewLinker("env")
		noop := api.GoModuleFunc(func(context.Context, api.Module, []uint64) {})
		if err := ln.DefineFunc("host_log", noop, []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, nil); err != nil {
			t.Fatalf("store %d DefineFunc: %v", i, err)
		}
		if _, err := ln.Instantiate(ctx); err != nil {
			t.Fatalf("store %d Instantiate: %v", i, err)
		}
	}
}

func TestLinkerDuplicateDefinition(t *testing.T) {
	ctx := context.Background()

	eng, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close(ctx)

	store, err := eng.NewStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close(ctx)

	ln := store.NewLinker("env")
	noop := api.GoModuleFunc(func(context.Context, api.Module, []uint64) {})

	if err := ln.DefineFunc("get_conf", noop, nil, nil); err != nil {
		t.Fatalf("first DefineFunc: %v", err)
	}
	if err := ln.DefineFunc("get_conf", noop, nil, nil); err == nil {
		t.Fatal("expected error on duplicate definition")
	}
}

func TestLinkerRejectsBadEntries(t *testing.T) {
	ctx := context.Background()

	eng, err := New(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer eng.Close(ctx)

	store, err := eng.NewStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close(ctx)

	ln := store.NewLinker("env")
	noop := api.GoModuleFunc(func(context.Context, api.Module, []uint64) {})

	if err := ln.DefineFunc("", noop, nil, nil); err == nil {
		t.Error("expected error for empty name")
	}
	if err := ln.DefineFunc("ok", nil, nil, nil); err == nil {
		t.Error("expected error for nil callback")
	}
}
