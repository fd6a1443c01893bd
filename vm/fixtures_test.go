package vm

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasm-vm/wasm"
)

// noopHost is a host callback that does nothing.
var noopHost = api.GoModuleFunc(func(context.Context, api.Module, []uint64) {})

// countingHost returns a host callback recording invocation count and,
// when the pointers are non-nil, the two i32 arguments.
func countingHost(calls *int, a, b *int32) api.GoModuleFunc {
	return func(_ context.Context, _ api.Module, stack []uint64) {
		*calls++
		if a != nil && len(stack) > 0 {
			*a = api.DecodeI32(stack[0])
		}
		if b != nil && len(stack) > 1 {
			*b = api.DecodeI32(stack[1])
		}
	}
}

var (
	sigII2I = wasm.FuncType{
		Params:  []wasm.ValType{wasm.ValI32, wasm.ValI32},
		Results: []wasm.ValType{wasm.ValI32},
	}
	sigII = wasm.FuncType{Params: []wasm.ValType{wasm.ValI32, wasm.ValI32}}
	sigV  = wasm.FuncType{}
	sigI  = wasm.FuncType{Results: []wasm.ValType{wasm.ValI32}}
	sigL  = wasm.FuncType{Results: []wasm.ValType{wasm.ValI64}}
)

// arithModule exports add(i32,i32)->i32 and boom()->() which traps.
func arithModule(t *testing.T) []byte {
	t.Helper()
	b := wasm.NewBuilder()
	add := b.Func(sigII2I, []byte{wasm.OpLocalGet, 0, wasm.OpLocalGet, 1, wasm.OpI32Add, wasm.OpEnd})
	b.Export("add", add)
	boom := b.Func(sigV, []byte{wasm.OpUnreachable, wasm.OpEnd})
	b.Export("boom", boom)
	return b.Build()
}

// hostCallModule imports env.host_log(i32,i32) and exports
// on_request()->() invoking it with (7, 9), plus answer()->i32
// returning 42 and big()->i64 returning 1.
func hostCallModule(t *testing.T) []byte {
	t.Helper()
	b := wasm.NewBuilder()
	log := b.Import("env", "host_log", sigII)

	onReq := b.Func(sigV, []byte{
		wasm.OpI32Const, 7,
		wasm.OpI32Const, 9,
		wasm.OpCall, byte(log),
		wasm.OpEnd,
	})
	b.Export("on_request", onReq)

	answer := b.Func(sigI, []byte{wasm.OpI32Const, 42, wasm.OpEnd})
	b.Export("answer", answer)

	big := b.Func(sigL, []byte{wasm.OpI64Const, 1, wasm.OpEnd})
	b.Export("big", big)

	return b.Build()
}

// startTrapModule exports a _start that hits unreachable during
// instantiation.
func startTrapModule(t *testing.T) []byte {
	t.Helper()
	b := wasm.NewBuilder()
	start := b.Func(sigV, []byte{wasm.OpUnreachable, wasm.OpEnd})
	b.Export("_start", start)
	return b.Build()
}

// missingImportModule imports env.absent, which no registry provides.
func missingImportModule(t *testing.T) []byte {
	t.Helper()
	b := wasm.NewBuilder()
	b.Import("env", "absent", sigV)
	return b.Build()
}
