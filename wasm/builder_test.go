package wasm

import (
	"bytes"
	"testing"
)

// TestBuilderAddModule checks the builder against the canonical hand-assembled
// encoding of a two-argument add function.
func TestBuilderAddModule(t *testing.T) {
	b := NewBuilder()
	sig := FuncType{Params: []ValType{ValI32, ValI32}, Results: []ValType{ValI32}}
	idx := b.Func(sig, []byte{OpLocalGet, 0, OpLocalGet, 1, OpI32Add, OpEnd})
	b.Export("add", idx)

	want := []byte{
		0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00, // header
		0x01, 0x07, 0x01, 0x60, 0x02, 0x7F, 0x7F, 0x01, 0x7F, // type (i32,i32)->i32
		0x03, 0x02, 0x01, 0x00, // function section
		0x07, 0x07, 0x01, 0x03, 'a', 'd', 'd', 0x00, 0x00, // export "add"
		0x0A, 0x09, 0x01, 0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x6A, 0x0B, // code
	}

	if got := b.Build(); !bytes.Equal(got, want) {
		t.Errorf("Build() =\n%x\nwant\n%x", got, want)
	}
}

func TestBuilderImportIndices(t *testing.T) {
	b := NewBuilder()
	logSig := FuncType{Params: []ValType{ValI32, ValI32}}

	imp := b.Import("env", "host_log", logSig)
	if imp != 0 {
		t.Fatalf("first import index = %d, want 0", imp)
	}

	fn := b.Func(FuncType{}, []byte{OpI32Const, 7, OpI32Const, 9, OpCall, 0x00, OpEnd})
	if fn != 1 {
		t.Fatalf("first local function index = %d, want 1 (after imports)", fn)
	}
	b.Export("on_tick", fn)

	out := b.Build()
	if err := Sniff(out); err != nil {
		t.Fatalf("Sniff: %v", err)
	}

	// import section: count=1, "env", "host_log", kind func, type index 0
	wantImport := []byte{
		SectionImport, 0x10,
		0x01,
		0x03, 'e', 'n', 'v',
		0x08, 'h', 'o', 's', 't', '_', 'l', 'o', 'g',
		KindFunc, 0x00,
	}
	if !bytes.Contains(out, wantImport) {
		t.Errorf("import section missing or malformed in %x", out)
	}
}

func TestBuilderTypeInterning(t *testing.T) {
	b := NewBuilder()
	sig := FuncType{Params: []ValType{ValI32, ValI32}, Results: []ValType{ValI32}}

	b.Func(sig, []byte{OpLocalGet, 0, OpLocalGet, 1, OpI32Add, OpEnd})
	b.Func(sig, []byte{OpLocalGet, 0, OpLocalGet, 1, OpI32Sub, OpEnd})
	b.Func(FuncType{}, []byte{OpNop, OpEnd})

	if len(b.types) != 2 {
		t.Errorf("expected 2 interned types, got %d", len(b.types))
	}
}

func TestBuilderEmptyModule(t *testing.T) {
	out := NewBuilder().Build()
	if len(out) != 8 {
		t.Errorf("empty module should be header only, got %d bytes", len(out))
	}
	if err := Sniff(out); err != nil {
		t.Errorf("Sniff: %v", err)
	}
}
