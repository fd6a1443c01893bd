package wasm

import "encoding/binary"

// FuncType is a function signature in the type section.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

type funcImport struct {
	module  string
	name    string
	typeIdx uint32
}

type funcDef struct {
	typeIdx uint32
	body    []byte
}

type funcExport struct {
	name    string
	funcIdx uint32
}

// Builder constructs small core module binaries. It covers exactly the
// sections the adapter's tests and tooling need: types, function
// imports, functions, exports and code. Function bodies are raw
// instruction bytes ending with OpEnd; no locals are declared.
//
// Imported functions occupy the low function indices, so Import calls
// must precede Func calls that reference them by index.
type Builder struct {
	types   []FuncType
	imports []funcImport
	funcs   []funcDef
	exports []funcExport
}

func NewBuilder() *Builder {
	return &Builder{}
}

// addType interns a signature and returns its type index.
func (b *Builder) addType(t FuncType) uint32 {
	for i, existing := range b.types {
		if typesEqual(existing, t) {
			return uint32(i)
		}
	}
	b.types = append(b.types, t)
	return uint32(len(b.types) - 1)
}

func typesEqual(a, b FuncType) bool {
	if len(a.Params) != len(b.Params) || len(a.Results) != len(b.Results) {
		return false
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			return false
		}
	}
	for i := range a.Results {
		if a.Results[i] != b.Results[i] {
			return false
		}
	}
	return true
}

// Import declares a function import and returns its function index.
func (b *Builder) Import(module, name string, t FuncType) uint32 {
	b.imports = append(b.imports, funcImport{
		module:  module,
		name:    name,
		typeIdx: b.addType(t),
	})
	return uint32(len(b.imports) - 1)
}

// Func declares a module-local function with the given raw body and
// returns its function index.
func (b *Builder) Func(t FuncType, body []byte) uint32 {
	b.funcs = append(b.funcs, funcDef{
		typeIdx: b.addType(t),
		body:    body,
	})
	return uint32(len(b.imports) + len(b.funcs) - 1)
}

// Export exports the function at funcIdx under name.
func (b *Builder) Export(name string, funcIdx uint32) {
	b.exports = append(b.exports, funcExport{name: name, funcIdx: funcIdx})
}

// Build encodes the module to WebAssembly binary format.
func (b *Builder) Build() []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint32(out, Magic)
	binary.LittleEndian.PutUint32(out[4:], Version)

	if len(b.types) > 0 {
		sec := AppendUint(nil, uint32(len(b.types)))
		for _, t := range b.types {
			sec = append(sec, FuncTypeByte)
			sec = appendValTypes(sec, t.Params)
			sec = appendValTypes(sec, t.Results)
		}
		out = appendSection(out, SectionType, sec)
	}

	if len(b.imports) > 0 {
		sec := AppendUint(nil, uint32(len(b.imports)))
		for _, imp := range b.imports {
			sec = appendName(sec, imp.module)
			sec = appendName(sec, imp.name)
			sec = append(sec, KindFunc)
			sec = AppendUint(sec, imp.typeIdx)
		}
		out = appendSection(out, SectionImport, sec)
	}

	if len(b.funcs) > 0 {
		sec := AppendUint(nil, uint32(len(b.funcs)))
		for _, fn := range b.funcs {
			sec = AppendUint(sec, fn.typeIdx)
		}
		out = appendSection(out, SectionFunction, sec)
	}

	if len(b.exports) > 0 {
		sec := AppendUint(nil, uint32(len(b.exports)))
		for _, exp := range b.exports {
			sec = appendName(sec, exp.name)
			sec = append(sec, KindFunc)
			sec = AppendUint(sec, exp.funcIdx)
		}
		out = appendSection(out, SectionExport, sec)
	}

	if len(b.funcs) > 0 {
		sec := AppendUint(nil, uint32(len(b.funcs)))
		for _, fn := range b.funcs {
			// body size covers the local declaration count plus instructions
			sec = AppendUint(sec, uint32(len(fn.body))+1)
			sec = append(sec, 0) // no locals
			sec = append(sec, fn.body...)
		}
		out = appendSection(out, SectionCode, sec)
	}

	return out
}

func appendValTypes(dst []byte, types []ValType) []byte {
	dst = AppendUint(dst, uint32(len(types)))
	for _, t := range types {
		dst = append(dst, byte(t))
	}
	return dst
}

func appendName(dst []byte, name string) []byte {
	dst = AppendUint(dst, uint32(len(name)))
	return append(dst, name...)
}

func appendSection(dst []byte, id byte, payload []byte) []byte {
	dst = append(dst, id)
	dst = AppendUint(dst, uint32(len(payload)))
	return append(dst, payload...)
}
