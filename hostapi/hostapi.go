package hostapi

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// Namespace is the import namespace guests use to reach host functions.
const Namespace = "env"

// Signature describes a host function's wasm-level calling convention.
type Signature struct {
	Params  []api.ValueType
	Results []api.ValueType
}

// SigI32I32 is the signature shared by most pointer+length style host
// functions: two i32 parameters, no result.
func SigI32I32() Signature {
	return Signature{Params: []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}}
}

// SigI32I32RetI32 is SigI32I32 with an i32 status result.
func SigI32I32RetI32() Signature {
	return Signature{
		Params:  []api.ValueType{api.ValueTypeI32, api.ValueTypeI32},
		Results: []api.ValueType{api.ValueTypeI32},
	}
}

// Entry is one immutable (name, signature, callback) triple. The
// callback runs synchronously on the goroutine executing the guest,
// so it must not block indefinitely.
type Entry struct {
	Name string
	Sig  Signature
	Func api.GoModuleFunc
}

// Registry is the ordered list of host functions offered to one load.
// Order is preserved: entries are defined into the linker exactly as
// supplied, so a duplicate name fails on the second occurrence.
type Registry struct {
	entries []Entry
}

// NewRegistry builds a registry from entries, validating each one.
// Duplicate names are accepted here and rejected at link time, where
// the failing entry can be reported in registry order.
func NewRegistry(entries ...Entry) (*Registry, error) {
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: empty name", i)
		}
		if e.Func == nil {
			return nil, fmt.Errorf("entry %d (%q): nil callback", i, e.Name)
		}
	}
	r := &Registry{entries: make([]Entry, len(entries))}
	copy(r.entries, entries)
	return r, nil
}

// Entries returns the registry's entries in registration order. The
// returned slice must not be mutated.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	return r.entries
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
