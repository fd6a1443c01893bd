// Package engine wraps the wazero runtime behind the adapter's
// lifecycle model: a process-wide Engine that owns the compilation
// cache, per-plugin Stores that isolate execution state, and a Linker
// that binds host functions into a store before the guest is
// instantiated.
package engine
