// Package hostapi describes the native functions a server exposes to
// its WebAssembly plugins.
//
// The embedder assembles a Registry — an ordered, immutable list of
// (name, signature, callback) entries — and passes it to vm.Load, which
// binds every entry under the "env" namespace before the guest is
// instantiated. Registries are plain values, not ambient state: several
// engines or test fixtures can hold independent registries in one
// process.
package hostapi
