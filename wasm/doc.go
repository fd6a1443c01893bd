// Package wasm provides the small slice of the WebAssembly core binary
// format the adapter needs: LEB128 encoding, section and opcode
// constants, a cheap structural sniff run before any VM resources are
// allocated, and a builder for constructing small core modules in tests
// and tooling.
//
// It is deliberately not a decoder or validator for full modules; deep
// validation belongs to the embedded VM.
package wasm
