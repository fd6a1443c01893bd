// Package errors provides the structured error types shared by the
// wasm-vm packages.
//
// Every failure carries a Phase (init, load, call) and a Kind that maps
// one-to-one onto the adapter's error taxonomy, so embedders can match
// with errors.Is against a (Phase, Kind) pair without parsing text.
package errors
