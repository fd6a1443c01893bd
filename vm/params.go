package vm

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasm-vm/errors"
)

// shape tags the closed set of supported calling-convention shapes.
type shape uint8

const (
	shapeInvalid shape = iota
	shapeVoid
	shapeI32Pair
)

// Params is the tagged description of an export's argument list. The
// set of shapes is deliberately closed: construct values only with
// Void or I32Pair, and add a new constructor when a new shape is
// needed. The zero value is invalid and fails the call before anything
// is invoked.
type Params struct {
	shape shape
	a, b  int32
}

// Void describes a call taking no arguments.
func Void() Params {
	return Params{shape: shapeVoid}
}

// I32Pair describes a call taking exactly two 32-bit integers.
func I32Pair(a, b int32) Params {
	return Params{shape: shapeI32Pair, a: a, b: b}
}

// marshal converts the parameters into VM-native value slots.
func (p Params) marshal() ([]uint64, error) {
	switch p.shape {
	case shapeVoid:
		return nil, nil
	case shapeI32Pair:
		return []uint64{api.EncodeI32(p.a), api.EncodeI32(p.b)}, nil
	default:
		return nil, errors.UnsupportedShape(uint8(p.shape))
	}
}
