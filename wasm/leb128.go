package wasm

import (
	"errors"
	"io"
)

// LEB128 encoding/decoding utilities for the WebAssembly binary format

// ErrOverflow is returned when a LEB128 value exceeds the maximum bit width.
var ErrOverflow = errors.New("leb128: overflow")

// ReadUint reads an unsigned 32-bit LEB128 value
func ReadUint(r io.ByteReader) (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		// The fifth byte may only carry bits 28..31; anything in its
		// high nibble, value or continuation, exceeds 32 bits.
		if shift == 28 && b&0xF0 != 0 {
			return 0, ErrOverflow
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// AppendUint appends an unsigned 32-bit LEB128 value to dst
func AppendUint(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// AppendInt appends a signed 32-bit LEB128 value to dst
func AppendInt(dst []byte, v int32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}
