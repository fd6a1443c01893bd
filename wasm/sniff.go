package wasm

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Sniff performs a cheap structural check of a core module binary:
// magic number, version, section IDs in non-decreasing order and section
// payloads within bounds. It deliberately does not decode section
// contents; deep validation is the VM's job during compilation.
//
// Sniff exists so obviously malformed bytecode can be rejected before
// any execution store is allocated for it.
func Sniff(b []byte) error {
	if len(b) < 8 {
		return fmt.Errorf("truncated header: %d bytes", len(b))
	}
	if magic := binary.LittleEndian.Uint32(b); magic != Magic {
		return fmt.Errorf("invalid magic number: %#x", magic)
	}
	if version := binary.LittleEndian.Uint32(b[4:]); version != Version {
		return fmt.Errorf("unsupported binary version: %d", version)
	}

	r := bytes.NewReader(b[8:])
	var last int
	for r.Len() > 0 {
		id, err := r.ReadByte()
		if err != nil {
			return fmt.Errorf("read section id: %w", err)
		}
		if id > sectionMax {
			return fmt.Errorf("unknown section id: %d", id)
		}
		if id != SectionCustom {
			rank := sectionRank(id)
			if rank <= last {
				return fmt.Errorf("section %d out of order", id)
			}
			last = rank
		}

		size, err := ReadUint(r)
		if err != nil {
			return fmt.Errorf("read section %d size: %w", id, err)
		}
		if uint32(r.Len()) < size {
			return fmt.Errorf("section %d truncated: need %d bytes, have %d", id, size, r.Len())
		}
		if _, err := r.Seek(int64(size), 1); err != nil {
			return fmt.Errorf("skip section %d: %w", id, err)
		}
	}

	return nil
}

// sectionRank maps a section ID to its required position. The data count
// section sits between element and code, so IDs alone are not ordered.
func sectionRank(id byte) int {
	switch id {
	case SectionDataCount:
		return int(SectionElement) + 1
	case SectionCode:
		return int(SectionElement) + 2
	case SectionData:
		return int(SectionElement) + 3
	default:
		return int(id)
	}
}
