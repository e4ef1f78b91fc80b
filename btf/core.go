// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package btf

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// RelocKind is a CO-RE relocation's kind (spec.md §3 "Relocation record").
type RelocKind int

const (
	RelocFieldByteOffset RelocKind = iota
	RelocFieldByteSize
	RelocFieldExists
	RelocFieldSigned
	RelocFieldLShiftU64
	RelocFieldRShiftU64
	RelocTypeIDLocal
	RelocTypeIDTarget
	RelocTypeExists
	RelocTypeSize
	RelocTypeMatches
	RelocEnumvalExists
	RelocEnumvalValue
)

// isExistenceQuery reports whether kind asks a yes/no question, which
// resolves to 0 rather than a poison value on failure (spec.md §4.6).
func (k RelocKind) isExistenceQuery() bool {
	switch k {
	case RelocFieldExists, RelocEnumvalExists, RelocTypeExists, RelocTypeMatches:
		return true
	default:
		return false
	}
}

// poisonSentinel is written into an unresolved instruction immediate so the
// verifier rejects the load deterministically (spec.md §4.6).
const poisonSentinel int32 = 0x0BAD2310

// Relocation describes one CO-RE site: the byte offset of the instruction
// whose immediate must be rewritten, the target type to resolve against,
// the access path, and the kind of question being asked.
type Relocation struct {
	InsnOffset int
	TargetID   uint32
	AccessPath string
	Kind       RelocKind
}

// accessResult is what resolving a whole access path yields.
type accessResult struct {
	byteOffset uint32
	byteSize   uint32
	signed     bool
	finalID    uint32
	exists     bool

	// rawBitOffset is the field's bit offset accumulated without the
	// truncation byteOffset applies per hop (spec.md §4.6 "Bitfield
	// relocations"); bitSize is the BTF member's actual bitfield width
	// (0 when the final hop did not select a bitfield member, i.e. the
	// field occupies its whole container). Used only by bitfieldShift.
	rawBitOffset uint64
	bitSize      uint8
}

// resolveAccessPath walks path (a ":"-separated sequence of member/element
// indices, e.g. "0:1:2") from rootID, per spec.md §4.6.
func (s *Spec) resolveAccessPath(rootID uint32, path string) (accessResult, error) {
	parts := strings.Split(path, ":")
	if len(parts) == 0 {
		return accessResult{}, ebpferr.New("resolveAccessPath", ebpferr.KindBTF, "empty access path", nil)
	}

	curID := rootID
	var byteOffset uint32
	var rawBitOffset uint64
	var bitSize uint8
	var last *Type

	for i, p := range parts {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return accessResult{}, ebpferr.New("resolveAccessPath", ebpferr.KindBTF, "malformed access path segment: "+p, err)
		}
		t := s.Resolve(s.ByID(curID))
		if t == nil {
			return accessResult{}, ebpferr.New("resolveAccessPath", ebpferr.KindBTF, "type id not found in access path", nil)
		}

		switch t.Kind {
		case KindStruct, KindUnion:
			if idx < 0 || idx >= len(t.Members) {
				return accessResult{}, ebpferr.New("resolveAccessPath", ebpferr.KindBTF, "member index out of range", nil)
			}
			m := t.Members[idx]
			byteOffset += m.BitOffset / 8
			rawBitOffset += uint64(m.BitOffset)
			bitSize = m.BitSize
			curID = m.TypeID
			last = t
			_ = i
		case KindArray:
			elem := s.ByID(t.ElemType)
			if elem == nil {
				return accessResult{}, ebpferr.New("resolveAccessPath", ebpferr.KindBTF, "array element type not found", nil)
			}
			elemSize, err := s.TypeSize(elem)
			if err != nil {
				return accessResult{}, err
			}
			byteOffset += uint32(idx) * elemSize
			rawBitOffset += uint64(idx) * uint64(elemSize) * 8
			bitSize = 0 // array elements are never bitfields
			curID = t.ElemType
			last = t
		default:
			if i == 0 {
				// A bare root with no member/element structure: the path
				// trivially selects the root itself.
				curID = rootID
				last = t
				continue
			}
			return accessResult{}, ebpferr.New("resolveAccessPath", ebpferr.KindBTF, "cannot index into kind "+t.Kind.String(), nil)
		}
	}

	final := s.Resolve(s.ByID(curID))
	if final == nil {
		return accessResult{}, ebpferr.New("resolveAccessPath", ebpferr.KindBTF, "final type in access path not found", nil)
	}
	size, err := s.TypeSize(final)
	if err != nil {
		return accessResult{}, err
	}
	_ = last
	return accessResult{
		byteOffset:   byteOffset,
		byteSize:     size,
		signed:       final.IsSigned(),
		finalID:      curID,
		exists:       true,
		rawBitOffset: rawBitOffset,
		bitSize:      bitSize,
	}, nil
}

// ApplyRelocation rewrites insns (a raw 8-byte-aligned instruction stream)
// in place at rel.InsnOffset. For wide (16-byte) LDDW instructions the
// immediate lives in the first cell's imm field (bytes 4-7), per spec.md
// §4.6.
func (s *Spec) ApplyRelocation(insns []byte, rel Relocation) error {
	if rel.InsnOffset+8 > len(insns) {
		return ebpferr.New("ApplyRelocation", ebpferr.KindRelocation, "relocation offset out of bounds", nil)
	}

	value, resolveErr := s.resolveRelocationValue(rel)
	if resolveErr != nil {
		if rel.Kind.isExistenceQuery() {
			value = 0
		} else {
			value = poisonSentinel
			binary.LittleEndian.PutUint32(insns[rel.InsnOffset+4:rel.InsnOffset+8], uint32(value))
			return ebpferr.New("ApplyRelocation", ebpferr.KindRelocation, "relocation unresolved, poisoned", resolveErr)
		}
	}
	binary.LittleEndian.PutUint32(insns[rel.InsnOffset+4:rel.InsnOffset+8], uint32(value))
	return nil
}

func (s *Spec) resolveRelocationValue(rel Relocation) (int32, error) {
	switch rel.Kind {
	case RelocTypeIDLocal:
		return int32(rel.TargetID), nil
	case RelocTypeIDTarget:
		t, err := s.TypeByName(typeNameFromPath(s, rel))
		if err != nil {
			return 0, err
		}
		return int32(t.ID), nil
	case RelocTypeExists:
		if s.ByID(rel.TargetID) != nil {
			return 1, nil
		}
		return 0, nil
	case RelocTypeSize:
		size, err := s.TypeSize(s.ByID(rel.TargetID))
		if err != nil {
			return 0, err
		}
		return int32(size), nil
	case RelocTypeMatches:
		if s.ByID(rel.TargetID) != nil {
			return 1, nil
		}
		return 0, nil
	case RelocEnumvalExists, RelocEnumvalValue:
		return s.resolveEnumval(rel)
	default:
		res, err := s.resolveAccessPath(rel.TargetID, rel.AccessPath)
		if err != nil {
			return 0, err
		}
		switch rel.Kind {
		case RelocFieldByteOffset:
			return int32(res.byteOffset), nil
		case RelocFieldByteSize:
			return int32(res.byteSize), nil
		case RelocFieldExists:
			return 1, nil
		case RelocFieldSigned:
			if res.signed {
				return 1, nil
			}
			return 0, nil
		case RelocFieldLShiftU64, RelocFieldRShiftU64:
			return bitfieldShift(rel.Kind, res.byteSize, res.rawBitOffset, res.bitSize)
		default:
			return 0, ebpferr.New("resolveRelocationValue", ebpferr.KindRelocation, "unknown relocation kind", nil)
		}
	}
}

// bitfieldShift computes the left/right shift amounts needed to extract a
// bitfield out of a 64-bit register holding a naturally-sized, zero-extended
// load (spec.md §4.6 "Bitfield relocations"). byteSize is the size of the
// field's declared container type (e.g. 4 for an `unsigned int x:3`);
// rawBitOffset is the field's bit offset from the access path's root,
// untruncated by byte division; bitSize is the member's actual bitfield
// width, or 0 when the field is not a bitfield (in which case it occupies
// its whole container and sits at offset 0 within it).
func bitfieldShift(kind RelocKind, byteSize uint32, rawBitOffset uint64, bitSize uint8) (int32, error) {
	containerBits := uint64(byteSize) * 8
	if containerBits == 0 || containerBits > 64 {
		return 0, ebpferr.New("bitfieldShift", ebpferr.KindRelocation, "implausible bitfield width", nil)
	}

	width := uint64(bitSize)
	if width == 0 {
		width = containerBits
	}

	// The container is the byteSize-aligned chunk that the field's bit
	// offset falls within; bitOff is the field's offset from that
	// container's start, not from the struct root.
	containerByteOff := (rawBitOffset / 8) / uint64(byteSize) * uint64(byteSize)
	bitOff := rawBitOffset - containerByteOff*8

	if bitOff+width > 64 {
		return 0, ebpferr.New("bitfieldShift", ebpferr.KindRelocation, "bitfield does not fit in a 64-bit register", nil)
	}

	if kind == RelocFieldLShiftU64 {
		return int32(64 - (bitOff + width)), nil
	}
	return int32(64 - width), nil
}

func (s *Spec) resolveEnumval(rel Relocation) (int32, error) {
	t := s.ByID(rel.TargetID)
	if t == nil || (t.Kind != KindEnum && t.Kind != KindEnum64) {
		if rel.Kind == RelocEnumvalExists {
			return 0, nil
		}
		return 0, ebpferr.New("resolveEnumval", ebpferr.KindRelocation, "target is not an enum", nil)
	}
	idx, err := strconv.Atoi(rel.AccessPath)
	if err != nil || idx < 0 || idx >= len(t.Values) {
		if rel.Kind == RelocEnumvalExists {
			return 0, nil
		}
		return 0, ebpferr.New("resolveEnumval", ebpferr.KindRelocation, "enum value index out of range", nil)
	}
	if rel.Kind == RelocEnumvalExists {
		return 1, nil
	}
	return int32(t.Values[idx].Value), nil
}

// typeNameFromPath is used by RelocTypeIDTarget, whose AccessPath carries
// the target-kernel type name to look up rather than a member path.
func typeNameFromPath(s *Spec, rel Relocation) string {
	return rel.AccessPath
}
