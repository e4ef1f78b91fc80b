// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package btf

// Member is one field of a STRUCT/UNION type.
type Member struct {
	Name       string
	TypeID     uint32
	BitOffset  uint32 // byte offset == BitOffset/8 for non-bitfields
	BitSize    uint8  // 0 for non-bitfield members
}

// EnumValue is one value of an ENUM/ENUM64 type.
type EnumValue struct {
	Name  string
	Value int64
}

// Param is one FUNC_PROTO argument.
type Param struct {
	Name   string
	TypeID uint32
}

// Type is a single decoded BTF type record. Not every field is populated
// for every Kind; see the kind-specific comment on each.
type Type struct {
	ID   uint32
	Kind Kind
	Name string

	// INT
	IntBits     uint8
	IntOffset   uint8
	IntEncoding uint8

	// PTR, TYPEDEF, VOLATILE, CONST, RESTRICT, FUNC, TYPE_TAG: the
	// referenced type.
	Ref uint32

	// INT, FLOAT, STRUCT, UNION, ENUM, ENUM64, DATASEC: explicit byte
	// size from the type record (0 for other kinds; see Spec.TypeSize).
	Size uint32

	// STRUCT, UNION
	Members []Member

	// ARRAY
	ElemType  uint32
	IndexType uint32
	NumElems  uint32

	// ENUM, ENUM64
	Values []EnumValue

	// FUNC_PROTO
	Params []Param

	// FWD
	IsUnionForward bool

	// VAR
	Linkage uint32
}

// IsSigned reports whether an INT type's encoding has the signed bit set.
func (t *Type) IsSigned() bool {
	return t.Kind == KindInt && t.IntEncoding&IntSigned != 0
}
