// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package btf parses the kernel's BPF Type Format and resolves CO-RE
// relocations against it (spec.md §3 "BTF blob" / §4.6). No third-party BTF
// library is wired here: the pack's one BTF-capable dependency
// (cilium/ebpf) was dropped as a whole layer (see DESIGN.md), so this
// package is a direct encoding/binary reader over the documented wire
// format rather than a thin wrapper.
package btf

// Kind identifies a BTF type's category.
type Kind uint8

const (
	KindVoid Kind = iota
	KindInt
	KindPointer
	KindArray
	KindStruct
	KindUnion
	KindEnum
	KindForward
	KindTypedef
	KindVolatile
	KindConst
	KindRestrict
	KindFunc
	KindFuncProto
	KindVar
	KindDatasec
	KindFloat
	KindDeclTag
	KindTypeTag
	KindEnum64
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindPointer:
		return "ptr"
	case KindArray:
		return "array"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindForward:
		return "fwd"
	case KindTypedef:
		return "typedef"
	case KindVolatile:
		return "volatile"
	case KindConst:
		return "const"
	case KindRestrict:
		return "restrict"
	case KindFunc:
		return "func"
	case KindFuncProto:
		return "func_proto"
	case KindVar:
		return "var"
	case KindDatasec:
		return "datasec"
	case KindFloat:
		return "float"
	case KindDeclTag:
		return "decl_tag"
	case KindTypeTag:
		return "type_tag"
	case KindEnum64:
		return "enum64"
	default:
		return "unknown"
	}
}

// IntEncoding bits, from the kind-specific payload of a BTF_KIND_INT type.
const (
	IntSigned uint8 = 1 << 0
	IntChar   uint8 = 1 << 1
	IntBool   uint8 = 1 << 2
)
