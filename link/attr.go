// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package link implements the XDP/TC netlink attach plane and the
// kprobe/uprobe/tracepoint/perf attach plane (spec.md §4.8, component C10).
package link

import "encoding/binary"

// NLAFNested must be set on a netlink attribute's type field when its
// payload is itself a sequence of attributes (spec.md §4.8/§6): "the
// nested attribute's type MUST have NLA_F_NESTED (0x8000) set".
const NLAFNested uint16 = 0x8000

// align4 rounds n up to the next multiple of 4 -- netlink attribute
// payloads are padded to 4 bytes even though the encoded length field
// excludes the padding (spec.md §6 "Netlink attribute").
func align4(n int) int {
	return (n + 3) &^ 3
}

// attr encodes one netlink attribute: a 4-byte header (u16 len, u16 type)
// followed by payload padded to a 4-byte boundary.
func attr(typ uint16, payload []byte) []byte {
	length := 4 + len(payload)
	buf := make([]byte, align4(length))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(length))
	binary.LittleEndian.PutUint16(buf[2:4], typ)
	copy(buf[4:], payload)
	return buf
}

func attrU8(typ uint16, v uint8) []byte   { return attr(typ, []byte{v}) }
func attrU32(typ uint16, v uint32) []byte {
	p := make([]byte, 4)
	binary.LittleEndian.PutUint32(p, v)
	return attr(typ, p)
}
func attrI32(typ uint16, v int32) []byte { return attrU32(typ, uint32(v)) }
func attrString(typ uint16, s string) []byte {
	return attr(typ, append([]byte(s), 0))
}

// nestedAttr encodes typ|NLAFNested wrapping the concatenation of children.
func nestedAttr(typ uint16, children ...[]byte) []byte {
	var payload []byte
	for _, c := range children {
		payload = append(payload, c...)
	}
	return attr(typ|NLAFNested, payload)
}
