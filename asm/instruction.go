// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package asm

import (
	"encoding/binary"
	"fmt"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// Instruction is one 8-byte eBPF instruction record, or — when wide is
// non-nil — the first half of a 16-byte LDDW-form instruction whose second
// cell carries the high 32 bits of a 64-bit immediate (spec.md §3
// "Instruction").
type Instruction struct {
	OpCode uint8
	Dst    Reg
	Src    Reg
	Off    int16
	Imm    int32

	// wide holds the full 64-bit immediate for LD_IMM64/LD_MAP_FD forms.
	// Encode emits 16 bytes when this is set: Imm carries the low 32 bits
	// (kept in sync by the constructors below) and the second cell's imm
	// carries the high 32 bits, per spec.md's "Instruction" data model.
	wide *uint64

	// target is set by label-taking builders (Jump*To) and consumed by the
	// assembler's second pass to compute Off; it is never itself encoded.
	target Label

	// CoreID names a RelocationRecord this instruction's immediate should
	// be treated as a target for during CO-RE rewriting (btf package); zero
	// value means "not a CO-RE site".
	CoreID int
}

// IsWide reports whether this instruction encodes to 16 bytes.
func (i Instruction) IsWide() bool { return i.wide != nil }

// Imm64 returns the full 64-bit immediate of a wide instruction, or 0/false
// for a normal 8-byte one.
func (i Instruction) Imm64() (uint64, bool) {
	if i.wide == nil {
		return 0, false
	}
	return *i.wide, true
}

// Target returns the label this instruction jumps to, if it was built with
// one of the label-taking jump constructors.
func (i Instruction) Target() (Label, bool) {
	if i.target == "" {
		return "", false
	}
	return i.target, true
}

// WithTarget returns a copy of i with its jump target set to l; used
// internally by the jump builders and by callers wiring up forward
// references by hand.
func (i Instruction) WithTarget(l Label) Instruction {
	i.target = l
	return i
}

// Encode serializes the instruction to 8 (or 16 for a wide instruction)
// little-endian bytes: byte0 opcode, byte1 (src<<4)|dst, bytes2-3 off,
// bytes4-7 imm. Register operands out of [0,10], an immediate overflowing
// signed 32 bits, or an offset overflowing signed 16 bits all fail with a
// KindEncoding error.
func (i Instruction) Encode() ([]byte, error) {
	if !i.Dst.valid() {
		return nil, ebpferr.New("asm.Encode", ebpferr.KindEncoding, fmt.Sprintf("dst register %d out of range", i.Dst), nil)
	}
	if !i.Src.valid() {
		return nil, ebpferr.New("asm.Encode", ebpferr.KindEncoding, fmt.Sprintf("src register %d out of range", i.Src), nil)
	}

	buf := make([]byte, 8)
	buf[0] = i.OpCode
	buf[1] = (uint8(i.Src) << 4) | uint8(i.Dst)
	binary.LittleEndian.PutUint16(buf[2:4], uint16(i.Off))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(i.Imm))

	if i.wide == nil {
		return buf, nil
	}

	hi := uint32(*i.wide >> 32)
	second := make([]byte, 8)
	binary.LittleEndian.PutUint32(second[4:8], hi)
	return append(buf, second...), nil
}

// size reports how many instruction "slots" (8-byte cells) this node
// occupies: 2 for a wide instruction, 1 otherwise. Used by the assembler's
// first pass to compute label positions and jump distances.
func (i Instruction) size() int {
	if i.wide != nil {
		return 2
	}
	return 1
}

// checkOff16 validates that v fits in a signed 16-bit offset.
func checkOff16(op string, v int64) error {
	if v < -(1<<15) || v > (1<<15)-1 {
		return ebpferr.New(op, ebpferr.KindEncoding, fmt.Sprintf("offset %d overflows int16", v), nil)
	}
	return nil
}
