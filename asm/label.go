// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package asm

// Label is a symbolic jump target. Labels are a distinct sum-type member
// from Instruction in a Program's node list (spec.md §3, §9): the
// assembler's first pass records each Label's instruction-slot index and
// strips it from the emitted stream; it is never itself encoded to bytes.
type Label string

// Node is anything that may appear in a Program's instruction list: either
// an Instruction or a Label. Keeping labels out of the Instruction type
// itself means a Program can't accidentally "encode" a label, and the
// assembler can tell the two apart with a type switch instead of a sentinel
// field.
type Node interface {
	node()
}

func (Instruction) node() {}
func (Label) node()       {}
