// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package progtype builds per-attach-type prologues, epilogues, section
// names and context layouts (spec.md §4.3, component C5): one file per
// attach-type family, each exposing the context's byte-offset table, a
// Prologue that sets up r1/data pointers the way the kernel's own
// convention expects, an Epilogue that sets r0 to a documented return value
// and emits EXIT, a SectionName formatter matching libbpf's naming
// convention, a Helpers list for a fast local lint pass (the verifier
// remains the ground truth), and a ContextSize used by this package's own
// tests to assert a prologue never reads past the context struct.
package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
)

// epilogue is the prologue/epilogue pair every program-type module shares:
// move the return value into r0 and emit EXIT (spec.md §4.3 "sets r0 to a
// well-defined return value and emits EXIT").
func epilogue(ret int32) []asm.Node {
	return []asm.Node{asm.MovImm64(asm.R0, ret), asm.Exit()}
}

// saveCtx copies the incoming context pointer (always delivered in r1) into
// a callee-saved register, the standard opening move of nearly every
// program-type prologue in this package (spec.md §4.3 "typically saves the
// context pointer r1 to a callee-saved register").
func saveCtx(dst asm.Reg) asm.Instruction {
	return asm.MovReg64(dst, asm.R1)
}
