// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// Iterator is the module for BPF_PROG_TYPE_TRACING programs with
// ExpectedAttachType AttachTraceIter: the kernel invokes the program once
// per element of whatever it is iterating (tasks, map entries, sockets,
// ...) plus one final call with a nil element to signal end-of-sequence,
// and a seq_file-style "meta" pointer is always the first context word
// (spec.md §4.3).
type Iterator struct{}

// IterSection formats "iter/<target>" (e.g. "iter/task", "iter/bpf_map_elem").
func IterSection(target string) string { return "iter/" + target }

// ContextSize is unset: the trailing fields of bpf_iter__<target> are
// target-specific; only the leading bpf_iter_meta pointer is common.
func (Iterator) ContextSize() int { return 0 }

func (Iterator) Helpers() []helpers.ID {
	return []helpers.ID{helpers.SeqPrintf, helpers.SeqWrite, helpers.MapLookupElem}
}

func (Iterator) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }

// Epilogue sets r0 to one of the root package's IterContinue/IterStop
// constants and exits.
func (Iterator) Epilogue(ret int32) []asm.Node { return epilogue(ret) }
