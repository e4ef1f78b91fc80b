// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// Tracepoint is the module for BPF_PROG_TYPE_TRACEPOINT programs, whose
// context is the tracepoint's own format-specific struct (its layout comes
// from /sys/kernel/debug/tracing/events/<cat>/<name>/format, not a fixed
// kernel struct, so this module carries no offset table of its own —
// callers that need field offsets build one from that file the same way
// they would for any other BTF-less struct).
type Tracepoint struct{}

// TracepointSection formats "tracepoint/<category>/<name>".
func TracepointSection(category, name string) string {
	return "tracepoint/" + category + "/" + name
}

// ContextSize is unset: the tracepoint argument struct's size is
// event-specific.
func (Tracepoint) ContextSize() int { return 0 }

func (Tracepoint) Helpers() []helpers.ID {
	return []helpers.ID{
		helpers.ProbeRead, helpers.GetCurrentPIDTGID, helpers.GetCurrentComm,
		helpers.KtimeGetNS, helpers.PerfEventOutput, helpers.GetStackID,
	}
}

func (Tracepoint) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }
func (Tracepoint) Epilogue(ret int32) []asm.Node      { return epilogue(ret) }

// RawTracepoint is the module for BPF_PROG_TYPE_RAW_TRACEPOINT programs,
// whose context is a bpf_raw_tracepoint_args: an array of u64 values taken
// directly from the tracepoint's raw argument list, bypassing the
// perf-trace-event format layer entirely.
type RawTracepoint struct{}

// RawTracepointSection formats "raw_tracepoint/<name>".
func RawTracepointSection(name string) string { return "raw_tracepoint/" + name }

func (RawTracepoint) ContextSize() int { return 0 }

func (RawTracepoint) Helpers() []helpers.ID {
	return []helpers.ID{helpers.ProbeRead, helpers.GetCurrentPIDTGID, helpers.PerfEventOutput}
}

// LoadArg loads raw tracepoint argument n (bpf_raw_tracepoint_args.args[n])
// from ctxReg into dst.
func (RawTracepoint) LoadArg(dst, ctxReg asm.Reg, n int) []asm.Node {
	return []asm.Node{asm.LoadMemDW(dst, ctxReg, int16(n*8))}
}

func (RawTracepoint) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }
func (RawTracepoint) Epilogue(ret int32) []asm.Node      { return epilogue(ret) }
