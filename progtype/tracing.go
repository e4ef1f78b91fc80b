// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// Tracing is the module for the fentry/fexit/fmod_ret family of
// BPF_PROG_TYPE_TRACING programs. Unlike kprobes, these attach directly to
// a BTF-described kernel (or another BPF program's) function and receive
// its actual typed arguments packed into context registers, which is why
// loading one requires an AttachBTFID naming the target function
// (spec.md §4.3/§4.10).
type Tracing struct{}

// FentrySection formats "fentry/<target>".
func FentrySection(target string) string { return "fentry/" + target }

// FexitSection formats "fexit/<target>". An fexit program's context
// additionally carries the target's return value as its final argument.
func FexitSection(target string) string { return "fexit/" + target }

// FmodRetSection formats "fmod_ret/<target>". The program's return value
// overrides the target's own return value when non-zero.
func FmodRetSection(target string) string { return "fmod_ret/" + target }

// ContextSize is unset: the argument layout is the target function's own
// signature, resolved from BTF at load time rather than fixed here.
func (Tracing) ContextSize() int { return 0 }

func (Tracing) Helpers() []helpers.ID {
	return []helpers.ID{
		helpers.GetFuncIP, helpers.GetFuncArgCnt, helpers.GetFuncArg, helpers.GetFuncRet,
		helpers.GetCurrentPIDTGID, helpers.ProbeReadKernel,
	}
}

// LoadArg loads target argument n from ctxReg into dst; the same
// bpf_trampoline calling convention as fentry/fexit (spec.md §4.3).
func (Tracing) LoadArg(dst, ctxReg asm.Reg, n int) []asm.Node {
	return []asm.Node{asm.LoadMemDW(dst, ctxReg, int16(n*8))}
}

func (Tracing) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }

// Epilogue sets r0 to ret and exits. For fmod_ret, a nonzero ret replaces
// the target function's own return value; for fentry, ret is conventionally 0.
func (Tracing) Epilogue(ret int32) []asm.Node { return epilogue(ret) }
