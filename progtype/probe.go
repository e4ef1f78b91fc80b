// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"fmt"

	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/helpers"
	"github.com/tetrabpf/goebpf/internal/arch"
)

// Probe is the shared module for kprobe/kretprobe/uprobe/uretprobe
// programs: all four receive a struct pt_regs pointer as ctx and read
// arguments/the return value through spec.md §4.3's arch-specific offset
// table.
type Probe struct {
	Arch arch.Arch
}

// NewProbe resolves the host architecture once via arch.Detect, per
// spec.md §9 ("Arch tables ... detect at runtime once. Do not hardcode
// x86_64."). Callers cross-building for a different target construct
// Probe{Arch: ...} directly instead.
func NewProbe() Probe { return Probe{Arch: arch.Detect()} }

// ContextSize is unset (0): struct pt_regs's size is itself
// arch-dependent and this module never reads past the handful of
// documented argument/return offsets, so there is no single extent to
// assert against.
func (Probe) ContextSize() int { return 0 }

// KprobeSection formats "kprobe/<symbol>" or "kretprobe/<symbol>".
func KprobeSection(symbol string, retprobe bool) string {
	if retprobe {
		return "kretprobe/" + symbol
	}
	return "kprobe/" + symbol
}

// UprobeSection formats "uprobe/<lib>:<symbol>" or "uretprobe/<lib>:<symbol>".
func UprobeSection(lib, symbol string, retprobe bool) string {
	prefix := "uprobe"
	if retprobe {
		prefix = "uretprobe"
	}
	return fmt.Sprintf("%s/%s:%s", prefix, lib, symbol)
}

// Helpers lists the subset of the catalog most probe programs reach for.
func (Probe) Helpers() []helpers.ID {
	return []helpers.ID{
		helpers.ProbeRead, helpers.ProbeReadStr, helpers.ProbeReadUser, helpers.ProbeReadUserStr,
		helpers.ProbeReadKernel, helpers.ProbeReadKernelStr, helpers.GetCurrentPIDTGID,
		helpers.GetCurrentUIDGID, helpers.GetCurrentComm, helpers.KtimeGetNS, helpers.PerfEventOutput,
		helpers.GetStackID, helpers.GetStack,
	}
}

// Prologue copies the ctx pointer into ctxReg.
func (Probe) Prologue(ctxReg asm.Reg) []asm.Node {
	return []asm.Node{saveCtx(ctxReg)}
}

// Epilogue sets r0 to ret and exits.
func (Probe) Epilogue(ret int32) []asm.Node { return epilogue(ret) }

// LoadArg emits a load of argument n (0-based, 0..5) off the pt_regs
// context in ctxReg into dst, using the arch's documented offset
// (spec.md §4.3).
func (p Probe) LoadArg(dst, ctxReg asm.Reg, n int) ([]asm.Node, error) {
	if n < 0 || n > 5 {
		return nil, ebpferr.New("Probe.LoadArg", ebpferr.KindEncoding, fmt.Sprintf("argument index %d out of range", n), nil)
	}
	t, ok := arch.Table(p.Arch)
	if !ok {
		return nil, ebpferr.New("Probe.LoadArg", ebpferr.KindEncoding, "no pt_regs table for arch "+p.Arch.String(), nil)
	}
	return []asm.Node{asm.LoadMemDW(dst, ctxReg, int16(t.Arg[n]))}, nil
}

// LoadRet emits a load of the probe's return-value register, meaningful
// only in a kretprobe/uretprobe context.
func (p Probe) LoadRet(dst, ctxReg asm.Reg) ([]asm.Node, error) {
	t, ok := arch.Table(p.Arch)
	if !ok {
		return nil, ebpferr.New("Probe.LoadRet", ebpferr.KindEncoding, "no pt_regs table for arch "+p.Arch.String(), nil)
	}
	return []asm.Node{asm.LoadMemDW(dst, ctxReg, int16(t.Ret))}, nil
}
