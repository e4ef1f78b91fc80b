// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// PerfEventContext is bpf_perf_event_data's prefix: pt_regs (arch-sized,
// opaque to this module) followed by the sample period and address.
type PerfEventContext struct {
	SampleEfficientOffset int16 // start of the trailing fields, after the arch pt_regs
}

// PerfEvent is the module for BPF_PROG_TYPE_PERF_EVENT programs, attached
// via perf_event_open with a sampling or hardware/software counter config
// rather than a probe point (spec.md §4.3).
type PerfEvent struct{}

func (PerfEvent) SectionName() string { return "perf_event" }

// ContextSize is unset: bpf_perf_event_data embeds an arch-sized pt_regs.
func (PerfEvent) ContextSize() int { return 0 }

func (PerfEvent) Helpers() []helpers.ID {
	return []helpers.ID{
		helpers.PerfEventOutput, helpers.PerfEventReadValue, helpers.GetStackID,
		helpers.GetStack, helpers.GetCurrentPIDTGID, helpers.GetCurrentComm,
	}
}

func (PerfEvent) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }
func (PerfEvent) Epilogue(ret int32) []asm.Node      { return epilogue(ret) }
