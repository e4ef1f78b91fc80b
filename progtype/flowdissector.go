// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// FlowDissectorContext is the byte-offset table for struct
// bpf_flow_dissector, the kernel's generic packet-flow-key extraction hook
// (spec.md §4.3). A flow dissector program fills in flow_keys and reports
// whether it found an answer via the return value.
type FlowDissectorContext struct {
	Data     int16
	DataEnd  int16
	FlowKeys int16
}

// FlowDissectorCtx is the kernel's documented struct bpf_flow_dissector
// layout.
var FlowDissectorCtx = FlowDissectorContext{Data: 0, DataEnd: 8, FlowKeys: 16}

// FlowDissector is the module for BPF_PROG_TYPE_FLOW_DISSECTOR programs,
// attached net-namespace-wide rather than to a single interface.
type FlowDissector struct{}

func (FlowDissector) SectionName() string { return "flow_dissector" }
func (FlowDissector) ContextSize() int    { return 24 }

func (FlowDissector) Helpers() []helpers.ID {
	return []helpers.ID{helpers.SKBLoadBytes, helpers.SKBLoadBytesRelative}
}

func (FlowDissector) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }

// Epilogue sets r0 to one of the root package's FlowDissectorOK/Drop
// constants and exits.
func (FlowDissector) Epilogue(ret int32) []asm.Node { return epilogue(ret) }
