// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// StructOps is the module for BPF_PROG_TYPE_STRUCT_OPS programs: each
// program implements one function pointer slot of a BTF-described kernel
// operations struct (e.g. a congestion-control algorithm's tcp_congestion_ops),
// and the whole set is registered together as a single STRUCT_OPS map entry
// rather than attached individually (spec.md §4.3/§4.10).
type StructOps struct{}

// StructOpsSection formats "struct_ops/<member>" naming the operations
// struct member this program implements.
func StructOpsSection(member string) string { return "struct_ops/" + member }

// ContextSize is unset: each member's argument layout comes from the BTF
// description of the operations struct, not a fixed table here.
func (StructOps) ContextSize() int { return 0 }

func (StructOps) Helpers() []helpers.ID {
	return []helpers.ID{helpers.GetFuncArg, helpers.GetFuncArgCnt, helpers.GetFuncRet, helpers.KtimeGetNS}
}

func (StructOps) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }

// Epilogue sets r0 to ret (member-specific: a congestion-control ssthresh
// hook returns a window size, a void hook returns 0) and exits.
func (StructOps) Epilogue(ret int32) []asm.Node { return epilogue(ret) }
