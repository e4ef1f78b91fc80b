// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// SocketFilter is the module for BPF_PROG_TYPE_SOCKET_FILTER programs,
// attached via setsockopt(SO_ATTACH_BPF). The return value is not one of a
// small enum: it is the number of bytes of the packet to keep (0 drops it
// entirely, a value at or beyond the packet length keeps the whole thing),
// matching classic cBPF socket-filter semantics (spec.md §4.3).
type SocketFilter struct{}

func (SocketFilter) SectionName() string { return "socket" }

// ContextSize reports struct __sk_buff's extent as seen through TCCtx: the
// context is the same struct TC programs receive, though socket filters
// conventionally only read skb->len via the copy-length return value
// rather than walking the struct's fields.
func (SocketFilter) ContextSize() int { return TC{}.ContextSize() }

func (SocketFilter) Helpers() []helpers.ID {
	return []helpers.ID{helpers.SKBLoadBytes, helpers.GetCurrentPIDTGID}
}

func (SocketFilter) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }

// Epilogue sets r0 to n (bytes of the packet to keep) and exits.
func (SocketFilter) Epilogue(n int32) []asm.Node { return epilogue(n) }
