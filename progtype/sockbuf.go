// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// SKSKB is the module for BPF_PROG_TYPE_SK_SKB programs, attached to a
// SOCKMAP/SOCKHASH via BPF_SK_SKB_STREAM_PARSER or
// BPF_SK_SKB_STREAM_VERDICT to intercept a TCP stream before it reaches (or
// leaves) a socket already in the map (spec.md §4.3).
type SKSKB struct{}

func (SKSKB) SectionName() string { return "sk_skb" }

// ContextSize reports struct __sk_buff's extent, the same context TC
// programs receive.
func (SKSKB) ContextSize() int { return TC{}.ContextSize() }

func (SKSKB) Helpers() []helpers.ID {
	return []helpers.ID{
		helpers.SKBLoadBytes, helpers.SKRedirectMap, helpers.SKRedirectHash,
		helpers.SockMapUpdate, helpers.SockHashUpdate,
	}
}

func (SKSKB) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }

// Epilogue sets r0 to ret: for a stream-parser program, the number of
// bytes in the next message; for a stream-verdict program, one of the
// root package's SKDrop/SKPass constants.
func (SKSKB) Epilogue(ret int32) []asm.Node { return epilogue(ret) }

// SKMSGContext is the byte-offset table for struct sk_msg_md, the context
// an SK_MSG program receives instead of __sk_buff.
type SKMSGContext struct {
	Data     int16
	DataEnd  int16
	Family   int16
	RemoteIP4 int16
	LocalIP4  int16
	RemotePort int16
	LocalPort  int16
}

// SKMSGCtx is the kernel's documented struct sk_msg_md layout.
var SKMSGCtx = SKMSGContext{Data: 0, DataEnd: 8, Family: 16, RemoteIP4: 20, LocalIP4: 24, RemotePort: 60, LocalPort: 64}

// SKMSG is the module for BPF_PROG_TYPE_SK_MSG programs, attached to a
// SOCKMAP/SOCKHASH via BPF_SK_MSG_VERDICT to intercept sendmsg(2) traffic.
type SKMSG struct{}

func (SKMSG) SectionName() string { return "sk_msg" }
func (SKMSG) ContextSize() int    { return 68 }

func (SKMSG) Helpers() []helpers.ID {
	return []helpers.ID{
		helpers.MsgRedirectMap, helpers.MsgRedirectHash, helpers.MsgApplyBytes,
		helpers.MsgCorkBytes, helpers.MsgPullData, helpers.MsgPushData, helpers.MsgPopData,
	}
}

func (SKMSG) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }

// Epilogue sets r0 to one of the root package's SKDrop/SKPass constants
// and exits.
func (SKMSG) Epilogue(ret int32) []asm.Node { return epilogue(ret) }
