// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// SKLookupContext is the byte-offset table for struct bpf_sk_lookup, used
// to steer an incoming connection to a listening socket before the normal
// routing table lookup runs (spec.md §4.3).
type SKLookupContext struct {
	Family        int16
	Protocol      int16
	RemoteIP4     int16
	RemoteIP6     int16
	RemotePort    int16
	LocalIP4      int16
	LocalIP6      int16
	LocalPort     int16
	IngressIfindex int16
}

// SKLookupCtx is the kernel's documented struct bpf_sk_lookup layout; the
// leading 8-byte sk/cookie union has no entry in the table.
var SKLookupCtx = SKLookupContext{
	Family: 8, Protocol: 12, RemoteIP4: 16, RemoteIP6: 20, RemotePort: 36,
	LocalIP4: 40, LocalIP6: 44, LocalPort: 60, IngressIfindex: 64,
}

// SKLookup is the module for BPF_PROG_TYPE_SK_LOOKUP programs.
type SKLookup struct{}

func (SKLookup) SectionName() string { return "sk_lookup" }
func (SKLookup) ContextSize() int    { return 68 }

func (SKLookup) Helpers() []helpers.ID {
	return []helpers.ID{helpers.SKLookupTCP, helpers.SKLookupUDP, helpers.SKAssign, helpers.SKRelease}
}

func (SKLookup) Prologue(ctxReg asm.Reg) []asm.Node { return []asm.Node{saveCtx(ctxReg)} }

// Epilogue sets r0 to one of the root package's SKDrop/SKPass constants
// and exits.
func (SKLookup) Epilogue(ret int32) []asm.Node { return epilogue(ret) }
