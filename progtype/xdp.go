// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// XDPContext is the byte-offset table for struct xdp_md. Every field is a
// u32 packet offset, not a raw pointer; direct packet access still requires
// widening data/data_end into native pointers before dereferencing them
// (spec.md §4.3/§6).
type XDPContext struct {
	Data           int16
	DataEnd        int16
	DataMeta       int16
	IngressIfindex int16
	RxQueueIndex   int16
	EgressIfindex  int16
}

// XDPCtx is the kernel's documented struct xdp_md layout.
var XDPCtx = XDPContext{Data: 0, DataEnd: 4, DataMeta: 8, IngressIfindex: 12, RxQueueIndex: 16, EgressIfindex: 20}

// XDP return codes (spec.md §4.3).
const (
	XDPAborted  int32 = 0
	XDPDrop     int32 = 1
	XDPPass     int32 = 2
	XDPTx       int32 = 3
	XDPRedirect int32 = 4
)

// XDP is the XDP program-type module.
type XDP struct{}

// ContextSize reports the size of struct xdp_md.
func (XDP) ContextSize() int { return 24 }

// SectionName returns the libbpf-conventional section name for an XDP
// program.
func (XDP) SectionName() string { return "xdp" }

// Helpers lists the subset of the catalog most XDP programs reach for.
func (XDP) Helpers() []helpers.ID {
	return []helpers.ID{
		helpers.XDPAdjustHead, helpers.XDPAdjustTail, helpers.XDPAdjustMeta,
		helpers.RedirectMap, helpers.Redirect, helpers.XDPOutput,
		helpers.MapLookupElem, helpers.MapUpdateElem, helpers.MapDeleteElem,
		helpers.PerfEventOutput, helpers.FIBLookup,
	}
}

// Prologue copies the ctx pointer into ctxReg and widens data/data_end into
// dataReg/dataEndReg for callers doing direct packet access.
func (XDP) Prologue(ctxReg, dataReg, dataEndReg asm.Reg) []asm.Node {
	return []asm.Node{
		saveCtx(ctxReg),
		asm.LoadMemW(dataReg, ctxReg, XDPCtx.Data),
		asm.LoadMemW(dataEndReg, ctxReg, XDPCtx.DataEnd),
	}
}

// Epilogue sets r0 to ret (one of the XDP* constants) and exits.
func (XDP) Epilogue(ret int32) []asm.Node { return epilogue(ret) }
