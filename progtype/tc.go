// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package progtype

import (
	"fmt"

	"github.com/tetrabpf/goebpf/asm"
	"github.com/tetrabpf/goebpf/helpers"
)

// TCContext is the byte-offset table for the prefix of struct __sk_buff a
// clsact/SCHED_CLS program typically touches (spec.md §4.3/§6).
type TCContext struct {
	Len            int16
	PktType        int16
	Mark           int16
	QueueMapping   int16
	Protocol       int16
	VlanPresent    int16
	VlanTCI        int16
	VlanProto      int16
	Priority       int16
	IngressIfindex int16
	Ifindex        int16
	TCIndex        int16
	Hash           int16
	TCClassid      int16
	Data           int16
	DataEnd        int16
	DataMeta       int16
}

// TCCtx is the kernel's documented struct __sk_buff layout, restricted to
// the fields this module exposes.
var TCCtx = TCContext{
	Len: 0, PktType: 4, Mark: 8, QueueMapping: 12, Protocol: 16,
	VlanPresent: 20, VlanTCI: 24, VlanProto: 28, Priority: 32,
	IngressIfindex: 36, Ifindex: 40, TCIndex: 44, Hash: 68, TCClassid: 72,
	Data: 76, DataEnd: 80, DataMeta: 140,
}

// TC classifier return codes (spec.md §4.3).
const (
	TCActUnspec     int32 = -1
	TCActOK         int32 = 0
	TCActReclassify int32 = 1
	TCActShot       int32 = 2
	TCActPipe       int32 = 3
	TCActRedirect   int32 = 7
)

// TC is the SCHED_CLS (clsact) program-type module.
type TC struct{}

// ContextSize reports the byte extent of the fields this module's table
// covers within struct __sk_buff (data_meta + 4), not the kernel struct's
// full, version-dependent size.
func (TC) ContextSize() int { return 144 }

// SectionName formats "tc/<direction>/<iface>" per libbpf convention
// (spec.md §4.3); iface may be empty when the filter isn't tied to one
// interface's section name.
func (TC) SectionName(direction, iface string) string {
	if iface == "" {
		return fmt.Sprintf("tc/%s", direction)
	}
	return fmt.Sprintf("tc/%s/%s", direction, iface)
}

// Helpers lists the subset of the catalog most TC classifiers reach for.
func (TC) Helpers() []helpers.ID {
	return []helpers.ID{
		helpers.SKBStoreBytes, helpers.SKBLoadBytes, helpers.L3CSumReplace, helpers.L4CSumReplace,
		helpers.CloneRedirect, helpers.Redirect, helpers.RedirectMap, helpers.SKBChangeProto,
		helpers.SKBVlanPush, helpers.SKBVlanPop, helpers.SKBPullData, helpers.SKBChangeTail,
		helpers.MapLookupElem, helpers.MapUpdateElem, helpers.PerfEventOutput,
	}
}

// Prologue copies the ctx pointer into ctxReg and widens data/data_end into
// dataReg/dataEndReg.
func (TC) Prologue(ctxReg, dataReg, dataEndReg asm.Reg) []asm.Node {
	return []asm.Node{
		saveCtx(ctxReg),
		asm.LoadMemW(dataReg, ctxReg, TCCtx.Data),
		asm.LoadMemW(dataEndReg, ctxReg, TCCtx.DataEnd),
	}
}

// Epilogue sets r0 to ret (one of the TCAct* constants) and exits.
func (TC) Epilogue(ret int32) []asm.Node { return epilogue(ret) }
