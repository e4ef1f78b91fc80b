// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package sys

import (
	"strings"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// BPFFSRoot is the conventional bpffs mount point; callers normally take
// this from spec.md §6A's Config.BPFFSPath rather than this constant
// directly, but it's kept here as the fallback default.
const BPFFSRoot = "/sys/fs/bpf"

// ValidatePinPath rejects anything outside of root, matching spec.md §4.9's
// requirement that pin paths be confined to the configured bpffs mount.
func ValidatePinPath(root, path string) error {
	if !strings.HasPrefix(path, root+"/") && path != root {
		return ebpferr.New("ValidatePinPath", ebpferr.KindMap, "pin path escapes bpf filesystem root", nil)
	}
	return nil
}

// The structs below mirror the kernel's union bpf_attr, one struct per
// command, per spec.md §4.4's attribute-layout table. Pointer-typed kernel
// fields (__aligned_u64) are represented as uint64 holding the address, set
// via unsafe.Pointer conversions in the call sites in map_linux.go/prog_linux.go/obj_linux.go,
// exactly as the kernel's own aligned_u64 convention requires on 32-bit
// hosts; this module only targets 64-bit architectures (spec.md §3 "Pointers
// are 8 bytes on 64-bit targets") so no additional padding tricks are
// needed.

// MapCreateAttr is the BPF_MAP_CREATE attribute.
type MapCreateAttr struct {
	MapType                uint32
	KeySize                uint32
	ValueSize              uint32
	MaxEntries             uint32
	MapFlags               uint32
	InnerMapFD             uint32
	NumaNode               uint32
	MapName                [16]byte
	MapIfindex             uint32
	BTFFD                  uint32
	BTFKeyTypeID           uint32
	BTFValueTypeID         uint32
	BTFVmlinuxValueTypeID  uint32
}

// MapElemAttr is shared by MAP_LOOKUP_ELEM, MAP_UPDATE_ELEM,
// MAP_DELETE_ELEM and MAP_GET_NEXT_KEY; the kernel reuses one layout for all
// four (the second aligned_u64 is "value" for lookup/update and "next_key"
// for get-next-key).
type MapElemAttr struct {
	MapFD   uint32
	_       uint32
	Key     uint64
	Value   uint64 // doubles as NextKey
	Flags   uint64
}

// MapBatchAttr is shared by the three MAP_*_BATCH commands (spec.md §4.5).
type MapBatchAttr struct {
	InBatch   uint64
	OutBatch  uint64
	Keys      uint64
	Values    uint64
	Count     uint32
	MapFD     uint32
	ElemFlags uint64
	Flags     uint64
}

// ProgLoadAttr is the BPF_PROG_LOAD attribute, including the verifier log
// fields spec.md §4.4 calls out by name.
type ProgLoadAttr struct {
	ProgType             uint32
	InsnCnt              uint32
	Insns                uint64
	License              uint64
	LogLevel             uint32
	LogSize              uint32
	LogBuf               uint64
	KernVersion          uint32
	ProgFlags            uint32
	ProgName             [16]byte
	ProgIfindex          uint32
	ExpectedAttachType   uint32
	ProgBTFFD            uint32
	FuncInfoRecSize      uint32
	FuncInfo             uint64
	FuncInfoCnt          uint32
	LineInfoRecSize      uint32
	LineInfo             uint64
	LineInfoCnt          uint32
	AttachBTFID          uint32
	AttachProgFD         uint32
}

// ObjAttr is the BPF_OBJ_PIN / BPF_OBJ_GET attribute.
type ObjAttr struct {
	Pathname  uint64
	BPFFD     uint32
	FileFlags uint32
}

// ProgAttachAttr is the BPF_PROG_ATTACH / BPF_PROG_DETACH attribute.
type ProgAttachAttr struct {
	TargetFD      uint32
	AttachBPFFD   uint32
	AttachType    uint32
	AttachFlags   uint32
	ReplaceBPFFD  uint32
}

// LinkCreateAttr is the BPF_LINK_CREATE attribute.
type LinkCreateAttr struct {
	ProgFD       uint32
	TargetFD     uint32
	AttachType   uint32
	Flags        uint32
	TargetBTFID  uint32
	_            uint32 // padding to keep the struct 8-byte aligned for the trailing union
}

// IterCreateAttr is the BPF_ITER_CREATE attribute.
type IterCreateAttr struct {
	LinkFD uint32
	Flags  uint32
}

// ProgLoadResult carries the loaded program's fd plus whatever the verifier
// wrote to the log buffer, win or lose.
type ProgLoadResult struct {
	FD  int
	Log string
}
