// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

// Package sys is the raw kernel BPF syscall surface (spec.md §4.4,
// component C6): a single bpf(cmd, attr, size) entry point per command,
// with one Go struct per command mirroring the kernel's union bpf_attr
// layout for that command. Nothing above this package ever calls
// unix.Syscall directly for a BPF operation; everything funnels through
// here so errno decoding and verifier-log capture have one implementation.
package sys

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// cmd numbers mirror enum bpf_cmd from the kernel uapi (linux/bpf.h). Kept
// unexported and untyped-int here rather than importing the root ebpf
// package's Cmd type, to avoid a layering cycle (ebpf.Map/.Program are
// built on top of this package, not the other way around).
const (
	cmdMapCreate uintptr = iota
	cmdMapLookupElem
	cmdMapUpdateElem
	cmdMapDeleteElem
	cmdMapGetNextKey
	cmdProgLoad
	cmdObjPin
	cmdObjGet
	cmdProgAttach
	cmdProgDetach
	cmdProgTestRun
	cmdProgGetNextID
	cmdMapGetNextID
	cmdProgGetFDByID
	cmdMapGetFDByID
	cmdObjGetInfoByFD
	cmdProgQuery
	cmdRawTracepointOpen
	cmdBTFLoad
	cmdBTFGetFDByID
	cmdTaskFDQuery
	cmdMapLookupAndDeleteElem
	cmdMapFreeze
	cmdBTFGetNextID
	cmdMapLookupBatch
	cmdMapLookupAndDeleteBatch
	cmdMapUpdateBatch
	cmdMapDeleteBatch
	cmdLinkCreate
	cmdLinkUpdate
	cmdLinkGetFDByID
	cmdLinkGetNextID
	cmdEnableStats
	cmdIterCreate
	cmdLinkDetach
	cmdProgBindMap
)

// bpfSyscall issues the raw bpf(2) syscall. attr must be a pointer to one of
// this package's attr structs; size is normally unsafe.Sizeof(*attr).
func bpfSyscall(cmd uintptr, attr unsafe.Pointer, size uintptr) (uintptr, error) {
	r1, _, errno := unix.Syscall(unix.SYS_BPF, cmd, uintptr(attr), size)
	if errno != 0 {
		return r1, errno
	}
	return r1, nil
}
