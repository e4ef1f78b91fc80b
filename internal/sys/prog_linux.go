// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package sys

import (
	"runtime"
	"unsafe"
)

// ProgLoad issues BPF_PROG_LOAD. logSize is the caller-allocated verifier
// log buffer capacity (spec.md §6A's verifier_log_size config, default 16
// MiB); pass 0 to skip log capture entirely. The log is populated both on
// success and on verifier rejection, per spec.md §4.6.
func ProgLoad(attr *ProgLoadAttr, insns []byte, license string, logSize uint32) (ProgLoadResult, error) {
	attr.InsnCnt = uint32(len(insns)) / 8
	attr.Insns = bufPtr(insns)

	lic := append([]byte(license), 0)
	attr.License = bufPtr(lic)

	var logBuf []byte
	if logSize > 0 {
		logBuf = make([]byte, logSize)
		attr.LogSize = logSize
		attr.LogBuf = bufPtr(logBuf)
		attr.LogLevel = 1
	}

	fd, err := bpfSyscall(cmdProgLoad, unsafe.Pointer(attr), unsafe.Sizeof(*attr))
	runtime.KeepAlive(insns)
	runtime.KeepAlive(lic)
	runtime.KeepAlive(logBuf)

	res := ProgLoadResult{FD: int(fd), Log: cString(logBuf)}
	return res, err
}

// cString trims a NUL-terminated byte buffer down to its Go string prefix.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// ProgAttach issues BPF_PROG_ATTACH.
func ProgAttach(targetFD, progFD int, attachType uint32, flags uint32) error {
	attr := ProgAttachAttr{TargetFD: uint32(targetFD), AttachBPFFD: uint32(progFD), AttachType: attachType, AttachFlags: flags}
	_, err := bpfSyscall(cmdProgAttach, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

// ProgDetach issues BPF_PROG_DETACH.
func ProgDetach(targetFD, progFD int, attachType uint32) error {
	attr := ProgAttachAttr{TargetFD: uint32(targetFD), AttachBPFFD: uint32(progFD), AttachType: attachType}
	_, err := bpfSyscall(cmdProgDetach, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

// LinkCreate issues BPF_LINK_CREATE, returning the new link's fd.
func LinkCreate(progFD, targetFD int, attachType uint32, targetBTFID uint32) (int, error) {
	attr := LinkCreateAttr{ProgFD: uint32(progFD), TargetFD: uint32(targetFD), AttachType: attachType, TargetBTFID: targetBTFID}
	fd, err := bpfSyscall(cmdLinkCreate, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return int(fd), err
}

// LinkDetach issues BPF_LINK_DETACH. In practice links are detached by
// closing their fd, but the kernel also exposes this explicit command.
func LinkDetach(linkFD int) error {
	attr := struct {
		LinkFD uint32
		_      uint32
	}{LinkFD: uint32(linkFD)}
	_, err := bpfSyscall(cmdLinkDetach, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

// IterCreate issues BPF_ITER_CREATE, returning an anonymous fd that yields
// the iterator's output on read(2).
func IterCreate(linkFD int) (int, error) {
	attr := IterCreateAttr{LinkFD: uint32(linkFD)}
	fd, err := bpfSyscall(cmdIterCreate, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return int(fd), err
}
