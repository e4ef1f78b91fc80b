// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package sys

import (
	"unsafe"
)

// ObjPin issues BPF_OBJ_PIN, pinning fd at path on a bpffs.
func ObjPin(fd int, path string) error {
	p := append([]byte(path), 0)
	attr := ObjAttr{Pathname: bufPtr(p), BPFFD: uint32(fd)}
	_, err := bpfSyscall(cmdObjPin, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return err
}

// ObjGet issues BPF_OBJ_GET, returning the fd pinned at path.
func ObjGet(path string) (int, error) {
	p := append([]byte(path), 0)
	attr := ObjAttr{Pathname: bufPtr(p)}
	fd, err := bpfSyscall(cmdObjGet, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	return int(fd), err
}
