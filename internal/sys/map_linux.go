// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package sys

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// bufPtr returns the address of b's backing array as a uint64, or 0 for an
// empty/nil slice (the kernel treats a null key pointer as "start of
// iteration" for MAP_GET_NEXT_KEY, per spec.md §4.5).
func bufPtr(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(&b[0])))
}

// MapCreate issues BPF_MAP_CREATE and returns the new map's file
// descriptor.
func MapCreate(attr *MapCreateAttr) (int, error) {
	fd, err := bpfSyscall(cmdMapCreate, unsafe.Pointer(attr), unsafe.Sizeof(*attr))
	runtime.KeepAlive(attr)
	return int(fd), err
}

// MapLookupElem issues BPF_MAP_LOOKUP_ELEM, writing the found value into
// value.
func MapLookupElem(mapFD int, key, value []byte) error {
	attr := MapElemAttr{MapFD: uint32(mapFD), Key: bufPtr(key), Value: bufPtr(value)}
	_, err := bpfSyscall(cmdMapLookupElem, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	return err
}

// MapLookupAndDeleteElem issues BPF_MAP_LOOKUP_AND_DELETE_ELEM (used by the
// Queue/Stack observation handles' atomic pop).
func MapLookupAndDeleteElem(mapFD int, key, value []byte) error {
	attr := MapElemAttr{MapFD: uint32(mapFD), Key: bufPtr(key), Value: bufPtr(value)}
	_, err := bpfSyscall(cmdMapLookupAndDeleteElem, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	return err
}

// MapUpdateElem issues BPF_MAP_UPDATE_ELEM with the given update-semantics
// flag (spec.md §3 "Map" invariants: UpdateNoExist fails with TableFull once
// a non-LRU hash map is at capacity).
func MapUpdateElem(mapFD int, key, value []byte, flags uint64) error {
	attr := MapElemAttr{MapFD: uint32(mapFD), Key: bufPtr(key), Value: bufPtr(value), Flags: flags}
	_, err := bpfSyscall(cmdMapUpdateElem, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	return err
}

// MapDeleteElem issues BPF_MAP_DELETE_ELEM.
func MapDeleteElem(mapFD int, key []byte) error {
	attr := MapElemAttr{MapFD: uint32(mapFD), Key: bufPtr(key)}
	_, err := bpfSyscall(cmdMapDeleteElem, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	runtime.KeepAlive(key)
	return err
}

// MapGetNextKey issues BPF_MAP_GET_NEXT_KEY. Pass a nil/empty key to start
// iteration (spec.md §4.5 "starting from a sentinel null key"); ENOENT on
// the final key means iteration is complete.
func MapGetNextKey(mapFD int, key, nextKey []byte) error {
	attr := MapElemAttr{MapFD: uint32(mapFD), Key: bufPtr(key), Value: bufPtr(nextKey)}
	_, err := bpfSyscall(cmdMapGetNextKey, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	runtime.KeepAlive(key)
	runtime.KeepAlive(nextKey)
	return err
}

// MapLookupBatch issues BPF_MAP_LOOKUP_BATCH, filling keys/values (each a
// flat buffer of count*elemSize bytes) and returning the number of entries
// actually read plus whether iteration is complete (no more entries after
// this batch).
func MapLookupBatch(mapFD int, inBatch, outBatch, keys, values []byte, count uint32) (read uint32, done bool, err error) {
	attr := MapBatchAttr{
		InBatch:  bufPtr(inBatch),
		OutBatch: bufPtr(outBatch),
		Keys:     bufPtr(keys),
		Values:   bufPtr(values),
		Count:    count,
		MapFD:    uint32(mapFD),
	}
	_, err = bpfSyscall(cmdMapLookupBatch, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	runtime.KeepAlive(inBatch)
	runtime.KeepAlive(outBatch)
	runtime.KeepAlive(keys)
	runtime.KeepAlive(values)
	if err != nil && err != unix.ENOENT {
		return 0, false, err
	}
	return attr.Count, err == unix.ENOENT, nil
}

// MapLookupAndDeleteBatch issues BPF_MAP_LOOKUP_AND_DELETE_BATCH, same
// contract as MapLookupBatch but atomically removes each returned entry.
func MapLookupAndDeleteBatch(mapFD int, inBatch, outBatch, keys, values []byte, count uint32) (read uint32, done bool, err error) {
	attr := MapBatchAttr{
		InBatch:  bufPtr(inBatch),
		OutBatch: bufPtr(outBatch),
		Keys:     bufPtr(keys),
		Values:   bufPtr(values),
		Count:    count,
		MapFD:    uint32(mapFD),
	}
	_, err = bpfSyscall(cmdMapLookupAndDeleteBatch, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	runtime.KeepAlive(inBatch)
	runtime.KeepAlive(outBatch)
	runtime.KeepAlive(keys)
	runtime.KeepAlive(values)
	if err != nil && err != unix.ENOENT {
		return 0, false, err
	}
	return attr.Count, err == unix.ENOENT, nil
}

// MapUpdateBatch issues BPF_MAP_UPDATE_BATCH.
func MapUpdateBatch(mapFD int, keys, values []byte, count uint32, elemFlags uint64) error {
	attr := MapBatchAttr{
		Keys:      bufPtr(keys),
		Values:    bufPtr(values),
		Count:     count,
		MapFD:     uint32(mapFD),
		ElemFlags: elemFlags,
	}
	_, err := bpfSyscall(cmdMapUpdateBatch, unsafe.Pointer(&attr), unsafe.Sizeof(attr))
	runtime.KeepAlive(keys)
	runtime.KeepAlive(values)
	return err
}
