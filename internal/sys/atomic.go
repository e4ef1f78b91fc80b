// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package sys

import (
	"sync/atomic"
	"unsafe"
)

// LoadAcquire64 reads a little-endian uint64 out of an mmap'd region at
// off with acquire semantics, matching the producer/consumer position
// fields' synchronization requirement (spec.md §4.9 "read producer_pos
// with acquire ordering").
func LoadAcquire64(b []byte, off int) uint64 {
	return atomic.LoadUint64((*uint64)(unsafe.Pointer(&b[off])))
}

// StoreRelease64 writes v at off with release semantics ("publish with
// release ordering").
func StoreRelease64(b []byte, off int, v uint64) {
	atomic.StoreUint64((*uint64)(unsafe.Pointer(&b[off])), v)
}

// LoadAcquire32 is LoadAcquire64's 32-bit counterpart, used to read a ring
// buffer record's header word (the kernel writes the busy bit with a
// release store, so the consumer's matching load must acquire).
func LoadAcquire32(b []byte, off int) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(&b[off])))
}
