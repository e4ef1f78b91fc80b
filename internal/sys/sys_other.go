// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build !linux

// This file lets the ebpf module (and its tests) build on non-Linux hosts;
// every operation that would need the real bpf(2)/perf_event_open(2)
// syscalls fails with a KindSyscall "unsupported platform" error instead.
package sys

import "github.com/tetrabpf/goebpf/ebpferr"

func unsupported(op string) error {
	return ebpferr.New(op, ebpferr.KindSyscall, "not supported on this platform", nil)
}

func MapCreate(attr *MapCreateAttr) (int, error) { return -1, unsupported("MapCreate") }

func MapLookupElem(mapFD int, key, value []byte) error { return unsupported("MapLookupElem") }

func MapLookupAndDeleteElem(mapFD int, key, value []byte) error {
	return unsupported("MapLookupAndDeleteElem")
}

func MapUpdateElem(mapFD int, key, value []byte, flags uint64) error {
	return unsupported("MapUpdateElem")
}

func MapDeleteElem(mapFD int, key []byte) error { return unsupported("MapDeleteElem") }

func MapGetNextKey(mapFD int, key, nextKey []byte) error { return unsupported("MapGetNextKey") }

func MapLookupBatch(mapFD int, inBatch, outBatch, keys, values []byte, count uint32) (uint32, bool, error) {
	return 0, false, unsupported("MapLookupBatch")
}

func MapLookupAndDeleteBatch(mapFD int, inBatch, outBatch, keys, values []byte, count uint32) (uint32, bool, error) {
	return 0, false, unsupported("MapLookupAndDeleteBatch")
}

func MapUpdateBatch(mapFD int, keys, values []byte, count uint32, elemFlags uint64) error {
	return unsupported("MapUpdateBatch")
}

func ProgLoad(attr *ProgLoadAttr, insns []byte, license string, logSize uint32) (ProgLoadResult, error) {
	return ProgLoadResult{FD: -1}, unsupported("ProgLoad")
}

func ProgAttach(targetFD, progFD int, attachType uint32, flags uint32) error {
	return unsupported("ProgAttach")
}

func ProgDetach(targetFD, progFD int, attachType uint32) error {
	return unsupported("ProgDetach")
}

func LinkCreate(progFD, targetFD int, attachType uint32, targetBTFID uint32) (int, error) {
	return -1, unsupported("LinkCreate")
}

func LinkDetach(linkFD int) error { return unsupported("LinkDetach") }

func IterCreate(linkFD int) (int, error) { return -1, unsupported("IterCreate") }

func ObjPin(fd int, path string) error { return unsupported("ObjPin") }

func ObjGet(path string) (int, error) { return -1, unsupported("ObjGet") }

func MapErrorDetail(err error) ebpferr.MapDetail { return ebpferr.MapGeneric }

func AttachErrorDetail(err error) ebpferr.AttachDetail { return ebpferr.Unsupported }

func PerfEventOpenTracepoint(tracepointID uint64, cpu int) (int, error) {
	return -1, unsupported("PerfEventOpenTracepoint")
}

func PerfEventOpenProbe(pmuType uint32, retprobe bool, symbolOrPath string, offset uint64) (int, error) {
	return -1, unsupported("PerfEventOpenProbe")
}

func PerfEventSetBPF(perfFD, progFD int) error { return unsupported("PerfEventSetBPF") }

func PerfEventEnable(perfFD int) error { return unsupported("PerfEventEnable") }

func PerfEventDisable(perfFD int) error { return unsupported("PerfEventDisable") }

func TracepointID(category, name string) (uint64, error) {
	return 0, unsupported("TracepointID")
}

func KprobePMUType() (uint32, error) { return 0, unsupported("KprobePMUType") }

func UprobePMUType() (uint32, error) { return 0, unsupported("UprobePMUType") }

func Mmap(fd int, offset int64, length int, writable bool) ([]byte, error) {
	return nil, unsupported("Mmap")
}

func Munmap(b []byte) error { return unsupported("Munmap") }

// EpollFD stubs out the epoll(7)-based poll loop on non-Linux platforms.
type EpollFD struct{}

func NewEpoll() (*EpollFD, error) { return nil, unsupported("NewEpoll") }

func (e *EpollFD) Add(fd int, id uint64) error { return unsupported("EpollFD.Add") }

func (e *EpollFD) Remove(fd int) error { return unsupported("EpollFD.Remove") }

func (e *EpollFD) Wait(timeoutMS int) ([]uint64, error) {
	return nil, unsupported("EpollFD.Wait")
}

func (e *EpollFD) Close() error { return unsupported("EpollFD.Close") }

// CloseFD is a thin wrapper so portable code doesn't need a build tag just
// to release a fd; on non-Linux there's never a real fd to close.
func CloseFD(fd int) error { return unsupported("CloseFD") }
