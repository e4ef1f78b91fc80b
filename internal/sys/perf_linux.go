// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package sys

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// PerfEventOpenTracepoint opens a PERF_TYPE_TRACEPOINT event for the given
// tracepoint config ID (spec.md §4.7), on the given cpu (pid -1 == any
// process on that cpu, the convention this module always uses for
// system-wide tracing).
func PerfEventOpenTracepoint(tracepointID uint64, cpu int) (int, error) {
	attr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_TRACEPOINT,
		Config: tracepointID,
		Sample: 1,
		Wakeup: 1,
	}
	fd, err := unix.PerfEventOpen(&attr, -1, cpu, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return -1, err
	}
	return fd, nil
}

// PerfEventOpenProbe opens a PERF_TYPE kprobe/uprobe event. pmuType is the
// dynamic PMU type discovered via KprobePMUType/UprobePMUType; the config
// bit layout (retprobe bit) follows spec.md §4.3.
func PerfEventOpenProbe(pmuType uint32, retprobe bool, symbolOrPath string, offset uint64) (int, error) {
	var config uint64
	if retprobe {
		config = 1
	}
	name := append([]byte(symbolOrPath), 0)
	attr := unix.PerfEventAttr{
		Type:   pmuType,
		Config: config,
		Ext1:   uint64(uintptr(unsafe.Pointer(&name[0]))),
		Ext2:   offset,
	}
	fd, err := unix.PerfEventOpen(&attr, -1, 0, -1, unix.PERF_FLAG_FD_CLOEXEC)
	runtime.KeepAlive(name)
	if err != nil {
		return -1, err
	}
	return fd, nil
}

// PerfEventOpenCPUCounter opens a dummy PERF_TYPE_SOFTWARE/PERF_COUNT_SW_BPF_OUTPUT
// event pinned to cpu, disabled at open time. This is the event the kernel
// requires as the target of BPF_MAP_UPDATE_ELEM on a
// BPF_MAP_TYPE_PERF_EVENT_ARRAY slot before bpf_perf_event_output can write
// into it; it carries no sampling workload of its own; it exists only to own
// the mmap'd ring consumed by package perf.
func PerfEventOpenCPUCounter(cpu int) (int, error) {
	attr := unix.PerfEventAttr{
		Type:        unix.PERF_TYPE_SOFTWARE,
		Config:      unix.PERF_COUNT_SW_BPF_OUTPUT,
		Sample_type: unix.PERF_SAMPLE_RAW,
		Bits:        unix.PerfBitDisabled,
		Wakeup:      1,
	}
	fd, err := unix.PerfEventOpen(&attr, -1, cpu, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return -1, err
	}
	return fd, nil
}

// PerfEventSetBPF attaches progFD to the perf event via
// PERF_EVENT_IOC_SET_BPF.
func PerfEventSetBPF(perfFD, progFD int) error {
	return unix.IoctlSetInt(perfFD, unix.PERF_EVENT_IOC_SET_BPF, progFD)
}

// PerfEventEnable issues PERF_EVENT_IOC_ENABLE.
func PerfEventEnable(perfFD int) error {
	return unix.IoctlSetInt(perfFD, unix.PERF_EVENT_IOC_ENABLE, 0)
}

// PerfEventDisable issues PERF_EVENT_IOC_DISABLE.
func PerfEventDisable(perfFD int) error {
	return unix.IoctlSetInt(perfFD, unix.PERF_EVENT_IOC_DISABLE, 0)
}

// TracepointID reads /sys/kernel/tracing/events/<category>/<name>/id, per
// spec.md §4.7. Falls back to the legacy /sys/kernel/debug/tracing mount
// when the tracefs one isn't present.
func TracepointID(category, name string) (uint64, error) {
	for _, root := range []string{"/sys/kernel/tracing", "/sys/kernel/debug/tracing"} {
		path := fmt.Sprintf("%s/events/%s/%s/id", root, category, name)
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		id, perr := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
		if perr != nil {
			return 0, ebpferr.New("TracepointID", ebpferr.KindAttach, "malformed tracepoint id file", perr)
		}
		return id, nil
	}
	return 0, ebpferr.New("TracepointID", ebpferr.KindAttach, "tracepoint "+category+"/"+name+" not found", nil)
}

// pmuType reads /sys/bus/event_source/devices/<name>/type, used for both
// kprobe and uprobe dynamic PMU discovery.
func pmuType(name string) (uint32, error) {
	path := "/sys/bus/event_source/devices/" + name + "/type"
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, ebpferr.New("pmuType", ebpferr.KindAttach, name+" PMU not available on this kernel", err)
	}
	v, perr := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 32)
	if perr != nil {
		return 0, ebpferr.New("pmuType", ebpferr.KindAttach, "malformed PMU type file", perr)
	}
	return uint32(v), nil
}

// KprobePMUType discovers the dynamic PMU type for kprobes.
func KprobePMUType() (uint32, error) { return pmuType("kprobe") }

// UprobePMUType discovers the dynamic PMU type for uprobes.
func UprobePMUType() (uint32, error) { return pmuType("uprobe") }
