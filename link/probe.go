// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package link

import (
	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

// PerfLink is a perf_event_open-backed attachment (kprobe, uprobe, or
// tracepoint); closing it detaches the program (spec.md §4.8: "Detach...
// close the perf fd").
type PerfLink struct {
	fd int
}

// FD returns the underlying perf_event fd.
func (l *PerfLink) FD() int { return l.fd }

// Close detaches the program by closing the perf event fd.
func (l *PerfLink) Close() error {
	return sys.CloseFD(l.fd)
}

func attachPerf(perfFD, progFD int) (*PerfLink, error) {
	if err := sys.PerfEventSetBPF(perfFD, progFD); err != nil {
		sys.CloseFD(perfFD)
		return nil, ebpferr.New("attachPerf", ebpferr.KindAttach, "PERF_EVENT_IOC_SET_BPF failed", err)
	}
	if err := sys.PerfEventEnable(perfFD); err != nil {
		sys.CloseFD(perfFD)
		return nil, ebpferr.New("attachPerf", ebpferr.KindAttach, "PERF_EVENT_IOC_ENABLE failed", err)
	}
	return &PerfLink{fd: perfFD}, nil
}

// AttachTracepoint attaches progFD to the kernel tracepoint
// category/name, reading its numeric id from tracefs (spec.md §4.8).
func AttachTracepoint(category, name string, progFD int) (*PerfLink, error) {
	id, err := sys.TracepointID(category, name)
	if err != nil {
		return nil, err
	}
	perfFD, err := sys.PerfEventOpenTracepoint(id, -1)
	if err != nil {
		return nil, ebpferr.New("AttachTracepoint", ebpferr.KindAttach, "perf_event_open failed", err)
	}
	return attachPerf(perfFD, progFD)
}

// AttachKprobe attaches progFD to symbol, as a kretprobe if retprobe is
// true, via the dynamic kprobe PMU (spec.md §4.8).
func AttachKprobe(symbol string, retprobe bool, progFD int) (*PerfLink, error) {
	pmu, err := sys.KprobePMUType()
	if err != nil {
		return nil, err
	}
	perfFD, err := sys.PerfEventOpenProbe(pmu, retprobe, symbol, 0)
	if err != nil {
		return nil, ebpferr.New("AttachKprobe", ebpferr.KindAttach, "perf_event_open failed", err)
	}
	return attachPerf(perfFD, progFD)
}

// AttachUprobe attaches progFD to an offset within a binary at path, as a
// uretprobe if retprobe is true, via the dynamic uprobe PMU.
func AttachUprobe(path string, offset uint64, retprobe bool, progFD int) (*PerfLink, error) {
	pmu, err := sys.UprobePMUType()
	if err != nil {
		return nil, err
	}
	perfFD, err := sys.PerfEventOpenProbe(pmu, retprobe, path, offset)
	if err != nil {
		return nil, ebpferr.New("AttachUprobe", ebpferr.KindAttach, "perf_event_open failed", err)
	}
	return attachPerf(perfFD, progFD)
}

// AttachPerfEvent wraps an already-open perf_event fd (e.g. one opened for
// hardware/software counters) with progFD, leaving event creation to the
// caller since its attr varies widely by use case.
func AttachPerfEvent(perfFD, progFD int) (*PerfLink, error) {
	return attachPerf(perfFD, progFD)
}

// LinkCreate issues BPF_LINK_CREATE, the newer bpf_link-based attach form
// used by fentry/fexit/fmod_ret/iterator/struct_ops (spec.md §4.4).
func LinkCreate(progFD, targetFD int, attachType uint32, targetBTFID uint32) (*PerfLink, error) {
	fd, err := sys.LinkCreate(progFD, targetFD, attachType, targetBTFID)
	if err != nil {
		return nil, ebpferr.New("LinkCreate", ebpferr.KindAttach, "BPF_LINK_CREATE failed", err)
	}
	return &PerfLink{fd: fd}, nil
}
