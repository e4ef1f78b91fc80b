// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package link

import (
	"encoding/binary"
	"runtime"

	ebpf "github.com/tetrabpf/goebpf"
	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

// PerfEventArray owns one dummy per-CPU perf event per slot of a
// BPF_MAP_TYPE_PERF_EVENT_ARRAY map, opened so package perf has something to
// mmap and bpf_perf_event_output has somewhere to write (spec.md §4.9's
// event-transport component needs a concrete fd per CPU; there is no
// "open the map and go" shortcut — each CPU slot must be populated
// individually before the program ever runs).
type PerfEventArray struct {
	m   *ebpf.Map
	fds []int
}

// OpenPerfEventArray opens one dummy perf event per CPU (0..numCPU-1) and
// installs each into slot cpu of m, so m is ready to receive
// bpf_perf_event_output writes. Callers pass the returned FDs to
// perf.Open to start consuming them.
func OpenPerfEventArray(m *ebpf.Map, numCPU int) (*PerfEventArray, error) {
	fds := make([]int, 0, numCPU)
	cleanup := func() {
		for _, fd := range fds {
			sys.CloseFD(fd)
		}
	}
	for cpu := 0; cpu < numCPU; cpu++ {
		fd, err := sys.PerfEventOpenCPUCounter(cpu)
		if err != nil {
			cleanup()
			return nil, ebpferr.New("OpenPerfEventArray", ebpferr.KindAttach, "perf_event_open failed", err)
		}
		key := make([]byte, 4)
		binary.LittleEndian.PutUint32(key, uint32(cpu))
		value := make([]byte, 4)
		binary.LittleEndian.PutUint32(value, uint32(fd))
		if err := m.Update(key, value, ebpf.UpdateAny); err != nil {
			sys.CloseFD(fd)
			cleanup()
			return nil, ebpferr.New("OpenPerfEventArray", ebpferr.KindMap, "installing perf fd into map slot failed", err)
		}
		if err := sys.PerfEventEnable(fd); err != nil {
			sys.CloseFD(fd)
			cleanup()
			return nil, ebpferr.New("OpenPerfEventArray", ebpferr.KindAttach, "PERF_EVENT_IOC_ENABLE failed", err)
		}
		fds = append(fds, fd)
	}
	runtime.KeepAlive(m)
	return &PerfEventArray{m: m, fds: fds}, nil
}

// FDs returns the per-CPU perf event fds, indexed by CPU, for perf.Open.
func (p *PerfEventArray) FDs() []int { return p.fds }

// Close disables and closes every per-CPU perf event. It does not close
// or delete the underlying map; callers close that separately.
func (p *PerfEventArray) Close() error {
	var err error
	for _, fd := range p.fds {
		sys.PerfEventDisable(fd)
		if e := sys.CloseFD(fd); e != nil {
			err = e
		}
	}
	return err
}
