// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ebpf

import (
	"sync/atomic"

	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

// DefaultLicense is what most in-tree-style GPL-helper-using programs
// declare; programs calling GPL-only helpers must use a GPL-compatible
// string or the verifier rejects the load.
const DefaultLicense = "GPL"

// ProgramSpec describes a program to be loaded (spec.md §4.7).
type ProgramSpec struct {
	Type               ProgType
	Instructions       []byte
	License            string
	Name               string
	KernelVersion      uint32
	ExpectedAttachType AttachType
	AttachBTFID        uint32
	VerifierLogSize    uint32 // 0 uses DefaultConfig().VerifierLogSize
}

// Program wraps a loaded program's fd.
type Program struct {
	fd     int
	spec   ProgramSpec
	closed int32
}

// Load issues BPF_PROG_LOAD. On verifier rejection the returned error is an
// *ebpferr.VerifierError carrying the full log and a best-effort
// classification (spec.md §4.4/§4.7/§7).
func Load(spec ProgramSpec) (*Program, error) {
	if len(spec.Instructions)%8 != 0 {
		return nil, ebpferr.New("Load", ebpferr.KindEncoding, "instruction stream is not a multiple of 8 bytes", nil)
	}
	license := spec.License
	if license == "" {
		license = DefaultLicense
	}
	logSize := spec.VerifierLogSize
	if logSize == 0 {
		logSize = DefaultConfig().VerifierLogSize
	}

	attr := sys.ProgLoadAttr{
		ProgType:           uint32(spec.Type),
		KernVersion:        spec.KernelVersion,
		ExpectedAttachType: uint32(spec.ExpectedAttachType),
		AttachBTFID:        spec.AttachBTFID,
	}
	copy(attr.ProgName[:], spec.Name)

	res, err := sys.ProgLoad(&attr, spec.Instructions, license, logSize)
	if err != nil {
		if res.Log != "" {
			log().Warnw("verifier rejected program", "name", spec.Name, "log", truncate(res.Log, 2048))
		}
		return nil, ebpferr.NewVerifierError("Load", res.Log, err)
	}
	if res.Log != "" {
		log().Debugw("verifier log (load succeeded)", "name", spec.Name, "log", truncate(res.Log, 2048))
	}
	return &Program{fd: res.FD, spec: spec}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}

// FD returns the underlying kernel file descriptor.
func (p *Program) FD() int { return p.fd }

// Spec returns the spec this program was loaded with.
func (p *Program) Spec() ProgramSpec { return p.spec }

// Close releases the program's file descriptor. Safe to call more than
// once.
func (p *Program) Close() error {
	if !atomic.CompareAndSwapInt32(&p.closed, 0, 1) {
		return nil
	}
	return sys.CloseFD(p.fd)
}

// Pin pins the program's fd at path.
func (p *Program) Pin(root, path string) error {
	if err := sys.ValidatePinPath(root, path); err != nil {
		return err
	}
	if err := sys.ObjPin(p.fd, path); err != nil {
		return ebpferr.New("Pin", ebpferr.KindMap, "BPF_OBJ_PIN failed", err)
	}
	return nil
}

// OpenPinnedProgram returns a Program wrapping the fd pinned at path.
func OpenPinnedProgram(path string, spec ProgramSpec) (*Program, error) {
	fd, err := sys.ObjGet(path)
	if err != nil {
		return nil, ebpferr.New("OpenPinnedProgram", ebpferr.KindMap, "BPF_OBJ_GET failed", err)
	}
	return &Program{fd: fd, spec: spec}, nil
}
