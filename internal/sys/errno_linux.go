// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package sys

import (
	"golang.org/x/sys/unix"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// MapErrorDetail maps a raw errno from a map operation to spec.md §7's
// MapDetail taxonomy: ENOENT -> KeyNotFound, EEXIST -> KeyExists, E2BIG ->
// TableFull, EBADF -> InvalidFd, anything else -> MapGeneric.
func MapErrorDetail(err error) ebpferr.MapDetail {
	switch {
	case err == unix.ENOENT:
		return ebpferr.KeyNotFound
	case err == unix.EEXIST:
		return ebpferr.KeyExists
	case err == unix.E2BIG:
		return ebpferr.TableFull
	case err == unix.EBADF:
		return ebpferr.InvalidFd
	default:
		return ebpferr.MapGeneric
	}
}

// AttachErrorDetail maps a raw errno from an attach operation to spec.md
// §7's AttachDetail taxonomy.
func AttachErrorDetail(err error) ebpferr.AttachDetail {
	switch {
	case err == unix.ENODEV:
		return ebpferr.InterfaceNotFound
	case err == unix.EEXIST:
		return ebpferr.QdiscExists
	case err == unix.EPERM, err == unix.EACCES:
		return ebpferr.PermissionDenied
	case err == unix.EOPNOTSUPP, err == unix.ENOSYS:
		return ebpferr.Unsupported
	default:
		return ebpferr.Unsupported
	}
}
