// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package sys

import "golang.org/x/sys/unix"

// CloseFD closes a raw kernel file descriptor (map, program, link, or perf
// event fd -- every handle type in this module is "just a fd" to the
// kernel).
func CloseFD(fd int) error {
	return unix.Close(fd)
}
