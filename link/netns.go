// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package link

import (
	"runtime"

	"github.com/vishvananda/netns"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// Netns switches the calling OS thread into the network namespace at path
// for the duration of an XDP/TC attach call, returning a restore function
// that switches back. The caller must keep the restore on the same
// goroutine (runtime.LockOSThread is held until restore runs), since
// namespaces are per-thread kernel state.
func Netns(path string) (restore func() error, err error) {
	runtime.LockOSThread()

	orig, err := netns.Get()
	if err != nil {
		runtime.UnlockOSThread()
		return nil, ebpferr.New("Netns", ebpferr.KindAttach, "failed to capture current namespace", err)
	}

	target, err := netns.GetFromPath(path)
	if err != nil {
		orig.Close()
		runtime.UnlockOSThread()
		return nil, ebpferr.New("Netns", ebpferr.KindAttach, "failed to open namespace "+path, err)
	}
	defer target.Close()

	if err := netns.Set(target); err != nil {
		orig.Close()
		runtime.UnlockOSThread()
		return nil, ebpferr.New("Netns", ebpferr.KindAttach, "failed to switch namespace", err)
	}

	return func() error {
		defer runtime.UnlockOSThread()
		defer orig.Close()
		return netns.Set(orig)
	}, nil
}
