// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package observe implements the deref-able observation handles of
// spec.md §4.10 (component C12): thin synchronous wrappers over a map
// (C7) or an event-transport consumer (C11) that present the same
// blocking-get/timed-get/push/pop/CAS contract regardless of what backs
// them. Every handle carries an atomic closed-flag; any operation on a
// closed handle returns ebpferr.KindClosed (spec.md "All handles carry an
// atomic closed-flag... operations on a closed handle fail with
// HandleClosed"). A blocking or timed get that is already waiting when the
// handle closes returns ebpferr.KindTimeout within one poll interval.
package observe

import (
	"sync/atomic"
	"time"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// handleClosed returns the sentinel every handle op checks for first.
func handleClosed(op string) error {
	return ebpferr.New(op, ebpferr.KindClosed, "handle is closed", nil)
}

// timedOut returns the sentinel a bounded-wait get returns instead of
// blocking forever.
func timedOut(op string) error {
	return ebpferr.New(op, ebpferr.KindTimeout, "deadline exceeded before a value was available", nil)
}

// closedFlag is the shared atomic closed-bit every handle in this package
// embeds.
type closedFlag struct{ v int32 }

func (f *closedFlag) check(op string) error {
	if atomic.LoadInt32(&f.v) != 0 {
		return handleClosed(op)
	}
	return nil
}

func (f *closedFlag) set() bool { return atomic.CompareAndSwapInt32(&f.v, 0, 1) }

func (f *closedFlag) isClosed() bool { return atomic.LoadInt32(&f.v) != 0 }

// deadlineAfter returns a channel-select-friendly deadline: a zero
// Duration blocks forever, matching the Go convention this module uses
// for its Get/Pop variants (GetTimeout(0) behaves like Get).
func deadlineAfter(d time.Duration) (<-chan time.Time, func()) {
	if d <= 0 {
		return nil, func() {}
	}
	timer := time.NewTimer(d)
	return timer.C, func() { timer.Stop() }
}
