// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package observe

import (
	"bytes"
	"time"

	ebpf "github.com/tetrabpf/goebpf"
	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

// Watcher is the observation handle of spec.md §4.10's "Map-watcher":
// polls a key until it appears or its value changes. Like Queue/Stack,
// there is no kernel-side notification for a map mutation, so waiting
// means polling on an interval.
type Watcher struct {
	closedFlag
	m            *ebpf.Map
	key          []byte
	pollInterval time.Duration
}

// NewWatcher wraps key within m.
func NewWatcher(m *ebpf.Map, key []byte) *Watcher {
	return &Watcher{m: m, key: append([]byte(nil), key...), pollInterval: defaultPollInterval}
}

// WaitForValue blocks until key's value differs from baseline, the
// handle closes, or timeout elapses (0 blocks forever), returning the new
// value.
func (w *Watcher) WaitForValue(baseline []byte, timeout time.Duration) ([]byte, error) {
	if err := w.check("Watcher.WaitForValue"); err != nil {
		return nil, err
	}
	deadline, stop := deadlineAfter(timeout)
	defer stop()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		if w.isClosed() {
			return nil, timedOut("Watcher.WaitForValue")
		}
		v, err := w.m.Lookup(w.key)
		if err == nil && !bytes.Equal(v, baseline) {
			return v, nil
		}
		if err != nil && sys.MapErrorDetail(err) != ebpferr.KeyNotFound {
			return nil, err
		}
		select {
		case <-ticker.C:
		case <-deadline:
			return nil, timedOut("Watcher.WaitForValue")
		}
	}
}

// WaitForKey blocks until key exists, the handle closes, or timeout
// elapses, returning its value once found.
func (w *Watcher) WaitForKey(timeout time.Duration) ([]byte, error) {
	if err := w.check("Watcher.WaitForKey"); err != nil {
		return nil, err
	}
	deadline, stop := deadlineAfter(timeout)
	defer stop()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		if w.isClosed() {
			return nil, timedOut("Watcher.WaitForKey")
		}
		v, err := w.m.Lookup(w.key)
		if err == nil {
			return v, nil
		}
		if sys.MapErrorDetail(err) != ebpferr.KeyNotFound {
			return nil, err
		}
		select {
		case <-ticker.C:
		case <-deadline:
			return nil, timedOut("Watcher.WaitForKey")
		}
	}
}

// Close marks the handle closed. Safe to call more than once.
func (w *Watcher) Close() error { w.set(); return nil }
