// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package observe

import (
	"bytes"

	ebpf "github.com/tetrabpf/goebpf"
	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

// maxUpdateRetries bounds MapEntry.Update's lookup-apply-update loop
// (spec.md §4.10 "retries on conflict ... at-least retry-on-miss
// semantics"); a key that keeps disappearing out from under the retry
// loop this many times in a row is treated as a genuine failure rather
// than retried forever.
const maxUpdateRetries = 8

// MapEntry is the observation handle over a single map key (spec.md
// §4.10 "Map-entry handle").
type MapEntry struct {
	closedFlag
	m   *ebpf.Map
	key []byte
}

// NewMapEntry wraps key within m.
func NewMapEntry(m *ebpf.Map, key []byte) *MapEntry {
	return &MapEntry{m: m, key: append([]byte(nil), key...)}
}

// Get dereferences the entry's current value.
func (e *MapEntry) Get() ([]byte, error) {
	if err := e.check("MapEntry.Get"); err != nil {
		return nil, err
	}
	return e.m.Lookup(e.key)
}

// Set unconditionally writes value.
func (e *MapEntry) Set(value []byte) error {
	if err := e.check("MapEntry.Set"); err != nil {
		return err
	}
	return e.m.Update(e.key, value, ebpf.UpdateAny)
}

// Update does lookup -> apply(fn) -> update(MustExist), retrying the
// whole sequence if the key vanished between the lookup and the update
// (spec.md: "no true CAS at the kernel level — at-least retry-on-miss
// semantics are documented"). fn receives the current value and returns
// the value to write.
func (e *MapEntry) Update(fn func(old []byte) ([]byte, error)) error {
	if err := e.check("MapEntry.Update"); err != nil {
		return err
	}
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		old, err := e.m.Lookup(e.key)
		if err != nil {
			return err
		}
		next, err := fn(old)
		if err != nil {
			return err
		}
		err = e.m.Update(e.key, next, ebpf.UpdateExist)
		if err == nil {
			return nil
		}
		if sys.MapErrorDetail(err) == ebpferr.KeyNotFound {
			continue // key was deleted concurrently; retry from lookup
		}
		return err
	}
	return ebpferr.New("MapEntry.Update", ebpferr.KindMap, "exceeded retry budget racing a concurrent mutator", nil)
}

// CompareAndSet reads the current value and, if it equals old, writes
// new. Reports whether the write happened. This is read-then-write, not a
// kernel-level atomic compare-and-swap (spec.md: "under the caller's
// expectation that external mutation is rare").
func (e *MapEntry) CompareAndSet(old, newValue []byte) (bool, error) {
	if err := e.check("MapEntry.CompareAndSet"); err != nil {
		return false, err
	}
	current, err := e.m.Lookup(e.key)
	if err != nil {
		return false, err
	}
	if !bytes.Equal(current, old) {
		return false, nil
	}
	if err := e.m.Update(e.key, newValue, ebpf.UpdateAny); err != nil {
		return false, err
	}
	return true, nil
}

// Close marks the handle closed. Safe to call more than once.
func (e *MapEntry) Close() error { e.set(); return nil }
