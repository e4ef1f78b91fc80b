// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package observe

import (
	"time"

	ebpf "github.com/tetrabpf/goebpf"
	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

// defaultPollInterval is how often a Queue/Stack Pop retries
// BPF_MAP_LOOKUP_AND_DELETE_ELEM while waiting for an entry: QUEUE/STACK
// maps have no kernel-side blocking primitive, so a handle's "blocking
// pop" is a short poll loop (spec.md §4.10 "Queue handle: blocking/timed
// pop with no key").
const defaultPollInterval = 10 * time.Millisecond

// Queue is the observation handle over a BPF_MAP_TYPE_QUEUE map.
type Queue struct {
	closedFlag
	m            *ebpf.Map
	pollInterval time.Duration
}

// NewQueue wraps m, which must have been created with MapTypeQueue.
func NewQueue(m *ebpf.Map) *Queue { return &Queue{m: m, pollInterval: defaultPollInterval} }

// Pop blocks until an entry is available or the handle is closed.
func (q *Queue) Pop() ([]byte, error) { return q.PopTimeout(0) }

// PopTimeout blocks until an entry is available, the handle closes, or
// timeout elapses (0 blocks forever).
func (q *Queue) PopTimeout(timeout time.Duration) ([]byte, error) {
	return pollPop(&q.closedFlag, q.m, q.pollInterval, timeout, "Queue.Pop")
}

// Push appends value to the queue (spec.md "Queue/Stack writer: transient
// append (push)").
func (q *Queue) Push(value []byte) error {
	if err := q.check("Queue.Push"); err != nil {
		return err
	}
	return q.m.Update(nil, value, ebpf.UpdateAny)
}

// Close marks the handle closed. Safe to call more than once.
func (q *Queue) Close() error { q.set(); return nil }

// Stack is the observation handle over a BPF_MAP_TYPE_STACK map: identical
// operations to Queue, LIFO ordering comes entirely from the kernel map
// type (spec.md §4.10 "Stack handle: blocking/timed pop, LIFO").
type Stack struct {
	closedFlag
	m            *ebpf.Map
	pollInterval time.Duration
}

// NewStack wraps m, which must have been created with MapTypeStack.
func NewStack(m *ebpf.Map) *Stack { return &Stack{m: m, pollInterval: defaultPollInterval} }

func (s *Stack) Pop() ([]byte, error) { return s.PopTimeout(0) }

func (s *Stack) PopTimeout(timeout time.Duration) ([]byte, error) {
	return pollPop(&s.closedFlag, s.m, s.pollInterval, timeout, "Stack.Pop")
}

func (s *Stack) Push(value []byte) error {
	if err := s.check("Stack.Push"); err != nil {
		return err
	}
	return s.m.Update(nil, value, ebpf.UpdateAny)
}

func (s *Stack) Close() error { s.set(); return nil }

// pollPop is Queue.PopTimeout/Stack.PopTimeout's shared retry loop:
// BPF_MAP_LOOKUP_AND_DELETE_ELEM with a nil key either returns the front
// entry or KeyNotFound if the map is empty, so "blocking" means retrying
// on an interval until an entry appears, the handle closes, or the
// deadline passes.
func pollPop(flag *closedFlag, m *ebpf.Map, interval, timeout time.Duration, op string) ([]byte, error) {
	if err := flag.check(op); err != nil {
		return nil, err
	}
	deadline, stop := deadlineAfter(timeout)
	defer stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	value := make([]byte, m.Spec().ValueSize)
	for {
		if flag.isClosed() {
			return nil, timedOut(op)
		}
		err := m.LookupAndDelete(nil, value)
		if err == nil {
			return append([]byte(nil), value...), nil
		}
		if sys.MapErrorDetail(err) != ebpferr.KeyNotFound {
			return nil, err
		}
		select {
		case <-ticker.C:
		case <-deadline:
			return nil, timedOut(op)
		}
	}
}
