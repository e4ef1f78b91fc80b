// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package observe

import (
	"sync/atomic"
	"time"

	"github.com/tetrabpf/goebpf/ringbuf"
)

// RingBuffer is the observation handle over a ring buffer consumer
// (spec.md §4.10 "RingBuffer handle"). It buffers decoded events into a
// channel so Get/GetTimeout can present a pull-based contract over the
// consumer's push-based callback.
type RingBuffer struct {
	closedFlag
	consumer *ringbuf.Consumer
	events   chan []byte
	dropped  int64
}

// NewRingBuffer opens a ring buffer consumer over mapFD and buffers up to
// queueLen decoded events for Get/GetTimeout to drain. A full buffer drops
// the newest event rather than blocking the consumer's drain loop; callers
// needing zero loss should keep queueLen generous relative to their own
// Get cadence.
func NewRingBuffer(mapFD, dataSize, queueLen int, opts ringbuf.Options) (*RingBuffer, error) {
	rb := &RingBuffer{events: make(chan []byte, queueLen)}
	c, err := ringbuf.Open(mapFD, dataSize, rb.onEvent, opts)
	if err != nil {
		return nil, err
	}
	rb.consumer = c
	return rb, nil
}

func (r *RingBuffer) onEvent(data []byte) {
	cp := append([]byte(nil), data...)
	select {
	case r.events <- cp:
	default:
		atomic.AddInt64(&r.dropped, 1)
	}
}

// Get blocks until the next event arrives or the handle is closed.
func (r *RingBuffer) Get() ([]byte, error) {
	return r.GetTimeout(0)
}

// GetTimeout blocks until the next event arrives, the handle is closed, or
// timeout elapses (0 blocks forever), returning ebpferr.KindTimeout on
// expiry (spec.md "blocking or timed get ... or a timeout sentinel").
//
// Close() does not close r.events or signal a dedicated done-channel, so
// this ticks on defaultPollInterval and rechecks r.isClosed() between
// waits on r.events, the same pattern Queue/Stack's pollPop and Watcher
// use to satisfy spec.md §8's "closing a handle causes any outstanding
// timed-get to return the timeout sentinel within one poll interval plus
// a small slack."
func (r *RingBuffer) GetTimeout(timeout time.Duration) ([]byte, error) {
	if err := r.check("RingBuffer.Get"); err != nil {
		return nil, err
	}
	deadline, stop := deadlineAfter(timeout)
	defer stop()
	ticker := time.NewTicker(defaultPollInterval)
	defer ticker.Stop()

	for {
		if r.isClosed() {
			return nil, timedOut("RingBuffer.Get")
		}
		select {
		case ev := <-r.events:
			return ev, nil
		case <-ticker.C:
		case <-deadline:
			return nil, timedOut("RingBuffer.Get")
		}
	}
}

// Events returns a channel that yields decoded events until the handle is
// closed, the lazy sequence view spec.md calls for ("pulls until
// timeout/close"). The channel is never closed by this method; range over
// it alongside a context or stop channel of the caller's own.
func (r *RingBuffer) Events() <-chan []byte { return r.events }

// DroppedEvents reports how many events were discarded because the
// internal buffer was full when they arrived.
func (r *RingBuffer) DroppedEvents() int64 { return atomic.LoadInt64(&r.dropped) }

// Stats returns the underlying consumer's counters.
func (r *RingBuffer) Stats() ringbuf.Stats { return r.consumer.Stats() }

// Close stops the underlying consumer and marks the handle closed. Safe
// to call more than once.
func (r *RingBuffer) Close() error {
	if !r.set() {
		return nil
	}
	return r.consumer.Close()
}
