// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package ringbuf consumes a BPF_MAP_TYPE_RINGBUF map: a single-producer
// (from the kernel side, many CPUs)/single-consumer mmap'd event log
// (spec.md §3 "Ring buffer state", §4.9, component C11). One Consumer owns
// one ring; the kernel rejects a second R/W consumer mmap of the same map,
// so callers must not open more than one Consumer per map fd.
package ringbuf

import (
	"sync"
	"sync/atomic"

	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

const pageSize = 4096

// header bits (spec.md §3 "Ring-buffer record header").
const (
	lenBusyBit    = uint32(1) << 31
	lenDiscardBit = uint32(1) << 30
	lenMask       = lenBusyBit | lenDiscardBit
)

// Stats counts the consumer's own activity (spec.md §4.9 "maintain
// counters for events-read, events-processed, polls, errors"), read with
// atomics so a caller may poll it from another goroutine without racing
// the drain loop.
type Stats struct {
	EventsRead      uint64
	EventsProcessed uint64
	Polls           uint64
	Errors          uint64
}

// Handler is invoked once per undiscarded record with its payload bytes.
// The slice is only valid for the duration of the call: it aliases the
// mmap'd ring and is overwritten once the consumer advances past it.
type Handler func(data []byte)

// Options configures Open (spec.md §6 "ring-buffer consumers accept
// {map, callback, buffer-pages, cpu-count, poll-timeout-ms}"; cpu-count
// doesn't apply to a single shared ring buffer and is omitted here).
type Options struct {
	// PollTimeoutMS bounds how long a single epoll_wait waits for
	// readability; 0 uses a 100ms default so Close remains responsive.
	PollTimeoutMS int
}

// Consumer drains one ring buffer map in a dedicated goroutine.
type Consumer struct {
	mapFD   int
	posPage []byte // R/W: consumer_pos at [0:8], producer_pos at [8:16]
	data    []byte // RO: 2x mapping of the ring's data region
	mask    uint64 // dataSize - 1, dataSize is a power of two
	epoll   *sys.EpollFD
	handler Handler
	timeout int
	stats   Stats

	stopCh chan struct{}
	doneCh chan struct{}
	closed int32
	once   sync.Once
}

// Open mmaps the consumer position page and the 2x data region for
// mapFD (spec.md §4.9) and starts the drain goroutine. dataSize is the
// ring's byte size (the map's MaxEntries), already validated as a power of
// two and page-aligned by the map layer.
func Open(mapFD int, dataSize int, handler Handler, opts Options) (*Consumer, error) {
	if dataSize <= 0 || dataSize&(dataSize-1) != 0 {
		return nil, ebpferr.New("ringbuf.Open", ebpferr.KindEncoding, "ring data size must be a positive power of two", nil)
	}
	timeout := opts.PollTimeoutMS
	if timeout <= 0 {
		timeout = 100
	}

	posPage, err := sys.Mmap(mapFD, 0, pageSize, true)
	if err != nil {
		return nil, ebpferr.New("ringbuf.Open", ebpferr.KindSyscall, "mmap consumer position page failed", err)
	}
	data, err := sys.Mmap(mapFD, pageSize, 2*dataSize, false)
	if err != nil {
		_ = sys.Munmap(posPage)
		return nil, ebpferr.New("ringbuf.Open", ebpferr.KindSyscall, "mmap ring data region failed", err)
	}

	epoll, err := sys.NewEpoll()
	if err != nil {
		_ = sys.Munmap(posPage)
		_ = sys.Munmap(data)
		return nil, ebpferr.New("ringbuf.Open", ebpferr.KindSyscall, "epoll create failed", err)
	}
	if err := epoll.Add(mapFD, 0); err != nil {
		_ = epoll.Close()
		_ = sys.Munmap(posPage)
		_ = sys.Munmap(data)
		return nil, ebpferr.New("ringbuf.Open", ebpferr.KindSyscall, "epoll add failed", err)
	}

	c := &Consumer{
		mapFD:   mapFD,
		posPage: posPage,
		data:    data,
		mask:    uint64(dataSize) - 1,
		epoll:   epoll,
		handler: handler,
		timeout: timeout,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go c.loop()
	return c, nil
}

func (c *Consumer) loop() {
	defer close(c.doneCh)
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}
		if _, err := c.epoll.Wait(c.timeout); err != nil {
			atomic.AddUint64(&c.stats.Errors, 1)
			log().Warnw("ringbuf poll failed", "error", err)
			continue
		}
		atomic.AddUint64(&c.stats.Polls, 1)
		c.drain()
	}
}

// drain runs one pass of spec.md §4.9's drain loop: read producer_pos with
// acquire ordering; while consumer_pos < producer_pos, read the header; a
// set busy bit means the producer hasn't finished writing this record, so
// stop and wait for the next poll rather than spin.
func (c *Consumer) drain() {
	consumer := sys.LoadAcquire64(c.posPage, 0)
	producer := sys.LoadAcquire64(c.posPage, 8)
	for consumer < producer {
		off := consumer & c.mask
		length := sys.LoadAcquire32(c.data, int(off))
		if length&lenBusyBit != 0 {
			break
		}
		payloadLen := length &^ lenMask
		atomic.AddUint64(&c.stats.EventsRead, 1)
		if length&lenDiscardBit == 0 {
			start := int(off) + 8
			c.handler(c.data[start : start+int(payloadLen)])
			atomic.AddUint64(&c.stats.EventsProcessed, 1)
		}
		consumer += uint64(roundUp8(payloadLen)) + 8
		sys.StoreRelease64(c.posPage, 0, consumer)
	}
}

func roundUp8(n uint32) uint32 { return (n + 7) &^ 7 }

// Closed reports whether Close has been called.
func (c *Consumer) Closed() bool { return atomic.LoadInt32(&c.closed) != 0 }

// Stats returns a snapshot of the consumer's counters.
func (c *Consumer) Stats() Stats {
	return Stats{
		EventsRead:      atomic.LoadUint64(&c.stats.EventsRead),
		EventsProcessed: atomic.LoadUint64(&c.stats.EventsProcessed),
		Polls:           atomic.LoadUint64(&c.stats.Polls),
		Errors:          atomic.LoadUint64(&c.stats.Errors),
	}
}

// Close stops the drain goroutine and releases the mmaps, the epoll
// instance, and (per spec.md §5 "Ring-buffer mmap is released by unmap +
// close in that order") unmaps before closing. Safe to call more than
// once; blocks until the drain goroutine has actually exited so a caller
// can rely on the handler never running again once Close returns.
func (c *Consumer) Close() error {
	var err error
	c.once.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		close(c.stopCh)
		<-c.doneCh
		if e := sys.Munmap(c.data); e != nil {
			err = e
		}
		if e := sys.Munmap(c.posPage); e != nil {
			err = e
		}
		if e := c.epoll.Close(); e != nil {
			err = e
		}
	})
	return err
}
