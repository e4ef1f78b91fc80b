// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

// Package perf consumes a BPF_MAP_TYPE_PERF_EVENT_ARRAY map: one mmap'd
// ring per CPU, each fed by the kernel's perf subsystem rather than a
// single shared ring (spec.md §3 "Perf ring", §4.9, component C11). A
// Consumer owns every per-CPU perf event fd plus its mmap and multiplexes
// them through one epoll instance.
package perf

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

const pageSize = 4096

// Offsets into struct perf_event_mmap_page (linux/perf_event.h) of the
// bidirectional position fields every per-CPU ring's header page carries.
const (
	dataHeadOff = 1024
	dataTailOff = 1032
)

// Perf record types this consumer understands (linux/perf_event.h
// perf_event_type); every other type is skipped.
const (
	RecordLost   = 2
	RecordSample = 9
)

// Stats counts the consumer's own activity, mirroring ringbuf.Stats
// (spec.md §4.9).
type Stats struct {
	EventsRead      uint64
	EventsProcessed uint64
	Polls           uint64
	Errors          uint64
	LostEvents      uint64
}

// SampleHandler is invoked once per PERF_RECORD_SAMPLE, with the CPU it
// was read from and the raw sample payload.
type SampleHandler func(cpu int, data []byte)

// LostHandler is invoked once per PERF_RECORD_LOST, with the CPU and the
// number of events the kernel dropped before this record.
type LostHandler func(cpu int, count uint64)

// Options configures Open.
type Options struct {
	// PollTimeoutMS bounds a single epoll_wait; 0 uses a 100ms default.
	PollTimeoutMS int
	OnLost        LostHandler // optional; defaults to counting into Stats only
}

type perCPURing struct {
	fd  int
	mm  []byte // header page + 2^n data pages
	cpu int
}

// Consumer drains every per-CPU ring of one perf event array in a
// dedicated goroutine.
type Consumer struct {
	rings   []perCPURing
	dataLen uint64 // data region size per CPU, a power of two
	epoll   *sys.EpollFD
	handler SampleHandler
	onLost  LostHandler
	timeout int
	stats   Stats

	stopCh chan struct{}
	doneCh chan struct{}
	closed int32
	once   sync.Once
}

// Open opens one perf_event_open'd, mmap'd ring per entry in perfFDs
// (indexed by CPU, as produced by the attach plane's per-CPU perf event
// creation) and starts the drain goroutine. bufferPages is the number of
// data pages per CPU and must be a power of two.
func Open(perfFDs []int, bufferPages int, handler SampleHandler, opts Options) (*Consumer, error) {
	if bufferPages <= 0 || bufferPages&(bufferPages-1) != 0 {
		return nil, ebpferr.New("perf.Open", ebpferr.KindEncoding, "buffer pages must be a positive power of two", nil)
	}
	timeout := opts.PollTimeoutMS
	if timeout <= 0 {
		timeout = 100
	}
	dataLen := bufferPages * pageSize

	epoll, err := sys.NewEpoll()
	if err != nil {
		return nil, ebpferr.New("perf.Open", ebpferr.KindSyscall, "epoll create failed", err)
	}

	rings := make([]perCPURing, 0, len(perfFDs))
	cleanup := func() {
		for _, r := range rings {
			_ = sys.Munmap(r.mm)
		}
		_ = epoll.Close()
	}

	for cpu, fd := range perfFDs {
		mm, merr := sys.Mmap(fd, 0, pageSize+dataLen, true)
		if merr != nil {
			cleanup()
			return nil, ebpferr.New("perf.Open", ebpferr.KindSyscall, "mmap per-cpu perf ring failed", merr)
		}
		if aerr := epoll.Add(fd, uint64(cpu)); aerr != nil {
			_ = sys.Munmap(mm)
			cleanup()
			return nil, ebpferr.New("perf.Open", ebpferr.KindSyscall, "epoll add failed", aerr)
		}
		rings = append(rings, perCPURing{fd: fd, mm: mm, cpu: cpu})
	}

	c := &Consumer{
		rings:   rings,
		dataLen: uint64(dataLen),
		epoll:   epoll,
		handler: handler,
		onLost:  opts.OnLost,
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
		ids, err := c.epoll.Wait(c.timeout)
		if err != nil {
			atomic.AddUint64(&c.stats.Errors, 1)
			log().Warnw("perf poll failed", "error", err)
			continue
		}
		atomic.AddUint64(&c.stats.Polls, 1)
		for _, cpu := range ids {
			c.drain(int(cpu))
		}
	}
}

// readWrapped copies n bytes starting at the unmasked position off out of
// data, a single-mapped (not double-mapped, unlike the ring buffer map)
// per-CPU perf data region of length mask+1. Unlike the ring buffer map
// (spec.md §9 "Mmap safety" -- mapped twice back-to-back so every record is
// contiguous), the real kernel perf ring is mapped only once, so a record
// whose header or body straddles the end of the region genuinely wraps and
// must be reassembled from the two wrapped segments before it can be parsed
// as a contiguous byte slice.
func readWrapped(data []byte, mask, off, n uint64) []byte {
	start := off & mask
	size := uint64(len(data))
	if start+n <= size {
		return data[start : start+n]
	}
	buf := make([]byte, n)
	first := size - start
	copy(buf, data[start:])
	copy(buf[first:], data[:n-first])
	return buf
}

// drain runs spec.md §4.9's per-CPU drain loop for one ring: read
// data_head with acquire ordering, walk records between data_tail and
// data_head, dispatch by type, then publish data_tail with release
// ordering.
func (c *Consumer) drain(cpu int) {
	if cpu < 0 || cpu >= len(c.rings) {
		return
	}
	r := c.rings[cpu]
	header := r.mm[:pageSize]
	data := r.mm[pageSize:]
	mask := c.dataLen - 1

	head := sys.LoadAcquire64(header, dataHeadOff)
	tail := sys.LoadAcquire64(header, dataTailOff)
	for tail < head {
		hdr := readWrapped(data, mask, tail, 8)
		typ := binary.LittleEndian.Uint32(hdr[0:4])
		size := binary.LittleEndian.Uint16(hdr[6:8])
		if size < 8 {
			log().Warnw("perf ring malformed record, stopping drain early", "cpu", cpu)
			break // malformed record; stop rather than loop forever
		}
		atomic.AddUint64(&c.stats.EventsRead, 1)
		body := readWrapped(data, mask, tail+8, uint64(size)-8)
		switch typ {
		case RecordSample:
			n := binary.LittleEndian.Uint32(body[:4])
			c.handler(cpu, body[4:4+uint64(n)])
			atomic.AddUint64(&c.stats.EventsProcessed, 1)
		case RecordLost:
			lost := binary.LittleEndian.Uint64(body[:8])
			atomic.AddUint64(&c.stats.LostEvents, lost)
			if c.onLost != nil {
				c.onLost(cpu, lost)
			}
		}
		tail += uint64(size)
		sys.StoreRelease64(header, dataTailOff, tail)
	}
}

// Closed reports whether Close has been called.
func (c *Consumer) Closed() bool { return atomic.LoadInt32(&c.closed) != 0 }

// Stats returns a snapshot of the consumer's counters.
func (c *Consumer) Stats() Stats {
	return Stats{
		EventsRead:      atomic.LoadUint64(&c.stats.EventsRead),
		EventsProcessed: atomic.LoadUint64(&c.stats.EventsProcessed),
		Polls:           atomic.LoadUint64(&c.stats.Polls),
		Errors:          atomic.LoadUint64(&c.stats.Errors),
		LostEvents:      atomic.LoadUint64(&c.stats.LostEvents),
	}
}

// Close stops the drain goroutine and releases every per-CPU mmap, fd,
// and the epoll instance. Safe to call more than once; blocks until the
// drain goroutine has exited.
func (c *Consumer) Close() error {
	var err error
	c.once.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		close(c.stopCh)
		<-c.doneCh
		for _, r := range c.rings {
			if e := sys.Munmap(r.mm); e != nil {
				err = e
			}
			if e := sys.CloseFD(r.fd); e != nil {
				err = e
			}
		}
		if e := c.epoll.Close(); e != nil {
			err = e
		}
	})
	return err
}
