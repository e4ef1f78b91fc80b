// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package sys

import (
	"golang.org/x/sys/unix"
)

// Mmap maps length bytes of fd starting at offset, MAP_SHARED, PROT_READ
// plus PROT_WRITE when writable is set -- the access modes the ring buffer /
// perf buffer consumers in this module need (spec.md §4.8/§4.10).
func Mmap(fd int, offset int64, length int, writable bool) ([]byte, error) {
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}
	return unix.Mmap(fd, offset, length, prot, unix.MAP_SHARED)
}

// Munmap unmaps a region returned by Mmap.
func Munmap(b []byte) error {
	return unix.Munmap(b)
}

// EpollFD wraps an epoll(7) instance used by the ring buffer / perf buffer
// poll loops to multiplex several event fds with a single blocking wait.
type EpollFD struct {
	fd int
}

// NewEpoll creates an epoll instance.
func NewEpoll() (*EpollFD, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &EpollFD{fd: fd}, nil
}

// Add registers fd for readability notifications, tagging the event with
// the caller-supplied id (stashed in the epoll_data union) so the poll loop
// can map a ready event back to its source ring/perf buffer.
func (e *EpollFD) Add(fd int, id uint64) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(id)}
	return unix.EpollCtl(e.fd, unix.EPOLL_CTL_ADD, fd, &ev)
}

// Remove deregisters fd.
func (e *EpollFD) Remove(fd int) error {
	return unix.EpollCtl(e.fd, unix.EPOLL_CTL_DEL, fd, nil)
}

// Wait blocks until at least one registered fd is readable or timeoutMS
// elapses (-1 blocks indefinitely), returning the ids passed to Add for the
// ready fds.
func (e *EpollFD) Wait(timeoutMS int) ([]uint64, error) {
	events := make([]unix.EpollEvent, 32)
	n, err := unix.EpollWait(e.fd, events, timeoutMS)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, uint64(uint32(events[i].Fd)))
	}
	return ids, nil
}

// Close releases the epoll instance.
func (e *EpollFD) Close() error {
	return unix.Close(e.fd)
}
