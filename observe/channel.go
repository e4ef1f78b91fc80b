// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package observe

import "time"

// popper and pusher let Channel work over either a Queue or a Stack
// without duplicating its own logic.
type popper interface {
	PopTimeout(timeout time.Duration) ([]byte, error)
}

type pusher interface {
	Push(value []byte) error
}

// Channel is the combined writer+reader view spec.md §4.10 calls for,
// composing a Queue or Stack's Push with its Pop/PopTimeout under one
// name so callers that only care about "send/receive" don't need to know
// which map type backs it.
type Channel struct {
	popper
	pusher
}

// NewChannel wraps any handle that can both Push and PopTimeout — in
// practice a *Queue or a *Stack — into a single send/receive view.
func NewChannel(h interface {
	popper
	pusher
}) *Channel {
	return &Channel{popper: h, pusher: h}
}

// Send is an alias for Push, named for the reader/writer framing.
func (c *Channel) Send(value []byte) error { return c.Push(value) }

// Receive blocks until a value is available, the handle closes, or
// timeout elapses (0 blocks forever).
func (c *Channel) Receive(timeout time.Duration) ([]byte, error) {
	return c.PopTimeout(timeout)
}
