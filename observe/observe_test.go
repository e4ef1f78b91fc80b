// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package observe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tetrabpf/goebpf/ebpferr"
)

func TestClosedFlagSetIsOnceTrue(t *testing.T) {
	var f closedFlag
	require.False(t, f.isClosed())
	require.NoError(t, f.check("op"))

	require.True(t, f.set())
	require.False(t, f.set(), "second set must report it was already closed")
	require.True(t, f.isClosed())

	err := f.check("op")
	require.Error(t, err)
	var e *ebpferr.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ebpferr.KindClosed, e.Kind)
}

func TestDeadlineAfterZeroNeverFires(t *testing.T) {
	ch, stop := deadlineAfter(0)
	defer stop()
	require.Nil(t, ch)
}

func TestDeadlineAfterFires(t *testing.T) {
	ch, stop := deadlineAfter(5 * time.Millisecond)
	defer stop()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("deadline never fired")
	}
}

// fakeChan implements popper and pusher over an in-memory slice, standing
// in for a Queue/Stack so Channel's composition can be tested without a
// real kernel map.
type fakeChan struct {
	values [][]byte
}

func (f *fakeChan) Push(value []byte) error {
	f.values = append(f.values, append([]byte(nil), value...))
	return nil
}

func (f *fakeChan) PopTimeout(timeout time.Duration) ([]byte, error) {
	if len(f.values) == 0 {
		return nil, timedOut("fakeChan.Pop")
	}
	v := f.values[0]
	f.values = f.values[1:]
	return v, nil
}

func TestChannelSendReceive(t *testing.T) {
	c := NewChannel(&fakeChan{})
	require.NoError(t, c.Send([]byte("a")))
	require.NoError(t, c.Send([]byte("b")))

	got, err := c.Receive(0)
	require.NoError(t, err)
	require.Equal(t, []byte("a"), got)

	got, err = c.Receive(0)
	require.NoError(t, err)
	require.Equal(t, []byte("b"), got)

	_, err = c.Receive(0)
	require.Error(t, err)
}

func TestRingBufferOnEventAndGet(t *testing.T) {
	rb := &RingBuffer{events: make(chan []byte, 1)}
	rb.onEvent([]byte("first"))
	rb.onEvent([]byte("dropped")) // buffer full; counted, not delivered

	got, err := rb.GetTimeout(100 * time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), got)
	require.Equal(t, int64(1), rb.DroppedEvents())
}

func TestRingBufferGetTimeoutOnEmpty(t *testing.T) {
	rb := &RingBuffer{events: make(chan []byte, 1)}
	_, err := rb.GetTimeout(5 * time.Millisecond)
	require.Error(t, err)
}

func TestRingBufferGetAfterClosedFails(t *testing.T) {
	rb := &RingBuffer{events: make(chan []byte, 1)}
	rb.set()
	_, err := rb.GetTimeout(5 * time.Millisecond)
	require.Error(t, err)
}

// TestRingBufferGetUnblocksOnConcurrentClose grounds spec.md §8's "closing
// a handle causes any outstanding timed-get to return the timeout
// sentinel within one poll interval plus a small slack" for RingBuffer:
// a Get blocked with no event available must wake up shortly after the
// closed-flag flips from another goroutine, rather than waiting out a
// long (or infinite) timeout.
func TestRingBufferGetUnblocksOnConcurrentClose(t *testing.T) {
	rb := &RingBuffer{events: make(chan []byte, 1)}

	done := make(chan error, 1)
	go func() {
		_, err := rb.GetTimeout(time.Hour)
		done <- err
	}()

	time.Sleep(2 * defaultPollInterval)
	rb.set()

	select {
	case err := <-done:
		require.Error(t, err)
		var e *ebpferr.Error
		require.ErrorAs(t, err, &e)
		require.Equal(t, ebpferr.KindTimeout, e.Kind)
	case <-time.After(time.Second):
		t.Fatal("Get did not unblock within one poll interval of Close")
	}
}
