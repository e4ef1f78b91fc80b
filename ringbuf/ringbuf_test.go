// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundUp8(t *testing.T) {
	cases := []struct{ in, want uint32 }{
		{0, 0}, {1, 8}, {7, 8}, {8, 8}, {9, 16}, {32, 32},
	}
	for _, c := range cases {
		require.Equal(t, c.want, roundUp8(c.in))
	}
}

func TestOpenRejectsNonPowerOfTwo(t *testing.T) {
	_, err := Open(-1, 100, func([]byte) {}, Options{})
	require.Error(t, err)
}

// TestDrainSingleRecord is spec.md §8 scenario 5's consumer-side check: a
// 32-byte reservation with a nonzero leading u64 should be delivered to the
// handler exactly once and advance consumer_pos by round_up_8(32)+8 = 40.
func TestDrainSingleRecord(t *testing.T) {
	dataSize := 4096
	posPage := make([]byte, pageSize)
	data := make([]byte, 2*dataSize)

	payload := make([]byte, 32)
	payload[0] = 0xFF
	copy(data[8:], payload)
	// header: len=32, busy/discard clear
	data[0], data[1], data[2], data[3] = 32, 0, 0, 0

	posPage[8] = 40 // producer_pos

	c := &Consumer{posPage: posPage, data: data, mask: uint64(dataSize) - 1}

	var got []byte
	c.handler = func(b []byte) { got = append([]byte(nil), b...) }
	c.drain()

	require.Equal(t, payload, got)
	require.Equal(t, uint64(1), c.Stats().EventsRead)
	require.Equal(t, uint64(1), c.Stats().EventsProcessed)
}

func TestDrainSkipsBusyRecord(t *testing.T) {
	dataSize := 4096
	posPage := make([]byte, pageSize)
	data := make([]byte, 2*dataSize)
	data[3] = 0x80 // busy bit of the 4th (high) byte of a little-endian u32
	posPage[8] = 40

	c := &Consumer{posPage: posPage, data: data, mask: uint64(dataSize) - 1}
	c.handler = func([]byte) { t.Fatal("handler must not run on a busy record") }
	c.drain()
	require.Equal(t, uint64(0), c.Stats().EventsRead)
}

func TestDrainSkipsDiscarded(t *testing.T) {
	dataSize := 4096
	posPage := make([]byte, pageSize)
	data := make([]byte, 2*dataSize)
	data[0] = 8    // len=8, so the record spans round_up_8(8)+8 = 16 bytes
	data[3] = 0x40 // discard bit: bit 30 of the little-endian u32 falls in its high byte
	posPage[8] = 16

	c := &Consumer{posPage: posPage, data: data, mask: uint64(dataSize) - 1}
	c.handler = func([]byte) { t.Fatal("handler must not run on a discarded record") }
	c.drain()
	require.Equal(t, uint64(1), c.Stats().EventsRead)
	require.Equal(t, uint64(0), c.Stats().EventsProcessed)
}
