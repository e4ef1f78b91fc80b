// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package perf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildRing(dataPages int) (header, data []byte) {
	header = make([]byte, pageSize)
	data = make([]byte, dataPages*pageSize)
	return
}

func writeSample(data []byte, off uint64, payload []byte) uint64 {
	size := uint16(8 + 4 + len(payload))
	binary.LittleEndian.PutUint32(data[off:], RecordSample)
	binary.LittleEndian.PutUint16(data[off+6:], size)
	binary.LittleEndian.PutUint32(data[off+8:], uint32(len(payload)))
	copy(data[off+12:], payload)
	return uint64(size)
}

func writeLost(data []byte, off uint64, count uint64) uint64 {
	size := uint16(8 + 8)
	binary.LittleEndian.PutUint32(data[off:], RecordLost)
	binary.LittleEndian.PutUint16(data[off+6:], size)
	binary.LittleEndian.PutUint64(data[off+8:], count)
	return uint64(size)
}

func TestOpenRejectsNonPowerOfTwo(t *testing.T) {
	_, err := Open(nil, 3, func(int, []byte) {}, Options{})
	require.Error(t, err)
}

func TestDrainSample(t *testing.T) {
	header, data := buildRing(2)
	payload := []byte("hello")
	n := writeSample(data, 0, payload)
	binary.LittleEndian.PutUint64(header[dataHeadOff:], n)

	c := &Consumer{
		rings:   []perCPURing{{cpu: 0, mm: append(append([]byte{}, header...), data...)}},
		dataLen: uint64(len(data)),
	}
	var gotCPU int
	var got []byte
	c.handler = func(cpu int, b []byte) { gotCPU = cpu; got = append([]byte(nil), b...) }
	c.drain(0)

	require.Equal(t, 0, gotCPU)
	require.Equal(t, payload, got)
	require.Equal(t, uint64(1), c.Stats().EventsProcessed)
}

func TestDrainLost(t *testing.T) {
	header, data := buildRing(2)
	n := writeLost(data, 0, 7)
	binary.LittleEndian.PutUint64(header[dataHeadOff:], n)

	c := &Consumer{
		rings:   []perCPURing{{cpu: 0, mm: append(append([]byte{}, header...), data...)}},
		dataLen: uint64(len(data)),
	}
	var gotLost uint64
	c.handler = func(int, []byte) { t.Fatal("sample handler must not run for a lost record") }
	c.onLost = func(cpu int, count uint64) { gotLost = count }
	c.drain(0)

	require.Equal(t, uint64(7), gotLost)
	require.Equal(t, uint64(7), c.Stats().LostEvents)
}

func TestDrainOutOfRangeCPUIsNoop(t *testing.T) {
	c := &Consumer{}
	c.drain(5)
}

// writeAt writes b into the circular buffer data starting at the unmasked
// position off, wrapping past the end the way the real kernel writer does.
func writeAt(data []byte, off uint64, b []byte) {
	dataLen := uint64(len(data))
	for i, v := range b {
		data[(off+uint64(i))%dataLen] = v
	}
}

// writeSampleWrapped is writeSample but placed directly at a raw (possibly
// near-the-end) offset via writeAt, so the record's header and/or body can
// straddle the end of the data region.
func writeSampleWrapped(data []byte, off uint64, payload []byte) uint64 {
	size := uint16(8 + 4 + len(payload))
	hdr := make([]byte, 8)
	binary.LittleEndian.PutUint32(hdr[0:], RecordSample)
	binary.LittleEndian.PutUint16(hdr[6:], size)
	writeAt(data, off, hdr)

	body := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(body[0:], uint32(len(payload)))
	copy(body[4:], payload)
	writeAt(data, off+8, body)
	return uint64(size)
}

// TestReadWrappedAcrossBoundary is the direct unit test for the split-read
// helper: a 6-byte read starting 3 bytes before the end of an 8-byte region
// must stitch the tail segment and the wrapped head segment together.
func TestReadWrappedAcrossBoundary(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	mask := uint64(len(data) - 1)
	got := readWrapped(data, mask, 5, 6)
	require.Equal(t, []byte{5, 6, 7, 0, 1, 2}, got)
}

func TestReadWrappedNoWrapReturnsSubslice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	mask := uint64(len(data) - 1)
	got := readWrapped(data, mask, 1, 3)
	require.Equal(t, []byte{1, 2, 3}, got)
}

// TestDrainSampleWrapsAcrossEndOfBuffer is the regression test for the
// wraparound bug: a record whose header straddles the end of the per-CPU
// data region (which is single-mapped, unlike the ring buffer map's double
// mapping), with its body continuing at the region's start, must still be
// read correctly instead of panicking or silently reading corrupted bytes.
func TestDrainSampleWrapsAcrossEndOfBuffer(t *testing.T) {
	header, data := buildRing(2)
	dataLen := uint64(len(data))
	payload := []byte("wraparound-payload-crosses-the-seam")
	start := dataLen - 6 // the 8-byte header crosses the end; the body follows the wrap
	n := writeSampleWrapped(data, start, payload)
	binary.LittleEndian.PutUint64(header[dataTailOff:], start)
	binary.LittleEndian.PutUint64(header[dataHeadOff:], start+n)

	c := &Consumer{
		rings:   []perCPURing{{cpu: 0, mm: append(append([]byte{}, header...), data...)}},
		dataLen: dataLen,
	}
	var got []byte
	c.handler = func(cpu int, b []byte) { got = append([]byte(nil), b...) }
	c.drain(0)

	require.Equal(t, payload, got)
	require.Equal(t, uint64(1), c.Stats().EventsRead)
	require.Equal(t, uint64(1), c.Stats().EventsProcessed)
}
