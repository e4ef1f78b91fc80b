// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ebpf

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequiresKeySizeFour(t *testing.T) {
	require.True(t, requiresKeySizeFour(MapTypeArray))
	require.True(t, requiresKeySizeFour(MapTypePerCPUArray))
	require.False(t, requiresKeySizeFour(MapTypeHash))
}

func TestNewMapRejectsWrongArrayKeySize(t *testing.T) {
	_, err := NewMap(MapSpec{Type: MapTypeArray, KeySize: 8, ValueSize: 4, MaxEntries: 1})
	require.Error(t, err)
}

func TestNewMapRejectsNonPowerOfTwoRingBuf(t *testing.T) {
	_, err := NewMap(MapSpec{Type: MapTypeRingBuf, MaxEntries: 5000})
	require.Error(t, err)
}

func TestNewMapRejectsUnalignedRingBuf(t *testing.T) {
	// 2048 is a power of two but smaller than one 4096-byte page.
	_, err := NewMap(MapSpec{Type: MapTypeRingBuf, MaxEntries: 2048})
	require.Error(t, err)
}

// TestSplitJoinChunksRoundTrip grounds the per-CPU / batch buffer packing
// used by LookupBatch/UpdateBatch (spec.md §4.5).
func TestSplitJoinChunksRoundTrip(t *testing.T) {
	chunks := [][]byte{{1, 2}, {3, 4}, {5, 6}}
	joined := joinChunks(chunks)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, joined)

	split := splitChunks(joined, 2, 3)
	require.Equal(t, chunks, split)
}

func TestJoinChunksEmpty(t *testing.T) {
	require.Nil(t, joinChunks(nil))
}

// TestStatsForAggregatesPerCPUCounters grounds the "aggregators over
// per-CPU vectors (sum/min/max/avg)" requirement (spec.md §4.5).
func TestStatsForAggregatesPerCPUCounters(t *testing.T) {
	m := &Map{spec: MapSpec{ValueSize: 8}, numCPU: 4}
	raw := make([]byte, 32)
	// little-endian u64 values: 10, 20, 30, 40
	for i, v := range []uint64{10, 20, 30, 40} {
		for b := 0; b < 8; b++ {
			raw[i*8+b] = byte(v >> (8 * b))
		}
	}

	stats, err := m.StatsFor(raw)
	require.NoError(t, err)
	require.Equal(t, float64(100), stats.Sum)
	require.Equal(t, float64(10), stats.Min)
	require.Equal(t, float64(40), stats.Max)
	require.Equal(t, float64(25), stats.Avg)
}

func TestStatsForRejectsWrongShape(t *testing.T) {
	m := &Map{spec: MapSpec{ValueSize: 4}, numCPU: 2}
	_, err := m.StatsFor(make([]byte, 8))
	require.Error(t, err, "StatsFor only supports 8-byte per-CPU counter values")
}

// TestUpdatePerCPURejectsNonPerCPUType grounds spec.md §4.5's per-CPU
// expand-on-update contract: UpdatePerCPU/LookupPerCPU only make sense
// against a per-CPU map type.
func TestUpdatePerCPURejectsNonPerCPUType(t *testing.T) {
	m := &Map{spec: MapSpec{Type: MapTypeHash, ValueSize: 8}, numCPU: 4}
	err := m.UpdatePerCPU(nil, make([]byte, 8), UpdateAny)
	require.Error(t, err)
}

func TestUpdatePerCPURejectsWrongValueSize(t *testing.T) {
	m := &Map{spec: MapSpec{Type: MapTypePerCPUHash, ValueSize: 8}, numCPU: 4}
	err := m.UpdatePerCPU(nil, make([]byte, 4), UpdateAny)
	require.Error(t, err)
}

func TestLookupPerCPURejectsNonPerCPUType(t *testing.T) {
	m := &Map{spec: MapSpec{Type: MapTypeHash, ValueSize: 8}, numCPU: 4}
	_, err := m.LookupPerCPU(nil)
	require.Error(t, err)
}

func TestMapCloseIsIdempotent(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	m := &Map{fd: int(r.Fd())}
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "a second Close must be a no-op, not re-close the fd")
}
