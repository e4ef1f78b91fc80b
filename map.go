// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package ebpf

import (
	"bytes"
	"encoding/binary"
	"runtime"
	"sync/atomic"

	"github.com/tetrabpf/goebpf/ebpferr"
	"github.com/tetrabpf/goebpf/internal/sys"
)

// MapSpec describes a map to be created (spec.md §3 "Map" descriptor).
type MapSpec struct {
	Type       MapType
	KeySize    uint32
	ValueSize  uint32
	MaxEntries uint32
	Flags      uint32
	Name       string
	InnerMapFD int32 // for ArrayOfMaps/HashOfMaps; 0 when not a map-of-maps
}

// Map wraps a kernel map fd plus the metadata needed to serialize keys and
// values (spec.md §4.5).
type Map struct {
	fd      int
	spec    MapSpec
	numCPU  int
	closed  int32
}

// NumCPU is overridable in tests; defaults to runtime.NumCPU().
var NumCPU = runtime.NumCPU

// NewMap issues BPF_MAP_CREATE per spec. Ring buffer maps require
// MaxEntries to be a power of two and page-aligned (spec.md §4.5); array-
// like map types require KeySize == 4 (spec.md §3).
func NewMap(spec MapSpec) (*Map, error) {
	if requiresKeySizeFour(spec.Type) && spec.KeySize != 4 {
		return nil, ebpferr.New("NewMap", ebpferr.KindEncoding, "array-like map types require key-size 4", nil)
	}
	if spec.Type == MapTypeRingBuf {
		if spec.MaxEntries == 0 || spec.MaxEntries&(spec.MaxEntries-1) != 0 {
			return nil, ebpferr.New("NewMap", ebpferr.KindEncoding, "ring buffer byte size must be a power of two", nil)
		}
		if spec.MaxEntries%pageSize != 0 {
			return nil, ebpferr.New("NewMap", ebpferr.KindEncoding, "ring buffer byte size must be page-aligned", nil)
		}
	}

	attr := sys.MapCreateAttr{
		MapType:    uint32(spec.Type),
		KeySize:    spec.KeySize,
		ValueSize:  spec.ValueSize,
		MaxEntries: spec.MaxEntries,
		MapFlags:   spec.Flags,
		InnerMapFD: uint32(spec.InnerMapFD),
	}
	copy(attr.MapName[:], spec.Name)

	fd, err := sys.MapCreate(&attr)
	if err != nil {
		return nil, ebpferr.New("NewMap", ebpferr.KindMap, "BPF_MAP_CREATE failed", err)
	}

	n := 1
	if spec.Type.IsPerCPU() {
		n = NumCPU()
	}
	return &Map{fd: fd, spec: spec, numCPU: n}, nil
}

const pageSize = 4096

func requiresKeySizeFour(t MapType) bool {
	switch t {
	case MapTypeArray, MapTypePerCPUArray, MapTypeProgArray, MapTypeArrayOfMaps, MapTypeCgroupArray:
		return true
	default:
		return false
	}
}

// FD returns the underlying kernel file descriptor.
func (m *Map) FD() int { return m.fd }

// Spec returns the spec this map was created with.
func (m *Map) Spec() MapSpec { return m.spec }

func (m *Map) checkClosed(op string) error {
	if atomic.LoadInt32(&m.closed) != 0 {
		return ebpferr.KindError(ebpferr.KindClosed)
	}
	return nil
}

// Lookup reads the value for key into a freshly allocated buffer. For
// per-CPU map types the returned buffer is ValueSize*numCPU bytes, one
// slot per CPU in CPU order (spec.md §4.5).
func (m *Map) Lookup(key []byte) ([]byte, error) {
	if err := m.checkClosed("Lookup"); err != nil {
		return nil, err
	}
	value := make([]byte, int(m.spec.ValueSize)*m.numCPU)
	if err := sys.MapLookupElem(m.fd, key, value); err != nil {
		return nil, ebpferr.New("Lookup", ebpferr.KindMap, "BPF_MAP_LOOKUP_ELEM failed", err)
	}
	return value, nil
}

// Update writes key/value with the given update semantics.
func (m *Map) Update(key, value []byte, flag MapUpdateFlag) error {
	if err := m.checkClosed("Update"); err != nil {
		return err
	}
	if err := sys.MapUpdateElem(m.fd, key, value, uint64(flag)); err != nil {
		return ebpferr.New("Update", ebpferr.KindMap, "BPF_MAP_UPDATE_ELEM failed", err)
	}
	return nil
}

// UpdatePerCPU replicates a single ValueSize value across every CPU slot
// and writes it with the given update semantics (spec.md §4.5 "Per-CPU
// types expand a single user value to a (value-size × num-cpus) buffer on
// update"). value must be exactly ValueSize bytes; callers who already
// hold a per-CPU vector and want to preserve per-slot positions should
// call Update directly with the pre-expanded ValueSize*numCPU buffer.
func (m *Map) UpdatePerCPU(key, value []byte, flag MapUpdateFlag) error {
	if !m.spec.Type.IsPerCPU() {
		return ebpferr.New("UpdatePerCPU", ebpferr.KindEncoding, "UpdatePerCPU requires a per-CPU map type", nil)
	}
	if len(value) != int(m.spec.ValueSize) {
		return ebpferr.New("UpdatePerCPU", ebpferr.KindEncoding, "value must be exactly ValueSize bytes", nil)
	}
	expanded := make([]byte, int(m.spec.ValueSize)*m.numCPU)
	for i := 0; i < m.numCPU; i++ {
		copy(expanded[i*int(m.spec.ValueSize):], value)
	}
	return m.Update(key, expanded, flag)
}

// LookupPerCPU reads key and splits the result into one ValueSize slice
// per CPU, in CPU order (spec.md §4.5 / §8: "lookup(k) returns a vector
// of length num_cpus where every element equals v (when replicating);
// supplying a vector preserves position").
func (m *Map) LookupPerCPU(key []byte) ([][]byte, error) {
	if !m.spec.Type.IsPerCPU() {
		return nil, ebpferr.New("LookupPerCPU", ebpferr.KindEncoding, "LookupPerCPU requires a per-CPU map type", nil)
	}
	raw, err := m.Lookup(key)
	if err != nil {
		return nil, err
	}
	return splitChunks(raw, int(m.spec.ValueSize), m.numCPU), nil
}

// Delete removes key.
func (m *Map) Delete(key []byte) error {
	if err := m.checkClosed("Delete"); err != nil {
		return err
	}
	if err := sys.MapDeleteElem(m.fd, key); err != nil {
		return ebpferr.New("Delete", ebpferr.KindMap, "BPF_MAP_DELETE_ELEM failed", err)
	}
	return nil
}

// LookupAndDelete atomically looks up and removes key (used by Queue/Stack
// pop semantics, spec.md §4.10).
func (m *Map) LookupAndDelete(key, value []byte) error {
	if err := m.checkClosed("LookupAndDelete"); err != nil {
		return err
	}
	if err := sys.MapLookupAndDeleteElem(m.fd, key, value); err != nil {
		return ebpferr.New("LookupAndDelete", ebpferr.KindMap, "BPF_MAP_LOOKUP_AND_DELETE_ELEM failed", err)
	}
	return nil
}

// Iterate walks every key via MAP_GET_NEXT_KEY starting from a null key
// (spec.md §4.5), invoking fn for each. Stops and returns nil when the
// kernel reports no further keys.
func (m *Map) Iterate(fn func(key []byte) error) error {
	if err := m.checkClosed("Iterate"); err != nil {
		return err
	}
	key := make([]byte, m.spec.KeySize)
	next := make([]byte, m.spec.KeySize)
	first := true
	for {
		var cur []byte
		if !first {
			cur = key
		}
		if err := sys.MapGetNextKey(m.fd, cur, next); err != nil {
			if sys.MapErrorDetail(err) == ebpferr.KeyNotFound {
				return nil
			}
			return ebpferr.New("Iterate", ebpferr.KindMap, "BPF_MAP_GET_NEXT_KEY failed", err)
		}
		if err := fn(append([]byte(nil), next...)); err != nil {
			return err
		}
		copy(key, next)
		first = false
	}
}

// LookupBatch reads up to count entries via BPF_MAP_LOOKUP_BATCH, starting
// after the opaque inBatch cursor (pass nil to start from the beginning).
// It returns the decoded keys/values, the cursor to resume from, and
// whether iteration reached the end of the map.
func (m *Map) LookupBatch(inBatch []byte, count uint32) (keys, values [][]byte, outBatch []byte, done bool, err error) {
	if err := m.checkClosed("LookupBatch"); err != nil {
		return nil, nil, nil, false, err
	}
	keyBuf := make([]byte, int(m.spec.KeySize)*int(count))
	valBuf := make([]byte, int(m.spec.ValueSize)*m.numCPU*int(count))
	out := make([]byte, m.spec.KeySize)
	read, done, berr := sys.MapLookupBatch(m.fd, inBatch, out, keyBuf, valBuf, count)
	if berr != nil {
		return nil, nil, nil, false, ebpferr.New("LookupBatch", ebpferr.KindMap, "BPF_MAP_LOOKUP_BATCH failed", berr)
	}
	keys = splitChunks(keyBuf, int(m.spec.KeySize), int(read))
	values = splitChunks(valBuf, int(m.spec.ValueSize)*m.numCPU, int(read))
	return keys, values, out, done, nil
}

// UpdateBatch writes len(keys) entries in one BPF_MAP_UPDATE_BATCH call.
// keys and values must be equal length and every value must be
// ValueSize*numCPU bytes.
func (m *Map) UpdateBatch(keys, values [][]byte, flag MapUpdateFlag) error {
	if err := m.checkClosed("UpdateBatch"); err != nil {
		return err
	}
	if len(keys) != len(values) {
		return ebpferr.New("UpdateBatch", ebpferr.KindEncoding, "keys and values must be the same length", nil)
	}
	keyBuf := joinChunks(keys)
	valBuf := joinChunks(values)
	if err := sys.MapUpdateBatch(m.fd, keyBuf, valBuf, uint32(len(keys)), uint64(flag)); err != nil {
		return ebpferr.New("UpdateBatch", ebpferr.KindMap, "BPF_MAP_UPDATE_BATCH failed", err)
	}
	return nil
}

func splitChunks(buf []byte, size, count int) [][]byte {
	out := make([][]byte, count)
	for i := 0; i < count; i++ {
		out[i] = append([]byte(nil), buf[i*size:(i+1)*size]...)
	}
	return out
}

func joinChunks(chunks [][]byte) []byte {
	if len(chunks) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(chunks)*len(chunks[0]))
	for _, c := range chunks {
		buf = append(buf, c...)
	}
	return buf
}

// Pin pins the map's fd at path, which must live under root (spec.md §4.5:
// double-pinning the same path fails; paths outside the bpf filesystem
// fail).
func (m *Map) Pin(root, path string) error {
	if err := sys.ValidatePinPath(root, path); err != nil {
		return err
	}
	if err := sys.ObjPin(m.fd, path); err != nil {
		return ebpferr.New("Pin", ebpferr.KindMap, "BPF_OBJ_PIN failed", err)
	}
	return nil
}

// OpenPinned returns a Map wrapping the fd pinned at path. The caller
// supplies the spec describing what was pinned there, since BPF_OBJ_GET
// does not return map metadata.
func OpenPinned(path string, spec MapSpec) (*Map, error) {
	fd, err := sys.ObjGet(path)
	if err != nil {
		return nil, ebpferr.New("OpenPinned", ebpferr.KindMap, "BPF_OBJ_GET failed", err)
	}
	n := 1
	if spec.Type.IsPerCPU() {
		n = NumCPU()
	}
	return &Map{fd: fd, spec: spec, numCPU: n}, nil
}

// Close releases the map's file descriptor. Safe to call more than once.
func (m *Map) Close() error {
	if !atomic.CompareAndSwapInt32(&m.closed, 0, 1) {
		return nil
	}
	return sys.CloseFD(m.fd)
}

// Stats aggregates a per-CPU lookup result (spec.md §4.5's "aggregators
// over per-CPU vectors").
type Stats struct {
	Sum, Min, Max, Avg float64
}

// StatsFor interprets raw as a slice of numCPU little-endian uint64 slots
// (the common counter-map convention) and aggregates them. Callers with a
// different per-CPU value layout should aggregate the raw Lookup() result
// themselves.
func (m *Map) StatsFor(raw []byte) (Stats, error) {
	if len(raw) != int(m.spec.ValueSize)*m.numCPU || m.spec.ValueSize != 8 {
		return Stats{}, ebpferr.New("StatsFor", ebpferr.KindEncoding, "StatsFor requires 8-byte per-CPU counter values", nil)
	}
	var sum float64
	min := ^uint64(0)
	var max uint64
	r := bytes.NewReader(raw)
	for i := 0; i < m.numCPU; i++ {
		var v uint64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return Stats{}, ebpferr.New("StatsFor", ebpferr.KindEncoding, "short per-CPU buffer", err)
		}
		sum += float64(v)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Stats{Sum: sum, Min: float64(min), Max: float64(max), Avg: sum / float64(m.numCPU)}, nil
}
