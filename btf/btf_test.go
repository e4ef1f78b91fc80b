// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package btf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// buildBlob assembles a minimal valid BTF blob with one INT type named
// "int" (4 bytes, signed) and one STRUCT type named "foo" with a single
// member "bar" of that INT type at byte offset 0.
func buildBlob(t *testing.T) []byte {
	t.Helper()

	var strs bytes.Buffer
	strs.WriteByte(0) // offset 0 is always the empty string
	intNameOff := uint32(strs.Len())
	strs.WriteString("int\x00")
	structNameOff := uint32(strs.Len())
	strs.WriteString("foo\x00")
	memberNameOff := uint32(strs.Len())
	strs.WriteString("bar\x00")

	var types bytes.Buffer
	// type id 1: INT "int", 4 bytes, signed
	binary.Write(&types, binary.LittleEndian, intNameOff)
	binary.Write(&types, binary.LittleEndian, uint32(KindInt)<<24)
	binary.Write(&types, binary.LittleEndian, uint32(4))
	binary.Write(&types, binary.LittleEndian, uint32(IntSigned)<<24|uint32(32))

	// type id 2: STRUCT "foo" { int bar; }, size 4, vlen 1
	binary.Write(&types, binary.LittleEndian, structNameOff)
	binary.Write(&types, binary.LittleEndian, uint32(KindStruct)<<24|uint32(1))
	binary.Write(&types, binary.LittleEndian, uint32(4))
	binary.Write(&types, binary.LittleEndian, memberNameOff)
	binary.Write(&types, binary.LittleEndian, uint32(1)) // member type = int (id 1)
	binary.Write(&types, binary.LittleEndian, uint32(0)) // bit offset 0

	hdrLen := uint32(24)
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(magic))
	binary.Write(&buf, binary.LittleEndian, uint8(1))
	binary.Write(&buf, binary.LittleEndian, uint8(0))
	binary.Write(&buf, binary.LittleEndian, hdrLen)
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(types.Len()))
	binary.Write(&buf, binary.LittleEndian, uint32(types.Len()))
	binary.Write(&buf, binary.LittleEndian, uint32(strs.Len()))
	buf.Write(types.Bytes())
	buf.Write(strs.Bytes())
	return buf.Bytes()
}

func TestParseAndResolve(t *testing.T) {
	spec, err := Parse(buildBlob(t))
	require.NoError(t, err)
	require.Len(t, spec.Types, 3)

	foo, err := spec.TypeByName("foo")
	require.NoError(t, err)
	require.Equal(t, KindStruct, foo.Kind)
	require.Len(t, foo.Members, 1)
	require.Equal(t, "bar", foo.Members[0].Name)

	size, err := spec.TypeSize(foo)
	require.NoError(t, err)
	require.EqualValues(t, 4, size)
}

// TestParsedStructMatchesExpectedShape compares the full decoded "foo"
// Type against a hand-built expectation with cmp.Diff: a Type's many
// kind-specific fields (Members, Values, Params...) make a
// reflect.DeepEqual failure dump unreadable, so this follows the
// structural-diff convention the other example repos use for this shape
// of struct.
func TestParsedStructMatchesExpectedShape(t *testing.T) {
	spec, err := Parse(buildBlob(t))
	require.NoError(t, err)

	foo, err := spec.TypeByName("foo")
	require.NoError(t, err)

	want := &Type{
		ID:   foo.ID,
		Kind: KindStruct,
		Name: "foo",
		Size: 4,
		Members: []Member{
			{Name: "bar", TypeID: 1, BitOffset: 0},
		},
	}
	if diff := cmp.Diff(want, foo); diff != "" {
		t.Fatalf("parsed \"foo\" type mismatch (-want +got):\n%s", diff)
	}
}

func TestNameIndex(t *testing.T) {
	spec, err := Parse(buildBlob(t))
	require.NoError(t, err)
	idx := spec.NameIndex()
	require.Contains(t, idx, "foo")
	require.Contains(t, idx, "int")
}

func TestResolveAccessPath(t *testing.T) {
	spec, err := Parse(buildBlob(t))
	require.NoError(t, err)
	foo, err := spec.TypeByName("foo")
	require.NoError(t, err)

	res, err := spec.resolveAccessPath(foo.ID, "0")
	require.NoError(t, err)
	require.EqualValues(t, 0, res.byteOffset)
	require.EqualValues(t, 4, res.byteSize)
	require.True(t, res.signed)
}

func TestApplyRelocationFieldOffset(t *testing.T) {
	spec, err := Parse(buildBlob(t))
	require.NoError(t, err)
	foo, err := spec.TypeByName("foo")
	require.NoError(t, err)

	insns := make([]byte, 16)
	rel := Relocation{InsnOffset: 0, TargetID: foo.ID, AccessPath: "0", Kind: RelocFieldByteOffset}
	require.NoError(t, spec.ApplyRelocation(insns, rel))
	require.EqualValues(t, 0, binary.LittleEndian.Uint32(insns[4:8]))
}

func TestApplyRelocationPoisonsOnMissingField(t *testing.T) {
	spec, err := Parse(buildBlob(t))
	require.NoError(t, err)
	foo, err := spec.TypeByName("foo")
	require.NoError(t, err)

	insns := make([]byte, 16)
	rel := Relocation{InsnOffset: 0, TargetID: foo.ID, AccessPath: "99", Kind: RelocFieldByteOffset}
	err = spec.ApplyRelocation(insns, rel)
	require.Error(t, err)
	require.EqualValues(t, uint32(poisonSentinel), binary.LittleEndian.Uint32(insns[4:8]))
}

func TestApplyRelocationFieldExistsWritesZeroOnMiss(t *testing.T) {
	spec, err := Parse(buildBlob(t))
	require.NoError(t, err)
	foo, err := spec.TypeByName("foo")
	require.NoError(t, err)

	insns := make([]byte, 16)
	rel := Relocation{InsnOffset: 0, TargetID: foo.ID, AccessPath: "99", Kind: RelocFieldExists}
	require.NoError(t, spec.ApplyRelocation(insns, rel))
	require.EqualValues(t, 0, binary.LittleEndian.Uint32(insns[4:8]))
}

// buildBitfieldBlob builds a BTF blob with one INT type "u32" (4 bytes,
// unsigned, container for a bitfield) and one STRUCT "bf" with a single
// bitfield member "flags": width 3 bits, starting at bit offset 5 within the
// struct (i.e. within the 4-byte "u32" container that is the struct's only
// member).
func buildBitfieldBlob(t *testing.T) []byte {
	t.Helper()

	var strs bytes.Buffer
	strs.WriteByte(0)
	u32NameOff := uint32(strs.Len())
	strs.WriteString("u32\x00")
	structNameOff := uint32(strs.Len())
	strs.WriteString("bf\x00")
	memberNameOff := uint32(strs.Len())
	strs.WriteString("flags\x00")

	var types bytes.Buffer
	// type id 1: INT "u32", 4 bytes, unsigned
	binary.Write(&types, binary.LittleEndian, u32NameOff)
	binary.Write(&types, binary.LittleEndian, uint32(KindInt)<<24)
	binary.Write(&types, binary.LittleEndian, uint32(4))
	binary.Write(&types, binary.LittleEndian, uint32(32))

	// type id 2: STRUCT "bf" { u32 flags : 3 @ bit 5; }, size 4, vlen 1,
	// KindFlag (bit 31 of info) set to mark members as bitfield-encoded.
	const kindFlag = uint32(1) << 31
	binary.Write(&types, binary.LittleEndian, structNameOff)
	binary.Write(&types, binary.LittleEndian, kindFlag|uint32(KindStruct)<<24|uint32(1))
	binary.Write(&types, binary.LittleEndian, uint32(4))
	binary.Write(&types, binary.LittleEndian, memberNameOff)
	binary.Write(&types, binary.LittleEndian, uint32(1))                 // member type = u32 (id 1)
	binary.Write(&types, binary.LittleEndian, uint32(3)<<24|uint32(5)) // bit_size=3, bit_offset=5

	hdrLen := uint32(24)
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(magic))
	binary.Write(&buf, binary.LittleEndian, uint8(1))
	binary.Write(&buf, binary.LittleEndian, uint8(0))
	binary.Write(&buf, binary.LittleEndian, hdrLen)
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(types.Len()))
	binary.Write(&buf, binary.LittleEndian, uint32(types.Len()))
	binary.Write(&buf, binary.LittleEndian, uint32(strs.Len()))
	buf.Write(types.Bytes())
	buf.Write(strs.Bytes())
	return buf.Bytes()
}

// TestResolveAccessPathBitfieldMember is spec.md §4.6's bitfield case:
// BitSize/BitOffset must survive resolution, not just the truncated
// byte offset.
func TestResolveAccessPathBitfieldMember(t *testing.T) {
	spec, err := Parse(buildBitfieldBlob(t))
	require.NoError(t, err)
	bf, err := spec.TypeByName("bf")
	require.NoError(t, err)

	res, err := spec.resolveAccessPath(bf.ID, "0")
	require.NoError(t, err)
	require.EqualValues(t, 5, res.rawBitOffset)
	require.EqualValues(t, 3, res.bitSize)
	require.EqualValues(t, 4, res.byteSize)
}

// TestApplyRelocationBitfieldShiftsDiffer is the direct regression test for
// the lshift/rshift collapse bug: for a 3-bit field at bit offset 5 inside a
// 4-byte (32-bit) container, lshift = 64-(5+3) = 56 and rshift = 64-3 = 61 --
// they must differ, and must depend on the actual bit offset/width rather
// than only on the container's byte size.
func TestApplyRelocationBitfieldShiftsDiffer(t *testing.T) {
	spec, err := Parse(buildBitfieldBlob(t))
	require.NoError(t, err)
	bf, err := spec.TypeByName("bf")
	require.NoError(t, err)

	lshiftInsns := make([]byte, 16)
	lshiftRel := Relocation{InsnOffset: 0, TargetID: bf.ID, AccessPath: "0", Kind: RelocFieldLShiftU64}
	require.NoError(t, spec.ApplyRelocation(lshiftInsns, lshiftRel))
	lshift := int32(binary.LittleEndian.Uint32(lshiftInsns[4:8]))

	rshiftInsns := make([]byte, 16)
	rshiftRel := Relocation{InsnOffset: 0, TargetID: bf.ID, AccessPath: "0", Kind: RelocFieldRShiftU64}
	require.NoError(t, spec.ApplyRelocation(rshiftInsns, rshiftRel))
	rshift := int32(binary.LittleEndian.Uint32(rshiftInsns[4:8]))

	require.EqualValues(t, 56, lshift)
	require.EqualValues(t, 61, rshift)
	require.NotEqual(t, lshift, rshift)
}

func TestBitfieldShiftDirect(t *testing.T) {
	lshift, err := bitfieldShift(RelocFieldLShiftU64, 4, 5, 3)
	require.NoError(t, err)
	require.EqualValues(t, 56, lshift)

	rshift, err := bitfieldShift(RelocFieldRShiftU64, 4, 5, 3)
	require.NoError(t, err)
	require.EqualValues(t, 61, rshift)

	// A non-bitfield field (bitSize 0) occupies its whole container at
	// offset 0: lshift and rshift both reduce to 64-containerBits.
	lshiftFull, err := bitfieldShift(RelocFieldLShiftU64, 4, 0, 0)
	require.NoError(t, err)
	require.EqualValues(t, 32, lshiftFull)
}

func TestBitfieldShiftRejectsOverflow(t *testing.T) {
	// An 8-byte container with a field starting at bit 60 and 10 bits wide
	// would need 70 bits, more than fit in the 64-bit register it's
	// extracted from.
	_, err := bitfieldShift(RelocFieldLShiftU64, 8, 60, 10)
	require.Error(t, err)
}

func TestBadMagic(t *testing.T) {
	blob := buildBlob(t)
	blob[0] = 0xff
	_, err := Parse(blob)
	require.Error(t, err)
}
