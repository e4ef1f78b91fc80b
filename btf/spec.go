// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package btf

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/tetrabpf/goebpf/ebpferr"
)

const (
	magic        = 0xeb9f
	expectedVers = 1
)

type rawHeader struct {
	Magic   uint16
	Version uint8
	Flags   uint8
	HdrLen  uint32

	TypeOff uint32
	TypeLen uint32
	StrOff  uint32
	StrLen  uint32
}

// Spec is an immutable, parsed BTF blob (spec.md §9: "expose an explicit
// loader that returns an immutable blob; callers hold the blob for the
// life of their program's build").
type Spec struct {
	Types []*Type // index 0 is the implicit void type; Types[id] has ID==id
}

// LoadKernelSpec reads and parses the vmlinux BTF blob at path (normally
// Config.VmlinuxBTFPath, "/sys/kernel/btf/vmlinux").
func LoadKernelSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ebpferr.New("LoadKernelSpec", ebpferr.KindBTF, "failed to read "+path, err)
	}
	return Parse(data)
}

// Parse decodes a raw BTF blob, per spec.md §4.6: header, then the dense
// type array (ID 0 is the implicit void sentinel), then the string table.
func Parse(data []byte) (*Spec, error) {
	if len(data) < 8 {
		return nil, ebpferr.New("Parse", ebpferr.KindBTF, "blob too short for header", nil)
	}
	r := bytes.NewReader(data)
	var h rawHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, ebpferr.New("Parse", ebpferr.KindBTF, "failed to read header", err)
	}
	if h.Magic != magic {
		return nil, ebpferr.New("Parse", ebpferr.KindBTF, "bad magic, not a BTF blob", nil)
	}
	if h.Version != expectedVers {
		return nil, ebpferr.New("Parse", ebpferr.KindBTF, "unsupported BTF version", nil)
	}

	body := data[h.HdrLen:]
	if int(h.TypeOff+h.TypeLen) > len(body) || int(h.StrOff+h.StrLen) > len(body) {
		return nil, ebpferr.New("Parse", ebpferr.KindBTF, "type/string section out of bounds", nil)
	}
	typeSection := body[h.TypeOff : h.TypeOff+h.TypeLen]
	strSection := body[h.StrOff : h.StrOff+h.StrLen]

	types, err := parseTypes(typeSection, strSection)
	if err != nil {
		return nil, err
	}
	return &Spec{Types: types}, nil
}

func str(strs []byte, off uint32) string {
	if int(off) >= len(strs) {
		return ""
	}
	end := off
	for end < uint32(len(strs)) && strs[end] != 0 {
		end++
	}
	return string(strs[off:end])
}

func parseTypes(typeSection, strs []byte) ([]*Type, error) {
	types := []*Type{{ID: 0, Kind: KindVoid, Name: "void"}}
	r := bytes.NewReader(typeSection)
	id := uint32(1)
	for r.Len() > 0 {
		var nameOff, info, sizeOrType uint32
		if err := binary.Read(r, binary.LittleEndian, &nameOff); err != nil {
			return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated type record", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &info); err != nil {
			return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated type record", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &sizeOrType); err != nil {
			return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated type record", err)
		}
		kind := Kind((info >> 24) & 0x1f)
		kindFlag := info&(1<<31) != 0
		vlen := int(info & 0xffff)

		t := &Type{ID: id, Kind: kind, Name: str(strs, nameOff)}

		switch kind {
		case KindInt:
			var extra uint32
			if err := binary.Read(r, binary.LittleEndian, &extra); err != nil {
				return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated INT payload", err)
			}
			t.Size = sizeOrType
			t.IntEncoding = uint8((extra >> 24) & 0xff)
			t.IntOffset = uint8((extra >> 16) & 0xff)
			t.IntBits = uint8(extra & 0xff)
		case KindPointer, KindTypedef, KindVolatile, KindConst, KindRestrict, KindFunc, KindTypeTag:
			t.Ref = sizeOrType
		case KindArray:
			var arr struct{ ElemType, IndexType, NumElems uint32 }
			if err := binary.Read(r, binary.LittleEndian, &arr); err != nil {
				return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated ARRAY payload", err)
			}
			t.ElemType, t.IndexType, t.NumElems = arr.ElemType, arr.IndexType, arr.NumElems
		case KindStruct, KindUnion:
			t.Size = sizeOrType
			for i := 0; i < vlen; i++ {
				var m struct{ NameOff, Type, Offset uint32 }
				if err := binary.Read(r, binary.LittleEndian, &m); err != nil {
					return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated member", err)
				}
				mem := Member{Name: str(strs, m.NameOff), TypeID: m.Type}
				if kindFlag {
					mem.BitSize = uint8(m.Offset >> 24)
					mem.BitOffset = m.Offset & 0xffffff
				} else {
					mem.BitOffset = m.Offset
				}
				t.Members = append(t.Members, mem)
			}
		case KindEnum:
			t.Size = sizeOrType
			for i := 0; i < vlen; i++ {
				var e struct {
					NameOff uint32
					Val     int32
				}
				if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
					return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated enum value", err)
				}
				t.Values = append(t.Values, EnumValue{Name: str(strs, e.NameOff), Value: int64(e.Val)})
			}
		case KindEnum64:
			t.Size = sizeOrType
			for i := 0; i < vlen; i++ {
				var e struct {
					NameOff      uint32
					ValLo, ValHi uint32
				}
				if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
					return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated enum64 value", err)
				}
				v := int64(e.ValHi)<<32 | int64(e.ValLo)
				t.Values = append(t.Values, EnumValue{Name: str(strs, e.NameOff), Value: v})
			}
		case KindForward:
			t.IsUnionForward = kindFlag
		case KindFuncProto:
			t.Ref = sizeOrType
			for i := 0; i < vlen; i++ {
				var p struct{ NameOff, Type uint32 }
				if err := binary.Read(r, binary.LittleEndian, &p); err != nil {
					return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated func param", err)
				}
				t.Params = append(t.Params, Param{Name: str(strs, p.NameOff), TypeID: p.Type})
			}
		case KindVar:
			var linkage uint32
			if err := binary.Read(r, binary.LittleEndian, &linkage); err != nil {
				return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated VAR payload", err)
			}
			t.Ref = sizeOrType
			t.Linkage = linkage
		case KindDatasec:
			t.Size = sizeOrType
			for i := 0; i < vlen; i++ {
				var sec struct{ Type, Offset, Size uint32 }
				if err := binary.Read(r, binary.LittleEndian, &sec); err != nil {
					return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated datasec entry", err)
				}
				t.Members = append(t.Members, Member{TypeID: sec.Type, BitOffset: sec.Offset * 8, BitSize: 0})
			}
		case KindDeclTag:
			var idx int32
			if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
				return nil, ebpferr.New("parseTypes", ebpferr.KindBTF, "truncated decl_tag payload", err)
			}
			t.Ref = sizeOrType
			t.IndexType = uint32(idx)
		case KindFloat:
			t.Size = sizeOrType
		}

		types = append(types, t)
		id++
	}
	return types, nil
}
