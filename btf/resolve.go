// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

package btf

import "github.com/tetrabpf/goebpf/ebpferr"

// TypeByName does an O(n) scan for the first type named name (spec.md
// §4.6: "Indexed lookup by name is O(n) scan; callers are expected to
// cache" -- see NameIndex for the caching helper).
func (s *Spec) TypeByName(name string) (*Type, error) {
	for _, t := range s.Types {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, ebpferr.New("TypeByName", ebpferr.KindBTF, "type "+name+" not found", nil)
}

// NameIndex builds a name -> *Type map a caller can reuse across many
// lookups within one program build, without this package hiding a
// process-wide cache (spec.md §9's "Global kernel BTF cache" note).
func (s *Spec) NameIndex() map[string]*Type {
	idx := make(map[string]*Type, len(s.Types))
	for _, t := range s.Types {
		if t.Name != "" {
			idx[t.Name] = t
		}
	}
	return idx
}

// ByID returns the type with the given ID, or nil if out of range.
func (s *Spec) ByID(id uint32) *Type {
	if int(id) >= len(s.Types) {
		return nil
	}
	return s.Types[id]
}

// Resolve follows TYPEDEF/CONST/VOLATILE/RESTRICT chains to a concrete
// kind (spec.md §3 "Resolve walks through TYPEDEF/QUAL until a concrete
// kind").
func (s *Spec) Resolve(t *Type) *Type {
	seen := map[uint32]bool{}
	for t != nil {
		switch t.Kind {
		case KindTypedef, KindConst, KindVolatile, KindRestrict:
			if seen[t.ID] {
				return t
			}
			seen[t.ID] = true
			t = s.ByID(t.Ref)
		default:
			return t
		}
	}
	return nil
}

// TypeSize returns a resolved type's byte size (spec.md §4.6): INT/FLOAT/
// STRUCT/UNION use their explicit size, PTR is 8, ARRAY is element-size ×
// count, ENUM/ENUM64 are 4 or 8.
func (s *Spec) TypeSize(t *Type) (uint32, error) {
	t = s.Resolve(t)
	if t == nil {
		return 0, ebpferr.New("TypeSize", ebpferr.KindBTF, "nil type", nil)
	}
	switch t.Kind {
	case KindInt, KindFloat, KindStruct, KindUnion, KindEnum, KindDatasec:
		return t.Size, nil
	case KindEnum64:
		return 8, nil
	case KindPointer:
		return 8, nil
	case KindArray:
		elem := s.ByID(t.ElemType)
		if elem == nil {
			return 0, ebpferr.New("TypeSize", ebpferr.KindBTF, "array element type not found", nil)
		}
		elemSize, err := s.TypeSize(elem)
		if err != nil {
			return 0, err
		}
		return elemSize * t.NumElems, nil
	default:
		return 0, ebpferr.New("TypeSize", ebpferr.KindBTF, "type has no defined size: "+t.Kind.String(), nil)
	}
}
