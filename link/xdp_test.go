// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package link

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// spec.md §8 testable property: "XDP netlink message: nested IFLA_XDP
// attribute has the top bit (NLA_F_NESTED) of its type set."
func TestXDPNestedAttrHasNLAFNestedBit(t *testing.T) {
	nested := nestedAttr(iflaXDP, attrI32(iflaXDPFD, 7), attrU32(iflaXDPFlags, 0))
	require.GreaterOrEqual(t, len(nested), 4)

	typ := binary.LittleEndian.Uint16(nested[2:4])
	require.Equal(t, iflaXDP|NLAFNested, typ)
	require.NotEqual(t, uint16(0), typ&NLAFNested, "NLA_F_NESTED (0x8000) must be set on the nested attribute's type")
}

func TestXDPNestedAttrContainsFDAndFlags(t *testing.T) {
	nested := nestedAttr(iflaXDP, attrI32(iflaXDPFD, 42), attrU32(iflaXDPFlags, 2))

	// payload starts right after the 4-byte nested-attribute header.
	payload := nested[4:]
	fdAttr := payload[:8] // 4-byte header + 4-byte i32 payload, no padding needed
	require.Equal(t, iflaXDPFD, binary.LittleEndian.Uint16(fdAttr[2:4]))
	require.Equal(t, int32(42), int32(binary.LittleEndian.Uint32(fdAttr[4:8])))

	flagsAttr := payload[8:16]
	require.Equal(t, iflaXDPFlags, binary.LittleEndian.Uint16(flagsAttr[2:4]))
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(flagsAttr[4:8]))
}

func TestIfinfomsgLength(t *testing.T) {
	require.Len(t, ifinfomsg(3), 16)
}
