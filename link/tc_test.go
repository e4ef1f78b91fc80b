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

// spec.md §8 scenario 7: "TC egress info field... the info field at byte
// offset 32 of the message equals 0x00010008 little-endian" (priority=1,
// direction=egress -- the offset is measured from the start of an nlmsghdr,
// which is 16 bytes, so this asserts against tcmsg's own 20-byte layout
// where info sits at its offset 16, i.e. message offset 32).
func TestTCInfoFieldEgressIPv4(t *testing.T) {
	got := infoField(1, ETHPIP)
	require.Equal(t, uint32(0x00010008), got)

	msg := tcmsg(1 /* ifindex */, 0, tcHClsactMaj|tcHMinEgress, got)
	require.Len(t, msg, 20)
	require.Equal(t, uint32(0x00010008), binary.LittleEndian.Uint32(msg[16:20]),
		"info field lives at tcmsg offset 16 (message offset 32 once prefixed by a 16-byte nlmsghdr)")
}

// spec.md §8 testable property: "the info field... NOT 0x0003" -- guards
// against regressing to htons(ETH_P_ALL).
func TestTCInfoFieldNotEtherTypeAll(t *testing.T) {
	got := infoField(1, ETHPIP)
	require.NotEqual(t, uint32(0x00010003), got)
}

func TestTCInfoFieldPriorityShift(t *testing.T) {
	got := infoField(7, ETHPIP)
	require.Equal(t, uint16(7), uint16(got>>16))
	require.Equal(t, uint16(0x0008), uint16(got&0xffff))
}

func TestTCDirectionParentMin(t *testing.T) {
	require.Equal(t, tcHClsactMaj|tcHMinIngress, tcHClsactMaj|uint32(tcHMinIngress))
	require.NotEqual(t, tcHMinIngress, tcHMinEgress)
}
