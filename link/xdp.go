// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package link

import (
	"encoding/binary"

	"golang.org/x/sys/unix"

	"github.com/tetrabpf/goebpf"
)

// IFLA_XDP and its nested attribute IDs, from linux/if_link.h. Not exposed
// by golang.org/x/sys/unix, so defined here directly against the kernel
// uapi (spec.md §4.8).
const (
	iflaXDP         uint16 = 43
	iflaXDPFD       uint16 = 1
	iflaXDPFlags    uint16 = 3
)

const rtmNewLink = uint16(unix.RTM_NEWLINK)

// ifinfomsg mirrors struct ifinfomsg (16 bytes): family u8, pad u8, type
// u16, index i32, flags u32, change u32.
func ifinfomsg(ifindex int) []byte {
	buf := make([]byte, 16)
	buf[0] = unix.AF_UNSPEC
	binary.LittleEndian.PutUint32(buf[4:8], uint32(ifindex))
	binary.LittleEndian.PutUint32(buf[12:16], 0xffffffff) // change mask: replace the link's entire attached state
	return buf
}

// AttachXDP attaches progFD to ifindex in the given mode by sending an
// RTM_NEWLINK with a nested IFLA_XDP attribute (spec.md §4.8).
func AttachXDP(ifindex int, progFD int, mode ebpf.XDPMode) error {
	return sendXDP(ifindex, int32(progFD), uint32(mode))
}

// DetachXDP removes whatever program is attached to ifindex in the given
// mode (IFLA_XDP_FD = -1 requests detach).
func DetachXDP(ifindex int, mode ebpf.XDPMode) error {
	return sendXDP(ifindex, -1, uint32(mode))
}

func sendXDP(ifindex int, fd int32, flags uint32) error {
	conn, err := dialRoute()
	if err != nil {
		return err
	}
	defer conn.Close()

	nested := nestedAttr(iflaXDP, attrI32(iflaXDPFD, fd), attrU32(iflaXDPFlags, flags))
	body := append(ifinfomsg(ifindex), nested...)
	return conn.send(rtmNewLink, 0, body)
}
