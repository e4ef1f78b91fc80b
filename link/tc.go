// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package link

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// Direction selects which clsact hook a filter attaches to.
type Direction int

const (
	DirectionIngress Direction = iota
	DirectionEgress
)

// EtherType selects the protocol field packed into the filter's info word.
// spec.md §9 leaves non-IPv4 protocols as an explicit open question rather
// than guessing; ETH_P_IP is the only value this module exercises today.
type EtherType uint16

const ETHPIP EtherType = 0x0800

const (
	tcHClsact     uint32 = 0xffff0000
	tcHClsactMaj  uint32 = 0xffff0000 // same as tcHClsact; clsact's own handle
	tcHMinIngress uint32 = 0xfff2
	tcHMinEgress  uint32 = 0xfff3
	tcHParent     uint32 = 0xfffffff1 // TC_H_CLSACT, parent of clsact's own filters

	tcaKind    uint16 = 1
	tcaOptions uint16 = 2

	tcaBPFFD    uint16 = 6
	tcaBPFName  uint16 = 7
	tcaBPFFlags uint16 = 8

	tcaBPFFlagActDirect uint32 = 1

	rtmNewQdisc    = uint16(unix.RTM_NEWQDISC)
	rtmNewTFilter  = uint16(unix.RTM_NEWTFILTER)
	rtmDelTFilter  = uint16(unix.RTM_DELTFILTER)
	rtmDelQdisc    = uint16(unix.RTM_DELQDISC)
)

// tcmsg mirrors struct tcmsg (20 bytes): family u8 + 3 pad, ifindex i32,
// handle u32, parent u32, info u32.
func tcmsg(ifindex int, handle, parent, info uint32) []byte {
	buf := make([]byte, 20)
	buf[0] = unix.AF_UNSPEC
	binary.LittleEndian.PutUint32(buf[4:8], uint32(ifindex))
	binary.LittleEndian.PutUint32(buf[8:12], handle)
	binary.LittleEndian.PutUint32(buf[12:16], parent)
	binary.LittleEndian.PutUint32(buf[16:20], info)
	return buf
}

// EnsureClsact installs the clsact qdisc on ifindex, so both an ingress and
// an egress cls_bpf filter can be attached beneath it (spec.md §4.8: handle
// 0xFFFF0000, parent 0xFFFFFFF1, kind "clsact").
func EnsureClsact(ifindex int) error {
	conn, err := dialRoute()
	if err != nil {
		return err
	}
	defer conn.Close()

	body := append(tcmsg(ifindex, tcHClsact, tcHParent, 0), attrString(tcaKind, "clsact")...)
	return conn.send(rtmNewQdisc, unix.NLM_F_CREATE|unix.NLM_F_EXCL, body)
}

// infoField packs (priority<<16) | htons(protocol) exactly as spec.md §4.8
// requires -- "critical: must be ETH_P_IP, not ETH_P_ALL, or egress filters
// will not match IPv4".
func infoField(priority uint16, proto EtherType) uint32 {
	htons := uint16(proto>>8) | uint16(proto<<8)
	return uint32(priority)<<16 | uint32(htons)
}

// AttachTC installs a cls_bpf filter running progFD, direct-action, on
// ifindex's clsact qdisc in the given direction (spec.md §4.8).
func AttachTC(ifindex int, progFD int, dir Direction, priority uint16, proto EtherType, name string) error {
	parentMin := tcHMinIngress
	if dir == DirectionEgress {
		parentMin = tcHMinEgress
	}
	parent := tcHClsactMaj | parentMin

	conn, err := dialRoute()
	if err != nil {
		return err
	}
	defer conn.Close()

	opts := nestedAttr(tcaOptions,
		attrI32(tcaBPFFD, int32(progFD)),
		attrString(tcaBPFName, name),
		attrU32(tcaBPFFlags, tcaBPFFlagActDirect),
	)
	body := append(tcmsg(ifindex, 0, parent, infoField(priority, proto)), attrString(tcaKind, "bpf")...)
	body = append(body, opts...)

	return conn.send(rtmNewTFilter, unix.NLM_F_CREATE|unix.NLM_F_EXCL, body)
}

// DetachTC removes the cls_bpf filter installed by AttachTC.
func DetachTC(ifindex int, dir Direction, priority uint16, proto EtherType) error {
	parentMin := tcHMinIngress
	if dir == DirectionEgress {
		parentMin = tcHMinEgress
	}
	parent := tcHClsactMaj | parentMin

	conn, err := dialRoute()
	if err != nil {
		return err
	}
	defer conn.Close()

	body := tcmsg(ifindex, 0, parent, infoField(priority, proto))
	return conn.send(rtmDelTFilter, 0, body)
}

// DetachClsact removes the clsact qdisc (and every filter hanging off it)
// from ifindex.
func DetachClsact(ifindex int) error {
	conn, err := dialRoute()
	if err != nil {
		return err
	}
	defer conn.Close()

	body := tcmsg(ifindex, tcHClsact, tcHParent, 0)
	return conn.send(rtmDelQdisc, 0, body)
}
