// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed as part of the goebpf project.
// Copyright 2026-present the goebpf authors.

//go:build linux

package link

import (
	"github.com/mdlayher/netlink"
	"golang.org/x/sys/unix"

	"github.com/tetrabpf/goebpf/ebpferr"
)

// rtConn wraps an AF_NETLINK/NETLINK_ROUTE socket (spec.md §4.8/§6).
type rtConn struct {
	conn *netlink.Conn
}

func dialRoute() (*rtConn, error) {
	conn, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return nil, ebpferr.New("dialRoute", ebpferr.KindAttach, "failed to open rtnetlink socket", err)
	}
	return &rtConn{conn: conn}, nil
}

func (c *rtConn) Close() error {
	return c.conn.Close()
}

// send issues msgType with data as the message body, requesting an ack,
// and returns an error if the kernel rejected the request.
func (c *rtConn) send(msgType uint16, flags netlink.HeaderFlags, data []byte) error {
	req := netlink.Message{
		Header: netlink.Header{
			Type:  netlink.HeaderType(msgType),
			Flags: netlink.Request | netlink.Acknowledge | flags,
		},
		Data: data,
	}
	_, err := c.conn.Execute(req)
	if err != nil {
		return ebpferr.New("send", ebpferr.KindAttach, "netlink request rejected", err)
	}
	return nil
}
