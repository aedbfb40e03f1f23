// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"time"

	dns "github.com/quillresolve/dns"
)

// Transport sends one query to addr over the given network ("udp" or
// "tcp") and returns the decoded response (spec §4.7's S_QUERY/S_WAIT
// collaborator). The teacher's handler.go had no socket code of its
// own (it only multiplexed already-decoded Messages); this is new,
// grounded in the same two-phase pack/unpack split as message.go.
type Transport interface {
	Exchange(ctx context.Context, network string, addr net.IP, port int, query *dns.Message) (*dns.Message, error)
}

// netTransport is the default Transport, using net.Dialer directly.
type netTransport struct {
	dialer net.Dialer
}

// NewTransport returns the default UDP/TCP Transport.
func NewTransport() Transport {
	return &netTransport{}
}

func (t *netTransport) Exchange(ctx context.Context, network string, addr net.IP, port int, query *dns.Message) (*dns.Message, error) {
	raddr := net.JoinHostPort(addr.String(), fmt.Sprintf("%d", port))

	conn, err := t.dialer.DialContext(ctx, network, raddr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	maxSize := 0
	if network == "udp" {
		maxSize = 512
		if query.EDNS != nil && query.EDNS.Enabled && int(query.EDNS.UDPSize) > maxSize {
			maxSize = int(query.EDNS.UDPSize)
		}
	}

	wire, err := query.Pack(nil, true, maxSize)
	if err != nil {
		return nil, err
	}

	switch network {
	case "tcp":
		var lenPrefix [2]byte
		binary.BigEndian.PutUint16(lenPrefix[:], uint16(len(wire)))
		if _, err := conn.Write(lenPrefix[:]); err != nil {
			return nil, err
		}
		if _, err := conn.Write(wire); err != nil {
			return nil, err
		}
		return readTCPResponse(conn)
	default:
		if _, err := conn.Write(wire); err != nil {
			return nil, err
		}
		return readUDPResponse(conn)
	}
}

func readUDPResponse(conn net.Conn) (*dns.Message, error) {
	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	resp := &dns.Message{}
	if _, err := resp.Unpack(buf[:n]); err != nil {
		return nil, err
	}
	return resp, nil
}

func readTCPResponse(conn net.Conn) (*dns.Message, error) {
	var lenPrefix [2]byte
	if _, err := readFull(conn, lenPrefix[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(lenPrefix[:])

	buf := make([]byte, n)
	if _, err := readFull(conn, buf); err != nil {
		return nil, err
	}
	resp := &dns.Message{}
	if _, err := resp.Unpack(buf); err != nil {
		return nil, err
	}
	return resp, nil
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// attemptTimeout returns the per-attempt timeout for network (spec
// §4.7: "Per-attempt timeout: 2s (UDP), 5s (TCP)").
func attemptTimeout(network string) time.Duration {
	if network == "tcp" {
		return 5 * time.Second
	}
	return 2 * time.Second
}
