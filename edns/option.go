// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edns implements EDNS0 option framing and per-code dispatch
// (spec §4.8): each option is a <code:u16><length:u16><data[length]>
// TLV inside an OPT record's RDATA.
package edns

import (
	"encoding/binary"
	"errors"
)

var nbo = binary.BigEndian

var errShortOption = errors.New("edns: truncated option")

// Code identifies an EDNS0 option type (spec §6).
type Code uint16

const (
	CodeLLQ          Code = 1
	CodeUL           Code = 2
	CodeNSID         Code = 3
	CodeDAU          Code = 5
	CodeDHU          Code = 6
	CodeN3U          Code = 7
	CodeSubnet       Code = 8
	CodeExpire       Code = 9
	CodeCookie       Code = 10
	CodeTCPKeepalive Code = 11
	CodePadding      Code = 12
	CodeChain        Code = 13
	CodeKeyTag       Code = 14

	localRangeStart Code = 65001
	localRangeEnd   Code = 65534
)

// Option is a single EDNS0 TLV plus its dispatched, typed value.
// Unknown codes carry their raw Data and a nil Value.
type Option struct {
	Code Code
	Data []byte

	Value OptionValue
}

// OptionValue is implemented by each per-code typed option.
type OptionValue interface {
	Code() Code
	pack() []byte
}

// Length returns the wire size of the option, including its 4-byte
// TLV header.
func (o Option) Length() int { return 4 + len(o.Data) }

// Pack appends the wire encoding of o to b.
func (o Option) Pack(b []byte) ([]byte, error) {
	data := o.Data
	if o.Value != nil {
		data = o.Value.pack()
	}
	if len(data) > 0xFFFF {
		return nil, errShortOption
	}

	var hdr [4]byte
	nbo.PutUint16(hdr[:2], uint16(o.Code))
	nbo.PutUint16(hdr[2:4], uint16(len(data)))
	b = append(b, hdr[:]...)
	b = append(b, data...)
	return b, nil
}

// Unpack decodes one option from the head of b.
func (o *Option) Unpack(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, errShortOption
	}
	code := Code(nbo.Uint16(b[:2]))
	length := int(nbo.Uint16(b[2:4]))
	if len(b) < 4+length {
		return nil, errShortOption
	}
	data := append([]byte(nil), b[4:4+length]...)

	o.Code = code
	o.Data = data
	o.Value = decodeValue(code, data)

	return b[4+length:], nil
}

// IsLocal reports whether code falls in the experimental/local-use
// range [65001, 65534] (spec §4.8).
func (c Code) IsLocal() bool { return c >= localRangeStart && c <= localRangeEnd }

func decodeValue(code Code, data []byte) OptionValue {
	switch {
	case code == CodeNSID:
		return NSID(data)
	case code == CodeSubnet:
		v, ok := decodeSubnet(data)
		if !ok {
			return nil
		}
		return v
	case code == CodeCookie:
		v, ok := decodeCookie(data)
		if !ok {
			return nil
		}
		return v
	case code == CodeTCPKeepalive:
		v, ok := decodeKeepalive(data)
		if !ok {
			return nil
		}
		return v
	case code == CodePadding:
		return Padding(len(data))
	case code == CodeExpire:
		v, ok := decodeExpire(data)
		if !ok {
			return nil
		}
		return v
	case code == CodeKeyTag:
		v, ok := decodeKeyTags(data)
		if !ok {
			return nil
		}
		return v
	case code.IsLocal():
		return Local{OptCode: code, Data: data}
	default:
		return nil
	}
}

// NSID is the Name Server Identifier option (RFC 5001): opaque data
// echoed back to identify which server instance answered.
type NSID []byte

func (NSID) Code() Code    { return CodeNSID }
func (n NSID) pack() []byte { return n }

// Subnet is the EDNS Client Subnet option (RFC 7871).
type Subnet struct {
	Family       uint16
	SourcePrefix uint8
	ScopePrefix  uint8
	Address      []byte
}

func (Subnet) Code() Code { return CodeSubnet }
func (s Subnet) pack() []byte {
	b := make([]byte, 4, 4+len(s.Address))
	nbo.PutUint16(b[:2], s.Family)
	b[2] = s.SourcePrefix
	b[3] = s.ScopePrefix
	return append(b, s.Address...)
}

func decodeSubnet(data []byte) (Subnet, bool) {
	if len(data) < 4 {
		return Subnet{}, false
	}
	return Subnet{
		Family:       nbo.Uint16(data[:2]),
		SourcePrefix: data[2],
		ScopePrefix:  data[3],
		Address:      append([]byte(nil), data[4:]...),
	}, true
}

// Cookie is the DNS Cookie option (RFC 7873): an 8-byte client cookie
// plus an optional 8-32 byte server cookie.
type Cookie struct {
	Client [8]byte
	Server []byte
}

func (Cookie) Code() Code { return CodeCookie }
func (c Cookie) pack() []byte {
	b := append([]byte(nil), c.Client[:]...)
	return append(b, c.Server...)
}

func decodeCookie(data []byte) (Cookie, bool) {
	if len(data) < 8 {
		return Cookie{}, false
	}
	var c Cookie
	copy(c.Client[:], data[:8])
	if len(data) > 8 {
		c.Server = append([]byte(nil), data[8:]...)
	}
	return c, true
}

// TCPKeepalive is the edns-tcp-keepalive option (RFC 7828), timeout in
// units of 100ms.
type TCPKeepalive struct {
	Timeout uint16
	HasTimeout bool
}

func (TCPKeepalive) Code() Code { return CodeTCPKeepalive }
func (k TCPKeepalive) pack() []byte {
	if !k.HasTimeout {
		return nil
	}
	b := make([]byte, 2)
	nbo.PutUint16(b, k.Timeout)
	return b
}

func decodeKeepalive(data []byte) (TCPKeepalive, bool) {
	if len(data) == 0 {
		return TCPKeepalive{}, true
	}
	if len(data) != 2 {
		return TCPKeepalive{}, false
	}
	return TCPKeepalive{Timeout: nbo.Uint16(data), HasTimeout: true}, true
}

// Padding is the EDNS Padding option (RFC 7830): its length is the
// payload, which is conventionally all zero bytes.
type Padding int

func (Padding) Code() Code { return CodePadding }
func (p Padding) pack() []byte { return make([]byte, int(p)) }

// Expire is the EDNS Expire option (RFC 7314) used in zone transfer
// negotiation context; included for completeness of option dispatch.
type Expire struct {
	Seconds  uint32
	HasValue bool
}

func (Expire) Code() Code { return CodeExpire }
func (e Expire) pack() []byte {
	if !e.HasValue {
		return nil
	}
	b := make([]byte, 4)
	nbo.PutUint32(b, e.Seconds)
	return b
}

func decodeExpire(data []byte) (Expire, bool) {
	if len(data) == 0 {
		return Expire{}, true
	}
	if len(data) != 4 {
		return Expire{}, false
	}
	return Expire{Seconds: nbo.Uint32(data), HasValue: true}, true
}

// KeyTag is the edns-key-tag option (RFC 8145): a list of u16 DNSKEY
// key tags the resolver trusts.
type KeyTag []uint16

func (KeyTag) Code() Code { return CodeKeyTag }
func (k KeyTag) pack() []byte {
	b := make([]byte, 2*len(k))
	for i, tag := range k {
		nbo.PutUint16(b[2*i:], tag)
	}
	return b
}

func decodeKeyTags(data []byte) (KeyTag, bool) {
	if len(data)%2 != 0 {
		return nil, false
	}
	tags := make(KeyTag, len(data)/2)
	for i := range tags {
		tags[i] = nbo.Uint16(data[2*i:])
	}
	return tags, true
}

// Local is an experimental/local-use option in [65001, 65534].
type Local struct {
	OptCode Code
	Data    []byte
}

func (l Local) Code() Code  { return l.OptCode }
func (l Local) pack() []byte { return l.Data }
