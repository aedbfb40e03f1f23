// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

import (
	"encoding/binary"
	"errors"
	"time"
)

var nbo = binary.BigEndian

var (
	errResourceLen = errors.New("dns: insufficient data for resource body length")
	errResTooLong  = errors.New("dns: rdata shorter than declared rdlength")
	errFieldOverflow = errors.New("dns: value too large for packed field")
	errUnknownType = errors.New("dns: unknown resource type")
)

// Record is the behavior every RR-data schema in the registry (C3)
// implements: a type tag plus binary pack/unpack against a shared
// name-compression table.
type Record interface {
	Type() Type
	Length(Compressor) (int, error)
	Pack([]byte, Compressor) ([]byte, error)
	Unpack([]byte, Decompressor) ([]byte, error)
}

// Question is a DNS query: (name, type, class).
type Question struct {
	Name  string
	Type  Type
	Class Class
}

// Pack encodes q onto b.
func (q Question) Pack(b []byte, com Compressor) ([]byte, error) {
	if com == nil {
		com = &compressor{}
	}

	var err error
	if b, err = com.Pack(b, q.Name); err != nil {
		return nil, err
	}

	var buf [4]byte
	nbo.PutUint16(buf[:2], uint16(q.Type))
	nbo.PutUint16(buf[2:4], uint16(q.Class))
	return append(b, buf[:]...), nil
}

// Unpack decodes q from b.
func (q *Question) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	if dec == nil {
		dec = decompressor(nil)
	}

	var err error
	if q.Name, b, err = dec.Unpack(b); err != nil {
		return nil, err
	}
	if len(b) < 4 {
		return nil, errResourceLen
	}

	q.Type = Type(nbo.Uint16(b[:2]))
	q.Class = Class(nbo.Uint16(b[2:4]))
	return b[4:], nil
}

// Resource is a DNS resource record: the (name, type, class, ttl,
// rdlength, rdata) wire envelope (spec §4.4) wrapping a type-specific
// Record payload.
type Resource struct {
	Name  string
	Class Class
	TTL   time.Duration

	Record
}

// Pack encodes r onto b. rdlength is computed from the Record's own
// Length accessor with the same compression table that will be used
// to Pack it, so the two agree exactly (spec §4.4).
func (r Resource) Pack(b []byte, com Compressor) ([]byte, error) {
	if com == nil {
		com = &compressor{}
	}

	var err error
	if b, err = com.Pack(b, r.Name); err != nil {
		return nil, err
	}

	rtype := r.Record.Type()

	ttl := uint32(r.TTL / time.Second)
	if time.Duration(ttl) != r.TTL/time.Second {
		return nil, errFieldOverflow
	}

	rlen, err := r.Record.Length(com)
	if err != nil {
		return nil, err
	}
	rdatalen := uint16(rlen)
	if int(rdatalen) != rlen {
		return nil, errFieldOverflow
	}

	var buf [10]byte
	nbo.PutUint16(buf[:2], uint16(rtype))
	nbo.PutUint16(buf[2:4], uint16(r.Class))
	nbo.PutUint32(buf[4:8], ttl)
	nbo.PutUint16(buf[8:10], rdatalen)
	b = append(b, buf[:]...)

	before := len(b)
	b, err = r.Record.Pack(b, com)
	if err != nil {
		return nil, err
	}
	if len(b)-before != rlen {
		return nil, errFieldOverflow
	}
	return b, nil
}

// Unpack decodes r from b. The rdlength bounds a sub-slice that the
// type-specific decoder must fully consume; the parent cursor always
// advances past the declared rdlength regardless, so an over- or
// under-read in a buggy/hostile record never desynchronizes the
// stream (spec §4.4).
func (r *Resource) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	var err error
	if r.Name, b, err = dec.Unpack(b); err != nil {
		return nil, err
	}
	if len(b) < 10 {
		return nil, errResourceLen
	}

	rtype := Type(nbo.Uint16(b[:2]))
	class := Class(nbo.Uint16(b[2:4]))
	ttl := time.Duration(nbo.Uint32(b[4:8])) * time.Second
	rdlen := int(nbo.Uint16(b[8:10]))
	b = b[10:]

	if len(b) < rdlen {
		return nil, errResourceLen
	}
	rdata := b[:rdlen]

	record, err := decodeRData(rtype, rdata, dec)
	if err != nil {
		return nil, err
	}

	r.Name = CanonicalPreserve(r.Name)
	r.Class = class
	r.TTL = ttl
	r.Record = record

	return b[rdlen:], nil
}

// CanonicalPreserve is the identity function: presentation case is
// preserved on input per spec §3 ("case is preserved"); this hook
// exists so callers that do want canonicalization can wrap it.
func CanonicalPreserve(name string) string { return name }

// decodeRData dispatches on rtype to a registered Record constructor,
// falling back to UNKNOWN for anything the registry doesn't carry a
// dedicated schema for (spec §3, §4.3).
func decodeRData(rtype Type, rdata []byte, dec Decompressor) (Record, error) {
	newfn, ok := NewRecordByType[rtype]
	if !ok {
		u := &UNKNOWN{RRType: rtype, Data: append([]byte(nil), rdata...)}
		return u, nil
	}

	record := newfn()
	rest, err := record.Unpack(rdata, dec)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, errResTooLong
	}
	return record, nil
}
