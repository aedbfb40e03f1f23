// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

import "errors"

var errCharStringLen = errors.New("dns: character-string too long")

// packCharString appends a single length-prefixed character-string
// (RFC 1035 §3.3) to b.
func packCharString(b []byte, s string) ([]byte, error) {
	if len(s) > 255 {
		return nil, errCharStringLen
	}
	b = append(b, byte(len(s)))
	return append(b, s...), nil
}

// unpackCharString reads one length-prefixed character-string from
// the head of b.
func unpackCharString(b []byte) (string, []byte, error) {
	if len(b) < 1 {
		return "", nil, errResourceLen
	}
	n := int(b[0])
	if len(b) < 1+n {
		return "", nil, errResourceLen
	}
	return string(b[1 : 1+n]), b[1+n:], nil
}

// charStringsRecord is the shared shape for RR types whose rdata is a
// sequence of character-strings packed back-to-back (TXT, SPF).
type charStringsRecord struct {
	Strings []string
}

func (r charStringsRecord) length(Compressor) (int, error) {
	n := 0
	for _, s := range r.Strings {
		if len(s) > 255 {
			return 0, errCharStringLen
		}
		n += 1 + len(s)
	}
	return n, nil
}

func (r charStringsRecord) pack(b []byte, _ Compressor) ([]byte, error) {
	var err error
	for _, s := range r.Strings {
		b, err = packCharString(b, s)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (r *charStringsRecord) unpack(b []byte, _ Decompressor) ([]byte, error) {
	var strs []string
	for len(b) > 0 {
		var s string
		var err error
		s, b, err = unpackCharString(b)
		if err != nil {
			return nil, err
		}
		strs = append(strs, s)
	}
	r.Strings = strs
	return nil, nil
}

// TXT is a text record (RFC 1035 §3.3.14).
type TXT struct{ charStringsRecord }

func (TXT) Type() Type { return TypeTXT }
func (r TXT) Length(com Compressor) (int, error)          { return r.charStringsRecord.length(com) }
func (r TXT) Pack(b []byte, com Compressor) ([]byte, error) { return r.charStringsRecord.pack(b, com) }
func (r *TXT) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	return r.charStringsRecord.unpack(b, dec)
}

// SPF is the deprecated Sender Policy Framework record (RFC 7208),
// sharing TXT's character-string-list shape.
type SPF struct{ charStringsRecord }

func (SPF) Type() Type { return TypeSPF }
func (r SPF) Length(com Compressor) (int, error)          { return r.charStringsRecord.length(com) }
func (r SPF) Pack(b []byte, com Compressor) ([]byte, error) { return r.charStringsRecord.pack(b, com) }
func (r *SPF) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	return r.charStringsRecord.unpack(b, dec)
}

// HINFO is a host-information record (RFC 1035 §3.3.2).
type HINFO struct {
	CPU string
	OS  string
}

func (HINFO) Type() Type { return TypeHINFO }

func (r HINFO) Length(Compressor) (int, error) {
	if len(r.CPU) > 255 || len(r.OS) > 255 {
		return 0, errCharStringLen
	}
	return 2 + len(r.CPU) + len(r.OS), nil
}

func (r HINFO) Pack(b []byte, _ Compressor) ([]byte, error) {
	b, err := packCharString(b, r.CPU)
	if err != nil {
		return nil, err
	}
	return packCharString(b, r.OS)
}

func (r *HINFO) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	cpu, rest, err := unpackCharString(b)
	if err != nil {
		return nil, err
	}
	os, rest, err := unpackCharString(rest)
	if err != nil {
		return nil, err
	}
	r.CPU, r.OS = cpu, os
	return rest, nil
}

// URI is the URI record (RFC 7553).
type URI struct {
	Priority uint16
	Weight   uint16
	Target   string
}

func (URI) Type() Type { return TypeURI }

func (r URI) Length(Compressor) (int, error) { return 4 + len(r.Target), nil }

func (r URI) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [4]byte
	nbo.PutUint16(buf[:2], r.Priority)
	nbo.PutUint16(buf[2:], r.Weight)
	b = append(b, buf[:]...)
	return append(b, r.Target...), nil
}

func (r *URI) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 4 {
		return nil, errResourceLen
	}
	r.Priority = nbo.Uint16(b[:2])
	r.Weight = nbo.Uint16(b[2:4])
	r.Target = string(b[4:])
	return nil, nil
}

// CAA is the Certification Authority Authorization record (RFC 6844).
type CAA struct {
	Flag  uint8
	Tag   string
	Value string
}

func (CAA) Type() Type { return TypeCAA }

func (r CAA) Length(Compressor) (int, error) {
	if len(r.Tag) > 255 {
		return 0, errCharStringLen
	}
	return 2 + len(r.Tag) + len(r.Value), nil
}

func (r CAA) Pack(b []byte, _ Compressor) ([]byte, error) {
	b = append(b, r.Flag)
	b, err := packCharString(b, r.Tag)
	if err != nil {
		return nil, err
	}
	return append(b, r.Value...), nil
}

func (r *CAA) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 2 {
		return nil, errResourceLen
	}
	r.Flag = b[0]
	tag, rest, err := unpackCharString(b[1:])
	if err != nil {
		return nil, err
	}
	r.Tag = tag
	r.Value = string(rest)
	return nil, nil
}
