// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

// UNKNOWN carries the opaque rdata bytes of an RR type with no
// dedicated schema entry (spec §3, §4.3). Presentation form uses the
// RFC 3597 generic syntax `\# <len> <hex>`.
type UNKNOWN struct {
	RRType Type
	Data   []byte
}

func (u *UNKNOWN) Type() Type { return u.RRType }

func (u *UNKNOWN) Length(Compressor) (int, error) { return len(u.Data), nil }

func (u *UNKNOWN) Pack(b []byte, _ Compressor) ([]byte, error) {
	return append(b, u.Data...), nil
}

func (u *UNKNOWN) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	u.Data = append([]byte(nil), b...)
	return nil, nil
}
