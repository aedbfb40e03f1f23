// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

import "net"

// A is a DNS A record (RFC 1035 §3.4.1).
type A struct{ A net.IP }

func (A) Type() Type                   { return TypeA }
func (A) Length(Compressor) (int, error) { return 4, nil }

func (a A) Pack(b []byte, _ Compressor) ([]byte, error) {
	ip := a.A.To4()
	if ip == nil {
		return nil, errResourceLen
	}
	return append(b, ip...), nil
}

func (a *A) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 4 {
		return nil, errResourceLen
	}
	a.A = append(net.IP(nil), b[:4]...)
	return b[4:], nil
}

// AAAA is a DNS AAAA record (RFC 3596).
type AAAA struct{ AAAA net.IP }

func (AAAA) Type() Type                   { return TypeAAAA }
func (AAAA) Length(Compressor) (int, error) { return 16, nil }

func (a AAAA) Pack(b []byte, _ Compressor) ([]byte, error) {
	ip := a.AAAA.To16()
	if ip == nil {
		return nil, errResourceLen
	}
	return append(b, ip...), nil
}

func (a *AAAA) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 16 {
		return nil, errResourceLen
	}
	a.AAAA = append(net.IP(nil), b[:16]...)
	return b[16:], nil
}

// WKS is a well-known-service record (RFC 1035 §3.4.2). The bitmap is
// kept as raw bytes per spec §4.3's WKS field kind; callers interested
// in individual service bits should read/write Bitmap directly.
type WKS struct {
	Address  net.IP
	Protocol uint8
	Bitmap   []byte
}

func (WKS) Type() Type { return TypeWKS }

func (w WKS) Length(Compressor) (int, error) { return 5 + len(w.Bitmap), nil }

func (w WKS) Pack(b []byte, _ Compressor) ([]byte, error) {
	ip := w.Address.To4()
	if ip == nil {
		return nil, errResourceLen
	}
	b = append(b, ip...)
	b = append(b, w.Protocol)
	return append(b, w.Bitmap...), nil
}

func (w *WKS) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 5 {
		return nil, errResourceLen
	}
	w.Address = append(net.IP(nil), b[:4]...)
	w.Protocol = b[4]
	w.Bitmap = append([]byte(nil), b[5:]...)
	return nil, nil
}

// APL is an Address Prefix List record (RFC 3123). Each item is kept
// as its raw wire encoding (family, prefix, negate flag, afdlength,
// afdpart) since the family space is open-ended.
type APL struct{ Items []APLItem }

// APLItem is one (address-family, prefix, negate, data) tuple.
type APLItem struct {
	Family   uint16
	Prefix   uint8
	Negate   bool
	AFDPart  []byte
}

func (APL) Type() Type { return TypeAPL }

func (a APL) Length(Compressor) (int, error) {
	n := 0
	for _, it := range a.Items {
		n += 4 + len(it.AFDPart)
	}
	return n, nil
}

func (a APL) Pack(b []byte, _ Compressor) ([]byte, error) {
	for _, it := range a.Items {
		var hdr [4]byte
		nbo.PutUint16(hdr[:2], it.Family)
		hdr[2] = it.Prefix
		afdlen := len(it.AFDPart)
		if afdlen > 0x7F {
			return nil, errFieldOverflow
		}
		hdr[3] = byte(afdlen)
		if it.Negate {
			hdr[3] |= 0x80
		}
		b = append(b, hdr[:]...)
		b = append(b, it.AFDPart...)
	}
	return b, nil
}

func (a *APL) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	var items []APLItem
	for len(b) > 0 {
		if len(b) < 4 {
			return nil, errResourceLen
		}
		family := nbo.Uint16(b[:2])
		prefix := b[2]
		negate := b[3]&0x80 != 0
		afdlen := int(b[3] & 0x7F)
		if len(b) < 4+afdlen {
			return nil, errResourceLen
		}
		items = append(items, APLItem{
			Family:  family,
			Prefix:  prefix,
			Negate:  negate,
			AFDPart: append([]byte(nil), b[4:4+afdlen]...),
		})
		b = b[4+afdlen:]
	}
	a.Items = items
	return nil, nil
}

// EUI48 is a 48-bit MAC-address record (RFC 7043).
type EUI48 struct{ Address [6]byte }

func (EUI48) Type() Type                   { return TypeEUI48 }
func (EUI48) Length(Compressor) (int, error) { return 6, nil }

func (e EUI48) Pack(b []byte, _ Compressor) ([]byte, error) { return append(b, e.Address[:]...), nil }

func (e *EUI48) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 6 {
		return nil, errResourceLen
	}
	copy(e.Address[:], b[:6])
	return b[6:], nil
}

// EUI64 is a 64-bit MAC-address record (RFC 7043).
type EUI64 struct{ Address [8]byte }

func (EUI64) Type() Type                   { return TypeEUI64 }
func (EUI64) Length(Compressor) (int, error) { return 8, nil }

func (e EUI64) Pack(b []byte, _ Compressor) ([]byte, error) { return append(b, e.Address[:]...), nil }

func (e *EUI64) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 8 {
		return nil, errResourceLen
	}
	copy(e.Address[:], b[:8])
	return b[8:], nil
}

// NID is an ILNP Node Identifier record (RFC 6742).
type NID struct {
	Preference uint16
	NodeID     uint64
}

func (NID) Type() Type                   { return TypeNID }
func (NID) Length(Compressor) (int, error) { return 10, nil }

func (n NID) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [10]byte
	nbo.PutUint16(buf[:2], n.Preference)
	nbo.PutUint64(buf[2:], n.NodeID)
	return append(b, buf[:]...), nil
}

func (n *NID) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 10 {
		return nil, errResourceLen
	}
	n.Preference = nbo.Uint16(b[:2])
	n.NodeID = nbo.Uint64(b[2:10])
	return b[10:], nil
}

// L32 is an ILNP Locator32 record (RFC 6742).
type L32 struct {
	Preference uint16
	Locator32  net.IP
}

func (L32) Type() Type                   { return TypeL32 }
func (L32) Length(Compressor) (int, error) { return 6, nil }

func (l L32) Pack(b []byte, _ Compressor) ([]byte, error) {
	ip := l.Locator32.To4()
	if ip == nil {
		return nil, errResourceLen
	}
	var buf [2]byte
	nbo.PutUint16(buf[:], l.Preference)
	b = append(b, buf[:]...)
	return append(b, ip...), nil
}

func (l *L32) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 6 {
		return nil, errResourceLen
	}
	l.Preference = nbo.Uint16(b[:2])
	l.Locator32 = append(net.IP(nil), b[2:6]...)
	return b[6:], nil
}

// L64 is an ILNP Locator64 record (RFC 6742).
type L64 struct {
	Preference uint16
	Locator64  uint64
}

func (L64) Type() Type                   { return TypeL64 }
func (L64) Length(Compressor) (int, error) { return 10, nil }

func (l L64) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [10]byte
	nbo.PutUint16(buf[:2], l.Preference)
	nbo.PutUint64(buf[2:], l.Locator64)
	return append(b, buf[:]...), nil
}

func (l *L64) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 10 {
		return nil, errResourceLen
	}
	l.Preference = nbo.Uint16(b[:2])
	l.Locator64 = nbo.Uint64(b[2:10])
	return b[10:], nil
}

// LP is an ILNP Locator FQDN record (RFC 6742): a name field, not
// compressed per §4.3 (new types don't compress to stay reparseable
// by naive clients).
type LP struct {
	Preference uint16
	FQDN       string
}

func (LP) Type() Type { return TypeLP }

func (l LP) Length(_ Compressor) (int, error) {
	n, err := (&compressor{}).Length(l.FQDN)
	if err != nil {
		return 0, err
	}
	return n + 2, nil
}

func (l LP) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [2]byte
	nbo.PutUint16(buf[:], l.Preference)
	b = append(b, buf[:]...)
	return (&compressor{}).Pack(b, l.FQDN)
}

func (l *LP) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 2 {
		return nil, errResourceLen
	}
	l.Preference = nbo.Uint16(b[:2])
	var err error
	l.FQDN, b, err = decompressor(nil).Unpack(b[2:])
	return b, err
}
