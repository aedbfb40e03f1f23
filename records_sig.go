// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

import "time"

// MINFO is a mailbox-information record (RFC 1035 §3.3.7).
type MINFO struct {
	RMailBx string
	EMailBx string
}

func (MINFO) Type() Type { return TypeMINFO }

func (r MINFO) Length(com Compressor) (int, error) {
	if com == nil {
		com = &compressor{}
	}
	return com.Length(r.RMailBx, r.EMailBx)
}

func (r MINFO) Pack(b []byte, com Compressor) ([]byte, error) {
	if com == nil {
		com = &compressor{}
	}
	var err error
	b, err = com.Pack(b, r.RMailBx)
	if err != nil {
		return nil, err
	}
	return com.Pack(b, r.EMailBx)
}

func (r *MINFO) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	if dec == nil {
		dec = decompressor(nil)
	}
	rmailbx, rest, err := dec.Unpack(b)
	if err != nil {
		return nil, err
	}
	emailbx, rest, err := dec.Unpack(rest)
	if err != nil {
		return nil, err
	}
	r.RMailBx, r.EMailBx = rmailbx, emailbx
	return rest, nil
}

// keyRecord is the shared shape of KEY (RFC 2535), DNSKEY (RFC 4034
// §2) and CDNSKEY (RFC 7344): a 16-bit flags field, protocol octet,
// algorithm octet, and a raw public key blob.
type keyRecord struct {
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey []byte
}

func (k keyRecord) length() (int, error) { return 4 + len(k.PublicKey), nil }

func (k keyRecord) pack(b []byte) ([]byte, error) {
	var buf [4]byte
	nbo.PutUint16(buf[0:2], k.Flags)
	buf[2] = k.Protocol
	buf[3] = k.Algorithm
	b = append(b, buf[:]...)
	return append(b, k.PublicKey...), nil
}

func (k *keyRecord) unpack(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, errResourceLen
	}
	k.Flags = nbo.Uint16(b[0:2])
	k.Protocol = b[2]
	k.Algorithm = b[3]
	k.PublicKey = append([]byte(nil), b[4:]...)
	return nil, nil
}

// KEY is a public-key record (RFC 2535).
type KEY struct{ keyRecord }

func (KEY) Type() Type                              { return TypeKEY }
func (r KEY) Length(Compressor) (int, error)         { return r.keyRecord.length() }
func (r KEY) Pack(b []byte, _ Compressor) ([]byte, error) { return r.keyRecord.pack(b) }
func (r *KEY) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.keyRecord.unpack(b) }

// DNSKEY is a DNSSEC public-key record (RFC 4034 §2).
type DNSKEY struct{ keyRecord }

func (DNSKEY) Type() Type                              { return TypeDNSKEY }
func (r DNSKEY) Length(Compressor) (int, error)         { return r.keyRecord.length() }
func (r DNSKEY) Pack(b []byte, _ Compressor) ([]byte, error) { return r.keyRecord.pack(b) }
func (r *DNSKEY) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.keyRecord.unpack(b) }

// CDNSKEY is the child copy of a DNSKEY for DS-upload automation
// (RFC 7344), sharing DNSKEY's wire shape.
type CDNSKEY struct{ keyRecord }

func (CDNSKEY) Type() Type                              { return TypeCDNSKEY }
func (r CDNSKEY) Length(Compressor) (int, error)         { return r.keyRecord.length() }
func (r CDNSKEY) Pack(b []byte, _ Compressor) ([]byte, error) { return r.keyRecord.pack(b) }
func (r *CDNSKEY) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.keyRecord.unpack(b) }

// dsRecord is the shared shape of DS (RFC 4034 §5) and CDS (RFC 7344):
// a key tag, algorithm, digest type, and digest.
type dsRecord struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
}

func (d dsRecord) length() (int, error) { return 4 + len(d.Digest), nil }

func (d dsRecord) pack(b []byte) ([]byte, error) {
	var buf [4]byte
	nbo.PutUint16(buf[0:2], d.KeyTag)
	buf[2] = d.Algorithm
	buf[3] = d.DigestType
	b = append(b, buf[:]...)
	return append(b, d.Digest...), nil
}

func (d *dsRecord) unpack(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, errResourceLen
	}
	d.KeyTag = nbo.Uint16(b[0:2])
	d.Algorithm = b[2]
	d.DigestType = b[3]
	d.Digest = append([]byte(nil), b[4:]...)
	return nil, nil
}

// DS is a Delegation Signer record (RFC 4034 §5).
type DS struct{ dsRecord }

func (DS) Type() Type                              { return TypeDS }
func (r DS) Length(Compressor) (int, error)         { return r.dsRecord.length() }
func (r DS) Pack(b []byte, _ Compressor) ([]byte, error) { return r.dsRecord.pack(b) }
func (r *DS) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.dsRecord.unpack(b) }

// CDS is the child copy of a DS for parent-upload automation
// (RFC 7344), sharing DS's wire shape.
type CDS struct{ dsRecord }

func (CDS) Type() Type                              { return TypeCDS }
func (r CDS) Length(Compressor) (int, error)         { return r.dsRecord.length() }
func (r CDS) Pack(b []byte, _ Compressor) ([]byte, error) { return r.dsRecord.pack(b) }
func (r *CDS) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.dsRecord.unpack(b) }

// sigRecord is the shared shape of SIG (RFC 2535) and RRSIG
// (RFC 4034 §3). A zero covered type with a "." owner name is how this
// package represents a SIG(0) transaction signature (spec §3): it is
// promoted to Message.SIG0 instead of living in Answers/Additionals.
type sigRecord struct {
	covered     Type
	algorithm   uint8
	labels      uint8
	originalTTL uint32
	expiration  uint32
	inception   uint32
	keyTag      uint16
	signerName  string
	signature   []byte
}

func (s sigRecord) length() (int, error) {
	n, err := (&compressor{}).Length(s.signerName)
	if err != nil {
		return 0, err
	}
	return n + 18 + len(s.signature), nil
}

func (s sigRecord) pack(b []byte) ([]byte, error) {
	var hdr [18]byte
	nbo.PutUint16(hdr[0:2], uint16(s.covered))
	hdr[2] = s.algorithm
	hdr[3] = s.labels
	nbo.PutUint32(hdr[4:8], s.originalTTL)
	nbo.PutUint32(hdr[8:12], s.expiration)
	nbo.PutUint32(hdr[12:16], s.inception)
	nbo.PutUint16(hdr[16:18], s.keyTag)
	b = append(b, hdr[:]...)
	b, err := (&compressor{}).Pack(b, s.signerName)
	if err != nil {
		return nil, err
	}
	return append(b, s.signature...), nil
}

func (s *sigRecord) unpack(b []byte) ([]byte, error) {
	if len(b) < 18 {
		return nil, errResourceLen
	}
	s.covered = Type(nbo.Uint16(b[0:2]))
	s.algorithm = b[2]
	s.labels = b[3]
	s.originalTTL = nbo.Uint32(b[4:8])
	s.expiration = nbo.Uint32(b[8:12])
	s.inception = nbo.Uint32(b[12:16])
	s.keyTag = nbo.Uint16(b[16:18])
	name, rest, err := decompressor(nil).Unpack(b[18:])
	if err != nil {
		return nil, err
	}
	s.signerName = name
	s.signature = append([]byte(nil), rest...)
	return nil, nil
}

// SIG is a digital-signature record (RFC 2535), most commonly seen on
// the wire as a transaction-level SIG(0) pseudo-record.
type SIG struct{ sigRecord }

func (SIG) Type() Type                              { return TypeSIG }
func (r SIG) Length(Compressor) (int, error)         { return r.sigRecord.length() }
func (r SIG) Pack(b []byte, _ Compressor) ([]byte, error) { return r.sigRecord.pack(b) }
func (r *SIG) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.sigRecord.unpack(b) }

// RRSIG is a DNSSEC resource-record-set signature (RFC 4034 §3).
type RRSIG struct{ sigRecord }

func (RRSIG) Type() Type                              { return TypeRRSIG }
func (r RRSIG) Length(Compressor) (int, error)         { return r.sigRecord.length() }
func (r RRSIG) Pack(b []byte, _ Compressor) ([]byte, error) { return r.sigRecord.pack(b) }
func (r *RRSIG) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.sigRecord.unpack(b) }

// Expiration and Inception expose sigRecord's packed timestamps as
// time.Time values (RFC 4034 §3.1.5 encodes them as seconds since the
// Unix epoch, wrapping mod 2^32).
func (r RRSIG) Expiration() time.Time { return time.Unix(int64(r.expiration), 0).UTC() }
func (r RRSIG) Inception() time.Time  { return time.Unix(int64(r.inception), 0).UTC() }

// NSEC is an authenticated-denial record (RFC 4034 §4). NextDomain is
// not compressed per RFC 4034 §4.1.
type NSEC struct {
	NextDomain string
	TypeBitmap []Type
}

func (NSEC) Type() Type { return TypeNSEC }

func (r NSEC) Length(Compressor) (int, error) {
	n, err := (&compressor{}).Length(r.NextDomain)
	if err != nil {
		return 0, err
	}
	return n + len(ToBitmap(r.TypeBitmap)), nil
}

func (r NSEC) Pack(b []byte, _ Compressor) ([]byte, error) {
	b, err := (&compressor{}).Pack(b, r.NextDomain)
	if err != nil {
		return nil, err
	}
	return append(b, ToBitmap(r.TypeBitmap)...), nil
}

func (r *NSEC) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	name, rest, err := decompressor(nil).Unpack(b)
	if err != nil {
		return nil, err
	}
	types, err := FromBitmap(rest)
	if err != nil {
		return nil, err
	}
	r.NextDomain = name
	r.TypeBitmap = types
	return nil, nil
}

// NSEC3 is a hashed authenticated-denial record (RFC 5155 §3).
type NSEC3 struct {
	HashAlgorithm uint8
	Flags         uint8
	Iterations    uint16
	Salt          []byte
	NextHashed    []byte
	TypeBitmap    []Type
}

func (NSEC3) Type() Type { return TypeNSEC3 }

func (r NSEC3) Length(Compressor) (int, error) {
	return 5 + len(r.Salt) + 1 + len(r.NextHashed) + len(ToBitmap(r.TypeBitmap)), nil
}

func (r NSEC3) Pack(b []byte, _ Compressor) ([]byte, error) {
	if len(r.Salt) > 255 || len(r.NextHashed) > 255 {
		return nil, errFieldOverflow
	}
	var hdr [5]byte
	hdr[0] = r.HashAlgorithm
	hdr[1] = r.Flags
	nbo.PutUint16(hdr[2:4], r.Iterations)
	hdr[4] = byte(len(r.Salt))
	b = append(b, hdr[:]...)
	b = append(b, r.Salt...)
	b = append(b, byte(len(r.NextHashed)))
	b = append(b, r.NextHashed...)
	return append(b, ToBitmap(r.TypeBitmap)...), nil
}

func (r *NSEC3) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 5 {
		return nil, errResourceLen
	}
	r.HashAlgorithm = b[0]
	r.Flags = b[1]
	r.Iterations = nbo.Uint16(b[2:4])
	saltLen := int(b[4])
	rest := b[5:]
	if len(rest) < saltLen+1 {
		return nil, errResourceLen
	}
	r.Salt = append([]byte(nil), rest[:saltLen]...)
	rest = rest[saltLen:]
	hashLen := int(rest[0])
	rest = rest[1:]
	if len(rest) < hashLen {
		return nil, errResourceLen
	}
	r.NextHashed = append([]byte(nil), rest[:hashLen]...)
	rest = rest[hashLen:]
	types, err := FromBitmap(rest)
	if err != nil {
		return nil, err
	}
	r.TypeBitmap = types
	return nil, nil
}

// NSEC3PARAM conveys the NSEC3 hashing parameters a zone uses
// (RFC 5155 §4).
type NSEC3PARAM struct {
	HashAlgorithm uint8
	Flags         uint8
	Iterations    uint16
	Salt          []byte
}

func (NSEC3PARAM) Type() Type { return TypeNSEC3PARAM }

func (r NSEC3PARAM) Length(Compressor) (int, error) { return 5 + len(r.Salt), nil }

func (r NSEC3PARAM) Pack(b []byte, _ Compressor) ([]byte, error) {
	if len(r.Salt) > 255 {
		return nil, errFieldOverflow
	}
	var hdr [5]byte
	hdr[0] = r.HashAlgorithm
	hdr[1] = r.Flags
	nbo.PutUint16(hdr[2:4], r.Iterations)
	hdr[4] = byte(len(r.Salt))
	b = append(b, hdr[:]...)
	return append(b, r.Salt...), nil
}

func (r *NSEC3PARAM) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 5 {
		return nil, errResourceLen
	}
	r.HashAlgorithm = b[0]
	r.Flags = b[1]
	r.Iterations = nbo.Uint16(b[2:4])
	saltLen := int(b[4])
	if len(b) < 5+saltLen {
		return nil, errResourceLen
	}
	r.Salt = append([]byte(nil), b[5:5+saltLen]...)
	return nil, nil
}

// tlsaRecord is the shared shape of TLSA (RFC 6698) and SMIMEA
// (RFC 8162): usage/selector/matching-type octets plus an
// association-data blob.
type tlsaRecord struct {
	Usage        uint8
	Selector     uint8
	MatchingType uint8
	Data         []byte
}

func (t tlsaRecord) length() (int, error) { return 3 + len(t.Data), nil }

func (t tlsaRecord) pack(b []byte) ([]byte, error) {
	b = append(b, t.Usage, t.Selector, t.MatchingType)
	return append(b, t.Data...), nil
}

func (t *tlsaRecord) unpack(b []byte) ([]byte, error) {
	if len(b) < 3 {
		return nil, errResourceLen
	}
	t.Usage = b[0]
	t.Selector = b[1]
	t.MatchingType = b[2]
	t.Data = append([]byte(nil), b[3:]...)
	return nil, nil
}

// TLSA associates a certificate with a TLS service (RFC 6698).
type TLSA struct{ tlsaRecord }

func (TLSA) Type() Type                              { return TypeTLSA }
func (r TLSA) Length(Compressor) (int, error)         { return r.tlsaRecord.length() }
func (r TLSA) Pack(b []byte, _ Compressor) ([]byte, error) { return r.tlsaRecord.pack(b) }
func (r *TLSA) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.tlsaRecord.unpack(b) }

// SMIMEA associates a certificate with an S/MIME identity (RFC 8162),
// sharing TLSA's wire shape.
type SMIMEA struct{ tlsaRecord }

func (SMIMEA) Type() Type                              { return TypeSMIMEA }
func (r SMIMEA) Length(Compressor) (int, error)         { return r.tlsaRecord.length() }
func (r SMIMEA) Pack(b []byte, _ Compressor) ([]byte, error) { return r.tlsaRecord.pack(b) }
func (r *SMIMEA) Unpack(b []byte, _ Decompressor) ([]byte, error) { return r.tlsaRecord.unpack(b) }

// SSHFP conveys an SSH public-key fingerprint (RFC 4255).
type SSHFP struct {
	Algorithm   uint8
	FPType      uint8
	Fingerprint []byte
}

func (SSHFP) Type() Type { return TypeSSHFP }

func (r SSHFP) Length(Compressor) (int, error) { return 2 + len(r.Fingerprint), nil }

func (r SSHFP) Pack(b []byte, _ Compressor) ([]byte, error) {
	b = append(b, r.Algorithm, r.FPType)
	return append(b, r.Fingerprint...), nil
}

func (r *SSHFP) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 2 {
		return nil, errResourceLen
	}
	r.Algorithm = b[0]
	r.FPType = b[1]
	r.Fingerprint = append([]byte(nil), b[2:]...)
	return nil, nil
}

// IPSECKEY conveys public keying material for IPsec (RFC 4025). The
// gateway field's shape depends on GatewayType (0 none, 1 IPv4, 2
// IPv6, 3 domain name) so it is kept as raw bytes here; callers decode
// it against GatewayType themselves.
type IPSECKEY struct {
	Precedence  uint8
	GatewayType uint8
	Algorithm   uint8
	Gateway     []byte
	PublicKey   []byte
}

func (IPSECKEY) Type() Type { return TypeIPSECKEY }

func (r IPSECKEY) Length(Compressor) (int, error) {
	return 3 + len(r.Gateway) + len(r.PublicKey), nil
}

func (r IPSECKEY) Pack(b []byte, _ Compressor) ([]byte, error) {
	b = append(b, r.Precedence, r.GatewayType, r.Algorithm)
	b = append(b, r.Gateway...)
	return append(b, r.PublicKey...), nil
}

func (r *IPSECKEY) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 3 {
		return nil, errResourceLen
	}
	r.Precedence = b[0]
	r.GatewayType = b[1]
	r.Algorithm = b[2]
	rest := b[3:]
	gwLen := gatewayLen(r.GatewayType, rest)
	if len(rest) < gwLen {
		return nil, errResourceLen
	}
	r.Gateway = append([]byte(nil), rest[:gwLen]...)
	r.PublicKey = append([]byte(nil), rest[gwLen:]...)
	return nil, nil
}

func gatewayLen(gatewayType uint8, rest []byte) int {
	switch gatewayType {
	case 1:
		return 4
	case 2:
		return 16
	case 3:
		_, tail, err := decompressor(nil).Unpack(rest)
		if err != nil {
			return len(rest)
		}
		return len(rest) - len(tail)
	default:
		return 0
	}
}

// DHCID conveys DHCP-client identity information bound to a name
// (RFC 4701); the digest form is opaque to this package.
type DHCID struct{ Data []byte }

func (DHCID) Type() Type                   { return TypeDHCID }
func (r DHCID) Length(Compressor) (int, error) { return len(r.Data), nil }

func (r DHCID) Pack(b []byte, _ Compressor) ([]byte, error) { return append(b, r.Data...), nil }

func (r *DHCID) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	r.Data = append([]byte(nil), b...)
	return nil, nil
}

// CSYNC signals a child zone is ready for its parent to synchronize
// delegation records from it (RFC 7477).
type CSYNC struct {
	SOASerial  uint32
	Flags      uint16
	TypeBitmap []Type
}

func (CSYNC) Type() Type { return TypeCSYNC }

func (r CSYNC) Length(Compressor) (int, error) { return 6 + len(ToBitmap(r.TypeBitmap)), nil }

func (r CSYNC) Pack(b []byte, _ Compressor) ([]byte, error) {
	var hdr [6]byte
	nbo.PutUint32(hdr[0:4], r.SOASerial)
	nbo.PutUint16(hdr[4:6], r.Flags)
	b = append(b, hdr[:]...)
	return append(b, ToBitmap(r.TypeBitmap)...), nil
}

func (r *CSYNC) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 6 {
		return nil, errResourceLen
	}
	r.SOASerial = nbo.Uint32(b[0:4])
	r.Flags = nbo.Uint16(b[4:6])
	types, err := FromBitmap(b[6:])
	if err != nil {
		return nil, err
	}
	r.TypeBitmap = types
	return nil, nil
}
