// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

// SOA is a start-of-authority record (RFC 1035 §3.3.13).
type SOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (SOA) Type() Type { return TypeSOA }

func (r SOA) Length(com Compressor) (int, error) {
	if com == nil {
		com = &compressor{}
	}
	n, err := com.Length(r.MName, r.RName)
	if err != nil {
		return 0, err
	}
	return n + 20, nil
}

func (r SOA) Pack(b []byte, com Compressor) ([]byte, error) {
	if com == nil {
		com = &compressor{}
	}
	var err error
	b, err = com.Pack(b, r.MName)
	if err != nil {
		return nil, err
	}
	b, err = com.Pack(b, r.RName)
	if err != nil {
		return nil, err
	}
	var buf [20]byte
	nbo.PutUint32(buf[0:4], r.Serial)
	nbo.PutUint32(buf[4:8], r.Refresh)
	nbo.PutUint32(buf[8:12], r.Retry)
	nbo.PutUint32(buf[12:16], r.Expire)
	nbo.PutUint32(buf[16:20], r.Minimum)
	return append(b, buf[:]...), nil
}

func (r *SOA) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	if dec == nil {
		dec = decompressor(nil)
	}
	mname, rest, err := dec.Unpack(b)
	if err != nil {
		return nil, err
	}
	rname, rest, err := dec.Unpack(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) < 20 {
		return nil, errResourceLen
	}
	r.MName = mname
	r.RName = rname
	r.Serial = nbo.Uint32(rest[0:4])
	r.Refresh = nbo.Uint32(rest[4:8])
	r.Retry = nbo.Uint32(rest[8:12])
	r.Expire = nbo.Uint32(rest[12:16])
	r.Minimum = nbo.Uint32(rest[16:20])
	return rest[20:], nil
}

// MX is a mail-exchange record (RFC 1035 §3.3.9).
type MX struct {
	Preference uint16
	Exchange   string
}

func (MX) Type() Type { return TypeMX }

func (r MX) Length(com Compressor) (int, error) {
	if com == nil {
		com = &compressor{}
	}
	n, err := com.Length(r.Exchange)
	if err != nil {
		return 0, err
	}
	return n + 2, nil
}

func (r MX) Pack(b []byte, com Compressor) ([]byte, error) {
	if com == nil {
		com = &compressor{}
	}
	var buf [2]byte
	nbo.PutUint16(buf[:], r.Preference)
	b = append(b, buf[:]...)
	return com.Pack(b, r.Exchange)
}

func (r *MX) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	if dec == nil {
		dec = decompressor(nil)
	}
	if len(b) < 2 {
		return nil, errResourceLen
	}
	r.Preference = nbo.Uint16(b[:2])
	name, rest, err := dec.Unpack(b[2:])
	if err != nil {
		return nil, err
	}
	r.Exchange = name
	return rest, nil
}

// KX is a Key Exchanger record (RFC 2230), sharing MX's shape.
type KX struct {
	Preference uint16
	Exchanger  string
}

func (KX) Type() Type { return TypeKX }

func (r KX) Length(Compressor) (int, error) {
	n, err := (&compressor{}).Length(r.Exchanger)
	if err != nil {
		return 0, err
	}
	return n + 2, nil
}

func (r KX) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [2]byte
	nbo.PutUint16(buf[:], r.Preference)
	b = append(b, buf[:]...)
	return (&compressor{}).Pack(b, r.Exchanger)
}

func (r *KX) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 2 {
		return nil, errResourceLen
	}
	r.Preference = nbo.Uint16(b[:2])
	name, rest, err := decompressor(nil).Unpack(b[2:])
	if err != nil {
		return nil, err
	}
	r.Exchanger = name
	return rest, nil
}

// RT is a Route-Through record (RFC 1183 §3.3), sharing KX's shape.
type RT struct {
	Preference       uint16
	IntermediateHost string
}

func (RT) Type() Type { return TypeRT }

func (r RT) Length(Compressor) (int, error) {
	n, err := (&compressor{}).Length(r.IntermediateHost)
	if err != nil {
		return 0, err
	}
	return n + 2, nil
}

func (r RT) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [2]byte
	nbo.PutUint16(buf[:], r.Preference)
	b = append(b, buf[:]...)
	return (&compressor{}).Pack(b, r.IntermediateHost)
}

func (r *RT) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 2 {
		return nil, errResourceLen
	}
	r.Preference = nbo.Uint16(b[:2])
	name, rest, err := decompressor(nil).Unpack(b[2:])
	if err != nil {
		return nil, err
	}
	r.IntermediateHost = name
	return rest, nil
}

// SRV is a service-location record (RFC 2782). Target is not
// compressed per RFC 2782's wire-format note.
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (SRV) Type() Type { return TypeSRV }

func (r SRV) Length(Compressor) (int, error) {
	n, err := (&compressor{}).Length(r.Target)
	if err != nil {
		return 0, err
	}
	return n + 6, nil
}

func (r SRV) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [6]byte
	nbo.PutUint16(buf[0:2], r.Priority)
	nbo.PutUint16(buf[2:4], r.Weight)
	nbo.PutUint16(buf[4:6], r.Port)
	b = append(b, buf[:]...)
	return (&compressor{}).Pack(b, r.Target)
}

func (r *SRV) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 6 {
		return nil, errResourceLen
	}
	r.Priority = nbo.Uint16(b[0:2])
	r.Weight = nbo.Uint16(b[2:4])
	r.Port = nbo.Uint16(b[4:6])
	name, rest, err := decompressor(nil).Unpack(b[6:])
	if err != nil {
		return nil, err
	}
	r.Target = name
	return rest, nil
}

// RP is a Responsible Person record (RFC 1183 §2.2). Names are not
// compressed per RFC 1183.
type RP struct {
	Mbox string
	Txt  string
}

func (RP) Type() Type { return TypeRP }

func (r RP) Length(Compressor) (int, error) {
	com := &compressor{}
	return com.Length(r.Mbox, r.Txt)
}

func (r RP) Pack(b []byte, _ Compressor) ([]byte, error) {
	com := &compressor{}
	var err error
	b, err = com.Pack(b, r.Mbox)
	if err != nil {
		return nil, err
	}
	return com.Pack(b, r.Txt)
}

func (r *RP) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	dec := decompressor(nil)
	mbox, rest, err := dec.Unpack(b)
	if err != nil {
		return nil, err
	}
	txt, rest, err := dec.Unpack(rest)
	if err != nil {
		return nil, err
	}
	r.Mbox, r.Txt = mbox, txt
	return rest, nil
}

// AFSDB is the AFS Data Base location record (RFC 1183 §1).
type AFSDB struct {
	Subtype  uint16
	Hostname string
}

func (AFSDB) Type() Type { return TypeAFSDB }

func (r AFSDB) Length(Compressor) (int, error) {
	n, err := (&compressor{}).Length(r.Hostname)
	if err != nil {
		return 0, err
	}
	return n + 2, nil
}

func (r AFSDB) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [2]byte
	nbo.PutUint16(buf[:], r.Subtype)
	b = append(b, buf[:]...)
	return (&compressor{}).Pack(b, r.Hostname)
}

func (r *AFSDB) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 2 {
		return nil, errResourceLen
	}
	r.Subtype = nbo.Uint16(b[:2])
	name, rest, err := decompressor(nil).Unpack(b[2:])
	if err != nil {
		return nil, err
	}
	r.Hostname = name
	return rest, nil
}

// X25 carries an X.25 PSDN address (RFC 1183 §3.1).
type X25 struct{ PSDNAddress string }

func (X25) Type() Type { return TypeX25 }

func (r X25) Length(Compressor) (int, error) {
	if len(r.PSDNAddress) > 255 {
		return 0, errCharStringLen
	}
	return 1 + len(r.PSDNAddress), nil
}

func (r X25) Pack(b []byte, _ Compressor) ([]byte, error) {
	return packCharString(b, r.PSDNAddress)
}

func (r *X25) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	s, rest, err := unpackCharString(b)
	if err != nil {
		return nil, err
	}
	r.PSDNAddress = s
	return rest, nil
}

// ISDN carries an ISDN address (RFC 1183 §3.2).
type ISDN struct {
	Address string
	SA      string
}

func (ISDN) Type() Type { return TypeISDN }

func (r ISDN) Length(Compressor) (int, error) {
	n := 1 + len(r.Address)
	if r.SA != "" {
		n += 1 + len(r.SA)
	}
	return n, nil
}

func (r ISDN) Pack(b []byte, _ Compressor) ([]byte, error) {
	b, err := packCharString(b, r.Address)
	if err != nil {
		return nil, err
	}
	if r.SA == "" {
		return b, nil
	}
	return packCharString(b, r.SA)
}

func (r *ISDN) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	addr, rest, err := unpackCharString(b)
	if err != nil {
		return nil, err
	}
	r.Address = addr
	if len(rest) == 0 {
		r.SA = ""
		return rest, nil
	}
	sa, rest, err := unpackCharString(rest)
	if err != nil {
		return nil, err
	}
	r.SA = sa
	return rest, nil
}

// NSAP is an NSAP address record (RFC 1706); the address has no
// further internal structure we need to model.
type NSAP struct{ Address []byte }

func (NSAP) Type() Type                   { return TypeNSAP }
func (r NSAP) Length(Compressor) (int, error) { return len(r.Address), nil }

func (r NSAP) Pack(b []byte, _ Compressor) ([]byte, error) { return append(b, r.Address...), nil }

func (r *NSAP) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	r.Address = append([]byte(nil), b...)
	return nil, nil
}

// NAPTR is a Naming Authority Pointer record (RFC 3403). Replacement
// is not compressed, matching RFC 3403 §4's wire format.
type NAPTR struct {
	Order       uint16
	Preference  uint16
	Flags       string
	Services    string
	Regexp      string
	Replacement string
}

func (NAPTR) Type() Type { return TypeNAPTR }

func (r NAPTR) Length(Compressor) (int, error) {
	n, err := (&compressor{}).Length(r.Replacement)
	if err != nil {
		return 0, err
	}
	return n + 4 + 1 + len(r.Flags) + 1 + len(r.Services) + 1 + len(r.Regexp), nil
}

func (r NAPTR) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [4]byte
	nbo.PutUint16(buf[0:2], r.Order)
	nbo.PutUint16(buf[2:4], r.Preference)
	b = append(b, buf[:]...)
	var err error
	b, err = packCharString(b, r.Flags)
	if err != nil {
		return nil, err
	}
	b, err = packCharString(b, r.Services)
	if err != nil {
		return nil, err
	}
	b, err = packCharString(b, r.Regexp)
	if err != nil {
		return nil, err
	}
	return (&compressor{}).Pack(b, r.Replacement)
}

func (r *NAPTR) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 4 {
		return nil, errResourceLen
	}
	r.Order = nbo.Uint16(b[0:2])
	r.Preference = nbo.Uint16(b[2:4])
	rest := b[4:]
	var err error
	r.Flags, rest, err = unpackCharString(rest)
	if err != nil {
		return nil, err
	}
	r.Services, rest, err = unpackCharString(rest)
	if err != nil {
		return nil, err
	}
	r.Regexp, rest, err = unpackCharString(rest)
	if err != nil {
		return nil, err
	}
	name, rest, err := decompressor(nil).Unpack(rest)
	if err != nil {
		return nil, err
	}
	r.Replacement = name
	return rest, nil
}

// CERT carries a certificate or CRL (RFC 4398).
type CERT struct {
	CertType    uint16
	KeyTag      uint16
	Algorithm   uint8
	Certificate []byte
}

func (CERT) Type() Type { return TypeCERT }

func (r CERT) Length(Compressor) (int, error) { return 5 + len(r.Certificate), nil }

func (r CERT) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [5]byte
	nbo.PutUint16(buf[0:2], r.CertType)
	nbo.PutUint16(buf[2:4], r.KeyTag)
	buf[4] = r.Algorithm
	b = append(b, buf[:]...)
	return append(b, r.Certificate...), nil
}

func (r *CERT) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 5 {
		return nil, errResourceLen
	}
	r.CertType = nbo.Uint16(b[0:2])
	r.KeyTag = nbo.Uint16(b[2:4])
	r.Algorithm = b[4]
	r.Certificate = append([]byte(nil), b[5:]...)
	return nil, nil
}

// LOC is a geographical location record (RFC 1876).
type LOC struct {
	Version   uint8
	Size      uint8
	HorizPre  uint8
	VertPre   uint8
	Latitude  uint32
	Longitude uint32
	Altitude  uint32
}

func (LOC) Type() Type                   { return TypeLOC }
func (r LOC) Length(Compressor) (int, error) { return 16, nil }

func (r LOC) Pack(b []byte, _ Compressor) ([]byte, error) {
	var buf [16]byte
	buf[0] = r.Version
	buf[1] = r.Size
	buf[2] = r.HorizPre
	buf[3] = r.VertPre
	nbo.PutUint32(buf[4:8], r.Latitude)
	nbo.PutUint32(buf[8:12], r.Longitude)
	nbo.PutUint32(buf[12:16], r.Altitude)
	return append(b, buf[:]...), nil
}

func (r *LOC) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	if len(b) < 16 {
		return nil, errResourceLen
	}
	r.Version = b[0]
	r.Size = b[1]
	r.HorizPre = b[2]
	r.VertPre = b[3]
	r.Latitude = nbo.Uint32(b[4:8])
	r.Longitude = nbo.Uint32(b[8:12])
	r.Altitude = nbo.Uint32(b[12:16])
	return b[16:], nil
}

// OPENPGPKEY carries an OpenPGP public key (RFC 7929).
type OPENPGPKEY struct{ PublicKey []byte }

func (OPENPGPKEY) Type() Type                   { return TypeOPENPGPKEY }
func (r OPENPGPKEY) Length(Compressor) (int, error) { return len(r.PublicKey), nil }

func (r OPENPGPKEY) Pack(b []byte, _ Compressor) ([]byte, error) {
	return append(b, r.PublicKey...), nil
}

func (r *OPENPGPKEY) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	r.PublicKey = append([]byte(nil), b...)
	return nil, nil
}

// OPT is the EDNS0 pseudo-record (RFC 6891 §6.1). Its Name is always
// the root, its Class carries the advertised UDP payload size, and
// its TTL carries the spliced extended-RCODE/version/DO bits; message
// encode/decode (C5) handles that splicing via ednsToResource and
// ednsFromResource. Options here are the raw TLV list (C8).
type OPT struct{ Options []EDNSOption }

func (OPT) Type() Type { return TypeOPT }

func (r OPT) Length(Compressor) (int, error) {
	n := 0
	for _, opt := range r.Options {
		n += opt.Length()
	}
	return n, nil
}

func (r OPT) Pack(b []byte, _ Compressor) ([]byte, error) {
	var err error
	for _, opt := range r.Options {
		b, err = opt.Pack(b)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (r *OPT) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	var opts []EDNSOption
	for len(b) > 0 {
		var opt EDNSOption
		var err error
		b, err = opt.Unpack(b)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	r.Options = opts
	return nil, nil
}
