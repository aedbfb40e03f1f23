// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

// nameRecord is the shared shape for every RR whose rdata is a single
// compressible domain name (NS, CNAME, PTR, MD, MF, MB, MG, MR, DNAME).
// Each dedicated type embeds it and overrides Type().
type nameRecord struct {
	Name string
}

func (r nameRecord) length(com Compressor) (int, error) {
	if com == nil {
		com = &compressor{}
	}
	return com.Length(r.Name)
}

func (r nameRecord) pack(b []byte, com Compressor) ([]byte, error) {
	if com == nil {
		com = &compressor{}
	}
	return com.Pack(b, r.Name)
}

func (r *nameRecord) unpack(b []byte, dec Decompressor) ([]byte, error) {
	if dec == nil {
		dec = decompressor(nil)
	}
	name, rest, err := dec.Unpack(b)
	if err != nil {
		return nil, err
	}
	r.Name = name
	return rest, nil
}

// NS is a name-server record (RFC 1035 §3.3.11).
type NS struct{ nameRecord }

func (NS) Type() Type { return TypeNS }
func (r NS) Length(com Compressor) (int, error)          { return r.nameRecord.length(com) }
func (r NS) Pack(b []byte, com Compressor) ([]byte, error) { return r.nameRecord.pack(b, com) }
func (r *NS) Unpack(b []byte, dec Decompressor) ([]byte, error) { return r.nameRecord.unpack(b, dec) }

// MD is an obsolete mail-destination record (RFC 1035 §3.3.4).
type MD struct{ nameRecord }

func (MD) Type() Type { return TypeMD }
func (r MD) Length(com Compressor) (int, error)          { return r.nameRecord.length(com) }
func (r MD) Pack(b []byte, com Compressor) ([]byte, error) { return r.nameRecord.pack(b, com) }
func (r *MD) Unpack(b []byte, dec Decompressor) ([]byte, error) { return r.nameRecord.unpack(b, dec) }

// MF is an obsolete mail-forwarder record (RFC 1035 §3.3.5).
type MF struct{ nameRecord }

func (MF) Type() Type { return TypeMF }
func (r MF) Length(com Compressor) (int, error)          { return r.nameRecord.length(com) }
func (r MF) Pack(b []byte, com Compressor) ([]byte, error) { return r.nameRecord.pack(b, com) }
func (r *MF) Unpack(b []byte, dec Decompressor) ([]byte, error) { return r.nameRecord.unpack(b, dec) }

// CNAME is a canonical-name record (RFC 1035 §3.3.1).
type CNAME struct{ nameRecord }

func (CNAME) Type() Type { return TypeCNAME }
func (r CNAME) Length(com Compressor) (int, error)          { return r.nameRecord.length(com) }
func (r CNAME) Pack(b []byte, com Compressor) ([]byte, error) { return r.nameRecord.pack(b, com) }
func (r *CNAME) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	return r.nameRecord.unpack(b, dec)
}

// MB is an obsolete mailbox-domain record (RFC 1035 §3.3.3).
type MB struct{ nameRecord }

func (MB) Type() Type { return TypeMB }
func (r MB) Length(com Compressor) (int, error)          { return r.nameRecord.length(com) }
func (r MB) Pack(b []byte, com Compressor) ([]byte, error) { return r.nameRecord.pack(b, com) }
func (r *MB) Unpack(b []byte, dec Decompressor) ([]byte, error) { return r.nameRecord.unpack(b, dec) }

// MG is an obsolete mail-group-member record (RFC 1035 §3.3.6).
type MG struct{ nameRecord }

func (MG) Type() Type { return TypeMG }
func (r MG) Length(com Compressor) (int, error)          { return r.nameRecord.length(com) }
func (r MG) Pack(b []byte, com Compressor) ([]byte, error) { return r.nameRecord.pack(b, com) }
func (r *MG) Unpack(b []byte, dec Decompressor) ([]byte, error) { return r.nameRecord.unpack(b, dec) }

// MR is an obsolete mail-rename record (RFC 1035 §3.3.8).
type MR struct{ nameRecord }

func (MR) Type() Type { return TypeMR }
func (r MR) Length(com Compressor) (int, error)          { return r.nameRecord.length(com) }
func (r MR) Pack(b []byte, com Compressor) ([]byte, error) { return r.nameRecord.pack(b, com) }
func (r *MR) Unpack(b []byte, dec Decompressor) ([]byte, error) { return r.nameRecord.unpack(b, dec) }

// PTR is a domain-name-pointer record (RFC 1035 §3.3.12).
type PTR struct{ nameRecord }

func (PTR) Type() Type { return TypePTR }
func (r PTR) Length(com Compressor) (int, error)          { return r.nameRecord.length(com) }
func (r PTR) Pack(b []byte, com Compressor) ([]byte, error) { return r.nameRecord.pack(b, com) }
func (r *PTR) Unpack(b []byte, dec Decompressor) ([]byte, error) { return r.nameRecord.unpack(b, dec) }

// NSAPPTR is the NSAP-style reverse-pointer record (RFC 1348), sharing
// PTR's single-name shape.
type NSAPPTR struct{ nameRecord }

func (NSAPPTR) Type() Type { return TypeNSAPPTR }
func (r NSAPPTR) Length(com Compressor) (int, error) { return r.nameRecord.length(com) }
func (r NSAPPTR) Pack(b []byte, com Compressor) ([]byte, error) {
	return r.nameRecord.pack(b, com)
}
func (r *NSAPPTR) Unpack(b []byte, dec Decompressor) ([]byte, error) {
	return r.nameRecord.unpack(b, dec)
}

// DNAME is a non-terminal name-redirection record (RFC 6672). Per
// RFC 6672 §2.4 its target is not name-compressed on the wire; it
// still shares nameRecord's field but packs/unpacks without a
// compression table.
type DNAME struct{ nameRecord }

func (DNAME) Type() Type { return TypeDNAME }

func (r DNAME) Length(Compressor) (int, error) {
	return (&compressor{}).Length(r.Name)
}

func (r DNAME) Pack(b []byte, _ Compressor) ([]byte, error) {
	return (&compressor{}).Pack(b, r.Name)
}

func (r *DNAME) Unpack(b []byte, _ Decompressor) ([]byte, error) {
	return r.nameRecord.unpack(b, decompressor(nil))
}
