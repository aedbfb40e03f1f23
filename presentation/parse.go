// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package presentation

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"net"
	"strconv"
	"strings"

	dns "github.com/quillresolve/dns"
)

var base32HexNoPad = base32.HexEncoding.WithPadding(base32.NoPadding)

func classByName(name string) (dns.Class, bool) { return dns.ParseClass(name) }
func typeByName(name string) (dns.Type, bool)    { return dns.ParseType(name) }

// parseGenericRData decodes the RFC 3597 `\# <len> <hex>` form and
// feeds the recovered bytes through the type's normal binary decoder,
// so a generic-form line round-trips exactly like a type-specific one.
func parseGenericRData(rtype dns.Type, fields []string) (dns.Record, error) {
	if len(fields) < 2 {
		return nil, errSyntax
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, errSyntax
	}
	raw, err := hex.DecodeString(strings.Join(fields[2:], ""))
	if err != nil || len(raw) != n {
		return nil, errSyntax
	}

	newfn, ok := dns.NewRecordByType[rtype]
	if !ok {
		return &dns.UNKNOWN{RRType: rtype, Data: raw}, nil
	}
	record := newfn()
	if _, err := record.Unpack(raw, nil); err != nil {
		return nil, err
	}
	return record, nil
}

func u16(s string) (uint16, error) { v, err := strconv.ParseUint(s, 10, 16); return uint16(v), err }
func u32(s string) (uint32, error) { v, err := strconv.ParseUint(s, 10, 32); return uint32(v), err }
func u8(s string) (uint8, error)   { v, err := strconv.ParseUint(s, 10, 8); return uint8(v), err }

func unquote(s string) string {
	return strings.ReplaceAll(strings.Trim(s, `"`), `\"`, `"`)
}

func parseIP(s string) (net.IP, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, errSyntax
	}
	return ip, nil
}

// parseRData builds the type-specific Record for the subset of types
// formatRData renders with bespoke syntax; any other type falls back
// to the generic `\#` form, which callers try first anyway. LOC and OPT
// are rendered by formatRData in their own form but have no case here,
// so their formatted lines are rejected with errSyntax.
func parseRData(rtype dns.Type, f []string) (dns.Record, error) {
	switch rtype {
	case dns.TypeA:
		if len(f) != 1 {
			return nil, errSyntax
		}
		ip, err := parseIP(f[0])
		if err != nil {
			return nil, err
		}
		return &dns.A{A: ip}, nil

	case dns.TypeAAAA:
		if len(f) != 1 {
			return nil, errSyntax
		}
		ip, err := parseIP(f[0])
		if err != nil {
			return nil, err
		}
		return &dns.AAAA{AAAA: ip}, nil

	case dns.TypeNS:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.NS)
		r.Name = f[0]
		return r, nil

	case dns.TypeCNAME:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.CNAME)
		r.Name = f[0]
		return r, nil

	case dns.TypePTR:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.PTR)
		r.Name = f[0]
		return r, nil

	case dns.TypeDNAME:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.DNAME)
		r.Name = f[0]
		return r, nil

	case dns.TypeMD:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.MD)
		r.Name = f[0]
		return r, nil
	case dns.TypeMF:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.MF)
		r.Name = f[0]
		return r, nil
	case dns.TypeMB:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.MB)
		r.Name = f[0]
		return r, nil
	case dns.TypeMG:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.MG)
		r.Name = f[0]
		return r, nil
	case dns.TypeMR:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.MR)
		r.Name = f[0]
		return r, nil
	case dns.TypeNSAPPTR:
		if len(f) != 1 {
			return nil, errSyntax
		}
		r := new(dns.NSAPPTR)
		r.Name = f[0]
		return r, nil

	case dns.TypeSOA:
		if len(f) != 7 {
			return nil, errSyntax
		}
		serial, err := u32(f[2])
		if err != nil {
			return nil, errSyntax
		}
		refresh, err := u32(f[3])
		if err != nil {
			return nil, errSyntax
		}
		retry, err := u32(f[4])
		if err != nil {
			return nil, errSyntax
		}
		expire, err := u32(f[5])
		if err != nil {
			return nil, errSyntax
		}
		minimum, err := u32(f[6])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.SOA{
			MName: f[0], RName: f[1], Serial: serial,
			Refresh: refresh, Retry: retry, Expire: expire, Minimum: minimum,
		}, nil

	case dns.TypeMX:
		if len(f) != 2 {
			return nil, errSyntax
		}
		pref, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.MX{Preference: pref, Exchange: f[1]}, nil

	case dns.TypeKX:
		if len(f) != 2 {
			return nil, errSyntax
		}
		pref, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.KX{Preference: pref, Exchanger: f[1]}, nil

	case dns.TypeRT:
		if len(f) != 2 {
			return nil, errSyntax
		}
		pref, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.RT{Preference: pref, IntermediateHost: f[1]}, nil

	case dns.TypeAFSDB:
		if len(f) != 2 {
			return nil, errSyntax
		}
		subtype, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.AFSDB{Subtype: subtype, Hostname: f[1]}, nil

	case dns.TypeSRV:
		if len(f) != 4 {
			return nil, errSyntax
		}
		prio, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		weight, err := u16(f[1])
		if err != nil {
			return nil, errSyntax
		}
		port, err := u16(f[2])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.SRV{Priority: prio, Weight: weight, Port: port, Target: f[3]}, nil

	case dns.TypeRP:
		if len(f) != 2 {
			return nil, errSyntax
		}
		return &dns.RP{Mbox: f[0], Txt: f[1]}, nil

	case dns.TypeMINFO:
		if len(f) != 2 {
			return nil, errSyntax
		}
		return &dns.MINFO{RMailBx: f[0], EMailBx: f[1]}, nil

	case dns.TypeHINFO:
		if len(f) != 2 {
			return nil, errSyntax
		}
		return &dns.HINFO{CPU: unquote(f[0]), OS: unquote(f[1])}, nil

	case dns.TypeTXT:
		r := new(dns.TXT)
		r.Strings = unquoteAll(f)
		return r, nil
	case dns.TypeSPF:
		r := new(dns.SPF)
		r.Strings = unquoteAll(f)
		return r, nil

	case dns.TypeNAPTR:
		if len(f) != 6 {
			return nil, errSyntax
		}
		order, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		pref, err := u16(f[1])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.NAPTR{
			Order: order, Preference: pref,
			Flags: unquote(f[2]), Services: unquote(f[3]), Regexp: unquote(f[4]),
			Replacement: f[5],
		}, nil

	case dns.TypeCAA:
		if len(f) != 3 {
			return nil, errSyntax
		}
		flag, err := u8(f[0])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.CAA{Flag: flag, Tag: f[1], Value: unquote(f[2])}, nil

	case dns.TypeURI:
		if len(f) != 3 {
			return nil, errSyntax
		}
		prio, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		weight, err := u16(f[1])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.URI{Priority: prio, Weight: weight, Target: unquote(f[2])}, nil

	case dns.TypeX25:
		if len(f) != 1 {
			return nil, errSyntax
		}
		return &dns.X25{PSDNAddress: unquote(f[0])}, nil

	case dns.TypeISDN:
		if len(f) < 1 || len(f) > 2 {
			return nil, errSyntax
		}
		r := &dns.ISDN{Address: unquote(f[0])}
		if len(f) == 2 {
			r.SA = unquote(f[1])
		}
		return r, nil

	case dns.TypeNSAP:
		if len(f) != 1 {
			return nil, errSyntax
		}
		raw, err := hex.DecodeString(strings.TrimPrefix(f[0], "0x"))
		if err != nil {
			return nil, errSyntax
		}
		return &dns.NSAP{Address: raw}, nil

	case dns.TypeKEY:
		k, err := parseKeyFields(f)
		if err != nil {
			return nil, err
		}
		r := new(dns.KEY)
		r.Flags, r.Protocol, r.Algorithm, r.PublicKey = k.Flags, k.Protocol, k.Algorithm, k.PublicKey
		return r, nil
	case dns.TypeDNSKEY:
		k, err := parseKeyFields(f)
		if err != nil {
			return nil, err
		}
		r := new(dns.DNSKEY)
		r.Flags, r.Protocol, r.Algorithm, r.PublicKey = k.Flags, k.Protocol, k.Algorithm, k.PublicKey
		return r, nil
	case dns.TypeCDNSKEY:
		k, err := parseKeyFields(f)
		if err != nil {
			return nil, err
		}
		r := new(dns.CDNSKEY)
		r.Flags, r.Protocol, r.Algorithm, r.PublicKey = k.Flags, k.Protocol, k.Algorithm, k.PublicKey
		return r, nil

	case dns.TypeDS:
		d, err := parseDSFields(f)
		if err != nil {
			return nil, err
		}
		r := new(dns.DS)
		r.KeyTag, r.Algorithm, r.DigestType, r.Digest = d.KeyTag, d.Algorithm, d.DigestType, d.Digest
		return r, nil
	case dns.TypeCDS:
		d, err := parseDSFields(f)
		if err != nil {
			return nil, err
		}
		r := new(dns.CDS)
		r.KeyTag, r.Algorithm, r.DigestType, r.Digest = d.KeyTag, d.Algorithm, d.DigestType, d.Digest
		return r, nil

	case dns.TypeSSHFP:
		if len(f) != 3 {
			return nil, errSyntax
		}
		algo, err := u8(f[0])
		if err != nil {
			return nil, errSyntax
		}
		fptype, err := u8(f[1])
		if err != nil {
			return nil, errSyntax
		}
		fp, err := hex.DecodeString(f[2])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.SSHFP{Algorithm: algo, FPType: fptype, Fingerprint: fp}, nil

	case dns.TypeTLSA:
		t, err := parseTLSAFields(f)
		if err != nil {
			return nil, err
		}
		r := new(dns.TLSA)
		r.Usage, r.Selector, r.MatchingType, r.Data = t.usage, t.selector, t.matchingType, t.data
		return r, nil
	case dns.TypeSMIMEA:
		t, err := parseTLSAFields(f)
		if err != nil {
			return nil, err
		}
		r := new(dns.SMIMEA)
		r.Usage, r.Selector, r.MatchingType, r.Data = t.usage, t.selector, t.matchingType, t.data
		return r, nil

	case dns.TypeDHCID:
		if len(f) != 1 {
			return nil, errSyntax
		}
		raw, err := base64.StdEncoding.DecodeString(f[0])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.DHCID{Data: raw}, nil

	case dns.TypeOPENPGPKEY:
		if len(f) != 1 {
			return nil, errSyntax
		}
		raw, err := base64.StdEncoding.DecodeString(f[0])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.OPENPGPKEY{PublicKey: raw}, nil

	case dns.TypeIPSECKEY:
		if len(f) != 5 {
			return nil, errSyntax
		}
		precedence, err := u8(f[0])
		if err != nil {
			return nil, errSyntax
		}
		gatewayType, err := u8(f[1])
		if err != nil {
			return nil, errSyntax
		}
		algo, err := u8(f[2])
		if err != nil {
			return nil, errSyntax
		}
		gateway, err := parseGateway(gatewayType, f[3])
		if err != nil {
			return nil, err
		}
		key, err := base64.StdEncoding.DecodeString(f[4])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.IPSECKEY{
			Precedence: precedence, GatewayType: gatewayType, Algorithm: algo,
			Gateway: gateway, PublicKey: key,
		}, nil

	case dns.TypeNSEC3PARAM:
		if len(f) != 4 {
			return nil, errSyntax
		}
		hashAlg, err := u8(f[0])
		if err != nil {
			return nil, errSyntax
		}
		flags, err := u8(f[1])
		if err != nil {
			return nil, errSyntax
		}
		iter, err := u16(f[2])
		if err != nil {
			return nil, errSyntax
		}
		salt, err := parseSalt(f[3])
		if err != nil {
			return nil, err
		}
		return &dns.NSEC3PARAM{HashAlgorithm: hashAlg, Flags: flags, Iterations: iter, Salt: salt}, nil

	case dns.TypeEUI48:
		if len(f) != 1 {
			return nil, errSyntax
		}
		mac, err := net.ParseMAC(f[0])
		if err != nil || len(mac) != 6 {
			return nil, errSyntax
		}
		var r dns.EUI48
		copy(r.Address[:], mac)
		return &r, nil

	case dns.TypeEUI64:
		if len(f) != 1 {
			return nil, errSyntax
		}
		mac, err := net.ParseMAC(f[0])
		if err != nil || len(mac) != 8 {
			return nil, errSyntax
		}
		var r dns.EUI64
		copy(r.Address[:], mac)
		return &r, nil

	case dns.TypeNID:
		if len(f) != 2 {
			return nil, errSyntax
		}
		pref, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		id, err := strconv.ParseUint(f[1], 16, 64)
		if err != nil {
			return nil, errSyntax
		}
		return &dns.NID{Preference: pref, NodeID: id}, nil

	case dns.TypeL32:
		if len(f) != 2 {
			return nil, errSyntax
		}
		pref, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		ip, err := parseIP(f[1])
		if err != nil {
			return nil, err
		}
		return &dns.L32{Preference: pref, Locator32: ip}, nil

	case dns.TypeL64:
		if len(f) != 2 {
			return nil, errSyntax
		}
		pref, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		loc, err := strconv.ParseUint(f[1], 16, 64)
		if err != nil {
			return nil, errSyntax
		}
		return &dns.L64{Preference: pref, Locator64: loc}, nil

	case dns.TypeLP:
		if len(f) != 2 {
			return nil, errSyntax
		}
		pref, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.LP{Preference: pref, FQDN: f[1]}, nil

	case dns.TypeCERT:
		if len(f) != 4 {
			return nil, errSyntax
		}
		certType, err := u16(f[0])
		if err != nil {
			return nil, errSyntax
		}
		keyTag, err := u16(f[1])
		if err != nil {
			return nil, errSyntax
		}
		algo, err := u8(f[2])
		if err != nil {
			return nil, errSyntax
		}
		cert, err := base64.StdEncoding.DecodeString(f[3])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.CERT{CertType: certType, KeyTag: keyTag, Algorithm: algo, Certificate: cert}, nil

	case dns.TypeNSEC:
		if len(f) < 1 {
			return nil, errSyntax
		}
		types, err := parseTypeList(f[1:])
		if err != nil {
			return nil, err
		}
		return &dns.NSEC{NextDomain: f[0], TypeBitmap: types}, nil

	case dns.TypeNSEC3:
		if len(f) < 5 {
			return nil, errSyntax
		}
		hashAlg, err := u8(f[0])
		if err != nil {
			return nil, errSyntax
		}
		flags, err := u8(f[1])
		if err != nil {
			return nil, errSyntax
		}
		iter, err := u16(f[2])
		if err != nil {
			return nil, errSyntax
		}
		salt, err := parseSalt(f[3])
		if err != nil {
			return nil, err
		}
		nextHashed, err := base32HexNoPad.DecodeString(strings.ToUpper(f[4]))
		if err != nil {
			return nil, errSyntax
		}
		types, err := parseTypeList(f[5:])
		if err != nil {
			return nil, err
		}
		return &dns.NSEC3{
			HashAlgorithm: hashAlg, Flags: flags, Iterations: iter,
			Salt: salt, NextHashed: nextHashed, TypeBitmap: types,
		}, nil

	case dns.TypeCSYNC:
		if len(f) < 2 {
			return nil, errSyntax
		}
		serial, err := u32(f[0])
		if err != nil {
			return nil, errSyntax
		}
		flags, err := u16(f[1])
		if err != nil {
			return nil, errSyntax
		}
		types, err := parseTypeList(f[2:])
		if err != nil {
			return nil, err
		}
		return &dns.CSYNC{SOASerial: serial, Flags: flags, TypeBitmap: types}, nil

	case dns.TypeWKS:
		if len(f) != 3 {
			return nil, errSyntax
		}
		ip, err := parseIP(f[0])
		if err != nil {
			return nil, err
		}
		proto, err := u8(f[1])
		if err != nil {
			return nil, errSyntax
		}
		bitmap, err := hex.DecodeString(f[2])
		if err != nil {
			return nil, errSyntax
		}
		return &dns.WKS{Address: ip, Protocol: proto, Bitmap: bitmap}, nil

	case dns.TypeAPL:
		items, err := parseAPLItems(f)
		if err != nil {
			return nil, err
		}
		return &dns.APL{Items: items}, nil
	}

	return nil, errSyntax
}

func unquoteAll(f []string) []string {
	out := make([]string, len(f))
	for i, s := range f {
		out[i] = unquote(s)
	}
	return out
}

func parseSalt(s string) ([]byte, error) {
	if s == "-" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

type keyFields struct {
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey []byte
}

func parseKeyFields(f []string) (keyFields, error) {
	if len(f) != 4 {
		return keyFields{}, errSyntax
	}
	flags, err := u16(f[0])
	if err != nil {
		return keyFields{}, errSyntax
	}
	protocol, err := u8(f[1])
	if err != nil {
		return keyFields{}, errSyntax
	}
	algo, err := u8(f[2])
	if err != nil {
		return keyFields{}, errSyntax
	}
	key, err := base64.StdEncoding.DecodeString(f[3])
	if err != nil {
		return keyFields{}, errSyntax
	}
	return keyFields{Flags: flags, Protocol: protocol, Algorithm: algo, PublicKey: key}, nil
}

type dsFields struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
}

func parseDSFields(f []string) (dsFields, error) {
	if len(f) != 4 {
		return dsFields{}, errSyntax
	}
	keyTag, err := u16(f[0])
	if err != nil {
		return dsFields{}, errSyntax
	}
	algo, err := u8(f[1])
	if err != nil {
		return dsFields{}, errSyntax
	}
	digestType, err := u8(f[2])
	if err != nil {
		return dsFields{}, errSyntax
	}
	digest, err := hex.DecodeString(f[3])
	if err != nil {
		return dsFields{}, errSyntax
	}
	return dsFields{KeyTag: keyTag, Algorithm: algo, DigestType: digestType, Digest: digest}, nil
}

type tlsaFields struct {
	usage, selector, matchingType uint8
	data                          []byte
}

func parseTLSAFields(f []string) (tlsaFields, error) {
	if len(f) != 4 {
		return tlsaFields{}, errSyntax
	}
	usage, err := u8(f[0])
	if err != nil {
		return tlsaFields{}, errSyntax
	}
	selector, err := u8(f[1])
	if err != nil {
		return tlsaFields{}, errSyntax
	}
	matchingType, err := u8(f[2])
	if err != nil {
		return tlsaFields{}, errSyntax
	}
	data, err := hex.DecodeString(f[3])
	if err != nil {
		return tlsaFields{}, errSyntax
	}
	return tlsaFields{usage: usage, selector: selector, matchingType: matchingType, data: data}, nil
}

// parseGateway parses an IPSECKEY gateway token per its GatewayType:
// 1/2 are literal IPv4/IPv6 addresses, 3 is a domain name, 0 is "."
// (no gateway).
func parseGateway(gatewayType uint8, tok string) ([]byte, error) {
	switch gatewayType {
	case 1:
		ip, err := parseIP(tok)
		if err != nil {
			return nil, err
		}
		v4 := ip.To4()
		if v4 == nil {
			return nil, errSyntax
		}
		return v4, nil
	case 2:
		ip, err := parseIP(tok)
		if err != nil {
			return nil, err
		}
		v6 := ip.To16()
		if v6 == nil {
			return nil, errSyntax
		}
		return v6, nil
	case 3:
		return []byte(tok), nil
	default:
		return nil, nil
	}
}

// parseTypeList resolves a space-separated list of type mnemonics
// (the NSEC/NSEC3/CSYNC type-bitmap presentation form) back to Types.
func parseTypeList(f []string) ([]dns.Type, error) {
	types := make([]dns.Type, len(f))
	for i, name := range f {
		t, ok := typeByName(name)
		if !ok {
			return nil, errUnknownName
		}
		types[i] = t
	}
	return types, nil
}

// parseAPLItems parses the RFC 3123 `[!]family:address/prefix` tokens
// of an APL record.
func parseAPLItems(f []string) ([]dns.APLItem, error) {
	items := make([]dns.APLItem, 0, len(f))
	for _, tok := range f {
		negate := false
		if strings.HasPrefix(tok, "!") {
			negate = true
			tok = tok[1:]
		}
		colon := strings.IndexByte(tok, ':')
		slash := strings.LastIndexByte(tok, '/')
		if colon < 0 || slash < 0 || slash < colon {
			return nil, errSyntax
		}
		family, err := u16(tok[:colon])
		if err != nil {
			return nil, errSyntax
		}
		prefix, err := u8(tok[slash+1:])
		if err != nil {
			return nil, errSyntax
		}
		addr := tok[colon+1 : slash]
		ip, err := parseIP(addr)
		if err != nil {
			return nil, err
		}
		afd := []byte(ip.To4())
		if family == 2 {
			afd = []byte(ip.To16())
		}
		items = append(items, dns.APLItem{Family: family, Prefix: prefix, Negate: negate, AFDPart: afd})
	}
	return items, nil
}
