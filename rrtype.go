// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

import (
	"strconv"
	"strings"
)

// A Type is a type of DNS request and response.
type Type uint16

// A Class is a type of network.
type Class uint16

// An OpCode is a DNS operation code.
type OpCode uint16

// An RCode is a DNS response status code.
type RCode uint16

// Domain Name System (DNS) Parameters.
//
// Taken from https://www.iana.org/assignments/dns-parameters/dns-parameters.xhtml
const (
	TypeUNKNOWN    Type = 0
	TypeA          Type = 1
	TypeNS         Type = 2
	TypeMD         Type = 3
	TypeMF         Type = 4
	TypeCNAME      Type = 5
	TypeSOA        Type = 6
	TypeMB         Type = 7
	TypeMG         Type = 8
	TypeMR         Type = 9
	TypeNULL       Type = 10
	TypeWKS        Type = 11
	TypePTR        Type = 12
	TypeHINFO      Type = 13
	TypeMINFO      Type = 14
	TypeMX         Type = 15
	TypeTXT        Type = 16
	TypeRP         Type = 17
	TypeAFSDB      Type = 18
	TypeX25        Type = 19
	TypeISDN       Type = 20
	TypeRT         Type = 21
	TypeNSAP       Type = 22
	TypeNSAPPTR    Type = 23
	TypeSIG        Type = 24
	TypeKEY        Type = 25
	TypePX         Type = 26
	TypeGPOS       Type = 27
	TypeAAAA       Type = 28
	TypeLOC        Type = 29
	TypeNXT        Type = 30
	TypeEID        Type = 31
	TypeNIMLOC     Type = 32
	TypeSRV        Type = 33
	TypeATMA       Type = 34
	TypeNAPTR      Type = 35
	TypeKX         Type = 36
	TypeCERT       Type = 37
	TypeA6         Type = 38
	TypeDNAME      Type = 39
	TypeOPT        Type = 41
	TypeAPL        Type = 42
	TypeDS         Type = 43
	TypeSSHFP      Type = 44
	TypeIPSECKEY   Type = 45
	TypeRRSIG      Type = 46
	TypeNSEC       Type = 47
	TypeDNSKEY     Type = 48
	TypeDHCID      Type = 49
	TypeNSEC3      Type = 50
	TypeNSEC3PARAM Type = 51
	TypeTLSA       Type = 52
	TypeSMIMEA     Type = 53
	TypeHIP        Type = 55
	TypeNINFO      Type = 56
	TypeRKEY       Type = 57
	TypeTALINK     Type = 58
	TypeCDS        Type = 59
	TypeCDNSKEY    Type = 60
	TypeOPENPGPKEY Type = 61
	TypeCSYNC      Type = 62
	TypeSPF        Type = 99
	TypeUINFO      Type = 100
	TypeUID        Type = 101
	TypeGID        Type = 102
	TypeUNSPEC     Type = 103
	TypeNID        Type = 104
	TypeL32        Type = 105
	TypeL64        Type = 106
	TypeLP         Type = 107
	TypeEUI48      Type = 108
	TypeEUI64      Type = 109
	TypeTKEY       Type = 249
	TypeTSIG       Type = 250
	TypeAXFR       Type = 252
	TypeALL        Type = 255
	TypeURI        Type = 256
	TypeCAA        Type = 257
	TypeAVC        Type = 258
	TypeDOA        Type = 259
	TypeANY        Type = 255
	TypeTA         Type = 32768
	TypeDLV        Type = 32769

	// DNS CLASSes
	ClassIN  Class = 1
	ClassCH  Class = 3
	ClassHS  Class = 4
	ClassANY Class = 255

	// DNS RCODEs (header nibble; BADVERS..BADCOOKIE ride the EDNS
	// extended-rcode high byte and are spliced per spec §4.5)
	NoError  RCode = 0
	FormErr  RCode = 1
	ServFail RCode = 2
	NXDomain RCode = 3
	NotImp   RCode = 4
	Refused  RCode = 5
	YXDomain RCode = 6
	YXRRSet  RCode = 7
	NXRRSet  RCode = 8
	NotAuth  RCode = 9
	NotZone  RCode = 10
	BadVers  RCode = 16
	BadSig   RCode = 16
	BadKey   RCode = 17
	BadTime  RCode = 18
	BadMode  RCode = 19
	BadName  RCode = 20
	BadAlg   RCode = 21
	BadTrunc RCode = 22
	BadCookie RCode = 23

	// DNS OpCodes
	OpQuery  OpCode = 0
	OpIQuery OpCode = 1
	OpStatus OpCode = 2
	OpNotify OpCode = 4
	OpUpdate OpCode = 5

	maxPacketLen = MaxUDPSize
)

// On-wire constants (spec §6).
const (
	DNSPort     = 53
	MaxUDPSize  = 512
	MaxEDNSSize = 4096
	MaxNameSize = 255
	MaxLabelSize = 63
)

// Header flag bits (spec §6).
const (
	headerBitQR = 1 << 15 // query/response (response=1)
	headerBitAA = 1 << 10 // authoritative
	headerBitTC = 1 << 9  // truncated
	headerBitRD = 1 << 8  // recursion desired
	headerBitRA = 1 << 7  // recursion available
	headerBitZ  = 1 << 6  // reserved
	headerBitAD = 1 << 5  // authentic data
	headerBitCD = 1 << 4  // checking disabled
)

// NewRecordByType returns a constructor for a zero-value Record of the
// given Type, or nil if the type has no dedicated schema (it decodes to
// UNKNOWN instead).
var NewRecordByType = map[Type]func() Record{
	TypeA:          func() Record { return new(A) },
	TypeNS:         func() Record { return new(NS) },
	TypeMD:         func() Record { return new(MD) },
	TypeMF:         func() Record { return new(MF) },
	TypeCNAME:      func() Record { return new(CNAME) },
	TypeSOA:        func() Record { return new(SOA) },
	TypeMB:         func() Record { return new(MB) },
	TypeMG:         func() Record { return new(MG) },
	TypeMR:         func() Record { return new(MR) },
	TypeWKS:        func() Record { return new(WKS) },
	TypePTR:        func() Record { return new(PTR) },
	TypeHINFO:      func() Record { return new(HINFO) },
	TypeMINFO:      func() Record { return new(MINFO) },
	TypeMX:         func() Record { return new(MX) },
	TypeTXT:        func() Record { return new(TXT) },
	TypeRP:         func() Record { return new(RP) },
	TypeAFSDB:      func() Record { return new(AFSDB) },
	TypeX25:        func() Record { return new(X25) },
	TypeISDN:       func() Record { return new(ISDN) },
	TypeRT:         func() Record { return new(RT) },
	TypeNSAP:       func() Record { return new(NSAP) },
	TypeNSAPPTR:    func() Record { return new(NSAPPTR) },
	TypeSIG:        func() Record { return &SIG{sigRecord: sigRecord{covered: TypeUNKNOWN}} },
	TypeKEY:        func() Record { return new(KEY) },
	TypeAAAA:       func() Record { return new(AAAA) },
	TypeLOC:        func() Record { return new(LOC) },
	TypeSRV:        func() Record { return new(SRV) },
	TypeNAPTR:      func() Record { return new(NAPTR) },
	TypeKX:         func() Record { return new(KX) },
	TypeCERT:       func() Record { return new(CERT) },
	TypeDNAME:      func() Record { return new(DNAME) },
	TypeOPT:        func() Record { return new(OPT) },
	TypeAPL:        func() Record { return new(APL) },
	TypeDS:         func() Record { return &DS{dsRecord: dsRecord{}} },
	TypeSSHFP:      func() Record { return new(SSHFP) },
	TypeIPSECKEY:   func() Record { return new(IPSECKEY) },
	TypeRRSIG:      func() Record { return &RRSIG{sigRecord: sigRecord{}} },
	TypeNSEC:       func() Record { return new(NSEC) },
	TypeDNSKEY:     func() Record { return new(DNSKEY) },
	TypeDHCID:      func() Record { return new(DHCID) },
	TypeNSEC3:      func() Record { return new(NSEC3) },
	TypeNSEC3PARAM: func() Record { return new(NSEC3PARAM) },
	TypeTLSA:       func() Record { return new(TLSA) },
	TypeSMIMEA:     func() Record { return new(SMIMEA) },
	TypeCDS:        func() Record { return &CDS{dsRecord: dsRecord{}} },
	TypeCDNSKEY:    func() Record { return new(CDNSKEY) },
	TypeOPENPGPKEY: func() Record { return new(OPENPGPKEY) },
	TypeCSYNC:      func() Record { return new(CSYNC) },
	TypeSPF:        func() Record { return new(SPF) },
	TypeNID:        func() Record { return new(NID) },
	TypeL32:        func() Record { return new(L32) },
	TypeL64:        func() Record { return new(L64) },
	TypeLP:         func() Record { return new(LP) },
	TypeEUI48:      func() Record { return new(EUI48) },
	TypeEUI64:      func() Record { return new(EUI64) },
	TypeURI:        func() Record { return new(URI) },
	TypeCAA:        func() Record { return new(CAA) },
}

// typeNames holds the presentation-form mnemonic for every Type this
// module knows about, including ones that fall back to UNKNOWN for
// their rdata (spec §6's full type list).
var typeNames = map[Type]string{
	TypeA: "A", TypeNS: "NS", TypeMD: "MD", TypeMF: "MF", TypeCNAME: "CNAME",
	TypeSOA: "SOA", TypeMB: "MB", TypeMG: "MG", TypeMR: "MR", TypeNULL: "NULL",
	TypeWKS: "WKS", TypePTR: "PTR", TypeHINFO: "HINFO", TypeMINFO: "MINFO",
	TypeMX: "MX", TypeTXT: "TXT", TypeRP: "RP", TypeAFSDB: "AFSDB",
	TypeX25: "X25", TypeISDN: "ISDN", TypeRT: "RT", TypeNSAP: "NSAP",
	TypeNSAPPTR: "NSAP-PTR", TypeSIG: "SIG", TypeKEY: "KEY", TypePX: "PX",
	TypeGPOS: "GPOS", TypeAAAA: "AAAA", TypeLOC: "LOC", TypeNXT: "NXT",
	TypeEID: "EID", TypeNIMLOC: "NIMLOC", TypeSRV: "SRV", TypeATMA: "ATMA",
	TypeNAPTR: "NAPTR", TypeKX: "KX", TypeCERT: "CERT", TypeA6: "A6",
	TypeDNAME: "DNAME", TypeOPT: "OPT", TypeAPL: "APL", TypeDS: "DS",
	TypeSSHFP: "SSHFP", TypeIPSECKEY: "IPSECKEY", TypeRRSIG: "RRSIG",
	TypeNSEC: "NSEC", TypeDNSKEY: "DNSKEY", TypeDHCID: "DHCID",
	TypeNSEC3: "NSEC3", TypeNSEC3PARAM: "NSEC3PARAM", TypeTLSA: "TLSA",
	TypeSMIMEA: "SMIMEA", TypeHIP: "HIP", TypeNINFO: "NINFO",
	TypeRKEY: "RKEY", TypeTALINK: "TALINK", TypeCDS: "CDS",
	TypeCDNSKEY: "CDNSKEY", TypeOPENPGPKEY: "OPENPGPKEY", TypeCSYNC: "CSYNC",
	TypeSPF: "SPF", TypeUINFO: "UINFO", TypeUID: "UID", TypeGID: "GID",
	TypeUNSPEC: "UNSPEC", TypeNID: "NID", TypeL32: "L32", TypeL64: "L64",
	TypeLP: "LP", TypeEUI48: "EUI48", TypeEUI64: "EUI64", TypeTKEY: "TKEY",
	TypeTSIG: "TSIG", TypeAXFR: "AXFR", TypeALL: "ANY", TypeURI: "URI",
	TypeCAA: "CAA", TypeAVC: "AVC", TypeDOA: "DOA", TypeTA: "TA",
	TypeDLV: "DLV",
}

// String returns the presentation mnemonic for t, or "TYPEn" for an
// unrecognized value per RFC 3597 §5.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "TYPE" + uitoa(uint(t))
}

var classNames = map[Class]string{
	ClassIN: "IN", ClassCH: "CH", ClassHS: "HS", ClassANY: "ANY",
}

// String returns the presentation mnemonic for c, or "CLASSn".
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "CLASS" + uitoa(uint(c))
}

var typeByName = reverseTypeNames()

func reverseTypeNames() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}

// ParseType resolves a presentation mnemonic (e.g. "AAAA") or the
// RFC 3597 "TYPEn" form back to a Type, for presentation decoding (C6).
func ParseType(name string) (Type, bool) {
	if t, ok := typeByName[name]; ok {
		return t, true
	}
	if strings.HasPrefix(name, "TYPE") {
		n, err := strconv.ParseUint(name[4:], 10, 16)
		if err == nil {
			return Type(n), true
		}
	}
	return 0, false
}

var classByNameTable = reverseClassNames()

func reverseClassNames() map[string]Class {
	m := make(map[string]Class, len(classNames))
	for c, name := range classNames {
		m[name] = c
	}
	return m
}

// ParseClass resolves a presentation mnemonic (e.g. "IN") or the
// RFC 3597 "CLASSn" form back to a Class, for presentation decoding (C6).
func ParseClass(name string) (Class, bool) {
	if c, ok := classByNameTable[name]; ok {
		return c, true
	}
	if strings.HasPrefix(name, "CLASS") {
		n, err := strconv.ParseUint(name[5:], 10, 16)
		if err == nil {
			return Class(n), true
		}
	}
	return 0, false
}

var opcodeNames = map[OpCode]string{
	OpQuery: "QUERY", OpIQuery: "IQUERY", OpStatus: "STATUS",
	OpNotify: "NOTIFY", OpUpdate: "UPDATE",
}

func (o OpCode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return uitoa(uint(o))
}

var rcodeNames = map[RCode]string{
	NoError: "NOERROR", FormErr: "FORMERR", ServFail: "SERVFAIL",
	NXDomain: "NXDOMAIN", NotImp: "NOTIMP", Refused: "REFUSED",
	YXDomain: "YXDOMAIN", YXRRSet: "YXRRSET", NXRRSet: "NXRRSET",
	NotAuth: "NOTAUTH", NotZone: "NOTZONE", BadVers: "BADVERS",
	BadKey: "BADKEY", BadTime: "BADTIME", BadMode: "BADMODE",
	BadName: "BADNAME", BadAlg: "BADALG", BadTrunc: "BADTRUNC",
	BadCookie: "BADCOOKIE",
}

func (r RCode) String() string {
	if name, ok := rcodeNames[r]; ok {
		return name
	}
	return uitoa(uint(r))
}

func uitoa(v uint) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
