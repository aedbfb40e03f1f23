// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package presentation implements the bidirectional conversion
// between wire-decoded DNS messages and their text forms (C6): the
// dig-style message transcript and the zone-file RR line, sharing one
// per-type rdata grammar between both.
package presentation

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	dns "github.com/quillresolve/dns"
)

var (
	errSyntax      = errors.New("presentation: malformed resource record line")
	errUnknownName = errors.New("presentation: unknown type or class mnemonic")
)

// FormatRR renders one resource record in zone-file/dig line form:
// `<name> <ttl> <class> <type> <rdata>`.
func FormatRR(r dns.Resource) (string, error) {
	rdata, err := formatRData(r.Record)
	if err != nil {
		return "", err
	}
	ttl := int64(r.TTL / time.Second)
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%s", r.Name, ttl, r.Class, r.Record.Type(), rdata), nil
}

// ParseRR parses one resource record line in the form FormatRR emits
// (also accepting the RFC 3597 generic `\# <len> <hex>` rdata form for
// any type). LOC and OPT lines in FormatRR's form are not accepted.
func ParseRR(line string) (dns.Resource, error) {
	fields, err := tokenize(line)
	if err != nil {
		return dns.Resource{}, err
	}
	if len(fields) < 4 {
		return dns.Resource{}, errSyntax
	}

	name := fields[0]
	ttlSecs, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return dns.Resource{}, errSyntax
	}
	class, ok := classByName(fields[2])
	if !ok {
		return dns.Resource{}, errUnknownName
	}
	rtype, ok := typeByName(fields[3])
	if !ok {
		return dns.Resource{}, errUnknownName
	}
	rdataFields := fields[4:]

	var record dns.Record
	if len(rdataFields) > 0 && rdataFields[0] == `\#` {
		record, err = parseGenericRData(rtype, rdataFields)
	} else {
		record, err = parseRData(rtype, rdataFields)
	}
	if err != nil {
		return dns.Resource{}, err
	}

	return dns.Resource{
		Name:   name,
		Class:  class,
		TTL:    time.Duration(ttlSecs) * time.Second,
		Record: record,
	}, nil
}

// tokenize splits a line on whitespace, treating a double-quoted span
// (TXT-style character-strings) as a single field.
func tokenize(line string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuote := false
	hasField := false

	flush := func() {
		if hasField {
			fields = append(fields, cur.String())
			cur.Reset()
			hasField = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			hasField = true
		case c == ' ' || c == '\t':
			if inQuote {
				cur.WriteByte(c)
			} else {
				flush()
			}
		case c == ';' && !inQuote:
			i = len(line)
		default:
			cur.WriteByte(c)
			hasField = true
		}
	}
	if inQuote {
		return nil, errSyntax
	}
	flush()
	return fields, nil
}

func formatRData(rec dns.Record) (string, error) {
	switch r := rec.(type) {
	case *dns.A:
		return r.A.String(), nil
	case *dns.AAAA:
		return r.AAAA.String(), nil
	case *dns.NS:
		return r.Name, nil
	case *dns.CNAME:
		return r.Name, nil
	case *dns.PTR:
		return r.Name, nil
	case *dns.DNAME:
		return r.Name, nil
	case *dns.MD:
		return r.Name, nil
	case *dns.MF:
		return r.Name, nil
	case *dns.MB:
		return r.Name, nil
	case *dns.MG:
		return r.Name, nil
	case *dns.MR:
		return r.Name, nil
	case *dns.NSAPPTR:
		return r.Name, nil
	case *dns.SOA:
		return fmt.Sprintf("%s %s %d %d %d %d %d", r.MName, r.RName, r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum), nil
	case *dns.MX:
		return fmt.Sprintf("%d %s", r.Preference, r.Exchange), nil
	case *dns.KX:
		return fmt.Sprintf("%d %s", r.Preference, r.Exchanger), nil
	case *dns.RT:
		return fmt.Sprintf("%d %s", r.Preference, r.IntermediateHost), nil
	case *dns.AFSDB:
		return fmt.Sprintf("%d %s", r.Subtype, r.Hostname), nil
	case *dns.SRV:
		return fmt.Sprintf("%d %d %d %s", r.Priority, r.Weight, r.Port, r.Target), nil
	case *dns.RP:
		return fmt.Sprintf("%s %s", r.Mbox, r.Txt), nil
	case *dns.MINFO:
		return fmt.Sprintf("%s %s", r.RMailBx, r.EMailBx), nil
	case *dns.HINFO:
		return fmt.Sprintf("%s %s", quote(r.CPU), quote(r.OS)), nil
	case *dns.TXT:
		return joinCharStrings(r.Strings), nil
	case *dns.SPF:
		return joinCharStrings(r.Strings), nil
	case *dns.NAPTR:
		return fmt.Sprintf("%d %d %s %s %s %s", r.Order, r.Preference, quote(r.Flags), quote(r.Services), quote(r.Regexp), r.Replacement), nil
	case *dns.CAA:
		return fmt.Sprintf("%d %s %s", r.Flag, r.Tag, quote(r.Value)), nil
	case *dns.URI:
		return fmt.Sprintf("%d %d %s", r.Priority, r.Weight, quote(r.Target)), nil
	case *dns.X25:
		return quote(r.PSDNAddress), nil
	case *dns.ISDN:
		if r.SA == "" {
			return quote(r.Address), nil
		}
		return fmt.Sprintf("%s %s", quote(r.Address), quote(r.SA)), nil
	case *dns.NSAP:
		return "0x" + hex.EncodeToString(r.Address), nil
	case *dns.WKS:
		return fmt.Sprintf("%s %d %s", r.Address, r.Protocol, hex.EncodeToString(r.Bitmap)), nil
	case *dns.LOC:
		return fmt.Sprintf("%d %d %d %d %d %d %d", r.Version, r.Size, r.HorizPre, r.VertPre, r.Latitude, r.Longitude, r.Altitude), nil
	case *dns.CERT:
		return fmt.Sprintf("%d %d %d %s", r.CertType, r.KeyTag, r.Algorithm, base64.StdEncoding.EncodeToString(r.Certificate)), nil
	case *dns.OPENPGPKEY:
		return base64.StdEncoding.EncodeToString(r.PublicKey), nil
	case *dns.KEY:
		return keyRData(r.Flags, r.Protocol, r.Algorithm, r.PublicKey), nil
	case *dns.DNSKEY:
		return keyRData(r.Flags, r.Protocol, r.Algorithm, r.PublicKey), nil
	case *dns.CDNSKEY:
		return keyRData(r.Flags, r.Protocol, r.Algorithm, r.PublicKey), nil
	case *dns.DS:
		return dsRData(r.KeyTag, r.Algorithm, r.DigestType, r.Digest), nil
	case *dns.CDS:
		return dsRData(r.KeyTag, r.Algorithm, r.DigestType, r.Digest), nil
	case *dns.SSHFP:
		return fmt.Sprintf("%d %d %s", r.Algorithm, r.FPType, hex.EncodeToString(r.Fingerprint)), nil
	case *dns.TLSA:
		return fmt.Sprintf("%d %d %d %s", r.Usage, r.Selector, r.MatchingType, hex.EncodeToString(r.Data)), nil
	case *dns.SMIMEA:
		return fmt.Sprintf("%d %d %d %s", r.Usage, r.Selector, r.MatchingType, hex.EncodeToString(r.Data)), nil
	case *dns.IPSECKEY:
		return fmt.Sprintf("%d %d %d %s %s", r.Precedence, r.GatewayType, r.Algorithm, gatewayText(r.GatewayType, r.Gateway), base64.StdEncoding.EncodeToString(r.PublicKey)), nil
	case *dns.DHCID:
		return base64.StdEncoding.EncodeToString(r.Data), nil
	case *dns.NSEC:
		return fmt.Sprintf("%s %s", r.NextDomain, typesText(r.TypeBitmap)), nil
	case *dns.NSEC3:
		return fmt.Sprintf("%d %d %d %s %s %s", r.HashAlgorithm, r.Flags, r.Iterations, saltText(r.Salt), base32hexText(r.NextHashed), typesText(r.TypeBitmap)), nil
	case *dns.NSEC3PARAM:
		return fmt.Sprintf("%d %d %d %s", r.HashAlgorithm, r.Flags, r.Iterations, saltText(r.Salt)), nil
	case *dns.CSYNC:
		return fmt.Sprintf("%d %d %s", r.SOASerial, r.Flags, typesText(r.TypeBitmap)), nil
	case *dns.APL:
		return aplText(r.Items), nil
	case *dns.EUI48:
		return net.HardwareAddr(r.Address[:]).String(), nil
	case *dns.EUI64:
		return net.HardwareAddr(r.Address[:]).String(), nil
	case *dns.NID:
		return fmt.Sprintf("%d %016x", r.Preference, r.NodeID), nil
	case *dns.L32:
		return fmt.Sprintf("%d %s", r.Preference, r.Locator32), nil
	case *dns.L64:
		return fmt.Sprintf("%d %016x", r.Preference, r.Locator64), nil
	case *dns.LP:
		return fmt.Sprintf("%d %s", r.Preference, r.FQDN), nil
	case *dns.OPT:
		return "", nil
	default:
		return genericRData(rec)
	}
}

func quote(s string) string { return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"` }

func joinCharStrings(strs []string) string {
	parts := make([]string, len(strs))
	for i, s := range strs {
		parts[i] = quote(s)
	}
	return strings.Join(parts, " ")
}

func keyRData(flags uint16, protocol, algorithm uint8, key []byte) string {
	return fmt.Sprintf("%d %d %d %s", flags, protocol, algorithm, base64.StdEncoding.EncodeToString(key))
}

func dsRData(keyTag uint16, algorithm, digestType uint8, digest []byte) string {
	return fmt.Sprintf("%d %d %d %s", keyTag, algorithm, digestType, strings.ToUpper(hex.EncodeToString(digest)))
}

func typesText(types []dns.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, " ")
}

func saltText(salt []byte) string {
	if len(salt) == 0 {
		return "-"
	}
	return strings.ToUpper(hex.EncodeToString(salt))
}

func base32hexText(b []byte) string {
	enc := base32HexNoPad.EncodeToString(b)
	return enc
}

func gatewayText(gatewayType uint8, gw []byte) string {
	switch gatewayType {
	case 1, 2:
		return net.IP(gw).String()
	case 3:
		return string(gw)
	default:
		return "."
	}
}

func aplText(items []dns.APLItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		neg := ""
		if it.Negate {
			neg = "!"
		}
		parts[i] = fmt.Sprintf("%s%d:%s/%d", neg, it.Family, net.IP(it.AFDPart), it.Prefix)
	}
	return strings.Join(parts, " ")
}

// genericRData renders rec using the RFC 3597 unknown-RR-type syntax,
// re-packing it standalone (no prior compression-table entries) so the
// hex dump is a faithful, reparseable copy of its rdata.
func genericRData(rec dns.Record) (string, error) {
	com := dns.NewCompressor(0)
	raw, err := rec.Pack(nil, com)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`\# %d %s`, len(raw), hex.EncodeToString(raw)), nil
}
