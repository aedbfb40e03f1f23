// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package presentation

import (
	"fmt"
	"strings"

	dns "github.com/quillresolve/dns"
)

// FormatMessage renders m as a dig-style transcript: a header line,
// a flags line with set-flag mnemonics and section counts, an
// optional EDNS pseudosection, then one labeled section per
// non-empty RR list (spec §4.6).
func FormatMessage(m *dns.Message) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, ";; ->>HEADER<<- opcode: %s, status: %s, id: %d\n", m.OpCode, m.RCode, m.ID)
	fmt.Fprintf(&b, ";; flags: %s; QUERY: %d, ANSWER: %d, AUTHORITY: %d, ADDITIONAL: %d\n",
		strings.Join(flagMnemonics(m), " "),
		len(m.Questions), len(m.Answers), len(m.Authorities), len(m.Additionals))

	if m.EDNS != nil && m.EDNS.Enabled {
		fmt.Fprintf(&b, "\n;; OPT PSEUDOSECTION:\n; EDNS: version: %d, flags:%s; udp: %d\n",
			m.EDNS.Version, ednsFlags(m.EDNS), m.EDNS.UDPSize)
	}

	if len(m.Questions) > 0 {
		b.WriteString("\n;; QUESTION SECTION:\n")
		for _, q := range m.Questions {
			fmt.Fprintf(&b, ";%s\t\t%s\t%s\n", q.Name, q.Class, q.Type)
		}
	}

	if err := writeSection(&b, "ANSWER", m.Answers); err != nil {
		return "", err
	}
	if err := writeSection(&b, "AUTHORITY", m.Authorities); err != nil {
		return "", err
	}
	if err := writeSection(&b, "ADDITIONAL", m.Additionals); err != nil {
		return "", err
	}

	if m.Size > 0 {
		fmt.Fprintf(&b, "\n;; MSG SIZE  rcvd: %d\n", m.Size)
	}
	if len(m.Trailing) > 0 {
		fmt.Fprintf(&b, ";; WARNING: %d trailing byte(s) after message body\n", len(m.Trailing))
	}

	return b.String(), nil
}

func writeSection(b *strings.Builder, label string, rrs []dns.Resource) error {
	if len(rrs) == 0 {
		return nil
	}
	fmt.Fprintf(b, "\n;; %s SECTION:\n", label)
	for _, rr := range rrs {
		line, err := FormatRR(rr)
		if err != nil {
			return err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return nil
}

func flagMnemonics(m *dns.Message) []string {
	var flags []string
	if m.Response {
		flags = append(flags, "qr")
	}
	if m.Authoritative {
		flags = append(flags, "aa")
	}
	if m.Truncated {
		flags = append(flags, "tc")
	}
	if m.RecursionDesired {
		flags = append(flags, "rd")
	}
	if m.RecursionAvailable {
		flags = append(flags, "ra")
	}
	if m.AuthenticData {
		flags = append(flags, "ad")
	}
	if m.CheckingDisabled {
		flags = append(flags, "cd")
	}
	return flags
}

func ednsFlags(e *dns.EDNS) string {
	if e.DO {
		return " do"
	}
	return ""
}

// ParseMessage parses a transcript in the form FormatMessage emits.
// It recognizes the header, flags, question, and RR-section lines;
// comment and blank lines are skipped.
func ParseMessage(transcript string) (*dns.Message, error) {
	m := &dns.Message{}

	var section string
	for _, line := range strings.Split(transcript, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ";; ->>HEADER<<-"):
			if err := parseHeaderLine(m, trimmed); err != nil {
				return nil, err
			}
		case strings.HasPrefix(trimmed, ";; flags:"):
			if err := parseFlagsLine(m, trimmed); err != nil {
				return nil, err
			}
		case strings.HasPrefix(trimmed, ";; QUESTION SECTION"):
			section = "QUESTION"
		case strings.HasPrefix(trimmed, ";; ANSWER SECTION"):
			section = "ANSWER"
		case strings.HasPrefix(trimmed, ";; AUTHORITY SECTION"):
			section = "AUTHORITY"
		case strings.HasPrefix(trimmed, ";; ADDITIONAL SECTION"):
			section = "ADDITIONAL"
		case section == "QUESTION" && strings.HasPrefix(trimmed, ";") && !strings.HasPrefix(trimmed, ";;"):
			// Question lines are written with a leading ';', like dig.
			if err := parseSectionLine(m, section, trimmed); err != nil {
				return nil, err
			}
		case strings.HasPrefix(trimmed, ";"):
			continue
		default:
			if err := parseSectionLine(m, section, trimmed); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func parseHeaderLine(m *dns.Message, line string) error {
	fields := strings.Fields(line)
	for i, f := range fields {
		switch strings.TrimSuffix(f, ",") {
		case "opcode:":
			if i+1 >= len(fields) {
				return errSyntax
			}
			op, ok := opcodeByName(strings.TrimSuffix(fields[i+1], ","))
			if !ok {
				return errUnknownName
			}
			m.OpCode = op
		case "status:":
			if i+1 >= len(fields) {
				return errSyntax
			}
			rc, ok := rcodeByName(strings.TrimSuffix(fields[i+1], ","))
			if !ok {
				return errUnknownName
			}
			m.RCode = rc
		case "id:":
			if i+1 >= len(fields) {
				return errSyntax
			}
			id, err := parseIntField(fields[i+1])
			if err != nil {
				return err
			}
			m.ID = id
		}
	}
	return nil
}

func parseFlagsLine(m *dns.Message, line string) error {
	idx := strings.Index(line, "flags:")
	if idx < 0 {
		return errSyntax
	}
	rest := line[idx+len("flags:"):]
	if semi := strings.Index(rest, ";"); semi >= 0 {
		rest = rest[:semi]
	}
	for _, tok := range strings.Fields(rest) {
		switch tok {
		case "qr":
			m.Response = true
		case "aa":
			m.Authoritative = true
		case "tc":
			m.Truncated = true
		case "rd":
			m.RecursionDesired = true
		case "ra":
			m.RecursionAvailable = true
		case "ad":
			m.AuthenticData = true
		case "cd":
			m.CheckingDisabled = true
		}
	}
	return nil
}

func parseSectionLine(m *dns.Message, section, line string) error {
	switch section {
	case "QUESTION":
		line = strings.TrimPrefix(line, ";")
		fields, err := tokenize(line)
		if err != nil {
			return err
		}
		if len(fields) != 3 {
			return errSyntax
		}
		class, ok := classByName(fields[1])
		if !ok {
			return errUnknownName
		}
		qtype, ok := typeByName(fields[2])
		if !ok {
			return errUnknownName
		}
		m.Questions = append(m.Questions, dns.Question{Name: fields[0], Type: qtype, Class: class})
		return nil
	case "ANSWER", "AUTHORITY", "ADDITIONAL":
		rr, err := ParseRR(line)
		if err != nil {
			return err
		}
		switch section {
		case "ANSWER":
			m.Answers = append(m.Answers, rr)
		case "AUTHORITY":
			m.Authorities = append(m.Authorities, rr)
		case "ADDITIONAL":
			m.Additionals = append(m.Additionals, rr)
		}
		return nil
	default:
		return nil
	}
}

func parseIntField(s string) (int, error) {
	n, err := u32(s)
	if err != nil {
		return 0, errSyntax
	}
	return int(n), nil
}

func opcodeByName(s string) (dns.OpCode, bool) {
	switch s {
	case "QUERY":
		return dns.OpQuery, true
	case "IQUERY":
		return dns.OpIQuery, true
	case "STATUS":
		return dns.OpStatus, true
	case "NOTIFY":
		return dns.OpNotify, true
	case "UPDATE":
		return dns.OpUpdate, true
	default:
		return 0, false
	}
}

func rcodeByName(s string) (dns.RCode, bool) {
	switch s {
	case "NOERROR":
		return dns.NoError, true
	case "FORMERR":
		return dns.FormErr, true
	case "SERVFAIL":
		return dns.ServFail, true
	case "NXDOMAIN":
		return dns.NXDomain, true
	case "NOTIMP":
		return dns.NotImp, true
	case "REFUSED":
		return dns.Refused, true
	case "YXDOMAIN":
		return dns.YXDomain, true
	case "YXRRSET":
		return dns.YXRRSet, true
	case "NXRRSET":
		return dns.NXRRSet, true
	case "NOTAUTH":
		return dns.NotAuth, true
	case "NOTZONE":
		return dns.NotZone, true
	default:
		return 0, false
	}
}
