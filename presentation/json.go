// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package presentation

import (
	"encoding/json"
	"fmt"
	"time"

	dns "github.com/quillresolve/dns"
	"github.com/quillresolve/dns/edns"
)

// rrJSON is the wire shape of one resource record's JSON form: the
// envelope fields plus an opaque rdata object whose shape is driven by
// the registered Record type (spec §4.3 "three encoders/decoders per
// type (binary, presentation, JSON)").
type rrJSON struct {
	Name  string          `json:"name"`
	TTL   int64           `json:"ttl"`
	Class string          `json:"class"`
	Type  string          `json:"type"`
	RData json.RawMessage `json:"rdata"`
}

// FormatRRJSON renders r as a single JSON object. Unlike the per-type
// String/FromJSon pair the registry's binary and presentation codecs
// replaced, this single function drives every type through the same
// registry dispatch the binary codec uses, rather than duplicating the
// marshal call on each record struct.
func FormatRRJSON(r dns.Resource) (string, error) {
	rdata, err := json.Marshal(r.Record)
	if err != nil {
		return "", fmt.Errorf("presentation: marshal %s rdata: %w", r.Record.Type(), err)
	}
	env := rrJSON{
		Name:  r.Name,
		TTL:   int64(r.TTL / time.Second),
		Class: r.Class.String(),
		Type:  r.Record.Type().String(),
		RData: rdata,
	}
	out, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("presentation: marshal record envelope: %w", err)
	}
	return string(out), nil
}

// ParseRRJSON parses the JSON form FormatRRJSON emits. A type with no
// registered constructor decodes into dns.UNKNOWN's exported fields
// (spec §3's generic fallback, carried through to the JSON encoding).
func ParseRRJSON(data []byte) (dns.Resource, error) {
	var env rrJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return dns.Resource{}, fmt.Errorf("presentation: unmarshal record envelope: %w", err)
	}

	class, ok := dns.ParseClass(env.Class)
	if !ok {
		return dns.Resource{}, fmt.Errorf("presentation: unknown class %q", env.Class)
	}
	rtype, ok := dns.ParseType(env.Type)
	if !ok {
		return dns.Resource{}, fmt.Errorf("presentation: unknown type %q", env.Type)
	}

	newfn, ok := dns.NewRecordByType[rtype]
	var record dns.Record
	if ok {
		record = newfn()
		if err := json.Unmarshal(env.RData, record); err != nil {
			return dns.Resource{}, fmt.Errorf("presentation: unmarshal %s rdata: %w", rtype, err)
		}
	} else {
		u := &dns.UNKNOWN{RRType: rtype}
		if err := json.Unmarshal(env.RData, u); err != nil {
			return dns.Resource{}, fmt.Errorf("presentation: unmarshal unknown-type rdata: %w", err)
		}
		record = u
	}

	return dns.Resource{
		Name:   env.Name,
		Class:  class,
		TTL:    time.Duration(env.TTL) * time.Second,
		Record: record,
	}, nil
}

// messageJSON is the wire shape of a full message's JSON form.
type messageJSON struct {
	ID                 int      `json:"id"`
	Response           bool     `json:"response"`
	OpCode             string   `json:"opcode"`
	Authoritative      bool     `json:"authoritative"`
	Truncated          bool     `json:"truncated"`
	RecursionDesired   bool     `json:"recursionDesired"`
	RecursionAvailable bool     `json:"recursionAvailable"`
	AuthenticData      bool     `json:"authenticData"`
	CheckingDisabled   bool     `json:"checkingDisabled"`
	RCode              string   `json:"rcode"`
	Questions          []questionJSON `json:"questions"`
	Answers            []json.RawMessage `json:"answers"`
	Authorities        []json.RawMessage `json:"authorities"`
	Additionals        []json.RawMessage `json:"additionals"`
	EDNS               *ednsJSON `json:"edns,omitempty"`
}

type questionJSON struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Class string `json:"class"`
}

// ednsJSON mirrors dns.EDNS. The option array is named "options" (spec
// §9 open question: earlier drafts of this reconstruction mis-read the
// field name as "json.options" and rejected any well-formed document).
type ednsJSON struct {
	Enabled  bool          `json:"enabled"`
	UDPSize  uint16        `json:"udpSize"`
	ExtRCode uint8         `json:"extRCode"`
	Version  uint8         `json:"version"`
	DO       bool          `json:"do"`
	Options  []edns.Option `json:"options"`
}

// FormatMessageJSON renders m as a single JSON object, every RR
// routed through the same per-type registry dispatch FormatRRJSON uses.
func FormatMessageJSON(m *dns.Message) (string, error) {
	env := messageJSON{
		ID: m.ID, Response: m.Response, OpCode: m.OpCode.String(),
		Authoritative: m.Authoritative, Truncated: m.Truncated,
		RecursionDesired: m.RecursionDesired, RecursionAvailable: m.RecursionAvailable,
		AuthenticData: m.AuthenticData, CheckingDisabled: m.CheckingDisabled,
		RCode: m.RCode.String(),
	}
	for _, q := range m.Questions {
		env.Questions = append(env.Questions, questionJSON{Name: q.Name, Type: q.Type.String(), Class: q.Class.String()})
	}
	var err error
	if env.Answers, err = rawRRs(m.Answers); err != nil {
		return "", err
	}
	if env.Authorities, err = rawRRs(m.Authorities); err != nil {
		return "", err
	}
	if env.Additionals, err = rawRRs(m.Additionals); err != nil {
		return "", err
	}
	if m.EDNS != nil {
		env.EDNS = &ednsJSON{
			Enabled: m.EDNS.Enabled, UDPSize: m.EDNS.UDPSize, ExtRCode: m.EDNS.ExtRCode,
			Version: m.EDNS.Version, DO: m.EDNS.DO, Options: m.EDNS.Options,
		}
	}

	out, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("presentation: marshal message: %w", err)
	}
	return string(out), nil
}

func rawRRs(rrs []dns.Resource) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(rrs))
	for _, rr := range rrs {
		line, err := FormatRRJSON(rr)
		if err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(line))
	}
	return out, nil
}

// ParseMessageJSON parses the JSON form FormatMessageJSON emits.
func ParseMessageJSON(data []byte) (*dns.Message, error) {
	var env messageJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("presentation: unmarshal message: %w", err)
	}

	m := &dns.Message{
		ID: env.ID, Response: env.Response,
		Authoritative: env.Authoritative, Truncated: env.Truncated,
		RecursionDesired: env.RecursionDesired, RecursionAvailable: env.RecursionAvailable,
		AuthenticData: env.AuthenticData, CheckingDisabled: env.CheckingDisabled,
	}
	if opcode, ok := opcodeByName(env.OpCode); ok {
		m.OpCode = opcode
	}
	if rcode, ok := rcodeByName(env.RCode); ok {
		m.RCode = rcode
	}
	for _, q := range env.Questions {
		qtype, ok := dns.ParseType(q.Type)
		if !ok {
			return nil, fmt.Errorf("presentation: unknown question type %q", q.Type)
		}
		qclass, ok := dns.ParseClass(q.Class)
		if !ok {
			return nil, fmt.Errorf("presentation: unknown question class %q", q.Class)
		}
		m.Questions = append(m.Questions, dns.Question{Name: q.Name, Type: qtype, Class: qclass})
	}

	var err error
	if m.Answers, err = parseRawRRs(env.Answers); err != nil {
		return nil, err
	}
	if m.Authorities, err = parseRawRRs(env.Authorities); err != nil {
		return nil, err
	}
	if m.Additionals, err = parseRawRRs(env.Additionals); err != nil {
		return nil, err
	}
	if env.EDNS != nil {
		m.EDNS = &dns.EDNS{
			Enabled: env.EDNS.Enabled, UDPSize: env.EDNS.UDPSize, ExtRCode: env.EDNS.ExtRCode,
			Version: env.EDNS.Version, DO: env.EDNS.DO, Options: env.EDNS.Options,
		}
	}
	return m, nil
}

func parseRawRRs(raw []json.RawMessage) ([]dns.Resource, error) {
	out := make([]dns.Resource, 0, len(raw))
	for _, r := range raw {
		rr, err := ParseRRJSON(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, nil
}
