// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dns

import (
	"errors"
	"time"
)

var (
	errTooManyQuestions   = errors.New("dns: too many questions to pack (>65535)")
	errTooManyAnswers     = errors.New("dns: too many answers to pack (>65535)")
	errTooManyAuthorities = errors.New("dns: too many authorities to pack (>65535)")
	errTooManyAdditionals = errors.New("dns: too many additionals to pack (>65535)")
)

// Message is a DNS message: the 12-byte header plus four sections,
// with three pseudo-sections (EDNS, TSIG, SIG(0)) promoted out of
// Additional on decode (spec §3, §4.5).
type Message struct {
	ID                 int
	Response           bool
	OpCode             OpCode
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	AuthenticData      bool
	CheckingDisabled   bool
	RCode              RCode

	Questions   []Question
	Answers     []Resource
	Authorities []Resource
	Additionals []Resource

	EDNS *EDNS
	TSIG *Resource
	SIG0 *Resource

	// Size is the observed wire length on decode; zero for a message
	// that was never decoded from bytes.
	Size int
	// Trailing holds any bytes beyond the structured content that a
	// lenient decode chose to preserve rather than reject (spec §3).
	Trailing []byte
}

// EDNS is the typed form of an OPT pseudo-record (spec §3, §6).
type EDNS struct {
	Enabled bool
	UDPSize uint16
	// ExtRCode is the high 8 bits of the logical 12-bit RCODE,
	// spliced from the OPT record's TTL field (spec §4.5).
	ExtRCode uint8
	Version  uint8
	DO       bool // DNSSEC OK flag
	Options  []EDNSOption
}

// FullRCode returns the full 12-bit logical response code, splicing
// the header's 4-bit nibble with EDNS's extended high byte.
func (m *Message) FullRCode() int {
	if m.EDNS == nil {
		return int(m.RCode)
	}
	return int(m.EDNS.ExtRCode)<<4 | int(m.RCode&0xF)
}

// SetFullRCode splits a 12-bit logical rcode across the header nibble
// and (if EDNS is enabled) the OPT TTL's extended byte.
func (m *Message) SetFullRCode(code int) {
	m.RCode = RCode(code & 0xF)
	if m.EDNS != nil {
		m.EDNS.ExtRCode = uint8(code >> 4)
	}
}

// Pack encodes m as wire bytes, appending to b if non-nil. Compression
// is enabled by setting compress. A positive maxSize (0 means unbounded,
// appropriate for TCP) is enforced only by dropping the additional
// section as a whole, with TC set in the encoded flags (spec §4.5).
// Answer and authority records are never dropped: if they alone exceed
// maxSize, TC is set and the result is still longer than maxSize.
func (m *Message) Pack(b []byte, compress bool, maxSize int) ([]byte, error) {
	if b == nil {
		b = make([]byte, 0, maxPacketLen)
	}
	base := len(b)

	plan, err := m.planSections(base, compress, maxSize)
	if err != nil {
		return nil, err
	}

	var com Compressor
	if compress {
		com = NewCompressor(base)
	} else {
		com = &compressor{}
	}

	b, err = m.packHeader(b, plan.truncated)
	if err != nil {
		return nil, err
	}

	for _, q := range m.Questions {
		if b, err = q.Pack(b, com); err != nil {
			return nil, err
		}
	}
	for _, r := range m.Answers {
		if b, err = r.Pack(b, com); err != nil {
			return nil, err
		}
	}
	for _, r := range m.Authorities {
		if b, err = r.Pack(b, com); err != nil {
			return nil, err
		}
	}
	if !plan.dropAdditional {
		for _, r := range m.Additionals {
			if b, err = r.Pack(b, com); err != nil {
				return nil, err
			}
		}
		if m.EDNS != nil {
			rr := ednsToResource(m.EDNS)
			if b, err = rr.Pack(b, com); err != nil {
				return nil, err
			}
		}
		if m.TSIG != nil {
			if b, err = m.TSIG.Pack(b, com); err != nil {
				return nil, err
			}
		}
		if m.SIG0 != nil {
			if b, err = m.SIG0.Pack(b, com); err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}

type packPlan struct {
	truncated      bool
	dropAdditional bool
}

// planSections runs the size-only pass: it measures the message at
// maxSize and decides whether the additional section must be dropped
// en bloc to fit, setting TC if so (spec §4.5). Answer and authority
// are never dropped; per spec they are prioritized over additional.
func (m *Message) planSections(base int, compress bool, maxSize int) (packPlan, error) {
	if maxSize <= 0 {
		return packPlan{}, nil
	}

	measure := func(withAdditional bool) (int, error) {
		var com Compressor
		if compress {
			com = NewCompressor(base)
		} else {
			com = &compressor{}
		}
		n := 12
		var err error
		for _, q := range m.Questions {
			var bb []byte
			if bb, err = q.Pack(nil, com); err != nil {
				return 0, err
			}
			n += len(bb)
		}
		for _, rs := range [2][]Resource{m.Answers, m.Authorities} {
			for _, r := range rs {
				var bb []byte
				if bb, err = r.Pack(nil, com); err != nil {
					return 0, err
				}
				n += len(bb)
			}
		}
		if withAdditional {
			for _, r := range m.Additionals {
				var bb []byte
				if bb, err = r.Pack(nil, com); err != nil {
					return 0, err
				}
				n += len(bb)
			}
			if m.EDNS != nil {
				rr := ednsToResource(m.EDNS)
				bb, err := rr.Pack(nil, com)
				if err != nil {
					return 0, err
				}
				n += len(bb)
			}
			if m.TSIG != nil {
				bb, err := m.TSIG.Pack(nil, com)
				if err != nil {
					return 0, err
				}
				n += len(bb)
			}
			if m.SIG0 != nil {
				bb, err := m.SIG0.Pack(nil, com)
				if err != nil {
					return 0, err
				}
				n += len(bb)
			}
		}
		return n, nil
	}

	full, err := measure(true)
	if err != nil {
		return packPlan{}, err
	}
	if full <= maxSize {
		return packPlan{}, nil
	}

	withoutAdditional, err := measure(false)
	if err != nil {
		return packPlan{}, err
	}
	hasAdditional := len(m.Additionals) > 0 || m.EDNS != nil || m.TSIG != nil || m.SIG0 != nil
	if withoutAdditional <= maxSize {
		return packPlan{truncated: hasAdditional, dropAdditional: hasAdditional}, nil
	}

	// Even answer+authority overflow maxSize: spec doesn't require
	// trimming those (no canonical ordering is imposed), so we still
	// mark truncated and drop additional; a caller that cares about
	// per-record answer truncation can pre-trim m.Answers itself.
	return packPlan{truncated: true, dropAdditional: hasAdditional}, nil
}

// Unpack decodes m from b. Bytes left over after the last section are
// copied into m.Trailing; the returned slice is always nil.
func (m *Message) Unpack(b []byte) ([]byte, error) {
	total := len(b)
	dec := decompressor(b)

	var err error
	if b, err = m.unpackHeader(b); err != nil {
		return nil, err
	}

	qdcount, ancount, nscount, arcount := cap(m.Questions), cap(m.Answers), cap(m.Authorities), cap(m.Additionals)

	for i := 0; i < qdcount; i++ {
		var q Question
		if b, err = q.Unpack(b, dec); err != nil {
			return nil, err
		}
		m.Questions = append(m.Questions, q)
	}

	readRRs := func(n int) ([]Resource, []byte, bool) {
		out := make([]Resource, 0, n)
		for i := 0; i < n; i++ {
			var r Resource
			var uerr error
			b, uerr = r.Unpack(b, dec)
			if uerr != nil {
				if m.Truncated {
					// partial message over UDP: stop, don't fail (spec §4.5)
					return out, b, true
				}
				err = uerr
				return out, b, true
			}
			out = append(out, r)
		}
		return out, b, false
	}

	var stop bool
	m.Answers, b, stop = readRRs(ancount)
	if err != nil {
		return nil, err
	}
	if !stop {
		m.Authorities, b, stop = readRRs(nscount)
		if err != nil {
			return nil, err
		}
	}
	if !stop {
		var additionals []Resource
		additionals, b, stop = readRRs(arcount)
		if err != nil {
			return nil, err
		}
		m.promoteSpecialRecords(additionals)
	}
	_ = stop

	m.Size = total - len(b)
	m.Trailing = append([]byte(nil), b...)
	return nil, nil
}

// promoteSpecialRecords splits the decoded additional section into
// EDNS/TSIG/SIG(0) pseudo-sections per spec §3/§4.5/§9: the first OPT
// record found anywhere promotes to EDNS; a TSIG or SIG(0) at the
// tail promotes to its slot. Per spec's Open Question, decode is
// lenient about ordering even though RFC 2845 mandates TSIG last;
// encode always re-emits them in the canonical OPT-then-TSIG/SIG0
// order.
func (m *Message) promoteSpecialRecords(additionals []Resource) {
	var kept []Resource
	for i, r := range additionals {
		if opt, ok := r.Record.(*OPT); ok && m.EDNS == nil {
			m.EDNS = ednsFromResource(r, opt)
			continue
		}

		isLast := i == len(additionals)-1
		isSIG0 := r.Name == "." && isSIG0Rdata(r.Record)
		if isLast && r.Record.Type() == TypeTSIG && m.TSIG == nil {
			rc := r
			m.TSIG = &rc
			continue
		}
		if isLast && isSIG0 && m.SIG0 == nil {
			rc := r
			m.SIG0 = &rc
			continue
		}
		kept = append(kept, r)
	}
	m.Additionals = kept
}

// isSIG0Rdata distinguishes a SIG(0) record from an ordinary RRSIG:
// name="." and TypeCovered=0 (spec §3). Both SIG and RRSIG rdata are
// accepted; the caller checks the name.
func isSIG0Rdata(rec Record) bool {
	switch sig := rec.(type) {
	case *SIG:
		return sig.covered == TypeUNKNOWN
	case *RRSIG:
		return sig.covered == TypeUNKNOWN
	}
	return false
}

func ednsToResource(e *EDNS) Resource {
	opt := &OPT{Options: e.Options}
	var flags uint16
	if e.DO {
		flags |= 0x8000
	}
	ttl := uint32(e.ExtRCode)<<24 | uint32(e.Version)<<16 | uint32(flags)
	return Resource{
		Name:   ".",
		Class:  Class(e.UDPSize),
		TTL:    time.Duration(ttl) * time.Second,
		Record: opt,
	}
}

func ednsFromResource(r Resource, opt *OPT) *EDNS {
	ttl := uint32(r.TTL / time.Second)
	return &EDNS{
		Enabled:  true,
		UDPSize:  uint16(r.Class),
		ExtRCode: uint8(ttl >> 24),
		Version:  uint8(ttl >> 16),
		DO:       ttl&0x8000 != 0,
		Options:  opt.Options,
	}
}

func (m *Message) packHeader(b []byte, truncated bool) ([]byte, error) {
	id := uint16(m.ID)
	if int(id) != m.ID {
		return nil, errFieldOverflow
	}

	opcode := m.OpCode & 0x0F
	rcode := m.RCode & 0x0F

	bits := uint16(opcode)<<11 | uint16(rcode)
	if m.Response {
		bits |= headerBitQR
	}
	if m.Authoritative {
		bits |= headerBitAA
	}
	if m.Truncated || truncated {
		bits |= headerBitTC
	}
	if m.RecursionDesired {
		bits |= headerBitRD
	}
	if m.RecursionAvailable {
		bits |= headerBitRA
	}
	if m.AuthenticData {
		bits |= headerBitAD
	}
	if m.CheckingDisabled {
		bits |= headerBitCD
	}

	qdcount := uint16(len(m.Questions))
	if int(qdcount) != len(m.Questions) {
		return nil, errTooManyQuestions
	}
	ancount := uint16(len(m.Answers))
	if int(ancount) != len(m.Answers) {
		return nil, errTooManyAnswers
	}
	nscount := uint16(len(m.Authorities))
	if int(nscount) != len(m.Authorities) {
		return nil, errTooManyAuthorities
	}

	arn := len(m.Additionals)
	if m.EDNS != nil {
		arn++
	}
	if m.TSIG != nil {
		arn++
	}
	if m.SIG0 != nil {
		arn++
	}
	arcount := uint16(arn)
	if int(arcount) != arn {
		return nil, errTooManyAdditionals
	}
	if truncated {
		arcount = 0
	}

	var buf [12]byte
	nbo.PutUint16(buf[0:2], id)
	nbo.PutUint16(buf[2:4], bits)
	nbo.PutUint16(buf[4:6], qdcount)
	nbo.PutUint16(buf[6:8], ancount)
	nbo.PutUint16(buf[8:10], nscount)
	nbo.PutUint16(buf[10:12], arcount)
	return append(b, buf[:]...), nil
}

func (m *Message) unpackHeader(b []byte) ([]byte, error) {
	if len(b) < 12 {
		return nil, errResourceLen
	}

	var (
		id      = int(nbo.Uint16(b))
		bits    = nbo.Uint16(b[2:])
		qdcount = nbo.Uint16(b[4:])
		ancount = nbo.Uint16(b[6:])
		nscount = nbo.Uint16(b[8:])
		arcount = nbo.Uint16(b[10:])
	)

	*m = Message{
		ID:                 id,
		Response:           bits&headerBitQR != 0,
		OpCode:             OpCode(bits>>11) & 0xF,
		Authoritative:      bits&headerBitAA != 0,
		Truncated:          bits&headerBitTC != 0,
		RecursionDesired:   bits&headerBitRD != 0,
		RecursionAvailable: bits&headerBitRA != 0,
		AuthenticData:      bits&headerBitAD != 0,
		CheckingDisabled:   bits&headerBitCD != 0,
		RCode:              RCode(bits) & 0xF,
	}

	if qdcount > 0 {
		m.Questions = make([]Question, 0, qdcount)
	}
	if ancount > 0 {
		m.Answers = make([]Resource, 0, ancount)
	}
	if nscount > 0 {
		m.Authorities = make([]Resource, 0, nscount)
	}
	if arcount > 0 {
		m.Additionals = make([]Resource, 0, arcount)
	}

	return b[12:], nil
}
