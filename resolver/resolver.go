// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolver implements the recursive-resolution state machine
// (C7): S_INIT -> S_QUERY -> S_WAIT -> S_CLASSIFY -> S_ANSWER/S_FAIL,
// with referral chasing, CNAME unrolling, single-flight, and a
// TTL-aware cache backed by package zone.
package resolver

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	dns "github.com/quillresolve/dns"
	"github.com/quillresolve/dns/internal/log"
	"github.com/quillresolve/dns/zone"
)

const (
	maxReferralDepth = 10
	maxChainDepth    = 10
)

// Resolver resolves (name, type, class) queries recursively, starting
// from a root hint nameserver set, caching results in a zone.Index.
type Resolver struct {
	Root      []NameServer
	Cache     *zone.Index
	Transport Transport
	Metrics   *Metrics
	Log       log.Logger

	flight flightGroup
}

// New returns a Resolver. cache, metrics, and logger may be nil
// (nil cache is replaced by a fresh, empty zone.Index, so caching stays
// on; nil metrics disables counting; nil logger discards log lines).
func New(root []NameServer, cache *zone.Index, transport Transport, metrics *Metrics, logger log.Logger) *Resolver {
	if cache == nil {
		cache = zone.NewIndex()
	}
	if transport == nil {
		transport = NewTransport()
	}
	if logger == nil {
		logger = log.Noop()
	}
	cache.OnChange(func(op, name string) {
		logger.Debugf("cache %s: %s", op, name)
	})
	return &Resolver{Root: root, Cache: cache, Transport: transport, Metrics: metrics, Log: logger}
}

// Resolve answers (name, qtype, qclass), consulting the cache first
// and sharing in-flight network work across identical concurrent
// callers (spec §4.7 "Concurrency").
func (r *Resolver) Resolve(ctx context.Context, name string, qtype dns.Type, qclass dns.Class) (*dns.Message, error) {
	r.Metrics.incQueries()

	fingerprint := fmt.Sprintf("%s|%d|%d", strings.ToLower(name), qtype, qclass)
	return r.flight.do(fingerprint, func() (*dns.Message, error) {
		return r.resolveChain(ctx, name, qtype, qclass)
	})
}

// resolveChain runs the CNAME-unrolling outer loop around chase,
// accumulating every CNAME link plus the terminal answer (spec §4.7
// "CNAME for non-CNAME query: append the CNAME to the result, ...").
func (r *Resolver) resolveChain(ctx context.Context, name string, qtype dns.Type, qclass dns.Class) (*dns.Message, error) {
	out := &dns.Message{Questions: []dns.Question{{Name: name, Type: qtype, Class: qclass}}}

	curName := name
	for chain := 0; ; chain++ {
		if chain > maxChainDepth {
			r.Metrics.incChainExceeded()
			return nil, fail(KindPolicy, name, qtype.String(), "CNAME chain exceeded bound", nil)
		}

		if rrset, ok := r.Cache.Lookup(curName, qtype); ok {
			r.Metrics.incCacheHit()
			out.Answers = append(out.Answers, rrset...)
			return out, nil
		}
		if soa, rcode, ok := r.Cache.LookupNegative(curName); ok {
			r.Metrics.incCacheHit()
			out.RCode = rcode
			out.Authorities = append(out.Authorities, soa)
			return out, nil
		}
		r.Metrics.incCacheMiss()

		r.Log.Debugf("resolving %s %s (chain depth %d)", curName, qtype, chain)
		resp, err := r.chase(ctx, curName, qtype, qclass, newNameServerSet(r.Root), 0)
		if err != nil {
			r.Log.Warnf("resolve %s %s failed: %v", curName, qtype, err)
			return nil, err
		}

		r.cacheResponse(resp)

		if cname, ok := matchCNAME(resp, curName); ok && qtype != dns.TypeCNAME {
			out.Answers = append(out.Answers, cname)
			curName = cname.Record.(*dns.CNAME).Name
			continue
		}

		out.RCode = resp.RCode
		out.Authoritative = resp.Authoritative
		out.Answers = append(out.Answers, matchAnswers(resp, curName, qtype)...)

		if resp.RCode == dns.NXDomain || (out.RCode == dns.NoError && len(out.Answers) == 0) {
			if soa, ok := findSOA(resp); ok {
				out.Authorities = append(out.Authorities, soa)
				r.Cache.InsertNegative(curName, clampToMinimum(soa), resp.RCode)
			}
		}
		return out, nil
	}
}

// chase implements S_QUERY/S_WAIT/S_CLASSIFY, including referral
// recursion, for one fixed (name, qtype, qclass) (spec §4.7).
func (r *Resolver) chase(ctx context.Context, name string, qtype dns.Type, qclass dns.Class, servers *nameServerSet, depth int) (*dns.Message, error) {
	if depth > maxReferralDepth {
		r.Metrics.incReferralExceeded()
		return nil, fail(KindPolicy, name, qtype.String(), "referral depth exceeded bound", nil)
	}

	for {
		ns := servers.pick()
		if ns == nil {
			return nil, fail(KindProtocol, name, qtype.String(), "nameserver set exhausted", nil)
		}

		resp, network, err := r.exchangeOne(ctx, ns, "udp", name, qtype, qclass)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fail(KindCancelled, name, qtype.String(), "context done while querying "+ns.Name, ctx.Err())
			}
			r.Metrics.incTimeout()
			r.Log.Warnf("nameserver %s unreachable for %s %s: %v", ns.Name, name, qtype, err)
			ns.bad()
			continue
		}

		if resp.Truncated && network == "udp" {
			resp, _, err = r.exchangeOne(ctx, ns, "tcp", name, qtype, qclass)
			if err != nil {
				ns.bad()
				continue
			}
		}

		switch resp.RCode {
		case dns.ServFail, dns.FormErr, dns.Refused:
			ns.bad()
			continue
		}

		if _, ok := matchCNAME(resp, name); ok {
			return resp, nil
		}
		if answers := matchAnswers(resp, name, qtype); len(answers) > 0 {
			return resp, nil
		}
		if nsSet := referralSet(resp.Authorities, resp.Additionals, r.Cache); len(nsSet) > 0 && !isAuthorityForName(resp, name) {
			r.Log.Debugf("referral for %s %s from %s, following %d nameserver(s) at depth %d", name, qtype, ns.Name, len(nsSet), depth+1)
			return r.chase(ctx, name, qtype, qclass, newNameServerSet(nsSet), depth+1)
		}

		// NXDOMAIN or NODATA: an authoritative-for-this-name response
		// with no matching records (spec §4.7 "go S_ANSWER with empty
		// record list").
		return resp, nil
	}
}

// exchangeOne sends one query to one address of ns over network,
// bounded by the per-attempt timeout (spec §4.7). It tries every
// address in ns.Addrs in order until one succeeds.
func (r *Resolver) exchangeOne(ctx context.Context, ns *NameServer, network string, name string, qtype dns.Type, qclass dns.Class) (*dns.Message, string, error) {
	query := &dns.Message{
		ID:               randomID(),
		RecursionDesired: false,
		Questions:        []dns.Question{{Name: name, Type: qtype, Class: qclass}},
	}

	var lastErr error
	for _, addr := range ns.Addrs {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout(network))
		resp, err := r.Transport.Exchange(attemptCtx, network, addr, 53, query)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		if !responseMatches(query, resp) {
			lastErr = fail(KindProtocol, name, qtype.String(), "response id/question mismatch", nil)
			continue
		}
		return resp, network, nil
	}
	if lastErr == nil {
		lastErr = fail(KindProtocol, name, qtype.String(), "nameserver has no usable address", nil)
	}
	return nil, network, lastErr
}

func responseMatches(query, resp *dns.Message) bool {
	if resp.ID != query.ID {
		return false
	}
	if len(resp.Questions) != len(query.Questions) {
		return false
	}
	for i, q := range query.Questions {
		rq := resp.Questions[i]
		if !dns.EqualFold(q.Name, rq.Name) || q.Type != rq.Type || q.Class != rq.Class {
			return false
		}
	}
	return true
}

func randomID() int {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return int(time.Now().UnixNano() & 0xFFFF)
	}
	return int(b[0])<<8 | int(b[1])
}

func matchCNAME(msg *dns.Message, name string) (dns.Resource, bool) {
	for _, rr := range msg.Answers {
		if dns.EqualFold(rr.Name, name) {
			if _, ok := rr.Record.(*dns.CNAME); ok {
				return rr, true
			}
		}
	}
	return dns.Resource{}, false
}

func matchAnswers(msg *dns.Message, name string, qtype dns.Type) []dns.Resource {
	var out []dns.Resource
	for _, rr := range msg.Answers {
		if dns.EqualFold(rr.Name, name) && (qtype == dns.TypeANY || rr.Record.Type() == qtype) {
			out = append(out, rr)
		}
	}
	return out
}

func findSOA(msg *dns.Message) (dns.Resource, bool) {
	for _, rr := range msg.Authorities {
		if _, ok := rr.Record.(*dns.SOA); ok {
			return rr, true
		}
	}
	return dns.Resource{}, false
}

// clampToMinimum clamps a negative-answer SOA's cached TTL to its own
// MINIMUM field, per RFC 2308 (spec §4.7).
func clampToMinimum(soa dns.Resource) dns.Resource {
	rec, ok := soa.Record.(*dns.SOA)
	if !ok {
		return soa
	}
	min := time.Duration(rec.Minimum) * time.Second
	if soa.TTL > min {
		soa.TTL = min
	}
	return soa
}

// isAuthorityForName reports whether resp looks like a direct,
// authoritative answer for name rather than a referral (an AA=1
// response, or one whose NS records name exactly the queried zone cut
// owner, is not a referral to chase further).
func isAuthorityForName(msg *dns.Message, name string) bool {
	if msg.Authoritative {
		return true
	}
	for _, rr := range msg.Authorities {
		if _, ok := rr.Record.(*dns.NS); ok && dns.EqualFold(rr.Name, name) {
			return true
		}
	}
	return false
}

// cacheResponse stores every RRset observed in resp into the cache,
// grouped by (name, type) (spec §4.7 "Cache writes: ... each observed
// RRset is stored keyed by (name, type, class)").
func (r *Resolver) cacheResponse(resp *dns.Message) {
	if r.Cache == nil {
		return
	}
	groups := make(map[string]map[dns.Type][]dns.Resource)
	for _, section := range [][]dns.Resource{resp.Answers, resp.Authorities, resp.Additionals} {
		for _, rr := range section {
			if _, ok := rr.Record.(*dns.SOA); ok {
				continue
			}
			key := strings.ToLower(rr.Name)
			byType, ok := groups[key]
			if !ok {
				byType = make(map[dns.Type][]dns.Resource)
				groups[key] = byType
			}
			t := rr.Record.Type()
			byType[t] = append(byType[t], rr)
		}
	}
	for name, byType := range groups {
		for t, rrset := range byType {
			r.Cache.Insert(name, t, rrset)
		}
	}
}
