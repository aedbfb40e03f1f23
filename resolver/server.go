// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"context"
	"strings"

	dns "github.com/quillresolve/dns"
	"github.com/quillresolve/dns/zone"
)

// Server answers incoming queries: authoritatively from a local
// zone.Index when the question falls under one of its Zones, and by
// recursive resolution through a Resolver otherwise. This replaces the
// teacher's ResolveMux/Handler/muxWriter channel-merge machinery,
// which matched suffixes to arbitrary Handler values; this module has
// exactly the two answer sources spec.md names (C9 local authority,
// C7 recursive resolution), so the dispatch collapses to one ordered
// check instead of a registered pattern table.
type Server struct {
	Zones    map[string]*zone.Index // origin (lowercase, trailing-dot) -> index
	Resolver *Resolver
}

// NewServer returns a Server with no zones configured; AddZone
// registers each one served locally.
func NewServer(resolver *Resolver) *Server {
	return &Server{Zones: make(map[string]*zone.Index), Resolver: resolver}
}

// AddZone registers idx as authoritative for origin.
func (s *Server) AddZone(origin string, idx *zone.Index) {
	s.Zones[strings.ToLower(origin)] = idx
}

// Answer builds a reply message for a single question, either from a
// matching local zone or via the Resolver.
func (s *Server) Answer(ctx context.Context, q dns.Question) (*dns.Message, error) {
	if idx, origin, ok := s.findZone(q.Name); ok {
		return s.answerFromZone(idx, origin, q), nil
	}
	return s.Resolver.Resolve(ctx, q.Name, q.Type, q.Class)
}

func (s *Server) findZone(name string) (*zone.Index, string, bool) {
	lower := strings.ToLower(name)
	for origin, idx := range s.Zones {
		if lower == origin || strings.HasSuffix(lower, "."+origin) {
			return idx, origin, true
		}
	}
	return nil, "", false
}

func (s *Server) answerFromZone(idx *zone.Index, origin string, q dns.Question) *dns.Message {
	out := &dns.Message{
		Authoritative: true,
		Questions:     []dns.Question{q},
	}

	if rrset, ok := idx.Lookup(q.Name, q.Type); ok {
		out.Answers = rrset
		return out
	}

	out.RCode = dns.NXDomain
	if soa, ok := idx.Lookup(origin, dns.TypeSOA); ok && len(soa) > 0 {
		if _, ok := idx.LookupAll(q.Name); ok {
			out.RCode = dns.NoError // NODATA: name exists, type doesn't
		}
		out.Authorities = soa
	}
	return out
}
