// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"math/rand"
	"net"

	dns "github.com/quillresolve/dns"
	"github.com/quillresolve/dns/zone"
)

// NameServer is one member of a nameserver set: its name plus any
// glue addresses known for it. A server with no Addrs is ordered after
// the servers that have glue, but pick never returns it, since it cannot
// be queried without an address and this package does not resolve one
// for it (spec §4.7 "prefer nameservers for which glue is available").
type NameServer struct {
	Name  string
	Addrs []net.IP

	fails int
}

// bad marks the server's most recent attempt as failed.
func (ns *NameServer) bad() { ns.fails++ }

// exhausted reports whether ns has failed the per-server threshold
// (spec §4.7: "Per-server failure threshold: 3 before rotation").
func (ns *NameServer) exhausted() bool { return ns.fails >= 3 }

// nameServerSet is the current candidate set the state machine is
// querying from; shuffled once per formation for "stable pseudo-random"
// selection and then walked in that fixed order as servers fail.
type nameServerSet struct {
	servers []*NameServer
	next    int
}

func newNameServerSet(servers []NameServer) *nameServerSet {
	owned := make([]*NameServer, len(servers))
	for i := range servers {
		ns := servers[i]
		owned[i] = &ns
	}
	// glue-available servers first, each group independently shuffled
	// for stable pseudo-random tie-breaking (spec §4.7).
	var withGlue, without []*NameServer
	for _, ns := range owned {
		if len(ns.Addrs) > 0 {
			withGlue = append(withGlue, ns)
		} else {
			without = append(without, ns)
		}
	}
	rand.Shuffle(len(withGlue), func(i, j int) { withGlue[i], withGlue[j] = withGlue[j], withGlue[i] })
	rand.Shuffle(len(without), func(i, j int) { without[i], without[j] = without[j], without[i] })

	return &nameServerSet{servers: append(withGlue, without...)}
}

// pick returns the next unexhausted server with a usable address, or
// nil if the set is exhausted (spec §4.7: "if the set is exhausted,
// go S_FAIL").
func (s *nameServerSet) pick() *NameServer {
	for s.next < len(s.servers) {
		ns := s.servers[s.next]
		if ns.exhausted() || len(ns.Addrs) == 0 {
			s.next++
			continue
		}
		return ns
	}
	return nil
}

// referralSet builds the next nameserver set from a referral's
// authority NS records and additional-section glue (spec §4.7
// "Referral" transition and §4.9 glue production).
func referralSet(authorities []dns.Resource, additionals []dns.Resource, idx *zone.Index) []NameServer {
	glueByName := make(map[string][]net.IP)
	for _, rr := range additionals {
		ip := addrOf(rr.Record)
		if ip == nil {
			continue
		}
		name := dnsNameLower(rr.Name)
		glueByName[name] = append(glueByName[name], ip)
	}

	var out []NameServer
	for _, rr := range authorities {
		ns, ok := rr.Record.(*dns.NS)
		if !ok {
			continue
		}
		target := dnsNameLower(ns.Name)
		addrs := glueByName[target]
		if len(addrs) == 0 && idx != nil {
			for _, glue := range idx.Glue(target) {
				if ip := addrOf(glue.Record); ip != nil {
					addrs = append(addrs, ip)
				}
			}
		}
		out = append(out, NameServer{Name: ns.Name, Addrs: addrs})
	}
	return out
}

func addrOf(rec dns.Record) net.IP {
	switch r := rec.(type) {
	case *dns.A:
		return r.A
	case *dns.AAAA:
		return r.AAAA
	default:
		return nil
	}
}

func dnsNameLower(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
