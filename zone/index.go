// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zone implements the name -> (type -> RRset) index (C9):
// the in-memory table used both for local authoritative answers and
// as the resolver's TTL-aware cache backing store.
package zone

import (
	"strings"
	"sync"
	"time"

	dns "github.com/quillresolve/dns"
)

// NegativeType is the sentinel "type" a negative (NXDOMAIN/NODATA)
// disposition is cached under, keeping it out of the way of any real
// RRset at the same owner name (spec §4.9, §4.7 "Cache writes").
const NegativeType dns.Type = 0xFFFF

// ChangeFunc is called after a key's RRset changes. op is one of
// "clear", "insert", "delete"; name is the owner name affected (empty
// for "clear"). It replaces the teacher's twelve-setter callback
// matrix with the one hook the resolver actually uses: cache
// invalidation.
type ChangeFunc func(op, name string)

type entry struct {
	rrset  []dns.Resource
	ttl    time.Duration
	stored time.Time
}

// Index is the two-level owner-name -> type -> RRset table (spec
// §4.9). The zero value is not usable; call NewIndex.
type Index struct {
	mu       sync.RWMutex
	m        map[string]map[dns.Type]entry
	onChange ChangeFunc
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{m: make(map[string]map[dns.Type]entry)}
}

// OnChange installs fn as the change hook, replacing any previous one.
func (idx *Index) OnChange(fn ChangeFunc) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.onChange = fn
}

func (idx *Index) notify(op, name string) {
	if idx.onChange != nil {
		idx.onChange(op, name)
	}
}

// key lowercases name per spec §4.9 ("Name-lowercased two-level
// mapping"); dns.EqualFold is for comparisons, this is for storage.
func key(name string) string { return strings.ToLower(name) }

// Clear empties the index.
func (idx *Index) Clear() {
	idx.mu.Lock()
	idx.m = make(map[string]map[dns.Type]entry)
	idx.mu.Unlock()
	idx.notify("clear", "")
}

// Len returns the number of distinct owner names held.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.m)
}

// Lookup returns the RRset for (name, rtype) if present and its TTL
// has not elapsed since insertion (spec §4.7 "Cache lookup precedes
// S_QUERY"). An expired entry is treated as absent (lazy eviction);
// it is not removed here, Insert/Append will overwrite it.
func (idx *Index) Lookup(name string, rtype dns.Type) ([]dns.Resource, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	byType, ok := idx.m[key(name)]
	if !ok {
		return nil, false
	}
	e, ok := byType[rtype]
	if !ok || expired(e) {
		return nil, false
	}
	return e.rrset, true
}

// LookupNegative returns the cached negative disposition for name, if
// any and unexpired: the authority-section SOA that was present (for
// its MINIMUM-clamped TTL, per RFC 2308) along with the RCODE that was
// observed.
func (idx *Index) LookupNegative(name string) (soa dns.Resource, rcode dns.RCode, ok bool) {
	rrset, ok := idx.Lookup(name, NegativeType)
	if !ok || len(rrset) == 0 {
		return dns.Resource{}, 0, false
	}
	idx.mu.RLock()
	ttl := idx.m[key(name)][NegativeType].ttl
	idx.mu.RUnlock()
	soa = rrset[0]
	soa.TTL = ttl
	return soa, dns.RCode(rrset[0].TTL), true
}

// InsertNegative caches a negative disposition for name: soa (with TTL
// already clamped to the SOA MINIMUM) and the observed rcode, encoded
// by stashing rcode in the RRset marker entry's TTL field position (a
// dedicated struct would dual-purpose the same storage path for one
// caller; this keeps Lookup/Insert symmetric instead of branching).
func (idx *Index) InsertNegative(name string, soa dns.Resource, rcode dns.RCode) {
	marker := soa
	marker.TTL = time.Duration(rcode)
	idx.insertEntry(name, NegativeType, []dns.Resource{marker}, soa.TTL)
}

// LookupAll returns every real (non-negative) type indexed at name
// whose TTL has not elapsed.
func (idx *Index) LookupAll(name string) (map[dns.Type][]dns.Resource, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	byType, ok := idx.m[key(name)]
	if !ok {
		return nil, false
	}
	out := make(map[dns.Type][]dns.Resource, len(byType))
	for t, e := range byType {
		if t == NegativeType || expired(e) {
			continue
		}
		out[t] = e.rrset
	}
	return out, len(out) > 0
}

// Insert stores rrset under (name, rtype), normalizing every member's
// TTL to the minimum TTL found in rrset (spec §4.9) and replacing any
// previous RRset at that key.
func (idx *Index) Insert(name string, rtype dns.Type, rrset []dns.Resource) {
	normalized, ttl := normalizeTTL(rrset)
	idx.insertEntry(name, rtype, normalized, ttl)
}

func (idx *Index) insertEntry(name string, rtype dns.Type, rrset []dns.Resource, ttl time.Duration) {
	idx.mu.Lock()
	k := key(name)
	byType, ok := idx.m[k]
	if !ok {
		byType = make(map[dns.Type]entry)
		idx.m[k] = byType
	}
	byType[rtype] = entry{rrset: rrset, ttl: ttl, stored: time.Now()}
	idx.mu.Unlock()

	idx.notify("insert", name)
}

// Append adds rr to the existing RRset at (name, rr.Record.Type()),
// re-normalizing the TTL of the whole resulting set to its new
// minimum (insertion is append-within-RRset per spec §4.9).
func (idx *Index) Append(name string, rr dns.Resource) {
	rtype := rr.Record.Type()

	idx.mu.RLock()
	existing := idx.m[key(name)][rtype].rrset
	idx.mu.RUnlock()

	merged := append(append([]dns.Resource(nil), existing...), rr)
	idx.Insert(name, rtype, merged)
}

// DeleteKey removes every type indexed at name.
func (idx *Index) DeleteKey(name string) {
	idx.mu.Lock()
	delete(idx.m, key(name))
	idx.mu.Unlock()
	idx.notify("delete", name)
}

// DeleteType removes one type's RRset at name.
func (idx *Index) DeleteType(name string, rtype dns.Type) {
	idx.mu.Lock()
	if byType, ok := idx.m[key(name)]; ok {
		delete(byType, rtype)
		if len(byType) == 0 {
			delete(idx.m, key(name))
		}
	}
	idx.mu.Unlock()
	idx.notify("delete", name)
}

// All returns a snapshot of every unexpired RRset in the table,
// keyed by owner name then type.
func (idx *Index) All() map[string]map[dns.Type][]dns.Resource {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[string]map[dns.Type][]dns.Resource, len(idx.m))
	for name, byType := range idx.m {
		types := make(map[dns.Type][]dns.Resource, len(byType))
		for t, e := range byType {
			if expired(e) {
				continue
			}
			types[t] = e.rrset
		}
		if len(types) > 0 {
			out[name] = types
		}
	}
	return out
}

// Glue returns the unexpired A/AAAA records indexed at target, for
// use as glue alongside an NS referral (spec §4.9: "the glue for NS
// answers is produced by also indexing A/AAAA records at the NS
// targets").
func (idx *Index) Glue(target string) []dns.Resource {
	a, _ := idx.Lookup(target, dns.TypeA)
	aaaa, _ := idx.Lookup(target, dns.TypeAAAA)
	if len(a) == 0 && len(aaaa) == 0 {
		return nil
	}
	return append(append([]dns.Resource(nil), a...), aaaa...)
}

func normalizeTTL(rrset []dns.Resource) ([]dns.Resource, time.Duration) {
	if len(rrset) == 0 {
		return rrset, 0
	}
	min := rrset[0].TTL
	for _, rr := range rrset[1:] {
		if rr.TTL < min {
			min = rr.TTL
		}
	}
	out := make([]dns.Resource, len(rrset))
	for i, rr := range rrset {
		rr.TTL = min
		out[i] = rr
	}
	return out, min
}

func expired(e entry) bool {
	return time.Since(e.stored) >= e.ttl
}
