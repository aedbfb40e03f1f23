// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the resolver's optional instrumentation surface; a nil
// *Metrics disables all counting, so metrics never become a caching-
// policy feature (spec's ambient-stack note on injected collaborators).
type Metrics struct {
	Queries          prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	ReferralExceeded prometheus.Counter
	ChainExceeded    prometheus.Counter
	Timeouts         prometheus.Counter
}

// NewMetrics registers and returns a Metrics set on reg. Pass a nil
// reg to get counters that exist but are never registered anywhere
// (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Queries:          prometheus.NewCounter(prometheus.CounterOpts{Name: "dns_resolver_queries_total", Help: "Total resolution attempts started."}),
		CacheHits:        prometheus.NewCounter(prometheus.CounterOpts{Name: "dns_resolver_cache_hits_total", Help: "Queries answered from the zone index cache."}),
		CacheMisses:      prometheus.NewCounter(prometheus.CounterOpts{Name: "dns_resolver_cache_misses_total", Help: "Queries that required a network transaction."}),
		ReferralExceeded: prometheus.NewCounter(prometheus.CounterOpts{Name: "dns_resolver_referral_depth_exceeded_total", Help: "Resolutions that hit the referral depth bound."}),
		ChainExceeded:    prometheus.NewCounter(prometheus.CounterOpts{Name: "dns_resolver_cname_chain_exceeded_total", Help: "Resolutions that hit the CNAME chain bound."}),
		Timeouts:         prometheus.NewCounter(prometheus.CounterOpts{Name: "dns_resolver_attempt_timeouts_total", Help: "Per-attempt timeouts across all nameservers."}),
	}
	if reg != nil {
		reg.MustRegister(m.Queries, m.CacheHits, m.CacheMisses, m.ReferralExceeded, m.ChainExceeded, m.Timeouts)
	}
	return m
}

func (m *Metrics) incQueries() {
	if m != nil {
		m.Queries.Inc()
	}
}
func (m *Metrics) incCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}
func (m *Metrics) incCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}
func (m *Metrics) incReferralExceeded() {
	if m != nil {
		m.ReferralExceeded.Inc()
	}
}
func (m *Metrics) incChainExceeded() {
	if m != nil {
		m.ChainExceeded.Inc()
	}
}
func (m *Metrics) incTimeout() {
	if m != nil {
		m.Timeouts.Inc()
	}
}
