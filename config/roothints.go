// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the resolver's bootstrap configuration: the
// root hint nameserver set and zone seed file locations, from YAML.
package config

import (
	"fmt"
	"net"

	"gopkg.in/yaml.v3"
)

// RootHint is one root (or other bootstrap) nameserver: a name plus
// its glue addresses, so the resolver never has to resolve the root
// servers' own names to start.
type RootHint struct {
	Name string   `yaml:"name"`
	IPv4 []string `yaml:"ipv4,omitempty"`
	IPv6 []string `yaml:"ipv6,omitempty"`
}

// RootHints is the top-level YAML document shape for a root hint
// file (the traditional named.root/named.cache content, reshaped).
type RootHints struct {
	Servers []RootHint `yaml:"servers"`
}

// ParseRootHints parses YAML root-hint data and validates that every
// address parses as an IP literal.
func ParseRootHints(data []byte) (*RootHints, error) {
	var hints RootHints
	if err := yaml.Unmarshal(data, &hints); err != nil {
		return nil, fmt.Errorf("config: parsing root hints: %w", err)
	}
	for _, s := range hints.Servers {
		for _, a := range append(append([]string(nil), s.IPv4...), s.IPv6...) {
			if net.ParseIP(a) == nil {
				return nil, fmt.Errorf("config: root hint %s: invalid address %q", s.Name, a)
			}
		}
	}
	return &hints, nil
}

// Addrs returns every glue address across all servers, IPv4 before
// IPv6 for each server, in file order.
func (h *RootHints) Addrs() []net.IP {
	var out []net.IP
	for _, s := range h.Servers {
		for _, a := range s.IPv4 {
			out = append(out, net.ParseIP(a))
		}
		for _, a := range s.IPv6 {
			out = append(out, net.ParseIP(a))
		}
	}
	return out
}
