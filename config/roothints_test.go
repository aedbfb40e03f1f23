package config

import (
	"net"
	"testing"
)

func TestParseRootHints(t *testing.T) {
	doc := []byte(`
servers:
  - name: a.root-servers.net.
    ipv4: ["198.41.0.4"]
    ipv6: ["2001:503:ba3e::2:30"]
  - name: b.root-servers.net.
    ipv4: ["199.9.14.201"]
`)
	hints, err := ParseRootHints(doc)
	if err != nil {
		t.Fatalf("ParseRootHints: %v", err)
	}
	if len(hints.Servers) != 2 {
		t.Fatalf("got %d servers, want 2", len(hints.Servers))
	}
	if hints.Servers[0].Name != "a.root-servers.net." {
		t.Fatalf("got name %q", hints.Servers[0].Name)
	}
}

func TestParseRootHintsRejectsInvalidAddress(t *testing.T) {
	doc := []byte(`
servers:
  - name: a.root-servers.net.
    ipv4: ["not-an-ip"]
`)
	if _, err := ParseRootHints(doc); err == nil {
		t.Fatal("expected error for an invalid IP literal")
	}
}

func TestRootHintsAddrsOrdersIPv4BeforeIPv6PerServer(t *testing.T) {
	hints := &RootHints{Servers: []RootHint{
		{Name: "a.root-servers.net.", IPv4: []string{"198.41.0.4"}, IPv6: []string{"2001:503:ba3e::2:30"}},
		{Name: "b.root-servers.net.", IPv4: []string{"199.9.14.201"}},
	}}
	addrs := hints.Addrs()
	if len(addrs) != 3 {
		t.Fatalf("got %d addrs, want 3", len(addrs))
	}
	if !addrs[0].Equal(net.ParseIP("198.41.0.4")) {
		t.Fatalf("addrs[0] = %v", addrs[0])
	}
	if !addrs[1].Equal(net.ParseIP("2001:503:ba3e::2:30")) {
		t.Fatalf("addrs[1] = %v", addrs[1])
	}
	if !addrs[2].Equal(net.ParseIP("199.9.14.201")) {
		t.Fatalf("addrs[2] = %v", addrs[2])
	}
}
