package zone

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dns "github.com/quillresolve/dns"
)

func TestIndexInsertLookupCaseFold(t *testing.T) {
	idx := NewIndex()
	idx.Insert("Example.COM.", dns.TypeA, []dns.Resource{
		{Name: "Example.COM.", Class: dns.ClassIN, TTL: 300 * time.Second, Record: &dns.A{A: net.IPv4(1, 2, 3, 4)}},
	})

	rrset, ok := idx.Lookup("example.com.", dns.TypeA)
	require.True(t, ok)
	require.Len(t, rrset, 1)
	assert.True(t, rrset[0].Record.(*dns.A).A.Equal(net.IPv4(1, 2, 3, 4)))
}

func TestIndexTTLNormalizedToMinimum(t *testing.T) {
	idx := NewIndex()
	idx.Insert("multi.example.com.", dns.TypeA, []dns.Resource{
		{Name: "multi.example.com.", Class: dns.ClassIN, TTL: 600 * time.Second, Record: &dns.A{A: net.IPv4(1, 1, 1, 1)}},
		{Name: "multi.example.com.", Class: dns.ClassIN, TTL: 100 * time.Second, Record: &dns.A{A: net.IPv4(2, 2, 2, 2)}},
	})

	rrset, ok := idx.Lookup("multi.example.com.", dns.TypeA)
	require.True(t, ok)
	for _, rr := range rrset {
		assert.Equal(t, 100*time.Second, rr.TTL)
	}
}

func TestIndexLookupExpired(t *testing.T) {
	idx := NewIndex()
	idx.Insert("expired.example.com.", dns.TypeA, []dns.Resource{
		{Name: "expired.example.com.", Class: dns.ClassIN, TTL: 0, Record: &dns.A{A: net.IPv4(1, 1, 1, 1)}},
	})
	time.Sleep(2 * time.Millisecond)

	_, ok := idx.Lookup("expired.example.com.", dns.TypeA)
	assert.False(t, ok, "zero-TTL entry should already be considered expired")
}

func TestIndexGlueFromNSTargets(t *testing.T) {
	idx := NewIndex()
	idx.Insert("ns1.example.com.", dns.TypeA, []dns.Resource{
		{Name: "ns1.example.com.", Class: dns.ClassIN, TTL: 300 * time.Second, Record: &dns.A{A: net.IPv4(10, 0, 0, 1)}},
	})

	glue := idx.Glue("ns1.example.com.")
	require.Len(t, glue, 1)
	assert.True(t, glue[0].Record.(*dns.A).A.Equal(net.IPv4(10, 0, 0, 1)))
}

func TestIndexNegativeCaching(t *testing.T) {
	idx := NewIndex()
	soa := dns.Resource{
		Name: "example.com.", Class: dns.ClassIN, TTL: 3600 * time.Second,
		Record: &dns.SOA{MName: "ns1.example.com.", RName: "hostmaster.example.com.", Minimum: 300},
	}
	idx.InsertNegative("nope.example.com.", soa, dns.NXDomain)

	got, rcode, ok := idx.LookupNegative("nope.example.com.")
	require.True(t, ok)
	assert.Equal(t, dns.NXDomain, rcode)
	assert.Equal(t, "example.com.", got.Name)
}

func TestIndexAppendGroupsWithinRRset(t *testing.T) {
	idx := NewIndex()
	idx.Append("multi.example.com.", dns.Resource{
		Name: "multi.example.com.", Class: dns.ClassIN, TTL: 300 * time.Second, Record: &dns.A{A: net.IPv4(1, 1, 1, 1)},
	})
	idx.Append("multi.example.com.", dns.Resource{
		Name: "multi.example.com.", Class: dns.ClassIN, TTL: 300 * time.Second, Record: &dns.A{A: net.IPv4(2, 2, 2, 2)},
	})

	rrset, ok := idx.Lookup("multi.example.com.", dns.TypeA)
	require.True(t, ok)
	assert.Len(t, rrset, 2)
}

func TestIndexChangeFuncFires(t *testing.T) {
	idx := NewIndex()
	var lastOp, lastName string
	idx.OnChange(func(op, name string) { lastOp, lastName = op, name })

	idx.Insert("changed.example.com.", dns.TypeA, []dns.Resource{
		{Name: "changed.example.com.", Class: dns.ClassIN, TTL: 300 * time.Second, Record: &dns.A{A: net.IPv4(1, 1, 1, 1)}},
	})
	assert.Equal(t, "insert", lastOp)
	assert.Equal(t, "changed.example.com.", lastName)

	idx.DeleteKey("changed.example.com.")
	assert.Equal(t, "delete", lastOp)
}
