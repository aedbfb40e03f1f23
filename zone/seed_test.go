package zone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dns "github.com/quillresolve/dns"
)

func TestLoadSeed(t *testing.T) {
	yamlDoc := []byte(`
origin: example.com.
records:
  - "example.com.	300	IN	A	93.184.216.34"
  - "example.com.	300	IN	NS	ns1.example.com."
  - "ns1.example.com.	300	IN	A	10.0.0.1"
`)
	idx := NewIndex()
	seed, err := LoadSeed(idx, yamlDoc)
	require.NoError(t, err)
	assert.Equal(t, "example.com.", seed.Origin)

	rrset, ok := idx.Lookup("example.com.", dns.TypeA)
	require.True(t, ok)
	require.Len(t, rrset, 1)

	glue := idx.Glue("ns1.example.com.")
	require.Len(t, glue, 1)
}

func TestLoadSeedRejectsMalformedLine(t *testing.T) {
	idx := NewIndex()
	_, err := LoadSeed(idx, []byte(`
origin: example.com.
records:
  - "not a valid rr line"
`))
	assert.Error(t, err)
}

func TestDumpSeedRoundTrip(t *testing.T) {
	idx := NewIndex()
	idx.Insert("example.com.", dns.TypeA, []dns.Resource{
		{Name: "example.com.", Class: dns.ClassIN, TTL: 300 * time.Second, Record: &dns.A{}},
	})
	seed, err := DumpSeed(idx, "example.com.")
	require.NoError(t, err)
	assert.Len(t, seed.Records, 1)
}
