package dns

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packResources packs rrs in sequence against a single shared
// compressor, the way Message.Pack builds one section after another.
func packResources(t *testing.T, rrs ...Resource) []byte {
	t.Helper()
	com := &compressor{}
	var b []byte
	for _, rr := range rrs {
		var err error
		b, err = rr.Pack(b, com)
		require.NoError(t, err)
	}
	return b
}

// TestNameBearingRecordNonTerminalRoundTrip packs an NS record ahead
// of an A record in the same buffer and decodes the NS first, so its
// rdata name must be read from a bounded, non-suffix rdata slice
// rather than from the tail of the whole message.
func TestNameBearingRecordNonTerminalRoundTrip(t *testing.T) {
	ns := Resource{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &NS{nameRecord{Name: "ns1.example.com."}}}
	glue := Resource{Name: "ns1.example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: mustIPv4(1, 2, 3, 4)}}

	b := packResources(t, ns, glue)
	dec := decompressor(b)

	var got Resource
	rest, err := got.Unpack(b, dec)
	require.NoError(t, err)
	assert.NotEmpty(t, rest, "an A record should still follow the NS in the buffer")

	rr, ok := got.Record.(*NS)
	require.True(t, ok)
	assert.Equal(t, "ns1.example.com.", rr.Name)

	var gotGlue Resource
	rest, err = gotGlue.Unpack(rest, dec)
	require.NoError(t, err)
	assert.Empty(t, rest)
	a, ok := gotGlue.Record.(*A)
	require.True(t, ok)
	assert.True(t, a.A.Equal(mustIPv4(1, 2, 3, 4)))
}

// TestCNAMEAnswerFollowedByTargetARoundTrip mirrors a resolver CNAME
// answer: the CNAME record's target name must decode correctly even
// though the target's own A record follows it in the same message.
func TestCNAMEAnswerFollowedByTargetARoundTrip(t *testing.T) {
	cname := Resource{Name: "www.example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &CNAME{nameRecord{Name: "example.com."}}}
	target := Resource{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: mustIPv4(93, 184, 216, 34)}}

	b := packResources(t, cname, target)
	dec := decompressor(b)

	var got Resource
	rest, err := got.Unpack(b, dec)
	require.NoError(t, err)
	assert.NotEmpty(t, rest)

	rr, ok := got.Record.(*CNAME)
	require.True(t, ok)
	assert.Equal(t, "example.com.", rr.Name)

	var gotTarget Resource
	_, err = gotTarget.Unpack(rest, dec)
	require.NoError(t, err)
	a, ok := gotTarget.Record.(*A)
	require.True(t, ok)
	assert.True(t, a.A.Equal(mustIPv4(93, 184, 216, 34)))
}

// TestDNAMENonTerminalRoundTrip exercises a decompressor(nil) caller
// (DNAME never compresses its target) when its rdata is not the last
// thing in the message.
func TestDNAMENonTerminalRoundTrip(t *testing.T) {
	dname := Resource{Name: "sub.example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &DNAME{nameRecord{Name: "example.net."}}}
	trailer := Resource{Name: "example.net.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: mustIPv4(5, 6, 7, 8)}}

	b := packResources(t, dname, trailer)
	dec := decompressor(b)

	var got Resource
	rest, err := got.Unpack(b, dec)
	require.NoError(t, err)
	assert.NotEmpty(t, rest)

	rr, ok := got.Record.(*DNAME)
	require.True(t, ok)
	assert.Equal(t, "example.net.", rr.Name)
}

func mustIPv4(a, b, c, d byte) net.IP {
	return net.IPv4(a, b, c, d)
}
