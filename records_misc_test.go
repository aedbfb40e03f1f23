package dns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSRVNonTerminalRoundTrip covers a decompressor(nil) name field
// (SRV's target is never compressed) sitting ahead of another record
// in the same message, so its uncompressed name must decode straight
// from the bounded rdata slice with no message context at all.
func TestSRVNonTerminalRoundTrip(t *testing.T) {
	srv := Resource{
		Name:  "_sip._tcp.example.com.",
		Class: ClassIN, TTL: 300 * time.Second,
		Record: &SRV{Priority: 10, Weight: 20, Port: 5060, Target: "sipserver.example.com."},
	}
	trailer := Resource{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: mustIPv4(9, 9, 9, 9)}}

	b := packResources(t, srv, trailer)
	dec := decompressor(b)

	var got Resource
	rest, err := got.Unpack(b, dec)
	require.NoError(t, err)
	assert.NotEmpty(t, rest)

	rr, ok := got.Record.(*SRV)
	require.True(t, ok)
	assert.Equal(t, uint16(10), rr.Priority)
	assert.Equal(t, uint16(20), rr.Weight)
	assert.Equal(t, uint16(5060), rr.Port)
	assert.Equal(t, "sipserver.example.com.", rr.Target)
}

// TestNAPTRNonTerminalRoundTrip covers NAPTR's uncompressed
// Replacement field ahead of another record.
func TestNAPTRNonTerminalRoundTrip(t *testing.T) {
	naptr := Resource{
		Name:  "example.com.",
		Class: ClassIN, TTL: 300 * time.Second,
		Record: &NAPTR{
			Order: 100, Preference: 10,
			Flags: "S", Services: "SIP+D2U", Regexp: "",
			Replacement: "_sip._udp.example.com.",
		},
	}
	trailer := Resource{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: mustIPv4(4, 4, 4, 4)}}

	b := packResources(t, naptr, trailer)
	dec := decompressor(b)

	var got Resource
	rest, err := got.Unpack(b, dec)
	require.NoError(t, err)
	assert.NotEmpty(t, rest)

	rr, ok := got.Record.(*NAPTR)
	require.True(t, ok)
	assert.Equal(t, uint16(100), rr.Order)
	assert.Equal(t, "SIP+D2U", rr.Services)
	assert.Equal(t, "_sip._udp.example.com.", rr.Replacement)
}

// TestSRVIsolatedDecompressorNil exercises SRV.Unpack directly, with
// no surrounding message at all, matching how records_misc.go always
// calls decompressor(nil) for this field regardless of what dec the
// caller passed in.
func TestSRVIsolatedDecompressorNil(t *testing.T) {
	srv := SRV{Priority: 1, Weight: 2, Port: 3, Target: "target.example.org."}
	b, err := srv.Pack(nil, nil)
	require.NoError(t, err)

	var got SRV
	rest, err := got.Unpack(b, nil)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, "target.example.org.", got.Target)
}
