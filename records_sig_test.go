package dns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNSECNonTerminalRoundTrip covers NSEC's uncompressed NextDomain
// field ahead of another record in the same message.
func TestNSECNonTerminalRoundTrip(t *testing.T) {
	nsec := Resource{
		Name:  "example.com.",
		Class: ClassIN, TTL: 300 * time.Second,
		Record: &NSEC{NextDomain: "www.example.com.", TypeBitmap: []Type{TypeA, TypeMX, TypeRRSIG}},
	}
	trailer := Resource{Name: "www.example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: mustIPv4(2, 2, 2, 2)}}

	b := packResources(t, nsec, trailer)
	dec := decompressor(b)

	var got Resource
	rest, err := got.Unpack(b, dec)
	require.NoError(t, err)
	assert.NotEmpty(t, rest)

	rr, ok := got.Record.(*NSEC)
	require.True(t, ok)
	assert.Equal(t, "www.example.com.", rr.NextDomain)
	assert.ElementsMatch(t, []Type{TypeA, TypeMX, TypeRRSIG}, rr.TypeBitmap)
}

// TestSIGNonTerminalRoundTrip covers sigRecord's uncompressed
// signerName field (shared by SIG and RRSIG) ahead of another record.
func TestSIGNonTerminalRoundTrip(t *testing.T) {
	sig := Resource{
		Name:  "example.com.",
		Class: ClassIN, TTL: 300 * time.Second,
		Record: &SIG{sigRecord{
			covered: TypeA, algorithm: 8, labels: 2, originalTTL: 300,
			expiration: 1893456000, inception: 1861920000, keyTag: 12345,
			signerName: "example.com.", signature: []byte{0xaa, 0xbb, 0xcc},
		}},
	}
	trailer := Resource{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: mustIPv4(3, 3, 3, 3)}}

	b := packResources(t, sig, trailer)
	dec := decompressor(b)

	var got Resource
	rest, err := got.Unpack(b, dec)
	require.NoError(t, err)
	assert.NotEmpty(t, rest)

	rr, ok := got.Record.(*SIG)
	require.True(t, ok)
	assert.Equal(t, "example.com.", rr.signerName)
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc}, rr.signature)
	assert.Equal(t, uint16(12345), rr.keyTag)
}
