package presentation

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dns "github.com/quillresolve/dns"
	"github.com/quillresolve/dns/edns"
)

func TestFormatParseRRJSONRoundTrip(t *testing.T) {
	rr := dns.Resource{
		Name:   "example.com.",
		Class:  dns.ClassIN,
		TTL:    300 * time.Second,
		Record: &dns.A{A: net.IPv4(93, 184, 216, 34)},
	}

	text, err := FormatRRJSON(rr)
	require.NoError(t, err)

	got, err := ParseRRJSON([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, rr.Name, got.Name)
	assert.Equal(t, rr.TTL, got.TTL)
	a, ok := got.Record.(*dns.A)
	require.True(t, ok)
	assert.True(t, a.A.Equal(net.IPv4(93, 184, 216, 34)))
}

func TestParseRRJSONUnknownTypeFallsBackToUNKNOWN(t *testing.T) {
	rr := dns.Resource{
		Name:   "example.com.",
		Class:  dns.ClassIN,
		TTL:    300 * time.Second,
		Record: &dns.UNKNOWN{RRType: dns.Type(65280), Data: []byte{0xde, 0xad}},
	}
	text, err := FormatRRJSON(rr)
	require.NoError(t, err)

	got, err := ParseRRJSON([]byte(text))
	require.NoError(t, err)
	u, ok := got.Record.(*dns.UNKNOWN)
	require.True(t, ok)
	assert.Equal(t, dns.Type(65280), u.RRType)
}

func TestFormatParseMessageJSONRoundTrip(t *testing.T) {
	m := &dns.Message{
		ID:               99,
		Response:         true,
		RecursionDesired: true,
		Questions:        []dns.Question{{Name: "example.com.", Type: dns.TypeA, Class: dns.ClassIN}},
		Answers: []dns.Resource{
			{Name: "example.com.", Class: dns.ClassIN, TTL: 300 * time.Second, Record: &dns.A{A: net.IPv4(1, 1, 1, 1)}},
		},
		EDNS: &dns.EDNS{
			Enabled: true, UDPSize: 4096,
			Options: []edns.Option{{Code: edns.CodeNSID, Data: []byte("srv")}},
		},
	}

	text, err := FormatMessageJSON(m)
	require.NoError(t, err)

	got, err := ParseMessageJSON([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.True(t, got.Response)
	require.Len(t, got.Answers, 1)
	require.NotNil(t, got.EDNS)
	assert.Equal(t, uint16(4096), got.EDNS.UDPSize)
	require.Len(t, got.EDNS.Options, 1)
	assert.Equal(t, edns.CodeNSID, got.EDNS.Options[0].Code)
}

func TestParseMessageJSONRejectsNonArrayOptions(t *testing.T) {
	_, err := ParseMessageJSON([]byte(`{"id":1,"edns":{"options":{"not":"an array"}}}`))
	assert.Error(t, err)
}
