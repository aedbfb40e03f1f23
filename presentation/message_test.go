package presentation

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dns "github.com/quillresolve/dns"
)

func TestFormatParseMessageRoundTrip(t *testing.T) {
	m := &dns.Message{
		ID:               42,
		Response:         true,
		Authoritative:    true,
		RecursionDesired: true,
		Questions:        []dns.Question{{Name: "example.com.", Type: dns.TypeA, Class: dns.ClassIN}},
		Answers: []dns.Resource{
			{Name: "example.com.", Class: dns.ClassIN, TTL: 300 * time.Second, Record: &dns.A{A: net.IPv4(93, 184, 216, 34)}},
		},
	}

	text, err := FormatMessage(m)
	require.NoError(t, err)

	got, err := ParseMessage(text)
	require.NoError(t, err)

	assert.Equal(t, m.ID, got.ID)
	assert.True(t, got.Response)
	assert.True(t, got.Authoritative)
	assert.True(t, got.RecursionDesired)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "example.com.", got.Questions[0].Name)
	require.Len(t, got.Answers, 1)
	a, ok := got.Answers[0].Record.(*dns.A)
	require.True(t, ok)
	assert.True(t, a.A.Equal(net.IPv4(93, 184, 216, 34)))
}

func TestFormatMessageNXDomain(t *testing.T) {
	m := &dns.Message{
		ID:       7,
		Response: true,
		RCode:    dns.NXDomain,
		Questions: []dns.Question{
			{Name: "idontexist.invalid.", Type: dns.TypeA, Class: dns.ClassIN},
		},
	}
	text, err := FormatMessage(m)
	require.NoError(t, err)

	got, err := ParseMessage(text)
	require.NoError(t, err)
	assert.Equal(t, dns.NXDomain, got.RCode)
}
