package dns

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRoundTrip(t *testing.T) {
	m := &Message{
		ID:               1234,
		Response:         true,
		Authoritative:    true,
		RecursionDesired: true,
		Questions:        []Question{{Name: "example.com.", Type: TypeA, Class: ClassIN}},
		Answers: []Resource{
			{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: net.IPv4(93, 184, 216, 34)}},
		},
		Authorities: []Resource{
			{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &NS{nameRecord{Name: "ns1.example.com."}}},
		},
	}

	wire, err := m.Pack(nil, true, 0)
	require.NoError(t, err)

	got := &Message{}
	rest, err := got.Unpack(wire)
	require.NoError(t, err)
	assert.Empty(t, rest)

	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Response, got.Response)
	assert.Equal(t, m.Authoritative, got.Authoritative)
	require.Len(t, got.Answers, 1)
	a, ok := got.Answers[0].Record.(*A)
	require.True(t, ok)
	assert.True(t, a.A.Equal(net.IPv4(93, 184, 216, 34)))
}

func TestMessageTruncationAtMaxUDPSize(t *testing.T) {
	m := &Message{
		ID:        1,
		Questions: []Question{{Name: "example.com.", Type: TypeTXT, Class: ClassIN}},
	}
	// enough TXT records to overflow a 512-byte budget
	for i := 0; i < 40; i++ {
		m.Answers = append(m.Answers, Resource{
			Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second,
			Record: &TXT{charStringsRecord{Strings: []string{"padding-data-to-grow-the-message-size"}}},
		})
	}

	wire, err := m.Pack(nil, true, 512)
	require.NoError(t, err)

	got := &Message{}
	_, err = got.Unpack(wire)
	require.NoError(t, err)
	assert.True(t, got.Truncated, "message exceeding maxSize should set TC")
}

func TestMessageEDNSExtendedRCodeSplice(t *testing.T) {
	m := &Message{
		ID:        2,
		Questions: []Question{{Name: "example.com.", Type: TypeA, Class: ClassIN}},
		EDNS:      &EDNS{Enabled: true, UDPSize: 4096, Version: 0},
	}
	m.SetFullRCode(int(BadVers) + 16) // force a value needing the extended byte

	wire, err := m.Pack(nil, true, 0)
	require.NoError(t, err)

	got := &Message{}
	_, err = got.Unpack(wire)
	require.NoError(t, err)
	require.NotNil(t, got.EDNS)
	assert.Equal(t, m.FullRCode(), got.FullRCode())
}

func TestMessageAdditionalOrderingOnDecodeIsLenient(t *testing.T) {
	// TSIG-like record placed before an ordinary additional record;
	// decode must accept it (spec §9 Open Question 1) even though
	// encode always re-emits TSIG/SIG0 last.
	m := &Message{
		ID:        3,
		Questions: []Question{{Name: "example.com.", Type: TypeA, Class: ClassIN}},
		Additionals: []Resource{
			{Name: "key.example.com.", Class: ClassANY, TTL: 0, Record: &UNKNOWN{RRType: TypeTSIG, Data: []byte{0}}},
			{Name: "example.com.", Class: ClassIN, TTL: 0, Record: &A{A: net.IPv4(1, 1, 1, 1)}},
		},
	}
	wire, err := m.Pack(nil, true, 0)
	require.NoError(t, err)

	got := &Message{}
	_, err = got.Unpack(wire)
	require.NoError(t, err)
	require.Len(t, got.Additionals, 2)
	assert.Equal(t, TypeTSIG, got.Additionals[0].Record.Type())
	assert.Nil(t, got.TSIG)
}
