package presentation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dns "github.com/quillresolve/dns"
)

func TestFormatParseRRRoundTrip(t *testing.T) {
	tests := []string{
		"example.com.\t300\tIN\tA\t93.184.216.34",
		"example.com.\t300\tIN\tAAAA\t2606:2800:220:1:248:1893:25c8:1946",
		"example.com.\t300\tIN\tNS\tns1.example.com.",
		"example.com.\t300\tIN\tMX\t10 mail.example.com.",
		`example.com.	300	IN	TXT	"hello world"`,
		"example.com.\t300\tIN\tSOA\tns1.example.com. hostmaster.example.com. 2024010100 7200 3600 1209600 300",
		"example.com.\t300\tIN\tSRV\t10 20 5060 sip.example.com.",
		`example.com.	300	IN	CAA	0 issue "letsencrypt.org"`,
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			rr, err := ParseRR(line)
			require.NoError(t, err)

			formatted, err := FormatRR(rr)
			require.NoError(t, err)

			rr2, err := ParseRR(formatted)
			require.NoError(t, err)
			assert.Equal(t, rr.Record.Type(), rr2.Record.Type())
			assert.Equal(t, rr.TTL, rr2.TTL)
		})
	}
}

func TestNSEC3FormatParseRoundTrip(t *testing.T) {
	rr := dns.Resource{
		Name:  "example.com.",
		Class: dns.ClassIN,
		TTL:   300 * time.Second,
		Record: &dns.NSEC3{
			HashAlgorithm: 1, Flags: 0, Iterations: 1,
			Salt:       []byte{0xAB, 0xCD},
			NextHashed: []byte{0x01, 0x02, 0x03, 0x04},
			TypeBitmap: []dns.Type{dns.TypeA, dns.TypeRRSIG},
		},
	}

	line, err := FormatRR(rr)
	require.NoError(t, err)

	rr2, err := ParseRR(line)
	require.NoError(t, err)
	assert.Equal(t, dns.TypeNSEC3, rr2.Record.Type())
}

func TestParseRRGenericHexForm(t *testing.T) {
	rr, err := ParseRR(`unknown.example.com. 300 IN TYPE65280 \# 4 deadbeef`)
	require.NoError(t, err)
	unk, ok := rr.Record.(*dns.UNKNOWN)
	require.True(t, ok)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, unk.Data)
}

func TestParseRRMalformedLine(t *testing.T) {
	_, err := ParseRR("too few fields")
	assert.Error(t, err)
}
