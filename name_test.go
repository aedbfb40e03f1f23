package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"root", "."},
		{"simple", "example.com."},
		{"long-label-255", longName(t)},
		{"escaped-dot", `a\.b.example.com.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			com := &compressor{}
			b, err := com.Pack(nil, tt.in)
			require.NoError(t, err)

			got, rest, err := decompressor(b).Unpack(b)
			require.NoError(t, err)
			assert.Empty(t, rest)
			assert.True(t, EqualFold(tt.in, got), "got %q want %q", got, tt.in)
		})
	}
}

func TestNameLabelTooLong(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	com := &compressor{}
	_, err := com.Pack(nil, string(long)+".com.")
	assert.ErrorIs(t, err, errLabelTooLong)
}

func TestNameCompressionPointerChase(t *testing.T) {
	com := NewCompressor(0)
	var b []byte
	var err error
	b, err = com.Pack(b, "www.example.com.")
	require.NoError(t, err)
	firstLen := len(b)

	b, err = com.Pack(b, "mail.example.com.")
	require.NoError(t, err)
	assert.Less(t, len(b)-firstLen, len("mail.example.com."), "second name should compress against the first's suffix")

	name1, rest, err := decompressor(b).Unpack(b)
	require.NoError(t, err)
	assert.True(t, EqualFold(name1, "www.example.com."))

	name2, _, err := decompressor(b).Unpack(rest)
	require.NoError(t, err)
	assert.True(t, EqualFold(name2, "mail.example.com."))
}

func TestNamePointerCycleRejected(t *testing.T) {
	// A pointer at offset 0 pointing to itself.
	b := []byte{0xC0, 0x00}
	_, _, err := decompressor(b).Unpack(b)
	assert.Error(t, err)
}

func TestEqualFoldIndependentFolding(t *testing.T) {
	assert.True(t, EqualFold("Example.COM.", "example.com."))
	assert.False(t, EqualFold("Example.COM.", "other.com."))
}

func longName(t *testing.T) string {
	t.Helper()
	// 50 labels of "aaaa" plus "com" and the root label come to exactly
	// 255 octets on the wire, the largest name allowed.
	name := ""
	for i := 0; i < 50; i++ {
		name += "aaaa."
	}
	return name + "com."
}
