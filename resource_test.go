package dns

import (
	"net"
	"testing"
	"time"
)

func TestResourcePackUnpackRoundTrip(t *testing.T) {
	r := Resource{
		Name:  "example.com.",
		Class: ClassIN,
		TTL:   300 * time.Second,
		Record: &A{A: net.IPv4(93, 184, 216, 34)},
	}

	b, err := r.Pack(nil, &compressor{})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got Resource
	rest, err := got.Unpack(b, decompressor(b))
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no trailing bytes, got %d", len(rest))
	}
	if got.Name != r.Name || got.Class != r.Class || got.TTL != r.TTL {
		t.Fatalf("got %+v, want %+v", got, r)
	}
	a, ok := got.Record.(*A)
	if !ok || !a.A.Equal(net.IPv4(93, 184, 216, 34)) {
		t.Fatalf("got record %+v", got.Record)
	}
}

func TestResourceUnpackRejectsUnderReadRData(t *testing.T) {
	r := Resource{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: net.IPv4(1, 2, 3, 4)}}
	b, err := r.Pack(nil, &compressor{})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	namePacked, err := (&compressor{}).Pack(nil, "example.com.")
	if err != nil {
		t.Fatalf("Pack name: %v", err)
	}
	rdlenOff := len(namePacked) + 8 // type(2) + class(2) + ttl(4), then rdlength(2)

	// Inflate the declared rdlength by one byte beyond what A.Unpack
	// will actually consume, simulating a hostile/corrupt record.
	corrupt := append(append([]byte(nil), b...), 0x00)
	nbo.PutUint16(corrupt[rdlenOff:rdlenOff+2], 5)

	var got Resource
	if _, err := got.Unpack(corrupt, decompressor(corrupt)); err == nil {
		t.Fatal("expected error when rdata is under-consumed by the type decoder")
	}
}

func TestResourceUnpackRejectsTruncatedRData(t *testing.T) {
	r := Resource{Name: "example.com.", Class: ClassIN, TTL: 300 * time.Second, Record: &A{A: net.IPv4(1, 2, 3, 4)}}
	b, err := r.Pack(nil, &compressor{})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	truncated := b[:len(b)-2]
	var got Resource
	if _, err := got.Unpack(truncated, decompressor(truncated)); err == nil {
		t.Fatal("expected error when declared rdlength exceeds remaining bytes")
	}
}

func TestResourceUnpackFallsBackToUnknownForUnregisteredType(t *testing.T) {
	r := Resource{
		Name:  "example.com.",
		Class: ClassIN,
		TTL:   300 * time.Second,
		Record: &UNKNOWN{RRType: Type(65280), Data: []byte{0xde, 0xad, 0xbe, 0xef}},
	}
	b, err := r.Pack(nil, &compressor{})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got Resource
	if _, err := got.Unpack(b, decompressor(b)); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	u, ok := got.Record.(*UNKNOWN)
	if !ok {
		t.Fatalf("got %T, want *UNKNOWN", got.Record)
	}
	if string(u.Data) != "\xde\xad\xbe\xef" {
		t.Fatalf("got data %x", u.Data)
	}
}

func TestQuestionPackUnpackRoundTrip(t *testing.T) {
	q := Question{Name: "example.com.", Type: TypeMX, Class: ClassIN}
	b, err := q.Pack(nil, &compressor{})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	var got Question
	rest, err := got.Unpack(b, decompressor(b))
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no trailing bytes, got %d", len(rest))
	}
	if got != q {
		t.Fatalf("got %+v, want %+v", got, q)
	}
}
