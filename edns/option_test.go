package edns

import (
	"bytes"
	"testing"
)

func TestOptionPackUnpackRoundTrip(t *testing.T) {
	opt := Option{Code: CodeNSID, Data: []byte("server-1")}
	b, err := opt.Pack(nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got Option
	rest, err := got.Unpack(b)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no trailing bytes, got %d", len(rest))
	}
	if got.Code != CodeNSID || !bytes.Equal(got.Data, []byte("server-1")) {
		t.Fatalf("got %+v", got)
	}
	nsid, ok := got.Value.(NSID)
	if !ok || !bytes.Equal(nsid, []byte("server-1")) {
		t.Fatalf("got value %+v, want NSID", got.Value)
	}
}

func TestOptionUnpackTruncated(t *testing.T) {
	var o Option
	if _, err := o.Unpack([]byte{0, 3}); err == nil {
		t.Fatal("expected error for a 2-byte buffer (short header)")
	}

	// Header claims 10 bytes of data but only 2 are present.
	b := []byte{0, 3, 0, 10, 1, 2}
	if _, err := o.Unpack(b); err == nil {
		t.Fatal("expected error when declared length exceeds remaining bytes")
	}
}

func TestCodeIsLocal(t *testing.T) {
	if CodeKeyTag.IsLocal() {
		t.Fatal("CodeKeyTag should not be in the local range")
	}
	if Code(65001).IsLocal() != true {
		t.Fatal("65001 should be in the local range")
	}
	if Code(65534).IsLocal() != true {
		t.Fatal("65534 should be in the local range")
	}
	if Code(65000).IsLocal() {
		t.Fatal("65000 is below the local range")
	}
	if Code(65535).IsLocal() {
		t.Fatal("65535 is above the local range")
	}
}

func TestSubnetPackUnpack(t *testing.T) {
	s := Subnet{Family: 1, SourcePrefix: 24, ScopePrefix: 0, Address: []byte{192, 0, 2, 0}}
	opt := Option{Code: CodeSubnet, Value: s}
	b, err := opt.Pack(nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got Option
	if _, err := got.Unpack(b); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	decoded, ok := got.Value.(Subnet)
	if !ok {
		t.Fatalf("got %T, want Subnet", got.Value)
	}
	if decoded.Family != 1 || decoded.SourcePrefix != 24 || !bytes.Equal(decoded.Address, []byte{192, 0, 2, 0}) {
		t.Fatalf("got %+v", decoded)
	}
}

func TestCookiePackUnpack(t *testing.T) {
	c := Cookie{Server: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	copy(c.Client[:], []byte{0xA, 0xB, 0xC, 0xD, 0xE, 0xF, 0x1, 0x2})
	opt := Option{Code: CodeCookie, Value: c}
	b, err := opt.Pack(nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got Option
	if _, err := got.Unpack(b); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	decoded, ok := got.Value.(Cookie)
	if !ok {
		t.Fatalf("got %T, want Cookie", got.Value)
	}
	if decoded.Client != c.Client || !bytes.Equal(decoded.Server, c.Server) {
		t.Fatalf("got %+v, want %+v", decoded, c)
	}
}

func TestLocalOptionFallback(t *testing.T) {
	opt := Option{Code: Code(65010), Data: []byte{1, 2, 3}}
	b, err := opt.Pack(nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	var got Option
	if _, err := got.Unpack(b); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	local, ok := got.Value.(Local)
	if !ok {
		t.Fatalf("got %T, want Local", got.Value)
	}
	if local.OptCode != Code(65010) || !bytes.Equal(local.Data, []byte{1, 2, 3}) {
		t.Fatalf("got %+v", local)
	}
}

func TestUnrecognizedNonLocalCodeHasNilValue(t *testing.T) {
	opt := Option{Code: Code(4), Data: []byte{0x01}}
	b, err := opt.Pack(nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	var got Option
	if _, err := got.Unpack(b); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if got.Value != nil {
		t.Fatalf("expected nil Value for unrecognized non-local code 4, got %+v", got.Value)
	}
}
