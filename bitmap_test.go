package dns

import "testing"

func TestBitmapRoundTrip(t *testing.T) {
	in := []Type{TypeA, TypeNS, TypeSOA, TypeMX, TypeAAAA, TypeRRSIG, TypeDNSKEY, 1234}
	got, err := FromBitmap(ToBitmap(in))
	if err != nil {
		t.Fatalf("FromBitmap: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %d types, want %d: %v", len(got), len(in), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("types not strictly increasing at %d: %v", i, got)
		}
	}
	want := map[Type]bool{}
	for _, ty := range in {
		want[ty] = true
	}
	for _, ty := range got {
		if !want[ty] {
			t.Fatalf("unexpected type in decoded bitmap: %v", ty)
		}
	}
}

func TestBitmapDeduplicatesAndSorts(t *testing.T) {
	got, err := FromBitmap(ToBitmap([]Type{TypeMX, TypeA, TypeA, TypeNS}))
	if err != nil {
		t.Fatalf("FromBitmap: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 distinct types", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("not sorted: %v", got)
		}
	}
}

func TestBitmapWindowOrderRejected(t *testing.T) {
	// Two windows, second one out of order (0 after 1).
	b := []byte{1, 1, 0x80, 0, 1, 0x80}
	if _, err := FromBitmap(b); err == nil {
		t.Fatal("expected error for out-of-order windows")
	}
}

func TestBitmapLengthOutOfRange(t *testing.T) {
	b := []byte{0, 33}
	if _, err := FromBitmap(b); err == nil {
		t.Fatal("expected error for window length > 32")
	}
	b = []byte{0, 0}
	if _, err := FromBitmap(b); err == nil {
		t.Fatal("expected error for window length 0")
	}
}

func TestBitmapTruncated(t *testing.T) {
	if _, err := FromBitmap([]byte{0, 4, 0x80}); err == nil {
		t.Fatal("expected error for truncated window body")
	}
	if _, err := FromBitmap([]byte{0}); err == nil {
		t.Fatal("expected error for truncated window header")
	}
}

func TestHasType(t *testing.T) {
	b := ToBitmap([]Type{TypeA, TypeAAAA, TypeNS})
	if !HasType(b, TypeA) {
		t.Fatal("expected HasType(A) to be true")
	}
	if !HasType(b, TypeAAAA) {
		t.Fatal("expected HasType(AAAA) to be true")
	}
	if HasType(b, TypeMX) {
		t.Fatal("expected HasType(MX) to be false")
	}
	if HasType(nil, TypeA) {
		t.Fatal("expected HasType on empty bitmap to be false")
	}
}
