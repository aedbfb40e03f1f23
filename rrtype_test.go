package dns

import "testing"

func TestParseTypeKnownMnemonic(t *testing.T) {
	got, ok := ParseType("AAAA")
	if !ok || got != TypeAAAA {
		t.Fatalf("ParseType(AAAA) = %v, %v; want TypeAAAA, true", got, ok)
	}
}

func TestParseTypeGenericForm(t *testing.T) {
	got, ok := ParseType("TYPE65280")
	if !ok || got != Type(65280) {
		t.Fatalf("ParseType(TYPE65280) = %v, %v; want 65280, true", got, ok)
	}
}

func TestParseTypeUnknown(t *testing.T) {
	if _, ok := ParseType("NOTATYPE"); ok {
		t.Fatal("expected ParseType to reject a non-mnemonic, non-generic name")
	}
}

func TestTypeStringRoundTripsThroughParseType(t *testing.T) {
	for _, ty := range []Type{TypeA, TypeNS, TypeMX, TypeSOA, TypeAAAA, TypeSRV, TypeNSEC3, TypeCAA} {
		s := ty.String()
		got, ok := ParseType(s)
		if !ok || got != ty {
			t.Fatalf("round trip through %q failed: got %v, %v; want %v, true", s, got, ok, ty)
		}
	}
}

func TestTypeStringUnknownUsesGenericForm(t *testing.T) {
	got := Type(65280).String()
	if got != "TYPE65280" {
		t.Fatalf("String() = %q, want TYPE65280", got)
	}
}

func TestParseClassKnownMnemonic(t *testing.T) {
	got, ok := ParseClass("CH")
	if !ok || got != ClassCH {
		t.Fatalf("ParseClass(CH) = %v, %v; want ClassCH, true", got, ok)
	}
}

func TestParseClassGenericForm(t *testing.T) {
	got, ok := ParseClass("CLASS3")
	if !ok || got != Class(3) {
		t.Fatalf("ParseClass(CLASS3) = %v, %v; want 3, true", got, ok)
	}
}

func TestParseClassUnknown(t *testing.T) {
	if _, ok := ParseClass("BOGUS"); ok {
		t.Fatal("expected ParseClass to reject an unrecognized name")
	}
}

func TestRCodeString(t *testing.T) {
	if got := NXDomain.String(); got != "NXDOMAIN" {
		t.Fatalf("RCode.String() = %q, want NXDOMAIN", got)
	}
}
