package transform

import (
	"bytes"
	"testing"
)

// TestHexRoundTripS5 exercises spec scenario S5.
func TestHexRoundTripS5(t *testing.T) {
	input := []byte("48656c6C6F2c20776f726c64")
	h := Hex{}

	decoded, err := h.Transform(input)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if string(decoded) != "Hello, world" {
		t.Fatalf("Transform = %q, want %q", decoded, "Hello, world")
	}

	reencoded, err := h.Untransform(decoded)
	if err != nil {
		t.Fatalf("Untransform: %v", err)
	}
	if string(reencoded) != "48656c6c6f2c20776f726c64" {
		t.Fatalf("Untransform = %q, want lowercase-normalized original", reencoded)
	}
	if len(reencoded) != len(input) {
		t.Fatalf("len(reencoded) = %d, want %d", len(reencoded), len(input))
	}
}

func roundTripLengthInvariant(t *testing.T, name string, tr Transformation, x []byte) {
	t.Helper()
	if !tr.IsTwoWay() {
		t.Fatalf("%s: not two-way", name)
	}
	transformed, err := tr.Transform(x)
	if err != nil {
		t.Fatalf("%s: Transform(x): %v", name, err)
	}
	untransformed, err := tr.Untransform(transformed)
	if err != nil {
		t.Fatalf("%s: Untransform(Transform(x)): %v", name, err)
	}
	if len(untransformed) != len(x) {
		t.Fatalf("%s: len(untransform(transform(x))) = %d, want %d", name, len(untransformed), len(x))
	}
	transformedAgain, err := tr.Transform(untransformed)
	if err != nil {
		t.Fatalf("%s: Transform(untransform(transform(x))): %v", name, err)
	}
	if !bytes.Equal(transformedAgain, transformed) {
		t.Fatalf("%s: transform(untransform(transform(x))) != transform(x)", name)
	}
}

func TestTwoWayLengthInvariants(t *testing.T) {
	roundTripLengthInvariant(t, "hex", Hex{}, []byte("deadbeef00112233"))
	roundTripLengthInvariant(t, "base64", Base64{}, []byte("SGVsbG8sIHdvcmxkIQ=="))
	roundTripLengthInvariant(t, "base32", Base32{}, []byte("JBSWY3DPEBLW64TMMQ======"))
	roundTripLengthInvariant(t, "xor", XorByConstant{Constant: 0xFF}, []byte("some raw bytes to scramble"))
	roundTripLengthInvariant(t, "bit_reverse", BitReverse{}, []byte{0x01, 0x80, 0xF0, 0x0F})
}

func TestDeflateRoundTrip(t *testing.T) {
	d := Deflate{}
	raw := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again")
	compressed, err := d.Untransform(raw)
	if err != nil {
		t.Fatalf("Untransform(raw): %v", err)
	}
	roundTripLengthInvariant(t, "deflate", d, compressed)

	decompressed, err := d.Transform(compressed)
	if err != nil {
		t.Fatalf("Transform(compressed): %v", err)
	}
	if !bytes.Equal(decompressed, raw) {
		t.Fatalf("decompressed = %q, want %q", decompressed, raw)
	}
}

func TestSnappyRoundTrip(t *testing.T) {
	s := Snappy{}
	raw := []byte("snappy round trip test data, repeated repeated repeated")
	compressed, err := s.Untransform(raw)
	if err != nil {
		t.Fatalf("Untransform(raw): %v", err)
	}
	decompressed, err := s.Transform(compressed)
	if err != nil {
		t.Fatalf("Transform(compressed): %v", err)
	}
	if !bytes.Equal(decompressed, raw) {
		t.Fatalf("decompressed = %q, want %q", decompressed, raw)
	}
}

func TestDetectRanksBySpecificity(t *testing.T) {
	reg := NewRegistry()
	got := reg.Detect([]byte("deadbeef"))
	if len(got) == 0 {
		t.Fatal("expected at least one match")
	}
	if got[0].Name() != "hex" {
		t.Fatalf("first match = %s, want hex", got[0].Name())
	}
}

func TestCanTransformRejectsBadHex(t *testing.T) {
	h := Hex{}
	if h.CanTransform([]byte("abc")) {
		t.Fatal("odd-length hex should be rejected")
	}
	if h.CanTransform([]byte("zzzz")) {
		t.Fatal("non-hex chars should be rejected")
	}
}
