package encoding

import (
	"bytes"
	"testing"
)

// TestBase62RoundTrip tests that encoding and then decoding reproduces the
// original bytes.
func TestBase62RoundTrip(t *testing.T) {
	original := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0xff}

	encoded := EncodeBase62(original)
	for _, r := range encoded {
		if !bytes.ContainsRune([]byte(Base62Alphabet), r) {
			t.Fatalf("encoded output contains character outside the Base62 alphabet: %q", r)
		}
	}

	decoded, err := DecodeBase62(encoded)
	if err != nil {
		t.Fatal("DecodeBase62 failed:", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round-tripped bytes do not match original: %v != %v", decoded, original)
	}
}

// TestBase62DecodeInvalid tests that decoding a string containing characters
// outside the Base62 alphabet fails.
func TestBase62DecodeInvalid(t *testing.T) {
	if _, err := DecodeBase62("not!valid$base62"); err == nil {
		t.Error("expected DecodeBase62 to fail on invalid input")
	}
}
