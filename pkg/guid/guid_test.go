package guid

import (
	"testing"
)

// TestNewProducesValidIdentifiers tests that New always returns an
// identifier that Valid accepts.
func TestNewProducesValidIdentifiers(t *testing.T) {
	for i := 0; i < 64; i++ {
		g, err := New()
		if err != nil {
			t.Fatal("unable to create identifier:", err)
		}
		if !g.Valid() {
			t.Error("generated identifier is not valid:", g)
		}
		if len(g) != encodedLength {
			t.Error("generated identifier has unexpected length:", len(g))
		}
	}
}

// TestNewIsCollisionResistant tests that repeated calls to New don't produce
// duplicate identifiers (a weak but useful smoke test).
func TestNewIsCollisionResistant(t *testing.T) {
	seen := make(map[Guid]bool)
	for i := 0; i < 256; i++ {
		g, err := New()
		if err != nil {
			t.Fatal("unable to create identifier:", err)
		}
		if seen[g] {
			t.Fatal("duplicate identifier generated:", g)
		}
		seen[g] = true
	}
}

// TestValid tests that Valid behaves correctly for an assortment of values.
func TestValid(t *testing.T) {
	testCases := []struct {
		value       Guid
		expectValid bool
	}{
		{"", false},
		{"abc", false},
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"{8a9cd62c-8c7}", false},
		{"toolongoolong", false},
		{"has spaces!!", false},
		{"bookmarkBar0", true},
		{"AbC123-_xyzQ", true},
	}

	for _, testCase := range testCases {
		if valid := testCase.value.Valid(); valid != testCase.expectValid {
			t.Errorf("Valid(%q) = %v, expected %v", testCase.value, valid, testCase.expectValid)
		}
	}
}
