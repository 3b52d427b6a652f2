// Package guid implements the opaque node identifiers used to key bookmarks
// across the local and remote trees.
package guid

import (
	"regexp"

	"github.com/lindqvist-oss/bkmerge/pkg/encoding"
	"github.com/lindqvist-oss/bkmerge/pkg/random"
)

const (
	// randomByteLength is the number of cryptographically random bytes packed
	// into each generated identifier.
	randomByteLength = 9
	// encodedLength is the length, in characters, of an identifier's
	// Base64URL encoding. Nine raw bytes encode to exactly twelve characters
	// with no padding, which is what gives identifiers their familiar
	// twelve-character appearance.
	encodedLength = 12
)

// Guid is an opaque, equality-comparable, hashable node identifier. The zero
// value is not a valid identifier.
type Guid string

// matcher recognizes well-formed identifiers: exactly encodedLength
// characters drawn from the URL-safe Base64 alphabet.
var matcher = regexp.MustCompile(`^[A-Za-z0-9_-]{12}$`)

// New generates a fresh, well-formed, collision-resistant identifier.
func New() (Guid, error) {
	data, err := random.New(randomByteLength)
	if err != nil {
		return "", err
	}
	return Guid(encoding.EncodeBase64(data)), nil
}

// Valid reports whether the identifier is well-formed. Identifiers inherited
// from legacy storage formats (truncated, empty, or containing characters
// outside the Base64URL alphabet) are not valid and must be repaired by a
// Driver before they can take part in a merge.
func (g Guid) Valid() bool {
	return len(g) == encodedLength && matcher.MatchString(string(g))
}

// String implements fmt.Stringer.
func (g Guid) String() string {
	return string(g)
}
