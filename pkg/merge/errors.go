package merge

import (
	"fmt"

	"github.com/lindqvist-oss/bkmerge/pkg/guid"
)

// MismatchedItemKindError indicates that a local and remote node sharing the
// same identifier have incompatible kinds (for example, a bookmark on one
// side and a folder on the other). This is unrecoverable: the merger has no
// way to know which side's interpretation of the identifier is correct.
type MismatchedItemKindError struct {
	Local  Kind
	Remote Kind
}

// Error implements error.
func (e *MismatchedItemKindError) Error() string {
	return fmt.Sprintf("mismatched item kind: local is %s, remote is %s", e.Local, e.Remote)
}

// GenerateGuidError indicates that a node was encountered with an invalid
// identifier and the configured Driver declined or failed to repair it.
type GenerateGuidError struct {
	Invalid guid.Guid
	Cause   error
}

// Error implements error.
func (e *GenerateGuidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unable to generate replacement for invalid guid %q: %v", e.Invalid, e.Cause)
	}
	return fmt.Sprintf("unable to generate replacement for invalid guid %q", e.Invalid)
}

// Unwrap supports errors.Is/errors.As against the underlying driver error.
func (e *GenerateGuidError) Unwrap() error {
	return e.Cause
}
