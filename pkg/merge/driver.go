package merge

import (
	"errors"

	"github.com/lindqvist-oss/bkmerge/pkg/guid"
)

// Driver repairs identifiers that fail validation before they can take part
// in a merge. Implementations are supplied by the caller; this is the only
// point at which the merger generates new identifiers, and it never does so
// on its own.
type Driver interface {
	// GenerateNewGuid is asked to produce a replacement for invalid. It may
	// return invalid unchanged (pass-through), a freshly generated guid, or
	// an error to abort the merge.
	GenerateNewGuid(invalid guid.Guid) (guid.Guid, error)
}

// errRefusedInvalidGuid is returned by DefaultDriver.
var errRefusedInvalidGuid = errors.New("default driver refuses to repair invalid guids")

// defaultDriver is the zero-configuration Driver used when a caller does not
// supply one. It refuses every request, so a merge encountering an invalid
// guid without an explicit Driver fails with GenerateGuidError.
type defaultDriver struct{}

// GenerateNewGuid implements Driver.
func (defaultDriver) GenerateNewGuid(guid.Guid) (guid.Guid, error) {
	return "", errRefusedInvalidGuid
}

// DefaultDriver is the Driver used by New and WithContents.
var DefaultDriver Driver = defaultDriver{}

// randomDriver repairs invalid identifiers by generating fresh ones with
// pkg/guid's own crypto/rand-backed generator.
type randomDriver struct{}

// GenerateNewGuid implements Driver.
func (randomDriver) GenerateNewGuid(guid.Guid) (guid.Guid, error) {
	return guid.New()
}

// RandomDriver is a Driver that repairs invalid identifiers by generating
// fresh ones rather than refusing the merge. It's the natural choice for
// callers who don't already depend on another source of randomness (see
// pkg/fixture.UUIDDriver for one that draws on google/uuid instead).
var RandomDriver Driver = randomDriver{}
