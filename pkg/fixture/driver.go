package fixture

import (
	"github.com/google/uuid"

	"github.com/lindqvist-oss/bkmerge/pkg/encoding"
	"github.com/lindqvist-oss/bkmerge/pkg/guid"
	"github.com/lindqvist-oss/bkmerge/pkg/merge"
)

// UUIDDriver is a merge.Driver that repairs invalid identifiers by drawing
// fresh randomness from google/uuid rather than the crypto/rand-backed
// generator in pkg/guid. It exists for callers who already depend on
// google/uuid elsewhere and want a single source of randomness.
type UUIDDriver struct{}

// GenerateNewGuid implements merge.Driver.
func (UUIDDriver) GenerateNewGuid(invalid guid.Guid) (guid.Guid, error) {
	generated, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	raw, err := generated.MarshalBinary()
	if err != nil {
		return "", err
	}
	return guid.Guid(encoding.EncodeBase64(raw[:9])), nil
}

var _ merge.Driver = UUIDDriver{}
