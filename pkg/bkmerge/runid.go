package bkmerge

import (
	"strings"

	"github.com/lindqvist-oss/bkmerge/pkg/encoding"
	"github.com/lindqvist-oss/bkmerge/pkg/random"
)

const (
	// runIDPrefix tags every run identifier so it's recognizable in logs
	// alongside other bkmerge output.
	runIDPrefix = "mrg_"
	// runIDRandomBytes is the number of random bytes packed into a run
	// identifier.
	runIDRandomBytes = 16
	// runIDTargetLength is the target length for the Base62-encoded
	// portion of a run identifier: the maximum length a runIDRandomBytes
	// byte array can reach in Base62, computed as
	// ceil(n*8*ln(2)/ln(62)).
	runIDTargetLength = 22
)

// NewRunID generates a fresh, collision-resistant identifier for a single
// merge invocation, for correlating CLI output with logs.
func NewRunID() (string, error) {
	data, err := random.New(runIDRandomBytes)
	if err != nil {
		return "", err
	}

	encoded := encoding.EncodeBase62(data)
	if len(encoded) > runIDTargetLength {
		panic("encoded random data length longer than expected")
	}

	builder := &strings.Builder{}
	builder.WriteString(runIDPrefix)
	for i := runIDTargetLength - len(encoded); i > 0; i-- {
		builder.WriteByte(encoding.Base62Alphabet[0])
	}
	builder.WriteString(encoded)

	return builder.String(), nil
}
