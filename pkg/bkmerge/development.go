package bkmerge

import "os"

// DevelopmentModeEnabled controls whether or not development mode is enabled.
// It is set automatically based on the BKMERGE_DEVELOPMENT environment
// variable. The merge command treats it like --repair-with-uuid, repairing
// invalid identifiers instead of refusing the merge outright.
var DevelopmentModeEnabled bool

func init() {
	DevelopmentModeEnabled = os.Getenv("BKMERGE_DEVELOPMENT") == "1"
}
