package bkmerge

import "os"

// DebugEnabled controls whether or not debug-level logging is enabled. It is
// set automatically based on the BKMERGE_DEBUG environment variable.
var DebugEnabled bool

func init() {
	DebugEnabled = os.Getenv("BKMERGE_DEBUG") == "1"
}
