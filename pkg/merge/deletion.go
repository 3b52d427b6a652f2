package merge

import "github.com/lindqvist-oss/bkmerge/pkg/guid"

// Deletion describes a tombstone that the caller must apply on one side
// after a merge.
type Deletion struct {
	// Guid is the identifier being deleted.
	Guid guid.Guid
	// LocalLevel is the deleted node's depth in the local tree, or -1 if
	// the node was never present there.
	LocalLevel int
	// ShouldUploadTombstone is true when the deletion originated locally
	// and the server does not yet have a tombstone for it, and false when
	// it originated remotely, since the server already holds one.
	ShouldUploadTombstone bool
}
