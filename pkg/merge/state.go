package merge

import "github.com/lindqvist-oss/bkmerge/pkg/guid"

// MergeStateKind identifies which side's value won for a merged node.
type MergeStateKind uint8

const (
	// MergeStateLocal indicates the local value was taken; if a remote
	// node also exists, it must be replaced with the local value.
	MergeStateLocal MergeStateKind = iota
	// MergeStateRemote indicates the remote value was taken and must be
	// applied locally.
	MergeStateRemote
	// MergeStateUnchanged indicates the node is identical on both sides;
	// no action is required.
	MergeStateUnchanged
)

// String returns a human-readable name for the state kind.
func (k MergeStateKind) String() string {
	switch k {
	case MergeStateLocal:
		return "local"
	case MergeStateRemote:
		return "remote"
	case MergeStateUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MergeState records which side's value a merged node took, the original
// nodes it was built from, and whether its children or identifier diverge
// from the chosen side's own state (NewStructure).
type MergeState struct {
	Kind MergeStateKind
	// Local is the originating local node, present for MergeStateLocal and
	// MergeStateUnchanged, and optionally for MergeStateRemote.
	Local Node
	// Remote is the originating remote node, present for MergeStateRemote
	// and MergeStateUnchanged, and optionally for MergeStateLocal.
	Remote Node
	// NewStructure is true when the merged children, or the merged
	// identifier, differ from the chosen side's original state, meaning
	// the parent record must be reuploaded even though its item value did
	// not change.
	NewStructure bool
}

// WithNewStructure returns a copy of the state with NewStructure set.
// Applying it more than once has the same effect as applying it once.
func (s MergeState) WithNewStructure() MergeState {
	s.NewStructure = true
	return s
}

// LocalMergeState builds a MergeState for an item whose local value won.
// remote may be nil if the node has no remote counterpart.
func LocalMergeState(local, remote Node) MergeState {
	return MergeState{Kind: MergeStateLocal, Local: local, Remote: remote}
}

// RemoteMergeState builds a MergeState for an item whose remote value won.
// local may be nil if the node has no local counterpart.
func RemoteMergeState(local, remote Node) MergeState {
	return MergeState{Kind: MergeStateRemote, Local: local, Remote: remote}
}

// UnchangedMergeState builds a MergeState for an item identical on both
// sides.
func UnchangedMergeState(local, remote Node) MergeState {
	return MergeState{Kind: MergeStateUnchanged, Local: local, Remote: remote}
}

// MergedNode is a single node of the merger's output tree: a canonical
// identifier, the merge state that produced it, and its merged children in
// order. It is built up incrementally during a merge and is not safe to
// observe until Merger.Merge has returned.
type MergedNode struct {
	Guid     guid.Guid
	State    MergeState
	Children []*MergedNode
}
