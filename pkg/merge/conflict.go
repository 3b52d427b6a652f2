package merge

// resolveValueConflict is the pure resolver for a node that exists on both
// sides under the same identifier. It returns which side's item value wins
// and which side's children should be walked first.
func resolveValueConflict(local, remote Node) (itemSide, childrenSide MergeStateKind) {
	if remote.IsRoot() {
		return MergeStateLocal, MergeStateLocal
	}

	switch {
	case local.NeedsMerge() && remote.NeedsMerge():
		localDiverged, remoteDiverged := local.Diverged(), remote.Diverged()
		if localDiverged && !remoteDiverged {
			return MergeStateRemote, MergeStateRemote
		}
		if remoteDiverged && !localDiverged {
			return MergeStateLocal, MergeStateLocal
		}
		if local.Age() < remote.Age() {
			return MergeStateLocal, MergeStateLocal
		}
		if remote.IsUserContentRoot() {
			return MergeStateLocal, MergeStateRemote
		}
		return MergeStateRemote, MergeStateRemote
	case local.NeedsMerge():
		return MergeStateLocal, MergeStateLocal
	case remote.NeedsMerge():
		if remote.IsUserContentRoot() {
			return MergeStateLocal, MergeStateRemote
		}
		return MergeStateRemote, MergeStateRemote
	default:
		return MergeStateUnchanged, MergeStateUnchanged
	}
}

// resolveStructureConflict is the pure resolver used when a child's
// placement disagrees between the local and remote parents that both claim
// it. It returns which side's parentage wins.
func resolveStructureConflict(localParent, localChild, remoteParent, remoteChild Node) MergeStateKind {
	if remoteChild.IsUserContentRoot() {
		return MergeStateLocal
	}

	switch {
	case localParent.NeedsMerge() && remoteParent.NeedsMerge():
		localDiverged, remoteDiverged := localParent.Diverged(), remoteParent.Diverged()
		if localDiverged && !remoteDiverged {
			return MergeStateRemote
		}
		if remoteDiverged && !localDiverged {
			return MergeStateLocal
		}
		localAge := minAge(localChild.Age(), localParent.Age())
		remoteAge := minAge(remoteChild.Age(), remoteParent.Age())
		if localAge < remoteAge {
			return MergeStateLocal
		}
		return MergeStateRemote
	case localParent.NeedsMerge():
		return MergeStateLocal
	case remoteParent.NeedsMerge():
		return MergeStateRemote
	default:
		return MergeStateUnchanged
	}
}

// minAge returns the smaller (newer) of two ages.
func minAge(a, b int) int {
	if a < b {
		return a
	}
	return b
}
