package merge

import (
	"testing"

	"github.com/lindqvist-oss/bkmerge/pkg/guid"
)

// fakeNode is a minimal Node used to exercise the pure conflict resolvers in
// isolation, without a Tree behind it.
type fakeNode struct {
	guid              guid.Guid
	kind              Kind
	age               int
	needsMerge        bool
	diverged          bool
	isUserContentRoot bool
	isRoot            bool
}

func (n fakeNode) Guid() guid.Guid          { return n.guid }
func (n fakeNode) Kind() Kind               { return n.kind }
func (n fakeNode) Age() int                 { return n.age }
func (n fakeNode) NeedsMerge() bool         { return n.needsMerge }
func (n fakeNode) Diverged() bool           { return n.diverged }
func (n fakeNode) IsSyncable() bool         { return true }
func (n fakeNode) IsUserContentRoot() bool  { return n.isUserContentRoot }
func (n fakeNode) IsFolder() bool           { return n.kind.IsFolderLike() }
func (n fakeNode) IsRoot() bool             { return n.isRoot }
func (n fakeNode) Level() int               { return 0 }
func (n fakeNode) Parent() (Node, bool)     { return nil, false }
func (n fakeNode) Children() []Node         { return nil }

func TestResolveValueConflictRemoteRootAlwaysLocal(t *testing.T) {
	local := fakeNode{guid: "a"}
	remote := fakeNode{guid: "b", isRoot: true}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateLocal || children != MergeStateLocal {
		t.Fatalf("expected (Local, Local) for a remote root, got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictNeitherNeedsMerge(t *testing.T) {
	local := fakeNode{guid: "a"}
	remote := fakeNode{guid: "b"}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateUnchanged || children != MergeStateUnchanged {
		t.Fatalf("expected (Unchanged, Unchanged), got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictOnlyLocalNeedsMerge(t *testing.T) {
	local := fakeNode{guid: "a", needsMerge: true}
	remote := fakeNode{guid: "b"}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateLocal || children != MergeStateLocal {
		t.Fatalf("expected (Local, Local), got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictOnlyRemoteNeedsMerge(t *testing.T) {
	local := fakeNode{guid: "a"}
	remote := fakeNode{guid: "b", needsMerge: true}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateRemote || children != MergeStateRemote {
		t.Fatalf("expected (Remote, Remote), got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictOnlyRemoteNeedsMergeUserContentRoot(t *testing.T) {
	local := fakeNode{guid: "a"}
	remote := fakeNode{guid: "b", needsMerge: true, isUserContentRoot: true}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateLocal || children != MergeStateRemote {
		t.Fatalf("expected (Local, Remote) for a user content root, got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictBothNeedMergeLocalDiverged(t *testing.T) {
	local := fakeNode{guid: "a", needsMerge: true, diverged: true}
	remote := fakeNode{guid: "b", needsMerge: true}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateRemote || children != MergeStateRemote {
		t.Fatalf("expected (Remote, Remote) when only local diverged, got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictBothNeedMergeRemoteDiverged(t *testing.T) {
	local := fakeNode{guid: "a", needsMerge: true}
	remote := fakeNode{guid: "b", needsMerge: true, diverged: true}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateLocal || children != MergeStateLocal {
		t.Fatalf("expected (Local, Local) when only remote diverged, got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictBothNeedMergeLocalNewer(t *testing.T) {
	local := fakeNode{guid: "a", needsMerge: true, age: 1}
	remote := fakeNode{guid: "b", needsMerge: true, age: 5}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateLocal || children != MergeStateLocal {
		t.Fatalf("expected (Local, Local) when local is newer, got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictBothNeedMergeTieGoesToRemote(t *testing.T) {
	local := fakeNode{guid: "a", needsMerge: true, age: 5}
	remote := fakeNode{guid: "b", needsMerge: true, age: 5}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateRemote || children != MergeStateRemote {
		t.Fatalf("expected a same-age tie to favor remote, got (%v, %v)", item, children)
	}
}

func TestResolveValueConflictBothNeedMergeRemoteNewerUserContentRoot(t *testing.T) {
	local := fakeNode{guid: "a", needsMerge: true, age: 5}
	remote := fakeNode{guid: "b", needsMerge: true, age: 1, isUserContentRoot: true}
	item, children := resolveValueConflict(local, remote)
	if item != MergeStateLocal || children != MergeStateRemote {
		t.Fatalf("expected (Local, Remote) for a user content root, got (%v, %v)", item, children)
	}
}

func TestResolveStructureConflictUserContentRootAlwaysLocal(t *testing.T) {
	localParent := fakeNode{guid: "lp"}
	localChild := fakeNode{guid: "lc"}
	remoteParent := fakeNode{guid: "rp"}
	remoteChild := fakeNode{guid: "rc", isUserContentRoot: true}
	if side := resolveStructureConflict(localParent, localChild, remoteParent, remoteChild); side != MergeStateLocal {
		t.Fatalf("expected Local for a user content root child, got %v", side)
	}
}

func TestResolveStructureConflictNeitherParentNeedsMerge(t *testing.T) {
	localParent := fakeNode{guid: "lp"}
	localChild := fakeNode{guid: "lc"}
	remoteParent := fakeNode{guid: "rp"}
	remoteChild := fakeNode{guid: "rc"}
	if side := resolveStructureConflict(localParent, localChild, remoteParent, remoteChild); side != MergeStateUnchanged {
		t.Fatalf("expected Unchanged, got %v", side)
	}
}

func TestResolveStructureConflictOnlyLocalParentNeedsMerge(t *testing.T) {
	localParent := fakeNode{guid: "lp", needsMerge: true}
	localChild := fakeNode{guid: "lc"}
	remoteParent := fakeNode{guid: "rp"}
	remoteChild := fakeNode{guid: "rc"}
	if side := resolveStructureConflict(localParent, localChild, remoteParent, remoteChild); side != MergeStateLocal {
		t.Fatalf("expected Local, got %v", side)
	}
}

func TestResolveStructureConflictOnlyRemoteParentNeedsMerge(t *testing.T) {
	localParent := fakeNode{guid: "lp"}
	localChild := fakeNode{guid: "lc"}
	remoteParent := fakeNode{guid: "rp", needsMerge: true}
	remoteChild := fakeNode{guid: "rc"}
	if side := resolveStructureConflict(localParent, localChild, remoteParent, remoteChild); side != MergeStateRemote {
		t.Fatalf("expected Remote, got %v", side)
	}
}

func TestResolveStructureConflictBothNeedMergeUsesMinAge(t *testing.T) {
	localParent := fakeNode{guid: "lp", needsMerge: true, age: 9}
	localChild := fakeNode{guid: "lc", age: 1}
	remoteParent := fakeNode{guid: "rp", needsMerge: true, age: 9}
	remoteChild := fakeNode{guid: "rc", age: 8}
	if side := resolveStructureConflict(localParent, localChild, remoteParent, remoteChild); side != MergeStateLocal {
		t.Fatalf("expected Local when the local child is the newest record, got %v", side)
	}
}

func TestResolveStructureConflictBothNeedMergeLocalParentDiverged(t *testing.T) {
	localParent := fakeNode{guid: "lp", needsMerge: true, diverged: true, age: 1}
	localChild := fakeNode{guid: "lc", age: 1}
	remoteParent := fakeNode{guid: "rp", needsMerge: true, age: 1}
	remoteChild := fakeNode{guid: "rc", age: 1}
	if side := resolveStructureConflict(localParent, localChild, remoteParent, remoteChild); side != MergeStateRemote {
		t.Fatalf("expected Remote when only the local parent diverged, got %v", side)
	}
}
