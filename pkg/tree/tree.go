package tree

import (
	"github.com/lindqvist-oss/bkmerge/pkg/guid"
	"github.com/lindqvist-oss/bkmerge/pkg/merge"
)

// handle is an arena index. The zero value refers to the root, which is
// always the first node added by a Builder.
type handle int

// noParent marks a record with no parent (the root).
const noParent handle = -1

// record is a single node's storage in the arena.
type record struct {
	guid              guid.Guid
	kind              merge.Kind
	age               int
	needsMerge        bool
	diverged          bool
	isSyncable        bool
	isUserContentRoot bool
	level             int
	parent            handle
	children          []handle
}

// Tree is an immutable, arena-backed implementation of merge.Tree. Build
// one with a Builder.
type Tree struct {
	records    []record
	byGuid     map[guid.Guid]handle
	tombstones map[guid.Guid]struct{}
}

// Root implements merge.Tree.
func (t *Tree) Root() merge.Node {
	return node{tree: t, h: 0}
}

// NodeForGuid implements merge.Tree.
func (t *Tree) NodeForGuid(g guid.Guid) (merge.Node, bool) {
	h, ok := t.byGuid[g]
	if !ok {
		return nil, false
	}
	return node{tree: t, h: h}, true
}

// IsDeleted implements merge.Tree.
func (t *Tree) IsDeleted(g guid.Guid) bool {
	_, ok := t.tombstones[g]
	return ok
}

// Deletions implements merge.Tree.
func (t *Tree) Deletions() []guid.Guid {
	guids := make([]guid.Guid, 0, len(t.tombstones))
	for g := range t.tombstones {
		guids = append(guids, g)
	}
	return guids
}

// Guids implements merge.Tree.
func (t *Tree) Guids() []guid.Guid {
	guids := make([]guid.Guid, 0, len(t.records))
	for _, r := range t.records {
		guids = append(guids, r.guid)
	}
	return guids
}

// node is a thin handle into a Tree's arena; it implements merge.Node.
type node struct {
	tree *Tree
	h    handle
}

func (n node) record() *record {
	return &n.tree.records[n.h]
}

// Guid implements merge.Node.
func (n node) Guid() guid.Guid { return n.record().guid }

// Kind implements merge.Node.
func (n node) Kind() merge.Kind { return n.record().kind }

// Age implements merge.Node.
func (n node) Age() int { return n.record().age }

// NeedsMerge implements merge.Node.
func (n node) NeedsMerge() bool { return n.record().needsMerge }

// Diverged implements merge.Node.
func (n node) Diverged() bool { return n.record().diverged }

// IsSyncable implements merge.Node.
func (n node) IsSyncable() bool { return n.record().isSyncable }

// IsUserContentRoot implements merge.Node.
func (n node) IsUserContentRoot() bool { return n.record().isUserContentRoot }

// IsFolder implements merge.Node.
func (n node) IsFolder() bool { return n.record().kind.IsFolderLike() }

// IsRoot implements merge.Node.
func (n node) IsRoot() bool { return n.h == 0 }

// Level implements merge.Node.
func (n node) Level() int { return n.record().level }

// Parent implements merge.Node.
func (n node) Parent() (merge.Node, bool) {
	p := n.record().parent
	if p == noParent {
		return nil, false
	}
	return node{tree: n.tree, h: p}, true
}

// Children implements merge.Node.
func (n node) Children() []merge.Node {
	childHandles := n.record().children
	children := make([]merge.Node, len(childHandles))
	for i, h := range childHandles {
		children[i] = node{tree: n.tree, h: h}
	}
	return children
}
