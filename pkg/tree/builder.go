package tree

import (
	"fmt"

	"github.com/lindqvist-oss/bkmerge/pkg/guid"
	"github.com/lindqvist-oss/bkmerge/pkg/merge"
)

// NodeSpec describes a node to add to a Tree under construction. IsSyncable
// has no implicit default; callers must set it explicitly for every node.
type NodeSpec struct {
	Guid              guid.Guid
	Kind              merge.Kind
	Age               int
	NeedsMerge        bool
	Diverged          bool
	IsSyncable        bool
	IsUserContentRoot bool
}

// Builder constructs a Tree one node at a time. It is not safe for
// concurrent use; build a tree to completion in a single goroutine and
// then share the resulting *Tree freely.
type Builder struct {
	tree *Tree
}

// NewBuilder starts a new tree with the given root. The root is always
// treated as syncable regardless of spec.IsSyncable.
func NewBuilder(spec NodeSpec) *Builder {
	t := &Tree{
		byGuid:     make(map[guid.Guid]handle),
		tombstones: make(map[guid.Guid]struct{}),
	}
	t.records = append(t.records, record{
		guid:              spec.Guid,
		kind:              spec.Kind,
		age:               spec.Age,
		needsMerge:        spec.NeedsMerge,
		diverged:          spec.Diverged,
		isSyncable:        true,
		isUserContentRoot: spec.IsUserContentRoot,
		level:             0,
		parent:            noParent,
	})
	t.byGuid[spec.Guid] = 0
	return &Builder{tree: t}
}

// AddChild adds spec as a child of the node identified by parent, which
// must already have been added (the root, or a prior AddChild call).
func (b *Builder) AddChild(parent guid.Guid, spec NodeSpec) error {
	parentHandle, ok := b.tree.byGuid[parent]
	if !ok {
		return fmt.Errorf("tree: unknown parent guid %q", parent)
	}
	if _, exists := b.tree.byGuid[spec.Guid]; exists {
		return fmt.Errorf("tree: duplicate guid %q", spec.Guid)
	}

	h := handle(len(b.tree.records))
	b.tree.records = append(b.tree.records, record{
		guid:              spec.Guid,
		kind:              spec.Kind,
		age:               spec.Age,
		needsMerge:        spec.NeedsMerge,
		diverged:          spec.Diverged,
		isSyncable:        spec.IsSyncable,
		isUserContentRoot: spec.IsUserContentRoot,
		level:             b.tree.records[parentHandle].level + 1,
		parent:            parentHandle,
	})
	b.tree.byGuid[spec.Guid] = h
	b.tree.records[parentHandle].children = append(b.tree.records[parentHandle].children, h)
	return nil
}

// Tombstone marks g as deleted in the tree under construction. g need not
// correspond to any node added via AddChild.
func (b *Builder) Tombstone(g guid.Guid) {
	b.tree.tombstones[g] = struct{}{}
}

// Build finalizes and returns the constructed Tree. The Builder must not be
// used afterward.
func (b *Builder) Build() *Tree {
	return b.tree
}
