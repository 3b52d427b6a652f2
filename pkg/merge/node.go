package merge

import (
	"github.com/lindqvist-oss/bkmerge/pkg/guid"
)

// Kind identifies the type of a bookmark tree node.
type Kind uint8

const (
	// KindBookmark is a leaf node pointing at a URL.
	KindBookmark Kind = iota
	// KindQuery is a leaf node representing a saved search; it behaves like
	// a bookmark for merge purposes and is kind-compatible with one.
	KindQuery
	// KindFolder is a container node.
	KindFolder
	// KindLivemark is a container node backed by a remote feed. It is
	// folder-shaped for merge purposes: the node and its children take part
	// in structural merging exactly like a folder and its children.
	KindLivemark
	// KindSeparator is a leaf node with no content, used purely to divide
	// sibling bookmarks visually.
	KindSeparator
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBookmark:
		return "bookmark"
	case KindQuery:
		return "query"
	case KindFolder:
		return "folder"
	case KindLivemark:
		return "livemark"
	case KindSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// HasCompatibleKind reports whether a node of kind k may stand in for a node
// of kind other under the same identifier. The relation is reflexive and
// symmetric. Bookmarks and queries are mutually compatible because both are
// leaf items addressable by URL; every other kind is only compatible with
// itself.
func (k Kind) HasCompatibleKind(other Kind) bool {
	if k == other {
		return true
	}
	leafLike := func(kind Kind) bool { return kind == KindBookmark || kind == KindQuery }
	return leafLike(k) && leafLike(other)
}

// IsFolderLike reports whether nodes of this kind may have children that
// participate in structural merging (folders and livemarks).
func (k Kind) IsFolderLike() bool {
	return k == KindFolder || k == KindLivemark
}

// Node is a read-only view of a single bookmark tree node, borrowed from a
// Tree for the duration of a merge. The merger never mutates a Node.
type Node interface {
	// Guid returns the node's identifier.
	Guid() guid.Guid
	// Kind returns the node's kind.
	Kind() Kind
	// Age returns the node's age; smaller values are newer.
	Age() int
	// NeedsMerge reports whether the node has pending changes on this side
	// since the last successful sync.
	NeedsMerge() bool
	// Diverged reports whether the node's recorded parent pointer
	// disagrees with the tree's canonical structure.
	Diverged() bool
	// IsSyncable reports whether the node is eligible for replication.
	IsSyncable() bool
	// IsUserContentRoot reports whether the node is a distinguished
	// top-level folder (menu, toolbar, and similar) whose title is local
	// policy but whose structure syncs normally.
	IsUserContentRoot() bool
	// IsFolder reports whether the node is folder-shaped for structural
	// merge purposes (folders and livemarks).
	IsFolder() bool
	// IsRoot reports whether the node is the root of its tree.
	IsRoot() bool
	// Level returns the node's depth from its tree's root, or -1 if the
	// node is not attached to a tree.
	Level() int
	// Parent returns the node's parent and true, or a zero value and false
	// if the node is the root.
	Parent() (Node, bool)
	// Children returns the node's children in tree order.
	Children() []Node
}

// Tree is a read-only view of a complete bookmark tree, borrowed by the
// merger for the duration of a merge.
type Tree interface {
	// Root returns the tree's root node.
	Root() Node
	// NodeForGuid looks up a live node by identifier.
	NodeForGuid(g guid.Guid) (Node, bool)
	// IsDeleted reports whether the given identifier is tombstoned.
	IsDeleted(g guid.Guid) bool
	// Deletions returns every tombstoned identifier.
	Deletions() []guid.Guid
	// Guids returns every live identifier in the tree.
	Guids() []guid.Guid
}
