// Package tree provides a concrete, arena-backed implementation of the
// merge.Tree and merge.Node interfaces.
//
// Nodes are stored as records in a single slice owned by the Tree and
// referenced by small integer handles rather than pointers, so that
// parent/child relationships never form Go-level reference cycles and a
// constructed Tree is trivially shareable read-only across concurrent
// merges. Trees are built with a Builder and are immutable once built.
package tree
