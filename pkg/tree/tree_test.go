package tree

import (
	"testing"

	"github.com/lindqvist-oss/bkmerge/pkg/merge"
)

const (
	tR  = "root000000R"
	tF1 = "folder0001F"
	tX  = "bookmark01X"
)

func buildSimpleTree(t *testing.T) *Tree {
	t.Helper()
	b := NewBuilder(NodeSpec{Guid: tR, Kind: merge.KindFolder})
	if err := b.AddChild(tR, NodeSpec{Guid: tF1, Kind: merge.KindFolder, IsSyncable: true}); err != nil {
		t.Fatal("unable to add folder:", err)
	}
	if err := b.AddChild(tF1, NodeSpec{Guid: tX, Kind: merge.KindBookmark, IsSyncable: true}); err != nil {
		t.Fatal("unable to add bookmark:", err)
	}
	b.Tombstone("deleted0000X")
	return b.Build()
}

// TestTreeStructure verifies basic navigation: root, lookup, levels, and
// parent/child relationships.
func TestTreeStructure(t *testing.T) {
	tr := buildSimpleTree(t)

	root := tr.Root()
	if root.Guid() != tR {
		t.Fatalf("root guid mismatch: %v != %v", root.Guid(), tR)
	}
	if !root.IsRoot() {
		t.Error("root should report IsRoot")
	}
	if root.Level() != 0 {
		t.Error("root level should be 0, got", root.Level())
	}
	if _, hasParent := root.Parent(); hasParent {
		t.Error("root should have no parent")
	}

	folder, ok := tr.NodeForGuid(tF1)
	if !ok {
		t.Fatal("expected to find folder by guid")
	}
	if folder.Level() != 1 {
		t.Error("folder level should be 1, got", folder.Level())
	}
	parent, hasParent := folder.Parent()
	if !hasParent || parent.Guid() != tR {
		t.Error("folder parent should be root")
	}
	if !folder.IsFolder() {
		t.Error("folder should report IsFolder")
	}

	bookmark, ok := tr.NodeForGuid(tX)
	if !ok {
		t.Fatal("expected to find bookmark by guid")
	}
	if bookmark.Level() != 2 {
		t.Error("bookmark level should be 2, got", bookmark.Level())
	}
	if bookmark.IsFolder() {
		t.Error("bookmark should not report IsFolder")
	}

	children := root.Children()
	if len(children) != 1 || children[0].Guid() != tF1 {
		t.Error("root should have exactly one child, the folder")
	}
}

// TestTreeDeletions verifies tombstone tracking.
func TestTreeDeletions(t *testing.T) {
	tr := buildSimpleTree(t)
	if !tr.IsDeleted("deleted0000X") {
		t.Error("expected tombstoned guid to report deleted")
	}
	if tr.IsDeleted(tX) {
		t.Error("live guid should not report deleted")
	}
	deletions := tr.Deletions()
	if len(deletions) != 1 || deletions[0] != "deleted0000X" {
		t.Error("unexpected deletions list:", deletions)
	}
}

// TestTreeGuids verifies enumeration of every live identifier.
func TestTreeGuids(t *testing.T) {
	tr := buildSimpleTree(t)
	guids := tr.Guids()
	if len(guids) != 3 {
		t.Fatalf("expected 3 live guids, got %d", len(guids))
	}
}

// TestBuilderRejectsUnknownParent verifies that AddChild fails with an
// unregistered parent guid.
func TestBuilderRejectsUnknownParent(t *testing.T) {
	b := NewBuilder(NodeSpec{Guid: tR, Kind: merge.KindFolder})
	if err := b.AddChild("nope00000000", NodeSpec{Guid: tX, Kind: merge.KindBookmark}); err == nil {
		t.Error("expected error for unknown parent")
	}
}

// TestBuilderRejectsDuplicateGuid verifies that AddChild fails if the guid
// was already used.
func TestBuilderRejectsDuplicateGuid(t *testing.T) {
	b := NewBuilder(NodeSpec{Guid: tR, Kind: merge.KindFolder})
	if err := b.AddChild(tR, NodeSpec{Guid: tF1, Kind: merge.KindFolder}); err != nil {
		t.Fatal(err)
	}
	if err := b.AddChild(tR, NodeSpec{Guid: tF1, Kind: merge.KindFolder}); err == nil {
		t.Error("expected error for duplicate guid")
	}
}
