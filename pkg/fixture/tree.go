package fixture

import (
	"fmt"

	"github.com/lindqvist-oss/bkmerge/pkg/encoding"
	"github.com/lindqvist-oss/bkmerge/pkg/guid"
	"github.com/lindqvist-oss/bkmerge/pkg/merge"
	"github.com/lindqvist-oss/bkmerge/pkg/tree"
)

// node is the YAML shape of a single bookmark tree node. It mirrors
// tree.NodeSpec but uses a pointer for Syncable so that an omitted field
// defaults to true rather than false, which is the common case for fixtures
// that don't care about exercising deletion edge cases.
type node struct {
	Guid             string `yaml:"guid"`
	Kind             string `yaml:"kind"`
	Age              int    `yaml:"age"`
	NeedsMerge       bool   `yaml:"needsMerge"`
	Diverged         bool   `yaml:"diverged"`
	Syncable         *bool  `yaml:"syncable"`
	UserContentRoot  bool   `yaml:"userContentRoot"`
	Content          string `yaml:"content"`
	Children         []node `yaml:"children"`
}

// document is the YAML shape of a complete fixture: one tree plus the
// identifiers it considers tombstoned.
type document struct {
	Root       node     `yaml:"root"`
	Tombstones []string `yaml:"tombstones"`
}

// Load reads a YAML fixture from path and builds the Tree and content index
// it describes.
func Load(path string) (*tree.Tree, map[guid.Guid]string, error) {
	var doc document
	if err := encoding.LoadAndUnmarshalYAML(path, &doc); err != nil {
		return nil, nil, fmt.Errorf("unable to load fixture %q: %w", path, err)
	}

	rootSpec, err := specFor(doc.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("fixture %q: root: %w", path, err)
	}

	builder := tree.NewBuilder(rootSpec)
	contents := make(map[guid.Guid]string)
	if doc.Root.Content != "" {
		contents[guid.Guid(doc.Root.Guid)] = doc.Root.Content
	}

	if err := addChildren(builder, guid.Guid(doc.Root.Guid), doc.Root.Children, contents); err != nil {
		return nil, nil, fmt.Errorf("fixture %q: %w", path, err)
	}

	for _, tombstoned := range doc.Tombstones {
		builder.Tombstone(guid.Guid(tombstoned))
	}

	return builder.Build(), contents, nil
}

// addChildren recursively adds every descendant of a YAML node to builder,
// recording content fingerprints along the way.
func addChildren(builder *tree.Builder, parent guid.Guid, children []node, contents map[guid.Guid]string) error {
	for _, child := range children {
		spec, err := specFor(child)
		if err != nil {
			return fmt.Errorf("node %q: %w", child.Guid, err)
		}
		if err := builder.AddChild(parent, spec); err != nil {
			return err
		}
		if child.Content != "" {
			contents[guid.Guid(child.Guid)] = child.Content
		}
		if err := addChildren(builder, guid.Guid(child.Guid), child.Children, contents); err != nil {
			return err
		}
	}
	return nil
}

// specFor converts a YAML node into a tree.NodeSpec.
func specFor(n node) (tree.NodeSpec, error) {
	kind, err := parseKind(n.Kind)
	if err != nil {
		return tree.NodeSpec{}, err
	}
	syncable := true
	if n.Syncable != nil {
		syncable = *n.Syncable
	}
	return tree.NodeSpec{
		Guid:              guid.Guid(n.Guid),
		Kind:              kind,
		Age:               n.Age,
		NeedsMerge:        n.NeedsMerge,
		Diverged:          n.Diverged,
		IsSyncable:        syncable,
		IsUserContentRoot: n.UserContentRoot,
	}, nil
}

// parseKind converts a YAML kind name into a merge.Kind. An empty string
// defaults to bookmark, the most common leaf kind in hand-authored fixtures.
func parseKind(name string) (merge.Kind, error) {
	switch name {
	case "", "bookmark":
		return merge.KindBookmark, nil
	case "query":
		return merge.KindQuery, nil
	case "folder":
		return merge.KindFolder, nil
	case "livemark":
		return merge.KindLivemark, nil
	case "separator":
		return merge.KindSeparator, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", name)
	}
}
