package merge

import (
	"errors"

	"github.com/lindqvist-oss/bkmerge/pkg/guid"
)

// errAlreadyMerged is returned by a second call to Merge on the same
// instance. The specification leaves this behavior unspecified; returning
// an error rather than silently recomputing or panicking is the safer
// choice for library code.
var errAlreadyMerged = errors.New("merge: Merge was already called on this instance")

// structureOutcome is the result of the structure-change detector (§4.6).
type structureOutcome uint8

const (
	structureUnchanged structureOutcome = iota
	structureMoved
	structureDeleted
)

// remappedNode wraps a Node whose invalid identifier was repaired by a
// Driver, substituting the replacement guid while deferring every other
// attribute to the original node.
type remappedNode struct {
	Node
	guid guid.Guid
}

// Guid implements Node, overriding the wrapped node's identifier.
func (r remappedNode) Guid() guid.Guid {
	return r.guid
}

// Merger performs a single two-way merge of a local and remote Tree. C is
// the content-fingerprint type supplied by the caller for dedup; callers
// that never enable dedup can instantiate with any comparable type (string
// is a natural default).
//
// A Merger is single-use: Merge must be called exactly once.
type Merger[C comparable] struct {
	local, remote                 Tree
	localContents, remoteContents map[guid.Guid]C
	driver                        Driver

	mergedGuids    map[guid.Guid]struct{}
	deleteLocally  map[guid.Guid]struct{}
	deleteRemotely map[guid.Guid]struct{}
	dedup          map[guid.Guid]*dedupEntry
	counts         StructureCounts
	merged         bool
}

// New creates a Merger with no content indices (dedup disabled) and the
// default Driver, which refuses to repair invalid identifiers.
func New[C comparable](local, remote Tree) *Merger[C] {
	return WithDriver[C](DefaultDriver, local, nil, remote, nil)
}

// WithContents creates a Merger with content indices enabling dedup and the
// default Driver.
func WithContents[C comparable](local Tree, localContents map[guid.Guid]C, remote Tree, remoteContents map[guid.Guid]C) *Merger[C] {
	return WithDriver[C](DefaultDriver, local, localContents, remote, remoteContents)
}

// WithDriver creates a Merger with content indices and a caller-supplied
// Driver for repairing invalid identifiers.
func WithDriver[C comparable](driver Driver, local Tree, localContents map[guid.Guid]C, remote Tree, remoteContents map[guid.Guid]C) *Merger[C] {
	if driver == nil {
		driver = DefaultDriver
	}
	return &Merger[C]{
		local:          local,
		remote:         remote,
		localContents:  localContents,
		remoteContents: remoteContents,
		driver:         driver,
		mergedGuids:    make(map[guid.Guid]struct{}),
		deleteLocally:  make(map[guid.Guid]struct{}),
		deleteRemotely: make(map[guid.Guid]struct{}),
		dedup:          make(map[guid.Guid]*dedupEntry),
	}
}

// Merge runs the merge and returns the merged root. It must be called
// exactly once.
func (m *Merger[C]) Merge() (*MergedNode, error) {
	if m.merged {
		return nil, errAlreadyMerged
	}
	m.merged = true

	root, err := m.twoWayMerge(m.local.Root(), m.remote.Root())
	if err != nil {
		return nil, err
	}

	for _, g := range m.local.Deletions() {
		if !m.mentioned(g) {
			m.deleteRemotely[g] = struct{}{}
		}
	}
	for _, g := range m.remote.Deletions() {
		if !m.mentioned(g) {
			m.deleteLocally[g] = struct{}{}
		}
	}

	return root, nil
}

// Telemetry returns the counters accumulated over the merge.
func (m *Merger[C]) Telemetry() StructureCounts {
	return m.counts
}

// Deletions returns the deletions to apply on each side, per §4.9: every
// guid in delete_locally \ delete_remotely with ShouldUploadTombstone
// false, followed by every guid in delete_remotely (unsubtracted) with
// ShouldUploadTombstone true.
func (m *Merger[C]) Deletions() []Deletion {
	var result []Deletion
	for g := range m.deleteLocally {
		if _, inBoth := m.deleteRemotely[g]; inBoth {
			continue
		}
		result = append(result, Deletion{Guid: g, LocalLevel: m.localLevel(g), ShouldUploadTombstone: false})
	}
	for g := range m.deleteRemotely {
		result = append(result, Deletion{Guid: g, LocalLevel: m.localLevel(g), ShouldUploadTombstone: true})
	}
	return result
}

// Subsumes reports whether every live and tombstoned identifier in tree is
// mentioned by the merge (§4.1), i.e. accounted for in the merged tree or
// one of the two deletion sets.
func (m *Merger[C]) Subsumes(tree Tree) bool {
	for _, g := range tree.Guids() {
		if !m.mentioned(g) {
			return false
		}
	}
	for _, g := range tree.Deletions() {
		if !m.mentioned(g) {
			return false
		}
	}
	return true
}

// mentioned reports whether g has been absorbed into the merged tree or
// either deletion set.
func (m *Merger[C]) mentioned(g guid.Guid) bool {
	if _, ok := m.mergedGuids[g]; ok {
		return true
	}
	if _, ok := m.deleteLocally[g]; ok {
		return true
	}
	if _, ok := m.deleteRemotely[g]; ok {
		return true
	}
	return false
}

// localLevel looks up a guid's depth in the local tree, or -1 if absent.
func (m *Merger[C]) localLevel(g guid.Guid) int {
	if node, ok := m.local.NodeForGuid(g); ok {
		return node.Level()
	}
	return -1
}

// repair resolves §4.10: if node's identifier is invalid, it asks the
// configured Driver for a replacement. remoteOrigin indicates whether node
// came from the remote tree, which determines whether a changed identifier
// also tombstones the original on the remote side.
func (m *Merger[C]) repair(node Node, remoteOrigin bool) (Node, error) {
	if node.Guid().Valid() {
		return node, nil
	}
	replacement, err := m.driver.GenerateNewGuid(node.Guid())
	if err != nil {
		return nil, &GenerateGuidError{Invalid: node.Guid(), Cause: err}
	}
	if replacement == node.Guid() {
		return node, nil
	}
	m.mergedGuids[replacement] = struct{}{}
	if remoteOrigin {
		m.deleteRemotely[node.Guid()] = struct{}{}
	}
	return remappedNode{Node: node, guid: replacement}, nil
}

// twoWayMerge implements §4.2.
func (m *Merger[C]) twoWayMerge(local, remote Node) (*MergedNode, error) {
	local, err := m.repair(local, false)
	if err != nil {
		return nil, err
	}
	remote, err = m.repair(remote, true)
	if err != nil {
		return nil, err
	}

	if !local.Kind().HasCompatibleKind(remote.Kind()) {
		return nil, &MismatchedItemKindError{Local: local.Kind(), Remote: remote.Kind()}
	}

	m.mergedGuids[local.Guid()] = struct{}{}
	m.mergedGuids[remote.Guid()] = struct{}{}

	itemSide, childrenSide := resolveValueConflict(local, remote)

	var state MergeState
	switch itemSide {
	case MergeStateLocal:
		state = LocalMergeState(local, remote)
	case MergeStateRemote:
		state = RemoteMergeState(local, remote)
	default:
		state = UnchangedMergeState(local, remote)
	}
	merged := &MergedNode{Guid: remote.Guid(), State: state}

	if childrenSide == MergeStateLocal {
		for _, child := range local.Children() {
			if err := m.mergeLocalChild(merged, local, remote, child); err != nil {
				return nil, err
			}
		}
		for _, child := range remote.Children() {
			if err := m.mergeRemoteChild(merged, local, remote, child); err != nil {
				return nil, err
			}
		}
	} else {
		for _, child := range remote.Children() {
			if err := m.mergeRemoteChild(merged, local, remote, child); err != nil {
				return nil, err
			}
		}
		for _, child := range local.Children() {
			if err := m.mergeLocalChild(merged, local, remote, child); err != nil {
				return nil, err
			}
		}
	}

	return merged, nil
}

// mergeLocalNode builds a local-only subtree (§4.3's "No" branch fallback):
// local_child has no remote counterpart at all. Its descendants are still
// walked through mergeLocalChild so that any remote node that has moved
// into this subtree is still discovered.
func (m *Merger[C]) mergeLocalNode(local Node) (*MergedNode, error) {
	local, err := m.repair(local, false)
	if err != nil {
		return nil, err
	}
	m.mergedGuids[local.Guid()] = struct{}{}
	merged := &MergedNode{Guid: local.Guid(), State: LocalMergeState(local, nil)}
	for _, child := range local.Children() {
		if err := m.mergeLocalChild(merged, local, nil, child); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// mergeRemoteNode is the mirror of mergeLocalNode.
func (m *Merger[C]) mergeRemoteNode(remote Node) (*MergedNode, error) {
	remote, err := m.repair(remote, true)
	if err != nil {
		return nil, err
	}
	m.mergedGuids[remote.Guid()] = struct{}{}
	merged := &MergedNode{Guid: remote.Guid(), State: RemoteMergeState(nil, remote)}
	for _, child := range remote.Children() {
		if err := m.mergeRemoteChild(merged, nil, remote, child); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// mergeLocalChild implements §4.3.
func (m *Merger[C]) mergeLocalChild(mergedParent *MergedNode, localParent, remoteParent Node, localChild Node) error {
	if _, done := m.mergedGuids[localChild.Guid()]; done {
		return nil
	}

	outcome, err := m.checkForRemoteStructureChangeOfLocalNode(mergedParent, localParent, localChild)
	if err != nil {
		return err
	}
	if outcome == structureDeleted {
		return nil
	}

	if remoteCounterpart, ok := m.remote.NodeForGuid(localChild.Guid()); ok {
		remoteChildParent, hasRemoteParent := remoteCounterpart.Parent()

		if hasRemoteParent && m.local.IsDeleted(remoteChildParent.Guid()) {
			mergedChild, err := m.twoWayMerge(localChild, remoteCounterpart)
			if err != nil {
				return err
			}
			mergedChild.State = mergedChild.State.WithNewStructure()
			mergedParent.State = mergedParent.State.WithNewStructure()
			mergedParent.Children = append(mergedParent.Children, mergedChild)
			return nil
		}

		side := MergeStateRemote
		if hasRemoteParent {
			side = resolveStructureConflict(localParent, localChild, remoteChildParent, remoteCounterpart)
		}

		if side != MergeStateLocal {
			if hasRemoteParent && remoteChildParent.Guid() != localParent.Guid() {
				mergedParent.State = mergedParent.State.WithNewStructure()
			}
			return nil
		}

		mergedChild, err := m.twoWayMerge(localChild, remoteCounterpart)
		if err != nil {
			return err
		}
		parentsEqual := hasRemoteParent && remoteChildParent.Guid() == localParent.Guid()
		if !parentsEqual || remoteCounterpart.Diverged() || localParent.Guid() != mergedParent.Guid() {
			mergedChild.State = mergedChild.State.WithNewStructure()
			mergedParent.State = mergedParent.State.WithNewStructure()
		}
		mergedParent.Children = append(mergedParent.Children, mergedChild)
		return nil
	}

	if localChild.IsRoot() {
		return nil
	}

	if remoteMatch, ok := m.findRemoteDupeForLocalChild(localParent, remoteParent, localChild); ok {
		mergedChild, err := m.twoWayMerge(localChild, remoteMatch)
		if err != nil {
			return err
		}
		if remoteMatch.Diverged() || localParent.Guid() != mergedParent.Guid() {
			mergedChild.State = mergedChild.State.WithNewStructure()
			mergedParent.State = mergedParent.State.WithNewStructure()
		}
		mergedParent.Children = append(mergedParent.Children, mergedChild)
		return nil
	}

	mergedChild, err := m.mergeLocalNode(localChild)
	if err != nil {
		return err
	}
	mergedChild.State = mergedChild.State.WithNewStructure()
	mergedParent.State = mergedParent.State.WithNewStructure()
	mergedParent.Children = append(mergedParent.Children, mergedChild)
	return nil
}

// mergeRemoteChild implements §4.4, the mirror of mergeLocalChild with the
// two asymmetries called out in the specification: a remote child deleted
// or tombstoned on the local side marks the merged parent with new
// structure (mergeLocalChild does not, for the symmetric case), and the
// "parent tombstoned on the other side" unconditional-move branch marks
// the merged child conditionally rather than unconditionally.
func (m *Merger[C]) mergeRemoteChild(mergedParent *MergedNode, localParent, remoteParent Node, remoteChild Node) error {
	if _, done := m.mergedGuids[remoteChild.Guid()]; done {
		return nil
	}

	outcome, err := m.checkForLocalStructureChangeOfRemoteNode(mergedParent, remoteParent, remoteChild)
	if err != nil {
		return err
	}
	if outcome == structureDeleted {
		mergedParent.State = mergedParent.State.WithNewStructure()
		return nil
	}

	if localCounterpart, ok := m.local.NodeForGuid(remoteChild.Guid()); ok {
		localChildParent, hasLocalParent := localCounterpart.Parent()

		if hasLocalParent && m.remote.IsDeleted(localChildParent.Guid()) {
			mergedChild, err := m.twoWayMerge(localCounterpart, remoteChild)
			if err != nil {
				return err
			}
			mergedParent.State = mergedParent.State.WithNewStructure()
			if remoteChild.Diverged() || (localParent != nil && localParent.Guid() != mergedParent.Guid()) {
				mergedChild.State = mergedChild.State.WithNewStructure()
			}
			mergedParent.Children = append(mergedParent.Children, mergedChild)
			return nil
		}

		side := MergeStateLocal
		if hasLocalParent {
			side = resolveStructureConflict(localChildParent, localCounterpart, remoteParent, remoteChild)
		}

		if side == MergeStateLocal {
			if hasLocalParent && localChildParent.Guid() != remoteParent.Guid() {
				mergedParent.State = mergedParent.State.WithNewStructure()
			}
			return nil
		}

		mergedChild, err := m.twoWayMerge(localCounterpart, remoteChild)
		if err != nil {
			return err
		}
		parentsEqual := hasLocalParent && localChildParent.Guid() == remoteParent.Guid()
		if !parentsEqual || remoteChild.Diverged() || (localParent != nil && localParent.Guid() != mergedParent.Guid()) {
			mergedChild.State = mergedChild.State.WithNewStructure()
			mergedParent.State = mergedParent.State.WithNewStructure()
		}
		mergedParent.Children = append(mergedParent.Children, mergedChild)
		return nil
	}

	if remoteChild.IsRoot() {
		return nil
	}

	if localMatch, ok := m.findLocalDupeForRemoteChild(localParent, remoteParent, remoteChild); ok {
		mergedChild, err := m.twoWayMerge(localMatch, remoteChild)
		if err != nil {
			return err
		}
		if remoteChild.Diverged() || remoteParent.Guid() != mergedParent.Guid() {
			mergedChild.State = mergedChild.State.WithNewStructure()
			mergedParent.State = mergedParent.State.WithNewStructure()
		}
		mergedParent.Children = append(mergedParent.Children, mergedChild)
		return nil
	}

	mergedChild, err := m.mergeRemoteNode(remoteChild)
	if err != nil {
		return err
	}
	mergedChild.State = mergedChild.State.WithNewStructure()
	mergedParent.State = mergedParent.State.WithNewStructure()
	mergedParent.Children = append(mergedParent.Children, mergedChild)
	return nil
}

// checkForLocalStructureChangeOfRemoteNode implements the detector of §4.6
// from the remote node's point of view: what does the local tree's
// structure say happened to remote? Counters advanced in step 3 are
// remote_revives and local_deletes.
func (m *Merger[C]) checkForLocalStructureChangeOfRemoteNode(mergedParent *MergedNode, remoteParent, remote Node) (structureOutcome, error) {
	if !remote.IsSyncable() {
		m.deleteRemotely[remote.Guid()] = struct{}{}
		if remote.IsFolder() {
			if err := m.relocateRemoteOrphansToMergedNode(mergedParent, remote); err != nil {
				return structureUnchanged, err
			}
		}
		return structureDeleted, nil
	}

	if !m.local.IsDeleted(remote.Guid()) {
		if localNode, ok := m.local.NodeForGuid(remote.Guid()); ok {
			if !localNode.IsSyncable() {
				m.deleteRemotely[remote.Guid()] = struct{}{}
				if remote.IsFolder() {
					if err := m.relocateRemoteOrphansToMergedNode(mergedParent, remote); err != nil {
						return structureUnchanged, err
					}
				}
				return structureDeleted, nil
			}
			if localParent, hasParent := localNode.Parent(); hasParent && localParent.Guid() != remoteParent.Guid() {
				return structureMoved, nil
			}
			return structureUnchanged, nil
		}
		return structureUnchanged, nil
	}

	if remote.NeedsMerge() {
		if !remote.IsFolder() {
			m.counts.RemoteRevives++
			return structureUnchanged, nil
		}
		m.counts.LocalDeletes++
	}

	m.deleteRemotely[remote.Guid()] = struct{}{}
	if remote.IsFolder() {
		if err := m.relocateRemoteOrphansToMergedNode(mergedParent, remote); err != nil {
			return structureUnchanged, err
		}
	}
	return structureDeleted, nil
}

// checkForRemoteStructureChangeOfLocalNode is the mirror of
// checkForLocalStructureChangeOfRemoteNode, with sides swapped. Counters
// advanced in step 3 are local_revives and remote_deletes.
func (m *Merger[C]) checkForRemoteStructureChangeOfLocalNode(mergedParent *MergedNode, localParent, local Node) (structureOutcome, error) {
	if !local.IsSyncable() {
		m.deleteLocally[local.Guid()] = struct{}{}
		if local.IsFolder() {
			if err := m.relocateLocalOrphansToMergedNode(mergedParent, local); err != nil {
				return structureUnchanged, err
			}
		}
		return structureDeleted, nil
	}

	if !m.remote.IsDeleted(local.Guid()) {
		if remoteNode, ok := m.remote.NodeForGuid(local.Guid()); ok {
			if !remoteNode.IsSyncable() {
				m.deleteLocally[local.Guid()] = struct{}{}
				if local.IsFolder() {
					if err := m.relocateLocalOrphansToMergedNode(mergedParent, local); err != nil {
						return structureUnchanged, err
					}
				}
				return structureDeleted, nil
			}
			if remoteParent, hasParent := remoteNode.Parent(); hasParent && remoteParent.Guid() != localParent.Guid() {
				return structureMoved, nil
			}
			return structureUnchanged, nil
		}
		return structureUnchanged, nil
	}

	if local.NeedsMerge() {
		if !local.IsFolder() {
			m.counts.LocalRevives++
			return structureUnchanged, nil
		}
		m.counts.RemoteDeletes++
	}

	m.deleteLocally[local.Guid()] = struct{}{}
	if local.IsFolder() {
		if err := m.relocateLocalOrphansToMergedNode(mergedParent, local); err != nil {
			return structureUnchanged, err
		}
	}
	return structureDeleted, nil
}

// relocateRemoteOrphansToMergedNode implements §4.8 for a remote folder
// being deleted: its children survive as direct children of mergedParent
// when the local tree still agrees they should exist.
func (m *Merger[C]) relocateRemoteOrphansToMergedNode(mergedParent *MergedNode, deletedRemoteFolder Node) error {
	for _, orphan := range deletedRemoteFolder.Children() {
		if _, done := m.mergedGuids[orphan.Guid()]; done {
			continue
		}
		outcome, err := m.checkForLocalStructureChangeOfRemoteNode(mergedParent, deletedRemoteFolder, orphan)
		if err != nil {
			return err
		}
		if outcome != structureUnchanged {
			continue
		}

		var mergedChild *MergedNode
		if localCounterpart, ok := m.local.NodeForGuid(orphan.Guid()); ok {
			mergedChild, err = m.twoWayMerge(localCounterpart, orphan)
		} else {
			mergedChild, err = m.mergeRemoteNode(orphan)
		}
		if err != nil {
			return err
		}

		mergedChild.State = mergedChild.State.WithNewStructure()
		mergedParent.State = mergedParent.State.WithNewStructure()
		mergedParent.Children = append(mergedParent.Children, mergedChild)
	}
	return nil
}

// relocateLocalOrphansToMergedNode is the mirror of
// relocateRemoteOrphansToMergedNode for a local folder being deleted.
func (m *Merger[C]) relocateLocalOrphansToMergedNode(mergedParent *MergedNode, deletedLocalFolder Node) error {
	for _, orphan := range deletedLocalFolder.Children() {
		if _, done := m.mergedGuids[orphan.Guid()]; done {
			continue
		}
		outcome, err := m.checkForRemoteStructureChangeOfLocalNode(mergedParent, deletedLocalFolder, orphan)
		if err != nil {
			return err
		}
		if outcome != structureUnchanged {
			continue
		}

		var mergedChild *MergedNode
		if remoteCounterpart, ok := m.remote.NodeForGuid(orphan.Guid()); ok {
			mergedChild, err = m.twoWayMerge(orphan, remoteCounterpart)
		} else {
			mergedChild, err = m.mergeLocalNode(orphan)
		}
		if err != nil {
			return err
		}

		mergedChild.State = mergedChild.State.WithNewStructure()
		mergedParent.State = mergedParent.State.WithNewStructure()
		mergedParent.Children = append(mergedParent.Children, mergedChild)
	}
	return nil
}
