package merge

import "github.com/lindqvist-oss/bkmerge/pkg/guid"

// dedupEntry holds the per-local-parent memoized content-dedup pairings
// computed by findAllMatchingDupesInFolders. Once a pairing has been
// retrieved by either caller it is removed from both maps so that it is
// never counted or applied twice.
type dedupEntry struct {
	localToRemote map[guid.Guid]Node
	remoteToLocal map[guid.Guid]Node
}

// dedupEntryFor returns the memoized dedup entry for localParent, computing
// it on first use. remoteParent is localParent's counterpart in the remote
// tree; if it is nil there is nothing to dedup against and an empty entry
// is cached.
func (m *Merger[C]) dedupEntryFor(localParent, remoteParent Node) *dedupEntry {
	if entry, ok := m.dedup[localParent.Guid()]; ok {
		return entry
	}
	entry := &dedupEntry{
		localToRemote: make(map[guid.Guid]Node),
		remoteToLocal: make(map[guid.Guid]Node),
	}
	if remoteParent != nil && m.localContents != nil && m.remoteContents != nil {
		m.findAllMatchingDupesInFolders(localParent, remoteParent, entry)
	}
	m.dedup[localParent.Guid()] = entry
	return entry
}

// findAllMatchingDupesInFolders implements §4.5: it builds a mapping from
// content fingerprint to a FIFO queue of eligible local-only children of
// localParent, then pairs each eligible remote-only child of remoteParent
// against the head of its fingerprint's queue, first-come-first-served.
func (m *Merger[C]) findAllMatchingDupesInFolders(localParent, remoteParent Node, entry *dedupEntry) {
	queues := make(map[C][]Node)
	for _, child := range localParent.Children() {
		fingerprint, ok := m.localContents[child.Guid()]
		if !ok {
			continue
		}
		if _, existsRemotely := m.remote.NodeForGuid(child.Guid()); existsRemotely {
			continue
		}
		if m.remote.IsDeleted(child.Guid()) {
			continue
		}
		queues[fingerprint] = append(queues[fingerprint], child)
	}

	for _, child := range remoteParent.Children() {
		fingerprint, ok := m.remoteContents[child.Guid()]
		if !ok {
			continue
		}
		queue := queues[fingerprint]
		if len(queue) == 0 {
			continue
		}
		localChild := queue[0]
		queues[fingerprint] = queue[1:]
		entry.localToRemote[localChild.Guid()] = child
		entry.remoteToLocal[child.Guid()] = localChild
	}
}

// findRemoteDupeForLocalChild looks up (and consumes) a remote dedup match
// for localChild under localParent, incrementing the dupes counter on
// success.
func (m *Merger[C]) findRemoteDupeForLocalChild(localParent, remoteParent Node, localChild Node) (Node, bool) {
	entry := m.dedupEntryFor(localParent, remoteParent)
	remoteMatch, ok := entry.localToRemote[localChild.Guid()]
	if !ok {
		return nil, false
	}
	delete(entry.localToRemote, localChild.Guid())
	delete(entry.remoteToLocal, remoteMatch.Guid())
	m.counts.Dupes++
	return remoteMatch, true
}

// findLocalDupeForRemoteChild looks up (and consumes) a local dedup match
// for remoteChild under remoteParent's local counterpart localParent,
// incrementing the dupes counter on success.
func (m *Merger[C]) findLocalDupeForRemoteChild(localParent, remoteParent Node, remoteChild Node) (Node, bool) {
	if localParent == nil {
		return nil, false
	}
	entry := m.dedupEntryFor(localParent, remoteParent)
	localMatch, ok := entry.remoteToLocal[remoteChild.Guid()]
	if !ok {
		return nil, false
	}
	delete(entry.remoteToLocal, remoteChild.Guid())
	delete(entry.localToRemote, localMatch.Guid())
	m.counts.Dupes++
	return localMatch, true
}
