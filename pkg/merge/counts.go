package merge

// StructureCounts is the telemetry accumulated over the course of a merge.
// It is accumulated in a single owned counter struct on the Merger rather
// than threaded through every recursive call by value, since nothing in the
// merger needs to observe a snapshot mid-merge.
type StructureCounts struct {
	// RemoteRevives counts non-folder nodes whose live remote edit won out
	// over a local tombstone.
	RemoteRevives uint64
	// LocalDeletes counts folders deleted locally that lost to a
	// conflicting local tombstone check (see the structure-change
	// detector's folder-vs-tombstone rule).
	LocalDeletes uint64
	// LocalRevives counts non-folder nodes whose live local edit won out
	// over a remote tombstone.
	LocalRevives uint64
	// RemoteDeletes counts folders deleted remotely that lost to a
	// conflicting remote tombstone check.
	RemoteDeletes uint64
	// Dupes counts content-based dedup pairings, incremented once per
	// distinct pairing at the point the pairing is retrieved from the
	// memoized map (not at the point it is constructed).
	Dupes uint64
}
