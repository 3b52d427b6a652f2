// Package merge implements the two-way bookmark tree merger.
//
// Given a complete local bookmark tree and a complete remote bookmark tree,
// each annotated with per-node change flags, ages, and tombstone lists, a
// Merger produces a single merged tree that reconciles structural and value
// differences, plus two tombstone sets describing deletions to apply on
// each side.
//
// The merger is a pure, deterministic, single-threaded, non-I/O algorithm:
// it performs no network access, touches no clock, and does not mutate its
// input trees. Everything it needs — tree traversal, tombstone lookups,
// content fingerprints, and fresh-identifier generation for malformed input
// — is supplied through narrow interfaces (Tree, Node, Driver) so that the
// core never depends on how a tree was constructed or how its results will
// be applied.
package merge
