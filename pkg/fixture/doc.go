// Package fixture loads bookmark trees from human-authored YAML documents
// into the concrete Tree implementation in pkg/tree, for use in tests, the
// CLI, and local experimentation with the merge engine.
package fixture
