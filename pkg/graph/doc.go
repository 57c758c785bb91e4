// Package graph provides the in-memory entity graph shared by the builder,
// filter, and statistics packages.
//
// The graph is undirected and simple: at most one edge per node pair, no
// self-loops. Re-adding an edge for a pair that already has one overwrites
// the relationship label (last writer wins); callers that need every
// relationship preserved must not rely on repeated AddEdge calls.
//
// Filtering and analysis never mutate a shared graph; Subgraph and Clone
// return fresh copies, so concurrent readers of a built graph are safe as
// long as nobody mutates it in place.
package graph
