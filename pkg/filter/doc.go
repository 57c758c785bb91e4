// Package filter implements composable multi-criteria filtering over entity
// graphs.
//
// A Registry maps filter names to predicate functions that each compute the
// set of matching node ids. Apply combines the results of every named filter
// by intersection (pure AND semantics) and returns the induced subgraph over
// the surviving nodes. Unknown filter names are logged and contribute no
// restriction.
//
// The registry is an immutable lookup table constructed once by NewRegistry
// and passed by reference, so individual predicates stay unit-testable and
// no package-level mutable state exists.
//
// Beyond exact-field filters the package provides fuzzy matching: free-text
// keyword search across labels, names, and descriptive fields, and
// equipment-category classification driven by the Categories keyword table.
package filter
