// Package builder constructs the entity graph from typed record collections,
// inferring edges from the ad-hoc reference fields the source data uses as
// foreign keys. It also merges multiple sources with id-based deduplication
// and provides connectivity analysis and path finding over built graphs.
package builder
