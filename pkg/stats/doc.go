// Package stats computes statistical and structural analyses over entity
// graphs: degree and relationship distributions, connectivity and centrality
// metrics, per-entity-type breakdowns, cross-country comparison, and the
// comprehensive report with its composite data-quality score.
//
// Every report type is a plain struct of primitives, counters, and small
// ranked lists, serializable to JSON with no loss.
package stats
