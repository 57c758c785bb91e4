// Package milgraph provides an entity graph analysis library for military
// asset databases.
//
// Milgraph loads JSON entity databases, merges them, builds an undirected
// relationship graph from reference fields, and answers filter, statistics,
// and comparison queries over it.
//
// # Basic Usage
//
// Create an Analyzer and build the graph from the configured databases:
//
//	analyzer := milgraph.New(&milgraph.Config{DataDir: "./data"})
//	if err := analyzer.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	g := analyzer.Graph()
//	fmt.Printf("%d entities, %d relationships\n", g.NodeCount(), g.EdgeCount())
//
// # Filtering
//
// Filters compose with AND semantics; every filter must match:
//
//	result, err := analyzer.Filter(map[string]any{
//		"country":            "Lithuania",
//		"type":               "vehicle",
//		"equipment_category": "vehicles",
//	})
//
// # Analysis
//
// Statistics cover node and edge distributions, connectivity, centrality,
// per-entity-type breakdowns, and temporal and geographic trends:
//
//	report, err := analyzer.Statistics()
//
// Country comparison and the comprehensive report build on the same graph:
//
//	comparison, err := analyzer.Compare([]string{"USA", "Russia", "China"})
//	full, err := analyzer.Report(nil)
//
// # Architecture
//
// The library follows a modular architecture:
//
//   - pkg/entity: record coercions, entity types, reference field tables
//   - pkg/loader: JSON database loading, repair, and validation
//   - pkg/builder: graph construction and relationship inference
//   - pkg/graph: the graph structure and algorithms
//   - pkg/filter: composable node filters and search
//   - pkg/stats: statistics, comparison, and reporting
//   - pkg/export: CSV, Parquet, JSON, and YAML export
//   - pkg/server: the HTTP API
package milgraph
