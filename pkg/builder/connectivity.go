package builder

import (
	"math/rand"

	"github.com/milgraph/milgraph/pkg/graph"
)

// DefaultBetweennessSample is the node-count threshold above which
// betweenness centrality is estimated from a random pivot sample instead of
// computed exactly. Kept configurable via Options; the cap is load-bearing
// for large graphs.
const DefaultBetweennessSample = 100

// Options tunes the analysis pass.
type Options struct {
	// BetweennessSample caps the number of betweenness pivots. Zero means
	// DefaultBetweennessSample.
	BetweennessSample int
	// Rand seeds pivot sampling; nil uses a fixed seed for reproducibility.
	Rand *rand.Rand
}

func (o *Options) sample() int {
	if o == nil || o.BetweennessSample == 0 {
		return DefaultBetweennessSample
	}
	return o.BetweennessSample
}

func (o *Options) rng() *rand.Rand {
	if o == nil {
		return nil
	}
	return o.Rand
}

// ConnectivityReport summarizes the structural properties of a graph.
type ConnectivityReport struct {
	NodeCount             int                `json:"node_count"`
	EdgeCount             int                `json:"edge_count"`
	Density               float64            `json:"density"`
	IsConnected           bool               `json:"is_connected"`
	ClusteringCoefficient float64            `json:"clustering_coefficient"`
	ConnectedComponents   int                `json:"connected_components"`
	LargestComponentSize  int                `json:"largest_component_size"`
	CommunityCount        int                `json:"community_count"`
	TopDegree             []graph.RankedNode `json:"top_degree_centrality,omitempty"`
	TopBetweenness        []graph.RankedNode `json:"top_betweenness_centrality,omitempty"`
}

// AnalyzeConnectivity computes the connectivity report for a graph.
// Betweenness is estimated from a random sample when the graph exceeds the
// sample threshold.
func (b *Builder) AnalyzeConnectivity(g *graph.Graph, opts *Options) *ConnectivityReport {
	report := &ConnectivityReport{
		NodeCount:             g.NodeCount(),
		EdgeCount:             g.EdgeCount(),
		Density:               g.Density(),
		IsConnected:           g.IsConnected(),
		ClusteringCoefficient: g.AverageClustering(),
	}

	components := g.ConnectedComponents()
	report.ConnectedComponents = len(components)
	if len(components) > 0 {
		report.LargestComponentSize = len(components[0])
	}
	report.CommunityCount = len(g.Communities())

	if g.NodeCount() > 0 {
		report.TopDegree = graph.TopN(g.DegreeCentrality(), 10)
		sample := 0
		if g.NodeCount() > opts.sample() {
			sample = opts.sample()
		}
		report.TopBetweenness = graph.TopN(g.BetweennessCentrality(sample, opts.rng()), 10)
	}

	return report
}

// FindPaths returns up to maxPaths paths between two nodes: every shortest
// path first, then additional simple paths of at most maxLength hops that
// were not already included. Absent or unreachable endpoints yield an empty
// result.
func (b *Builder) FindPaths(g *graph.Graph, source, target string, maxPaths, maxLength int) [][]string {
	if !g.HasNode(source) || !g.HasNode(target) {
		return nil
	}

	paths := g.AllShortestPaths(source, target)
	if paths == nil {
		return nil
	}

	if len(paths) < maxPaths {
		seen := make(map[string]struct{}, len(paths))
		for _, p := range paths {
			seen[joinPath(p)] = struct{}{}
		}
		// A limit of maxPaths is enough: at most len(paths) of the returned
		// simple paths can be duplicates of the shortest ones, so the rest
		// fill the quota without enumerating every path in a dense graph.
		for _, p := range g.SimplePaths(source, target, maxLength, maxPaths) {
			if len(paths) >= maxPaths {
				break
			}
			if _, dup := seen[joinPath(p)]; dup {
				continue
			}
			seen[joinPath(p)] = struct{}{}
			paths = append(paths, p)
		}
	}

	if len(paths) > maxPaths {
		paths = paths[:maxPaths]
	}
	return paths
}

func joinPath(p []string) string {
	key := ""
	for _, id := range p {
		key += id + "\x00"
	}
	return key
}

// Subgraph extracts the induced subgraph over the given ids. When
// includeNeighbors is set, every node within maxDistance hops of one of the
// ids is included as well. Ids absent from the graph are ignored.
func (b *Builder) Subgraph(g *graph.Graph, ids []string, includeNeighbors bool, maxDistance int) *graph.Graph {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if g.HasNode(id) {
			keep[id] = struct{}{}
		}
	}
	if includeNeighbors {
		for _, id := range ids {
			for reached := range g.ShortestPathLengths(id, maxDistance) {
				keep[reached] = struct{}{}
			}
		}
	}
	sub := g.Subgraph(keep)
	b.logger.Info("created subgraph", "nodes", sub.NodeCount(), "edges", sub.EdgeCount())
	return sub
}
