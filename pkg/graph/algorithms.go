package graph

import (
	"sort"
)

// Density returns 2E / (V(V-1)), or 0 for graphs with fewer than two nodes.
func (g *Graph) Density() float64 {
	n := len(g.nodes)
	if n < 2 {
		return 0
	}
	return 2 * float64(g.EdgeCount()) / float64(n*(n-1))
}

// ConnectedComponents returns the node sets of every connected component,
// largest first.
func (g *Graph) ConnectedComponents() [][]string {
	visited := make(map[string]struct{}, len(g.nodes))
	var components [][]string

	for _, start := range g.NodeIDs() {
		if _, seen := visited[start]; seen {
			continue
		}
		var component []string
		queue := []string{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			component = append(component, id)
			for other := range g.adj[id] {
				if _, seen := visited[other]; !seen {
					visited[other] = struct{}{}
					queue = append(queue, other)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}

	sort.SliceStable(components, func(i, j int) bool {
		return len(components[i]) > len(components[j])
	})
	return components
}

// IsConnected reports whether every node is reachable from every other.
// The empty graph counts as disconnected.
func (g *Graph) IsConnected() bool {
	if len(g.nodes) == 0 {
		return false
	}
	return len(g.ConnectedComponents()) == 1
}

// ShortestPathLengths returns BFS hop counts from a source to every reachable
// node. maxDepth < 0 means unbounded.
func (g *Graph) ShortestPathLengths(source string, maxDepth int) map[string]int {
	if _, ok := g.nodes[source]; !ok {
		return nil
	}
	dist := map[string]int{source: 0}
	queue := []string{source}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if maxDepth >= 0 && dist[id] >= maxDepth {
			continue
		}
		for other := range g.adj[id] {
			if _, seen := dist[other]; !seen {
				dist[other] = dist[id] + 1
				queue = append(queue, other)
			}
		}
	}
	return dist
}

// AllShortestPaths enumerates every shortest path between two nodes. Returns
// nil when either endpoint is absent or no path exists.
func (g *Graph) AllShortestPaths(source, target string) [][]string {
	if !g.HasNode(source) || !g.HasNode(target) {
		return nil
	}
	if source == target {
		return [][]string{{source}}
	}

	// BFS recording every shortest predecessor.
	dist := map[string]int{source: 0}
	preds := make(map[string][]string)
	queue := []string{source}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for other := range g.adj[id] {
			d, seen := dist[other]
			switch {
			case !seen:
				dist[other] = dist[id] + 1
				preds[other] = []string{id}
				queue = append(queue, other)
			case d == dist[id]+1:
				preds[other] = append(preds[other], id)
			}
		}
	}
	if _, reachable := dist[target]; !reachable {
		return nil
	}

	// Walk the predecessor DAG back from the target.
	var paths [][]string
	var walk func(id string, suffix []string)
	walk = func(id string, suffix []string) {
		path := append([]string{id}, suffix...)
		if id == source {
			paths = append(paths, path)
			return
		}
		parents := append([]string(nil), preds[id]...)
		sort.Strings(parents)
		for _, p := range parents {
			walk(p, path)
		}
	}
	walk(target, nil)
	return paths
}

// SimplePaths enumerates simple paths between two nodes of at most cutoff
// hops, stopping once limit paths are collected (limit <= 0 means no limit).
func (g *Graph) SimplePaths(source, target string, cutoff, limit int) [][]string {
	if !g.HasNode(source) || !g.HasNode(target) || cutoff < 1 {
		return nil
	}

	var paths [][]string
	onPath := map[string]struct{}{source: {}}
	path := []string{source}

	var dfs func(id string) bool
	dfs = func(id string) bool {
		for _, other := range g.Neighbors(id) {
			if other == target {
				found := append(append([]string(nil), path...), target)
				paths = append(paths, found)
				if limit > 0 && len(paths) >= limit {
					return true
				}
				continue
			}
			if _, visiting := onPath[other]; visiting {
				continue
			}
			if len(path) >= cutoff {
				continue
			}
			onPath[other] = struct{}{}
			path = append(path, other)
			done := dfs(other)
			path = path[:len(path)-1]
			delete(onPath, other)
			if done {
				return true
			}
		}
		return false
	}
	dfs(source)
	return paths
}

// AverageClustering returns the mean local clustering coefficient over all
// nodes. Nodes with degree below 2 contribute 0.
func (g *Graph) AverageClustering() float64 {
	n := len(g.nodes)
	if n == 0 {
		return 0
	}
	total := 0.0
	for id := range g.nodes {
		total += g.localClustering(id)
	}
	return total / float64(n)
}

func (g *Graph) localClustering(id string) float64 {
	neighbors := g.Neighbors(id)
	k := len(neighbors)
	if k < 2 {
		return 0
	}
	links := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if _, ok := g.adj[neighbors[i]][neighbors[j]]; ok {
				links++
			}
		}
	}
	return 2 * float64(links) / float64(k*(k-1))
}

// PathStats holds global shortest-path metrics for a connected graph.
type PathStats struct {
	AverageLength float64 `json:"average_length"`
	Diameter      int     `json:"diameter"`
}

// ShortestPathStats computes the average shortest path length and diameter by
// running BFS from every node. The second return is false when the graph has
// fewer than two nodes or is disconnected.
func (g *Graph) ShortestPathStats() (PathStats, bool) {
	n := len(g.nodes)
	if n < 2 {
		return PathStats{}, false
	}
	totalDist := 0
	pairs := 0
	diameter := 0
	for id := range g.nodes {
		dist := g.ShortestPathLengths(id, -1)
		if len(dist) != n {
			return PathStats{}, false
		}
		for _, d := range dist {
			totalDist += d
			if d > diameter {
				diameter = d
			}
		}
		pairs += n - 1
	}
	return PathStats{
		AverageLength: float64(totalDist) / float64(pairs),
		Diameter:      diameter,
	}, true
}
