package graph

import (
	"errors"
	"math"
	"math/rand"
	"sort"
)

// ErrNoConvergence is returned when power iteration fails to converge within
// the iteration cap.
var ErrNoConvergence = errors.New("eigenvector centrality failed to converge")

// DegreeCentrality returns degree / (n-1) for every node.
func (g *Graph) DegreeCentrality() map[string]float64 {
	n := len(g.nodes)
	scores := make(map[string]float64, n)
	if n < 2 {
		for id := range g.nodes {
			scores[id] = 0
		}
		return scores
	}
	denom := float64(n - 1)
	for id := range g.nodes {
		scores[id] = float64(len(g.adj[id])) / denom
	}
	return scores
}

// BetweennessCentrality computes normalized betweenness with Brandes'
// algorithm. When sample is positive and smaller than the node count, only
// that many randomly chosen pivot nodes are used and the result is an
// estimate; otherwise the computation is exact. rng may be nil for exact
// computations.
func (g *Graph) BetweennessCentrality(sample int, rng *rand.Rand) map[string]float64 {
	n := len(g.nodes)
	scores := make(map[string]float64, n)
	ids := g.NodeIDs()
	for _, id := range ids {
		scores[id] = 0
	}
	if n < 3 {
		return scores
	}

	pivots := ids
	if sample > 0 && sample < n {
		if rng == nil {
			rng = rand.New(rand.NewSource(0))
		}
		shuffled := append([]string(nil), ids...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		pivots = shuffled[:sample]
	}

	for _, s := range pivots {
		// Single-source shortest paths: BFS with path counting.
		var stack []string
		preds := make(map[string][]string, n)
		sigma := map[string]float64{s: 1}
		dist := map[string]int{s: 0}
		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for w := range g.adj[v] {
				d, seen := dist[w]
				if !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
					d = dist[w]
				}
				if d == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}
		// Dependency accumulation in reverse BFS order.
		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				scores[w] += delta[w]
			}
		}
	}

	// Normalize: undirected pair normalization, scaled up when sampling.
	scale := 1.0 / (float64(n-1) * float64(n-2))
	if len(pivots) < n {
		scale *= float64(n) / float64(len(pivots))
	}
	for id := range scores {
		scores[id] *= scale
	}
	return scores
}

// ClosenessCentrality returns, per node, the reciprocal mean distance to the
// nodes reachable from it, scaled by the reachable fraction of the graph.
func (g *Graph) ClosenessCentrality() map[string]float64 {
	n := len(g.nodes)
	scores := make(map[string]float64, n)
	for id := range g.nodes {
		dist := g.ShortestPathLengths(id, -1)
		total := 0
		for _, d := range dist {
			total += d
		}
		reachable := len(dist) - 1
		if reachable <= 0 || total == 0 {
			scores[id] = 0
			continue
		}
		closeness := float64(reachable) / float64(total)
		if n > 1 {
			closeness *= float64(reachable) / float64(n-1)
		}
		scores[id] = closeness
	}
	return scores
}

// EigenvectorCentrality computes eigenvector centrality by power iteration,
// capped at maxIter iterations. Returns ErrNoConvergence when the iteration
// does not settle within the cap.
func (g *Graph) EigenvectorCentrality(maxIter int, tol float64) (map[string]float64, error) {
	n := len(g.nodes)
	if n == 0 {
		return map[string]float64{}, nil
	}
	if maxIter <= 0 {
		maxIter = 1000
	}
	if tol <= 0 {
		tol = 1e-6
	}

	x := make(map[string]float64, n)
	for id := range g.nodes {
		x[id] = 1.0 / float64(n)
	}

	for iter := 0; iter < maxIter; iter++ {
		// Iterate (I+A)x rather than Ax: the self-term shifts every
		// eigenvalue by one, which keeps the iteration from oscillating on
		// bipartite graphs (trees included) where the plain matrix has a
		// -lambda twin of the dominant eigenvalue.
		next := make(map[string]float64, n)
		for id, value := range x {
			next[id] += value
			for other := range g.adj[id] {
				next[other] += value
			}
		}
		norm := 0.0
		for id := range g.nodes {
			norm += next[id] * next[id]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		change := 0.0
		for id := range g.nodes {
			next[id] /= norm
			change += math.Abs(next[id] - x[id])
		}
		x = next
		if change < float64(n)*tol {
			return x, nil
		}
	}
	return nil, ErrNoConvergence
}

// RankedNode pairs a node id with a centrality score.
type RankedNode struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// TopN returns the n highest-scoring nodes, ties broken by id.
func TopN(scores map[string]float64, n int) []RankedNode {
	ranked := make([]RankedNode, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, RankedNode{ID: id, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
