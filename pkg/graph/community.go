package graph

import (
	"sort"
)

// maxLabelPropagationRounds bounds the propagation loop.
const maxLabelPropagationRounds = 100

// Communities detects clusters of densely connected nodes using label
// propagation. Each node starts in its own community and repeatedly adopts
// the most common community among its neighbors until no label changes.
// Only clusters with more than one node are returned, largest first.
func (g *Graph) Communities() [][]string {
	if len(g.nodes) == 0 {
		return nil
	}

	labels := make(map[string]int, len(g.nodes))
	for i, id := range g.NodeIDs() {
		labels[id] = i
	}

	for round := 0; round < maxLabelPropagationRounds; round++ {
		changed := false
		next := make(map[string]int, len(labels))

		for id := range g.nodes {
			current := labels[id]
			counts := make(map[int]int)
			for other := range g.adj[id] {
				counts[labels[other]]++
			}

			best := current
			bestCount := 0
			for label, count := range counts {
				if count > bestCount || (count == bestCount && label > best) {
					best = label
					bestCount = count
				}
			}
			// A single supporting neighbor is not enough to move between
			// equally weighted labels.
			if bestCount <= 1 && best < current {
				best = current
			}

			next[id] = best
			if best != current {
				changed = true
			}
		}

		labels = next
		if !changed {
			break
		}
	}

	grouped := make(map[int][]string)
	for id, label := range labels {
		grouped[label] = append(grouped[label], id)
	}

	var clusters [][]string
	for _, cluster := range grouped {
		if len(cluster) > 1 {
			sort.Strings(cluster)
			clusters = append(clusters, cluster)
		}
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		if len(clusters[i]) != len(clusters[j]) {
			return len(clusters[i]) > len(clusters[j])
		}
		return clusters[i][0] < clusters[j][0]
	})
	return clusters
}
