package graph

import (
	"sort"

	"github.com/milgraph/milgraph/pkg/entity"
)

// Node is the graph representation of one entity. The typed fields are the
// flattened searchable attributes; Data keeps the original record as an
// opaque payload.
type Node struct {
	ID    string      `json:"id"`
	Type  entity.Type `json:"type"`
	Label string      `json:"label"`
	Color string      `json:"color"`

	// Common searchable attributes
	Year         int    `json:"year,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	Owner        string `json:"owner,omitempty"`
	Country      string `json:"country,omitempty"`
	Nationality  string `json:"nationality,omitempty"`

	// Type-specific searchable attributes
	VehicleType       string   `json:"vehicle_type,omitempty"`
	FuelType          string   `json:"fuel_type,omitempty"`
	PersonTypes       []string `json:"person_types,omitempty"`
	BirthDate         string   `json:"birth_date,omitempty"`
	OrganizationType  string   `json:"organization_type,omitempty"`
	PersonnelStrength float64  `json:"personnel_strength,omitempty"`
	AreaType          string   `json:"area_type,omitempty"`
	AdminLevel        string   `json:"admin_level,omitempty"`

	// Data is the original entity record.
	Data entity.Record `json:"data,omitempty"`
}

// Edge is an unordered pair of node ids with a relationship label. Source and
// Target record insertion order only; the edge itself is undirected.
type Edge struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	Relationship string  `json:"relationship"`
	Weight       float64 `json:"weight"`
}

// Graph is an undirected simple graph over entity nodes.
type Graph struct {
	nodes map[string]*Node
	adj   map[string]map[string]*Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		adj:   make(map[string]map[string]*Edge),
	}
}

// AddNode inserts a node. The first node wins on duplicate ids; a later node
// with the same id is dropped and AddNode reports false.
func (g *Graph) AddNode(n *Node) bool {
	if n == nil || n.ID == "" {
		return false
	}
	if _, exists := g.nodes[n.ID]; exists {
		return false
	}
	g.nodes[n.ID] = n
	g.adj[n.ID] = make(map[string]*Edge)
	return true
}

// AddEdge connects two existing nodes. Self-loops and edges with a missing
// endpoint are dropped. An edge between a pair that is already connected
// overwrites the previous relationship label.
func (g *Graph) AddEdge(source, target, relationship string, weight float64) bool {
	if source == target {
		return false
	}
	if _, ok := g.nodes[source]; !ok {
		return false
	}
	if _, ok := g.nodes[target]; !ok {
		return false
	}
	e := &Edge{Source: source, Target: target, Relationship: relationship, Weight: weight}
	g.adj[source][target] = e
	g.adj[target][source] = e
	return true
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// HasNode reports whether the id is present.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, neighbors := range g.adj {
		total += len(neighbors)
	}
	return total / 2
}

// NodeIDs returns all node ids in sorted order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Nodes returns all nodes, ordered by id.
func (g *Graph) Nodes() []*Node {
	ids := g.NodeIDs()
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns each distinct edge exactly once, ordered by endpoint pair.
func (g *Graph) Edges() []*Edge {
	var edges []*Edge
	for id, neighbors := range g.adj {
		for other, e := range neighbors {
			if id < other {
				edges = append(edges, e)
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := pairKey(edges[i]), pairKey(edges[j])
		return a < b
	})
	return edges
}

func pairKey(e *Edge) string {
	if e.Source < e.Target {
		return e.Source + "\x00" + e.Target
	}
	return e.Target + "\x00" + e.Source
}

// Edge returns the edge between two nodes, or nil.
func (g *Graph) Edge(a, b string) *Edge {
	if neighbors, ok := g.adj[a]; ok {
		return neighbors[b]
	}
	return nil
}

// Neighbors returns the ids adjacent to a node, sorted. Nil for unknown ids.
func (g *Graph) Neighbors(id string) []string {
	neighbors, ok := g.adj[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(neighbors))
	for other := range neighbors {
		out = append(out, other)
	}
	sort.Strings(out)
	return out
}

// Degree returns the number of edges incident to a node.
func (g *Graph) Degree(id string) int {
	return len(g.adj[id])
}

// Subgraph returns the induced subgraph over the given node set: the kept
// nodes plus every edge whose both endpoints survive. Node structs are shared
// with the parent graph; the topology is a fresh copy.
func (g *Graph) Subgraph(ids map[string]struct{}) *Graph {
	sub := New()
	for id := range ids {
		if n, ok := g.nodes[id]; ok {
			sub.AddNode(n)
		}
	}
	for id := range sub.nodes {
		for other, e := range g.adj[id] {
			if _, keep := sub.nodes[other]; keep && id < other {
				sub.AddEdge(e.Source, e.Target, e.Relationship, e.Weight)
			}
		}
	}
	return sub
}

// Clone returns a copy of the graph with fresh topology.
func (g *Graph) Clone() *Graph {
	all := make(map[string]struct{}, len(g.nodes))
	for id := range g.nodes {
		all[id] = struct{}{}
	}
	return g.Subgraph(all)
}
