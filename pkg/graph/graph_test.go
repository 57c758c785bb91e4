package graph

import (
	"testing"

	"github.com/milgraph/milgraph/pkg/entity"
)

func node(id string, entityType entity.Type) *Node {
	return &Node{ID: id, Type: entityType, Label: id}
}

// pathGraph builds a1 - a2 - ... - an.
func pathGraph(t *testing.T, ids ...string) *Graph {
	t.Helper()
	g := New()
	for _, id := range ids {
		if !g.AddNode(node(id, entity.TypeVehicle)) {
			t.Fatalf("AddNode(%q) = false", id)
		}
	}
	for i := 1; i < len(ids); i++ {
		if !g.AddEdge(ids[i-1], ids[i], "linked", 1.0) {
			t.Fatalf("AddEdge(%q, %q) = false", ids[i-1], ids[i])
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New()

	if !g.AddNode(node("v1", entity.TypeVehicle)) {
		t.Fatal("AddNode(v1) = false, want true")
	}
	if g.AddNode(nil) {
		t.Error("AddNode(nil) = true, want false")
	}
	if g.AddNode(&Node{}) {
		t.Error("AddNode(empty id) = true, want false")
	}

	// First node wins on duplicate ids.
	duplicate := node("v1", entity.TypePerson)
	if g.AddNode(duplicate) {
		t.Error("AddNode(duplicate) = true, want false")
	}
	if got := g.Node("v1").Type; got != entity.TypeVehicle {
		t.Errorf("Node(v1).Type = %q, want %q", got, entity.TypeVehicle)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	g.AddNode(node("a", entity.TypeVehicle))
	g.AddNode(node("b", entity.TypeCountry))

	if g.AddEdge("a", "a", "self", 1.0) {
		t.Error("AddEdge self-loop = true, want false")
	}
	if g.AddEdge("a", "missing", "owner", 1.0) {
		t.Error("AddEdge to missing target = true, want false")
	}
	if g.AddEdge("missing", "b", "owner", 1.0) {
		t.Error("AddEdge from missing source = true, want false")
	}

	if !g.AddEdge("a", "b", "owner", 1.0) {
		t.Fatal("AddEdge(a, b) = false, want true")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}

	// A second edge between the same pair overwrites the relationship.
	g.AddEdge("b", "a", "country", 2.0)
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() after overwrite = %d, want 1", g.EdgeCount())
	}
	e := g.Edge("a", "b")
	if e == nil || e.Relationship != "country" {
		t.Errorf("Edge(a, b) = %+v, want relationship country", e)
	}
	if e != g.Edge("b", "a") {
		t.Error("Edge(a, b) and Edge(b, a) are different edges")
	}
}

func TestNeighborsAndDegree(t *testing.T) {
	g := pathGraph(t, "a", "b", "c")

	got := g.Neighbors("b")
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Neighbors(b) = %v, want [a c]", got)
	}
	if g.Degree("b") != 2 {
		t.Errorf("Degree(b) = %d, want 2", g.Degree("b"))
	}
	if g.Degree("a") != 1 {
		t.Errorf("Degree(a) = %d, want 1", g.Degree("a"))
	}
	if g.Neighbors("missing") != nil {
		t.Error("Neighbors(missing) != nil")
	}
}

func TestEdgesDeduplicated(t *testing.T) {
	g := pathGraph(t, "a", "b", "c")

	edges := g.Edges()
	if len(edges) != 2 {
		t.Fatalf("len(Edges()) = %d, want 2", len(edges))
	}
	// Ordered by endpoint pair.
	if pairKey(edges[0]) >= pairKey(edges[1]) {
		t.Errorf("Edges() not ordered: %v", edges)
	}
}

func TestSubgraph(t *testing.T) {
	g := pathGraph(t, "a", "b", "c", "d")

	sub := g.Subgraph(map[string]struct{}{"a": {}, "b": {}, "d": {}, "missing": {}})
	if sub.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", sub.NodeCount())
	}
	// Only a-b survives: c was dropped, so b-c and c-d disappear.
	if sub.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", sub.EdgeCount())
	}
	if sub.Edge("a", "b") == nil {
		t.Error("Edge(a, b) missing from subgraph")
	}

	// Node structs are shared with the parent.
	if sub.Node("a") != g.Node("a") {
		t.Error("Subgraph copied node structs")
	}
}

func TestClone(t *testing.T) {
	g := pathGraph(t, "a", "b", "c")
	clone := g.Clone()

	if clone.NodeCount() != g.NodeCount() || clone.EdgeCount() != g.EdgeCount() {
		t.Fatalf("Clone() = %d nodes %d edges, want %d nodes %d edges",
			clone.NodeCount(), clone.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}

	// Topology is independent.
	clone.AddNode(node("d", entity.TypeVehicle))
	clone.AddEdge("c", "d", "linked", 1.0)
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Error("mutating the clone changed the original graph")
	}
}
