package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

func exportGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddNode(&graph.Node{
		ID: "v1", Type: entity.TypeVehicle, Label: "Tank",
		Year: 1985, Owner: "uk", Manufacturer: "Vickers",
	})
	g.AddNode(&graph.Node{ID: "uk", Type: entity.TypeCountry, Label: "UK"})
	g.AddEdge("v1", "uk", "owner", 1.0)
	return g
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteCSV(exportGraph(t), "test"))

	nodes := readCSV(t, filepath.Join(dir, "test_nodes.csv"))
	require.Len(t, nodes, 3)
	assert.Equal(t, "id", nodes[0][0])
	assert.Len(t, nodes[0], 13)

	byID := map[string][]string{nodes[1][0]: nodes[1], nodes[2][0]: nodes[2]}
	v1 := byID["v1"]
	require.NotNil(t, v1)
	assert.Equal(t, "1985", v1[4])
	assert.Equal(t, "Vickers", v1[5])
	assert.Equal(t, "1", v1[12])

	// Year 0 renders empty, not "0".
	uk := byID["uk"]
	require.NotNil(t, uk)
	assert.Equal(t, "", uk[4])

	edges := readCSV(t, filepath.Join(dir, "test_edges.csv"))
	require.Len(t, edges, 2)
	assert.Equal(t, []string{"source", "target", "relationship", "weight"}, edges[0])
	assert.Equal(t, []string{"v1", "uk", "owner", "1"}, edges[1])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteParquet(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteParquet(exportGraph(t), "test"))

	for _, name := range []string{"test_nodes.parquet", "test_edges.parquet"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	doc := Document(exportGraph(t))
	require.NoError(t, w.WriteJSON(doc, "graph.json"))

	raw, err := os.ReadFile(filepath.Join(dir, "graph.json"))
	require.NoError(t, err)

	var decoded GraphDocument
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Nodes, 2)
	require.Len(t, decoded.Edges, 1)
	assert.Equal(t, "owner", decoded.Edges[0].Relationship)
}

func TestWriteYAML(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	doc := map[string]any{"quality": 0.85, "nodes": 2}
	require.NoError(t, w.WriteYAML(doc, "report.yaml"))

	raw, err := os.ReadFile(filepath.Join(dir, "report.yaml"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, 0.85, decoded["quality"])
	assert.Equal(t, 2, decoded["nodes"])
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	_, err := NewWriter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSafeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"UK Armed Forces", "uk_armed_forces"},
		{"a/b\\c:d", "a_b_c_d"},
		{"already_safe", "already_safe"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SafeName(tc.in))
	}
}
