// Package export serializes graphs and reports to CSV, Parquet, JSON, and
// YAML files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/milgraph/milgraph/pkg/graph"
)

// Writer exports graph data under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir, creating it if needed.
func NewWriter(baseDir string) (*Writer, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", baseDir, err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// nodeRow is the flat node schema shared by the CSV and Parquet exports.
type nodeRow struct {
	ID               string `parquet:"id"`
	Type             string `parquet:"type"`
	Label            string `parquet:"label"`
	Color            string `parquet:"color"`
	Year             int32  `parquet:"year"`
	Manufacturer     string `parquet:"manufacturer"`
	Owner            string `parquet:"owner"`
	Country          string `parquet:"country"`
	Nationality      string `parquet:"nationality"`
	VehicleType      string `parquet:"vehicle_type"`
	OrganizationType string `parquet:"organization_type"`
	AreaType         string `parquet:"area_type"`
	Degree           int32  `parquet:"degree"`
}

// edgeRow is the flat edge schema shared by the CSV and Parquet exports.
type edgeRow struct {
	Source       string  `parquet:"source"`
	Target       string  `parquet:"target"`
	Relationship string  `parquet:"relationship"`
	Weight       float64 `parquet:"weight"`
}

func nodeRows(g *graph.Graph) []nodeRow {
	rows := make([]nodeRow, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		rows = append(rows, nodeRow{
			ID:               n.ID,
			Type:             string(n.Type),
			Label:            n.Label,
			Color:            n.Color,
			Year:             int32(n.Year),
			Manufacturer:     n.Manufacturer,
			Owner:            n.Owner,
			Country:          n.Country,
			Nationality:      n.Nationality,
			VehicleType:      n.VehicleType,
			OrganizationType: n.OrganizationType,
			AreaType:         n.AreaType,
			Degree:           int32(g.Degree(n.ID)),
		})
	}
	return rows
}

func edgeRows(g *graph.Graph) []edgeRow {
	edges := g.Edges()
	rows := make([]edgeRow, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, edgeRow{
			Source:       e.Source,
			Target:       e.Target,
			Relationship: e.Relationship,
			Weight:       e.Weight,
		})
	}
	return rows
}

// WriteCSV writes <name>_nodes.csv and <name>_edges.csv.
func (w *Writer) WriteCSV(g *graph.Graph, name string) error {
	if err := w.writeNodeCSV(g, name+"_nodes.csv"); err != nil {
		return err
	}
	return w.writeEdgeCSV(g, name+"_edges.csv")
}

func (w *Writer) writeNodeCSV(g *graph.Graph, filename string) error {
	f, err := os.Create(filepath.Join(w.baseDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := []string{
		"id", "type", "label", "color", "year", "manufacturer", "owner",
		"country", "nationality", "vehicle_type", "organization_type",
		"area_type", "degree",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range nodeRows(g) {
		record := []string{
			row.ID, row.Type, row.Label, row.Color,
			formatYear(int(row.Year)),
			row.Manufacturer, row.Owner, row.Country, row.Nationality,
			row.VehicleType, row.OrganizationType, row.AreaType,
			strconv.Itoa(int(row.Degree)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *Writer) writeEdgeCSV(g *graph.Graph, filename string) error {
	f, err := os.Create(filepath.Join(w.baseDir, filename))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"source", "target", "relationship", "weight"}); err != nil {
		return err
	}
	for _, row := range edgeRows(g) {
		record := []string{
			row.Source, row.Target, row.Relationship,
			strconv.FormatFloat(row.Weight, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteParquet writes <name>_nodes.parquet and <name>_edges.parquet.
func (w *Writer) WriteParquet(g *graph.Graph, name string) error {
	nodePath := filepath.Join(w.baseDir, name+"_nodes.parquet")
	if err := parquet.WriteFile(nodePath, nodeRows(g)); err != nil {
		return fmt.Errorf("failed to write %s: %w", nodePath, err)
	}
	edgePath := filepath.Join(w.baseDir, name+"_edges.parquet")
	if err := parquet.WriteFile(edgePath, edgeRows(g)); err != nil {
		return fmt.Errorf("failed to write %s: %w", edgePath, err)
	}
	return nil
}

// WriteJSON marshals any document, typically a graph export or a statistics
// report, to an indented JSON file.
func (w *Writer) WriteJSON(doc any, filename string) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	return os.WriteFile(filepath.Join(w.baseDir, filename), raw, 0644)
}

// WriteYAML marshals any document to a YAML file.
func (w *Writer) WriteYAML(doc any, filename string) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	return os.WriteFile(filepath.Join(w.baseDir, filename), raw, 0644)
}

// GraphDocument is the JSON graph export shape: node list plus edge list.
type GraphDocument struct {
	Nodes []*graph.Node `json:"nodes"`
	Edges []*graph.Edge `json:"edges"`
}

// Document builds the exportable document for a graph.
func Document(g *graph.Graph) GraphDocument {
	return GraphDocument{Nodes: g.Nodes(), Edges: g.Edges()}
}

func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// SafeName turns an arbitrary label into a filesystem-friendly file stem.
func SafeName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_")
	return strings.ToLower(replacer.Replace(name))
}
