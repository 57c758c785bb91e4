package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

// ComprehensiveReport is the top-level analysis document combining the
// structural statistics with database coverage, country comparison, and
// recommendations.
type ComprehensiveReport struct {
	Metadata     ReportMetadata       `json:"report_metadata"`
	Summary      ExecutiveSummary     `json:"executive_summary"`
	Database     DatabaseOverview     `json:"database_overview"`
	Entities     EntityAnalysis       `json:"entity_statistics"`
	Relationship RelationshipAnalysis `json:"relationship_analysis"`
	Comparison   *Comparison          `json:"country_comparison"`
	Technology   TechnologyAnalysis   `json:"technology_analysis"`
	Timeline     TemporalAnalysis     `json:"timeline_analysis"`
	Recommends   []string             `json:"recommendations"`
}

// ReportMetadata identifies a comprehensive report.
type ReportMetadata struct {
	ReportID    string    `json:"report_id"`
	GeneratedAt time.Time `json:"generated_at"`
	NodeCount   int       `json:"node_count"`
	EdgeCount   int       `json:"edge_count"`
}

// ExecutiveSummary is the headline view of the dataset.
type ExecutiveSummary struct {
	TotalEntities       int            `json:"total_entities"`
	TotalRelationships  int            `json:"total_relationships"`
	EntityBreakdown     map[string]int `json:"entity_breakdown"`
	LargestCategory     string         `json:"largest_entity_category"`
	DataQualityScore    float64        `json:"data_quality_score"`
	KeyFindings         []string       `json:"key_findings"`
	ComparisonCountries []string       `json:"comparison_countries"`
}

// DatabaseOverview records which source databases fed the graph.
type DatabaseOverview struct {
	DatabasesUsed []string       `json:"databases_used"`
	DatabaseSizes map[string]int `json:"database_sizes"`
}

// RelationshipAnalysis is the type-to-type adjacency matrix over edges.
type RelationshipAnalysis struct {
	TotalEdges        int                       `json:"total_edges"`
	RelationshipTypes map[string]int            `json:"relationship_types"`
	TypeMatrix        map[string]map[string]int `json:"type_connection_matrix"`
}

// GenerateComprehensive builds the full report. databases maps source
// database names to their sizes and may be nil; countries selects the
// comparison set and defaults to DefaultComparisonCountries when empty.
func (s *Generator) GenerateComprehensive(g *graph.Graph, databases map[string]int, countries []string) *ComprehensiveReport {
	if len(countries) == 0 {
		countries = DefaultComparisonCountries
	}
	s.logger.Info("generating comprehensive report",
		"nodes", g.NodeCount(), "edges", g.EdgeCount(), "countries", len(countries))

	report := &ComprehensiveReport{
		Metadata: ReportMetadata{
			ReportID:    uuid.NewString(),
			GeneratedAt: s.opts.now(),
			NodeCount:   g.NodeCount(),
			EdgeCount:   g.EdgeCount(),
		},
		Database:     databaseOverview(g, databases),
		Entities:     s.analyzeEntities(g),
		Relationship: relationshipAnalysis(g),
		Comparison:   s.CompareCountries(g, countries),
		Technology:   s.analyzeTechnology(g),
		Timeline:     s.analyzeTemporal(g),
	}
	report.Summary = s.executiveSummary(g, countries)
	report.Recommends = s.recommendations(g, report)
	return report
}

// QualityScore is a 0..1 composite of graph richness, per-node field
// completeness, and type consistency, weighted 0.3/0.5/0.2 and capped at 1.
func QualityScore(g *graph.Graph) float64 {
	nodes := g.NodeCount()
	edges := g.EdgeCount()

	richness := float64(edges) / math.Max(1, float64(nodes))
	completeness := fieldCompleteness(g)
	consistency := typeConsistency(g)

	score := 0.3*richness + 0.5*completeness + 0.2*consistency
	return math.Min(1.0, score)
}

// fieldCompleteness is the filled fraction of the expected fields over all
// nodes: type and label always expected, plus year, country, manufacturer,
// and owner.
func fieldCompleteness(g *graph.Graph) float64 {
	if g.NodeCount() == 0 {
		return 0
	}
	filled, total := 0, 0
	for _, n := range g.Nodes() {
		total += 6
		if n.Type != "" {
			filled++
		}
		if n.Label != "" {
			filled++
		}
		if n.Year != 0 {
			filled++
		}
		if n.Country != "" {
			filled++
		}
		if n.Manufacturer != "" {
			filled++
		}
		if n.Owner != "" {
			filled++
		}
	}
	return float64(filled) / float64(total)
}

func typeConsistency(g *graph.Graph) float64 {
	if g.NodeCount() == 0 {
		return 0
	}
	consistent := 0
	for _, n := range g.Nodes() {
		for _, t := range entity.KnownTypes {
			if n.Type == t {
				consistent++
				break
			}
		}
	}
	return float64(consistent) / float64(g.NodeCount())
}

func databaseOverview(g *graph.Graph, databases map[string]int) DatabaseOverview {
	overview := DatabaseOverview{DatabaseSizes: make(map[string]int)}
	if databases != nil {
		for name, size := range databases {
			overview.DatabaseSizes[name] = size
		}
	} else {
		// Fall back to the source tag carried on every merged record.
		for _, n := range g.Nodes() {
			if src, ok := n.Data[entity.SourceDatabaseKey].(string); ok && src != "" {
				overview.DatabaseSizes[src]++
			}
		}
	}
	for name := range overview.DatabaseSizes {
		overview.DatabasesUsed = append(overview.DatabasesUsed, name)
	}
	sort.Strings(overview.DatabasesUsed)
	return overview
}

func relationshipAnalysis(g *graph.Graph) RelationshipAnalysis {
	analysis := RelationshipAnalysis{
		TotalEdges:        g.EdgeCount(),
		RelationshipTypes: make(map[string]int),
		TypeMatrix:        make(map[string]map[string]int),
	}
	for _, e := range g.Edges() {
		relationship := e.Relationship
		if relationship == "" {
			relationship = "unknown"
		}
		analysis.RelationshipTypes[relationship]++

		src, dst := g.Node(e.Source), g.Node(e.Target)
		if src == nil || dst == nil {
			continue
		}
		srcType, dstType := string(src.Type), string(dst.Type)
		if analysis.TypeMatrix[srcType] == nil {
			analysis.TypeMatrix[srcType] = make(map[string]int)
		}
		analysis.TypeMatrix[srcType][dstType]++
	}
	return analysis
}

func (s *Generator) executiveSummary(g *graph.Graph, countries []string) ExecutiveSummary {
	summary := ExecutiveSummary{
		TotalEntities:       g.NodeCount(),
		TotalRelationships:  g.EdgeCount(),
		EntityBreakdown:     countByType(g),
		DataQualityScore:    QualityScore(g),
		ComparisonCountries: append([]string(nil), countries...),
	}

	largest, largestCount := "", -1
	for t, count := range summary.EntityBreakdown {
		if count > largestCount || (count == largestCount && t < largest) {
			largest, largestCount = t, count
		}
	}
	summary.LargestCategory = largest

	summary.KeyFindings = append(summary.KeyFindings,
		fmt.Sprintf("Graph contains %d entities linked by %d relationships",
			summary.TotalEntities, summary.TotalRelationships))
	if largest != "" {
		summary.KeyFindings = append(summary.KeyFindings,
			fmt.Sprintf("Largest entity category is %q with %d entities", largest, largestCount))
	}
	if components := g.ConnectedComponents(); len(components) > 1 {
		summary.KeyFindings = append(summary.KeyFindings,
			fmt.Sprintf("Graph splits into %d disconnected components; largest holds %d entities",
				len(components), len(components[0])))
	}
	summary.KeyFindings = append(summary.KeyFindings,
		fmt.Sprintf("Data quality score is %.2f out of 1.00", summary.DataQualityScore))
	return summary
}

func (s *Generator) recommendations(g *graph.Graph, report *ComprehensiveReport) []string {
	var recs []string

	if report.Summary.DataQualityScore < 0.7 {
		recs = append(recs,
			"Improve data quality: enrich entity fields (year, country, manufacturer, owner) and add missing relationships")
	}
	if len(report.Database.DatabasesUsed) < 5 {
		recs = append(recs,
			fmt.Sprintf("Broaden source coverage: only %d databases contributed; consider integrating additional sources",
				len(report.Database.DatabasesUsed)))
	}

	vehicles := report.Summary.EntityBreakdown[string(entity.TypeVehicle)]
	organizations := report.Summary.EntityBreakdown[string(entity.TypeOrganization)]
	if organizations > 0 && vehicles > 10*organizations {
		recs = append(recs,
			"Vehicle records heavily outnumber organizations; add organizational context to balance the graph")
	}

	if len(recs) == 0 {
		recs = append(recs, "Dataset is in good shape; no structural gaps detected")
	}
	return recs
}
