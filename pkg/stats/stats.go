package stats

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

// Default analysis limits. Both are load-bearing: betweenness sampling keeps
// the most expensive centrality tractable on large graphs, and the iteration
// cap bounds eigenvector power iteration on graphs where it oscillates.
const (
	DefaultBetweennessSample  = 100
	DefaultEigenvectorMaxIter = 1000
)

// Options tunes the generator.
type Options struct {
	// BetweennessSample caps betweenness pivots; zero means the default.
	BetweennessSample int
	// EigenvectorMaxIter caps power iteration; zero means the default.
	EigenvectorMaxIter int
	// Rand seeds betweenness pivot sampling.
	Rand *rand.Rand
	// Now overrides the clock, for tests.
	Now func() time.Time
}

func (o *Options) sample() int {
	if o == nil || o.BetweennessSample == 0 {
		return DefaultBetweennessSample
	}
	return o.BetweennessSample
}

func (o *Options) eigenIter() int {
	if o == nil || o.EigenvectorMaxIter == 0 {
		return DefaultEigenvectorMaxIter
	}
	return o.EigenvectorMaxIter
}

func (o *Options) now() time.Time {
	if o == nil || o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *Options) rng() *rand.Rand {
	if o == nil {
		return nil
	}
	return o.Rand
}

// Generator computes statistics reports.
type Generator struct {
	logger *slog.Logger
	opts   *Options
}

// New creates a Generator. Nil arguments fall back to defaults.
func New(logger *slog.Logger, opts *Options) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger, opts: opts}
}

// Report is the full statistics output for one graph.
type Report struct {
	Metadata     Metadata           `json:"metadata"`
	Nodes        NodeStatistics     `json:"node_statistics"`
	Edges        EdgeStatistics     `json:"edge_statistics"`
	Connectivity Connectivity       `json:"connectivity"`
	Centrality   Centrality         `json:"centrality"`
	Entities     EntityAnalysis     `json:"entity_analysis"`
	Temporal     TemporalAnalysis   `json:"temporal_analysis"`
	Geographic   GeographicAnalysis `json:"geographic_analysis"`
	Technology   TechnologyAnalysis `json:"technology_analysis"`
}

// Metadata identifies a report and the graph it describes.
type Metadata struct {
	ReportID     string         `json:"report_id"`
	GeneratedAt  time.Time      `json:"generated_at"`
	NodeCount    int            `json:"node_count"`
	EdgeCount    int            `json:"edge_count"`
	EntityCounts map[string]int `json:"entity_counts"`
}

// NodeStatistics summarizes node types and degrees.
type NodeStatistics struct {
	TotalNodes         int            `json:"total_nodes"`
	NodeTypes          map[string]int `json:"node_types"`
	DegreeDistribution map[int]int    `json:"degree_distribution"`
	DegreeStats        *DegreeStats   `json:"degree_stats,omitempty"`
	IsolatedNodes      []string       `json:"isolated_nodes"`
}

// DegreeStats are summary statistics over node degrees.
type DegreeStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// EdgeStatistics summarizes relationships and weights.
type EdgeStatistics struct {
	TotalEdges         int            `json:"total_edges"`
	RelationshipTypes  map[string]int `json:"relationship_types"`
	WeightDistribution map[string]int `json:"edge_weight_distribution"`
}

// Connectivity summarizes the structural shape of the graph. The path
// metrics cover the whole graph when it is connected and the largest
// component otherwise.
type Connectivity struct {
	IsConnected          bool    `json:"is_connected"`
	NumberOfComponents   int     `json:"number_of_components"`
	Density              float64 `json:"density"`
	ComponentSizes       []int   `json:"component_sizes,omitempty"`
	LargestComponentSize int     `json:"largest_component_size"`
	AverageClustering    float64 `json:"average_clustering"`

	AveragePathLength float64 `json:"average_shortest_path_length,omitempty"`
	Diameter          int     `json:"diameter,omitempty"`

	LargestComponentAvgPath  float64 `json:"largest_component_avg_path,omitempty"`
	LargestComponentDiameter int     `json:"largest_component_diameter,omitempty"`

	CommunityCount int   `json:"community_count"`
	CommunitySizes []int `json:"community_sizes,omitempty"`
}

// Centrality holds the top-10 rankings per centrality measure. Closeness is
// present only for connected graphs; eigenvector is omitted when power
// iteration fails to converge.
type Centrality struct {
	TopDegree      []graph.RankedNode `json:"top_degree_centrality,omitempty"`
	TopBetweenness []graph.RankedNode `json:"top_betweenness_centrality,omitempty"`
	TopCloseness   []graph.RankedNode `json:"top_closeness_centrality,omitempty"`
	TopEigenvector []graph.RankedNode `json:"top_eigenvector_centrality,omitempty"`
}

// Generate computes the full statistics report for a graph.
func (s *Generator) Generate(g *graph.Graph) *Report {
	s.logger.Info("generating statistics", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	return &Report{
		Metadata: Metadata{
			ReportID:     uuid.NewString(),
			GeneratedAt:  s.opts.now(),
			NodeCount:    g.NodeCount(),
			EdgeCount:    g.EdgeCount(),
			EntityCounts: countByType(g),
		},
		Nodes:        s.analyzeNodes(g),
		Edges:        s.analyzeEdges(g),
		Connectivity: s.analyzeConnectivity(g),
		Centrality:   s.analyzeCentrality(g),
		Entities:     s.analyzeEntities(g),
		Temporal:     s.analyzeTemporal(g),
		Geographic:   s.analyzeGeographic(g),
		Technology:   s.analyzeTechnology(g),
	}
}

func countByType(g *graph.Graph) map[string]int {
	counts := make(map[string]int)
	for _, n := range g.Nodes() {
		counts[string(n.Type)]++
	}
	return counts
}

func (s *Generator) analyzeNodes(g *graph.Graph) NodeStatistics {
	stats := NodeStatistics{
		TotalNodes:         g.NodeCount(),
		NodeTypes:          make(map[string]int),
		DegreeDistribution: make(map[int]int),
		IsolatedNodes:      []string{},
	}

	var degrees []int
	for _, n := range g.Nodes() {
		stats.NodeTypes[string(n.Type)]++
		degree := g.Degree(n.ID)
		stats.DegreeDistribution[degree]++
		degrees = append(degrees, degree)
		if degree == 0 {
			stats.IsolatedNodes = append(stats.IsolatedNodes, n.ID)
		}
	}

	if len(degrees) > 0 {
		stats.DegreeStats = degreeStats(degrees)
	}
	return stats
}

func degreeStats(degrees []int) *DegreeStats {
	sorted := append([]int(nil), degrees...)
	sort.Ints(sorted)

	sum := 0
	for _, d := range sorted {
		sum += d
	}
	mean := float64(sum) / float64(len(sorted))

	variance := 0.0
	for _, d := range sorted {
		diff := float64(d) - mean
		variance += diff * diff
	}
	variance /= float64(len(sorted))

	mid := len(sorted) / 2
	median := float64(sorted[mid])
	if len(sorted)%2 == 0 {
		median = (float64(sorted[mid-1]) + float64(sorted[mid])) / 2
	}

	return &DegreeStats{
		Mean:   mean,
		Median: median,
		Std:    math.Sqrt(variance),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

func (s *Generator) analyzeEdges(g *graph.Graph) EdgeStatistics {
	stats := EdgeStatistics{
		TotalEdges:         g.EdgeCount(),
		RelationshipTypes:  make(map[string]int),
		WeightDistribution: make(map[string]int),
	}
	for _, e := range g.Edges() {
		relationship := e.Relationship
		if relationship == "" {
			relationship = "unknown"
		}
		stats.RelationshipTypes[relationship]++
		stats.WeightDistribution[strconv.FormatFloat(e.Weight, 'g', -1, 64)]++
	}
	return stats
}

func (s *Generator) analyzeConnectivity(g *graph.Graph) Connectivity {
	conn := Connectivity{
		IsConnected:        g.IsConnected(),
		Density:            g.Density(),
		AverageClustering:  g.AverageClustering(),
		NumberOfComponents: 0,
	}
	if g.NodeCount() == 0 {
		return conn
	}

	components := g.ConnectedComponents()
	conn.NumberOfComponents = len(components)
	for _, component := range components {
		conn.ComponentSizes = append(conn.ComponentSizes, len(component))
	}
	conn.LargestComponentSize = len(components[0])

	if conn.IsConnected {
		if ps, ok := g.ShortestPathStats(); ok {
			conn.AveragePathLength = ps.AverageLength
			conn.Diameter = ps.Diameter
		}
	} else if len(components[0]) > 1 {
		keep := make(map[string]struct{}, len(components[0]))
		for _, id := range components[0] {
			keep[id] = struct{}{}
		}
		if ps, ok := g.Subgraph(keep).ShortestPathStats(); ok {
			conn.LargestComponentAvgPath = ps.AverageLength
			conn.LargestComponentDiameter = ps.Diameter
		}
	}

	communities := g.Communities()
	conn.CommunityCount = len(communities)
	for _, community := range communities {
		conn.CommunitySizes = append(conn.CommunitySizes, len(community))
	}
	return conn
}

func (s *Generator) analyzeCentrality(g *graph.Graph) Centrality {
	var c Centrality
	if g.NodeCount() == 0 {
		return c
	}

	c.TopDegree = graph.TopN(g.DegreeCentrality(), 10)

	sample := 0
	if g.NodeCount() > s.opts.sample() {
		sample = s.opts.sample()
	}
	c.TopBetweenness = graph.TopN(g.BetweennessCentrality(sample, s.opts.rng()), 10)

	if g.IsConnected() {
		c.TopCloseness = graph.TopN(g.ClosenessCentrality(), 10)
	}

	eigen, err := g.EigenvectorCentrality(s.opts.eigenIter(), 0)
	if err != nil {
		s.logger.Warn("could not compute eigenvector centrality", "error", err)
	} else {
		c.TopEigenvector = graph.TopN(eigen, 10)
	}
	return c
}

// TemporalAnalysis tracks per-country activity over time for vehicles and
// military organizations.
type TemporalAnalysis struct {
	TechnologyTimeline map[string]map[int]int `json:"technology_timeline"`
}

func (s *Generator) analyzeTemporal(g *graph.Graph) TemporalAnalysis {
	timeline := make(map[string]map[int]int)
	for _, n := range g.Nodes() {
		if n.Year == 0 {
			continue
		}
		if n.Type != entity.TypeVehicle && n.Type != entity.TypeOrganization {
			continue
		}
		country := n.Owner
		if country == "" {
			country = n.Country
		}
		if country == "" {
			country = n.Nationality
		}
		if country == "" {
			continue
		}
		if timeline[country] == nil {
			timeline[country] = make(map[int]int)
		}
		timeline[country][n.Year]++
	}
	return TemporalAnalysis{TechnologyTimeline: timeline}
}

// GeographicAnalysis maps asset concentration to countries.
type GeographicAnalysis struct {
	CountryAssets map[string]int `json:"country_assets"`
	BaseLocations map[string]int `json:"base_locations"`
}

func (s *Generator) analyzeGeographic(g *graph.Graph) GeographicAnalysis {
	geo := GeographicAnalysis{
		CountryAssets: make(map[string]int),
		BaseLocations: make(map[string]int),
	}
	for _, n := range g.Nodes() {
		switch n.Type {
		case entity.TypeVehicle:
			if n.Owner != "" {
				geo.CountryAssets[n.Owner]++
			}
		case entity.TypeArea:
			if n.AreaType == "military" && n.Country != "" {
				geo.BaseLocations[n.Country]++
			}
		}
	}
	return geo
}

// TechnologyAnalysis counts manufacturers across vehicle nodes.
type TechnologyAnalysis struct {
	Manufacturers map[string]int `json:"manufacturers"`
}

func (s *Generator) analyzeTechnology(g *graph.Graph) TechnologyAnalysis {
	tech := TechnologyAnalysis{Manufacturers: make(map[string]int)}
	for _, n := range g.Nodes() {
		if n.Type == entity.TypeVehicle && n.Manufacturer != "" {
			tech.Manufacturers[n.Manufacturer]++
		}
	}
	return tech
}
