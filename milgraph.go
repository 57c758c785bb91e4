package milgraph

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/milgraph/milgraph/pkg/builder"
	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/filter"
	"github.com/milgraph/milgraph/pkg/graph"
	"github.com/milgraph/milgraph/pkg/loader"
	"github.com/milgraph/milgraph/pkg/stats"
)

// ErrNoGraph is returned by query operations before any graph has been built.
var ErrNoGraph = errors.New("milgraph: no graph built yet")

// Config holds configuration for the Analyzer.
type Config struct {
	// DataDir is the directory holding the JSON database files.
	DataDir string
	// Databases maps database names to filenames; nil means the
	// loader defaults.
	Databases map[string]string
	// Stats tunes the statistics engine.
	Stats *stats.Options
	// Logger receives structured logs; nil means slog.Default.
	Logger *slog.Logger
}

// Analyzer is the main entry point. It loads entity databases, builds the
// asset graph, and answers filter, statistics, and comparison queries over
// it. Safe for concurrent use after Build.
type Analyzer struct {
	logger  *slog.Logger
	loader  *loader.Loader
	builder *builder.Builder
	filters *filter.Registry
	stats   *stats.Generator
	config  *Config

	mu        sync.RWMutex
	graph     *graph.Graph
	databases map[string]int
}

// New creates an Analyzer. A nil config uses defaults throughout.
func New(cfg *Config) *Analyzer {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		logger:  logger,
		loader:  loader.New(cfg.DataDir, logger),
		builder: builder.New(logger),
		filters: filter.NewRegistry(logger),
		stats:   stats.New(logger, cfg.Stats),
		config:  cfg,
	}
}

// Load reads the configured databases, merges them, and builds the graph.
func (a *Analyzer) Load() error {
	sources, err := a.loader.LoadAll(a.config.Databases)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return errors.New("milgraph: no databases could be loaded")
	}

	order := make([]string, 0, len(sources))
	for name := range sources {
		order = append(order, name)
	}
	sort.Strings(order)

	a.BuildFrom(order, sources)
	return nil
}

// BuildFrom merges the given sources in order and builds the graph from the
// result. Earlier sources win on duplicate ids.
func (a *Analyzer) BuildFrom(order []string, sources map[string]entity.Collections) {
	merged := a.builder.Combine(order, sources)
	g := a.builder.Build(merged)

	sizes := make(map[string]int, len(sources))
	for name, collections := range sources {
		total := 0
		for _, records := range collections {
			total += len(records)
		}
		sizes[name] = total
	}

	a.mu.Lock()
	a.graph = g
	a.databases = sizes
	a.mu.Unlock()
}

// Build constructs the graph from a single set of collections.
func (a *Analyzer) Build(collections entity.Collections) {
	g := a.builder.Build(collections)
	a.mu.Lock()
	a.graph = g
	a.databases = nil
	a.mu.Unlock()
}

// Graph returns the current graph, or nil before Build.
func (a *Analyzer) Graph() *graph.Graph {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.graph
}

// Databases returns the per-database entity counts from the last Load.
func (a *Analyzer) Databases() map[string]int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]int, len(a.databases))
	for name, size := range a.databases {
		out[name] = size
	}
	return out
}

// Filter applies the criteria to the current graph and returns the induced
// subgraph of matching nodes.
func (a *Analyzer) Filter(criteria map[string]any) (*graph.Graph, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	return a.filters.Apply(g, criteria), nil
}

// FilterAdvanced applies an AND/OR/NOT combination of criteria.
func (a *Analyzer) FilterAdvanced(f filter.AdvancedFilter) (*graph.Graph, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	return a.filters.ApplyAdvanced(g, f), nil
}

// Search runs a keyword search over the current graph.
func (a *Analyzer) Search(terms []string, mode filter.SearchMode) (*graph.Graph, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	return g.Subgraph(a.filters.SearchEntities(g, terms, mode)), nil
}

// Suggest returns the filterable values present in the current graph.
func (a *Analyzer) Suggest() (*filter.Suggestions, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	return a.filters.Suggest(g), nil
}

// FilterNames lists the registered filter names.
func (a *Analyzer) FilterNames() []string {
	return a.filters.Names()
}

// Statistics generates the full statistics report for the current graph.
func (a *Analyzer) Statistics() (*stats.Report, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	return a.stats.Generate(g), nil
}

// Compare builds the cross-country comparison. An empty country list uses
// the defaults.
func (a *Analyzer) Compare(countries []string) (*stats.Comparison, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	if len(countries) == 0 {
		countries = stats.DefaultComparisonCountries
	}
	return a.stats.CompareCountries(g, countries), nil
}

// Report generates the comprehensive analysis report.
func (a *Analyzer) Report(countries []string) (*stats.ComprehensiveReport, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	return a.stats.GenerateComprehensive(g, a.Databases(), countries), nil
}

// Connectivity analyzes the structural shape of the current graph.
func (a *Analyzer) Connectivity() (*builder.ConnectivityReport, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	opts := &builder.Options{}
	if a.config.Stats != nil {
		opts.BetweennessSample = a.config.Stats.BetweennessSample
		opts.Rand = a.config.Stats.Rand
	}
	return a.builder.AnalyzeConnectivity(g, opts), nil
}

// FindPaths returns up to maxPaths paths between two entities, shortest
// first, each at most maxLength edges long.
func (a *Analyzer) FindPaths(source, target string, maxPaths, maxLength int) ([][]string, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	return a.builder.FindPaths(g, source, target, maxPaths, maxLength), nil
}

// Subgraph extracts the induced subgraph around the given ids, optionally
// including neighbors out to maxDistance hops.
func (a *Analyzer) Subgraph(ids []string, includeNeighbors bool, maxDistance int) (*graph.Graph, error) {
	g := a.Graph()
	if g == nil {
		return nil, ErrNoGraph
	}
	return a.builder.Subgraph(g, ids, includeNeighbors, maxDistance), nil
}

// Quality computes the data-quality score of the current graph.
func (a *Analyzer) Quality() (float64, error) {
	g := a.Graph()
	if g == nil {
		return 0, ErrNoGraph
	}
	return stats.QualityScore(g), nil
}
