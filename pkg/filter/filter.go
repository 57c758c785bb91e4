package filter

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

// Set is a set of node ids.
type Set map[string]struct{}

// NewSet builds a set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an id.
func (s Set) Add(id string) { s[id] = struct{}{} }

// Contains reports membership.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns the ids present in both sets.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set)
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Union returns the ids present in either set.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// Func computes the node ids matching a filter argument. Implementations
// never fail: malformed arguments yield an empty set.
type Func func(g *graph.Graph, value any) Set

// Registry is an immutable mapping from filter name to predicate.
type Registry struct {
	filters map[string]Func
	logger  *slog.Logger
}

// NewRegistry constructs the registry with every built-in filter. A nil
// logger falls back to slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{logger: logger}
	r.filters = map[string]Func{
		"country":            byCountry,
		"type":               byType,
		"year":               byYear,
		"year_range":         byYearRange,
		"manufacturer":       byManufacturer,
		"owner":              byOwner,
		"vehicle_type":       byVehicleType,
		"organization_type":  byOrganizationType,
		"area_type":          byAreaType,
		"relationship":       byRelationship,
		"keyword":            byKeyword,
		"has_connection":     byConnection,
		"degree_min":         byMinDegree,
		"degree_max":         byMaxDegree,
		"equipment_category": byEquipmentCategory,
	}
	return r
}

// Names returns the registered filter names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	return names
}

// Lookup returns the predicate for a name.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.filters[name]
	return fn, ok
}

// Apply evaluates every named filter and returns the induced subgraph over
// the intersection of their matches. Unknown filter names are logged and
// ignored. An empty filter map returns a copy of the whole graph.
func (r *Registry) Apply(g *graph.Graph, filters map[string]any) *graph.Graph {
	r.logger.Info("applying filters", "filters", len(filters), "nodes", g.NodeCount())
	if len(filters) == 0 {
		return g.Clone()
	}

	valid := NewSet(g.NodeIDs()...)
	for name, value := range filters {
		fn, ok := r.filters[name]
		if !ok {
			r.logger.Warn("unknown filter", "name", name)
			continue
		}
		valid = valid.Intersect(fn(g, value))
		r.logger.Debug("filter applied", "name", name, "remaining", len(valid))
	}

	filtered := g.Subgraph(valid)
	r.logger.Info("filtered graph", "nodes", filtered.NodeCount(), "edges", filtered.EdgeCount())
	return filtered
}

// evaluate runs one filter map with AND semantics and returns the matching
// node set without materializing a subgraph.
func (r *Registry) evaluate(g *graph.Graph, filters map[string]any) Set {
	valid := NewSet(g.NodeIDs()...)
	for name, value := range filters {
		fn, ok := r.filters[name]
		if !ok {
			r.logger.Warn("unknown filter", "name", name)
			continue
		}
		valid = valid.Intersect(fn(g, value))
	}
	return valid
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// byCountry matches an exact country value, owner/nationality suffix, or a
// country node whose names contain the string.
func byCountry(g *graph.Graph, value any) Set {
	matches := make(Set)
	country := strings.ToLower(asString(value))

	for _, n := range g.Nodes() {
		if strings.ToLower(n.Country) == country {
			matches.Add(n.ID)
			continue
		}
		if n.Owner != "" && strings.HasSuffix(strings.ToLower(n.Owner), country) {
			matches.Add(n.ID)
			continue
		}
		if n.Nationality != "" && strings.HasSuffix(strings.ToLower(n.Nationality), country) {
			matches.Add(n.ID)
			continue
		}
		if n.Type == entity.TypeCountry {
			for _, name := range entity.NameValues(n.Data) {
				if strings.Contains(strings.ToLower(name), country) {
					matches.Add(n.ID)
					break
				}
			}
		}
	}
	return matches
}

func byType(g *graph.Graph, value any) Set {
	matches := make(Set)
	want := entity.Type(asString(value))
	for _, n := range g.Nodes() {
		if n.Type == want {
			matches.Add(n.ID)
		}
	}
	return matches
}

// byYear matches a specific year against the flattened attribute and the raw
// record. Fails closed on unparseable input.
func byYear(g *graph.Graph, value any) Set {
	matches := make(Set)
	target, ok := asInt(value)
	if !ok {
		return matches
	}
	for _, n := range g.Nodes() {
		if n.Year == target {
			matches.Add(n.ID)
			continue
		}
		if year, ok := entity.Year(n.Data["year"]); ok && year == target {
			matches.Add(n.ID)
		}
	}
	return matches
}

// byYearRange matches an inclusive "YYYY-YYYY" range. Fails closed on
// malformed input.
func byYearRange(g *graph.Graph, value any) Set {
	matches := make(Set)
	parts := strings.SplitN(asString(value), "-", 2)
	if len(parts) != 2 {
		return matches
	}
	start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return matches
	}
	inRange := func(year int) bool { return year != 0 && start <= year && year <= end }
	for _, n := range g.Nodes() {
		if inRange(n.Year) {
			matches.Add(n.ID)
			continue
		}
		if year, ok := entity.Year(n.Data["year"]); ok && inRange(year) {
			matches.Add(n.ID)
		}
	}
	return matches
}

func byManufacturer(g *graph.Graph, value any) Set {
	matches := make(Set)
	manufacturer := strings.ToLower(asString(value))
	for _, n := range g.Nodes() {
		if strings.Contains(strings.ToLower(n.Manufacturer), manufacturer) {
			matches.Add(n.ID)
			continue
		}
		if make_ := entity.String(n.Data, "make"); make_ != "" &&
			strings.Contains(strings.ToLower(make_), manufacturer) {
			matches.Add(n.ID)
		}
	}
	return matches
}

func byOwner(g *graph.Graph, value any) Set {
	matches := make(Set)
	owner := strings.ToLower(asString(value))
	for _, n := range g.Nodes() {
		if n.Owner != "" && strings.Contains(strings.ToLower(n.Owner), owner) {
			matches.Add(n.ID)
		}
	}
	return matches
}

func byVehicleType(g *graph.Graph, value any) Set {
	return byTypedSubstring(g, entity.TypeVehicle, asString(value), func(n *graph.Node) string {
		return n.VehicleType
	})
}

func byOrganizationType(g *graph.Graph, value any) Set {
	return byTypedSubstring(g, entity.TypeOrganization, asString(value), func(n *graph.Node) string {
		return n.OrganizationType
	})
}

func byAreaType(g *graph.Graph, value any) Set {
	return byTypedSubstring(g, entity.TypeArea, asString(value), func(n *graph.Node) string {
		return n.AreaType
	})
}

func byTypedSubstring(g *graph.Graph, entityType entity.Type, value string, field func(*graph.Node) string) Set {
	matches := make(Set)
	value = strings.ToLower(value)
	for _, n := range g.Nodes() {
		if n.Type != entityType {
			continue
		}
		if strings.Contains(strings.ToLower(field(n)), value) {
			matches.Add(n.ID)
		}
	}
	return matches
}

// byRelationship returns both endpoints of every edge carrying the given
// relationship label.
func byRelationship(g *graph.Graph, value any) Set {
	matches := make(Set)
	relationship := asString(value)
	for _, e := range g.Edges() {
		if e.Relationship == relationship {
			matches.Add(e.Source)
			matches.Add(e.Target)
		}
	}
	return matches
}

// byKeyword searches label, node id, name values, and the descriptive fields
// of the raw record.
func byKeyword(g *graph.Graph, value any) Set {
	matches := make(Set)
	keyword := strings.ToLower(asString(value))

	for _, n := range g.Nodes() {
		if strings.Contains(strings.ToLower(n.Label), keyword) {
			matches.Add(n.ID)
			continue
		}
		if strings.Contains(strings.ToLower(n.ID), keyword) {
			matches.Add(n.ID)
			continue
		}
		if nameContains(n.Data, keyword) {
			matches.Add(n.ID)
			continue
		}
		if fieldContains(n.Data, keyword, "description", "title", "model", "make") {
			matches.Add(n.ID)
		}
	}
	return matches
}

func nameContains(record entity.Record, keyword string) bool {
	for _, name := range entity.NameValues(record) {
		if strings.Contains(strings.ToLower(name), keyword) {
			return true
		}
	}
	return false
}

func fieldContains(record entity.Record, keyword string, fields ...string) bool {
	for _, field := range fields {
		if v := entity.String(record, field); v != "" &&
			strings.Contains(strings.ToLower(v), keyword) {
			return true
		}
	}
	return false
}

// byConnection returns the neighbors of a node plus the node itself, or an
// empty set when the node is absent.
func byConnection(g *graph.Graph, value any) Set {
	matches := make(Set)
	id := asString(value)
	if !g.HasNode(id) {
		return matches
	}
	matches.Add(id)
	for _, neighbor := range g.Neighbors(id) {
		matches.Add(neighbor)
	}
	return matches
}

func byMinDegree(g *graph.Graph, value any) Set {
	matches := make(Set)
	min, ok := asInt(value)
	if !ok {
		return matches
	}
	for _, id := range g.NodeIDs() {
		if g.Degree(id) >= min {
			matches.Add(id)
		}
	}
	return matches
}

func byMaxDegree(g *graph.Graph, value any) Set {
	matches := make(Set)
	max, ok := asInt(value)
	if !ok {
		return matches
	}
	for _, id := range g.NodeIDs() {
		if g.Degree(id) <= max {
			matches.Add(id)
		}
	}
	return matches
}
