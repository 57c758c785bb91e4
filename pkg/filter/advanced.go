package filter

import (
	"sort"
	"strconv"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

// Logic selects how advanced filter conditions combine.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Condition is one clause of an advanced filter: a filter map evaluated with
// AND semantics, optionally complemented against the full node set.
type Condition struct {
	Filter map[string]any `json:"filter"`
	Not    bool           `json:"not,omitempty"`
}

// AdvancedFilter combines several conditions under one logical operator.
// An empty or unknown Logic defaults to AND.
type AdvancedFilter struct {
	Logic      Logic       `json:"logic,omitempty"`
	Conditions []Condition `json:"conditions"`
}

// ApplyAdvanced evaluates an advanced filter and returns the induced
// subgraph. No conditions returns a copy of the whole graph.
func (r *Registry) ApplyAdvanced(g *graph.Graph, f AdvancedFilter) *graph.Graph {
	if len(f.Conditions) == 0 {
		return g.Clone()
	}

	all := NewSet(g.NodeIDs()...)
	results := make([]Set, 0, len(f.Conditions))
	for _, condition := range f.Conditions {
		matched := r.evaluate(g, condition.Filter)
		if condition.Not {
			complement := make(Set, len(all))
			for id := range all {
				if !matched.Contains(id) {
					complement.Add(id)
				}
			}
			matched = complement
		}
		results = append(results, matched)
	}

	final := results[0]
	for _, result := range results[1:] {
		if f.Logic == LogicOr {
			final = final.Union(result)
		} else {
			final = final.Intersect(result)
		}
	}
	return g.Subgraph(final)
}

// SearchMode selects how multi-term search results combine.
type SearchMode string

const (
	// MatchAny unions per-term results (the default).
	MatchAny SearchMode = "any"
	// MatchAll intersects per-term results.
	MatchAll SearchMode = "all"
)

// SearchEntities runs the keyword filter once per term and combines the
// results: intersection for MatchAll, union otherwise. No terms matches
// every node.
func (r *Registry) SearchEntities(g *graph.Graph, terms []string, mode SearchMode) Set {
	if len(terms) == 0 {
		return NewSet(g.NodeIDs()...)
	}

	result := byKeyword(g, terms[0])
	for _, term := range terms[1:] {
		termResult := byKeyword(g, term)
		if mode == MatchAll {
			result = result.Intersect(termResult)
		} else {
			result = result.Union(termResult)
		}
	}
	return result
}

// Suggestions lists the filterable values present in a graph, per filter
// dimension: sorted, de-duplicated, empty values stripped.
type Suggestions struct {
	Countries           []string `json:"countries"`
	Types               []string `json:"types"`
	Years               []string `json:"years"`
	Manufacturers       []string `json:"manufacturers"`
	VehicleTypes        []string `json:"vehicle_types"`
	OrganizationTypes   []string `json:"organization_types"`
	AreaTypes           []string `json:"area_types"`
	Relationships       []string `json:"relationships"`
	EquipmentCategories []string `json:"equipment_categories"`
}

// Suggest harvests filter value suggestions in one pass over nodes and edges.
func (r *Registry) Suggest(g *graph.Graph) *Suggestions {
	countries := make(map[string]struct{})
	types := make(map[string]struct{})
	years := make(map[string]struct{})
	manufacturers := make(map[string]struct{})
	vehicleTypes := make(map[string]struct{})
	organizationTypes := make(map[string]struct{})
	areaTypes := make(map[string]struct{})
	relationships := make(map[string]struct{})

	for _, n := range g.Nodes() {
		types[string(n.Type)] = struct{}{}
		if n.Year != 0 {
			years[strconv.Itoa(n.Year)] = struct{}{}
		}
		if n.Manufacturer != "" {
			manufacturers[n.Manufacturer] = struct{}{}
		}
		switch n.Type {
		case entity.TypeVehicle:
			if n.VehicleType != "" {
				vehicleTypes[n.VehicleType] = struct{}{}
			}
		case entity.TypeOrganization:
			if n.OrganizationType != "" {
				organizationTypes[n.OrganizationType] = struct{}{}
			}
		case entity.TypeArea:
			if n.AreaType != "" {
				areaTypes[n.AreaType] = struct{}{}
			}
		case entity.TypeCountry:
			if n.Label != "" {
				countries[n.Label] = struct{}{}
			}
		}
	}
	for _, e := range g.Edges() {
		if e.Relationship != "" {
			relationships[e.Relationship] = struct{}{}
		}
	}

	return &Suggestions{
		Countries:           sortedKeys(countries),
		Types:               sortedKeys(types),
		Years:               sortedKeys(years),
		Manufacturers:       sortedKeys(manufacturers),
		VehicleTypes:        sortedKeys(vehicleTypes),
		OrganizationTypes:   sortedKeys(organizationTypes),
		AreaTypes:           sortedKeys(areaTypes),
		Relationships:       sortedKeys(relationships),
		EquipmentCategories: CategoryNames(),
	}
}

func sortedKeys(values map[string]struct{}) []string {
	out := make([]string, 0, len(values))
	for v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
