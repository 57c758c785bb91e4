package builder

import (
	"log/slog"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

// Builder turns entity collections into graphs.
type Builder struct {
	logger *slog.Logger
}

// New creates a Builder. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Build constructs a graph from the given collections: one node per record
// with an id, then edges inferred from direct, list, and hierarchical
// reference fields. References to ids that never became nodes are dropped
// silently.
func (b *Builder) Build(collections entity.Collections) *graph.Graph {
	g := graph.New()

	for _, collection := range entity.CollectionNames {
		records, ok := collections[collection]
		if !ok {
			continue
		}
		entityType := entity.CanonicalType(collection)
		b.logger.Debug("adding nodes", "collection", collection, "count", len(records))
		for _, record := range records {
			id := entity.ID(record)
			if id == "" {
				continue
			}
			g.AddNode(newNode(id, record, entityType))
		}
	}

	edges := 0
	for _, id := range g.NodeIDs() {
		record := g.Node(id).Data

		for _, field := range entity.DirectReferenceFields {
			if target, ok := record[field].(string); ok && target != "" {
				if g.AddEdge(id, target, field, 1.0) {
					edges++
				}
			}
		}

		for _, field := range entity.ListReferenceFields {
			for _, target := range entity.StringList(record[field]) {
				if g.AddEdge(id, target, field, 1.0) {
					edges++
				}
			}
		}

		for _, ref := range hierarchicalReferences(record) {
			if g.AddEdge(id, ref.target, ref.label, 1.0) {
				edges++
			}
		}
	}

	b.logger.Debug("added relationships", "edges", edges)
	b.logger.Info("built graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g
}

type labeledRef struct {
	label  string
	target string
}

// hierarchicalReferences extracts labeled references from nested temporal and
// state structures.
func hierarchicalReferences(record entity.Record) []labeledRef {
	var refs []labeledRef
	add := func(label string, v any) {
		if target, ok := v.(string); ok && target != "" {
			refs = append(refs, labeledRef{label: label, target: target})
		}
	}

	if parts, ok := record["temporalParts"].([]any); ok {
		for _, p := range parts {
			if part, ok := p.(map[string]any); ok {
				add(entity.RelTemporalLocation, part["location"])
			}
		}
	}
	if states, ok := record["states"].([]any); ok {
		for _, s := range states {
			if state, ok := s.(map[string]any); ok {
				add(entity.RelStateLocation, state["location"])
				add(entity.RelStateOrganization, state["organisation"])
			}
		}
	}
	return refs
}

// newNode flattens a record's searchable attributes onto a graph node.
func newNode(id string, record entity.Record, entityType entity.Type) *graph.Node {
	color, ok := entity.NodeColors[entityType]
	if !ok {
		color = entity.DefaultColor
	}
	n := &graph.Node{
		ID:    id,
		Type:  entityType,
		Label: entity.PrimaryName(record),
		Color: color,
		Data:  record,
	}

	if year, ok := entity.Year(record["year"]); ok {
		n.Year = year
	}
	n.Manufacturer = entity.String(record, "make")
	if n.Manufacturer == "" {
		n.Manufacturer = entity.String(record, "manufacturer")
	}
	n.Model = entity.String(record, "model")
	n.Owner = entity.String(record, "owner")
	n.Country = entity.String(record, "country")
	n.Nationality = entity.String(record, "nationality")

	switch entityType {
	case entity.TypeVehicle:
		n.VehicleType = entity.String(record, "vehicleType")
		n.FuelType = entity.String(record, "fuelType")
	case entity.TypePerson:
		n.PersonTypes = entity.StringList(record["personTypes"])
		n.BirthDate = entity.String(record, "birthDate")
	case entity.TypeOrganization:
		n.OrganizationType = entity.String(record, "organizationType")
		if strength, ok := entity.Number(record["personnelStrength"]); ok {
			n.PersonnelStrength = strength
		}
	case entity.TypeArea:
		n.AreaType = entity.String(record, "areaType")
		n.AdminLevel = entity.String(record, "administrativeLevel")
	}

	return n
}

// Combine merges several sources into one set of collections. Sources are
// processed in the given order; within each entity type the first record seen
// for an id wins and later duplicates are discarded whole, never merged
// field by field. Kept records are copied and tagged with their source name.
func (b *Builder) Combine(order []string, sources map[string]entity.Collections) entity.Collections {
	b.logger.Info("combining sources", "count", len(order))

	combined := make(entity.Collections, len(entity.CollectionNames))
	seen := make(map[string]map[string]struct{}, len(entity.CollectionNames))
	for _, collection := range entity.CollectionNames {
		combined[collection] = nil
		seen[collection] = make(map[string]struct{})
	}

	for _, source := range order {
		collections, ok := sources[source]
		if !ok {
			continue
		}
		for _, collection := range entity.CollectionNames {
			for _, record := range collections[collection] {
				id := entity.ID(record)
				if id == "" {
					continue
				}
				if _, dup := seen[collection][id]; dup {
					continue
				}
				seen[collection][id] = struct{}{}

				tagged := make(entity.Record, len(record)+1)
				for k, v := range record {
					tagged[k] = v
				}
				tagged[entity.SourceDatabaseKey] = source
				combined[collection] = append(combined[collection], tagged)
			}
		}
	}

	return combined
}
