package builder

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milgraph/milgraph/pkg/entity"
)

func testCollections() entity.Collections {
	return entity.Collections{
		"countries": {
			{"id": "lithuania", "names": []any{
				map[string]any{"nameType": "official", "value": "Lithuania"},
			}},
		},
		"vehicles": {
			{"id": "v1", "name": "Patrol Truck", "owner": "lithuania", "vehicleType": "vt1", "year": 2015.0},
		},
		"vehicleTypes": {
			{"id": "vt1", "name": "Truck"},
		},
	}
}

func TestBuild(t *testing.T) {
	b := New(slog.Default())
	g := b.Build(testCollections())

	require.Equal(t, 3, g.NodeCount())
	// v1 -> lithuania (owner) and v1 -> vt1 (vehicleType).
	require.Equal(t, 2, g.EdgeCount())

	v1 := g.Node("v1")
	require.NotNil(t, v1)
	assert.Equal(t, entity.TypeVehicle, v1.Type)
	assert.Equal(t, "Patrol Truck", v1.Label)
	assert.Equal(t, "lithuania", v1.Owner)
	assert.Equal(t, 2015, v1.Year)

	owner := g.Edge("v1", "lithuania")
	require.NotNil(t, owner)
	assert.Equal(t, "owner", owner.Relationship)

	country := g.Node("lithuania")
	require.NotNil(t, country)
	assert.Equal(t, "Lithuania", country.Label)
	assert.Equal(t, entity.NodeColors[entity.TypeCountry], country.Color)
}

func TestBuildDeterministic(t *testing.T) {
	// The same input always yields the same graph.
	b := New(nil)
	first := b.Build(testCollections())
	second := b.Build(testCollections())

	assert.Equal(t, first.NodeCount(), second.NodeCount())
	assert.Equal(t, first.EdgeCount(), second.EdgeCount())
	assert.Equal(t, first.NodeIDs(), second.NodeIDs())

	firstEdges := first.Edges()
	secondEdges := second.Edges()
	require.Equal(t, len(firstEdges), len(secondEdges))
	for i := range firstEdges {
		assert.Equal(t, *firstEdges[i], *secondEdges[i])
	}
}

func TestBuildDanglingReference(t *testing.T) {
	collections := entity.Collections{
		"vehicles": {
			{"id": "v1", "name": "Orphan", "owner": "nowhere"},
		},
	}
	g := New(nil).Build(collections)

	// The node exists; the unresolvable reference produced no edge.
	require.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestBuildSkipsRecordsWithoutID(t *testing.T) {
	collections := entity.Collections{
		"vehicles": {
			{"name": "No ID"},
			{"id": "", "name": "Empty ID"},
			{"id": "v1", "name": "Has ID"},
		},
	}
	g := New(nil).Build(collections)
	assert.Equal(t, 1, g.NodeCount())
}

func TestBuildListReferences(t *testing.T) {
	collections := entity.Collections{
		"people": {
			{"id": "p1", "name": "Jonas", "personTypes": []any{"pt1", "pt2"}},
		},
		"peopleTypes": {
			{"id": "pt1", "name": "Officer"},
			{"id": "pt2", "name": "Engineer"},
		},
	}
	g := New(nil).Build(collections)

	require.Equal(t, 3, g.NodeCount())
	require.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, "personTypes", g.Edge("p1", "pt1").Relationship)
	assert.Equal(t, []string{"pt1", "pt2"}, g.Node("p1").PersonTypes)
}

func TestBuildHierarchicalReferences(t *testing.T) {
	collections := entity.Collections{
		"areas": {
			{"id": "base", "name": "Airbase", "areaType": "military"},
			{"id": "region", "name": "Region"},
		},
		"militaryOrganizations": {
			{"id": "org", "name": "Air Wing",
				"temporalParts": []any{
					map[string]any{"location": "base"},
				},
				"states": []any{
					map[string]any{"location": "region", "organisation": "hq"},
				},
			},
			{"id": "hq", "name": "Headquarters"},
		},
	}
	g := New(nil).Build(collections)

	require.Equal(t, 4, g.NodeCount())
	require.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, entity.RelTemporalLocation, g.Edge("org", "base").Relationship)
	assert.Equal(t, entity.RelStateLocation, g.Edge("org", "region").Relationship)
	assert.Equal(t, entity.RelStateOrganization, g.Edge("org", "hq").Relationship)
}

func TestCombine(t *testing.T) {
	b := New(nil)

	primary := entity.Collections{
		"vehicles": {
			{"id": "v1", "name": "Primary Truck"},
			{"id": "v2", "name": "Only In Primary"},
		},
	}
	secondary := entity.Collections{
		"vehicles": {
			{"id": "v1", "name": "Secondary Truck"},
			{"id": "v3", "name": "Only In Secondary"},
		},
	}

	combined := b.Combine([]string{"primary", "secondary"}, map[string]entity.Collections{
		"primary":   primary,
		"secondary": secondary,
	})

	vehicles := combined["vehicles"]
	require.Len(t, vehicles, 3)

	byID := make(map[string]entity.Record, len(vehicles))
	for _, record := range vehicles {
		byID[entity.ID(record)] = record
	}

	// First source wins on duplicate ids; the duplicate is dropped whole.
	assert.Equal(t, "Primary Truck", byID["v1"]["name"])
	assert.Equal(t, "primary", byID["v1"][entity.SourceDatabaseKey])
	assert.Equal(t, "secondary", byID["v3"][entity.SourceDatabaseKey])

	// Input records are not mutated.
	_, tagged := primary["vehicles"][0][entity.SourceDatabaseKey]
	assert.False(t, tagged)
}

func TestCombineOrderMatters(t *testing.T) {
	b := New(nil)
	sources := map[string]entity.Collections{
		"a": {"vehicles": {{"id": "v1", "name": "From A"}}},
		"b": {"vehicles": {{"id": "v1", "name": "From B"}}},
	}

	first := b.Combine([]string{"a", "b"}, sources)
	assert.Equal(t, "From A", first["vehicles"][0]["name"])

	second := b.Combine([]string{"b", "a"}, sources)
	assert.Equal(t, "From B", second["vehicles"][0]["name"])
}
