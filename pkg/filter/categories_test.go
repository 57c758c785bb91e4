package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/graph"
)

func TestCategoryNames(t *testing.T) {
	names := CategoryNames()
	assert.Len(t, names, len(Categories))
	assert.True(t, sortedStrings(names))
	assert.Contains(t, names, "vehicles")
	assert.Contains(t, names, "weapons_defense")
}

func sortedStrings(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}

func TestCategoryDescriptionsCoverAllCategories(t *testing.T) {
	descriptions := CategoryDescriptions()
	require.Len(t, descriptions, len(Categories))
	for name, info := range descriptions {
		assert.NotEmpty(t, info.Label, name)
		assert.NotEmpty(t, info.Description, name)
		assert.Equal(t, Categories[name], info.Keywords, name)
	}
}

func TestByEquipmentCategory(t *testing.T) {
	r := NewRegistry(nil)
	g := fixtureGraph(t)

	// "vehicles" keywords hit the vehicle entity type but nothing on the
	// country or person nodes.
	got := r.Apply(g, map[string]any{"equipment_category": "vehicles"})
	require.Equal(t, 2, got.NodeCount())
	assert.True(t, got.HasNode("v1"))
	assert.True(t, got.HasNode("v2"))

	// "geographic" matches the country nodes via the entity type.
	geo := r.Apply(g, map[string]any{"equipment_category": "geographic"})
	require.Equal(t, 2, geo.NodeCount())
	assert.True(t, geo.HasNode("lithuania"))
	assert.True(t, geo.HasNode("estonia"))
}

func TestByEquipmentCategoryVehicleType(t *testing.T) {
	r := NewRegistry(nil)
	g := graph.New()
	g.AddNode(&graph.Node{
		ID: "t1", Type: entity.TypeVehicle, Label: "M1",
		VehicleType: "main battle tank",
		Data:        entity.Record{"id": "t1"},
	})
	g.AddNode(&graph.Node{
		ID: "o1", Type: entity.TypeOrganization, Label: "Armored Brigade",
		Data: entity.Record{"id": "o1"},
	})

	// Both the tank and the brigade surface: the vehicle through its type
	// and the organization through the "armored" keyword in its label.
	got := r.Apply(g, map[string]any{"equipment_category": "vehicles"})
	assert.True(t, got.HasNode("t1"))
	assert.True(t, got.HasNode("o1"))

	// Administrative only matches the organization.
	admin := r.Apply(g, map[string]any{"equipment_category": "administrative"})
	require.Equal(t, 1, admin.NodeCount())
	assert.True(t, admin.HasNode("o1"))
}

func TestByEquipmentCategoryMultiple(t *testing.T) {
	r := NewRegistry(nil)
	g := fixtureGraph(t)

	got := r.Apply(g, map[string]any{
		"equipment_category": []string{"vehicles", "geographic"},
	})
	assert.Equal(t, 4, got.NodeCount())

	// JSON-decoded arrays arrive as []any.
	decoded := r.Apply(g, map[string]any{
		"equipment_category": []any{"vehicles", "geographic"},
	})
	assert.Equal(t, 4, decoded.NodeCount())
}

func TestByEquipmentCategoryUnknown(t *testing.T) {
	r := NewRegistry(nil)
	g := fixtureGraph(t)

	got := r.Apply(g, map[string]any{"equipment_category": "no_such_category"})
	assert.Equal(t, 0, got.NodeCount())

	bad := r.Apply(g, map[string]any{"equipment_category": 42})
	assert.Equal(t, 0, bad.NodeCount())
}
