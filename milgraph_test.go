package milgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milgraph/milgraph"
	"github.com/milgraph/milgraph/pkg/entity"
	"github.com/milgraph/milgraph/pkg/filter"
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

func TestQueriesBeforeBuild(t *testing.T) {
	a := milgraph.New(nil)

	assert.Nil(t, a.Graph())

	_, err := a.Filter(map[string]any{"type": "vehicle"})
	assert.ErrorIs(t, err, milgraph.ErrNoGraph)
	_, err = a.Statistics()
	assert.ErrorIs(t, err, milgraph.ErrNoGraph)
	_, err = a.Report(nil)
	assert.ErrorIs(t, err, milgraph.ErrNoGraph)
	_, err = a.Suggest()
	assert.ErrorIs(t, err, milgraph.ErrNoGraph)
	_, err = a.Quality()
	assert.ErrorIs(t, err, milgraph.ErrNoGraph)
}

func TestBuildAndFilter(t *testing.T) {
	a := milgraph.New(nil)
	a.Build(testCollections())

	g := a.Graph()
	require.NotNil(t, g)
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())

	vehicles, err := a.Filter(map[string]any{"type": "vehicle"})
	require.NoError(t, err)
	require.Equal(t, 1, vehicles.NodeCount())
	assert.True(t, vehicles.HasNode("v1"))

	lithuanian, err := a.Filter(map[string]any{"country": "lithuania", "type": "vehicle"})
	require.NoError(t, err)
	require.Equal(t, 1, lithuanian.NodeCount())
	assert.True(t, lithuanian.HasNode("v1"))
}

func TestFilterAdvancedAndSearch(t *testing.T) {
	a := milgraph.New(nil)
	a.Build(testCollections())

	result, err := a.FilterAdvanced(filter.AdvancedFilter{
		Logic: filter.LogicOr,
		Conditions: []filter.Condition{
			{Filter: map[string]any{"type": "vehicle"}},
			{Filter: map[string]any{"type": "country"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.NodeCount())

	found, err := a.Search([]string{"patrol"}, filter.MatchAny)
	require.NoError(t, err)
	require.Equal(t, 1, found.NodeCount())
	assert.True(t, found.HasNode("v1"))
}

func TestStatisticsAndQuality(t *testing.T) {
	a := milgraph.New(nil)
	a.Build(testCollections())

	report, err := a.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 3, report.Metadata.NodeCount)
	assert.Equal(t, 2, report.Metadata.EdgeCount)
	assert.Equal(t, 1, report.Metadata.EntityCounts["vehicle"])

	quality, err := a.Quality()
	require.NoError(t, err)
	assert.Greater(t, quality, 0.0)
	assert.LessOrEqual(t, quality, 1.0)
}

func TestCompareAndReport(t *testing.T) {
	a := milgraph.New(nil)
	a.Build(testCollections())

	comparison, err := a.Compare([]string{"Lithuania"})
	require.NoError(t, err)
	profile := comparison.Countries["Lithuania"]
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.Vehicles)

	report, err := a.Report([]string{"Lithuania"})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Summary.TotalEntities)
	assert.NotEmpty(t, report.Recommends)

	// The empty country list falls back to the defaults.
	defaulted, err := a.Compare(nil)
	require.NoError(t, err)
	assert.Len(t, defaulted.Countries, 8)
}

func TestConnectivityPathsAndSubgraph(t *testing.T) {
	a := milgraph.New(nil)
	a.Build(testCollections())

	conn, err := a.Connectivity()
	require.NoError(t, err)
	assert.True(t, conn.IsConnected)

	paths, err := a.FindPaths("lithuania", "vt1", 10, 6)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"lithuania", "v1", "vt1"}, paths[0])

	sub, err := a.Subgraph([]string{"v1"}, true, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.NodeCount())
}

func TestBuildFromTracksDatabases(t *testing.T) {
	a := milgraph.New(nil)

	sources := map[string]entity.Collections{
		"military_assets": {
			"vehicles": {{"id": "v1", "name": "Tank"}},
		},
		"geographic_areas": {
			"countries": {{"id": "uk"}},
		},
	}
	a.BuildFrom([]string{"geographic_areas", "military_assets"}, sources)

	require.NotNil(t, a.Graph())
	assert.Equal(t, 2, a.Graph().NodeCount())
	assert.Equal(t, map[string]int{"military_assets": 1, "geographic_areas": 1}, a.Databases())
}

func TestFilterNames(t *testing.T) {
	a := milgraph.New(nil)
	assert.Len(t, a.FilterNames(), 15)
	assert.Contains(t, a.FilterNames(), "equipment_category")
}
