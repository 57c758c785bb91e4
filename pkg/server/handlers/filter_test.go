package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milgraph/milgraph"
	"github.com/milgraph/milgraph/pkg/entity"
)

func builtAnalyzer() *milgraph.Analyzer {
	a := milgraph.New(nil)
	a.Build(entity.Collections{
		"countries": {
			{"id": "lithuania", "names": []any{
				map[string]any{"nameType": "official", "value": "Lithuania"},
			}},
		},
		"vehicles": {
			{"id": "v1", "name": "Patrol Truck", "owner": "lithuania", "year": 2015.0},
		},
	})
	return a
}

func testRouter(a *milgraph.Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	fh := NewFilterHandler(a)
	router.POST("/filter", fh.Filter)
	router.POST("/filter/advanced", fh.FilterAdvanced)
	router.POST("/search", fh.Search)
	router.GET("/suggestions", fh.Suggestions)
	router.GET("/categories", fh.Categories)

	ah := NewAnalysisHandler(a)
	router.GET("/summary", ah.Summary)
	router.GET("/statistics", ah.Statistics)
	router.POST("/paths", ah.Paths)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFilterEndpoint(t *testing.T) {
	router := testRouter(builtAnalyzer())

	w := doJSON(t, router, http.MethodPost, "/filter", map[string]any{
		"filters": map[string]any{"type": "vehicle"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			NodeCount int `json:"node_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Data.NodeCount)
}

func TestFilterEndpointValidation(t *testing.T) {
	router := testRouter(builtAnalyzer())

	w := doJSON(t, router, http.MethodPost, "/filter", map[string]any{
		"filters": map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFilterEndpointNoGraph(t *testing.T) {
	router := testRouter(milgraph.New(nil))

	w := doJSON(t, router, http.MethodPost, "/filter", map[string]any{
		"filters": map[string]any{"type": "vehicle"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "no_graph", resp.Error)
}

func TestFilterAdvancedEndpoint(t *testing.T) {
	router := testRouter(builtAnalyzer())

	w := doJSON(t, router, http.MethodPost, "/filter/advanced", map[string]any{
		"logic": "OR",
		"conditions": []map[string]any{
			{"filter": map[string]any{"type": "vehicle"}},
			{"filter": map[string]any{"type": "country"}},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data struct {
			NodeCount int `json:"node_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Data.NodeCount)
}

func TestSearchEndpoint(t *testing.T) {
	router := testRouter(builtAnalyzer())

	w := doJSON(t, router, http.MethodPost, "/search", map[string]any{
		"terms": []string{"patrol"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data struct {
			NodeCount int `json:"node_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Data.NodeCount)

	empty := doJSON(t, router, http.MethodPost, "/search", map[string]any{
		"terms": []string{" "},
	})
	assert.Equal(t, http.StatusBadRequest, empty.Code)
}

func TestSuggestionsAndCategories(t *testing.T) {
	router := testRouter(builtAnalyzer())

	w := doJSON(t, router, http.MethodGet, "/suggestions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lithuania")

	categories := doJSON(t, router, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, categories.Code)
	assert.Contains(t, categories.Body.String(), "weapons_defense")
}

func TestSummaryEndpoint(t *testing.T) {
	router := testRouter(builtAnalyzer())

	w := doJSON(t, router, http.MethodGet, "/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data struct {
			NodeCount    int            `json:"node_count"`
			EntityTypes  map[string]int `json:"entity_types"`
			QualityScore float64        `json:"quality_score"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Data.NodeCount)
	assert.Equal(t, 1, result.Data.EntityTypes["vehicle"])
	assert.Greater(t, result.Data.QualityScore, 0.0)
}

func TestPathsEndpoint(t *testing.T) {
	router := testRouter(builtAnalyzer())

	w := doJSON(t, router, http.MethodPost, "/paths", map[string]any{
		"source": "v1",
		"target": "lithuania",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Data struct {
			Count int        `json:"count"`
			Paths [][]string `json:"paths"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, 1, result.Data.Count)
	assert.Equal(t, []string{"v1", "lithuania"}, result.Data.Paths[0])
}
