package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/milgraph/milgraph"
	"github.com/milgraph/milgraph/pkg/filter"
	"github.com/milgraph/milgraph/pkg/graph"
	"github.com/milgraph/milgraph/pkg/server/dto"
)

// FilterHandler handles filter and search requests
type FilterHandler struct {
	analyzer *milgraph.Analyzer
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(a *milgraph.Analyzer) *FilterHandler {
	return &FilterHandler{analyzer: a}
}

// Filter handles POST /filter
func (h *FilterHandler) Filter(c *gin.Context) {
	var req dto.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.analyzer.Filter(req.Filters)
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: summarize(result)})
}

// FilterAdvanced handles POST /filter/advanced
func (h *FilterHandler) FilterAdvanced(c *gin.Context) {
	var req dto.AdvancedFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	advanced := filter.AdvancedFilter{Logic: filter.LogicAnd}
	if strings.EqualFold(req.Logic, string(filter.LogicOr)) {
		advanced.Logic = filter.LogicOr
	}
	for _, cond := range req.Conditions {
		advanced.Conditions = append(advanced.Conditions, filter.Condition{
			Filter: cond.Filter,
			Not:    cond.Not,
		})
	}

	result, err := h.analyzer.FilterAdvanced(advanced)
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: summarize(result)})
}

// Search handles POST /search
func (h *FilterHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	mode := filter.MatchAny
	if strings.EqualFold(req.Mode, string(filter.MatchAll)) {
		mode = filter.MatchAll
	}

	result, err := h.analyzer.Search(req.Terms, mode)
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: summarize(result)})
}

// Suggestions handles GET /suggestions
func (h *FilterHandler) Suggestions(c *gin.Context) {
	suggestions, err := h.analyzer.Suggest()
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: suggestions})
}

// Categories handles GET /categories
func (h *FilterHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: filter.CategoryDescriptions()})
}

func summarize(g *graph.Graph) dto.GraphSummary {
	types := make(map[string]int)
	for _, n := range g.Nodes() {
		types[string(n.Type)]++
	}
	return dto.GraphSummary{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		Nodes:     g.Nodes(),
		Edges:     g.Edges(),
		Types:     types,
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.ErrorResponse{Error: code, Message: message, Code: status})
}

func writeAnalyzerError(c *gin.Context, err error) {
	if errors.Is(err, milgraph.ErrNoGraph) {
		writeError(c, http.StatusConflict, "no_graph", err.Error())
		return
	}
	writeError(c, http.StatusInternalServerError, "internal_error", err.Error())
}
