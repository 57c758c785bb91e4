package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milgraph/milgraph"
	"github.com/milgraph/milgraph/pkg/server/dto"
)

// AnalysisHandler handles statistics and analysis requests
type AnalysisHandler struct {
	analyzer *milgraph.Analyzer
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(a *milgraph.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: a}
}

// Build handles POST /build - loads the configured databases and rebuilds
// the graph
func (h *AnalysisHandler) Build(c *gin.Context) {
	if err := h.analyzer.Load(); err != nil {
		writeError(c, http.StatusInternalServerError, "build_failed", err.Error())
		return
	}
	g := h.analyzer.Graph()
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: gin.H{
		"nodes":     g.NodeCount(),
		"edges":     g.EdgeCount(),
		"databases": h.analyzer.Databases(),
	}})
}

// Summary handles GET /summary
func (h *AnalysisHandler) Summary(c *gin.Context) {
	g := h.analyzer.Graph()
	if g == nil {
		writeAnalyzerError(c, milgraph.ErrNoGraph)
		return
	}

	quality, _ := h.analyzer.Quality()
	types := make(map[string]int)
	for _, n := range g.Nodes() {
		types[string(n.Type)]++
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: gin.H{
		"node_count":    g.NodeCount(),
		"edge_count":    g.EdgeCount(),
		"entity_types":  types,
		"quality_score": quality,
		"databases":     h.analyzer.Databases(),
	}})
}

// Statistics handles GET /statistics
func (h *AnalysisHandler) Statistics(c *gin.Context) {
	report, err := h.analyzer.Statistics()
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: report})
}

// Connectivity handles GET /connectivity
func (h *AnalysisHandler) Connectivity(c *gin.Context) {
	report, err := h.analyzer.Connectivity()
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: report})
}

// Compare handles POST /compare
func (h *AnalysisHandler) Compare(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	comparison, err := h.analyzer.Compare(req.Countries)
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: comparison})
}

// Report handles POST /report
func (h *AnalysisHandler) Report(c *gin.Context) {
	var req dto.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	report, err := h.analyzer.Report(req.Countries)
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: report})
}

// Paths handles POST /paths
func (h *AnalysisHandler) Paths(c *gin.Context) {
	var req dto.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	maxPaths := req.MaxPaths
	if maxPaths <= 0 {
		maxPaths = 10
	}
	maxLength := req.MaxLength
	if maxLength <= 0 {
		maxLength = 6
	}

	paths, err := h.analyzer.FindPaths(req.Source, req.Target, maxPaths, maxLength)
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: gin.H{
		"source": req.Source,
		"target": req.Target,
		"count":  len(paths),
		"paths":  paths,
	}})
}

// Subgraph handles POST /subgraph
func (h *AnalysisHandler) Subgraph(c *gin.Context) {
	var req dto.SubgraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sub, err := h.analyzer.Subgraph(req.IDs, req.IncludeNeighbors, req.MaxDistance)
	if err != nil {
		writeAnalyzerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Result{Success: true, Data: summarize(sub)})
}
