package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/milgraph/milgraph"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	analyzer *milgraph.Analyzer
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(a *milgraph.Analyzer) *HealthHandler {
	return &HealthHandler{analyzer: a}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "milgraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// ReadinessCheck handles GET /ready - the service is ready once a graph
// has been built
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ready",
		"service":   "milgraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    gin.H{},
	}
	checks := response["checks"].(gin.H)

	ready := true
	if h.analyzer == nil {
		checks["analyzer"] = gin.H{"status": "unhealthy", "error": "analyzer not initialized"}
		ready = false
	} else if g := h.analyzer.Graph(); g == nil {
		checks["graph"] = gin.H{"status": "not_ready", "error": "no graph built yet"}
		ready = false
	} else {
		checks["graph"] = gin.H{
			"status": "healthy",
			"nodes":  g.NodeCount(),
			"edges":  g.EdgeCount(),
		}
	}

	if !ready {
		response["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// LivenessCheck handles GET /live - Kubernetes liveness probe endpoint
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   "milgraph",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DetailedHealthCheck handles GET /health/detailed - comprehensive health information
func (h *HealthHandler) DetailedHealthCheck(c *gin.Context) {
	startTime := time.Now()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := gin.H{
		"status":  "healthy",
		"service": "milgraph",
		"version": Version,
		"build_info": gin.H{
			"git_commit": GitCommit,
			"build_time": BuildTime,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"environment": gin.H{
			"go_version": GoVersion,
		},
		"system": gin.H{
			"memory_usage": fmt.Sprintf("%.2f MB", float64(m.Alloc)/(1024*1024)),
			"goroutines":   runtime.NumGoroutine(),
			"gc_cycles":    m.NumGC,
			"heap_objects": m.HeapObjects,
		},
	}

	if h.analyzer != nil {
		if g := h.analyzer.Graph(); g != nil {
			response["graph"] = gin.H{
				"nodes":     g.NodeCount(),
				"edges":     g.EdgeCount(),
				"databases": h.analyzer.Databases(),
			}
		}
	}

	response["metrics"] = gin.H{
		"response_time_ms": time.Since(startTime).Milliseconds(),
	}
	c.JSON(http.StatusOK, response)
}
