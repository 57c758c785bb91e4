package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milgraph/milgraph"
	"github.com/milgraph/milgraph/pkg/config"
	"github.com/milgraph/milgraph/pkg/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	router   *gin.Engine
	analyzer *milgraph.Analyzer
	server   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, analyzer *milgraph.Analyzer) *Server {
	return &Server{
		config:   cfg,
		analyzer: analyzer,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	// Set gin mode
	gin.SetMode(s.config.Server.Mode)

	// Create router
	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	// Create handlers
	healthHandler := handlers.NewHealthHandler(s.analyzer)
	filterHandler := handlers.NewFilterHandler(s.analyzer)
	analysisHandler := handlers.NewAnalysisHandler(s.analyzer)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck)
	s.router.GET("/health/detailed", healthHandler.DetailedHealthCheck)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/build", analysisHandler.Build)
		v1.GET("/summary", analysisHandler.Summary)

		// Filter routes
		v1.POST("/filter", filterHandler.Filter)
		v1.POST("/filter/advanced", filterHandler.FilterAdvanced)
		v1.POST("/search", filterHandler.Search)
		v1.GET("/suggestions", filterHandler.Suggestions)
		v1.GET("/categories", filterHandler.Categories)

		// Analysis routes
		v1.GET("/statistics", analysisHandler.Statistics)
		v1.GET("/connectivity", analysisHandler.Connectivity)
		v1.POST("/compare", analysisHandler.Compare)
		v1.POST("/report", analysisHandler.Report)
		v1.POST("/paths", analysisHandler.Paths)
		v1.POST("/subgraph", analysisHandler.Subgraph)
	}
}

// Start starts the server
func (s *Server) Start() error {
	fmt.Printf("Starting server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	fmt.Println("Stopping server...")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
