package milgraph

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	root "github.com/milgraph/milgraph"
	"github.com/milgraph/milgraph/pkg/config"
	"github.com/milgraph/milgraph/pkg/logger"
	"github.com/milgraph/milgraph/pkg/server"
	"github.com/milgraph/milgraph/pkg/stats"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Milgraph HTTP server",
	Long: `Start the Milgraph HTTP server to provide REST API access to the asset graph.

The server provides endpoints for:
- Building the graph from the configured databases
- Filtering and searching entities
- Statistics, connectivity, and centrality analysis
- Country comparison and comprehensive reports
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServe,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server-specific flags
	serveCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serveCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serveCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")
	serveCmd.Flags().Bool("preload", true, "Build the graph from the configured databases at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	analyzer := newAnalyzer(cfg)

	if preload, _ := cmd.Flags().GetBool("preload"); preload {
		if err := analyzer.Load(); err != nil {
			fmt.Printf("Warning: failed to preload graph: %v\n", err)
		}
	}

	// Create and setup server
	srv := server.New(cfg, analyzer)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func newAnalyzer(cfg *config.Config) *root.Analyzer {
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	statsOpts := &stats.Options{
		BetweennessSample:  cfg.Analysis.BetweennessSample,
		EigenvectorMaxIter: cfg.Analysis.EigenvectorMaxIter,
	}
	return root.New(&root.Config{
		DataDir:   cfg.Data.Dir,
		Databases: cfg.Data.Databases,
		Stats:     statsOpts,
		Logger:    log,
	})
}
