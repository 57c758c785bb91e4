package milgraph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milgraph/milgraph/pkg/config"
	"github.com/milgraph/milgraph/pkg/export"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the comprehensive analysis report",
	Long: `Build the asset graph from the configured databases and generate the
comprehensive analysis report: executive summary, database coverage,
entity statistics, relationship matrix, country comparison, technology
trends, and recommendations.`,
	RunE: runReport,
}

var (
	reportCountries []string
	reportOutput    string
	reportFormat    string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringSliceVar(&reportCountries, "countries", nil, "countries to compare (default built-in set)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "write the report to a file instead of stdout")
	reportCmd.Flags().StringVar(&reportFormat, "format", "json", "output format: json or yaml")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	countries := reportCountries
	if len(countries) == 0 {
		countries = cfg.Analysis.ComparisonCountries
	}

	analyzer := newAnalyzer(cfg)
	if err := analyzer.Load(); err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	report, err := analyzer.Report(countries)
	if err != nil {
		return err
	}

	if reportOutput != "" {
		writer, err := export.NewWriter(cfg.Export.Dir)
		if err != nil {
			return err
		}
		if reportFormat == "yaml" {
			return writer.WriteYAML(report, reportOutput)
		}
		return writer.WriteJSON(report, reportOutput)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
