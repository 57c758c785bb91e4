package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Data configuration
	Data DataConfig `mapstructure:"data"`

	// Analysis configuration
	Analysis AnalysisConfig `mapstructure:"analysis"`

	// Export configuration
	Export ExportConfig `mapstructure:"export"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DataConfig holds the database file layout
type DataConfig struct {
	// Dir is the directory holding the JSON database files
	Dir string `mapstructure:"dir"`

	// Databases maps database names to filenames relative to Dir
	Databases map[string]string `mapstructure:"databases"`
}

// AnalysisConfig tunes the statistics engine
type AnalysisConfig struct {
	BetweennessSample  int `mapstructure:"betweenness_sample"`
	EigenvectorMaxIter int `mapstructure:"eigenvector_max_iter"`

	// ComparisonCountries overrides the default comparison set
	ComparisonCountries []string `mapstructure:"comparison_countries"`
}

// ExportConfig holds export output configuration
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Data defaults
	viper.SetDefault("data.dir", "./data")

	// Analysis defaults
	viper.SetDefault("analysis.betweenness_sample", 100)
	viper.SetDefault("analysis.eigenvector_max_iter", 1000)

	// Export defaults
	viper.SetDefault("export.dir", "./exports")
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if dir := os.Getenv("MILGRAPH_DATA_DIR"); dir != "" {
		config.Data.Dir = dir
	}
	if dir := os.Getenv("MILGRAPH_EXPORT_DIR"); dir != "" {
		config.Export.Dir = dir
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	// Log settings
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
}
