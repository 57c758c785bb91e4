package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, 100, cfg.Analysis.BetweennessSample)
	assert.Equal(t, 1000, cfg.Analysis.EigenvectorMaxIter)
	assert.Equal(t, "./exports", cfg.Export.Dir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MILGRAPH_DATA_DIR", "/srv/data")
	t.Setenv("MILGRAPH_EXPORT_DIR", "/srv/exports")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/data", cfg.Data.Dir)
	assert.Equal(t, "/srv/exports", cfg.Export.Dir)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadIgnoresBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
