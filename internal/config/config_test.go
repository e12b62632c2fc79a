package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "AFFORDABILITY_PATH", "RESULTS_PATH",
		"DEFAULT_LIMIT", "STEEPNESS", "EXCLUDE_ZERO_WEIGHTS",
		"CACHE_TTL_MINUTES", "RATE_LIMIT_PER_MIN", "RATE_LIMIT_BURST_MULTIPLIER",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, errs := Load("")

	require.Empty(t, errs)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, DefaultAffordabilityPath, cfg.AffordabilityPath)
	assert.Equal(t, DefaultResultsPath, cfg.ResultsPath)
	assert.Equal(t, DefaultLimit, cfg.DefaultLimit)
	assert.Equal(t, DefaultSteepness, cfg.Steepness)
	assert.False(t, cfg.ExcludeZeroWeights)
	assert.Equal(t, DefaultCacheTTLMinutes, cfg.CacheTTLMinutes)
	assert.Equal(t, DefaultRateLimitPerMin, cfg.RateLimitPerMin)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("STEEPNESS", "8.5")
	t.Setenv("EXCLUDE_ZERO_WEIGHTS", "true")
	t.Setenv("AFFORDABILITY_PATH", "/data/aff.csv")

	cfg, errs := Load("")

	require.Empty(t, errs)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 8.5, cfg.Steepness)
	assert.True(t, cfg.ExcludeZeroWeights)
	assert.Equal(t, "/data/aff.csv", cfg.AffordabilityPath)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: 7070\nenv: staging\nsteepness: 4\ndefault_limit: 25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, errs := Load(path)
	require.Empty(t, errs)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, 4.0, cfg.Steepness)
	assert.Equal(t, 25, cfg.DefaultLimit)

	t.Setenv("PORT", "6060")
	cfg, errs = Load(path)
	require.Empty(t, errs)
	assert.Equal(t, 6060, cfg.Port, "environment beats file")
	assert.Equal(t, "staging", cfg.Env)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "not-a-port")

		_, errs := Load("")
		assert.NotEmpty(t, errs)
	})

	t.Run("bad steepness", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STEEPNESS", "abc")

		_, errs := Load("")
		assert.NotEmpty(t, errs)
	})

	t.Run("non-positive steepness", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STEEPNESS", "-2")

		_, errs := Load("")
		assert.NotEmpty(t, errs)
	})

	t.Run("unreadable config file", func(t *testing.T) {
		clearEnv(t)

		_, errs := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.NotEmpty(t, errs)
	})
}
