package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/success-predictor/internal/config"
	"github.com/jonathan/success-predictor/internal/types"
)

func writeTempJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMergedConfigDefaults(t *testing.T) {
	t.Setenv("PREDICTOR_API_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MARKET_DATA_URL", "")

	cfg, err := loadMergedConfig(nil, "")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPredictionTTL, time.Duration(cfg.PredictionTTL))
	assert.Equal(t, config.DefaultCacheCap, cfg.CacheCap)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadMergedConfigFromFile(t *testing.T) {
	t.Setenv("PREDICTOR_API_KEY", "")
	path := writeTempJSON(t, "config.json", `{
		"prediction_ttl": "12h",
		"cache_cap": 50,
		"market_data_url": "https://market.example.com"
	}`)

	cfg, err := loadMergedConfig(nil, path)
	require.NoError(t, err)

	assert.Equal(t, 12*time.Hour, time.Duration(cfg.PredictionTTL))
	assert.Equal(t, 50, cfg.CacheCap)
	assert.Equal(t, "https://market.example.com", cfg.MarketDataURL)
	// Unset fields still get defaults.
	assert.Equal(t, config.DefaultFeatureTTL, time.Duration(cfg.FeatureTTL))
}

func TestLoadMergedConfigEnvFallback(t *testing.T) {
	t.Setenv("PREDICTOR_API_KEY", "env-key")
	t.Setenv("MARKET_DATA_URL", "https://env.example.com")

	cfg, err := loadMergedConfig(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://env.example.com", cfg.MarketDataURL)
}

func TestLoadMergedConfigRejectsInvalidFile(t *testing.T) {
	path := writeTempJSON(t, "config.json", `{"cache_cap": -1}`)

	_, err := loadMergedConfig(nil, path)
	assert.Error(t, err)
}

func TestReadJSONFile(t *testing.T) {
	path := writeTempJSON(t, "cv.json", `{
		"sections": [{"name": "experience", "content": "built services"}],
		"skills": ["go", "postgres"],
		"years_experience": 6
	}`)

	var cv types.CVData
	require.NoError(t, readJSONFile(path, &cv))
	assert.Len(t, cv.Sections, 1)
	assert.Equal(t, 6.0, cv.YearsExperience)

	assert.Error(t, readJSONFile(filepath.Join(t.TempDir(), "missing.json"), &cv))
}
