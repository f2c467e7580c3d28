package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "test-key",
		"prediction_ttl": "24h",
		"feature_ttl": "6h",
		"cache_cap": 500,
		"confidence_weights": {"interview": 2, "offer": 1}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 24*time.Hour, time.Duration(cfg.PredictionTTL))
	assert.Equal(t, 6*time.Hour, time.Duration(cfg.FeatureTTL))
	assert.Equal(t, 500, cfg.CacheCap)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `{"feature_ttl": "six hours"}`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_UnknownDimensionWeight(t *testing.T) {
	cfg := &Config{ConfidenceWeights: map[string]float64{"charisma": 1}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := &Config{ConfidenceWeights: map[string]float64{"interview": -1}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_NegativeCacheCap(t *testing.T) {
	cfg := &Config{CacheCap: -1}
	assert.Error(t, cfg.Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, DefaultPredictionTTL, time.Duration(cfg.PredictionTTL))
	assert.Equal(t, DefaultFeatureTTL, time.Duration(cfg.FeatureTTL))
	assert.Equal(t, DefaultSweepInterval, time.Duration(cfg.SweepInterval))
	assert.Equal(t, DefaultCacheCap, cfg.CacheCap)
	assert.Equal(t, DefaultExtractorTimeout, time.Duration(cfg.ExtractorTimeout))
	assert.Equal(t, DefaultTierTimeout, time.Duration(cfg.TierTimeout))
	assert.Equal(t, DefaultRequestBudget, time.Duration(cfg.RequestBudget))
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{CacheCap: 10, FeatureTTL: Duration(time.Minute)}
	cfg.ApplyDefaults()

	assert.Equal(t, 10, cfg.CacheCap)
	assert.Equal(t, time.Minute, time.Duration(cfg.FeatureTTL))
}
