// Package config provides configuration loading and validation for the predictor.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/success-predictor/internal/types"
)

// Defaults applied when a field is zero. All durations are configurable;
// these values are starting points, not hard requirements.
const (
	DefaultPredictionTTL    = 24 * time.Hour
	DefaultFeatureTTL       = 6 * time.Hour
	DefaultSweepInterval    = 10 * time.Minute
	DefaultCacheCap         = 1000
	DefaultExtractorTimeout = 5 * time.Second
	DefaultTierTimeout      = 10 * time.Second
	DefaultRequestBudget    = 30 * time.Second
)

// Config represents the predictor configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Secrets / endpoints
	APIKey        string `json:"api_key,omitempty"`         // model-serving API key
	DatabaseURL   string `json:"database_url,omitempty"`    // PostgreSQL URL for the outcome store
	MarketDataURL string `json:"market_data_url,omitempty"` // base URL of the market-data provider

	// Cache
	PredictionTTL Duration `json:"prediction_ttl,omitempty"` // default 24h
	FeatureTTL    Duration `json:"feature_ttl,omitempty"`    // default 6h
	SweepInterval Duration `json:"sweep_interval,omitempty"` // default 10m
	CacheCap      int      `json:"cache_cap,omitempty"`      // per namespace, default 1000

	// Timeouts
	ExtractorTimeout Duration `json:"extractor_timeout,omitempty"` // per extractor, default 5s
	TierTimeout      Duration `json:"tier_timeout,omitempty"`      // per fallback tier, default 10s
	RequestBudget    Duration `json:"request_budget,omitempty"`    // whole request, default 30s

	// Confidence weighting for the overall confidence. Keys are dimension
	// names; missing dimensions get equal weight.
	ConfidenceWeights map[string]float64 `json:"confidence_weights,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // print detailed prediction breakdowns
	Port    int  `json:"port,omitempty"`    // HTTP server port
}

// Duration wraps time.Duration so config files can say "6h" or "30s".
type Duration time.Duration

// UnmarshalJSON accepts either a duration string ("10m") or nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("duration must be a string or integer: %s", string(data))
	}
	*d = Duration(n)
	return nil
}

// MarshalJSON renders the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.CacheCap < 0 {
		return fmt.Errorf("config error: 'cache_cap' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	for _, d := range []Duration{c.PredictionTTL, c.FeatureTTL, c.SweepInterval, c.ExtractorTimeout, c.TierTimeout, c.RequestBudget} {
		if time.Duration(d) < 0 {
			return fmt.Errorf("config error: durations must be non-negative")
		}
	}
	for name, w := range c.ConfidenceWeights {
		if !knownDimension(name) {
			return fmt.Errorf("config error: unknown dimension %q in 'confidence_weights'", name)
		}
		if w < 0 {
			return fmt.Errorf("config error: confidence weight for %q must be non-negative", name)
		}
	}
	return nil
}

// ApplyDefaults fills zero-valued fields with the documented defaults.
func (c *Config) ApplyDefaults() {
	if c.PredictionTTL == 0 {
		c.PredictionTTL = Duration(DefaultPredictionTTL)
	}
	if c.FeatureTTL == 0 {
		c.FeatureTTL = Duration(DefaultFeatureTTL)
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = Duration(DefaultSweepInterval)
	}
	if c.CacheCap == 0 {
		c.CacheCap = DefaultCacheCap
	}
	if c.ExtractorTimeout == 0 {
		c.ExtractorTimeout = Duration(DefaultExtractorTimeout)
	}
	if c.TierTimeout == 0 {
		c.TierTimeout = Duration(DefaultTierTimeout)
	}
	if c.RequestBudget == 0 {
		c.RequestBudget = Duration(DefaultRequestBudget)
	}
}

func knownDimension(name string) bool {
	for _, d := range types.Dimensions {
		if string(d) == name {
			return true
		}
	}
	return false
}
