// Package llm provides the client for the external model-serving endpoint
// used by model-backed predictors. The endpoint has untrusted availability;
// every failure here is recovered by the fallback chain, never surfaced.
package llm

// ModelTier represents the capability level of a serving model.
type ModelTier string

const (
	// TierLite is for cheap scoring passes.
	TierLite ModelTier = "lite"
	// TierStandard is the default scoring tier.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for dimensions needing more reasoning (salary bands).
	TierAdvanced ModelTier = "advanced"
)

// Provider represents a model-serving provider.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
)

// Config holds the serving-model configuration.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard then
// lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
