package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/success-predictor/internal/schemas"
	"github.com/jonathan/success-predictor/internal/types"
)

// ScoreResult is the parsed, schema-validated output of one scoring call.
type ScoreResult struct {
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"`
	RangeMin   float64 `json:"range_min,omitempty"`
	RangeMax   float64 `json:"range_max,omitempty"`
	Rationale  string  `json:"rationale,omitempty"`
}

// dimensionSpec describes one dimension's output contract for the prompt.
type dimensionSpec struct {
	description string
	valueRange  string
	tier        ModelTier
}

var dimensionSpecs = map[types.Dimension]dimensionSpec{
	types.DimensionInterview: {
		description: "probability that the candidate is invited to an interview for the target role",
		valueRange:  "a probability between 0 and 1",
		tier:        TierStandard,
	},
	types.DimensionOffer: {
		description: "probability that the candidate receives an offer for the target role",
		valueRange:  "a probability between 0 and 1",
		tier:        TierStandard,
	},
	types.DimensionSalary: {
		description: "expected annual salary for this candidate in the target role, with a plausible range in range_min and range_max",
		valueRange:  "an annual amount in the role's market currency",
		tier:        TierAdvanced,
	},
	types.DimensionTimeToHire: {
		description: "expected number of days from application to hiring decision",
		valueRange:  "a day count, typically between 7 and 120",
		tier:        TierStandard,
	},
	types.DimensionCompetitiveness: {
		description: "how competitive this candidate is within the expected applicant pool",
		valueRange:  "a score between 0 and 100",
		tier:        TierLite,
	},
}

// Scorer turns a feature vector into one dimension score via the serving
// model. Responses are validated against the score schema before use; an
// out-of-contract response is returned as an error so the fallback chain can
// take over.
type Scorer struct {
	client Client
}

// NewScorer creates a scorer on top of a serving client.
func NewScorer(client Client) *Scorer {
	return &Scorer{client: client}
}

// Score asks the serving model to score one dimension of the feature vector.
func (s *Scorer) Score(ctx context.Context, dim types.Dimension, vector *types.FeatureVector) (*ScoreResult, error) {
	spec, ok := dimensionSpecs[dim]
	if !ok {
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}

	prompt, err := buildScorePrompt(dim, spec, vector)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateJSON(ctx, prompt, spec.tier)
	if err != nil {
		return nil, fmt.Errorf("model call for %s failed: %w", dim, err)
	}

	if err := schemas.ValidateModelScore(raw); err != nil {
		return nil, err
	}

	var result ScoreResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model score for %s: %w", dim, err)
	}
	return &result, nil
}

// buildScorePrompt constructs the scoring prompt from the dimension contract
// and the serialized feature vector.
func buildScorePrompt(dim types.Dimension, spec dimensionSpec, vector *types.FeatureVector) (string, error) {
	features, err := json.MarshalIndent(vector, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize feature vector: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("You are a hiring-outcome scoring model. Estimate the ")
	sb.WriteString(spec.description)
	sb.WriteString(".\n\n")
	sb.WriteString("The input is a feature vector with five categories (cv, matching, market, behavior, derived).\n")
	sb.WriteString("Feature vector:\n")
	sb.Write(features)
	sb.WriteString("\n\nReturn ONLY valid JSON with this exact structure:\n")
	sb.WriteString(`{"value": number, "confidence": number, "range_min": number, "range_max": number, "rationale": string}`)
	sb.WriteString("\n\nvalue must be ")
	sb.WriteString(spec.valueRange)
	sb.WriteString(". confidence must be between 0 and 1. ")
	if dim != types.DimensionSalary {
		sb.WriteString("Omit range_min and range_max. ")
	}
	sb.WriteString("Keep rationale under 30 words.")
	return sb.String(), nil
}
