package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateModelScore_Valid(t *testing.T) {
	raw := `{"value": 0.7, "confidence": 0.85, "rationale": "strong overlap"}`
	assert.NoError(t, ValidateModelScore(raw))
}

func TestValidateModelScore_ValidWithRange(t *testing.T) {
	raw := `{"value": 120000, "confidence": 0.8, "range_min": 100000, "range_max": 140000}`
	assert.NoError(t, ValidateModelScore(raw))
}

func TestValidateModelScore_MissingConfidence(t *testing.T) {
	err := ValidateModelScore(`{"value": 0.7}`)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "confidence")
}

func TestValidateModelScore_ConfidenceOutOfRange(t *testing.T) {
	err := ValidateModelScore(`{"value": 0.7, "confidence": 1.5}`)
	assert.Error(t, err)
}

func TestValidateModelScore_UnknownField(t *testing.T) {
	err := ValidateModelScore(`{"value": 0.7, "confidence": 0.5, "verdict": "hire"}`)
	assert.Error(t, err)
}

func TestValidateModelScore_NotJSON(t *testing.T) {
	err := ValidateModelScore(`the candidate looks promising`)
	assert.Error(t, err)
}
