package types

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeType names a real-world result reported back by the surrounding
// system.
type OutcomeType string

// Outcome types, one per trackable dimension.
const (
	OutcomeInterview  OutcomeType = "interview"    // Occurred: interview obtained
	OutcomeOffer      OutcomeType = "offer"        // Occurred: offer obtained
	OutcomeSalary     OutcomeType = "salary"       // Value: actual accepted salary
	OutcomeTimeToHire OutcomeType = "time_to_hire" // Value: actual days to hire
)

// Dimension maps an outcome type to the prediction dimension it calibrates.
func (t OutcomeType) Dimension() Dimension {
	switch t {
	case OutcomeInterview:
		return DimensionInterview
	case OutcomeOffer:
		return DimensionOffer
	case OutcomeSalary:
		return DimensionSalary
	case OutcomeTimeToHire:
		return DimensionTimeToHire
	default:
		return ""
	}
}

// Valid reports whether t is a known outcome type.
func (t OutcomeType) Valid() bool {
	switch t {
	case OutcomeInterview, OutcomeOffer, OutcomeSalary, OutcomeTimeToHire:
		return true
	}
	return false
}

// OutcomeRecord is an append-only record of a real-world result, keyed to
// the original request fingerprint. Recording is idempotent per
// (fingerprint, type): a repeat report replaces the earlier one and never
// double-counts in aggregates. Records never mutate past predictions and
// never expire.
type OutcomeRecord struct {
	ID          uuid.UUID   `json:"id"`
	Fingerprint string      `json:"fingerprint"`
	Type        OutcomeType `json:"type"`
	Occurred    bool        `json:"occurred"`        // for interview/offer outcomes
	Value       float64     `json:"value,omitempty"` // for salary/time-to-hire outcomes
	RecordedAt  time.Time   `json:"recorded_at"`
}

// CalibrationStats aggregates recorded outcomes for one dimension over a
// time range, for consumption by an external calibration job.
type CalibrationStats struct {
	Dimension    Dimension `json:"dimension"`
	SampleCount  int       `json:"sample_count"`
	PositiveRate float64   `json:"positive_rate,omitempty"` // interview/offer: fraction Occurred
	MeanValue    float64   `json:"mean_value,omitempty"`    // salary/time-to-hire: mean of Value
	MinValue     float64   `json:"min_value,omitempty"`
	MaxValue     float64   `json:"max_value,omitempty"`
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
}
