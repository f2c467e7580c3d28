package types

import "time"

// Dimension identifies one predicted outcome.
type Dimension string

// The five prediction dimensions.
const (
	DimensionInterview       Dimension = "interview"
	DimensionOffer           Dimension = "offer"
	DimensionSalary          Dimension = "salary"
	DimensionTimeToHire      Dimension = "time_to_hire"
	DimensionCompetitiveness Dimension = "competitiveness"
)

// Dimensions lists all prediction dimensions in a stable order.
var Dimensions = []Dimension{
	DimensionInterview,
	DimensionOffer,
	DimensionSalary,
	DimensionTimeToHire,
	DimensionCompetitiveness,
}

// Tier identifies which level of the fallback chain produced a value.
type Tier string

// Fallback tiers, in degradation order.
const (
	TierModel     Tier = "model"
	TierHeuristic Tier = "heuristic"
	TierMinimal   Tier = "minimal"
)

// Degradation summarizes how much of a prediction came from fallback tiers.
type Degradation string

// Degradation levels exposed on SuccessPrediction.
const (
	DegradationFull    Degradation = "full"    // every dimension served by the model tier
	DegradationPartial Degradation = "partial" // at least one dimension fell back
	DegradationMinimal Degradation = "minimal" // every dimension served below the model tier
)

// SalaryEstimate is a point estimate with a plausible range, in annual units
// of Currency.
type SalaryEstimate struct {
	Point    float64 `json:"point"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// DimensionResult is one predictor's output: the dimension value in its
// native range plus the confidence reported by the serving tier.
type DimensionResult struct {
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"` // [0,1]
	Tier       Tier    `json:"tier"`
}

// SuccessPrediction is the immutable result of one prediction cycle. It is
// created once per request, cached, and returned verbatim on cache hits
// (recommendations included, so hits never re-run the recommendation engine).
type SuccessPrediction struct {
	Fingerprint string `json:"fingerprint"`

	InterviewProbability float64        `json:"interview_probability"` // [0,1]
	OfferProbability     float64        `json:"offer_probability"`     // [0,1]
	Salary               SalaryEstimate `json:"salary"`
	TimeToHireDays       float64        `json:"time_to_hire_days"`
	Competitiveness      float64        `json:"competitiveness"` // 0-100

	// Confidences holds the per-dimension confidence in [0,1]; Tiers records
	// which fallback tier served each dimension.
	Confidences map[Dimension]float64 `json:"confidences"`
	Tiers       map[Dimension]Tier    `json:"tiers"`

	OverallConfidence float64     `json:"overall_confidence"` // weighted average of Confidences
	Degradation       Degradation `json:"degradation"`

	Recommendations []Recommendation `json:"recommendations"`

	GeneratedAt time.Time `json:"generated_at"`
}

// DimensionValue returns the value for one dimension in its native range.
func (p *SuccessPrediction) DimensionValue(d Dimension) float64 {
	switch d {
	case DimensionInterview:
		return p.InterviewProbability
	case DimensionOffer:
		return p.OfferProbability
	case DimensionSalary:
		return p.Salary.Point
	case DimensionTimeToHire:
		return p.TimeToHireDays
	case DimensionCompetitiveness:
		return p.Competitiveness
	default:
		return 0
	}
}
