package types

// Effort classifies how hard a recommendation is to act on. Lower is easier;
// used as the tie-breaker when two recommendations have equal estimated
// impact.
type Effort int

// Effort levels, easiest first.
const (
	EffortTrivial     Effort = iota // e.g. add a missing keyword
	EffortModerate                  // e.g. restructure a CV section
	EffortSubstantial               // e.g. obtain a certification
	EffortLongTerm                  // e.g. gain years of experience
)

func (e Effort) String() string {
	switch e {
	case EffortTrivial:
		return "trivial"
	case EffortModerate:
		return "moderate"
	case EffortSubstantial:
		return "substantial"
	case EffortLongTerm:
		return "long_term"
	default:
		return "unknown"
	}
}

// Recommendation names a structured feature gap and its estimated payoff.
// It carries identifiers, not prose; an out-of-scope presentation layer
// renders these into user-facing copy.
type Recommendation struct {
	// GapID identifies the feature gap, e.g. "matching.skill_overlap.low".
	GapID string `json:"gap_id"`
	// Category is the sub-vector the gap was found in.
	Category string `json:"category"`
	// Feature is the feature name within the category.
	Feature string `json:"feature"`
	// Dimension is the prediction dimension most affected.
	Dimension Dimension `json:"dimension"`
	// EstimatedImpact is the predicted improvement of Dimension's value
	// (in its native range) if the gap is closed.
	EstimatedImpact float64 `json:"estimated_impact"`
	Effort          Effort  `json:"effort"`
	// Priority is the 1-based rank after sorting by impact desc, effort asc.
	Priority     int     `json:"priority"`
	CurrentValue float64 `json:"current_value"`
	TargetValue  float64 `json:"target_value"`
}
