package types

// Feature category names. Every merged vector carries exactly these five
// sub-vectors; an extractor failure degrades a category to its defaults but
// never removes it.
const (
	CategoryCV       = "cv"
	CategoryMatching = "matching"
	CategoryMarket   = "market"
	CategoryBehavior = "behavior"
	CategoryDerived  = "derived"
)

// Categories lists the five feature categories in extraction order. The
// derived category is computed from the other four and always comes last.
var Categories = []string{CategoryCV, CategoryMatching, CategoryMarket, CategoryBehavior, CategoryDerived}

// SubVector is a fixed mapping of feature name to numeric value. Categorical
// features are encoded as ordinal numerics by their extractor (e.g. seniority
// levels 0-4).
type SubVector map[string]float64

// Clone returns a copy of the sub-vector.
func (s SubVector) Clone() SubVector {
	out := make(SubVector, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the named feature, or fallback when absent.
func (s SubVector) Get(name string, fallback float64) float64 {
	if v, ok := s[name]; ok {
		return v
	}
	return fallback
}

// FeatureVector is the merged output of the extraction subsystem.
type FeatureVector struct {
	CV       SubVector `json:"cv"`
	Matching SubVector `json:"matching"`
	Market   SubVector `json:"market"`
	Behavior SubVector `json:"behavior"`
	Derived  SubVector `json:"derived"`

	// PartiallyDegraded is true when at least one extractor failed or timed
	// out and its defaults were substituted. This is distinct from the
	// prediction-level degradation flag; the orchestrator uses it to
	// down-weight confidence.
	PartiallyDegraded bool `json:"partially_degraded"`

	// DegradedCategories names the sub-vectors that were defaulted.
	DegradedCategories []string `json:"degraded_categories,omitempty"`
}

// Sub returns the named sub-vector, or nil for an unknown category.
func (v *FeatureVector) Sub(category string) SubVector {
	switch category {
	case CategoryCV:
		return v.CV
	case CategoryMatching:
		return v.Matching
	case CategoryMarket:
		return v.Market
	case CategoryBehavior:
		return v.Behavior
	case CategoryDerived:
		return v.Derived
	default:
		return nil
	}
}

// SetSub assigns the named sub-vector. Unknown categories are ignored.
func (v *FeatureVector) SetSub(category string, sub SubVector) {
	switch category {
	case CategoryCV:
		v.CV = sub
	case CategoryMatching:
		v.Matching = sub
	case CategoryMarket:
		v.Market = sub
	case CategoryBehavior:
		v.Behavior = sub
	case CategoryDerived:
		v.Derived = sub
	}
}

// Complete reports whether all five sub-vectors are present. A degraded
// sub-vector (all defaults) still counts as present; a nil one does not.
func (v *FeatureVector) Complete() bool {
	return v.CV != nil && v.Matching != nil && v.Market != nil && v.Behavior != nil && v.Derived != nil
}
