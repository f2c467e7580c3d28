package features

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/success-predictor/internal/types"
)

// DefaultDerived is the derived extractor over the standard composites.
type DefaultDerived struct{}

// NewDerivedExtractor creates the derived-category extractor. It consumes the
// merged primary sub-vectors, which is why the subsystem orders it last.
func NewDerivedExtractor() *DefaultDerived { return &DefaultDerived{} }

// Category implements DerivedExtractor.
func (e *DefaultDerived) Category() string { return types.CategoryDerived }

// Defaults returns the documented neutral composites.
func (e *DefaultDerived) Defaults() types.SubVector {
	return types.SubVector{
		"trajectory_slope":  0,
		"leadership_signal": 0,
		"tenure_stability":  0.5,
		"market_alignment":  0.25,
		"overall_strength":  0.5,
	}
}

// ExtractDerived implements DerivedExtractor.
func (e *DefaultDerived) ExtractDerived(_ context.Context, req *types.PredictionRequest, base *types.FeatureVector) (types.SubVector, error) {
	if base == nil || base.CV == nil || base.Matching == nil || base.Market == nil || base.Behavior == nil {
		return nil, fmt.Errorf("derived extraction requires the four primary sub-vectors")
	}

	slope := trajectorySlope(req.CV.Experience)
	leadership := leadershipSignal(req.CV)
	stability := tenureStability(req.CV)

	// Composite of matching quality and market demand: a strong match in a
	// hot market scores near 1.
	alignment := base.Matching.Get("skill_overlap", 0.5) * base.Market.Get("demand_index", 0.5)

	strength := 0.35*base.Matching.Get("skill_overlap", 0.5) +
		0.25*base.CV.Get("completeness", 0.5) +
		0.20*base.Matching.Get("seniority_match", 0.5) +
		0.10*base.Behavior.Get("engagement", 0.5) +
		0.10*clamp(0.5+slope, 0, 1)

	return types.SubVector{
		"trajectory_slope":  slope,
		"leadership_signal": leadership,
		"tenure_stability":  stability,
		"market_alignment":  clamp(alignment, 0, 1),
		"overall_strength":  clamp(strength, 0, 1),
	}, nil
}

// trajectorySlope estimates career progression as seniority gained per
// position, in [-1,1]. Positive means climbing; flat careers score 0.
// Positions without a parseable start date cannot be ordered and are left
// out.
func trajectorySlope(entries []types.ExperienceEntry) float64 {
	type step struct {
		start time.Time
		rank  int
	}
	steps := make([]step, 0, len(entries))
	for _, e := range entries {
		r := seniorityRank(e.Seniority)
		if r < 0 {
			continue
		}
		start, ok := parseMonth(e.StartDate)
		if !ok {
			continue
		}
		steps = append(steps, step{start: start, rank: r})
	}
	if len(steps) < 2 {
		return 0
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].start.Before(steps[j].start) })

	// Rank climbed between first and last position, normalized by the number
	// of transitions and the maximum single step of the scale.
	delta := float64(steps[len(steps)-1].rank - steps[0].rank)
	return clamp(delta/float64(len(steps)-1)/2, -1, 1)
}

// leadershipSignal scans titles and skills for leadership markers.
func leadershipSignal(cv types.CVData) float64 {
	markers := []string{"lead", "manager", "head", "principal", "director", "mentor"}
	score := 0.0
	for _, exp := range cv.Experience {
		title := strings.ToLower(exp.Title)
		for _, m := range markers {
			if strings.Contains(title, m) {
				score += 0.4
				break
			}
		}
	}
	for _, s := range cv.Skills {
		skill := strings.ToLower(s)
		if strings.Contains(skill, "leadership") || strings.Contains(skill, "mentoring") {
			score += 0.2
		}
	}
	return clamp(score, 0, 1)
}

// tenureStability scores average time per position: two or more years per
// role counts as fully stable, job-hopping under six months scores low.
func tenureStability(cv types.CVData) float64 {
	if len(cv.Experience) == 0 {
		return 0.5
	}
	if cv.YearsExperience <= 0 {
		return 0.5
	}
	avgYears := cv.YearsExperience / float64(len(cv.Experience))
	return clamp(avgYears/2, 0.1, 1)
}
