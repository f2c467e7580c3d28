package features

import (
	"context"
	"strings"

	"github.com/jonathan/success-predictor/internal/types"
)

// Standard CV sections used for the completeness score.
var standardSections = []string{"summary", "experience", "education", "skills", "contact"}

// Word-count band considered well-sized for a CV. Shorter or longer documents
// score proportionally lower.
const (
	idealMinWords = 300
	idealMaxWords = 900
)

// CVExtractor derives structural-quality features of the CV document itself.
type CVExtractor struct{}

// NewCVExtractor creates the cv-category extractor.
func NewCVExtractor() *CVExtractor { return &CVExtractor{} }

// Category implements Extractor.
func (e *CVExtractor) Category() string { return types.CategoryCV }

// Defaults returns the documented neutral sub-vector for a failed extraction.
func (e *CVExtractor) Defaults() types.SubVector {
	return types.SubVector{
		"completeness":     0.5,
		"length_score":     0.5,
		"readability":      0.5,
		"section_count":    0,
		"years_experience": 0,
		"skill_count":      0,
	}
}

// Extract implements Extractor.
func (e *CVExtractor) Extract(_ context.Context, req *types.PredictionRequest) (types.SubVector, error) {
	cv := &req.CV

	totalWords := 0
	sentences := 0
	present := make(map[string]bool, len(cv.Sections))
	for _, sec := range cv.Sections {
		present[strings.ToLower(strings.TrimSpace(sec.Name))] = true
		words := sec.WordCount
		if words == 0 {
			words = len(strings.Fields(sec.Content))
		}
		totalWords += words
		sentences += strings.Count(sec.Content, ".") + strings.Count(sec.Content, "!") + strings.Count(sec.Content, "?")
	}

	completeness := 0.0
	for _, name := range standardSections {
		if present[name] {
			completeness++
		}
	}
	completeness /= float64(len(standardSections))

	return types.SubVector{
		"completeness":     completeness,
		"length_score":     lengthScore(totalWords),
		"readability":      readabilityScore(totalWords, sentences),
		"section_count":    float64(len(cv.Sections)),
		"years_experience": cv.YearsExperience,
		"skill_count":      float64(len(cv.Skills)),
	}, nil
}

// lengthScore maps total word count into [0,1], peaking inside the ideal
// band and decaying linearly outside it.
func lengthScore(words int) float64 {
	w := float64(words)
	switch {
	case words == 0:
		return 0
	case w < idealMinWords:
		return clamp(w/idealMinWords, 0, 1)
	case w <= idealMaxWords:
		return 1
	default:
		// Decay to 0 at triple the ideal maximum.
		return clamp(1-(w-idealMaxWords)/(2*idealMaxWords), 0, 1)
	}
}

// readabilityScore is a proxy based on average sentence length: around 15-20
// words per sentence scores highest.
func readabilityScore(words, sentences int) float64 {
	if sentences == 0 || words == 0 {
		return 0.5 // no prose to judge
	}
	avg := float64(words) / float64(sentences)
	switch {
	case avg < 5:
		return 0.4
	case avg <= 25:
		// Peak at ~17 words per sentence.
		return clamp(1-(avg-17)*(avg-17)/300, 0.4, 1)
	default:
		return clamp(1-(avg-25)/50, 0.1, 0.4)
	}
}
