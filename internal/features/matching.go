package features

import (
	"context"

	"github.com/jonathan/success-predictor/internal/types"
)

// MatchingExtractor derives CV-to-job alignment features.
type MatchingExtractor struct{}

// NewMatchingExtractor creates the matching-category extractor.
func NewMatchingExtractor() *MatchingExtractor { return &MatchingExtractor{} }

// Category implements Extractor.
func (e *MatchingExtractor) Category() string { return types.CategoryMatching }

// Defaults returns the documented neutral sub-vector for a failed extraction.
func (e *MatchingExtractor) Defaults() types.SubVector {
	return types.SubVector{
		"skill_overlap":        0.5,
		"nice_to_have_overlap": 0.5,
		"title_similarity":     0.5,
		"seniority_match":      0.5,
		"experience_ratio":     0.5,
		"keyword_density":      0.5,
	}
}

// Extract implements Extractor.
func (e *MatchingExtractor) Extract(_ context.Context, req *types.PredictionRequest) (types.SubVector, error) {
	cvSkills := skillSet(req.CV.Skills)
	for _, exp := range req.CV.Experience {
		for _, s := range exp.Skills {
			if n := normalizeSkill(s); n != "" {
				cvSkills[n] = true
			}
		}
	}
	job := &req.Job

	skillOverlap := overlapRatio(cvSkills, job.RequiredSkills)
	if skillOverlap < 0 {
		// No structured requirements: fall back to scanning the raw text.
		skillOverlap = rawTextOverlap(cvSkills, job.RawText)
	}

	niceOverlap := overlapRatio(cvSkills, job.NiceToHaves)
	if niceOverlap < 0 {
		niceOverlap = 0.5 // nothing requested, neutral
	}

	return types.SubVector{
		"skill_overlap":        skillOverlap,
		"nice_to_have_overlap": niceOverlap,
		"title_similarity":     titleSimilarity(req.CV.CurrentTitle, job.Title),
		"seniority_match":      seniorityMatch(req.CV, job),
		"experience_ratio":     experienceRatio(req.CV.YearsExperience, job.MinYears),
		"keyword_density":      keywordDensity(cvSkills, job),
	}, nil
}

// rawTextOverlap counts how many of the CV skills appear in the job raw text.
// Used when the job carries no structured requirement list.
func rawTextOverlap(cvSkills map[string]bool, rawText string) float64 {
	if rawText == "" || len(cvSkills) == 0 {
		return 0.5 // nothing to compare, neutral
	}
	tokens := tokenSet(rawText)
	matched := 0
	for s := range cvSkills {
		if tokens[s] {
			matched++
		}
	}
	return clamp(float64(matched)/float64(len(cvSkills)), 0, 1)
}

// titleSimilarity compares the current title with the target title.
func titleSimilarity(current, target string) float64 {
	if current == "" || target == "" {
		return 0.5
	}
	return tokenJaccard(current, target)
}

// seniorityMatch scores the ordinal distance between the candidate's level
// and the job's level: equal levels score 1, each level of distance costs
// 0.25 (over-qualification counts the same as under-qualification).
func seniorityMatch(cv types.CVData, job *types.JobDescription) float64 {
	jobRank := seniorityRank(job.Seniority)
	if jobRank < 0 {
		return 0.5
	}
	cvRank := -1
	for _, exp := range cv.Experience {
		if r := seniorityRank(exp.Seniority); r > cvRank {
			cvRank = r
		}
	}
	if cvRank < 0 {
		cvRank = seniorityRank(cv.CurrentTitle) // titles sometimes carry the level
	}
	if cvRank < 0 {
		return 0.5
	}
	dist := cvRank - jobRank
	if dist < 0 {
		dist = -dist
	}
	return clamp(1-0.25*float64(dist), 0, 1)
}

// experienceRatio is cv years over required years, capped at 1. Roles with no
// stated minimum score neutral.
func experienceRatio(cvYears, minYears float64) float64 {
	if minYears <= 0 {
		return 0.5
	}
	return clamp(cvYears/minYears, 0, 1)
}

// keywordDensity is the share of all job-named skills (required plus nice to
// have) found on the CV.
func keywordDensity(cvSkills map[string]bool, job *types.JobDescription) float64 {
	all := make([]string, 0, len(job.RequiredSkills)+len(job.NiceToHaves))
	all = append(all, job.RequiredSkills...)
	all = append(all, job.NiceToHaves...)
	ratio := overlapRatio(cvSkills, all)
	if ratio < 0 {
		return 0.5
	}
	return ratio
}
