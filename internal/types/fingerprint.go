package types

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Fingerprint returns a deterministic hash over all normalized request
// fields, including volatile context. Used as the prediction-cache key and
// the outcome correlation key.
func (r *PredictionRequest) Fingerprint() string {
	return hashParts(r.normalizedCV(), r.normalizedJob(), r.normalizedContext())
}

// FeatureKey returns a coarser fingerprint over CV and job only. Volatile
// context (location preference, channel, timestamp) is excluded so cached
// feature vectors survive resubmissions of the same CV/job pair.
func (r *PredictionRequest) FeatureKey() string {
	return hashParts(r.normalizedCV(), r.normalizedJob())
}

func hashParts(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0}) // field separator so adjacent parts cannot collide
	}
	return hex.EncodeToString(h.Sum(nil))
}

// normalizedCV serializes the CV with skills sorted case-insensitively so
// that reordered input produces the same key.
func (r *PredictionRequest) normalizedCV() string {
	cv := r.CV
	cv.Skills = normalizeStrings(cv.Skills)
	data, err := json.Marshal(cv)
	if err != nil {
		return ""
	}
	return string(data)
}

func (r *PredictionRequest) normalizedJob() string {
	job := r.Job
	job.RequiredSkills = normalizeStrings(job.RequiredSkills)
	job.NiceToHaves = normalizeStrings(job.NiceToHaves)
	job.RawText = strings.Join(strings.Fields(strings.ToLower(job.RawText)), " ")
	data, err := json.Marshal(job)
	if err != nil {
		return ""
	}
	return string(data)
}

func (r *PredictionRequest) normalizedContext() string {
	if r.Context == nil {
		return ""
	}
	data, err := json.Marshal(r.Context)
	if err != nil {
		return ""
	}
	return string(data)
}

// normalizeStrings lowercases, trims and sorts a string slice without
// mutating the original.
func normalizeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
