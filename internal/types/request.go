// Package types provides type definitions for structured data used throughout the success-predictor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// CVData represents a structured candidate CV produced by the upstream parsing subsystem.
type CVData struct {
	Sections        []CVSection       `json:"sections" validate:"required,min=1,dive"`
	Skills          []string          `json:"skills" validate:"required"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	YearsExperience float64           `json:"years_experience,omitempty"`
	CurrentTitle    string            `json:"current_title,omitempty"`
	EditCount       int               `json:"edit_count,omitempty"` // number of optimization passes the candidate made
}

// CVSection represents one standard section of a CV document.
type CVSection struct {
	Name      string `json:"name" validate:"required"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count,omitempty"`
}

// ExperienceEntry represents a single position on the CV.
type ExperienceEntry struct {
	Title     string   `json:"title"`
	Company   string   `json:"company,omitempty"`
	StartDate string   `json:"start_date,omitempty"` // "YYYY-MM"
	EndDate   string   `json:"end_date,omitempty"`   // "YYYY-MM" or empty for current
	Skills    []string `json:"skills,omitempty"`
	Seniority string   `json:"seniority,omitempty"` // junior, mid, senior, lead, principal
}

// EducationEntry represents a degree on the CV.
type EducationEntry struct {
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
	School string `json:"school,omitempty"`
}

// JobDescription represents the target role. Either the structured fields or
// RawText must be populated; extractors fall back to RawText keyword scans
// when structure is missing.
type JobDescription struct {
	Title          string   `json:"title" validate:"required_without=RawText"`
	RawText        string   `json:"raw_text" validate:"required_without=Title"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	NiceToHaves    []string `json:"nice_to_haves,omitempty"`
	Seniority      string   `json:"seniority,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Location       string   `json:"location,omitempty"`
	MinYears       float64  `json:"min_years,omitempty"`
	SalaryMin      float64  `json:"salary_min,omitempty"`
	SalaryMax      float64  `json:"salary_max,omitempty"`
	PostedAt       string   `json:"posted_at,omitempty"` // RFC 3339
}

// RequestContext carries optional, volatile request metadata. Context fields
// are excluded from the coarse feature-cache key so feature vectors can be
// reused across submissions of the same CV/job pair.
type RequestContext struct {
	DesiredLocation    string    `json:"desired_location,omitempty"`
	ApplicationChannel string    `json:"application_channel,omitempty"` // direct, referral, board
	SubmittedAt        time.Time `json:"submitted_at,omitempty"`
	PlatformSessions   int       `json:"platform_sessions,omitempty"` // engagement signal from the surrounding platform
}

// PredictionRequest is the immutable input to the engine. Construct it once
// and do not mutate; fingerprints are derived from a normalized snapshot of
// its fields.
type PredictionRequest struct {
	CV      CVData          `json:"cv" validate:"required"`
	Job     JobDescription  `json:"job" validate:"required"`
	Context *RequestContext `json:"context,omitempty"`
}
