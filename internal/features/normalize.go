package features

import (
	"strings"
	"time"
)

// skillAliases maps common skill spellings to a canonical form so overlap
// ratios are not defeated by notation differences.
var skillAliases = map[string]string{
	"golang":   "go",
	"js":       "javascript",
	"ts":       "typescript",
	"k8s":      "kubernetes",
	"postgres": "postgresql",
	"py":       "python",
	"node":     "nodejs",
	"node.js":  "nodejs",
	"ml":       "machine learning",
	"ci/cd":    "cicd",
}

// normalizeSkill lowercases, trims and canonicalizes a skill name.
func normalizeSkill(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := skillAliases[s]; ok {
		return canonical
	}
	return s
}

// skillSet builds a canonical set from a skill list.
func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		if n := normalizeSkill(s); n != "" {
			set[n] = true
		}
	}
	return set
}

// overlapRatio returns |cv ∩ wanted| / |wanted|, or -1 when wanted is empty
// so callers can distinguish "no data" from "no overlap".
func overlapRatio(cv map[string]bool, wanted []string) float64 {
	wantedSet := skillSet(wanted)
	if len(wantedSet) == 0 {
		return -1
	}
	matched := 0
	for w := range wantedSet {
		if cv[w] {
			matched++
		}
	}
	return float64(matched) / float64(len(wantedSet))
}

// seniorityRank maps a seniority label to an ordinal 0-4. Unknown labels map
// to -1 so callers can substitute a neutral value.
func seniorityRank(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intern", "junior", "entry":
		return 0
	case "mid", "intermediate":
		return 1
	case "senior":
		return 2
	case "lead", "staff":
		return 3
	case "principal", "director", "head":
		return 4
	default:
		return -1
	}
}

// tokenJaccard computes the Jaccard similarity of whitespace tokens of two
// strings, lowercased.
func tokenJaccard(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for t := range ta {
		if tb[t] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(strings.ToLower(s)) {
		t = strings.Trim(t, ".,;:()[]")
		if t != "" {
			set[t] = true
		}
	}
	return set
}

// parseMonth parses "YYYY-MM"; ok is false for empty or malformed input.
func parseMonth(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
