// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/success-predictor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFeatureVector outputs the merged feature vector, one category per
// block, features sorted by name.
func (p *Printer) PrintFeatureVector(vector *types.FeatureVector) {
	if vector == nil {
		return
	}

	var sb strings.Builder
	for i, cat := range types.Categories {
		sub := vector.Sub(cat)
		if sub == nil {
			continue
		}
		label := strings.ToUpper(cat)
		if degraded(vector, cat) {
			label += " (defaulted)"
		}
		sb.WriteString(label + "\n")

		names := make([]string, 0, len(sub))
		for name := range sub {
			names = append(names, name)
		}
		sort.Strings(names)
		count := min(len(names), maxItemsToShow)
		for _, name := range names[:count] {
			sb.WriteString(fmt.Sprintf("  %-24s %.3f\n", name, sub[name]))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
		if i < len(types.Categories)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FEATURE VECTOR", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPrediction outputs the per-dimension results with their serving tiers
// and confidences, plus the overall summary.
func (p *Printer) PrintPrediction(prediction *types.SuccessPrediction) {
	if prediction == nil {
		return
	}

	var sb strings.Builder
	for _, dim := range types.Dimensions {
		sb.WriteString(fmt.Sprintf("%-16s %s\n", string(dim), formatDimension(prediction, dim)))
		sb.WriteString(fmt.Sprintf("%-16s tier=%s conf=%.2f\n", "", prediction.Tiers[dim], prediction.Confidences[dim]))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall confidence: %.2f\n", prediction.OverallConfidence))
	sb.WriteString(fmt.Sprintf("Degradation:        %s", prediction.Degradation))

	p.printBox("PREDICTION", sb.String())
}

// PrintRecommendations outputs the ranked recommendations.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(recs), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := recs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", rec.Priority, rec.GapID))
		sb.WriteString(fmt.Sprintf("    impact=%.2f on %s, effort=%s\n", rec.EstimatedImpact, rec.Dimension, rec.Effort))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(recs)-maxItemsToShow))
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCalibration outputs aggregated outcome statistics for one dimension.
func (p *Printer) PrintCalibration(stats *types.CalibrationStats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Dimension: %s\n", stats.Dimension))
	sb.WriteString(fmt.Sprintf("Samples:   %d\n", stats.SampleCount))
	switch stats.Dimension {
	case types.DimensionInterview, types.DimensionOffer:
		sb.WriteString(fmt.Sprintf("Positive:  %.1f%%", stats.PositiveRate*100))
	default:
		sb.WriteString(fmt.Sprintf("Mean:      %.1f\n", stats.MeanValue))
		sb.WriteString(fmt.Sprintf("Range:     %.1f - %.1f", stats.MinValue, stats.MaxValue))
	}

	p.printBox("OUTCOME CALIBRATION", sb.String())
}

func formatDimension(p *types.SuccessPrediction, dim types.Dimension) string {
	switch dim {
	case types.DimensionInterview:
		return fmt.Sprintf("%.1f%%", p.InterviewProbability*100)
	case types.DimensionOffer:
		return fmt.Sprintf("%.1f%%", p.OfferProbability*100)
	case types.DimensionSalary:
		return fmt.Sprintf("%.0f %s (%.0f - %.0f)", p.Salary.Point, p.Salary.Currency, p.Salary.Min, p.Salary.Max)
	case types.DimensionTimeToHire:
		return fmt.Sprintf("%.0f days", p.TimeToHireDays)
	case types.DimensionCompetitiveness:
		return fmt.Sprintf("%.0f / 100", p.Competitiveness)
	default:
		return "?"
	}
}

func degraded(v *types.FeatureVector, category string) bool {
	for _, c := range v.DegradedCategories {
		if c == category {
			return true
		}
	}
	return false
}
