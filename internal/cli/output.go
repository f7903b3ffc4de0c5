// Package cli renders pipeline run records for the command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/kousei/internal/models"
)

// OutputFormat is the format for run record output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteRunRecord writes record to w in the given format. Use OutputJSON for
// parseable output consumable by other tools.
func WriteRunRecord(w io.Writer, record *models.RunRecord, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	default:
		writeRunRecordText(w, record)
		return nil
	}
}

func writeRunRecordText(w io.Writer, record *models.RunRecord) {
	fmt.Fprintf(w, "\nRun %s: %s after %d attempt(s), %d revision(s)\n",
		record.RunID, record.GateState, record.Attempts, record.Revisions)
	fmt.Fprintf(w, "Weighted total: %d (pass >= %d)\n",
		record.CompositeResult.WeightedTotal, models.PassThreshold)

	fmt.Fprintln(w, "\n--- Dimension scores ---")
	for _, dim := range []string{models.DimVoice, models.DimSpecificity, models.DimStructure, models.DimSEO, models.DimReadability} {
		fmt.Fprintf(w, "%-18s %3d  (weight %.2f)\n",
			dim, record.CompositeResult.DimensionScores[dim], models.DimensionWeights[dim])
	}

	fmt.Fprintf(w, "\nSEO rating: %.1f, publish ready: %v\n",
		record.SEOResult.OverallScore, record.SEOResult.PublishReady)
	fmt.Fprintf(w, "Readability: ease %.1f, grade %.1f, score %d\n",
		record.MetricBundle.ReadingEase, record.MetricBundle.GradeLevel, record.MetricBundle.OverallScore)
	fmt.Fprintf(w, "Keyword %q: %.2f%% density, stuffing risk %s\n",
		record.KeywordProfile.Primary.Keyword, record.KeywordProfile.Primary.Density,
		record.KeywordProfile.StuffingRisk)

	if !record.ScrubReport.Clean() {
		fmt.Fprintf(w, "Scrubbed: %d invisible char(s), %d format control(s), %d dash(es) rewritten\n",
			record.ScrubReport.UnicodeRemoved, record.ScrubReport.FormatControlRemoved,
			record.ScrubReport.DashesReplaced)
	}

	if len(record.CompositeResult.TopIssues) > 0 {
		fmt.Fprintln(w, "\n--- Top issues ---")
		for _, is := range record.CompositeResult.TopIssues {
			writeIssue(w, is)
		}
	}

	if record.Escalation != nil {
		fmt.Fprintln(w, "\n--- Escalation ---")
		fmt.Fprintf(w, "Score trajectory: %s\n", trajectory(record.History))
		fmt.Fprintf(w, "Needs human review: %d unresolved issue(s) after %d revision(s)\n",
			len(record.Escalation.TopIssues), record.Revisions)
	}
	fmt.Fprintln(w)
}

func writeIssue(w io.Writer, is models.Issue) {
	fmt.Fprintf(w, "[%-10s] %s: %s", is.Severity, is.Rule, is.Message)
	if is.Value != "" {
		fmt.Fprintf(w, " (%s)", is.Value)
	}
	fmt.Fprintln(w)
}

func trajectory(history []*models.CompositeResult) string {
	parts := make([]string, len(history))
	for i, attempt := range history {
		parts[i] = fmt.Sprintf("%d", attempt.WeightedTotal)
	}
	return strings.Join(parts, " -> ")
}
