package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/kousei/internal/models"
)

func sampleRecord() *models.RunRecord {
	return &models.RunRecord{
		RunID:       "run-42",
		GateState:   models.GateEscalated,
		Attempts:    3,
		Revisions:   2,
		ScrubReport: &models.ScrubReport{UnicodeRemoved: 1},
		MetricBundle: &models.MetricBundle{
			ReadingEase:  63.5,
			GradeLevel:   9.2,
			OverallScore: 88,
		},
		KeywordProfile: &models.KeywordProfile{
			Primary:      models.TermStats{Keyword: "gopher", Density: 1.42},
			StuffingRisk: models.StuffingOptimal,
		},
		SEOResult: &models.SEOResult{OverallScore: 72.5},
		CompositeResult: &models.CompositeResult{
			DimensionScores: map[string]int{
				models.DimVoice:       60,
				models.DimSpecificity: 65,
				models.DimStructure:   80,
				models.DimSEO:         73,
				models.DimReadability: 88,
			},
			TopIssues: []models.Issue{
				{Rule: "voice.filler_phrases", Severity: models.SeverityWarning, Message: "too many filler phrases", Value: "density=7.1"},
			},
			WeightedTotal: 67,
		},
		History: []*models.CompositeResult{
			{WeightedTotal: 64}, {WeightedTotal: 66}, {WeightedTotal: 67},
		},
		Escalation: &models.EscalationNotes{
			ScoreDeltas: []int{2, 1},
			TopIssues:   []models.Issue{{Rule: "voice.filler_phrases"}},
		},
	}
}

func TestWriteRunRecordJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRunRecord(&buf, sampleRecord(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.RunRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.RunID != "run-42" || decoded.GateState != models.GateEscalated {
		t.Errorf("decoded record = %+v", decoded)
	}
	if decoded.CompositeResult.WeightedTotal != 67 {
		t.Errorf("weighted total = %d", decoded.CompositeResult.WeightedTotal)
	}
}

func TestWriteRunRecordText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRunRecord(&buf, sampleRecord(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"run-42",
		"Escalated",
		"Weighted total: 67",
		"voice.filler_phrases",
		"density=7.1",
		"64 -> 66 -> 67",
		"stuffing risk optimal",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRunRecordTextAcceptedHasNoEscalation(t *testing.T) {
	record := sampleRecord()
	record.GateState = models.GateAccepted
	record.Escalation = nil
	record.ScrubReport = &models.ScrubReport{}

	var buf bytes.Buffer
	if err := WriteRunRecord(&buf, record, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "Escalation") {
		t.Error("accepted record should not print an escalation block")
	}
	if strings.Contains(out, "Scrubbed:") {
		t.Error("clean scrub report should not be printed")
	}
}
