package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/kousei/internal/models"
)

func sampleRecord() *models.RunRecord {
	return &models.RunRecord{
		RunID:     "run-123",
		GateState: models.GateEscalated,
		Attempts:  3,
		Revisions: 2,
		ScrubReport: &models.ScrubReport{
			UnicodeRemoved: 2,
			DashesReplaced: 1,
		},
		MetricBundle: &models.MetricBundle{
			WordCount:   1200,
			ReadingEase: 64.2,
			GradeLevel:  9.1,
		},
		KeywordProfile: &models.KeywordProfile{
			Primary:      models.TermStats{Keyword: "gopher", Density: 1.4},
			StuffingRisk: models.StuffingOptimal,
			Heatmap: []models.HeatmapCell{
				{Section: "Intro", Index: 0, Count: 2, Density: 1.8, Heat: 3},
				{Section: "Closing", Index: 1, Count: 0, Density: 0, Heat: 0},
			},
		},
		SEOResult: &models.SEOResult{
			CategoryScores: map[string]int{"content": 90, "meta": 60},
			Issues: []models.Issue{
				{Rule: "meta.title_missing", Severity: models.SeverityCritical, Message: "meta title is empty", Penalty: 40},
			},
			OverallScore: 85.5,
		},
		CompositeResult: &models.CompositeResult{
			DimensionScores: map[string]int{
				models.DimVoice:       80,
				models.DimSpecificity: 70,
				models.DimStructure:   90,
				models.DimSEO:         86,
				models.DimReadability: 95,
			},
			IssuesByDimension: map[string][]models.Issue{
				models.DimVoice: {
					{Rule: "voice.filler_phrases", Severity: models.SeverityWarning, Message: "filler density is high", Penalty: 12},
				},
			},
			WeightedTotal: 81,
			Pass:          true,
		},
		Escalation: &models.EscalationNotes{ScoreDeltas: []int{3, -1}},
	}
}

func TestWriteXLSXSheets(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRecord()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open written workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := map[string]bool{"Summary": true, "Issues": true, "Heatmap": true}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want exactly Summary, Issues, Heatmap", sheets)
	}
	for _, s := range sheets {
		if !want[s] {
			t.Errorf("unexpected sheet %q", s)
		}
	}

	if got, _ := f.GetCellValue("Summary", "B1"); got != "run-123" {
		t.Errorf("Summary!B1 = %q, want run id", got)
	}
	if got, _ := f.GetCellValue("Summary", "B2"); got != "Escalated" {
		t.Errorf("Summary!B2 = %q, want Escalated", got)
	}

	if got, _ := f.GetCellValue("Issues", "A2"); got != "meta.title_missing" {
		t.Errorf("Issues!A2 = %q, want the category issue first", got)
	}
	if got, _ := f.GetCellValue("Issues", "A3"); got != "voice.filler_phrases" {
		t.Errorf("Issues!A3 = %q, want the dimension issue next", got)
	}

	if got, _ := f.GetCellValue("Heatmap", "A2"); got != "Intro" {
		t.Errorf("Heatmap!A2 = %q", got)
	}
	if got, _ := f.GetCellValue("Heatmap", "B2"); got != "2" {
		t.Errorf("Heatmap!B2 = %q, want occurrence count", got)
	}
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := SaveXLSX(path, sampleRecord()); err != nil {
		t.Fatalf("SaveXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open saved workbook: %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue("Summary", "A1"); got != "Run ID" {
		t.Errorf("Summary!A1 = %q", got)
	}
}
