// Package report renders pipeline run records into spreadsheet workbooks for
// editors who review escalated documents outside the terminal.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/kousei/internal/models"
)

// Sheet names of the exported workbook.
const (
	sheetSummary = "Summary"
	sheetIssues  = "Issues"
	sheetHeatmap = "Heatmap"
)

// WriteXLSX renders record as a three-sheet workbook: a run summary with the
// dimension and category scores, every issue of the final attempt, and the
// keyword distribution heatmap.
func WriteXLSX(w io.Writer, record *models.RunRecord) error {
	f, err := build(record)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to a file path.
func SaveXLSX(path string, record *models.RunRecord) error {
	f, err := build(record)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func build(record *models.RunRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := writeSummary(f, record); err != nil {
		return nil, err
	}
	if err := writeIssues(f, record); err != nil {
		return nil, err
	}
	if err := writeHeatmap(f, record); err != nil {
		return nil, err
	}
	// excelize starts with "Sheet1"; drop it once our sheets exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(sheetSummary); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeSummary(f *excelize.File, record *models.RunRecord) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create %s: %w", sheetSummary, err)
	}

	rows := [][]interface{}{
		{"Run ID", record.RunID},
		{"Gate state", string(record.GateState)},
		{"Attempts", record.Attempts},
		{"Revisions", record.Revisions},
		{"Weighted total", record.CompositeResult.WeightedTotal},
		{"Pass", record.CompositeResult.Pass},
		{"Publish ready", record.SEOResult.PublishReady},
		{"Word count", record.MetricBundle.WordCount},
		{"Reading ease", record.MetricBundle.ReadingEase},
		{"Grade level", record.MetricBundle.GradeLevel},
		{"Primary keyword density", record.KeywordProfile.Primary.Density},
		{"Stuffing risk", string(record.KeywordProfile.StuffingRisk)},
		{"Invisible characters removed", record.ScrubReport.UnicodeRemoved},
		{"Dashes rewritten", record.ScrubReport.DashesReplaced},
		{},
		{"Dimension", "Score"},
	}
	for _, dim := range []string{models.DimVoice, models.DimSpecificity, models.DimStructure, models.DimSEO, models.DimReadability} {
		rows = append(rows, []interface{}{dim, record.CompositeResult.DimensionScores[dim]})
	}

	rows = append(rows, []interface{}{}, []interface{}{"Category", "Score"})
	categories := make([]string, 0, len(record.SEOResult.CategoryScores))
	for c := range record.SEOResult.CategoryScores {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		rows = append(rows, []interface{}{c, record.SEOResult.CategoryScores[c]})
	}

	if record.Escalation != nil {
		rows = append(rows, []interface{}{}, []interface{}{"Score deltas", deltaString(record.Escalation.ScoreDeltas)})
	}

	return writeRows(f, sheetSummary, rows)
}

func writeIssues(f *excelize.File, record *models.RunRecord) error {
	if _, err := f.NewSheet(sheetIssues); err != nil {
		return fmt.Errorf("create %s: %w", sheetIssues, err)
	}

	rows := [][]interface{}{{"Rule", "Severity", "Penalty", "Message", "Value"}}
	for _, is := range record.SEOResult.Issues {
		rows = append(rows, issueRow(is))
	}
	// The seo dimension carries the category issues verbatim; they are
	// already listed above.
	for _, dim := range []string{models.DimVoice, models.DimSpecificity, models.DimStructure, models.DimReadability} {
		for _, is := range record.CompositeResult.IssuesByDimension[dim] {
			rows = append(rows, issueRow(is))
		}
	}
	return writeRows(f, sheetIssues, rows)
}

func issueRow(is models.Issue) []interface{} {
	return []interface{}{is.Rule, string(is.Severity), is.Penalty, is.Message, is.Value}
}

func writeHeatmap(f *excelize.File, record *models.RunRecord) error {
	if _, err := f.NewSheet(sheetHeatmap); err != nil {
		return fmt.Errorf("create %s: %w", sheetHeatmap, err)
	}

	rows := [][]interface{}{{"Section", "Occurrences", "Density %", "Heat (0-5)"}}
	for _, cell := range record.KeywordProfile.Heatmap {
		rows = append(rows, []interface{}{cell.Section, cell.Count, cell.Density, cell.Heat})
	}
	return writeRows(f, sheetHeatmap, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("set row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func deltaString(deltas []int) string {
	parts := make([]string, len(deltas))
	for i, d := range deltas {
		parts[i] = fmt.Sprintf("%+d", d)
	}
	return strings.Join(parts, ", ")
}
