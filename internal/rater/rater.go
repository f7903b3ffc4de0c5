// Package rater rates a document against SEO publication guidelines. Every
// check compares a measured value to a configured target range and, when out
// of range, records a classified issue with the points it cost.
package rater

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/textutil"
	"github.com/hyperjump/kousei/pkg/utils"
)

var linkRe = regexp.MustCompile(`\[[^\]]+\]\(([^)\s]+)[^)]*\)`)

// Rate scores doc against targets. The readability category is a
// feed-through of the analyzer's overall score. Inapplicable checks count as
// failed checks; weights never shift between categories.
func Rate(doc *models.Document, structure *models.Structure, bundle *models.MetricBundle, profile *models.KeywordProfile, targets Targets) *models.SEOResult {
	result := &models.SEOResult{
		CategoryScores: make(map[string]int, len(targets.Weights)),
	}

	categories := []struct {
		name  string
		check func() *tally
	}{
		{CategoryContent, func() *tally { return scoreContent(doc.Text, profile.WordCount, targets) }},
		{CategoryKeywords, func() *tally { return scoreKeywords(structure, profile, targets) }},
		{CategoryMeta, func() *tally { return scoreMeta(doc, targets) }},
		{CategoryStructure, func() *tally { return scoreStructure(structure, targets) }},
		{CategoryLinks, func() *tally { return scoreLinks(doc.Text, targets) }},
		{CategoryReadability, func() *tally { return scoreReadability(doc.Text, bundle, targets) }},
	}

	overall := 0.0
	for _, cat := range categories {
		t := cat.check()
		result.CategoryScores[cat.name] = t.score()
		result.Issues = append(result.Issues, t.issues...)
		overall += float64(t.score()) * targets.Weights[cat.name]
	}

	result.OverallScore = utils.Round1(overall)
	result.PublishReady = result.OverallScore >= targets.PublishThreshold && result.CriticalCount() == 0
	return result
}

// tally accumulates one category's deductions.
type tally struct {
	deducted float64
	issues   []models.Issue
}

func (t *tally) fail(rule string, sev models.Severity, penalty float64, msg, value string) {
	t.deducted += penalty
	t.issues = append(t.issues, models.Issue{
		Rule:     rule,
		Severity: sev,
		Message:  msg,
		Value:    value,
		Penalty:  penalty,
	})
}

func (t *tally) score() int {
	s := 100 - t.deducted
	if s < 0 {
		s = 0
	}
	return int(s)
}

func scoreContent(text string, wordCount int, targets Targets) *tally {
	t := &tally{}

	switch {
	case wordCount < targets.WordCount.Min:
		t.fail("content.word_count_min", models.SeverityCritical, 30,
			fmt.Sprintf("content is too short; minimum is %d words", targets.WordCount.Min),
			fmt.Sprintf("%d", wordCount))
	case wordCount < targets.OptimalWords:
		t.fail("content.word_count_optimal", models.SeverityWarning, 10,
			fmt.Sprintf("content could be longer; optimal is %d+ words", targets.OptimalWords),
			fmt.Sprintf("%d", wordCount))
	case wordCount > targets.WordCount.Max:
		t.fail("content.word_count_max", models.SeveritySuggestion, 5,
			fmt.Sprintf("content exceeds %d words; consider splitting", targets.WordCount.Max),
			fmt.Sprintf("%d", wordCount))
	}

	if avg := avgParagraphWords(text); avg > 150 {
		t.fail("content.paragraph_length", models.SeverityWarning, 10,
			"paragraphs are too long; aim for 2-4 sentences each",
			fmt.Sprintf("%.0f words avg", avg))
	} else if avg > 0 && avg < 30 {
		t.fail("content.paragraph_length", models.SeveritySuggestion, 5,
			"paragraphs are very short; add detail where appropriate",
			fmt.Sprintf("%.0f words avg", avg))
	}
	return t
}

// avgParagraphWords ignores heading-only paragraphs.
func avgParagraphWords(text string) float64 {
	total, n := 0, 0
	for _, p := range textutil.Paragraphs(text) {
		if strings.HasPrefix(strings.TrimSpace(p), "#") {
			continue
		}
		total += textutil.WordCount(p)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

func scoreKeywords(structure *models.Structure, profile *models.KeywordProfile, targets Targets) *tally {
	t := &tally{}
	kw := profile.Primary.Keyword
	p := profile.Primary.Placements

	if !p.Title {
		t.fail("keywords.h1", models.SeverityCritical, 20,
			fmt.Sprintf("primary keyword %q missing from the top-level heading", kw), "")
	}
	if !p.First100Words {
		t.fail("keywords.first_100_words", models.SeverityWarning, 15,
			fmt.Sprintf("primary keyword %q missing from first 100 words", kw),
			"critical_placements.first_100_words=false")
	}

	h2Total, h2WithKw := 0, 0
	for _, h := range structure.Headings {
		if h.Level != 2 {
			continue
		}
		h2Total++
		if textutil.ContainsPhrase(h.Text, kw) {
			h2WithKw++
		}
	}
	if h2Total == 0 {
		// No H2s to carry the keyword still counts against this category.
		t.fail("keywords.h2_ratio", models.SeverityWarning, 10,
			"no secondary headings carry the primary keyword", "0/0")
	} else if ratio := float64(h2WithKw) / float64(h2Total); ratio < targets.H2KeywordRatio {
		t.fail("keywords.h2_ratio", models.SeverityWarning, 10,
			fmt.Sprintf("keyword appears in too few secondary headings; target is at least %.0f%%",
				targets.H2KeywordRatio*100),
			fmt.Sprintf("%d/%d", h2WithKw, h2Total))
	}

	d := profile.Primary.Density
	switch {
	case d < targets.DensityMin:
		t.fail("keywords.density_low", models.SeverityWarning, 15,
			fmt.Sprintf("keyword density is too low; target is %.1f-%.1f%%", targets.DensityMin, targets.DensityMax),
			fmt.Sprintf("%.2f%%", d))
	case d > targets.DensityMax*1.5:
		t.fail("keywords.density_stuffing", models.SeverityCritical, 20,
			fmt.Sprintf("keyword density risks stuffing; target is %.1f-%.1f%%", targets.DensityMin, targets.DensityMax),
			fmt.Sprintf("%.2f%%", d))
	case d > targets.DensityMax:
		t.fail("keywords.density_high", models.SeverityWarning, 10,
			fmt.Sprintf("keyword density is slightly high; target is %.1f-%.1f%%", targets.DensityMin, targets.DensityMax),
			fmt.Sprintf("%.2f%%", d))
	}

	var missing []string
	for _, s := range profile.Secondary {
		if s.Occurrences == 0 {
			missing = append(missing, s.Keyword)
		}
	}
	if len(missing) > 0 {
		t.fail("keywords.secondary_missing", models.SeveritySuggestion, 5,
			"secondary keywords not found in the document",
			strings.Join(missing, ", "))
	}
	return t
}

func scoreMeta(doc *models.Document, targets Targets) *tally {
	t := &tally{}
	kw := doc.PrimaryKeyword

	if doc.MetaTitle == "" {
		t.fail("meta.title_missing", models.SeverityCritical, 40, "meta title is missing", "")
	} else {
		n := len([]rune(doc.MetaTitle))
		if n < targets.MetaTitleMin {
			t.fail("meta.title_length", models.SeverityWarning, 15,
				fmt.Sprintf("meta title too short; target is %d-%d chars", targets.MetaTitleMin, targets.MetaTitleMax),
				fmt.Sprintf("%d chars", n))
		} else if n > targets.MetaTitleMax+10 {
			t.fail("meta.title_length", models.SeverityWarning, 10,
				fmt.Sprintf("meta title too long; target is %d-%d chars", targets.MetaTitleMin, targets.MetaTitleMax),
				fmt.Sprintf("%d chars", n))
		}
		if kw != "" && !textutil.ContainsPhrase(doc.MetaTitle, kw) {
			t.fail("meta.title_keyword", models.SeverityWarning, 15,
				fmt.Sprintf("primary keyword %q not in meta title", kw), "")
		}
	}

	if doc.MetaDescription == "" {
		t.fail("meta.description_missing", models.SeverityCritical, 40, "meta description is missing", "")
	} else {
		n := len([]rune(doc.MetaDescription))
		if n < targets.MetaDescMin {
			t.fail("meta.description_length", models.SeverityWarning, 15,
				fmt.Sprintf("meta description too short; target is %d-%d chars", targets.MetaDescMin, targets.MetaDescMax),
				fmt.Sprintf("%d chars", n))
		} else if n > targets.MetaDescMax+10 {
			t.fail("meta.description_length", models.SeverityWarning, 10,
				fmt.Sprintf("meta description too long; target is %d-%d chars", targets.MetaDescMin, targets.MetaDescMax),
				fmt.Sprintf("%d chars", n))
		}
		if kw != "" && !textutil.ContainsPhrase(doc.MetaDescription, kw) {
			t.fail("meta.description_keyword", models.SeveritySuggestion, 10,
				fmt.Sprintf("primary keyword %q not in meta description", kw), "")
		}
	}
	return t
}

func scoreStructure(structure *models.Structure, targets Targets) *tally {
	t := &tally{}

	h1Count := structure.CountLevel(1)
	if h1Count == 0 {
		t.fail("structure.h1_missing", models.SeverityCritical, 30, "missing top-level heading", "")
	} else if h1Count > 1 {
		t.fail("structure.h1_multiple", models.SeverityCritical, 20,
			"multiple top-level headings; keep exactly one",
			fmt.Sprintf("%d", h1Count))
	}

	h2Count := structure.CountLevel(2)
	if h2Count < targets.MinH2 {
		t.fail("structure.h2_count", models.SeverityWarning, 15,
			fmt.Sprintf("too few secondary headings; add main sections (target %d)", targets.OptimalH2),
			fmt.Sprintf("%d", h2Count))
	} else if h2Count < targets.OptimalH2 {
		t.fail("structure.h2_count", models.SeveritySuggestion, 5,
			fmt.Sprintf("could use more secondary headings; optimal is %d", targets.OptimalH2),
			fmt.Sprintf("%d", h2Count))
	}
	return t
}

func scoreLinks(text string, targets Targets) *tally {
	t := &tally{}

	internal, external := 0, 0
	for _, m := range linkRe.FindAllStringSubmatch(text, -1) {
		if strings.HasPrefix(m[1], "http://") || strings.HasPrefix(m[1], "https://") {
			external++
		} else {
			internal++
		}
	}

	if internal < targets.MinInternalLinks {
		t.fail("links.internal_min", models.SeverityWarning, 20,
			fmt.Sprintf("too few internal links; target is %d", targets.OptimalInternalLinks),
			fmt.Sprintf("%d", internal))
	} else if internal < targets.OptimalInternalLinks {
		t.fail("links.internal_optimal", models.SeveritySuggestion, 5,
			fmt.Sprintf("could add more internal links; optimal is %d", targets.OptimalInternalLinks),
			fmt.Sprintf("%d", internal))
	}

	if external < targets.MinExternalLinks {
		t.fail("links.external_min", models.SeverityWarning, 15,
			fmt.Sprintf("too few external links; add authoritative sources (target %d)", targets.OptimalExternalLinks),
			fmt.Sprintf("%d", external))
	} else if external < targets.OptimalExternalLinks {
		t.fail("links.external_optimal", models.SeveritySuggestion, 5,
			fmt.Sprintf("could add more external links; optimal is %d", targets.OptimalExternalLinks),
			fmt.Sprintf("%d", external))
	}
	return t
}

// scoreReadability feeds the analyzer's overall score through as the
// category score. Its issues are informational and carry no extra penalty.
func scoreReadability(text string, bundle *models.MetricBundle, targets Targets) *tally {
	t := &tally{deducted: float64(100 - bundle.OverallScore)}

	if bundle.SentenceLengths.Mean > float64(targets.MaxSentenceWords) {
		t.issues = append(t.issues, models.Issue{
			Rule:     "readability.sentence_length",
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("average sentence length exceeds %d words", targets.MaxSentenceWords),
			Value:    fmt.Sprintf("%.1f words avg", bundle.SentenceLengths.Mean),
		})
	}

	hasList := false
	for _, line := range strings.Split(text, "\n") {
		if textutil.IsListLine(line) {
			hasList = true
			break
		}
	}
	if !hasList {
		t.issues = append(t.issues, models.Issue{
			Rule:     "readability.no_lists",
			Severity: models.SeveritySuggestion,
			Message:  "no lists found; bullets or numbered steps improve scannability",
		})
	}
	return t
}
