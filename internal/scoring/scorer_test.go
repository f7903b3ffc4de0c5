package scoring

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperjump/kousei/internal/models"
)

// boundaryDoc yields voice 90 (clean prose, no contractions), specificity 55
// (no vague words, no figures), and structure 100 (prose share in band).
// The seo and readability dimensions are pass-throughs, so the weighted
// total can be pinned exactly from the fixture arguments.
func boundaryDoc() *models.Document {
	return &models.Document{
		Text: "The team ships the release train on the same cadence as before without drama.\n\n" +
			"- cadence items keep the structured share balanced\n",
	}
}

func TestScoreThresholdBoundary(t *testing.T) {
	s := DefaultScorer()
	doc := boundaryDoc()
	profile := &models.KeywordProfile{}
	seo := &models.SEOResult{OverallScore: 55}

	// 0.30*90 + 0.25*55 + 0.20*100 + 0.15*55 + 0.10*10 = 70.
	pass := s.Score(doc, &models.MetricBundle{OverallScore: 10}, profile, seo)
	if pass.DimensionScores[models.DimVoice] != 90 {
		t.Fatalf("voice = %d, want 90", pass.DimensionScores[models.DimVoice])
	}
	if pass.DimensionScores[models.DimSpecificity] != 55 {
		t.Fatalf("specificity = %d, want 55", pass.DimensionScores[models.DimSpecificity])
	}
	if pass.DimensionScores[models.DimStructure] != 100 {
		t.Fatalf("structure = %d, want 100", pass.DimensionScores[models.DimStructure])
	}
	if pass.WeightedTotal != 70 {
		t.Fatalf("WeightedTotal = %d, want 70", pass.WeightedTotal)
	}
	if !pass.Pass {
		t.Error("Pass = false, want true at exactly the threshold")
	}

	// Same document with readability 0: total drops to 69 and fails.
	fail := s.Score(doc, &models.MetricBundle{OverallScore: 0}, profile, seo)
	if fail.WeightedTotal != 69 {
		t.Fatalf("WeightedTotal = %d, want 69", fail.WeightedTotal)
	}
	if fail.Pass {
		t.Error("Pass = true, want false one point under the threshold")
	}
}

func TestScorePure(t *testing.T) {
	s := DefaultScorer()
	doc := &models.Document{Text: "Don't ship on Fridays. We've learned that in 2019, twice.\n\n- a list item\n"}
	bundle := &models.MetricBundle{OverallScore: 80, PassiveRatio: 10}
	profile := &models.KeywordProfile{}
	seo := &models.SEOResult{OverallScore: 75.5}

	first := s.Score(doc, bundle, profile, seo)
	for i := 0; i < 5; i++ {
		if got := s.Score(doc, bundle, profile, seo); !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d differs from first run", i+2)
		}
	}
}

func TestScoreVoice(t *testing.T) {
	s := DefaultScorer()

	low, issues := s.scoreVoice("We leverage robust synergy to utilize the optimal paradigm landscape.", 10, 0)
	if low != 60 {
		t.Errorf("filler-laden voice = %d, want 60", low)
	}
	rules := map[string]bool{}
	for _, is := range issues {
		rules[is.Rule] = true
	}
	if !rules["voice.filler_phrases"] || !rules["voice.no_contractions"] {
		t.Errorf("issues = %+v, want filler and contraction findings", issues)
	}

	high, issues := s.scoreVoice(
		"Don't you think it's better? Here's the thing (a quick aside) that we've tested.", 15, 0)
	if high != 100 {
		t.Errorf("conversational voice = %d, want 100", high)
	}
	if len(issues) != 0 {
		t.Errorf("conversational voice issues = %+v, want none", issues)
	}

	passive, _ := s.scoreVoice("The release was shipped and the branch was merged late.", 10, 40)
	if passive >= high {
		t.Errorf("passive-heavy voice = %d, want below %d", passive, high)
	}
}

func TestScoreSpecificity(t *testing.T) {
	s := DefaultScorer()

	concrete, issues := s.scoreSpecificity(
		"In 2024, revenue grew 23% to $1,200,000 across 50,000 users by March 12.", 15)
	if concrete != 100 {
		t.Errorf("concrete specificity = %d, want 100", concrete)
	}
	if len(issues) != 0 {
		t.Errorf("concrete specificity issues = %+v, want none", issues)
	}

	vague, issues := s.scoreSpecificity(
		"Many various things are quite very really important and key overall today.", 12)
	if vague != 30 {
		t.Errorf("vague specificity = %d, want 30", vague)
	}
	if len(issues) != 2 {
		t.Errorf("vague specificity issues = %+v, want vague-words and no-figures", issues)
	}
}

func TestScoreStructureBalance(t *testing.T) {
	tests := []struct {
		name  string
		prose int // plain characters on the prose line
		list  int // characters after the "- " marker
		want  int
	}{
		{"in band 60%", 60, 38, 100},
		{"graded low 44%", 44, 54, 91},
		{"graded high 68%", 68, 30, 96},
		{"steep low 30%", 30, 68, 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("p", tt.prose) + "\n- " + strings.Repeat("l", tt.list) + "\n"
			got, _ := scoreStructureBalance(text)
			if got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}

	allProse, issues := scoreStructureBalance("Nothing here but a single long prose line without any structure at all.")
	if allProse > 5 {
		t.Errorf("all-prose score = %d, want near zero", allProse)
	}
	if len(issues) != 1 || issues[0].Rule != "structure.too_prose_heavy" {
		t.Errorf("all-prose issues = %+v, want too_prose_heavy", issues)
	}

	allList, issues := scoreStructureBalance("- one\n- two\n- three\n")
	if allList != 0 {
		t.Errorf("all-list score = %d, want 0", allList)
	}
	if len(issues) != 1 || issues[0].Rule != "structure.too_structured" {
		t.Errorf("all-list issues = %+v, want too_structured", issues)
	}
}

func TestTopIssuesOrderedByImpact(t *testing.T) {
	s := DefaultScorer()
	// All-list document: the structure dimension loses the most weighted
	// points, so its issue must rank first.
	doc := &models.Document{Text: "- item one here\n- item two here\n- item three here\n"}
	result := s.Score(doc, &models.MetricBundle{OverallScore: 90}, &models.KeywordProfile{}, &models.SEOResult{OverallScore: 90})

	if len(result.TopIssues) == 0 {
		t.Fatal("no top issues on a failing dimension")
	}
	if result.TopIssues[0].Rule != "structure.too_structured" {
		t.Errorf("top issue = %q, want structure.too_structured", result.TopIssues[0].Rule)
	}
	if len(result.TopIssues) > 5 {
		t.Errorf("top issues = %d, want at most 5", len(result.TopIssues))
	}
}

func TestMonotonousRhythmFlagged(t *testing.T) {
	s := DefaultScorer()
	doc := &models.Document{Text: strings.Repeat("The cat sat on the mat today again. ", 12)}
	result := s.Score(doc, &models.MetricBundle{OverallScore: 90}, &models.KeywordProfile{}, &models.SEOResult{OverallScore: 90})

	found := false
	for _, is := range result.IssuesByDimension[models.DimReadability] {
		if is.Rule == "readability.monotonous_rhythm" {
			found = true
		}
	}
	if !found {
		t.Errorf("readability issues = %+v, want monotonous rhythm finding",
			result.IssuesByDimension[models.DimReadability])
	}
	if result.DimensionScores[models.DimReadability] != 90 {
		t.Errorf("readability = %d, want 90: informational issues must not change the pass-through",
			result.DimensionScores[models.DimReadability])
	}
}

func TestLoadCatalogFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	custom := `filler_phrases:
  - id: filler.custom
    pattern: (?i)\bblah\b
`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.FillerPhrases) != 1 || cat.FillerPhrases[0].ID != "filler.custom" {
		t.Errorf("filler rules = %+v, want only the custom rule", cat.FillerPhrases)
	}
	if len(cat.VagueWords) == 0 || len(cat.Specificity) == 0 || len(cat.Conversational) == 0 {
		t.Error("absent tables must fall back to defaults")
	}
	if _, err := cat.Compile(); err != nil {
		t.Errorf("compile: %v", err)
	}
}

func TestDefaultCatalogCompiles(t *testing.T) {
	if _, err := DefaultCatalog().Compile(); err != nil {
		t.Fatalf("default catalog must compile: %v", err)
	}
}
