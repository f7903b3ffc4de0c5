package readability

import (
	"reflect"
	"strings"
	"testing"
)

func TestSyllables(t *testing.T) {
	tests := []struct {
		word     string
		expected int
	}{
		{"cat", 1},
		{"make", 1},
		{"apple", 2},
		{"banana", 3},
		{"readability", 5},
		{"the", 1},
		{"see", 1},
		{"rhythm", 1},
		{"", 0},
		{"123", 0},
		{"don't", 1},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Syllables(tt.word); got != tt.expected {
				t.Errorf("Syllables(%q) = %d, want %d", tt.word, got, tt.expected)
			}
		})
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\n  ", "```\ncode only\n```"} {
		bundle := Analyze(text)
		if bundle.WordCount != 0 || bundle.ReadingEase != 0 || bundle.OverallScore != 0 {
			t.Errorf("Analyze(%q) should be all zeros, got %+v", text, bundle)
		}
	}
}

func TestAnalyzeSimpleText(t *testing.T) {
	text := "The cat sat on the mat. The dog ran to the park. We like short words here."
	bundle := Analyze(text)

	if bundle.SentenceCount != 3 {
		t.Errorf("SentenceCount = %d, want 3", bundle.SentenceCount)
	}
	if bundle.WordCount != 17 {
		t.Errorf("WordCount = %d, want 17", bundle.WordCount)
	}
	// Short, monosyllabic prose must land on the easy side of the scale.
	if bundle.ReadingEase < 80 {
		t.Errorf("ReadingEase = %v, want >= 80 for trivial prose", bundle.ReadingEase)
	}
	if bundle.GradeLevel > 5 {
		t.Errorf("GradeLevel = %v, want low grade for trivial prose", bundle.GradeLevel)
	}
}

func TestAnalyzeComplexTextScoresHarder(t *testing.T) {
	simple := strings.Repeat("We keep each line short and plain. ", 20)
	complexText := strings.Repeat(
		"Organizational multidimensional considerations necessitate comprehensive interdepartmental prioritization of infrastructural modernization initiatives. ", 20)

	se := Analyze(simple).ReadingEase
	ce := Analyze(complexText).ReadingEase
	if ce >= se {
		t.Errorf("complex text ease (%v) should be below simple text ease (%v)", ce, se)
	}
	sg := Analyze(simple).GradeLevel
	cg := Analyze(complexText).GradeLevel
	if cg <= sg {
		t.Errorf("complex text grade (%v) should exceed simple text grade (%v)", cg, sg)
	}
}

func TestPassiveRatio(t *testing.T) {
	active := "The team shipped the feature. Everyone reviewed the change."
	passive := "The feature was shipped by the team. The change was reviewed by everyone."

	pa := Analyze(active).PassiveRatio
	pp := Analyze(passive).PassiveRatio
	if pa != 0 {
		t.Errorf("active text PassiveRatio = %v, want 0", pa)
	}
	if pp != 100 {
		t.Errorf("passive text PassiveRatio = %v, want 100", pp)
	}
}

func TestComplexWordRatio(t *testing.T) {
	bundle := Analyze("Understanding complicated terminology requires concentration.")
	if bundle.ComplexWordRatio == 0 {
		t.Error("ComplexWordRatio should be non-zero for polysyllabic text")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	text := "Determinism matters here. The same text must always produce the same bundle. We verify it twice."
	first := Analyze(text)
	second := Analyze(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestOverallScoreBands(t *testing.T) {
	// A bundle near both target bands loses little to band penalties.
	inBand := Analyze(strings.Repeat(
		"Writers who plan their work can finish strong drafts before the deadline arrives each week. ", 10))
	outBand := Analyze(strings.Repeat("Go now. Run fast. Stop it. Do more. Win big. ", 20))

	if inBand.OverallScore <= outBand.OverallScore {
		t.Errorf("in-band prose (%d) should outscore staccato prose (%d)",
			inBand.OverallScore, outBand.OverallScore)
	}
	for _, b := range []int{inBand.OverallScore, outBand.OverallScore} {
		if b < 0 || b > 100 {
			t.Errorf("OverallScore %d outside [0,100]", b)
		}
	}
}
