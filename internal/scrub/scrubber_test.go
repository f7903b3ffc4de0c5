package scrub

import (
	"strings"
	"testing"
)

func TestScrubCleanInput(t *testing.T) {
	text := "Plain prose with no markers. It has two sentences,  and even a double space stays put."
	cleaned, report := Scrub(text)
	if !report.Clean() {
		t.Errorf("clean input produced non-zero report: %+v", report)
	}
	if cleaned != text {
		t.Errorf("clean input was modified:\n got %q\nwant %q", cleaned, text)
	}
}

func TestScrubRemovesWatermarkCharacters(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		category string
	}{
		{"zero-width space", "he\u200Bllo", "hello", "zero_width_space"},
		{"byte order mark", "\uFEFFstart", "start", "byte_order_mark"},
		{"soft hyphen", "co\u00ADoperate", "cooperate", "soft_hyphen"},
		{"word joiner", "a\u2060b", "ab", "word_joiner"},
		{"non-breaking space", "one\u00A0two", "one two", "no_break_space"},
		{"thin space", "one\u2009two", "one two", "thin_space"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, report := Scrub(tt.text)
			if cleaned != tt.expected {
				t.Errorf("Scrub(%q) = %q, want %q", tt.text, cleaned, tt.expected)
			}
			if report.UnicodeRemoved != 1 {
				t.Errorf("UnicodeRemoved = %d, want 1", report.UnicodeRemoved)
			}
			if report.RemovedByCategory[tt.category] != 1 {
				t.Errorf("RemovedByCategory[%s] = %d, want 1", tt.category, report.RemovedByCategory[tt.category])
			}
		})
	}
}

func TestScrubRemovesFormatControl(t *testing.T) {
	// U+200E LEFT-TO-RIGHT MARK is Cf but not in the explicit catalog.
	cleaned, report := Scrub("ab\u200Ecd")
	if cleaned != "abcd" {
		t.Errorf("got %q, want %q", cleaned, "abcd")
	}
	if report.FormatControlRemoved != 1 {
		t.Errorf("FormatControlRemoved = %d, want 1", report.FormatControlRemoved)
	}
	if report.UnicodeRemoved != 0 {
		t.Errorf("UnicodeRemoved = %d, want 0", report.UnicodeRemoved)
	}
}

func TestScrubDashDecisionTable(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		rule     string
	}{
		{
			"attribution before dash",
			"The plan works, she said—Maria Lopez agreed.",
			"The plan works, she said, Maria Lopez agreed.",
			RuleComma,
		},
		{
			"short verb-initial clause",
			"The test suite—is green now.",
			"The test suite; is green now.",
			RuleSemicolon,
		},
		{
			"long verb-initial clause",
			"The budget—is going to be reviewed by the entire finance team next quarter before approval.",
			"The budget. is going to be reviewed by the entire finance team next quarter before approval.",
			RulePeriod,
		},
		{
			"conjunctive adverb opener",
			"We shipped late—however, the launch still landed well.",
			"We shipped late; however, the launch still landed well.",
			RuleSemicolon,
		},
		{
			"no signal defaults to comma",
			"A quiet launch—almost nobody noticed at first.",
			"A quiet launch, almost nobody noticed at first.",
			RuleComma,
		},
		{
			"sentence-final dash dropped",
			"It just works—.",
			"It just works.",
			RuleDropped,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, report := Scrub(tt.text)
			if cleaned != tt.expected {
				t.Errorf("Scrub(%q)\n got %q\nwant %q", tt.text, cleaned, tt.expected)
			}
			if report.DashesReplaced != 1 {
				t.Errorf("DashesReplaced = %d, want 1", report.DashesReplaced)
			}
			if report.ReplacedByRule[tt.rule] != 1 {
				t.Errorf("ReplacedByRule[%s] = %d, want 1 (got %+v)", tt.rule, report.ReplacedByRule[tt.rule], report.ReplacedByRule)
			}
		})
	}
}

func TestScrubNormalizesDashVariants(t *testing.T) {
	cleaned, report := Scrub("first⸺second and third⸻fourth")
	if strings.ContainsAny(cleaned, "—⸺⸻") {
		t.Errorf("dash variants survived: %q", cleaned)
	}
	if report.DashesReplaced != 2 {
		t.Errorf("DashesReplaced = %d, want 2", report.DashesReplaced)
	}
}

func TestScrubIdempotent(t *testing.T) {
	inputs := []string{
		"Mixed\u200B text—it has markers\u00A0and a dash—however, that is fine.",
		"Attribution said—Jane Doe.",
		"\uFEFF# Title—with everything\u2060 at once.\n\n\n\nBody  text.",
		"Already clean text stays clean.",
	}
	for _, input := range inputs {
		once, _ := Scrub(input)
		for i := 0; i < 5; i++ {
			again, report := Scrub(once)
			if !report.Clean() {
				t.Errorf("pass %d on %q produced non-zero report %+v", i+2, input, report)
			}
			if again != once {
				t.Errorf("pass %d changed output:\n got %q\nwant %q", i+2, again, once)
			}
			once = again
		}
	}
}

func TestScrubWhitespaceCleanup(t *testing.T) {
	// Removing a marker between spaces must not leave doubled spaces behind.
	cleaned, _ := Scrub("one \u200B two— three")
	if strings.Contains(cleaned, "  ") {
		t.Errorf("doubled space survived cleanup: %q", cleaned)
	}
}
