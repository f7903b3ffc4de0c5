// Package scrub normalizes invisible marker characters and long-dash
// punctuation in raw text. Scrubbing never fails: already-clean text yields
// a zero report and an unchanged string, for any number of repeated passes.
package scrub

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hyperjump/kousei/internal/models"
)

// catalog maps each invisible or format-control code point we remove
// unconditionally to its report category.
var catalog = map[rune]string{
	'\u200B': "zero_width_space",
	'\u200C': "zero_width_non_joiner",
	'\uFEFF': "byte_order_mark",
	'\u2060': "word_joiner",
	'\u00AD': "soft_hyphen",
	'\u00A0': "no_break_space",
	'\u202F': "narrow_no_break_space",
	'\u2003': "em_space",
	'\u2004': "three_per_em_space",
	'\u2005': "four_per_em_space",
	'\u2009': "thin_space",
	'\u200A': "hair_space",
}

// spaceLike catalog entries are replaced with a regular space rather than
// removed outright, so words they separated do not fuse.
var spaceLike = map[rune]bool{
	'\u00A0': true,
	'\u202F': true,
	'\u2003': true,
	'\u2004': true,
	'\u2005': true,
	'\u2009': true,
	'\u200A': true,
}

// Dash variants normalized to the canonical em dash before replacement.
const canonicalDash = '—'

var dashVariants = map[rune]bool{
	'—': true, // em dash
	'⸺': true, // two-em dash
	'⸻': true, // three-em dash
}

const contextWindow = 50

// Replacement rule names used in ScrubReport.ReplacedByRule.
const (
	RuleComma     = "comma"
	RuleSemicolon = "semicolon"
	RulePeriod    = "period"
	RuleDropped   = "dropped"
)

// clauseBreakLen is the word count above which a verb-initial following
// clause gets a full sentence break instead of a semicolon.
const clauseBreakLen = 8

var (
	attributionRe = regexp.MustCompile(`(?i)\b(?:said|says|wrote|noted|according to|via)\s*$`)
	// properNameRe matches text that opens like an attributed name ("John Smith").
	properNameRe = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z]`)

	spaceBeforePunctRe = regexp.MustCompile(`[ \t]+([.,;:!?])`)
	missingSpaceRe     = regexp.MustCompile(`([.,;:!?])([A-Za-z])`)
	multiSpaceRe       = regexp.MustCompile(` {2,}`)
	multiNewlineRe     = regexp.MustCompile(`\n{3,}`)
)

var finiteVerbs = map[string]bool{
	"is": true, "are": true, "was": true, "were": true,
	"has": true, "have": true, "had": true,
	"do": true, "does": true, "did": true,
	"can": true, "could": true, "will": true, "would": true,
	"should": true, "may": true, "might": true,
}

var conjunctiveAdverbs = []string{
	"however", "therefore", "moreover", "furthermore",
	"nevertheless", "consequently", "thus", "hence",
}

// Scrub removes catalogued invisible characters, strips remaining Unicode
// format-control characters, rewrites long dashes with context-appropriate
// punctuation, and normalizes the whitespace those edits leave behind.
func Scrub(text string) (string, *models.ScrubReport) {
	report := &models.ScrubReport{
		RemovedByCategory: make(map[string]int),
		ReplacedByRule:    make(map[string]int),
	}

	text = removeMarkers(text, report)
	text = replaceDashes(text, report)
	if !report.Clean() {
		text = cleanWhitespace(text)
	}
	return text, report
}

// removeMarkers drops catalog characters and all other Cf-category runes in
// a single pass, normalizing dash variants to the canonical em dash as it goes.
func removeMarkers(text string, report *models.ScrubReport) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if category, ok := catalog[r]; ok {
			report.UnicodeRemoved++
			report.RemovedByCategory[category]++
			if spaceLike[r] {
				b.WriteByte(' ')
			}
			continue
		}
		if unicode.Is(unicode.Cf, r) {
			report.FormatControlRemoved++
			continue
		}
		if dashVariants[r] {
			b.WriteRune(canonicalDash)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// replaceDashes rewrites each canonical em dash by inspecting a fixed window
// of surrounding text. Decision table: attribution pattern -> comma;
// verb-initial following clause -> period (long clause) or semicolon;
// conjunctive-adverb opener -> semicolon; sentence-final dash -> dropped;
// no signal -> comma.
func replaceDashes(text string, report *models.ScrubReport) string {
	if !strings.ContainsRune(text, canonicalDash) {
		return text
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		if r != canonicalDash {
			b.WriteRune(r)
			continue
		}
		before := windowBefore(runes, i)
		after := windowAfter(runes, i)
		rule := classifyDash(before, after)
		report.DashesReplaced++
		report.ReplacedByRule[rule]++
		switch rule {
		case RuleDropped:
			// keep nothing; the following terminal punctuation stands
		case RulePeriod:
			b.WriteString(". ")
		case RuleSemicolon:
			b.WriteString("; ")
		default:
			b.WriteString(", ")
		}
	}
	return b.String()
}

func windowBefore(runes []rune, i int) string {
	start := i - contextWindow
	if start < 0 {
		start = 0
	}
	return strings.TrimSpace(string(runes[start:i]))
}

func windowAfter(runes []rune, i int) string {
	end := i + 1 + contextWindow
	if end > len(runes) {
		end = len(runes)
	}
	return strings.TrimSpace(string(runes[i+1 : end]))
}

func classifyDash(before, after string) string {
	// Dash directly before terminal punctuation carries no content.
	if after != "" {
		switch after[0] {
		case '.', '!', '?':
			return RuleDropped
		}
	}

	if attributionRe.MatchString(before) || properNameRe.MatchString(after) {
		return RuleComma
	}

	afterWords := strings.Fields(strings.ToLower(after))
	if len(afterWords) > 0 {
		first := strings.Trim(afterWords[0], ".,;:!?")
		for _, adv := range conjunctiveAdverbs {
			if first == adv {
				return RuleSemicolon
			}
		}
		if finiteVerbs[first] {
			if clauseLength(after) > clauseBreakLen {
				return RulePeriod
			}
			return RuleSemicolon
		}
	}

	return RuleComma
}

// clauseLength counts the words of the following clause up to its first
// terminal punctuation (or the end of the window).
func clauseLength(after string) int {
	end := strings.IndexAny(after, ".!?")
	if end >= 0 {
		after = after[:end]
	}
	return len(strings.Fields(after))
}

// cleanWhitespace collapses doubled spaces and blank-line runs introduced by
// removals and fixes spacing around the punctuation we inserted. Each rule is
// a fixed point, so the pass is idempotent.
func cleanWhitespace(text string) string {
	text = spaceBeforePunctRe.ReplaceAllString(text, "$1")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = missingSpaceRe.ReplaceAllString(text, "$1 $2")
	text = multiNewlineRe.ReplaceAllString(text, "\n\n")
	return text
}
