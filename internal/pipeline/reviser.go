package pipeline

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/hyperjump/kousei/internal/models"
)

// Reviser turns a failing scoring attempt into a revised document. The
// pipeline treats it as a pluggable collaborator; implementations must be
// deterministic for a fixed document and result.
type Reviser interface {
	Revise(doc *models.Document, result *models.CompositeResult) (*models.Document, error)
}

// fillerReplacements maps catalogued filler phrases to plain alternatives.
// Keys are matched case-insensitively on word boundaries.
var fillerReplacements = map[string]string{
	"utilize":              "use",
	"leverage":             "use",
	"in order to":          "to",
	"furthermore":          "also",
	"moreover":             "also",
	"additionally":         "also",
	"robust":               "solid",
	"optimal":              "best",
	"seamless":             "smooth",
	"facilitate":           "help",
	"due to the fact that": "because",
	"when it comes to":     "for",
}

var intensifierRe = regexp.MustCompile(`(?i)\b(?:very|really|quite) `)

// AutoReviser is the built-in fixer. It applies at most MaxFixes targeted
// edits per revision, walking the attempt's top issues in order, so a fixed
// input always yields the same revision.
type AutoReviser struct {
	// MaxFixes bounds the edits applied in one Revise call.
	MaxFixes int

	fillerRes []fillerFix
}

type fillerFix struct {
	re          *regexp.Regexp
	replacement string
}

// NewAutoReviser compiles the replacement table. maxFixes values below one
// fall back to one.
func NewAutoReviser(maxFixes int) *AutoReviser {
	if maxFixes < 1 {
		maxFixes = 1
	}
	phrases := make([]string, 0, len(fillerReplacements))
	for p := range fillerReplacements {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)

	r := &AutoReviser{MaxFixes: maxFixes}
	for _, p := range phrases {
		r.fillerRes = append(r.fillerRes, fillerFix{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`),
			replacement: fillerReplacements[p],
		})
	}
	return r
}

// Revise applies bounded fixes keyed on the top issues' rules. Unknown rules
// are skipped. The input document is never mutated.
func (r *AutoReviser) Revise(doc *models.Document, result *models.CompositeResult) (*models.Document, error) {
	revised := *doc
	fixes := 0

	for _, issue := range result.TopIssues {
		if fixes >= r.MaxFixes {
			break
		}
		var changed bool
		switch issue.Rule {
		case "voice.filler_phrases":
			revised.Text, changed = r.replaceFiller(revised.Text)
		case "specificity.vague_words":
			revised.Text, changed = stripIntensifiers(revised.Text)
		case "keywords.first_100_words":
			revised.Text, changed = insertKeywordIntro(revised.Text, doc.PrimaryKeyword)
		case "keywords.h1", "structure.h1_missing":
			revised.Text, changed = ensureKeywordHeading(revised.Text, doc.PrimaryKeyword)
		}
		if changed {
			fixes++
		}
	}
	return &revised, nil
}

func (r *AutoReviser) replaceFiller(text string) (string, bool) {
	changed := false
	for _, f := range r.fillerRes {
		if f.re.MatchString(text) {
			text = f.re.ReplaceAllString(text, f.replacement)
			changed = true
		}
	}
	return text, changed
}

func stripIntensifiers(text string) (string, bool) {
	out := intensifierRe.ReplaceAllString(text, "")
	return out, out != text
}

// insertKeywordIntro adds a keyword-bearing sentence at the start of the
// first prose paragraph so the first-100-words placement holds.
func insertKeywordIntro(text, keyword string) (string, bool) {
	if keyword == "" {
		return text, false
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		lines[i] = "This piece is about " + keyword + ". " + line
		return strings.Join(lines, "\n"), true
	}
	return "This piece is about " + keyword + ".\n" + text, true
}

// ensureKeywordHeading appends the keyword to the first top-level heading,
// or creates one when the document has none.
func ensureKeywordHeading(text, keyword string) (string, bool) {
	if keyword == "" {
		return text, false
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "# ") {
			if strings.Contains(strings.ToLower(t), strings.ToLower(keyword)) {
				return text, false
			}
			lines[i] = line + ": " + keyword
			return strings.Join(lines, "\n"), true
		}
	}
	title := []rune(keyword)
	title[0] = unicode.ToUpper(title[0])
	return "# " + string(title) + "\n\n" + text, true
}
