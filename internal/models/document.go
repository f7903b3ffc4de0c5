// Package models defines the core data structures for documents, analysis
// results, and quality-gate runs.
package models

// PageType identifies the kind of page a document is destined for.
// Word-count targets differ between the two.
type PageType string

const (
	// PageArticle is long-form editorial content.
	PageArticle PageType = "article"
	// PageLanding is a conversion-focused landing page.
	PageLanding PageType = "landing"
)

// WordCountBand is an inclusive [Min, Max] target range for document length.
type WordCountBand struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Valid reports whether the band is usable (non-negative, Min <= Max).
// A zero band means "use the configured default for the page type".
func (b WordCountBand) Valid() bool {
	if b.Min == 0 && b.Max == 0 {
		return true
	}
	return b.Min >= 0 && b.Min <= b.Max
}

// IsZero reports whether no band was supplied.
func (b WordCountBand) IsZero() bool { return b.Min == 0 && b.Max == 0 }

// DocumentInput is the configuration record accepted for one pipeline run.
type DocumentInput struct {
	// Text is the raw document body. When empty and Path is set, the body is
	// read from the file at Path.
	Text string `json:"text,omitempty"`
	Path string `json:"path,omitempty"`

	PrimaryKeyword    string   `json:"primary_keyword"`
	SecondaryKeywords []string `json:"secondary_keywords,omitempty"`
	MetaTitle         string   `json:"meta_title,omitempty"`
	MetaDescription   string   `json:"meta_description,omitempty"`

	TargetWordCount WordCountBand `json:"target_word_count_band,omitempty"`
	PageType        PageType      `json:"page_type,omitempty"`
}

// Document is the unit of prose owned by a single pipeline run. It is mutated
// only by the scrubber (text, in place) and by the revision step (text
// replacement between iterations).
type Document struct {
	Text              string
	PrimaryKeyword    string
	SecondaryKeywords []string
	MetaTitle         string
	MetaDescription   string
}

// Heading is one markdown heading with its level (1 = H1).
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Section is a heading-delimited slice of the document. The text before the
// first heading forms an implicit level-0 intro section.
type Section struct {
	Index   int    `json:"index"`
	Level   int    `json:"level"`
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// Structure is the structural markup extracted from a document.
type Structure struct {
	Headings []Heading `json:"headings"`
	Sections []Section `json:"sections"`
}

// H1 returns the first top-level heading text, or "" when there is none.
func (s *Structure) H1() string {
	for _, h := range s.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// CountLevel returns the number of headings at the given level.
func (s *Structure) CountLevel(level int) int {
	n := 0
	for _, h := range s.Headings {
		if h.Level == level {
			n++
		}
	}
	return n
}
