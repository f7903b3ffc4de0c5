// Package textutil provides the shared text segmentation primitives used by
// every analyzer. All analyzers must count words, sentences, and sections
// through this package so their figures agree.
package textutil

import (
	"strings"

	"github.com/blevesearch/segment"
)

// Words tokenizes text into lowercase word tokens using Unicode word
// segmentation. Only letter and number segments are kept; punctuation and
// whitespace are dropped. The segmentation is deterministic.
func Words(text string) []string {
	var words []string
	seg := segment.NewWordSegmenterDirect([]byte(text))
	for seg.Segment() {
		switch seg.Type() {
		case segment.Letter, segment.Number:
			words = append(words, strings.ToLower(seg.Text()))
		}
	}
	return words
}

// WordCount returns the number of word tokens in text.
func WordCount(text string) int {
	n := 0
	seg := segment.NewWordSegmenterDirect([]byte(text))
	for seg.Segment() {
		switch seg.Type() {
		case segment.Letter, segment.Number:
			n++
		}
	}
	return n
}

// Sentences splits text into sentences on terminal punctuation (. ! ?).
// Empty fragments are dropped. Abbreviation handling is intentionally not
// attempted: the rule set must stay reproducible, not clever.
func Sentences(text string) []string {
	var sentences []string
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		b.Reset()
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	prevTerminal := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			b.WriteRune(r)
			prevTerminal = true
		default:
			if prevTerminal {
				flush()
				prevTerminal = false
			}
			b.WriteRune(r)
		}
	}
	flush()
	return sentences
}

// Paragraphs splits text into paragraphs on blank lines.
func Paragraphs(text string) []string {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// FirstNWords returns the first n word tokens of text joined by single spaces.
func FirstNWords(text string, n int) string {
	words := Words(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// ContainsPhrase reports whether the word-token sequence of phrase occurs
// contiguously in the word-token sequence of text. Matching is
// case-insensitive because both sides go through Words.
func ContainsPhrase(text, phrase string) bool {
	return CountPhrase(Words(text), Words(phrase)) > 0
}

// CountPhrase counts contiguous occurrences of the phrase token sequence in
// tokens. An empty phrase matches nothing.
func CountPhrase(tokens, phrase []string) int {
	if len(phrase) == 0 || len(tokens) < len(phrase) {
		return 0
	}
	count := 0
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}
