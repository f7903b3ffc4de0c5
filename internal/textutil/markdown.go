package textutil

import (
	"regexp"
	"strings"
)

var (
	frontmatterRe = regexp.MustCompile(`(?s)\A---\s*\n.*?\n---\s*\n`)
	boldMetaRe    = regexp.MustCompile(`(?m)^\*\*[^*]+\*\*:\s*.+$`)
	hrRe          = regexp.MustCompile(`(?m)^---+\s*$`)
	fencedCodeRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`[^`]+`")
	tableRowRe    = regexp.MustCompile(`(?m)^\|.*\|$`)
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe      = regexp.MustCompile(`\*([^*]+)\*`)
	headingMarkRe = regexp.MustCompile(`(?m)^#+\s+`)
	blankRunsRe   = regexp.MustCompile(`\n\s*\n`)
)

// StripMarkdown removes markdown formatting, leaving plain prose for analysis.
// Removes: YAML frontmatter, bold-style metadata lines, horizontal rules,
// fenced and inline code, table rows, link syntax (text kept), emphasis
// markers, and heading markers.
func StripMarkdown(text string) string {
	text = frontmatterRe.ReplaceAllString(text, "")
	text = boldMetaRe.ReplaceAllString(text, "")
	text = hrRe.ReplaceAllString(text, "")
	text = fencedCodeRe.ReplaceAllString(text, "")
	text = inlineCodeRe.ReplaceAllString(text, "")
	text = tableRowRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = headingMarkRe.ReplaceAllString(text, "")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// StripCodeBlocks removes only fenced code blocks. Used before heading
// extraction so shell comments inside fences are not mistaken for headings.
func StripCodeBlocks(text string) string {
	return fencedCodeRe.ReplaceAllString(text, "")
}

// IsListLine reports whether a trimmed line is a bullet or numbered list item.
func IsListLine(line string) bool {
	return listItemRe.MatchString(line)
}

// IsTableLine reports whether a trimmed line is a markdown table row.
func IsTableLine(line string) bool {
	return strings.Contains(line, "|")
}

var listItemRe = regexp.MustCompile(`^(?:[-*+]|\d+\.)\s`)
