package textutil

import (
	"regexp"
	"strings"

	"github.com/hyperjump/kousei/internal/models"
)

var headingLineRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// ExtractStructure parses markdown headings and splits the document into
// heading-delimited sections. Text before the first heading becomes a
// level-0 intro section with an empty heading. Fenced code blocks are
// excluded from heading detection.
func ExtractStructure(text string) *models.Structure {
	clean := StripCodeBlocks(text)

	st := &models.Structure{}
	current := models.Section{Index: 0, Level: 0, Heading: ""}
	var body strings.Builder

	flush := func() {
		current.Content = strings.TrimSpace(body.String())
		body.Reset()
		if current.Content != "" || current.Heading != "" {
			current.Index = len(st.Sections)
			st.Sections = append(st.Sections, current)
		}
	}

	for _, line := range strings.Split(clean, "\n") {
		m := headingLineRe.FindStringSubmatch(line)
		if m == nil {
			body.WriteString(line)
			body.WriteByte('\n')
			continue
		}
		flush()
		level := len(m[1])
		heading := strings.TrimSpace(m[2])
		st.Headings = append(st.Headings, models.Heading{Level: level, Text: heading})
		current = models.Section{Level: level, Heading: heading}
	}
	flush()

	return st
}
