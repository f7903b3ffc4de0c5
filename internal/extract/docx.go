package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// docxDocumentXMLPath is the default path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// contentTypesPath is the path to [Content_Types].xml in OOXML packages.
const contentTypesPath = "[Content_Types].xml"

// docxMainContentType is the content type for the main document in DOCX files.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

var (
	// wpTag captures one paragraph element with its attributes intact, so
	// real-world documents (e.g. <w:p w:rsidR="...">) still match.
	wpTag = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>`)
	// wtTag matches text runs regardless of run attributes.
	wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	// pStyleTag captures the paragraph style name (Heading1, Heading2, ...).
	pStyleTag = regexp.MustCompile(`<w:pStyle[^>]+w:val="([^"]+)"`)

	partNameRe  = regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"`)
	partNameRe2 = regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxMainContentType) + `"[^>]+PartName="([^"]+)"`)
)

// headingPrefixes maps OOXML heading styles to markdown heading markers, so
// the structure of a Word draft survives into the scored text.
var headingPrefixes = map[string]string{
	"Heading1": "# ",
	"Heading2": "## ",
	"Heading3": "### ",
	"Title":    "# ",
}

// extractDOCX extracts paragraph-separated text from .docx bytes. DOCX is a
// ZIP containing word/document.xml (OOXML); each <w:p> becomes one output
// paragraph and styled headings become markdown headings.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}

	docPath := findDocxMainDocumentPath(zr)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}

	docXML, err := readZipFile(zr, docPath)
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}
	if docXML == nil {
		return "", fmt.Errorf("extract DOCX: %s not found", docPath)
	}

	var paragraphs []string
	for _, para := range wpTag.FindAllString(string(docXML), -1) {
		runs := wtTag.FindAllStringSubmatch(para, -1)
		if len(runs) == 0 {
			continue
		}
		var b strings.Builder
		for _, r := range runs {
			b.WriteString(r[1])
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		if m := pStyleTag.FindStringSubmatch(para); m != nil {
			text = headingPrefixes[m[1]] + text
		}
		paragraphs = append(paragraphs, text)
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// findDocxMainDocumentPath reads the main document path from
// [Content_Types].xml, or "" when it cannot be determined.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	content, err := readZipFile(zr, contentTypesPath)
	if err != nil || content == nil {
		return ""
	}
	if m := partNameRe.FindSubmatch(content); len(m) > 1 {
		return strings.TrimPrefix(string(m[1]), "/")
	}
	if m := partNameRe2.FindSubmatch(content); len(m) > 1 {
		return strings.TrimPrefix(string(m[1]), "/")
	}
	return ""
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, nil
}
