package e2e

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/fumiama/go-docx"
)

// SupportedFileExtensions is the list of file extensions used in E2E file-based tests.
// PDF is not generated here (no writer for PDFs with extractable text in the dependency set).
var SupportedFileExtensions = []string{".txt", ".md", ".html", ".docx"}

// RenderStatute renders the statute's lines as a file of the given extension.
// Heading lines become markdown/HTML headings; every other line is its own paragraph.
func RenderStatute(ext string, s *Statute) ([]byte, error) {
	isHeading := make(map[string]bool, len(s.Headings))
	for _, h := range s.Headings {
		isHeading[h] = true
	}
	switch ext {
	case ".txt":
		return []byte(s.Text), nil
	case ".md":
		var b strings.Builder
		for _, line := range s.Lines {
			if isHeading[line] {
				b.WriteString("## ")
			}
			b.WriteString(line)
			b.WriteString("\n\n")
		}
		return []byte(b.String()), nil
	case ".html":
		var b strings.Builder
		b.WriteString("<html><head><title>Lei</title><style>p{margin:0}</style></head><body>\n")
		for _, line := range s.Lines {
			tag := "p"
			if isHeading[line] {
				tag = "h2"
			}
			fmt.Fprintf(&b, "<%s>%s</%s>\n", tag, html.EscapeString(line), tag)
		}
		b.WriteString("</body></html>\n")
		return []byte(b.String()), nil
	case ".docx":
		doc := docx.New().WithDefaultTheme()
		for _, line := range s.Lines {
			doc.AddParagraph().AddText(line)
		}
		var buf bytes.Buffer
		if _, err := doc.WriteTo(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported extension %q", ext)
}
