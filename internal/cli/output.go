// Package cli renders query results for the lexbusca command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hyperjump/lexbusca/internal/models"
	"github.com/hyperjump/lexbusca/internal/search"
	"github.com/hyperjump/lexbusca/pkg/utils"
)

// OutputFormat is the format for result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text or json", s)
}

const separator = "─────────────────────────────────────────────────────────"

var matchColor = color.New(color.FgYellow, color.Bold)

// Writer renders results to an io.Writer.
type Writer struct {
	out    io.Writer
	format OutputFormat

	// MaxChars truncates article text in text output; 0 prints it whole.
	MaxChars int
}

// NewWriter returns a Writer for out in the given format.
func NewWriter(out io.Writer, format OutputFormat) *Writer {
	return &Writer{out: out, format: format}
}

func (w *Writer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteLookup writes an article lookup result.
func (w *Writer) WriteLookup(res *models.LookupResult) error {
	if w.format == OutputJSON {
		return w.writeJSON(res)
	}
	fmt.Fprintf(w.out, "Art. %d\n\n", res.Article.Number)
	fmt.Fprintln(w.out, utils.Truncate(res.Article.Text, w.MaxChars))
	fmt.Fprintf(w.out, "\n%s\n", models.MsgTotalArticles(res.Total))
	return nil
}

// WriteSearch writes keyword search results, coloring matches in text output.
func (w *Writer) WriteSearch(res *models.SearchResult) error {
	if w.format == OutputJSON {
		return w.writeJSON(res)
	}
	if res.Total == 0 {
		// terminal output, the query is printed as typed
		fmt.Fprintln(w.out, models.MsgNoResults(res.Query))
		return nil
	}
	for _, hit := range res.Hits {
		fmt.Fprintln(w.out, separator)
		fmt.Fprintf(w.out, "Art. %d\n\n", hit.Article.Number)
		fmt.Fprintln(w.out, colorMatches(utils.Truncate(hit.Article.Text, w.MaxChars), res.Query))
		fmt.Fprintln(w.out)
	}
	if res.Truncated {
		fmt.Fprintln(w.out, separator)
		fmt.Fprintln(w.out, models.MsgTruncated(len(res.Hits), res.Total))
	}
	return nil
}

// WriteTOC writes the table of contents. An empty list prints the not-detected message.
func (w *Writer) WriteTOC(headings []string) error {
	if w.format == OutputJSON {
		if headings == nil {
			headings = []string{}
		}
		return w.writeJSON(models.TOCResult{Headings: headings})
	}
	if len(headings) == 0 {
		fmt.Fprintln(w.out, models.MsgNoTOC)
		return nil
	}
	fmt.Fprintln(w.out, models.MsgTOCTitle)
	fmt.Fprintln(w.out)
	for _, h := range headings {
		fmt.Fprintf(w.out, "  • %s\n", h)
	}
	return nil
}

// WriteStatus writes an index summary.
func (w *Writer) WriteStatus(st *models.Status) error {
	if w.format == OutputJSON {
		return w.writeJSON(st)
	}
	fmt.Fprintf(w.out, "index_id:     %s\n", st.IndexID)
	fmt.Fprintf(w.out, "source:       %s\n", st.Source)
	fmt.Fprintf(w.out, "articles:     %d   # articles detected\n", st.Articles)
	fmt.Fprintf(w.out, "headings:     %d   # table of contents entries\n", st.Headings)
	fmt.Fprintf(w.out, "text_length:  %d   # bytes after normalization\n", st.TextLength)
	fmt.Fprintf(w.out, "checksum:     %s\n", st.Checksum)
	fmt.Fprintf(w.out, "built_at:     %s\n", st.BuiltAt)
	fmt.Fprintf(w.out, "reloads:      %d\n", st.Reloads)
	return nil
}

// WriteMessage writes a plain user-facing message, or {"message": ...} in JSON.
func (w *Writer) WriteMessage(msg string) error {
	if w.format == OutputJSON {
		return w.writeJSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(w.out, msg)
	return err
}

// colorMatches wraps each literal, case-insensitive match of query in terminal color.
// Color is disabled automatically when the output is not a terminal.
func colorMatches(text, query string) string {
	re, err := search.LiteralPattern(query)
	if err != nil || query == "" {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return matchColor.Sprint(m)
	})
}
