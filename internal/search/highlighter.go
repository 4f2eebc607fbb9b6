package search

import (
	"regexp"
	"strings"
)

// DefaultHighlightTag is the element wrapped around keyword matches.
const DefaultHighlightTag = "mark"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML replaces &, <, >, " and ' with their entity forms.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// LiteralPattern compiles a case-insensitive matcher that matches query literally.
func LiteralPattern(query string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + regexp.QuoteMeta(query))
}

// Highlighter renders article text as escaped HTML with keyword matches wrapped in a tag.
type Highlighter struct {
	open  string
	close string
}

// NewHighlighter returns a Highlighter using tag (e.g. "mark" or `span class="hit"`).
// Attributes go on the opening marker only. Empty tag uses DefaultHighlightTag.
func NewHighlighter(tag string) *Highlighter {
	tag = strings.Trim(strings.TrimSpace(tag), "<>/")
	fields := strings.Fields(tag)
	if len(fields) == 0 {
		tag, fields = DefaultHighlightTag, []string{DefaultHighlightTag}
	}
	return &Highlighter{open: "<" + tag + ">", close: "</" + fields[0] + ">"}
}

// Highlight escapes text and wraps every case-insensitive occurrence of query.
// Matching runs on the raw text and escaping is applied per segment, so markers are never
// escaped, entities are never split, and removing the markers yields EscapeHTML(text).
// ok is false when query could not be compiled; the result is then escaped text only.
func (h *Highlighter) Highlight(text, query string) (out string, ok bool) {
	if query == "" {
		return EscapeHTML(text), true
	}
	re, err := LiteralPattern(query)
	if err != nil {
		return EscapeHTML(text), false
	}
	return h.highlightWith(text, re), true
}

func (h *Highlighter) highlightWith(text string, re *regexp.Regexp) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return EscapeHTML(text)
	}
	var b strings.Builder
	b.Grow(len(text) + len(locs)*(len(h.open)+len(h.close)))
	last := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		b.WriteString(EscapeHTML(text[last:loc[0]]))
		b.WriteString(h.open)
		b.WriteString(EscapeHTML(text[loc[0]:loc[1]]))
		b.WriteString(h.close)
		last = loc[1]
	}
	b.WriteString(EscapeHTML(text[last:]))
	return b.String()
}

// StripMarkers removes the highlighter's tags from s.
func (h *Highlighter) StripMarkers(s string) string {
	return strings.NewReplacer(h.open, "", h.close, "").Replace(s)
}
