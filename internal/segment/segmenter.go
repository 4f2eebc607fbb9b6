// Package segment splits a normalized statutory text into articles and a flat table of contents.
package segment

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/lexbusca/internal/models"
	"go.uber.org/zap"
)

// articleMarker matches "Art. 12", "Art.5º", "Art. 3o –" at start of text or right after a line break.
// The trailing separator never consumes the following line break, so back-to-back markers are all found.
var articleMarker = regexp.MustCompile(`(^|\n)(Art\.\s*\d+[ºo°]?)(?:[ \t]*[-–—])?`)

// articleNumber extracts the leading integer of an article span.
var articleNumber = regexp.MustCompile(`^Art\.\s*(\d+)`)

// headingLine matches one structural heading per line: TÍTULO, CAPÍTULO or Seção
// followed by a Roman numeral and the remainder of the line.
var headingLine = regexp.MustCompile(`(?m)^[ \t]*((?:T[ÍI]TULO|CAP[ÍI]TULO|Se[cç][aã]o|SE[CÇ][AÃ]O)[ \t]+[IVXLCDM]+\b.*)`)

// Segmenter builds an Index from normalized text.
type Segmenter struct {
	logger *zap.Logger
}

// New returns a Segmenter. A nil logger disables logging.
func New(logger *zap.Logger) *Segmenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Segmenter{logger: logger}
}

// Build scans text once and returns the article list and table of contents.
// text must already be normalized (see extract.Normalize). Returns models.ErrNoContent
// when text is blank; zero articles or headings are not an error.
func (s *Segmenter) Build(text string) (*models.Index, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrNoContent
	}
	articles, dropped := Articles(text)
	toc := Headings(text)
	idx := &models.Index{
		ID:       uuid.New().String(),
		Articles: articles,
		TOC:      toc,
		Length:   len(text),
		BuiltAt:  time.Now().UTC(),
	}
	s.logger.Debug("index built",
		zap.String("index_id", idx.ID),
		zap.Int("articles", len(articles)),
		zap.Int("headings", len(toc)),
		zap.Int("dropped_spans", dropped),
	)
	return idx, nil
}

// Build segments text with a logger-less Segmenter.
func Build(text string) (*models.Index, error) {
	return New(nil).Build(text)
}

// Articles returns the articles of text in document order, and how many marker spans
// were dropped because no number could be parsed from them.
func Articles(text string) ([]*models.Article, int) {
	offsets := markerOffsets(text)
	articles := make([]*models.Article, 0, len(offsets))
	dropped := 0
	for i, start := range offsets {
		end := len(text)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		chunk := strings.TrimSpace(text[start:end])
		m := articleNumber.FindStringSubmatch(chunk)
		if m == nil {
			dropped++
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			dropped++
			continue
		}
		articles = append(articles, &models.Article{Number: n, Text: chunk, Start: start, End: end})
	}
	return articles, dropped
}

// markerOffsets returns the byte offset where each "Art." marker begins.
func markerOffsets(text string) []int {
	matches := articleMarker.FindAllStringSubmatchIndex(text, -1)
	offsets := make([]int, 0, len(matches))
	for _, m := range matches {
		// m[4] is the start of the marker group, after any leading line break.
		offsets = append(offsets, m[4])
	}
	return offsets
}

// Headings returns every heading line of text, trimmed, in document order.
func Headings(text string) []string {
	matches := headingLine.FindAllStringSubmatch(text, -1)
	toc := make([]string, 0, len(matches))
	for _, m := range matches {
		toc = append(toc, strings.TrimSpace(m[1]))
	}
	return toc
}
