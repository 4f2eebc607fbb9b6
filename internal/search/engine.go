// Package search answers article lookups, keyword searches and table-of-contents requests
// over an immutable index.
package search

import (
	"slices"
	"strings"

	"github.com/hyperjump/lexbusca/internal/config"
	"github.com/hyperjump/lexbusca/internal/models"
)

// Engine runs queries against one index. It never mutates the index and is safe for
// concurrent use.
type Engine struct {
	index       *models.Index
	highlighter *Highlighter
	maxResults  int
}

// NewEngine creates an engine over idx. cfg may be nil.
func NewEngine(idx *models.Index, cfg *config.SearchConfig) *Engine {
	if idx == nil {
		idx = &models.Index{}
	}
	maxResults := models.DefaultMaxResults
	tag := DefaultHighlightTag
	if cfg != nil {
		if cfg.MaxResults > 0 {
			maxResults = cfg.MaxResults
		}
		if cfg.HighlightTag != "" {
			tag = cfg.HighlightTag
		}
	}
	return &Engine{
		index:       idx,
		highlighter: NewHighlighter(tag),
		maxResults:  maxResults,
	}
}

// Index returns the index the engine reads from.
func (e *Engine) Index() *models.Index {
	return e.index
}

// Highlighter returns the engine's highlighter.
func (e *Engine) Highlighter() *Highlighter {
	return e.highlighter
}

// LookupByNumber returns the first article in document order numbered n.
// Returns models.ErrNotFound when none matches.
func (e *Engine) LookupByNumber(n int) (*models.LookupResult, error) {
	for _, a := range e.index.Articles {
		if a.Number == n {
			return &models.LookupResult{Article: a, Total: len(e.index.Articles)}, nil
		}
	}
	return nil, models.ErrNotFound
}

// SearchByKeyword runs a literal, case-insensitive search with the engine's result cap.
func (e *Engine) SearchByKeyword(q string) (*models.SearchResult, error) {
	return e.Search(&models.KeywordQuery{Query: q, Limit: e.maxResults})
}

// Search returns the articles containing query.Query in document order, at most query.Limit
// of them, each with highlighted text. Total always holds the full match count.
// Returns models.ErrEmptyQuery for a blank query.
// The caller's query is left untouched.
func (e *Engine) Search(q *models.KeywordQuery) (*models.SearchResult, error) {
	query := *q
	if err := ProcessQuery(&query, e.maxResults); err != nil {
		return nil, err
	}
	re, err := LiteralPattern(query.Query)
	fallback := err != nil
	contains := func(text string) bool {
		if fallback {
			return strings.Contains(text, query.Query)
		}
		return re.MatchString(text)
	}

	result := &models.SearchResult{
		Query: query.Query,
		Hits:  make([]*models.SearchHit, 0),
		Limit: query.Limit,
	}
	for _, a := range e.index.Articles {
		if !contains(a.Text) {
			continue
		}
		result.Total++
		if len(result.Hits) >= query.Limit {
			continue
		}
		hit := &models.SearchHit{Article: a}
		if fallback {
			hit.Highlighted = EscapeHTML(a.Text)
			hit.PatternFallback = true
		} else {
			hit.Highlighted = e.highlighter.highlightWith(a.Text, re)
		}
		result.Hits = append(result.Hits, hit)
	}
	result.Truncated = result.Total > len(result.Hits)
	return result, nil
}

// ListTOC returns the detected headings in document order.
// Returns models.ErrNoTOC when none were detected.
func (e *Engine) ListTOC() ([]string, error) {
	if len(e.index.TOC) == 0 {
		return nil, models.ErrNoTOC
	}
	return slices.Clone(e.index.TOC), nil
}
