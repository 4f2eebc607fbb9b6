// Package models defines core data structures for articles, the index, queries, and results.
package models

import "time"

// Article is a numbered unit of statutory text bounded by two consecutive "Art." markers
// (or the end of the document).
type Article struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	// Start and End are the untrimmed span offsets in the normalized text.
	Start int `json:"start"`
	End   int `json:"end"`
}

// Index is the immutable result of segmenting one statutory text.
// Articles and TOC are in document order; duplicates are preserved.
type Index struct {
	ID       string     `json:"id"`
	Articles []*Article `json:"articles"`
	TOC      []string   `json:"toc"`
	Length   int        `json:"length"`
	// Checksum identifies the normalized text the index was built from.
	Checksum string     `json:"checksum,omitempty"`
	BuiltAt  time.Time  `json:"built_at"`
}

// ArticleCount returns the number of detected articles.
func (idx *Index) ArticleCount() int {
	if idx == nil {
		return 0
	}
	return len(idx.Articles)
}
