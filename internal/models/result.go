package models

// LookupResult is the answer to an article lookup.
type LookupResult struct {
	Article *Article `json:"article"`
	// Total is the number of articles detected in the corpus.
	Total int `json:"total_articles"`
}

// SearchHit is a single keyword match with its highlighted rendering.
type SearchHit struct {
	Article     *Article `json:"article"`
	Highlighted string   `json:"highlighted"`
	// PatternFallback is set when the query could not be compiled and Highlighted
	// holds escaped text without markers.
	PatternFallback bool `json:"pattern_fallback,omitempty"`
}

// SearchResult is the answer to a keyword search.
// Hits holds at most Limit entries in document order; Total is the true match count.
type SearchResult struct {
	Query     string       `json:"query"`
	Hits      []*SearchHit `json:"hits"`
	Total     int          `json:"total"`
	Limit     int          `json:"limit"`
	Truncated bool         `json:"truncated"`
}

// TOCResult lists the detected headings.
type TOCResult struct {
	Headings []string `json:"headings"`
}

// Status summarizes the loaded index.
type Status struct {
	IndexID    string `json:"index_id"`
	Source     string `json:"source"`
	Articles   int    `json:"articles"`
	Headings   int    `json:"headings"`
	TextLength int    `json:"text_length"`
	Checksum   string `json:"checksum"`
	BuiltAt    string `json:"built_at"`
	Reloads    int64  `json:"reloads"`
}
