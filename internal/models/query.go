package models

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxResults is the number of hits returned by a keyword search before truncation.
const DefaultMaxResults = 50

// KeywordQuery is a keyword search request.
type KeywordQuery struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// Validate trims the query, composes it to NFC like the loaded text, and applies the
// default limit. Returns ErrEmptyQuery when nothing but whitespace was given.
func (q *KeywordQuery) Validate() error {
	q.Query = norm.NFC.String(strings.TrimSpace(q.Query))
	if q.Query == "" {
		return ErrEmptyQuery
	}
	if q.Limit <= 0 {
		q.Limit = DefaultMaxResults
	}
	return nil
}

// ParseArticleNumber parses the leading integer of s, ignoring surrounding whitespace,
// so "12", " 12 " and "12º" all yield 12. Returns ErrInvalidNumber otherwise.
func ParseArticleNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) || r > unicode.MaxASCII })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, ErrInvalidNumber
	}
	n, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return n, nil
}
