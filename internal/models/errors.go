package models

import "errors"

var (
	// ErrNoContent is returned when the statutory text is absent or blank.
	ErrNoContent = errors.New("no content")
	// ErrNotFound is returned when no article carries the requested number.
	ErrNotFound = errors.New("article not found")
	// ErrEmptyQuery is returned for a keyword search with blank input.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrNoTOC is returned when no heading was detected.
	ErrNoTOC = errors.New("table of contents not detected")
	// ErrInvalidNumber is returned when user input does not start with an article number.
	ErrInvalidNumber = errors.New("invalid article number")
)
