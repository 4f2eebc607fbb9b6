package search

import "github.com/hyperjump/lexbusca/internal/models"

// ProcessQuery validates the keyword query and caps its limit at maxResults.
func ProcessQuery(query *models.KeywordQuery, maxResults int) error {
	if err := query.Validate(); err != nil {
		return err
	}
	if maxResults > 0 && query.Limit > maxResults {
		query.Limit = maxResults
	}
	return nil
}
