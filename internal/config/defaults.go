package config

import "github.com/hyperjump/lexbusca/internal/models"

// DefaultDebounceMS is the quiet period before a changed corpus file is reloaded.
const DefaultDebounceMS = 400

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 30
	}
	if cfg.Search.MaxResults <= 0 {
		cfg.Search.MaxResults = models.DefaultMaxResults
	}
	if cfg.Search.HighlightTag == "" {
		cfg.Search.HighlightTag = "mark"
	}
	if cfg.Watch.DebounceMS <= 0 {
		cfg.Watch.DebounceMS = DefaultDebounceMS
	}
	// Watching defaults to on when a corpus file is configured.
	if cfg.Corpus.Path != "" && cfg.Watch.Enabled == nil {
		t := true
		cfg.Watch.Enabled = &t
	}
}
