package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hyperjump/lexbusca/internal/config"
	"github.com/hyperjump/lexbusca/internal/corpus"
	"github.com/hyperjump/lexbusca/internal/extract"
	"github.com/hyperjump/lexbusca/internal/models"
	"go.uber.org/zap"
)

// backend answers the one-shot commands, either from a corpus loaded in-process
// or from a running server.
type backend interface {
	Lookup(n int) (*models.LookupResult, error)
	Search(q string, limit int) (*models.SearchResult, error)
	TOC() ([]string, error)
	Status() (*models.Status, error)
}

func openBackend(opts *options, cfg *config.Config, logger *zap.Logger) (backend, error) {
	if opts.serverURL != "" {
		return newRemoteBackend(opts.serverURL), nil
	}
	c, err := loadCorpus(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &localBackend{corpus: c}, nil
}

// loadCorpus loads the configured statute. Any read failure surfaces as the
// user-facing no-content message; details go to the log.
func loadCorpus(cfg *config.Config, logger *zap.Logger) (*corpus.Corpus, error) {
	if cfg.Corpus.Path == "" {
		return nil, errNoCorpus
	}
	c := corpus.New(extract.NewExtractor(), &cfg.Search, logger)
	if err := c.Load(cfg.Corpus.Path, cfg.Corpus.Format); err != nil {
		return nil, fmt.Errorf("%s (%w)", models.MsgNoContent, err)
	}
	return c, nil
}

type localBackend struct {
	corpus *corpus.Corpus
}

func (b *localBackend) Lookup(n int) (*models.LookupResult, error) {
	e, err := b.corpus.Engine()
	if err != nil {
		return nil, err
	}
	return e.LookupByNumber(n)
}

func (b *localBackend) Search(q string, limit int) (*models.SearchResult, error) {
	e, err := b.corpus.Engine()
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		return e.Search(&models.KeywordQuery{Query: q, Limit: limit})
	}
	return e.SearchByKeyword(q)
}

func (b *localBackend) TOC() ([]string, error) {
	e, err := b.corpus.Engine()
	if err != nil {
		return nil, err
	}
	return e.ListTOC()
}

func (b *localBackend) Status() (*models.Status, error) {
	return b.corpus.Status()
}

// remoteBackend talks to the server's /api/v1 routes.
type remoteBackend struct {
	baseURL string
	client  *http.Client
}

func newRemoteBackend(baseURL string) *remoteBackend {
	return &remoteBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// remoteError carries the server's error message and HTTP status.
type remoteError struct {
	status  int
	message string
}

func (e *remoteError) Error() string { return e.message }

func (b *remoteBackend) getJSON(path string, params url.Values, out interface{}) error {
	u := b.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	resp, err := b.client.Get(u)
	if err != nil {
		return fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
			body.Error = fmt.Sprintf("server returned %s", resp.Status)
		}
		return &remoteError{status: resp.StatusCode, message: body.Error}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (b *remoteBackend) Lookup(n int) (*models.LookupResult, error) {
	var res models.LookupResult
	if err := b.getJSON("/api/v1/articles/"+strconv.Itoa(n), nil, &res); err != nil {
		var re *remoteError
		if errors.As(err, &re) && re.status == http.StatusNotFound {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (b *remoteBackend) Search(q string, limit int) (*models.SearchResult, error) {
	if strings.TrimSpace(q) == "" {
		return nil, models.ErrEmptyQuery
	}
	params := url.Values{"q": {q}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var res models.SearchResult
	if err := b.getJSON("/api/v1/search", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (b *remoteBackend) TOC() ([]string, error) {
	var res models.TOCResult
	if err := b.getJSON("/api/v1/toc", nil, &res); err != nil {
		return nil, err
	}
	if len(res.Headings) == 0 {
		return nil, models.ErrNoTOC
	}
	return res.Headings, nil
}

func (b *remoteBackend) Status() (*models.Status, error) {
	var st models.Status
	if err := b.getJSON("/api/v1/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
