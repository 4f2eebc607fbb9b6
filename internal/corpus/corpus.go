// Package corpus owns the currently loaded statute and its query engine.
//
// Each load builds a fresh immutable index and publishes it with an atomic swap, so
// readers never lock and only the load step writes.
package corpus

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hyperjump/lexbusca/internal/config"
	"github.com/hyperjump/lexbusca/internal/fingerprint"
	"github.com/hyperjump/lexbusca/internal/models"
	"github.com/hyperjump/lexbusca/internal/search"
	"github.com/hyperjump/lexbusca/internal/segment"
	"go.uber.org/zap"
)

// Loader returns the normalized statutory text found at path.
type Loader interface {
	Load(path, format string) (string, error)
}

// Corpus holds the engine for the most recently loaded text.
type Corpus struct {
	loader    Loader
	segmenter *segment.Segmenter
	searchCfg *config.SearchConfig
	logger    *zap.Logger

	loadMu  sync.Mutex
	path    string
	format  string
	current atomic.Pointer[search.Engine]
	reloads atomic.Int64
}

// New creates an empty corpus. Engine returns models.ErrNoContent until a load succeeds.
func New(loader Loader, searchCfg *config.SearchConfig, logger *zap.Logger) *Corpus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Corpus{
		loader:    loader,
		segmenter: segment.New(logger),
		searchCfg: searchCfg,
		logger:    logger,
	}
}

// Load reads the file at path, segments it and publishes the new index.
func (c *Corpus) Load(path, format string) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	c.path, c.format = path, format
	_, err := c.loadLocked(false)
	return err
}

// LoadText segments text directly and publishes the new index.
func (c *Corpus) LoadText(text string) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	return c.publish(text, fingerprint.Text(text))
}

// Reload re-reads the last loaded path. On failure the previous index stays in place.
// A file whose normalized text is unchanged keeps the current index and is not counted.
func (c *Corpus) Reload() error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	if c.path == "" {
		return errors.New("corpus: no path loaded")
	}
	changed, err := c.loadLocked(true)
	if err != nil {
		return err
	}
	if changed {
		c.reloads.Add(1)
	}
	return nil
}

func (c *Corpus) loadLocked(skipUnchanged bool) (bool, error) {
	start := time.Now()
	text, err := c.loader.Load(c.path, c.format)
	if err != nil {
		c.logger.Warn("corpus load failed", zap.String("path", c.path), zap.Error(err))
		return false, fmt.Errorf("load corpus: %w", err)
	}
	sum := fingerprint.Text(text)
	if cur := c.current.Load(); skipUnchanged && cur != nil && cur.Index().Checksum == sum {
		c.logger.Debug("corpus unchanged", zap.String("path", c.path), zap.String("checksum", sum))
		return false, nil
	}
	if err := c.publish(text, sum); err != nil {
		return false, err
	}
	c.logger.Info("corpus loaded",
		zap.String("path", c.path),
		zap.Int("articles", c.current.Load().Index().ArticleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return true, nil
}

func (c *Corpus) publish(text, checksum string) error {
	idx, err := c.segmenter.Build(text)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	idx.Checksum = checksum
	c.current.Store(search.NewEngine(idx, c.searchCfg))
	return nil
}

// Engine returns the engine for the current index, or models.ErrNoContent when nothing
// has been loaded.
func (c *Corpus) Engine() (*search.Engine, error) {
	e := c.current.Load()
	if e == nil {
		return nil, models.ErrNoContent
	}
	return e, nil
}

// Path returns the path of the last load request.
func (c *Corpus) Path() string {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	return c.path
}

// Status summarizes the current index.
func (c *Corpus) Status() (*models.Status, error) {
	e, err := c.Engine()
	if err != nil {
		return nil, err
	}
	idx := e.Index()
	return &models.Status{
		IndexID:    idx.ID,
		Source:     c.Path(),
		Articles:   len(idx.Articles),
		Headings:   len(idx.TOC),
		TextLength: idx.Length,
		Checksum:   idx.Checksum,
		BuiltAt:    idx.BuiltAt.Format(time.RFC3339),
		Reloads:    c.reloads.Load(),
	}, nil
}
