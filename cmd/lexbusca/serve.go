package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperjump/lexbusca/internal/config"
	"github.com/hyperjump/lexbusca/internal/corpus"
	"github.com/hyperjump/lexbusca/internal/extract"
	"github.com/hyperjump/lexbusca/internal/models"
	"github.com/hyperjump/lexbusca/internal/server"
	"github.com/hyperjump/lexbusca/internal/watcher"
	"github.com/hyperjump/lexbusca/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// prefill is the initial query given on the serve command line.
type prefill struct {
	art string
	q   string
}

func newServeCmd(opts *options) *cobra.Command {
	var (
		pre  prefill
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Load the corpus and serve the HTTP API",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, resolvedConfigPath, err := loadConfig(opts)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			logger, err := utils.NewLogger(cfg.Debug)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()
			logger.Info("config loaded",
				zap.String("config_path", resolvedConfigPath),
				zap.Bool("debug", cfg.Debug),
			)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, pre, logger)
		},
	}
	cmd.Flags().StringVar(&pre.art, "art", "", "article to look up once the corpus is loaded")
	cmd.Flags().StringVar(&pre.q, "q", "", "keyword to search once the corpus is loaded (ignored with --art)")
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}

// runServe loads the corpus, starts the watcher and the HTTP server, and blocks until
// ctx is cancelled or the server fails. A corpus that cannot be loaded does not stop
// the server: the API answers 503 until a reload succeeds.
func runServe(ctx context.Context, cfg *config.Config, pre prefill, logger *zap.Logger) error {
	c := corpus.New(extract.NewExtractor(), &cfg.Search, logger)
	if cfg.Corpus.Path == "" {
		logger.Warn(errNoCorpus.Error())
	} else if err := c.Load(cfg.Corpus.Path, cfg.Corpus.Format); err != nil {
		logger.Warn(models.MsgNoContent, zap.String("path", cfg.Corpus.Path), zap.Error(err))
	}
	runPrefill(c, pre, logger)

	watchCtx, watchCancel := context.WithCancel(ctx)
	defer watchCancel()
	if cfg.Corpus.Path != "" && cfg.Watch.EnabledOrDefault() {
		w := watcher.NewWatcher(cfg.Corpus.Path, func(path string) {
			if err := c.Reload(); err != nil {
				logger.Warn("corpus reload failed, keeping previous index", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("corpus reloaded", zap.String("path", path))
		},
			watcher.WithLogger(logger),
			watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond),
		)
		if err := w.Start(watchCtx); err != nil {
			logger.Warn("failed to start watcher", zap.String("path", cfg.Corpus.Path), zap.Error(err))
		}
	}

	srv := server.NewServer(c, &cfg.Server, logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		watchCancel()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return g.Wait()
}

// runPrefill answers the startup query and logs the outcome along with the API
// address that serves the same request. art wins over q when both are set.
func runPrefill(c *corpus.Corpus, pre prefill, logger *zap.Logger) {
	if pre.art == "" && pre.q == "" {
		return
	}
	e, err := c.Engine()
	if err != nil {
		logger.Warn(models.MsgNoContent)
		return
	}
	if pre.art != "" {
		n, err := models.ParseArticleNumber(pre.art)
		if err != nil {
			logger.Warn(models.MsgInvalidNumber, zap.String("art", pre.art))
			return
		}
		res, err := e.LookupByNumber(n)
		if err != nil {
			logger.Info(models.MsgNotFound(n))
			return
		}
		logger.Info("prefill article",
			zap.Int("number", res.Article.Number),
			zap.Int("total_articles", res.Total),
			zap.String("path", "/api/v1/query?art="+url.QueryEscape(pre.art)),
		)
		return
	}
	res, err := e.SearchByKeyword(pre.q)
	if err != nil {
		logger.Warn(models.MsgEmptyQuery)
		return
	}
	logger.Info("prefill search",
		zap.String("query", res.Query),
		zap.Int("total", res.Total),
		zap.Int("shown", len(res.Hits)),
		zap.String("path", "/api/v1/query?q="+url.QueryEscape(res.Query)),
	)
}
