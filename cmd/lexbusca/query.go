package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/lexbusca/internal/cli"
	"github.com/hyperjump/lexbusca/internal/models"
	"github.com/hyperjump/lexbusca/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// withBackend loads config, logger and backend, then runs fn.
func withBackend(cmd *cobra.Command, opts *options, fn func(b backend, w *cli.Writer) error) error {
	w, err := newWriter(cmd, opts)
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewCommandLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	b, err := openBackend(opts, cfg, logger)
	if err != nil {
		return err
	}
	logger.Debug("backend ready", zap.String("server", opts.serverURL), zap.String("corpus", cfg.Corpus.Path))
	return fn(b, w)
}

func newArticleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "article <number>",
		Aliases: []string{"art"},
		Short:   "Show an article by number",
		Example: "  lexbusca article 5\n  lexbusca art 121 --corpus codigo-penal.pdf",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := models.ParseArticleNumber(args[0])
			if err != nil {
				return errors.New(models.MsgInvalidNumber)
			}
			return withBackend(cmd, opts, func(b backend, w *cli.Writer) error {
				res, err := b.Lookup(n)
				if errors.Is(err, models.ErrNotFound) {
					return errors.New(models.MsgNotFound(n))
				}
				if err != nil {
					return err
				}
				return w.WriteLookup(res)
			})
		},
	}
}

// buildSearchQuery joins args with spaces so quoted and unquoted phrases behave alike.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func newSearchCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <words...>",
		Short: "Find articles containing a literal phrase (case-insensitive)",
		Long: `Find articles whose text contains the query, ignoring case. The query is matched
literally: regular expression characters have no special meaning and accents must match.

Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.`,
		Example: "  lexbusca search prazo\n  lexbusca search \"pena de reclusão\" --limit 10",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := buildSearchQuery(args)
			if q == "" {
				return errors.New(models.MsgEmptyQuery)
			}
			return withBackend(cmd, opts, func(b backend, w *cli.Writer) error {
				res, err := b.Search(q, limit)
				if errors.Is(err, models.ErrEmptyQuery) {
					return errors.New(models.MsgEmptyQuery)
				}
				if err != nil {
					return err
				}
				return w.WriteSearch(res)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of articles to show (0 = search.max_results)")
	return cmd
}

func newTOCCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "toc",
		Aliases: []string{"sumario"},
		Short:   "List the detected titles, chapters and sections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, opts, func(b backend, w *cli.Writer) error {
				toc, err := b.TOC()
				if err != nil && !errors.Is(err, models.ErrNoTOC) {
					return err
				}
				return w.WriteTOC(toc)
			})
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, opts, func(b backend, w *cli.Writer) error {
				st, err := b.Status()
				if err != nil {
					return err
				}
				return w.WriteStatus(st)
			})
		},
	}
}
