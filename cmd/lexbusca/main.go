// Package main is the lexbusca CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hyperjump/lexbusca/internal/cli"
	"github.com/hyperjump/lexbusca/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

const defaultConfigName = "config.yaml"

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	debug      bool
	corpusPath string
	format     string
	output     string
	serverURL  string
	maxChars   int
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "lexbusca",
		Short:         "Article lookup and keyword search over a statutory text",
		Long:          "lexbusca segments a law into articles (\"Art. N\") and a table of contents, then answers article lookups and literal keyword searches from the CLI or over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./config.yaml when present)")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	pf.StringVar(&opts.corpusPath, "corpus", "", "statute file to load (overrides corpus.path)")
	pf.StringVar(&opts.format, "format", "", "corpus format: txt, md, html, pdf or docx (default from extension)")
	pf.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	pf.StringVar(&opts.serverURL, "server", "", "query a running lexbusca server instead of loading the corpus")
	pf.IntVar(&opts.maxChars, "max-chars", 0, "truncate article text in text output (0 = full)")

	root.AddCommand(
		newServeCmd(opts),
		newArticleCmd(opts),
		newSearchCmd(opts),
		newTOCCmd(opts),
		newStatusCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lexbusca version %s\n", version)
		},
	}
}

// loadConfig loads the config at opts.configPath. With no path it uses ./config.yaml when
// present and built-in defaults otherwise. Command-line flags override file values.
// Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(opts *options) (*config.Config, string, error) {
	path := opts.configPath
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, defaultConfigName)
			if _, statErr := os.Stat(fallback); statErr == nil {
				path = fallback
			}
		}
	}

	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
	}

	if opts.corpusPath != "" {
		abs, err := filepath.Abs(opts.corpusPath)
		if err != nil {
			return nil, "", fmt.Errorf("resolve corpus path: %w", err)
		}
		cfg.Corpus.Path = abs
	}
	if opts.format != "" {
		cfg.Corpus.Format = opts.format
	}
	if opts.debug {
		cfg.Debug = true
	}
	config.ApplyDefaults(cfg)
	return cfg, path, nil
}

func newWriter(cmd *cobra.Command, opts *options) (*cli.Writer, error) {
	format, err := cli.ParseOutputFormat(opts.output)
	if err != nil {
		return nil, err
	}
	w := cli.NewWriter(cmd.OutOrStdout(), format)
	w.MaxChars = opts.maxChars
	return w, nil
}

var errNoCorpus = errors.New("no corpus configured; pass --corpus or set corpus.path in the config file")
