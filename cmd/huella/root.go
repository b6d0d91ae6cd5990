package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/huella/internal/analyzer"
	"github.com/hyperjump/huella/internal/config"
	"github.com/hyperjump/huella/internal/corpus"
	"github.com/hyperjump/huella/internal/keyword"
	"github.com/hyperjump/huella/internal/metrics"
	"github.com/hyperjump/huella/pkg/utils"
)

var version = "dev"

// defaultConfigName is looked up in the working directory when --config is
// not given.
const defaultConfigName = "config.yaml"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "huella",
		Short: "Spanish writing-style fingerprinting",
		Long: `Huella compares a Spanish text with a corpus of reference texts and ranks
the authors whose writing habits are closest: recurring spelling slips
(b/v, silent h, ll/y, s/c/z, g/j, missing accents, punctuation) together
with sentence length, word length, vocabulary richness and common words.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./config.yaml when present)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newCompareCmd(opts),
		newProfileCmd(opts),
		newCorpusCmd(opts),
		newServeCmd(opts),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// resolveConfigPath returns path, or config.yaml from the current directory
// when path is empty and that file exists. An empty result means defaults.
func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	if cwd, err := os.Getwd(); err == nil {
		fallback := filepath.Join(cwd, defaultConfigName)
		if _, err := os.Stat(fallback); err == nil {
			return fallback
		}
	}
	return ""
}

// loadConfig loads the config selected by resolveConfigPath and returns the
// path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	path = resolveConfigPath(path)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// env is what every command needs: configuration and a logger.
type env struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
}

func newEnv(opts *globalOptions) (*env, error) {
	cfg, path, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewLogger(cfg.Debug || opts.debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Debug("config loaded", zap.String("config_path", path), zap.String("corpus", cfg.Corpus.Source))
	return &env{cfg: cfg, configPath: path, logger: logger}, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}

// loadCorpus loads the configured corpus, the built-in sample when none is set.
func (e *env) loadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	c, err := corpus.Load(ctx, e.cfg.Corpus.Source)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("corpus loaded", zap.Int("entries", c.Len()))
	return c, nil
}

// newService builds an analyzer from cfg. A non-nil idx enables corpus lookups.
func newService(c *corpus.Corpus, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics, idx *keyword.CorpusIndex) *analyzer.Service {
	opts := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithMetrics(m),
		analyzer.WithReportExamples(cfg.Analysis.ReportExamples),
		analyzer.WithFoldedMatching(cfg.Analysis.FoldedMatching),
	}
	if idx != nil {
		opts = append(opts, analyzer.WithLookup(idx))
	}
	return analyzer.New(c, cfg.Analysis.Ranking(), opts...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "huella version %s\n", version)
		},
	}
}
