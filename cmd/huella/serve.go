package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/huella/internal/analyzer"
	"github.com/hyperjump/huella/internal/config"
	"github.com/hyperjump/huella/internal/corpus"
	"github.com/hyperjump/huella/internal/keyword"
	"github.com/hyperjump/huella/internal/metrics"
	"github.com/hyperjump/huella/internal/server"
	"github.com/hyperjump/huella/internal/watcher"
	"github.com/hyperjump/huella/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(g *globalOptions) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the Huella HTTP API.

Endpoints:
  POST /api/v1/analyze        rank the corpus against a text
  POST /api/v1/compare        score two texts
  POST /api/v1/profile        statistics and spelling patterns of a text
  GET  /api/v1/corpus         list the corpus
  GET  /api/v1/corpus/search  search the corpus (?q=&limit=&fuzzy=)
  GET  /health                liveness
  GET  /metrics               Prometheus metrics

Edits to the config file's analysis section, and to a YAML or SQLite
corpus file, apply without a restart.`,
		Example: `  huella serve
  huella serve --port 3000 --config /etc/huella/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			path := resolveConfigPath(g.configPath)
			mgr, err := config.NewManager(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg := mgr.Get()
			logger, err := utils.NewLogger(cfg.Debug || g.debug)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()
			logger.Info("config loaded", zap.String("config_path", path), zap.Bool("debug", cfg.Debug || g.debug))

			e := &env{cfg: cfg, configPath: path, logger: logger}
			c, err := e.loadCorpus(ctx)
			if err != nil {
				return err
			}
			idx, err := keyword.NewCorpusIndex(c)
			if err != nil {
				return err
			}

			m := metrics.New(metrics.Options{Runtime: true})
			serverCfg := cfg.Server
			if cmd.Flags().Changed("host") {
				serverCfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				serverCfg.Port = port
			}
			st := &serveState{cfg: cfg, corpus: c, index: idx, metrics: m, logger: logger}
			defer st.close()
			srv := server.NewServer(st.service(), m, &serverCfg, logger)
			st.attach(srv)

			mgr.OnChange(func(next *config.Config) {
				st.setConfig(next)
				logger.Info("config reloaded",
					zap.Float64("min_similarity", next.Analysis.MinSimilarity),
					zap.Int("workers", next.Analysis.Workers),
					zap.Bool("folded_matching", next.Analysis.FoldedMatching),
				)
			})
			mgr.WatchConfig()

			if source := cfg.Corpus.Source; source != "" {
				cw := watcher.New([]string{source}, func(string) {
					if _, err := st.reloadCorpus(ctx, source); err != nil {
						logger.Warn("corpus reload failed, keeping previous corpus", zap.String("source", source), zap.Error(err))
					}
				}, watcher.WithLogger(logger))
				if err := cw.Start(ctx); err != nil {
					logger.Warn("corpus watch disabled", zap.String("source", source), zap.Error(err))
				} else {
					defer cw.Stop()
				}
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("shutdown: %w", err)
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "host to bind to (overrides config)")
	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "port to listen on (overrides config)")
	return cmd
}

// serveState is what the server's service is built from. Config reloads and
// corpus reloads each replace their part and rebuild the service. The rebuilt
// service is installed on the attached server before mu is released, so the
// last reload to take the lock is the one that serves.
type serveState struct {
	mu      sync.Mutex
	srv     *server.Server
	cfg     *config.Config
	corpus  *corpus.Corpus
	index   *keyword.CorpusIndex
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func (st *serveState) service() *analyzer.Service {
	st.mu.Lock()
	defer st.mu.Unlock()
	return newService(st.corpus, st.cfg, st.logger, st.metrics, st.index)
}

func (st *serveState) attach(srv *server.Server) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.srv = srv
}

// rebuild must be called with mu held.
func (st *serveState) rebuild() *analyzer.Service {
	svc := newService(st.corpus, st.cfg, st.logger, st.metrics, st.index)
	if st.srv != nil {
		st.srv.SetService(svc)
	}
	return svc
}

func (st *serveState) setConfig(cfg *config.Config) *analyzer.Service {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cfg = cfg
	return st.rebuild()
}

// reloadCorpus loads source again and rebuilds the lookup index. The old
// index is not closed: requests in flight may still be using it.
func (st *serveState) reloadCorpus(ctx context.Context, source string) (*analyzer.Service, error) {
	c, err := corpus.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	idx, err := keyword.NewCorpusIndex(c)
	if err != nil {
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.corpus, st.index = c, idx
	st.logger.Info("corpus reloaded", zap.String("source", source), zap.Int("entries", c.Len()))
	return st.rebuild(), nil
}

func (st *serveState) close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	_ = st.index.Close()
}
