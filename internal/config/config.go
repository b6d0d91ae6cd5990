// Package config loads huella's configuration from YAML files and HUELLA_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/huella/internal/ranking"
)

// EnvPrefix prefixes environment overrides, e.g. HUELLA_ANALYSIS_MIN_SIMILARITY.
const EnvPrefix = "HUELLA"

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug" mapstructure:"debug"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Corpus   CorpusConfig   `yaml:"corpus" mapstructure:"corpus"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string `yaml:"host" mapstructure:"host"`
	Port           int    `yaml:"port" mapstructure:"port"`
	RequestTimeout int    `yaml:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AnalysisConfig holds scoring and report settings.
type AnalysisConfig struct {
	MinSimilarity  float64 `yaml:"min_similarity" mapstructure:"min_similarity"`
	Workers        int     `yaml:"workers" mapstructure:"workers"`
	ReportExamples int     `yaml:"report_examples" mapstructure:"report_examples"`
	// FoldedMatching tests rule applicability on the accent-folded token.
	FoldedMatching bool `yaml:"folded_matching" mapstructure:"folded_matching"`
}

// Ranking returns the ranker configuration.
func (a AnalysisConfig) Ranking() *ranking.RankingConfig {
	return &ranking.RankingConfig{MinSimilarity: a.MinSimilarity, Workers: a.Workers}
}

// CorpusConfig selects the reference corpus.
type CorpusConfig struct {
	// Source is a .yaml or .db file; empty selects the built-in sample.
	Source      string `yaml:"source" mapstructure:"source"`
	LookupLimit int    `yaml:"lookup_limit" mapstructure:"lookup_limit"`
}

// Load reads the config file at path, overlays environment variables,
// expands paths, and applies defaults. An empty path yields the defaults
// plus environment overrides.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	return decode(v, path)
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return v, nil
}

func decode(v *viper.Viper, path string) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ApplyDefaults(&cfg)
	if path != "" {
		cfg.Corpus.Source = expandPath(cfg.Corpus.Source, filepath.Dir(path))
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath resolves "./x" against configDir and "~/x" against the home
// directory. Other paths are returned unchanged.
func expandPath(path, configDir string) string {
	switch {
	case path == "" || filepath.IsAbs(path):
		return path
	case strings.HasPrefix(path, "./") || path == ".":
		return filepath.Join(configDir, path)
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Manager holds the current configuration and reloads it when the file changes.
type Manager struct {
	path string
	v    *viper.Viper

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager loads the configuration at path.
func NewManager(path string) (*Manager, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(v, path)
	if err != nil {
		return nil, err
	}
	return &Manager{path: path, v: v, config: cfg}, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// OnChange registers a callback run after every successful reload.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Reload re-decodes the configuration and notifies callbacks.
func (m *Manager) Reload() error {
	if m.path != "" {
		if err := m.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	cfg, err := decode(m.v, m.path)
	if err != nil {
		return err
	}
	m.swap(cfg)
	return nil
}

func (m *Manager) swap(cfg *Config) {
	m.mu.Lock()
	m.config = cfg
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
}

// WatchConfig reloads the configuration whenever the file changes. A reload
// that fails to parse keeps the previous configuration. No-op without a file.
func (m *Manager) WatchConfig() {
	if m.path == "" {
		return
	}
	m.v.OnConfigChange(func(fsnotify.Event) {
		cfg, err := decode(m.v, m.path)
		if err != nil {
			return
		}
		m.swap(cfg)
	})
	m.v.WatchConfig()
}
