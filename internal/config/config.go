// Package config provides configuration loading and structs for the kousei
// quality gate.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/kousei/internal/keyword"
	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/pipeline"
	"github.com/hyperjump/kousei/internal/rater"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool           `yaml:"debug"`
	Server  ServerConfig   `yaml:"server"`
	Gate    pipeline.Gate  `yaml:"gate"`
	Targets rater.Targets  `yaml:"targets"`
	Keyword keyword.Config `yaml:"keyword"`
	// PageBands overrides the default word-count band per page type.
	PageBands map[models.PageType]models.WordCountBand `yaml:"page_bands"`
	// RulesPath points at an optional YAML rule catalog overriding the
	// built-in scoring rules.
	RulesPath string      `yaml:"rules_path"`
	Watch     WatchConfig `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WatchConfig holds directory watch settings. Watched files are scored with
// the keyword settings below, since file events carry no keyword of their own.
type WatchConfig struct {
	Directories       []string        `yaml:"directories"`
	Extensions        []string        `yaml:"extensions"`
	DebounceMillis    int             `yaml:"debounce_millis"`
	PrimaryKeyword    string          `yaml:"primary_keyword"`
	SecondaryKeywords []string        `yaml:"secondary_keywords"`
	PageType          models.PageType `yaml:"page_type"`
}

// Enabled reports whether any directory is configured for watching.
func (w *WatchConfig) Enabled() bool { return len(w.Directories) > 0 }

// Pipeline assembles the pipeline configuration from the loaded settings.
func (c *Config) Pipeline() pipeline.Config {
	pc := pipeline.DefaultConfig()
	pc.Gate = c.Gate
	pc.Targets = c.Targets
	pc.Keyword = c.Keyword
	for pt, band := range c.PageBands {
		pc.PageBands[pt] = band
	}
	return pc
}

// Load reads and parses the config file at path, expands paths, applies
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.RulesPath != "" {
		cfg.RulesPath = expandPath(cfg.RulesPath, configDir)
	}
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Gate.PassThreshold < 0 || c.Gate.PassThreshold > 100 {
		return fmt.Errorf("gate.pass_threshold must be within [0, 100], got %d", c.Gate.PassThreshold)
	}
	if c.Gate.MaxRevisions < 0 {
		return fmt.Errorf("gate.max_revisions must not be negative, got %d", c.Gate.MaxRevisions)
	}
	if !c.Targets.WordCount.Valid() {
		return fmt.Errorf("targets.word_count band %d-%d is invalid", c.Targets.WordCount.Min, c.Targets.WordCount.Max)
	}
	for pt, band := range c.PageBands {
		if !band.Valid() {
			return fmt.Errorf("page_bands.%s band %d-%d is invalid", pt, band.Min, band.Max)
		}
	}
	if c.Keyword.TargetDensity < 0 {
		return fmt.Errorf("keyword.target_density must not be negative, got %g", c.Keyword.TargetDensity)
	}
	if c.Watch.Enabled() && strings.TrimSpace(c.Watch.PrimaryKeyword) == "" {
		return fmt.Errorf("watch.primary_keyword is required when watch directories are set")
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
