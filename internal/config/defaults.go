package config

import (
	"github.com/hyperjump/kousei/internal/pipeline"
	"github.com/hyperjump/kousei/internal/rater"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	def := pipeline.DefaultConfig()
	if cfg.Gate.PassThreshold == 0 {
		cfg.Gate.PassThreshold = def.Gate.PassThreshold
	}
	if cfg.Gate.MaxRevisions == 0 {
		cfg.Gate.MaxRevisions = def.Gate.MaxRevisions
	}
	if cfg.Gate.MaxFixesPerRevision == 0 {
		cfg.Gate.MaxFixesPerRevision = def.Gate.MaxFixesPerRevision
	}

	defTargets := rater.DefaultTargets()
	if cfg.Targets.WordCount.IsZero() {
		cfg.Targets.WordCount = defTargets.WordCount
	}
	if cfg.Targets.OptimalWords == 0 {
		cfg.Targets.OptimalWords = (cfg.Targets.WordCount.Min + cfg.Targets.WordCount.Max) / 2
	}
	if cfg.Targets.DensityMin == 0 {
		cfg.Targets.DensityMin = defTargets.DensityMin
	}
	if cfg.Targets.DensityMax == 0 {
		cfg.Targets.DensityMax = defTargets.DensityMax
	}
	if cfg.Targets.MetaTitleMin == 0 {
		cfg.Targets.MetaTitleMin = defTargets.MetaTitleMin
	}
	if cfg.Targets.MetaTitleMax == 0 {
		cfg.Targets.MetaTitleMax = defTargets.MetaTitleMax
	}
	if cfg.Targets.MetaDescMin == 0 {
		cfg.Targets.MetaDescMin = defTargets.MetaDescMin
	}
	if cfg.Targets.MetaDescMax == 0 {
		cfg.Targets.MetaDescMax = defTargets.MetaDescMax
	}
	if cfg.Targets.MinH2 == 0 {
		cfg.Targets.MinH2 = defTargets.MinH2
	}
	if cfg.Targets.OptimalH2 == 0 {
		cfg.Targets.OptimalH2 = defTargets.OptimalH2
	}
	if cfg.Targets.H2KeywordRatio == 0 {
		cfg.Targets.H2KeywordRatio = defTargets.H2KeywordRatio
	}
	if cfg.Targets.MinInternalLinks == 0 {
		cfg.Targets.MinInternalLinks = defTargets.MinInternalLinks
	}
	if cfg.Targets.OptimalInternalLinks == 0 {
		cfg.Targets.OptimalInternalLinks = defTargets.OptimalInternalLinks
	}
	if cfg.Targets.MinExternalLinks == 0 {
		cfg.Targets.MinExternalLinks = defTargets.MinExternalLinks
	}
	if cfg.Targets.OptimalExternalLinks == 0 {
		cfg.Targets.OptimalExternalLinks = defTargets.OptimalExternalLinks
	}
	if cfg.Targets.MaxSentenceWords == 0 {
		cfg.Targets.MaxSentenceWords = defTargets.MaxSentenceWords
	}
	if cfg.Targets.Weights == nil {
		cfg.Targets.Weights = defTargets.Weights
	}
	if cfg.Targets.PublishThreshold == 0 {
		cfg.Targets.PublishThreshold = defTargets.PublishThreshold
	}

	if cfg.Keyword.TargetDensity == 0 {
		cfg.Keyword.TargetDensity = def.Keyword.TargetDensity
	}
	if cfg.Keyword.MaxClusters == 0 {
		cfg.Keyword.MaxClusters = def.Keyword.MaxClusters
	}

	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".md", ".txt", ".pdf", ".docx"}
	}
	if cfg.Watch.DebounceMillis == 0 {
		cfg.Watch.DebounceMillis = 500
	}
}
