// Package keyword measures keyword density, critical placements, stuffing
// risk, and section-level topic clustering for a single document.
package keyword

import (
	"fmt"

	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/textutil"
	"github.com/hyperjump/kousei/pkg/utils"
)

// Density band edges, in percent of total words. The bands map one-to-one to
// models.StuffingRisk values and to heatmap heat levels.
const (
	densityLow      = 0.5
	densityOptimal  = 1.0
	densityBorder   = 2.0
	densityStuffing = 3.0
)

// Escalator limits. Crossing one adds a warning but never changes the band:
// the risk classification is a pure function of overall density.
const (
	paragraphDensityLimit    = 5.0
	consecutiveSentenceLimit = 3
)

const sectionLabelMax = 40

// Config holds the keyword analysis targets.
type Config struct {
	// TargetDensity is the ideal primary-keyword density in percent.
	// Secondary keywords aim for half of it.
	TargetDensity float64 `yaml:"target_density"`
	// MaxClusters caps the number of topic clusters.
	MaxClusters int `yaml:"max_clusters"`
}

// DefaultConfig returns the standard targets.
func DefaultConfig() Config {
	return Config{TargetDensity: 1.5, MaxClusters: 5}
}

// Analyze computes the full keyword profile for text. All counting goes
// through the shared tokenizer so the figures agree with the other analyzers.
// The result is deterministic for identical inputs.
func Analyze(text string, structure *models.Structure, primary string, secondaries []string, cfg Config) *models.KeywordProfile {
	if cfg.MaxClusters <= 0 {
		cfg.MaxClusters = DefaultConfig().MaxClusters
	}

	tokens := textutil.Words(text)
	profile := &models.KeywordProfile{
		WordCount:     len(tokens),
		DensityByTerm: make(map[string]float64, 1+len(secondaries)),
	}

	profile.Primary = analyzeTerm(text, tokens, structure, primary)
	profile.CriticalPlacements = profile.Primary.Placements
	profile.DensityByTerm[primary] = profile.Primary.Density
	for _, kw := range secondaries {
		stats := analyzeTerm(text, tokens, structure, kw)
		profile.Secondary = append(profile.Secondary, stats)
		profile.DensityByTerm[kw] = stats.Density
	}

	profile.StuffingRisk = classifyDensity(profile.Primary.Density)
	profile.StuffingWarnings = stuffingWarnings(text, primary)
	profile.Heatmap = buildHeatmap(structure, primary)
	profile.Clusters = clusterSections(structure, cfg.MaxClusters)
	return profile
}

// analyzeTerm counts contiguous phrase occurrences of keyword in tokens and
// checks each critical placement.
func analyzeTerm(text string, tokens []string, structure *models.Structure, keyword string) models.TermStats {
	phrase := textutil.Words(keyword)
	occurrences := textutil.CountPhrase(tokens, phrase)

	density := 0.0
	if len(tokens) > 0 {
		density = utils.Round2(float64(occurrences) / float64(len(tokens)) * 100)
	}

	first := tokens
	if len(first) > 100 {
		first = first[:100]
	}

	stats := models.TermStats{
		Keyword:     keyword,
		Occurrences: occurrences,
		Density:     density,
	}
	stats.Placements.Title = textutil.ContainsPhrase(structure.H1(), keyword)
	stats.Placements.First100Words = textutil.CountPhrase(first, phrase) > 0
	for _, h := range structure.Headings {
		if textutil.ContainsPhrase(h.Text, keyword) {
			stats.Placements.Heading = true
			break
		}
	}
	if paras := textutil.Paragraphs(text); len(paras) > 0 {
		stats.Placements.Closing = textutil.ContainsPhrase(paras[len(paras)-1], keyword)
	}
	return stats
}

// classifyDensity maps a density percentage onto the documented risk bands.
// Pure: same density, same band, regardless of any escalator warnings.
func classifyDensity(density float64) models.StuffingRisk {
	switch {
	case density < densityLow:
		return models.StuffingUnderOptimized
	case density < densityOptimal:
		return models.StuffingLow
	case density < densityBorder:
		return models.StuffingOptimal
	case density <= densityStuffing:
		return models.StuffingBorderline
	default:
		return models.StuffingRiskHigh
	}
}

// stuffingWarnings reports local concentration escalators: a paragraph whose
// own density exceeds the paragraph limit, and runs of consecutive sentences
// that all contain the keyword.
func stuffingWarnings(text, keyword string) []string {
	phrase := textutil.Words(keyword)
	var warnings []string

	for i, para := range textutil.Paragraphs(text) {
		paraTokens := textutil.Words(para)
		if len(paraTokens) == 0 {
			continue
		}
		count := textutil.CountPhrase(paraTokens, phrase)
		d := float64(count) / float64(len(paraTokens)) * 100
		if d > paragraphDensityLimit {
			warnings = append(warnings, fmt.Sprintf(
				"paragraph %d keyword density %.1f%% exceeds %.0f%%", i+1, d, paragraphDensityLimit))
		}
	}

	run, maxRun := 0, 0
	for _, s := range textutil.Sentences(text) {
		if textutil.CountPhrase(textutil.Words(s), phrase) > 0 {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 0
		}
	}
	if maxRun >= consecutiveSentenceLimit {
		warnings = append(warnings, fmt.Sprintf(
			"keyword appears in %d consecutive sentences", maxRun))
	}
	return warnings
}

// buildHeatmap computes the per-section keyword count, density, and a heat
// level 0-5 that mirrors the density bands.
func buildHeatmap(structure *models.Structure, keyword string) []models.HeatmapCell {
	phrase := textutil.Words(keyword)
	heatmap := make([]models.HeatmapCell, 0, len(structure.Sections))
	for _, sec := range structure.Sections {
		tokens := textutil.Words(sec.Heading + " " + sec.Content)
		count := textutil.CountPhrase(tokens, phrase)
		density := 0.0
		if len(tokens) > 0 {
			density = float64(count) / float64(len(tokens)) * 100
		}
		label := utils.Truncate(sec.Heading, sectionLabelMax)
		if label == "" {
			label = fmt.Sprintf("Section %d", sec.Index+1)
		}
		heatmap = append(heatmap, models.HeatmapCell{
			Section: label,
			Index:   sec.Index,
			Count:   count,
			Density: utils.Round2(density),
			Heat:    heatLevel(count, density),
		})
	}
	return heatmap
}

func heatLevel(count int, density float64) int {
	switch {
	case count == 0:
		return 0
	case density < densityLow:
		return 1
	case density < densityOptimal:
		return 2
	case density < densityBorder:
		return 3
	case density <= densityStuffing:
		return 4
	default:
		return 5
	}
}
