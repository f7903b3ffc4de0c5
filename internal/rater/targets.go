package rater

import "github.com/hyperjump/kousei/internal/models"

// Category names of the rating. Weights must cover exactly these keys.
const (
	CategoryContent     = "content"
	CategoryKeywords    = "keywords"
	CategoryMeta        = "meta"
	CategoryStructure   = "structure"
	CategoryLinks       = "links"
	CategoryReadability = "readability"
)

// Targets are the configured ranges every check compares against. Zero
// values are not usable; start from DefaultTargets and override.
type Targets struct {
	// WordCount is the acceptable length band for this page type.
	WordCount models.WordCountBand `yaml:"word_count"`
	// OptimalWords is the length below which a within-band document still
	// draws a could-be-longer warning.
	OptimalWords int `yaml:"optimal_words"`

	DensityMin float64 `yaml:"density_min"`
	DensityMax float64 `yaml:"density_max"`

	MetaTitleMin int `yaml:"meta_title_min"`
	MetaTitleMax int `yaml:"meta_title_max"`
	MetaDescMin  int `yaml:"meta_desc_min"`
	MetaDescMax  int `yaml:"meta_desc_max"`

	MinH2          int     `yaml:"min_h2"`
	OptimalH2      int     `yaml:"optimal_h2"`
	H2KeywordRatio float64 `yaml:"h2_keyword_ratio"`

	MinInternalLinks     int `yaml:"min_internal_links"`
	OptimalInternalLinks int `yaml:"optimal_internal_links"`
	MinExternalLinks     int `yaml:"min_external_links"`
	OptimalExternalLinks int `yaml:"optimal_external_links"`

	MaxSentenceWords int `yaml:"max_sentence_words"`

	// Weights are the per-category shares of the overall score. They are
	// expected to sum to 1.
	Weights map[string]float64 `yaml:"weights"`
	// PublishThreshold is the overall score a document must reach before it
	// can be publish-ready (critical issues still block regardless).
	PublishThreshold float64 `yaml:"publish_threshold"`
}

// DefaultTargets returns the standard article guidelines.
func DefaultTargets() Targets {
	return Targets{
		WordCount:    models.WordCountBand{Min: 2000, Max: 3000},
		OptimalWords: 2500,

		DensityMin: 1.0,
		DensityMax: 2.0,

		MetaTitleMin: 50,
		MetaTitleMax: 60,
		MetaDescMin:  150,
		MetaDescMax:  160,

		MinH2:          4,
		OptimalH2:      6,
		H2KeywordRatio: 0.33,

		MinInternalLinks:     3,
		OptimalInternalLinks: 5,
		MinExternalLinks:     2,
		OptimalExternalLinks: 3,

		MaxSentenceWords: 25,

		Weights: map[string]float64{
			CategoryContent:     0.20,
			CategoryKeywords:    0.25,
			CategoryMeta:        0.15,
			CategoryStructure:   0.15,
			CategoryLinks:       0.15,
			CategoryReadability: 0.10,
		},
		PublishThreshold: 80,
	}
}
