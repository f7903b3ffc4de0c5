package models

// ScrubReport records what one scrub pass removed or replaced. A report with
// every counter at zero means the input was already clean.
type ScrubReport struct {
	// UnicodeRemoved is the total count of catalogued invisible characters removed.
	UnicodeRemoved int `json:"unicode_removed"`
	// FormatControlRemoved counts removed Unicode format-control (Cf) characters
	// that were not in the explicit catalog.
	FormatControlRemoved int `json:"format_control_removed"`
	// DashesReplaced is the total count of long dashes rewritten.
	DashesReplaced int `json:"dashes_replaced"`
	// RemovedByCategory breaks UnicodeRemoved down by catalog category.
	RemovedByCategory map[string]int `json:"removed_by_category,omitempty"`
	// ReplacedByRule breaks DashesReplaced down by replacement rule
	// (comma, semicolon, period, dropped).
	ReplacedByRule map[string]int `json:"replaced_by_rule,omitempty"`
}

// Clean reports whether the scrub pass changed nothing.
func (r *ScrubReport) Clean() bool {
	return r.UnicodeRemoved == 0 && r.FormatControlRemoved == 0 && r.DashesReplaced == 0
}

// Merge adds the counters of other into r. Used when a run rescrubs revised text.
func (r *ScrubReport) Merge(other *ScrubReport) {
	r.UnicodeRemoved += other.UnicodeRemoved
	r.FormatControlRemoved += other.FormatControlRemoved
	r.DashesReplaced += other.DashesReplaced
	for k, v := range other.RemovedByCategory {
		if r.RemovedByCategory == nil {
			r.RemovedByCategory = make(map[string]int)
		}
		r.RemovedByCategory[k] += v
	}
	for k, v := range other.ReplacedByRule {
		if r.ReplacedByRule == nil {
			r.ReplacedByRule = make(map[string]int)
		}
		r.ReplacedByRule[k] += v
	}
}

// Distribution summarizes a list of integer measurements.
type Distribution struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// MetricBundle holds all readability formula outputs for one scoring pass.
// Read-only after creation.
type MetricBundle struct {
	WordCount     int `json:"word_count"`
	SentenceCount int `json:"sentence_count"`
	SyllableCount int `json:"syllable_count"`
	LetterCount   int `json:"letter_count"`

	ReadingEase float64 `json:"reading_ease"`
	GradeLevel  float64 `json:"grade_level"`
	FogIndex    float64 `json:"fog_index"`
	SMOGIndex   float64 `json:"smog_index"`
	ColemanLiau float64 `json:"coleman_liau_index"`
	ARI         float64 `json:"automated_readability_index"`

	PassiveRatio     float64 `json:"passive_ratio"`
	ComplexWordRatio float64 `json:"complex_word_ratio"`

	SentenceLengths    Distribution `json:"sentence_lengths"`
	ParagraphSentences Distribution `json:"paragraph_sentences"`
	LongSentences      int          `json:"long_sentences"`
	VeryLongSentences  int          `json:"very_long_sentences"`

	// OverallScore maps reading ease and grade level onto the target bands
	// (ease 60-70, grade 8-10) as a 0-100 score.
	OverallScore int `json:"overall_score"`
}

// StuffingRisk classifies keyword density into the documented bands.
type StuffingRisk string

const (
	StuffingUnderOptimized StuffingRisk = "under_optimized" // < 0.5%
	StuffingLow            StuffingRisk = "low"             // [0.5%, 1.0%)
	StuffingOptimal        StuffingRisk = "optimal"         // [1.0%, 2.0%)
	StuffingBorderline     StuffingRisk = "borderline"      // [2.0%, 3.0%]
	StuffingRiskHigh       StuffingRisk = "stuffing_risk"   // > 3.0%
)

// Placements records keyword presence at each critical placement.
type Placements struct {
	Title         bool `json:"title"`
	First100Words bool `json:"first_100_words"`
	Heading       bool `json:"heading"`
	Closing       bool `json:"closing"`
}

// TermStats is the per-keyword analysis result.
type TermStats struct {
	Keyword     string     `json:"keyword"`
	Occurrences int        `json:"occurrences"`
	Density     float64    `json:"density"`
	Placements  Placements `json:"critical_placements"`
}

// Cluster is a group of co-occurring terms found by section-level clustering.
type Cluster struct {
	Label  string   `json:"label"`
	Terms  []string `json:"terms"`
	Weight float64  `json:"weight"`
}

// HeatmapCell is the primary-keyword occurrence count for one section.
type HeatmapCell struct {
	Section string  `json:"section"`
	Index   int     `json:"index"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
	Heat    int     `json:"heat"` // 0-5
}

// KeywordProfile is the full keyword analysis for one document.
// CriticalPlacements mirrors Primary.Placements at the top level, where
// downstream consumers expect it; per-term detail stays on each TermStats.
type KeywordProfile struct {
	WordCount          int        `json:"word_count"`
	Primary            TermStats  `json:"primary"`
	CriticalPlacements Placements `json:"critical_placements"`
	Secondary          []TermStats        `json:"secondary,omitempty"`
	DensityByTerm      map[string]float64 `json:"density_by_term"`
	StuffingRisk       StuffingRisk       `json:"stuffing_risk"`
	StuffingWarnings   []string           `json:"stuffing_warnings,omitempty"`
	Clusters           []Cluster          `json:"clusters"`
	Heatmap            []HeatmapCell      `json:"distribution_heatmap"`
}

// Severity classifies an issue's impact on publish readiness.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Issue is one classified finding. Rule is a stable identifier keyed by the
// check that produced it; Value carries the measured value that triggered it.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Value    string   `json:"value,omitempty"`
	// Penalty is the sub-score loss this issue accounts for, in points.
	Penalty float64 `json:"penalty,omitempty"`
}

// SEOResult is the rule-engine rating over structural and meta conventions.
type SEOResult struct {
	CategoryScores map[string]int `json:"category_scores"`
	Issues         []Issue        `json:"issues"`
	OverallScore   float64        `json:"overall_score"`
	PublishReady   bool           `json:"publish_ready"`
}

// CriticalCount returns the number of critical issues.
func (r *SEOResult) CriticalCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// Dimension names of the composite score.
const (
	DimVoice       = "voice"
	DimSpecificity = "specificity"
	DimStructure   = "structure_balance"
	DimSEO         = "seo"
	DimReadability = "readability"
)

// DimensionWeights are the fixed composite weights. They sum to 1.
var DimensionWeights = map[string]float64{
	DimVoice:       0.30,
	DimSpecificity: 0.25,
	DimStructure:   0.20,
	DimSEO:         0.15,
	DimReadability: 0.10,
}

// PassThreshold is the minimum weighted total that passes the quality gate.
const PassThreshold = 70

// CompositeResult is the quality-gate object for one scoring attempt.
type CompositeResult struct {
	DimensionScores   map[string]int     `json:"dimension_scores"`
	IssuesByDimension map[string][]Issue `json:"issues_by_dimension"`
	// TopIssues lists issues ordered by weighted point loss, largest first.
	TopIssues     []Issue `json:"top_issues"`
	WeightedTotal int     `json:"weighted_total"`
	Pass          bool    `json:"pass"`
}

// LowestDimension returns the dimension with the largest weighted point
// loss, i.e. where a revision buys the most. Ties break by the fixed
// dimension order so the choice is deterministic.
func (c *CompositeResult) LowestDimension() string {
	lowest := ""
	var lowestLoss float64 = -1
	for _, dim := range []string{DimVoice, DimSpecificity, DimStructure, DimSEO, DimReadability} {
		loss := DimensionWeights[dim] * float64(100-c.DimensionScores[dim])
		if loss > lowestLoss {
			lowestLoss = loss
			lowest = dim
		}
	}
	return lowest
}
