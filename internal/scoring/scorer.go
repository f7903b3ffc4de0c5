package scoring

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/textutil"
	"github.com/hyperjump/kousei/pkg/utils"
)

// Voice and specificity densities are measured per 1000 words; contractions
// per 100 words.
const (
	fillerDensityLimit   = 5.0
	convDensityFloor     = 3.0
	contractionFloor     = 1.0
	passiveRatioLimit    = 20.0
	vagueDensityLimit    = 15.0
	specificDensityFloor = 2.0
	numberDensityFloor   = 3.0

	longParagraphSentences = 4
	rhythmWindow           = 5
	rhythmFloor            = 60
)

var (
	contractionRe = regexp.MustCompile(`['’](?:t|s|re|ve|ll|d|m)\b`)
	numberRe      = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?\b`)
)

// Scorer computes the composite quality score. It is safe for concurrent use
// once constructed; Score is a pure function of its arguments.
type Scorer struct {
	rules *RuleSet
}

// NewScorer builds a scorer over a compiled rule set.
func NewScorer(rules *RuleSet) *Scorer {
	return &Scorer{rules: rules}
}

// DefaultScorer builds a scorer over the built-in catalogs.
func DefaultScorer() *Scorer {
	rs, err := DefaultCatalog().Compile()
	if err != nil {
		panic(err) // defaults must compile
	}
	return NewScorer(rs)
}

// Score combines the analyzer outputs into the gate decision. Identical
// inputs always produce an identical result.
func (s *Scorer) Score(doc *models.Document, bundle *models.MetricBundle, profile *models.KeywordProfile, seo *models.SEOResult) *models.CompositeResult {
	plain := textutil.StripMarkdown(doc.Text)
	words := textutil.WordCount(plain)
	if words == 0 {
		words = 1
	}

	voiceScore, voiceIssues := s.scoreVoice(plain, words, bundle.PassiveRatio)
	specScore, specIssues := s.scoreSpecificity(plain, words)
	structScore, structIssues := scoreStructureBalance(doc.Text)
	seoScore := int(math.Round(seo.OverallScore))
	readScore, readIssues := scoreReadabilityIssues(doc.Text, plain, bundle)

	result := &models.CompositeResult{
		DimensionScores: map[string]int{
			models.DimVoice:       voiceScore,
			models.DimSpecificity: specScore,
			models.DimStructure:   structScore,
			models.DimSEO:         seoScore,
			models.DimReadability: readScore,
		},
		IssuesByDimension: map[string][]models.Issue{
			models.DimVoice:       voiceIssues,
			models.DimSpecificity: specIssues,
			models.DimStructure:   structIssues,
			models.DimSEO:         seo.Issues,
			models.DimReadability: readIssues,
		},
	}

	total := 0.0
	for dim, score := range result.DimensionScores {
		total += models.DimensionWeights[dim] * float64(score)
	}
	result.WeightedTotal = int(math.Round(total))
	result.Pass = result.WeightedTotal >= models.PassThreshold
	result.TopIssues = topIssues(result, 5)
	return result
}

// topIssues orders every dimension's issues by weighted point loss of the
// dimension that produced them, largest first. The walk over dimensions is in
// fixed order and the sort is stable, so ties keep a deterministic order.
func topIssues(result *models.CompositeResult, n int) []models.Issue {
	type ranked struct {
		issue  models.Issue
		impact float64
	}
	var all []ranked
	for _, dim := range []string{models.DimVoice, models.DimSpecificity, models.DimStructure, models.DimSEO, models.DimReadability} {
		impact := models.DimensionWeights[dim] * float64(100-result.DimensionScores[dim])
		for _, is := range result.IssuesByDimension[dim] {
			all = append(all, ranked{issue: is, impact: impact})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].impact > all[j].impact })
	if len(all) > n {
		all = all[:n]
	}
	top := make([]models.Issue, len(all))
	for i, r := range all {
		top[i] = r.issue
	}
	return top
}

func (s *Scorer) scoreVoice(plain string, words int, passiveRatio float64) (int, []models.Issue) {
	var issues []models.Issue
	score := 100.0

	fillerCount, fillerIDs := tally(s.rules.filler, plain)
	fillerDensity := fillerCount / float64(words) * 1000
	if fillerDensity > fillerDensityLimit {
		penalty := math.Min(30, (fillerDensity-fillerDensityLimit)*3)
		score -= penalty
		issues = append(issues, models.Issue{
			Rule:     "voice.filler_phrases",
			Severity: models.SeverityWarning,
			Message:  "generic filler phrases weaken the voice; remove or rephrase them",
			Value:    strings.Join(firstN(fillerIDs, 3), ", "),
			Penalty:  penalty,
		})
	}

	if passiveRatio > passiveRatioLimit {
		penalty := math.Min(15, (passiveRatio-passiveRatioLimit)*0.75)
		score -= penalty
		issues = append(issues, models.Issue{
			Rule:     "voice.passive",
			Severity: models.SeverityWarning,
			Message:  "heavy passive voice; convert to active constructions",
			Value:    fmt.Sprintf("%.1f%% of sentences", passiveRatio),
			Penalty:  penalty,
		})
	}

	convCount, _ := tally(s.rules.conversational, plain)
	convDensity := convCount / float64(words) * 1000
	if convDensity > convDensityFloor {
		score += math.Min(15, (convDensity-convDensityFloor)*2)
	}

	contractions := len(contractionRe.FindAllStringIndex(plain, -1))
	contractionDensity := float64(contractions) / float64(words) * 100
	if contractionDensity < contractionFloor {
		score -= 10
		issues = append(issues, models.Issue{
			Rule:     "voice.no_contractions",
			Severity: models.SeveritySuggestion,
			Message:  "prose reads formal; contractions loosen it up",
			Value:    fmt.Sprintf("%.1f per 100 words", contractionDensity),
			Penalty:  10,
		})
	}

	return int(math.Round(utils.Clamp(score, 0, 100))), issues
}

func (s *Scorer) scoreSpecificity(plain string, words int) (int, []models.Issue) {
	var issues []models.Issue
	score := 70.0 // baseline; concrete evidence earns the rest

	vagueCount, vagueIDs := tally(s.rules.vague, plain)
	vagueDensity := vagueCount / float64(words) * 1000
	if vagueDensity > vagueDensityLimit {
		penalty := math.Min(25, (vagueDensity-vagueDensityLimit)*1.5)
		score -= penalty
		issues = append(issues, models.Issue{
			Rule:     "specificity.vague_words",
			Severity: models.SeverityWarning,
			Message:  "vague quantifiers dominate; replace them with concrete figures",
			Value:    strings.Join(firstN(vagueIDs, 3), ", "),
			Penalty:  penalty,
		})
	}

	specificCount, _ := tally(s.rules.specificity, plain)
	specificDensity := specificCount / float64(words) * 1000
	if specificDensity > specificDensityFloor {
		score += math.Min(30, specificDensity*5)
	}

	numbers := len(numberRe.FindAllStringIndex(plain, -1))
	numberDensity := float64(numbers) / float64(words) * 1000
	if numberDensity < numberDensityFloor {
		penalty := math.Min(15, (numberDensityFloor-numberDensity)*5)
		score -= penalty
		issues = append(issues, models.Issue{
			Rule:     "specificity.no_figures",
			Severity: models.SeverityWarning,
			Message:  "lacks numbers and data points; add percentages, amounts, or dates",
			Value:    fmt.Sprintf("%.1f per 1000 words", numberDensity),
			Penalty:  penalty,
		})
	}

	return int(math.Round(utils.Clamp(score, 0, 100))), issues
}

// scoreStructureBalance rates the prose share of the document's characters.
// Full credit between 50% and 65% prose, a graded slope out to the 40%/70%
// edges, and a steeper slope beyond them.
func scoreStructureBalance(text string) (int, []models.Issue) {
	var listChars, tableChars, headingChars, totalChars int
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n := len(line)
		totalChars += n
		switch {
		case textutil.IsListLine(line):
			listChars += n
		case textutil.IsTableLine(line):
			tableChars += n
		case strings.HasPrefix(line, "#"):
			headingChars += n
		}
	}

	denom := totalChars - headingChars
	if denom < 1 {
		denom = 1
	}
	proseRatio := float64(totalChars-headingChars-listChars-tableChars) / float64(denom)

	var score float64
	switch {
	case proseRatio >= 0.50 && proseRatio <= 0.65:
		score = 100
	case proseRatio >= 0.40 && proseRatio < 0.50:
		score = 100 - (0.50-proseRatio)*150
	case proseRatio > 0.65 && proseRatio <= 0.70:
		score = 100 - (proseRatio-0.65)*150
	case proseRatio < 0.40:
		score = 85 - (0.40-proseRatio)*300
	default:
		score = 92.5 - (proseRatio-0.70)*300
	}
	score = utils.Clamp(score, 0, 100)

	var issues []models.Issue
	if proseRatio < 0.50 {
		issues = append(issues, models.Issue{
			Rule:     "structure.too_structured",
			Severity: models.SeverityWarning,
			Message:  "too much of the document is lists or tables; convert some to prose",
			Value:    fmt.Sprintf("%.0f%% prose", proseRatio*100),
			Penalty:  100 - score,
		})
	} else if proseRatio > 0.65 {
		issues = append(issues, models.Issue{
			Rule:     "structure.too_prose_heavy",
			Severity: models.SeverityWarning,
			Message:  "long unbroken prose; add lists or tables for scannability",
			Value:    fmt.Sprintf("%.0f%% prose", proseRatio*100),
			Penalty:  100 - score,
		})
	}
	return int(math.Round(score)), issues
}

// scoreReadabilityIssues feeds the analyzer's overall score through and
// attaches rhythm and paragraph-length findings as informational issues.
func scoreReadabilityIssues(raw, plain string, bundle *models.MetricBundle) (int, []models.Issue) {
	var issues []models.Issue

	longCount, longest := longParagraphs(raw)
	if longCount > 0 {
		issues = append(issues, models.Issue{
			Rule:     "readability.long_paragraphs",
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("paragraphs exceed %d sentences; break them up", longParagraphSentences),
			Value:    fmt.Sprintf("%d paragraphs, longest %d sentences", longCount, longest),
		})
	}

	rhythm, monotonous := sentenceRhythm(plain)
	if rhythm < rhythmFloor {
		issues = append(issues, models.Issue{
			Rule:     "readability.monotonous_rhythm",
			Severity: models.SeveritySuggestion,
			Message:  "sentence lengths are uniform; mix short and long sentences",
			Value:    fmt.Sprintf("rhythm %d, %d uniform sections", rhythm, monotonous),
		})
	}

	return bundle.OverallScore, issues
}

// longParagraphs counts prose paragraphs with more sentences than the limit.
// Heading, list, and table paragraphs are skipped.
func longParagraphs(text string) (count, longest int) {
	for _, para := range textutil.Paragraphs(text) {
		first := strings.TrimSpace(para)
		if strings.HasPrefix(first, "#") || textutil.IsListLine(first) || textutil.IsTableLine(first) {
			continue
		}
		n := 0
		for _, s := range textutil.Sentences(para) {
			if len(s) > 10 {
				n++
			}
		}
		if n > longParagraphSentences {
			count++
			if n > longest {
				longest = n
			}
		}
	}
	return count, longest
}

// sentenceRhythm scores sentence-length variety 0-100. Documents under ten
// sentences are too short to judge and get a neutral score.
func sentenceRhythm(plain string) (score, monotonous int) {
	var lengths []int
	for _, s := range textutil.Sentences(plain) {
		if len(s) > 5 {
			lengths = append(lengths, textutil.WordCount(s))
		}
	}
	if len(lengths) < 10 {
		return 70, 0
	}

	for i := 0; i+rhythmWindow <= len(lengths); i++ {
		window := lengths[i : i+rhythmWindow]
		sum := 0
		for _, n := range window {
			sum += n
		}
		avg := float64(sum) / float64(rhythmWindow)
		uniform := true
		for _, n := range window {
			if math.Abs(float64(n)-avg) > 5 {
				uniform = false
				break
			}
		}
		if uniform {
			monotonous++
		}
	}

	sd := utils.StdDev(lengths)
	var s float64
	switch {
	case sd < 5:
		s = 40 + sd*6
	case sd <= 15:
		s = 100 - math.Abs(10-sd)*2
	default:
		s = 80
	}
	s -= float64(monotonous) * 3
	return int(math.Round(utils.Clamp(s, 0, 100))), monotonous
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
