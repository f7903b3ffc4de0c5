// Package readability computes formula-based readability metrics from
// scrubbed text. Every figure is a closed-form function of the same sentence,
// word, and syllable counts, so repeated analysis of identical text is
// byte-identical.
package readability

import (
	"math"
	"regexp"
	"unicode"

	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/textutil"
	"github.com/hyperjump/kousei/pkg/utils"
)

// Target bands for the overall 0-100 score.
const (
	easeTargetMin  = 60.0
	easeTargetMax  = 70.0
	gradeTargetMin = 8.0
	gradeTargetMax = 10.0
)

// complexSyllables is the cutoff above which a word counts as complex.
const complexSyllables = 3

// Sentence-length flags, in words.
const (
	longSentenceWords     = 25
	veryLongSentenceWords = 35
)

// passiveRe matches an auxiliary verb followed by a past-participle shape.
var passiveRe = regexp.MustCompile(`(?i)\b(?:is|are|was|were|be|been|being|am)\s+\w+(?:ed|en)\b`)

// Analyze computes the full metric bundle for text. Markup is stripped first
// so formulas see prose only. Empty input returns a bundle of zeros.
func Analyze(text string) *models.MetricBundle {
	prose := textutil.StripMarkdown(text)
	bundle := &models.MetricBundle{}
	if prose == "" {
		return bundle
	}

	sentences := textutil.Sentences(prose)
	words := textutil.Words(prose)
	if len(words) == 0 {
		return bundle
	}
	if len(sentences) == 0 {
		sentences = []string{prose}
	}

	syllables := 0
	letters := 0
	complexWords := 0
	polysyllables := 0
	for _, w := range words {
		s := Syllables(w)
		syllables += s
		if s >= complexSyllables {
			complexWords++
			polysyllables++
		}
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
			}
		}
	}

	nWords := float64(len(words))
	nSentences := float64(len(sentences))
	nSyllables := float64(syllables)

	bundle.WordCount = len(words)
	bundle.SentenceCount = len(sentences)
	bundle.SyllableCount = syllables
	bundle.LetterCount = letters

	wps := nWords / nSentences // words per sentence
	spw := nSyllables / nWords // syllables per word
	lpw := float64(letters) / nWords

	bundle.ReadingEase = utils.Round1(206.835 - 1.015*wps - 84.6*spw)
	bundle.GradeLevel = utils.Round1(0.39*wps + 11.8*spw - 15.59)
	bundle.FogIndex = utils.Round1(0.4 * (wps + 100*float64(complexWords)/nWords))
	bundle.SMOGIndex = utils.Round1(1.0430*math.Sqrt(float64(polysyllables)*30/nSentences) + 3.1291)
	bundle.ColemanLiau = utils.Round1(0.0588*(lpw*100) - 0.296*(nSentences/nWords*100) - 15.8)
	bundle.ARI = utils.Round1(4.71*lpw + 0.5*wps - 21.43)

	bundle.ComplexWordRatio = utils.Round1(float64(complexWords) / nWords * 100)
	bundle.PassiveRatio = utils.Round1(passiveRatio(sentences) * 100)

	fillDistributions(bundle, prose, sentences)
	bundle.OverallScore = overallScore(bundle)
	return bundle
}

// passiveRatio is the share of sentences matching the auxiliary +
// past-participle pattern set.
func passiveRatio(sentences []string) float64 {
	passive := 0
	for _, s := range sentences {
		if passiveRe.MatchString(s) {
			passive++
		}
	}
	return float64(passive) / float64(len(sentences))
}

func fillDistributions(bundle *models.MetricBundle, prose string, sentences []string) {
	lengths := make([]int, 0, len(sentences))
	for _, s := range sentences {
		n := textutil.WordCount(s)
		lengths = append(lengths, n)
		if n > veryLongSentenceWords {
			bundle.VeryLongSentences++
		} else if n > longSentenceWords {
			bundle.LongSentences++
		}
	}
	bundle.SentenceLengths = distribution(lengths)

	var perParagraph []int
	for _, p := range textutil.Paragraphs(prose) {
		if n := len(textutil.Sentences(p)); n > 0 {
			perParagraph = append(perParagraph, n)
		}
	}
	bundle.ParagraphSentences = distribution(perParagraph)
}

func distribution(values []int) models.Distribution {
	if len(values) == 0 {
		return models.Distribution{}
	}
	d := models.Distribution{Min: values[0], Max: values[0]}
	for _, v := range values {
		if v < d.Min {
			d.Min = v
		}
		if v > d.Max {
			d.Max = v
		}
	}
	d.Mean = utils.Round1(utils.Mean(values))
	d.StdDev = utils.Round1(utils.StdDev(values))
	return d
}

// overallScore maps reading ease and grade level onto the target bands with
// a linear penalty outside each band, plus smaller deductions for structural
// drag (long sentences, heavy passive voice, complex-word share).
func overallScore(b *models.MetricBundle) int {
	score := 100.0

	score -= bandPenalty(b.ReadingEase, easeTargetMin, easeTargetMax, 0.75, 35)
	score -= bandPenalty(b.GradeLevel, gradeTargetMin, gradeTargetMax, 4, 30)

	if avg := b.SentenceLengths.Mean; avg > 20 {
		score -= math.Min(15, avg-20)
	}
	if b.VeryLongSentences > 0 {
		score -= math.Min(10, float64(b.VeryLongSentences)*3)
	}
	if b.PassiveRatio > 20 {
		score -= math.Min(10, (b.PassiveRatio-20)*0.5)
	}
	if b.ComplexWordRatio > 15 {
		score -= math.Min(10, (b.ComplexWordRatio-15)*0.5)
	}

	return int(math.Round(utils.Clamp(score, 0, 100)))
}

// bandPenalty returns a linear penalty proportional to the distance from the
// inclusive [min, max] band, capped at limit points.
func bandPenalty(v, min, max, perUnit, limit float64) float64 {
	var dist float64
	switch {
	case v < min:
		dist = min - v
	case v > max:
		dist = v - max
	default:
		return 0
	}
	return math.Min(limit, dist*perUnit)
}
