// Package pipeline sequences the quality gate: scrub, analyze, score, then
// accept, revise, or escalate. The pipeline performs no text analysis of its
// own; it only drives the analyzers and enforces the bounded-retry rule.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kousei/internal/keyword"
	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/rater"
	"github.com/hyperjump/kousei/internal/readability"
	"github.com/hyperjump/kousei/internal/scoring"
	"github.com/hyperjump/kousei/internal/scrub"
	"github.com/hyperjump/kousei/internal/textutil"
)

// Input validation errors. Returned before any analysis runs.
var (
	ErrEmptyDocument    = errors.New("pipeline: document text is empty")
	ErrNoPrimaryKeyword = errors.New("pipeline: primary keyword is required")
	ErrInvalidTargets   = errors.New("pipeline: invalid target word-count band")
)

// Gate holds the retry and threshold settings of the state machine.
type Gate struct {
	// PassThreshold is the weighted total a scoring attempt must reach.
	PassThreshold int `yaml:"pass_threshold"`
	// MaxRevisions bounds revise cycles per run. With 2, a run scores at
	// most three times.
	MaxRevisions int `yaml:"max_revisions"`
	// MaxFixesPerRevision bounds the built-in reviser's edits per cycle.
	MaxFixesPerRevision int `yaml:"max_fixes_per_revision"`
}

// Config collects everything one pipeline instance needs.
type Config struct {
	Gate    Gate           `yaml:"gate"`
	Targets rater.Targets  `yaml:"targets"`
	Keyword keyword.Config `yaml:"keyword"`
	// PageBands are the default word-count bands per page type, used when
	// the input does not carry its own band.
	PageBands map[models.PageType]models.WordCountBand `yaml:"page_bands"`
}

// DefaultConfig returns the standard gate settings.
func DefaultConfig() Config {
	return Config{
		Gate: Gate{
			PassThreshold:       models.PassThreshold,
			MaxRevisions:        2,
			MaxFixesPerRevision: 3,
		},
		Targets: rater.DefaultTargets(),
		Keyword: keyword.DefaultConfig(),
		PageBands: map[models.PageType]models.WordCountBand{
			models.PageArticle: {Min: 2000, Max: 3000},
			models.PageLanding: {Min: 600, Max: 1200},
		},
	}
}

// Pipeline runs the quality gate over one document at a time. Instances
// share no mutable state; separate documents may run concurrently on
// separate calls.
type Pipeline struct {
	cfg     Config
	scorer  *scoring.Scorer
	reviser Reviser
	logger  *zap.Logger
}

// New builds a pipeline. A nil reviser gets the built-in AutoReviser; a nil
// scorer gets the default rule catalogs.
func New(cfg Config, scorer *scoring.Scorer, reviser Reviser, logger *zap.Logger) *Pipeline {
	if scorer == nil {
		scorer = scoring.DefaultScorer()
	}
	if reviser == nil {
		reviser = NewAutoReviser(cfg.Gate.MaxFixesPerRevision)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, scorer: scorer, reviser: reviser, logger: logger}
}

// Run drives one document through the gate. The returned record is complete
// for both terminal states; err is non-nil only for invalid input or a
// cancelled context, never for an escalated run.
func (p *Pipeline) Run(ctx context.Context, input *models.DocumentInput) (*models.RunRecord, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	doc := &models.Document{
		Text:              input.Text,
		PrimaryKeyword:    input.PrimaryKeyword,
		SecondaryKeywords: input.SecondaryKeywords,
		MetaTitle:         input.MetaTitle,
		MetaDescription:   input.MetaDescription,
	}
	targets := p.resolveTargets(input)

	record := &models.RunRecord{
		RunID:       uuid.NewString(),
		GateState:   models.GateDraft,
		ScrubReport: &models.ScrubReport{},
	}
	log := p.logger.With(zap.String("run_id", record.RunID))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cleaned, report := scrub.Scrub(doc.Text)
		doc.Text = cleaned
		record.ScrubReport.Merge(report)
		record.GateState = models.GateScrubbed

		structure := textutil.ExtractStructure(doc.Text)
		bundle := readability.Analyze(doc.Text)
		profile := keyword.Analyze(doc.Text, structure, doc.PrimaryKeyword, doc.SecondaryKeywords, p.cfg.Keyword)
		seo := rater.Rate(doc, structure, bundle, profile, targets)
		composite := p.scorer.Score(doc, bundle, profile, seo)

		record.MetricBundle = bundle
		record.KeywordProfile = profile
		record.SEOResult = seo
		record.CompositeResult = composite
		record.History = append(record.History, composite)
		record.Attempts++
		record.GateState = models.GateScored

		log.Debug("scoring attempt finished",
			zap.Int("attempt", record.Attempts),
			zap.Int("weighted_total", composite.WeightedTotal))

		if composite.WeightedTotal >= p.cfg.Gate.PassThreshold {
			record.GateState = models.GateAccepted
			break
		}
		if record.Revisions >= p.cfg.Gate.MaxRevisions {
			record.GateState = models.GateEscalated
			record.Escalation = escalationNotes(record.History)
			break
		}

		record.GateState = models.GateRevising
		revised, err := p.reviser.Revise(doc, composite)
		if err != nil {
			log.Warn("reviser failed, escalating", zap.Error(err))
			record.GateState = models.GateEscalated
			record.Escalation = escalationNotes(record.History)
			break
		}
		record.Revisions++
		doc = revised
	}

	record.Document = doc
	log.Info("run finished",
		zap.String("state", string(record.GateState)),
		zap.Int("attempts", record.Attempts),
		zap.Int("score", record.CompositeResult.WeightedTotal))
	return record, nil
}

func validate(input *models.DocumentInput) error {
	if strings.TrimSpace(input.Text) == "" {
		return ErrEmptyDocument
	}
	if strings.TrimSpace(input.PrimaryKeyword) == "" {
		return ErrNoPrimaryKeyword
	}
	if !input.TargetWordCount.Valid() {
		return ErrInvalidTargets
	}
	return nil
}

// resolveTargets applies the input's word-count band, or the page-type
// default, over the base targets.
func (p *Pipeline) resolveTargets(input *models.DocumentInput) rater.Targets {
	targets := p.cfg.Targets

	band := input.TargetWordCount
	if band.IsZero() {
		if pb, ok := p.cfg.PageBands[input.PageType]; ok {
			band = pb
		}
	}
	if !band.IsZero() {
		targets.WordCount = band
		targets.OptimalWords = (band.Min + band.Max) / 2
	}
	return targets
}

// escalationNotes assembles the review-queue record from the full attempt
// history: every snapshot, the deltas between consecutive weighted totals,
// and the final attempt's top issues.
func escalationNotes(history []*models.CompositeResult) *models.EscalationNotes {
	notes := &models.EscalationNotes{Attempts: history}
	for i := 1; i < len(history); i++ {
		notes.ScoreDeltas = append(notes.ScoreDeltas, history[i].WeightedTotal-history[i-1].WeightedTotal)
	}
	notes.TopIssues = history[len(history)-1].TopIssues
	return notes
}
