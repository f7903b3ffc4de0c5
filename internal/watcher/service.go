package watcher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kousei/internal/config"
	"github.com/hyperjump/kousei/internal/extract"
	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/pipeline"
)

// Service scores watched draft files. Every settled save is extracted and
// run through the quality gate with the keyword settings from the watch
// configuration, since file events carry no keyword of their own.
type Service struct {
	watcher   *Watcher
	pipe      *pipeline.Pipeline
	extractor *extract.Extractor
	cfg       config.WatchConfig
	onRecord  func(path string, record *models.RunRecord)
	logger    *zap.Logger
}

// NewService wires a watcher to the pipeline. onRecord receives every
// finished run, escalated ones included.
func NewService(pipe *pipeline.Pipeline, cfg config.WatchConfig, onRecord func(path string, record *models.RunRecord), logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		pipe:      pipe,
		extractor: extract.NewExtractor(),
		cfg:       cfg,
		onRecord:  onRecord,
		logger:    logger,
	}
	s.watcher = NewWatcher(cfg.Directories, cfg.Extensions, s.score,
		WithDebounce(time.Duration(cfg.DebounceMillis)*time.Millisecond),
		WithLogger(logger))
	return s
}

// Start begins watching and scoring. It returns immediately; runs happen on
// the watcher's callbacks until ctx is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	return s.watcher.Start(ctx)
}

// Stop stops the underlying watcher.
func (s *Service) Stop() {
	s.watcher.Stop()
}

func (s *Service) score(path string) {
	text, err := s.extractor.Extract(path)
	if err != nil {
		s.logger.Warn("extraction failed", zap.String("path", path), zap.Error(err))
		return
	}
	record, err := s.pipe.Run(context.Background(), &models.DocumentInput{
		Text:              text,
		PrimaryKeyword:    s.cfg.PrimaryKeyword,
		SecondaryKeywords: s.cfg.SecondaryKeywords,
		PageType:          s.cfg.PageType,
	})
	if err != nil {
		s.logger.Warn("scoring failed", zap.String("path", path), zap.Error(err))
		return
	}
	s.logger.Info("draft scored",
		zap.String("path", path),
		zap.String("state", string(record.GateState)),
		zap.Int("score", record.CompositeResult.WeightedTotal))
	if s.onRecord != nil {
		s.onRecord(path, record)
	}
}
