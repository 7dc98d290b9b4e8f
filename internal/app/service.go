// Package service wires the dataset store and the comparison assembler and
// implements the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/horsepower/internal/adapters/repository"
	"github.com/okian/horsepower/internal/domain/compare"
	"github.com/okian/horsepower/internal/domain/model"
	"github.com/okian/horsepower/internal/domain/nearest"
	"github.com/okian/horsepower/internal/domain/percentile"
	"github.com/okian/horsepower/internal/domain/selector"
	"github.com/okian/horsepower/internal/domain/types"
	"github.com/okian/horsepower/pkg/logger"
	"github.com/okian/horsepower/pkg/metrics"
)

// Service answers comparison requests against a dataset loaded at Start.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	assembler *compare.Assembler

	// Configuration
	datasetPath string
	sheet       string

	// State
	started  bool
	loadedAt time.Time
	loadTime time.Duration

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath sets the CSV, TSV or XLSX file opened by Start.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithSheet selects the XLSX sheet to read. Empty means the first sheet.
func WithSheet(sheet string) Option {
	return func(s *Service) {
		s.sheet = sheet
	}
}

// WithStore supplies an already loaded store. Start will not touch the file system.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// New constructs a new Service. Nothing is loaded until Start.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset and prepares the assembler.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	start := time.Now()
	if s.store == nil {
		if s.datasetPath == "" {
			return ErrNoDataset
		}
		s.logger.Info(ctx, "loading dataset", logger.String("path", s.datasetPath))
		store, err := repository.Open(ctx, s.datasetPath, repository.WithSheet(s.sheet))
		if err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		s.store = store
	}
	s.loadTime = time.Since(start)
	s.loadedAt = time.Now()

	s.assembler = compare.New(s.store.Dataset(ctx))
	total, complete := s.store.Count(ctx), s.store.CompleteCount(ctx)
	metrics.UpdateDataset(total, complete, float64(s.loadTime.Milliseconds()))

	s.started = true
	s.logger.Info(ctx, "comparison service started",
		logger.String("source", s.store.Source()),
		logger.Int("records", total),
		logger.Int("complete", complete),
		logger.Float64("loadMs", float64(s.loadTime.Milliseconds())),
	)
	return nil
}

// Stop marks the service stopped. The dataset is kept for GetStats.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "comparison service stopped")
}

// Options lists levels, positions, metrics and modes for a selection UI.
func (s *Service) Options(ctx context.Context) types.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := types.Options{
		Metrics: model.MetricNames(),
		Modes:   types.Modes(),
	}
	for _, l := range model.Levels() {
		out.Levels = append(out.Levels, string(l))
	}
	if s.store != nil {
		out.Positions = selector.Positions(s.store.Dataset(ctx))
	} else {
		out.Positions = model.SyntheticPositions()
	}
	return out
}

// Validate reports which subject inputs are missing.
func (s *Service) Validate(_ context.Context, subject model.Subject) model.Validation {
	v := model.Validate(subject)
	metrics.RecordValidation(v.Complete())
	return v
}

// CompareLevel ranks the subject within a level or age group.
func (s *Service) CompareLevel(ctx context.Context, subject model.Subject, by compare.GroupBy, value string) (types.Comparison, error) {
	return s.run(ctx, types.ModeLevel, subject, func(a *compare.Assembler, v model.Vector) (types.Comparison, error) {
		return a.Level(v, by, value)
	})
}

// ComparePlayer compares the subject to a named dataset row.
func (s *Service) ComparePlayer(ctx context.Context, subject model.Subject, firstName, lastName string) (types.Comparison, error) {
	return s.run(ctx, types.ModePlayer, subject, func(a *compare.Assembler, v model.Vector) (types.Comparison, error) {
		return a.Player(v, firstName, lastName)
	})
}

// CompareClosest compares the subject to its nearest complete dataset row.
func (s *Service) CompareClosest(ctx context.Context, subject model.Subject) (types.Comparison, error) {
	return s.run(ctx, types.ModeClosest, subject, func(a *compare.Assembler, v model.Vector) (types.Comparison, error) {
		return a.Closest(v)
	})
}

// ComparePosition compares the subject to a position's average within a level.
func (s *Service) ComparePosition(ctx context.Context, subject model.Subject, level model.Level, position string) (types.Comparison, error) {
	return s.run(ctx, types.ModePosition, subject, func(a *compare.Assembler, v model.Vector) (types.Comparison, error) {
		return a.Position(v, level, position)
	})
}

// CompareSpread expresses the subject relative to a group's mean and spread.
func (s *Service) CompareSpread(ctx context.Context, subject model.Subject, by compare.GroupBy, value string) (types.Comparison, error) {
	return s.run(ctx, types.ModeSpread, subject, func(a *compare.Assembler, v model.Vector) (types.Comparison, error) {
		return a.Spread(v, by, value)
	})
}

type assembleFunc func(a *compare.Assembler, v model.Vector) (types.Comparison, error)

func (s *Service) run(ctx context.Context, mode types.Mode, subject model.Subject, fn assembleFunc) (types.Comparison, error) {
	s.mu.RLock()
	a, started, log := s.assembler, s.started, s.logger
	s.mu.RUnlock()

	if !started {
		metrics.RecordComparisonError(string(mode), ErrorKind(ErrNotStarted))
		return types.Comparison{}, ErrNotStarted
	}

	start := time.Now()
	if err := compare.CheckSubject(subject); err != nil {
		s.fail(ctx, log, mode, err)
		return types.Comparison{}, err
	}
	c, err := fn(a, subject.Vector())
	if err != nil {
		s.fail(ctx, log, mode, err)
		return types.Comparison{}, err
	}

	ms := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordComparison(string(mode), ms)
	log.Debug(ctx, "comparison complete",
		logger.String("mode", string(mode)),
		logger.String("label", c.Label),
		logger.Int("groupSize", c.GroupSize),
		logger.Float64("latencyMs", ms),
	)
	return c, nil
}

func (s *Service) fail(ctx context.Context, log logger.Logger, mode types.Mode, err error) {
	kind := ErrorKind(err)
	metrics.RecordComparisonError(string(mode), kind)
	log.Warn(ctx, "comparison failed",
		logger.String("mode", string(mode)),
		logger.String("kind", kind),
		logger.Error(err),
	)
}

// ErrorKind maps an error to the label used in metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, compare.ErrIncompleteSubject):
		return "incomplete_subject"
	case errors.Is(err, compare.ErrEmptyGroup):
		return "empty_group"
	case errors.Is(err, compare.ErrUnknownGroupBy):
		return "unknown_group_by"
	case errors.Is(err, selector.ErrPlayerNotFound):
		return "player_not_found"
	case errors.Is(err, nearest.ErrNoCandidates):
		return "no_candidates"
	case errors.Is(err, percentile.ErrInvalidGroup):
		return "invalid_group"
	case errors.Is(err, ErrNotStarted):
		return "not_started"
	default:
		return "internal"
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"modes":   types.Modes(),
	}
	if s.store != nil {
		ctx := context.Background()
		stats["source"] = s.store.Source()
		stats["records"] = s.store.Count(ctx)
		stats["completeRecords"] = s.store.CompleteCount(ctx)
		stats["loadMs"] = s.loadTime.Milliseconds()
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
	}
	return stats
}
