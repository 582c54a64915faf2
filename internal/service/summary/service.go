// Package summary implements the write-once summary cache policy:
// check the store, generate if absent, persist, return.
package summary

import (
	"context"
	"errors"

	"themefinder-backend/internal/domain"
	"themefinder-backend/internal/observability"
	"themefinder-backend/internal/repository"
	appErrors "themefinder-backend/pkg/errors"

	"go.uber.org/zap"
)

// Generator abstracts the text-generation backend for this policy.
type Generator interface {
	MovieSummary(ctx context.Context, title string, year int, genre string) (string, error)
}

// Result is the response shape for a summary request.
type Result struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Service orchestrates summary generation and caching. A record moves
// through NoSummary -> Generating -> Cached; there is no invalidation.
type Service struct {
	repo      repository.MovieRepository
	generator Generator
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewService creates a new summary cache service.
func NewService(repo repository.MovieRepository, generator Generator, metrics *observability.Collector, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetOrGenerate returns the movie's summary, generating and persisting it on
// first request. A cached summary short-circuits without touching the
// text-generation service. Generation failures propagate as errors and are
// never written to the store, so a later request can retry.
func (s *Service) GetOrGenerate(ctx context.Context, id int) (*Result, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.NewNotFound("Movie Not Found")
		}
		return nil, err
	}

	if movie.SummaryState() == domain.SummaryCached {
		s.count(func(c *observability.Collector) { c.SummaryCacheHits.Inc() })
		return &Result{ID: movie.ID, Title: movie.Title, Summary: movie.Summary}, nil
	}

	s.count(func(c *observability.Collector) { c.SummaryCacheMisses.Inc() })
	s.logger.Info("generating movie summary",
		zap.Int("id", movie.ID),
		zap.String("title", movie.Title),
		zap.String("state", domain.SummaryGenerating.String()),
	)

	text, err := s.generator.MovieSummary(ctx, movie.Title, movie.Year, movie.Genre)
	if err != nil {
		s.count(func(c *observability.Collector) { c.GenerationFailures.Inc() })
		return nil, err
	}

	if err := s.repo.UpdateSummary(ctx, movie.ID, text); err != nil {
		if errors.Is(err, repository.ErrSummaryExists) {
			// A concurrent request cached its summary first; serve the
			// winner so repeated calls stay consistent.
			return s.reread(ctx, movie.ID)
		}
		return nil, appErrors.Wrap(err, "failed to persist generated summary")
	}

	s.count(func(c *observability.Collector) { c.SummariesGenerated.Inc() })
	return &Result{ID: movie.ID, Title: movie.Title, Summary: text}, nil
}

func (s *Service) reread(ctx context.Context, id int) (*Result, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, "failed to re-read movie after lost summary race")
	}
	s.logger.Info("summary race lost, returning cached value", zap.Int("id", id))
	return &Result{ID: movie.ID, Title: movie.Title, Summary: movie.Summary}, nil
}

func (s *Service) count(fn func(*observability.Collector)) {
	if s.metrics != nil {
		fn(s.metrics)
	}
}
