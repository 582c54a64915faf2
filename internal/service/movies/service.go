// Package movies implements the read-side query operations over the record
// store: list, point lookup, substring search, and exact-year lookup.
package movies

import (
	"context"
	"fmt"

	"themefinder-backend/internal/domain"
	"themefinder-backend/internal/repository"
	appErrors "themefinder-backend/pkg/errors"
)

// Service answers movie queries against the record store adapter.
type Service struct {
	repo repository.MovieRepository
}

// NewService creates a new movie query service.
func NewService(repo repository.MovieRepository) *Service {
	return &Service{repo: repo}
}

// List returns every movie in the store.
func (s *Service) List(ctx context.Context) ([]domain.Movie, error) {
	return s.repo.Scan(ctx, repository.Filter{})
}

// Get retrieves a single movie by id.
func (s *Service) Get(ctx context.Context, id int) (*domain.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.NewNotFound("This movie is currently not available. Please check again later.")
		}
		return nil, err
	}
	return movie, nil
}

// Search applies the filter as a conjunction of substring matches. Zero
// matches is a NotFound, never an empty success.
func (s *Service) Search(ctx context.Context, filter repository.Filter) ([]domain.Movie, error) {
	result, err := s.repo.Scan(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, appErrors.NewNotFound("No movie matched your criteria")
	}
	return result, nil
}

// ByYear returns movies released exactly in the given year.
func (s *Service) ByYear(ctx context.Context, year int) ([]domain.Movie, error) {
	result, err := s.repo.FindByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, appErrors.NewNotFound(
			fmt.Sprintf("We don't have any %d movies currently. Please check again later.", year))
	}
	return result, nil
}
