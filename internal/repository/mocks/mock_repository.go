// Package mocks provides an in-memory repository double for unit tests.
package mocks

import (
	"context"
	"sort"
	"sync"

	"themefinder-backend/internal/domain"
	"themefinder-backend/internal/repository"
	appErrors "themefinder-backend/pkg/errors"
)

// MockMovieRepository is an in-memory implementation of MovieRepository with
// per-operation error injection and call counting.
type MockMovieRepository struct {
	mu     sync.Mutex
	movies map[int]domain.Movie
	errs   map[string]error
	calls  map[string]int
}

// NewMockMovieRepository creates an empty mock repository.
func NewMockMovieRepository() *MockMovieRepository {
	return &MockMovieRepository{
		movies: make(map[int]domain.Movie),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

// SetError configures the named operation to fail with err. Pass nil to
// clear a previous injection.
func (m *MockMovieRepository) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, operation)
		return
	}
	m.errs[operation] = err
}

// Calls returns how many times the named operation was invoked.
func (m *MockMovieRepository) Calls(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[operation]
}

func (m *MockMovieRepository) enter(operation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[operation]++
	return m.errs[operation]
}

// FindByID returns the stored movie or a NotFound error.
func (m *MockMovieRepository) FindByID(ctx context.Context, id int) (*domain.Movie, error) {
	if err := m.enter("FindByID"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	movie, ok := m.movies[id]
	if !ok {
		return nil, appErrors.NewNotFound("movie not found")
	}
	return &movie, nil
}

// Scan applies the filter predicate linearly, mirroring the DynamoDB
// adapter's filter expression semantics. Results are ordered by id so tests
// can compare slices deterministically.
func (m *MockMovieRepository) Scan(ctx context.Context, filter repository.Filter) ([]domain.Movie, error) {
	if err := m.enter("Scan"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Movie
	for _, movie := range m.movies {
		if filter.Matches(movie) {
			result = append(result, movie)
		}
	}
	sortByID(result)
	return result, nil
}

// FindByYear returns movies with exactly the given year.
func (m *MockMovieRepository) FindByYear(ctx context.Context, year int) ([]domain.Movie, error) {
	if err := m.enter("FindByYear"); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Movie
	for _, movie := range m.movies {
		if movie.Year == year {
			result = append(result, movie)
		}
	}
	sortByID(result)
	return result, nil
}

// Put upserts a movie by id.
func (m *MockMovieRepository) Put(ctx context.Context, movie domain.Movie) error {
	if err := m.enter("Put"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.movies[movie.ID] = movie
	return nil
}

// UpdateSummary sets the summary write-once, like the conditional DynamoDB
// update.
func (m *MockMovieRepository) UpdateSummary(ctx context.Context, id int, summary string) error {
	if err := m.enter("UpdateSummary"); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	movie, ok := m.movies[id]
	if !ok {
		return appErrors.NewNotFound("movie not found")
	}
	if movie.Summary != "" {
		return repository.ErrSummaryExists
	}
	movie.Summary = summary
	m.movies[id] = movie
	return nil
}

func sortByID(movies []domain.Movie) {
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
}
