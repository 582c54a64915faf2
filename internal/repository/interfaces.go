// Package repository defines the persistence contract for movie records.
// Implementations live in subpackages; callers only see this interface.
package repository

import (
	"context"
	"errors"
	"strings"

	"themefinder-backend/internal/domain"
)

// ErrSummaryExists is returned by UpdateSummary when another writer cached a
// summary first. Callers should re-read and return the stored value.
var ErrSummaryExists = errors.New("summary already exists")

// Filter is a conjunction of substring-containment tests over movie fields.
// Empty fields impose no constraint; the zero Filter matches every record.
// Matching is case-sensitive, mirroring a DynamoDB contains() filter.
type Filter struct {
	Title          string
	Genre          string
	Artist         string
	ThemeSongTitle string
}

// IsZero reports whether no field constraint is set.
func (f Filter) IsZero() bool {
	return f.Title == "" && f.Genre == "" && f.Artist == "" && f.ThemeSongTitle == ""
}

// Matches applies the filter to a movie. The DynamoDB adapter pushes the
// same predicate into a scan filter expression; the in-memory mock uses this
// directly so both agree on semantics.
func (f Filter) Matches(m domain.Movie) bool {
	return contains(m.Title, f.Title) &&
		contains(m.Genre, f.Genre) &&
		contains(m.ThemeSong.Artist, f.Artist) &&
		contains(m.ThemeSong.Title, f.ThemeSongTitle)
}

func contains(field, query string) bool {
	return query == "" || strings.Contains(field, query)
}

// MovieRepository is the record store adapter contract.
type MovieRepository interface {
	// FindByID retrieves a single movie. Absent ids surface as a NotFound
	// application error.
	FindByID(ctx context.Context, id int) (*domain.Movie, error)

	// Scan returns every movie matching the filter. A zero filter returns
	// the full table. No ordering guarantee.
	Scan(ctx context.Context, filter Filter) ([]domain.Movie, error)

	// FindByYear returns movies with exactly the given release year.
	FindByYear(ctx context.Context, year int) ([]domain.Movie, error)

	// Put upserts a movie by id. Used only by the bulk loader.
	Put(ctx context.Context, movie domain.Movie) error

	// UpdateSummary sets the summary field, conditional on no summary being
	// present. Returns ErrSummaryExists when the condition fails.
	UpdateSummary(ctx context.Context, id int, summary string) error
}
