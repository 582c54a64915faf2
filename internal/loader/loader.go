// Package loader seeds the record store from a static dataset at startup.
package loader

import (
	"context"
	"encoding/json"
	"os"

	"themefinder-backend/internal/domain"
	"themefinder-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Result summarizes a bulk load: how many records were upserted and how many
// were skipped because of validation or store failures.
type Result struct {
	Loaded  int
	Skipped int
}

// Loader reads a JSON dataset and idempotently upserts it into the store.
type Loader struct {
	repo     repository.MovieRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// New creates a bulk loader.
func New(repo repository.MovieRepository, logger *zap.Logger) *Loader {
	return &Loader{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// Load reads the dataset file and upserts each entry, collecting successes
// and failures without ever aborting the batch. A missing or malformed file
// degrades to an empty store with a logged warning, not an error.
func (l *Loader) Load(ctx context.Context, path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("movie dataset not found, starting with an empty store",
			zap.String("path", path),
			zap.Error(err),
		)
		return Result{}
	}

	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		l.logger.Warn("failed to decode movie dataset, starting with an empty store",
			zap.String("path", path),
			zap.Error(err),
		)
		return Result{}
	}

	var result Result
	for _, movie := range movies {
		if err := l.validate.Struct(movie); err != nil {
			result.Skipped++
			l.logger.Warn("skipping invalid dataset entry",
				zap.Int("id", movie.ID),
				zap.Error(err),
			)
			continue
		}

		if err := l.repo.Put(ctx, movie); err != nil {
			result.Skipped++
			l.logger.Warn("failed to upsert dataset entry",
				zap.Int("id", movie.ID),
				zap.Error(err),
			)
			continue
		}
		result.Loaded++
	}

	l.logger.Info("movie dataset loaded",
		zap.String("path", path),
		zap.Int("loaded", result.Loaded),
		zap.Int("skipped", result.Skipped),
	)
	return result
}
