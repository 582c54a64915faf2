package movies

import (
	"context"
	"testing"

	"themefinder-backend/internal/domain"
	"themefinder-backend/internal/repository"
	"themefinder-backend/internal/repository/mocks"
	appErrors "themefinder-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRepo(t *testing.T) *mocks.MockMovieRepository {
	t.Helper()
	repo := mocks.NewMockMovieRepository()
	ctx := context.Background()

	seed := []domain.Movie{
		{ID: 1, Title: "Titanic", Year: 1997, Genre: "Romance",
			ThemeSong: domain.ThemeSong{Artist: "Celine Dion", Title: "My Heart Will Go On"}},
		{ID: 2, Title: "Top Gun", Year: 1986, Genre: "Action",
			ThemeSong: domain.ThemeSong{Artist: "Berlin", Title: "Take My Breath Away"}},
		{ID: 3, Title: "Skyfall", Year: 2012, Genre: "Action",
			ThemeSong: domain.ThemeSong{Artist: "Adele", Title: "Skyfall"}},
	}
	for _, m := range seed {
		require.NoError(t, repo.Put(ctx, m))
	}
	return repo
}

func TestGet(t *testing.T) {
	service := NewService(seedRepo(t))
	ctx := context.Background()

	t.Run("ExistingID", func(t *testing.T) {
		movie, err := service.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Titanic", movie.Title)
		assert.Equal(t, "Celine Dion", movie.ThemeSong.Artist)
	})

	t.Run("AbsentID", func(t *testing.T) {
		_, err := service.Get(ctx, 99)
		require.Error(t, err)
		assert.True(t, appErrors.IsNotFound(err))
	})
}

func TestSearch(t *testing.T) {
	service := NewService(seedRepo(t))
	ctx := context.Background()

	t.Run("NoParametersReturnsEverything", func(t *testing.T) {
		all, err := service.List(ctx)
		require.NoError(t, err)

		searched, err := service.Search(ctx, repository.Filter{})
		require.NoError(t, err)
		assert.Equal(t, all, searched)
	})

	t.Run("SingleFilter", func(t *testing.T) {
		result, err := service.Search(ctx, repository.Filter{Genre: "Action"})
		require.NoError(t, err)
		require.Len(t, result, 2)
	})

	t.Run("FiltersIntersect", func(t *testing.T) {
		result, err := service.Search(ctx, repository.Filter{Genre: "Action", Artist: "Adele"})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Skyfall", result[0].Title)
	})

	t.Run("SubstringContainment", func(t *testing.T) {
		result, err := service.Search(ctx, repository.Filter{ThemeSongTitle: "Breath"})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Top Gun", result[0].Title)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		_, err := service.Search(ctx, repository.Filter{Title: "titanic"})
		require.Error(t, err)
		assert.True(t, appErrors.IsNotFound(err))
	})

	t.Run("ZeroMatchesIsNotFound", func(t *testing.T) {
		_, err := service.Search(ctx, repository.Filter{Title: "Nonexistent"})
		require.Error(t, err)
		assert.True(t, appErrors.IsNotFound(err))
	})
}

func TestByYear(t *testing.T) {
	service := NewService(seedRepo(t))
	ctx := context.Background()

	t.Run("ExactMatch", func(t *testing.T) {
		result, err := service.ByYear(ctx, 1997)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Titanic", result[0].Title)
	})

	t.Run("NoSubstringMatching", func(t *testing.T) {
		// 997 and 19970 must not match a record with year 1997.
		_, err := service.ByYear(ctx, 997)
		assert.True(t, appErrors.IsNotFound(err))

		_, err = service.ByYear(ctx, 19970)
		assert.True(t, appErrors.IsNotFound(err))
	})

	t.Run("ZeroMatchesIsNotFound", func(t *testing.T) {
		_, err := service.ByYear(ctx, 1900)
		require.Error(t, err)
		assert.True(t, appErrors.IsNotFound(err))
	})
}

func TestStoreErrorPropagates(t *testing.T) {
	repo := seedRepo(t)
	service := NewService(repo)
	ctx := context.Background()

	repo.SetError("Scan", appErrors.NewUpstream("store unavailable", nil))

	_, err := service.List(ctx)
	require.Error(t, err)
	assert.True(t, appErrors.IsUpstream(err))
}
