package handlers

import (
	"net/http"
	"strconv"

	"themefinder-backend/internal/domain"
	"themefinder-backend/internal/repository"
	"themefinder-backend/internal/service/movies"
	"themefinder-backend/internal/service/summary"
	"themefinder-backend/pkg/api"
	appErrors "themefinder-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MoviesResponse wraps a list of movies.
type MoviesResponse struct {
	Movies []domain.Movie `json:"movies"`
}

// MovieResponse wraps a single movie.
type MovieResponse struct {
	Movie domain.Movie `json:"movie"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Result []domain.Movie `json:"result"`
}

// MovieHandler serves the movie endpoints.
type MovieHandler struct {
	movies    *movies.Service
	summaries *summary.Service
	logger    *zap.Logger
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(moviesSvc *movies.Service, summariesSvc *summary.Service, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		movies:    moviesSvc,
		summaries: summariesSvc,
		logger:    logger,
	}
}

// Welcome serves the fixed root payload.
func (h *MovieHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, api.WelcomeResponse{
		Message: "Welcome to the Movie Theme Song Finder API!",
	})
}

// ListMovies returns every movie in the store.
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	result, err := h.movies.List(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	api.Success(w, http.StatusOK, MoviesResponse{Movies: emptyIfNil(result)})
}

// GetMovieByID returns a single movie.
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	movie, err := h.movies.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	api.Success(w, http.StatusOK, MovieResponse{Movie: *movie})
}

// SearchMovies filters by title, genre, theme-song artist and theme-song
// title; supplied parameters narrow the result set by substring containment,
// omitted ones impose no constraint.
func (h *MovieHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.Filter{
		Title:          q.Get("title"),
		Genre:          q.Get("genre"),
		Artist:         q.Get("artist"),
		ThemeSongTitle: q.Get("theme_song_title"),
	}

	result, err := h.movies.Search(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	api.Success(w, http.StatusOK, SearchResponse{Result: result})
}

// GetMoviesByYear returns movies with an exact release year.
func (h *MovieHandler) GetMoviesByYear(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year")
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	result, err := h.movies.ByYear(r.Context(), year)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	api.Success(w, http.StatusOK, MoviesResponse{Movies: result})
}

// GetMovieSummary returns the AI-generated summary for a movie, generating
// and caching it on first request.
func (h *MovieHandler) GetMovieSummary(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	result, err := h.summaries.GetOrGenerate(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	api.Success(w, http.StatusOK, result)
}

// intParam parses an integer URL parameter.
func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.NewValidation(name + " must be an integer")
	}
	return value, nil
}

// emptyIfNil keeps list responses as [] instead of null.
func emptyIfNil(movies []domain.Movie) []domain.Movie {
	if movies == nil {
		return []domain.Movie{}
	}
	return movies
}
