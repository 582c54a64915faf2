// Package domain holds the core entities of the movie theme song finder.
package domain

// ThemeSong is the artist/title pair associated with a movie.
type ThemeSong struct {
	Artist string `json:"artist" dynamodbav:"artist" validate:"required"`
	Title  string `json:"title" dynamodbav:"title" validate:"required"`
}

// Movie is the sole persisted entity. The id is externally supplied and acts
// as the table's hash key. Summary is absent until first generated; once set
// it is treated as immutable cached content.
type Movie struct {
	ID        int       `json:"id" dynamodbav:"id" validate:"required"`
	Title     string    `json:"title" dynamodbav:"title" validate:"required"`
	Year      int       `json:"year" dynamodbav:"year" validate:"required"`
	Genre     string    `json:"genre" dynamodbav:"genre" validate:"required"`
	ThemeSong ThemeSong `json:"theme_song" dynamodbav:"theme_song"`
	Summary   string    `json:"summary,omitempty" dynamodbav:"summary,omitempty"`
}

// SummaryState is the explicit state tag for a movie's summary lifecycle.
// NoSummary -> Generating -> Cached; there is no invalidation transition.
type SummaryState int

const (
	SummaryNone SummaryState = iota
	SummaryGenerating
	SummaryCached
)

// String returns a human readable state name.
func (s SummaryState) String() string {
	switch s {
	case SummaryGenerating:
		return "generating"
	case SummaryCached:
		return "cached"
	default:
		return "none"
	}
}

// SummaryState derives the persisted summary state. Generating is a
// per-request transient and never observable from a stored record.
func (m *Movie) SummaryState() SummaryState {
	if m.Summary != "" {
		return SummaryCached
	}
	return SummaryNone
}
