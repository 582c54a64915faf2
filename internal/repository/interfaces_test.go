package repository

import (
	"testing"

	"themefinder-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatches(t *testing.T) {
	movie := domain.Movie{
		ID: 1, Title: "Titanic", Year: 1997, Genre: "Romance",
		ThemeSong: domain.ThemeSong{Artist: "Celine Dion", Title: "My Heart Will Go On"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"ZeroFilterMatchesEverything", Filter{}, true},
		{"ExactTitle", Filter{Title: "Titanic"}, true},
		{"TitleSubstring", Filter{Title: "tan"}, true},
		{"CaseSensitive", Filter{Title: "titanic"}, false},
		{"ArtistSubstring", Filter{Artist: "Celine"}, true},
		{"ThemeSongTitleSubstring", Filter{ThemeSongTitle: "Heart"}, true},
		{"AllFieldsConjoin", Filter{Title: "Titanic", Genre: "Romance", Artist: "Dion"}, true},
		{"OneFailingFieldRejects", Filter{Title: "Titanic", Genre: "Action"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(movie))
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Genre: "Action"}.IsZero())
}
