package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movie status constants.
const (
	MovieStatusDraft      = "draft"
	MovieStatusNowShowing = "now_showing"
	MovieStatusExpired    = "expired"
)

// Genre constants for movie classification.
const (
	GenreAction         = "Action"
	GenreAdventure      = "Adventure"
	GenreAnimation      = "Animation"
	GenreComedy         = "Comedy"
	GenreCrime          = "Crime"
	GenreDocumentary    = "Documentary"
	GenreDrama          = "Drama"
	GenreFamily         = "Family"
	GenreFantasy        = "Fantasy"
	GenreHistory        = "History"
	GenreHorror         = "Horror"
	GenreMusic          = "Music"
	GenreMystery        = "Mystery"
	GenreRomance        = "Romance"
	GenreScienceFiction = "Science Fiction"
	GenreThriller       = "Thriller"
	GenreWar            = "War"
	GenreWestern        = "Western"
)

// Movie represents a film available for purchase in the catalog.
type Movie struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Genre       string          `json:"genre"`
	Status      string          `json:"status"`
	ReleaseDate time.Time       `json:"release_date"`
	ActorIDs    []string        `json:"actor_ids,omitempty"`
	ProducerIDs []string        `json:"producer_ids,omitempty"`
	CinemaIDs   []string        `json:"cinema_ids,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ValidStatuses returns the set of valid movie statuses.
func ValidStatuses() []string {
	return []string{MovieStatusDraft, MovieStatusNowShowing, MovieStatusExpired}
}

// IsValidStatus checks whether the given status string is a valid movie status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ValidGenres returns the set of valid movie genres.
func ValidGenres() []string {
	return []string{
		GenreAction, GenreAdventure, GenreAnimation, GenreComedy, GenreCrime,
		GenreDocumentary, GenreDrama, GenreFamily, GenreFantasy, GenreHistory,
		GenreHorror, GenreMusic, GenreMystery, GenreRomance, GenreScienceFiction,
		GenreThriller, GenreWar, GenreWestern,
	}
}

// IsValidGenre checks whether the given genre string is a valid movie genre.
func IsValidGenre(genre string) bool {
	for _, g := range ValidGenres() {
		if g == genre {
			return true
		}
	}
	return false
}
