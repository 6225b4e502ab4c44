package entity

import (
	"fmt"
	"time"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// Movie is a catalog entry as returned by TMDb. Optional fields are pointers
// so an absent rating or poster survives a round trip as absent.
type Movie struct {
	ID          int64    `json:"id" db:"movie_id"`
	Title       string   `json:"title" db:"title"`
	Overview    string   `json:"overview" db:"overview"`
	PosterPath  *string  `json:"poster_path" db:"poster_path"`
	ReleaseDate string   `json:"release_date,omitempty" db:"release_date"`
	VoteAverage *float64 `json:"vote_average" db:"vote_average"`
	GenreIDs    []int    `json:"genre_ids" db:"genre_ids"`
}

// RatingLabel formats the vote average for display, "N/A" when unrated.
func (m Movie) RatingLabel() string {
	if m.VoteAverage == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *m.VoteAverage)
}

// PosterURL returns the w500 image URL, or "" when there is no poster.
func (m Movie) PosterURL() string {
	if m.PosterPath == nil || *m.PosterPath == "" {
		return ""
	}
	return posterBaseURL + *m.PosterPath
}

// ReleaseYear returns the year part of ReleaseDate, or "" if unparsable.
func (m Movie) ReleaseYear() string {
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return ""
	}
	return t.Format("2006")
}


// GenreRef is a genre as embedded in a movie detail response.
type GenreRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

// MovieDetails is a single movie with credits, trailer and similar titles.
type MovieDetails struct {
	Movie
	Tagline    string       `json:"tagline,omitempty"`
	Runtime    int          `json:"runtime,omitempty"`
	Genres     []GenreRef   `json:"genres"`
	Cast       []CastMember `json:"cast"`
	TrailerKey string       `json:"trailer_key,omitempty"`
	Similar    []Movie      `json:"similar"`
}
