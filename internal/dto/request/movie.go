package request

import "moodflix/internal/data/entity"

// MovieRequest is a catalog movie posted by the client to save as a favorite.
type MovieRequest struct {
	ID          int64    `json:"id" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"max=500"`
	Overview    string   `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average" validate:"omitempty,gte=0,lte=10"`
	GenreIDs    []int    `json:"genre_ids"`
}

func (r *MovieRequest) ToEntity() entity.Movie {
	genreIDs := r.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}
	return entity.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Overview:    r.Overview,
		PosterPath:  r.PosterPath,
		ReleaseDate: r.ReleaseDate,
		VoteAverage: r.VoteAverage,
		GenreIDs:    genreIDs,
	}
}
