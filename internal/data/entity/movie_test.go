package entity

import "testing"

func TestMovie_DisplayHelpers(t *testing.T) {
	poster := "/abc.jpg"
	empty := ""
	rating := 7.26

	tests := []struct {
		name       string
		movie      Movie
		wantRating string
		wantPoster string
		wantYear   string
	}{
		{
			name:       "all fields",
			movie:      Movie{PosterPath: &poster, VoteAverage: &rating, ReleaseDate: "1999-03-31"},
			wantRating: "7.3",
			wantPoster: "https://image.tmdb.org/t/p/w500/abc.jpg",
			wantYear:   "1999",
		},
		{
			name:       "absent optionals",
			movie:      Movie{},
			wantRating: "N/A",
		},
		{
			name:       "empty poster path",
			movie:      Movie{PosterPath: &empty, ReleaseDate: "soon"},
			wantRating: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.movie.RatingLabel(); got != tt.wantRating {
				t.Errorf("RatingLabel() = %q, want %q", got, tt.wantRating)
			}
			if got := tt.movie.PosterURL(); got != tt.wantPoster {
				t.Errorf("PosterURL() = %q, want %q", got, tt.wantPoster)
			}
			if got := tt.movie.ReleaseYear(); got != tt.wantYear {
				t.Errorf("ReleaseYear() = %q, want %q", got, tt.wantYear)
			}
		})
	}
}
