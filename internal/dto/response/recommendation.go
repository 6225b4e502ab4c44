package response

import "moodflix/internal/data/entity"

type RecommendationResponse struct {
	Genres []string       `json:"genres"`
	Movies []entity.Movie `json:"movies"`
}
