package request

// MaxMoodLength bounds the free-text mood in characters.
const MaxMoodLength = 500

type RecommendationRequest struct {
	Mood string `json:"mood" validate:"notblank,max=500"`
}
