package response

type FavoriteDeleteResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type FavoriteStatusResponse struct {
	ID       int64 `json:"id"`
	Favorite bool  `json:"favorite"`
}

type HistoryDeleteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type ClearResponse struct {
	Success bool `json:"success"`
}
