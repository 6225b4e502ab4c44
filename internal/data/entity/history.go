package entity

import "time"

// HistoryLimit is how many searches are kept per owner.
const HistoryLimit = 20

// HistoryEntry records one completed mood search.
type HistoryEntry struct {
	ID         string    `json:"id" db:"id"`
	Mood       string    `json:"mood" db:"mood"`
	Genres     []string  `json:"genres" db:"genres"`
	MovieCount int       `json:"movieCount" db:"movie_count"`
	Timestamp  time.Time `json:"timestamp" db:"created_at"`
}
