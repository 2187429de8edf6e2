// Package types contains common types used across the application
package types

// Entry represents a leaderboard entry as served to clients.
type Entry struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Display string  `json:"display_score"`
	Votes   int     `json:"votes"`
}

// PodiumEntry is an Entry decorated for the top-N podium view.
type PodiumEntry struct {
	Entry
	Photo    string `json:"photo,omitempty"`
	Initials string `json:"initials,omitempty"`
}
