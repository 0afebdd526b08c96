package models

// LeaderboardEntry is one row of the ranked roster.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}
