package services

import (
	"sort"
	"strconv"

	"ecometer/models"
)

// NoRank is reported when there is nobody to rank against.
const NoRank = 0

// LeaderboardResult is the ranked roster with the current user's position.
type LeaderboardResult struct {
	Rank    int                       `json:"rank"`
	Entries []models.LeaderboardEntry `json:"entries"`
}

// RankLabel renders the rank for display, "—" when unranked.
func (r LeaderboardResult) RankLabel() string {
	if r.Rank == NoRank {
		return "—"
	}
	return "#" + strconv.Itoa(r.Rank)
}

// Top keeps the first n rows for display. The computed rank is kept.
func (r LeaderboardResult) Top(n int) LeaderboardResult {
	if n <= 0 || n >= len(r.Entries) {
		return r
	}
	return LeaderboardResult{Rank: r.Rank, Entries: r.Entries[:n]}
}

// RankLeaderboard merges the current user's points into the external roster,
// sorts it by points descending (ties keep roster order) and returns the
// user's 1-based rank. An empty roster yields NoRank.
func RankLeaderboard(userID, userName string, points int, external []models.LeaderboardEntry) LeaderboardResult {
	if len(external) == 0 {
		return LeaderboardResult{Rank: NoRank, Entries: []models.LeaderboardEntry{}}
	}

	entries := make([]models.LeaderboardEntry, 0, len(external)+1)
	found := false
	for _, e := range external {
		e.IsCurrentUser = false
		if !found && userID != "" && e.UserID == userID {
			e.IsCurrentUser = true
			e.Points = points
			found = true
		}
		entries = append(entries, e)
	}
	if !found {
		entries = append(entries, models.LeaderboardEntry{
			UserID:        userID,
			Name:          userName,
			Points:        points,
			IsCurrentUser: true,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	rank := NoRank
	for i := range entries {
		entries[i].Rank = i + 1
		if entries[i].IsCurrentUser {
			rank = i + 1
		}
	}
	return LeaderboardResult{Rank: rank, Entries: entries}
}
