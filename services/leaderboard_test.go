package services

import (
	"testing"

	"ecometer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []models.LeaderboardEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestRankLeaderboardInsertsCurrentUser(t *testing.T) {
	external := []models.LeaderboardEntry{
		{UserID: "a", Name: "A", Points: 100},
		{UserID: "b", Name: "B", Points: 80},
	}

	res := RankLeaderboard("me", "User", 90, external)

	assert.Equal(t, 2, res.Rank)
	assert.Equal(t, []string{"A", "User", "B"}, names(res.Entries))
	assert.True(t, res.Entries[1].IsCurrentUser)
	assert.Equal(t, []int{1, 2, 3}, []int{res.Entries[0].Rank, res.Entries[1].Rank, res.Entries[2].Rank})
	assert.Len(t, external, 2, "input roster must not grow")
}

func TestRankLeaderboardUsesEnginePointsForListedUser(t *testing.T) {
	external := []models.LeaderboardEntry{
		{UserID: "a", Name: "A", Points: 100},
		{UserID: "me", Name: "Me", Points: 10},
		{UserID: "b", Name: "B", Points: 80},
	}

	res := RankLeaderboard("me", "Me", 150, external)

	require.Len(t, res.Entries, 3)
	assert.Equal(t, 1, res.Rank)
	assert.Equal(t, 150, res.Entries[0].Points)
	assert.Equal(t, 10, external[1].Points)
}

func TestRankLeaderboardTiesKeepRosterOrder(t *testing.T) {
	external := []models.LeaderboardEntry{
		{UserID: "a", Name: "A", Points: 50},
		{UserID: "b", Name: "B", Points: 70},
		{UserID: "c", Name: "C", Points: 50},
	}

	res := RankLeaderboard("me", "Me", 50, external)

	assert.Equal(t, []string{"B", "A", "C", "Me"}, names(res.Entries))
	assert.Equal(t, 4, res.Rank)
}

func TestRankLeaderboardEmpty(t *testing.T) {
	res := RankLeaderboard("me", "Me", 90, nil)
	assert.Equal(t, NoRank, res.Rank)
	assert.Empty(t, res.Entries)
	assert.Equal(t, "—", res.RankLabel())
}

func TestLeaderboardTopKeepsRank(t *testing.T) {
	external := []models.LeaderboardEntry{
		{UserID: "a", Points: 5}, {UserID: "b", Points: 4}, {UserID: "c", Points: 3},
	}
	res := RankLeaderboard("me", "Me", 1, external).Top(2)
	assert.Len(t, res.Entries, 2)
	assert.Equal(t, 4, res.Rank)
	assert.Equal(t, "#4", res.RankLabel())
}
