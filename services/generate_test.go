package services

import (
	"context"
	"testing"
	"time"

	"ecometer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateWithEntries(now time.Time, daysAgo int, c models.Categories) models.UserState {
	s := models.NewUserState("u1")
	e, _ := newEntry("u1", now.AddDate(0, 0, -daysAgo), c)
	s.DailyData = append(s.DailyData, e)
	return s
}

func TestGenerateGoalsFollowsHighestCategories(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	s := stateWithEntries(now, 2, models.Categories{Travel: 10, Food: 30})

	gen, err := generateGoals("u1", s, now)

	require.NoError(t, err)
	assert.False(t, gen.Skipped)
	require.Len(t, gen.Goals, 4)
	assert.Equal(t, []models.GoalCategory{
		models.CategoryFood, models.CategoryTransport, models.CategoryFood, models.CategoryTransport,
	}, goalCategories(gen.Goals))
	assert.Equal(t, categoryTips[models.CategoryFood][0], gen.Goals[0].Title)
	assert.Equal(t, 25, gen.Goals[0].Points)
	assert.Equal(t, 15, gen.Goals[1].Points)
	for _, g := range gen.Goals {
		assert.Equal(t, "u1", g.UserID)
		assert.False(t, g.Completed)
		require.NotNil(t, g.GeneratedAt)
		assert.Equal(t, now, *g.GeneratedAt)
		assert.GreaterOrEqual(t, g.Points, MinGeneratedPoints)
		assert.LessOrEqual(t, g.Points, MaxGeneratedPoints)
	}
}

func TestGenerateGoalsCountTracksCategories(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		c    models.Categories
		want int
	}{
		{"one category", models.Categories{Waste: 4}, MinGeneratedGoals},
		{"all categories", models.Categories{Travel: 1, Food: 2, Waste: 3, Electricity: 4}, MaxGeneratedGoals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := generateGoals("u1", stateWithEntries(now, 0, tt.c), now)
			require.NoError(t, err)
			assert.Len(t, gen.Goals, tt.want)
		})
	}
}

func TestGenerateGoalsSkipsActiveTitles(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	s := stateWithEntries(now, 1, models.Categories{Travel: 10, Food: 30})
	taken := categoryTips[models.CategoryFood][0]
	s.Goals = append(s.Goals, models.Goal{UserID: "u1", ID: "mine", Title: taken, Category: models.CategoryFood, Points: 10})

	gen, err := generateGoals("u1", s, now)

	require.NoError(t, err)
	require.NotEmpty(t, gen.Goals)
	for _, g := range gen.Goals {
		assert.NotEqual(t, taken, g.Title)
	}
}

func TestGenerateGoalsNeedsRecentData(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)

	_, err := generateGoals("u1", stateWithEntries(now, GenerationWindowDays+1, models.Categories{Food: 5}), now)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = generateGoals("u1", stateWithEntries(now, 0, models.Categories{}), now)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGenerateGoalsCooldown(t *testing.T) {
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, time.UTC)
	s := stateWithEntries(now, 0, models.Categories{Food: 5})
	last := now.Add(-3 * 24 * time.Hour)
	s.Goals[0].GeneratedAt = &last

	gen, err := generateGoals("u1", s, now)

	require.NoError(t, err)
	assert.True(t, gen.Skipped)
	assert.Empty(t, gen.Goals)
	require.NotNil(t, gen.NextAt)
	assert.Equal(t, last.Add(GenerationCooldown), *gen.NextAt)
}

func TestEngineGenerateGoalsOncePerCooldown(t *testing.T) {
	store := newFlakyStore()
	e, clock := newTestEngine(t, store, nil)
	ctx := context.Background()

	_, err := e.AddEntry(ctx, "u1", time.Time{}, models.Categories{Electricity: 8, Waste: 2})
	require.NoError(t, err)

	first, err := e.GenerateGoals(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, first.Goals)

	clock.Advance(24 * time.Hour)
	again, err := e.GenerateGoals(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, again.Skipped)

	goals, err := e.Goals(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, goals, len(models.GoalCatalog)+len(first.Goals))

	stored, _, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, stored.Goals, len(goals))

	clock.Advance(GenerationCooldown)
	_, err = e.AddEntry(ctx, "u1", time.Time{}, models.Categories{Food: 3})
	require.NoError(t, err)
	later, err := e.GenerateGoals(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, later.Skipped)
	assert.NotEmpty(t, later.Goals)
}

func goalCategories(goals []models.Goal) []models.GoalCategory {
	out := make([]models.GoalCategory, len(goals))
	for i, g := range goals {
		out[i] = g.Category
	}
	return out
}
