package services

import (
	"testing"
	"time"

	"ecometer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizePicksHighestCategory(t *testing.T) {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	var entries []models.DailyEntry
	for i, c := range []models.Categories{
		{Travel: 1, Food: 2, Waste: 0.5, Electricity: 3},
		{Travel: 1, Food: 2, Waste: 0.5, Electricity: 4},
	} {
		e, err := newEntry("u1", day.AddDate(0, 0, i), c)
		require.NoError(t, err)
		entries = append(entries, e)
	}

	s := Summarize(entries, 0)

	assert.Equal(t, 2, s.Entries)
	assert.InDelta(t, 7.0, s.Totals.Electricity, 1e-9)
	assert.InDelta(t, 14.0, s.Total, 1e-9)
	assert.Equal(t, models.CategoryElectricity, s.Highest)
	assert.Equal(t, TipsFor(models.CategoryElectricity), s.HighestTips)
}

func TestSummarizeUsesMostRecentWindow(t *testing.T) {
	entries := entriesForDays(t, 10)

	s := Summarize(entries, 3)

	assert.Equal(t, 3, s.Entries)
	assert.InDelta(t, 7+8+9, s.Totals.Travel, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 30)
	assert.Zero(t, s.Entries)
	assert.Empty(t, s.Highest)
	assert.Nil(t, s.HighestTips)
}

func TestConvertActivity(t *testing.T) {
	got, err := ConvertActivity(models.Categories{Travel: 10, Food: 2, Waste: 1, Electricity: 3}, DefaultEmissionFactors)
	require.NoError(t, err)
	assert.InDelta(t, 1.92, got.Travel, 1e-9)
	assert.InDelta(t, 5.0, got.Food, 1e-9)
	assert.InDelta(t, 1.5, got.Waste, 1e-9)
	assert.InDelta(t, 13.5, got.Electricity, 1e-9)

	_, err = ConvertActivity(models.Categories{Travel: -1}, DefaultEmissionFactors)
	assert.ErrorIs(t, err, ErrValidation)
}
