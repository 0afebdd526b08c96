package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyFactStableWithinDay(t *testing.T) {
	morning := time.Date(2024, 8, 14, 0, 1, 0, 0, time.UTC)
	evening := time.Date(2024, 8, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, DailyFact(morning), DailyFact(evening))
}

func TestDailyFactCyclesThroughList(t *testing.T) {
	jan1 := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, carbonFacts[1], DailyFact(jan1))

	seen := map[string]bool{}
	for d := 0; d < 365; d++ {
		seen[DailyFact(jan1.AddDate(0, 0, d))] = true
	}
	assert.Len(t, seen, len(carbonFacts))

	day := jan1.AddDate(0, 0, 9)
	assert.Equal(t, DailyFact(day), DailyFact(day.AddDate(0, 0, len(carbonFacts))))
}
