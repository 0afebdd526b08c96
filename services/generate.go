package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"ecometer/models"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// GenerationWindowDays is how far back entries count toward generated goals.
	GenerationWindowDays = 14

	// GenerationCooldown is the minimum time between two generations.
	GenerationCooldown = 7 * 24 * time.Hour

	MinGeneratedGoals  = 3
	MaxGeneratedGoals  = 5
	MinGeneratedPoints = 10
	MaxGeneratedPoints = 30

	// generatedGoalTarget is the suggested reduction, in percent.
	generatedGoalTarget = 10
)

// Generation reports the outcome of a goal generation. Skipped is set while
// the cooldown since the last generation is running.
type Generation struct {
	Goals   []models.Goal `json:"goals"`
	Skipped bool          `json:"skipped"`
	NextAt  *time.Time    `json:"next_generation_at,omitempty"`
}

func lastGeneratedAt(goals []models.Goal) *time.Time {
	var last *time.Time
	for _, g := range goals {
		if g.GeneratedAt != nil && (last == nil || g.GeneratedAt.After(*last)) {
			last = g.GeneratedAt
		}
	}
	return last
}

func recentEntries(entries []models.DailyEntry, now time.Time, days int) []models.DailyEntry {
	since := truncateDay(now).AddDate(0, 0, -days)
	var out []models.DailyEntry
	for _, e := range entries {
		if !e.Date.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

// generateGoals builds goals toward the categories that dominated the last
// GenerationWindowDays of entries. Categories earn points by their share of
// the footprint, between MinGeneratedPoints and MaxGeneratedPoints; the more
// categories contribute, the more goals are built. Tips already used by an
// active goal are skipped.
func generateGoals(userID string, s models.UserState, now time.Time) (Generation, error) {
	if last := lastGeneratedAt(s.Goals); last != nil && now.Sub(*last) < GenerationCooldown {
		next := last.Add(GenerationCooldown)
		return Generation{Goals: []models.Goal{}, Skipped: true, NextAt: &next}, nil
	}

	recent := recentEntries(s.DailyData, now, GenerationWindowDays)
	sum := Summarize(recent, len(recent))
	if sum.Total == 0 {
		return Generation{}, fmt.Errorf("%w: not enough data from the last %d days to generate goals", ErrValidation, GenerationWindowDays)
	}
	ranked := rankCategories(sum.Totals)

	active := make(map[string]bool, len(s.Goals))
	for _, g := range s.Goals {
		if !g.Completed {
			active[strings.ToLower(g.Title)] = true
		}
	}

	count := min(max(len(ranked)+2, MinGeneratedGoals), MaxGeneratedGoals)
	title := cases.Title(language.English)
	generatedAt := now
	goals := make([]models.Goal, 0, count)

	// Round-robin over the ranked categories, one tip per category per pass.
	for pass := 0; len(goals) < count; pass++ {
		added := false
		for _, c := range ranked {
			tips := categoryTips[c.category]
			if pass >= len(tips) || len(goals) == count {
				continue
			}
			added = true
			tip := tips[pass]
			if active[strings.ToLower(tip)] {
				continue
			}
			share := c.value / sum.Total
			desc := fmt.Sprintf("%s made up %.0f%% of your footprint over the last %d days (%.1f kg CO2)",
				title.String(string(c.category)), share*100, GenerationWindowDays, c.value)
			goals = append(goals, models.Goal{
				UserID:      userID,
				ID:          uuid.NewString(),
				Title:       tip,
				Description: desc,
				Category:    c.category,
				Target:      generatedGoalTarget,
				Points:      MinGeneratedPoints + int(math.Round(share*(MaxGeneratedPoints-MinGeneratedPoints))),
				GeneratedAt: &generatedAt,
			})
		}
		if !added {
			break
		}
	}
	return Generation{Goals: goals}, nil
}
