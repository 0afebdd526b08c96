package services

import (
	"time"

	"ecometer/models"
)

// BadgeFacts are the observable facts badge thresholds are checked against.
type BadgeFacts struct {
	CompletedGoals      int64
	TotalPoints         int64
	CategoryCompletions map[models.GoalCategory]int64
}

// BadgeResult partitions the catalog for display.
type BadgeResult struct {
	Earned      []models.Badge `json:"earned"`
	Available   []models.Badge `json:"available"`
	NewlyEarned []models.Badge `json:"-"`
}

// All returns earned and available badges in one list for persisting.
func (r BadgeResult) All() []models.Badge {
	out := make([]models.Badge, 0, len(r.Earned)+len(r.Available))
	out = append(out, r.Earned...)
	return append(out, r.Available...)
}

// FactsFromGoals derives badge facts from goal-completion history.
func FactsFromGoals(goals []models.Goal) BadgeFacts {
	f := BadgeFacts{CategoryCompletions: map[models.GoalCategory]int64{}}
	for _, g := range goals {
		if !g.Completed {
			continue
		}
		f.CompletedGoals++
		f.TotalPoints += int64(g.Points)
		f.CategoryCompletions[g.Category]++
	}
	return f
}

// FactsFromState uses the snapshot's points total next to its goal history.
func FactsFromState(s models.UserState) BadgeFacts {
	f := FactsFromGoals(s.Goals)
	f.TotalPoints = int64(s.TotalPoints)
	return f
}

// EvaluateBadges checks every catalog badge against facts. Badges already
// earned in prior stay earned with their original date; newly earned badges
// are stamped with now.
func EvaluateBadges(facts BadgeFacts, catalog []models.BadgeType, prior []models.Badge, now time.Time) BadgeResult {
	priorByID := make(map[string]models.Badge, len(prior))
	for _, b := range prior {
		priorByID[b.ID] = b
	}

	res := BadgeResult{Earned: []models.Badge{}, Available: []models.Badge{}}
	seen := make(map[string]bool, len(catalog))
	for _, t := range catalog {
		seen[t.ID] = true
		b := t.NewBadge()
		if p, ok := priorByID[t.ID]; ok {
			b.UserID = p.UserID
			if p.Earned {
				b.Earned = true
				b.EarnedDate = p.EarnedDate
				res.Earned = append(res.Earned, b)
				continue
			}
		}
		if meetsThreshold(facts, t.Threshold) {
			earnedAt := now
			b.Earned = true
			b.EarnedDate = &earnedAt
			res.Earned = append(res.Earned, b)
			res.NewlyEarned = append(res.NewlyEarned, b)
			continue
		}
		res.Available = append(res.Available, b)
	}

	// Earned badges dropped from the catalog are still earned.
	for _, p := range prior {
		if !seen[p.ID] && p.Earned {
			res.Earned = append(res.Earned, p)
		}
	}
	return res
}

func meetsThreshold(f BadgeFacts, req map[string]int64) bool {
	if len(req) == 0 {
		return false
	}
	for key, required := range req {
		switch key {
		case models.ThresholdCompletedGoals:
			if f.CompletedGoals < required {
				return false
			}
		case models.ThresholdTotalPoints:
			if f.TotalPoints < required {
				return false
			}
		default:
			if !meetsCategoryThreshold(f, key, required) {
				return false
			}
		}
	}
	return true
}

func meetsCategoryThreshold(f BadgeFacts, key string, required int64) bool {
	for _, c := range models.GoalCategories {
		if key == models.CategoryThreshold(c) {
			return f.CategoryCompletions[c] >= required
		}
	}
	return false
}
