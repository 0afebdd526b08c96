package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"ecometer/models"

	"github.com/google/uuid"
)

const (
	// DefaultGoalPoints is awarded by custom goals created without a reward.
	DefaultGoalPoints = 10

	// MaxCustomGoalPoints caps the reward a user can set on their own goal.
	MaxCustomGoalPoints = 30
)

// ParseGoalCategory checks a category value at the boundary.
func ParseGoalCategory(s string) (models.GoalCategory, error) {
	c := models.GoalCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range models.GoalCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown goal category %q", ErrValidation, s)
}

// GoalInput describes a custom goal added next to the seeded catalog.
type GoalInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Target      float64 `json:"target"`
	Points      int     `json:"points"`
}

func newCustomGoal(userID string, in GoalInput) (models.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Goal{}, fmt.Errorf("%w: goal title is required", ErrValidation)
	}
	category, err := ParseGoalCategory(in.Category)
	if err != nil {
		return models.Goal{}, err
	}
	points := in.Points
	if points == 0 {
		points = DefaultGoalPoints
	}
	if points < 0 || points > MaxCustomGoalPoints {
		return models.Goal{}, fmt.Errorf("%w: goal points must be between 1 and %d, got %d", ErrValidation, MaxCustomGoalPoints, in.Points)
	}
	if in.Target < 0 {
		return models.Goal{}, fmt.Errorf("%w: goal target must be >= 0", ErrValidation)
	}
	return models.Goal{
		UserID:      userID,
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		Category:    category,
		Target:      in.Target,
		Points:      points,
	}, nil
}

// completeGoal applies the active -> completed transition on s.
// changed is false when the goal was already completed; s is then untouched.
func completeGoal(s *models.UserState, goalID string, now time.Time) (goal models.Goal, changed bool, err error) {
	for i := range s.Goals {
		g := &s.Goals[i]
		if g.ID != goalID {
			continue
		}
		if g.Completed {
			return *g, false, nil
		}
		if g.Points <= 0 || s.TotalPoints > math.MaxInt-g.Points {
			return models.Goal{}, false, fmt.Errorf("%w: goal %q would move total points %d by %d", ErrInconsistentState, goalID, s.TotalPoints, g.Points)
		}
		completedAt := now
		g.Completed = true
		g.DateCompleted = &completedAt
		s.TotalPoints += g.Points
		return *g, true, nil
	}
	return models.Goal{}, false, fmt.Errorf("%w: goal %q", ErrNotFound, goalID)
}

// CompletedPoints sums the rewards of every completed goal.
func CompletedPoints(goals []models.Goal) int {
	total := 0
	for _, g := range goals {
		if g.Completed {
			total += g.Points
		}
	}
	return total
}

// VerifyPoints checks TotalPoints against the completed goals it was accrued from.
func VerifyPoints(s models.UserState) error {
	if want := CompletedPoints(s.Goals); s.TotalPoints != want {
		return fmt.Errorf("%w: total points %d, completed goals sum to %d", ErrInconsistentState, s.TotalPoints, want)
	}
	return nil
}
