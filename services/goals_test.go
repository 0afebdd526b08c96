package services

import (
	"math"
	"testing"
	"time"

	"ecometer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteGoalTransition(t *testing.T) {
	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	s := models.NewUserState("u1")
	id := s.Goals[1].ID

	g, changed, err := completeGoal(&s, id, now)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, g.Completed)
	require.NotNil(t, g.DateCompleted)
	assert.Equal(t, now, *g.DateCompleted)
	assert.Equal(t, s.Goals[1].Points, s.TotalPoints)
	assert.NoError(t, VerifyPoints(s))
}

func TestCompleteGoalIsIdempotent(t *testing.T) {
	first := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	s := models.NewUserState("u1")
	id := s.Goals[0].ID

	_, _, err := completeGoal(&s, id, first)
	require.NoError(t, err)
	once := s.Clone()

	g, changed, err := completeGoal(&s, id, first.Add(24*time.Hour))

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, once, s)
	assert.Equal(t, first, *g.DateCompleted)
}

func TestCompleteGoalUnknownID(t *testing.T) {
	s := models.NewUserState("u1")
	before := s.Clone()

	_, _, err := completeGoal(&s, "nope", time.Now())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, s)
}

func TestPointsMatchCompletedGoalsAfterAnySequence(t *testing.T) {
	s := models.NewUserState("u1")
	now := time.Now()
	sequence := []string{s.Goals[2].ID, s.Goals[0].ID, s.Goals[2].ID, "missing", s.Goals[3].ID, s.Goals[0].ID}

	for _, id := range sequence {
		_, _, _ = completeGoal(&s, id, now)
		require.NoError(t, VerifyPoints(s))
	}
	assert.Equal(t, s.Goals[0].Points+s.Goals[2].Points+s.Goals[3].Points, s.TotalPoints)
}

func TestVerifyPointsDetectsDrift(t *testing.T) {
	s := models.NewUserState("u1")
	s.TotalPoints = 5
	assert.ErrorIs(t, VerifyPoints(s), ErrInconsistentState)
}

func TestNewCustomGoal(t *testing.T) {
	g, err := newCustomGoal("u1", GoalInput{Title: " Bike to work ", Category: "Transport"})
	require.NoError(t, err)
	assert.Equal(t, "Bike to work", g.Title)
	assert.Equal(t, models.CategoryTransport, g.Category)
	assert.Equal(t, DefaultGoalPoints, g.Points)
	assert.NotEmpty(t, g.ID)

	_, err = newCustomGoal("u1", GoalInput{Title: "x", Category: "general"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = newCustomGoal("u1", GoalInput{Category: "food"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = newCustomGoal("u1", GoalInput{Title: "x", Category: "food", Points: -3})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewCustomGoalPointsCap(t *testing.T) {
	tests := []struct {
		name    string
		points  int
		wantErr bool
	}{
		{"default", 0, false},
		{"at cap", MaxCustomGoalPoints, false},
		{"above cap", MaxCustomGoalPoints + 1, true},
		{"max int", math.MaxInt, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCustomGoal("u1", GoalInput{Title: "Bike to work", Category: "transport", Points: tt.points})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCompleteGoalRefusesOverflow(t *testing.T) {
	s := models.NewUserState("u1")
	s.TotalPoints = math.MaxInt - 5
	before := s.Clone()

	_, _, err := completeGoal(&s, s.Goals[0].ID, time.Now())

	assert.ErrorIs(t, err, ErrInconsistentState)
	assert.Equal(t, before, s)
}
