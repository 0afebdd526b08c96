package services

import (
	"fmt"
	"math"
	"time"

	"ecometer/models"

	"github.com/google/uuid"
)

func validateCategories(c models.Categories) error {
	values := []struct {
		name string
		v    float64
	}{
		{"travel", c.Travel},
		{"food", c.Food},
		{"waste", c.Waste},
		{"electricity", c.Electricity},
	}
	for _, f := range values {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrValidation, f.name)
		}
		if f.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrValidation, f.name, f.v)
		}
	}
	return nil
}

// newEntry builds a validated entry. The total is always computed here.
func newEntry(userID string, date time.Time, c models.Categories) (models.DailyEntry, error) {
	if err := validateCategories(c); err != nil {
		return models.DailyEntry{}, err
	}
	return models.DailyEntry{
		ID:             uuid.NewString(),
		UserID:         userID,
		Date:           truncateDay(date),
		Travel:         c.Travel,
		Food:           c.Food,
		Waste:          c.Waste,
		Electricity:    c.Electricity,
		TotalFootprint: c.Sum(),
	}, nil
}

// truncateDay drops the time of day, keeping the calendar date in UTC.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
