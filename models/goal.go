package models

import (
	"time"

	"github.com/gosimple/slug"
)

// GoalCategory is the closed set of goal categories.
type GoalCategory string

const (
	CategoryTransport   GoalCategory = "transport"
	CategoryFood        GoalCategory = "food"
	CategoryWaste       GoalCategory = "waste"
	CategoryElectricity GoalCategory = "electricity"
)

// GoalCategories lists every category in display order.
var GoalCategories = []GoalCategory{
	CategoryTransport,
	CategoryFood,
	CategoryWaste,
	CategoryElectricity,
}

// Goal is a target the user marks complete once for a point reward.
// (UserID, ID) is the primary key: catalog ids repeat across users.
type Goal struct {
	UserID        string       `gorm:"primaryKey" json:"-"`
	ID            string       `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `json:"description"`
	Category      GoalCategory `gorm:"type:varchar(16);index" json:"category"`
	Target        float64      `json:"target"`
	Points        int          `gorm:"not null" json:"points"`
	Completed     bool         `gorm:"not null" json:"completed"`
	DateCompleted *time.Time   `json:"dateCompleted,omitempty"`
	GeneratedAt   *time.Time   `gorm:"index" json:"generatedAt,omitempty"` // set on goals built from recent entries
}

func catalogGoal(title, description string, category GoalCategory, target float64, points int) Goal {
	return Goal{
		ID:          slug.Make(title),
		Title:       title,
		Description: description,
		Category:    category,
		Target:      target,
		Points:      points,
	}
}

// GoalCatalog is seeded into every new user's state.
var GoalCatalog = []Goal{
	catalogGoal("Use Public Transport", "Use public transport for 5 days this week", CategoryTransport, 5, 50),
	catalogGoal("Reduce Electricity Usage", "Reduce electricity use by 10% this week", CategoryElectricity, 10, 75),
	catalogGoal("Minimize Food Waste", "Reduce food waste by 20% this week", CategoryFood, 20, 60),
	catalogGoal("Increase Recycling", "Recycle 90% of your waste this week", CategoryWaste, 90, 40),
}
