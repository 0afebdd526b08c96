package models

import (
	"time"

	"github.com/gosimple/slug"
)

// BadgeType: static catalog entry with its unlock predicate
type BadgeType struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Threshold   map[string]int64 // e.g., {"completed_goals": 5}, {"transport_goals": 3}
}

// Badge: per-user badge state, persisted with the user's snapshot
type Badge struct {
	UserID      string     `gorm:"primaryKey" json:"-"`
	ID          string     `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Icon        string     `gorm:"type:varchar(16)" json:"icon"`
	Earned      bool       `gorm:"not null" json:"earned"`
	EarnedDate  *time.Time `json:"earnedDate,omitempty"`
}

// Threshold keys understood by the badge evaluator.
const (
	ThresholdCompletedGoals = "completed_goals"
	ThresholdTotalPoints    = "total_points"
)

// CategoryThreshold is the threshold key counting completed goals of one category.
func CategoryThreshold(c GoalCategory) string {
	return string(c) + "_goals"
}

func badgeType(name, description, icon string, threshold map[string]int64) BadgeType {
	return BadgeType{
		ID:          slug.Make(name),
		Name:        name,
		Description: description,
		Icon:        icon,
		Threshold:   threshold,
	}
}

// BadgeCatalog lists every badge a user can earn.
var BadgeCatalog = []BadgeType{
	badgeType("Eco Warrior", "Complete 5 goals", "🌱",
		map[string]int64{ThresholdCompletedGoals: 5}),
	badgeType("Green Commuter", "Complete 3 transport goals", "🚌",
		map[string]int64{CategoryThreshold(CategoryTransport): 3}),
	badgeType("Energy Saver", "Complete 2 electricity goals", "⚡",
		map[string]int64{CategoryThreshold(CategoryElectricity): 2}),
	badgeType("Waste Reducer", "Complete 2 waste goals", "♻️",
		map[string]int64{CategoryThreshold(CategoryWaste): 2}),
	badgeType("Goal Getter", "Complete 10 goals", "🎯",
		map[string]int64{ThresholdCompletedGoals: 10}),
	badgeType("Point Master", "Earn 1000 total points", "🏅",
		map[string]int64{ThresholdTotalPoints: 1000}),
}

// NewBadge returns the unearned per-user badge for a catalog entry.
func (t BadgeType) NewBadge() Badge {
	return Badge{ID: t.ID, Name: t.Name, Description: t.Description, Icon: t.Icon}
}
