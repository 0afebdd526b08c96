package models

import (
	"time"
)

// User is the engine's view of an account owned by the profile service.
// The engine only reads Location/HouseholdSize and writes BaselineFootprint/TotalPoints.
type User struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"index;not null" json:"name"`
	Location          string    `gorm:"type:varchar(32)" json:"location"` // urban, suburban, rural
	HouseholdSize     int       `gorm:"default:1" json:"household_size"`
	BaselineFootprint float64   `json:"baseline_footprint"` // tons CO2/year, set once at setup
	SetupComplete     bool      `gorm:"not null" json:"setup_complete"`
	TotalPoints       int       `gorm:"not null;index" json:"total_points"`
	JoinedAt          time.Time `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Location types with a known baseline multiplier.
const (
	LocationUrban    = "urban"
	LocationSuburban = "suburban"
	LocationRural    = "rural"
)
