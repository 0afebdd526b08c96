package models

import "time"

// DailyEntry is one day's recorded activity. Entries are append-only.
type DailyEntry struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"index;not null" json:"userId"`
	Date           time.Time `gorm:"index;not null" json:"date"`
	Travel         float64   `json:"travel"`
	Food           float64   `json:"food"`
	Waste          float64   `json:"waste"`
	Electricity    float64   `json:"electricity"`
	TotalFootprint float64   `json:"totalFootprint"` // always Travel+Food+Waste+Electricity
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
}

// Categories holds the four measured values of an entry.
type Categories struct {
	Travel      float64 `json:"travel"`
	Food        float64 `json:"food"`
	Waste       float64 `json:"waste"`
	Electricity float64 `json:"electricity"`
}

// Sum returns the total footprint of the four categories.
func (c Categories) Sum() float64 {
	return c.Travel + c.Food + c.Waste + c.Electricity
}

// ChartPoint is a derived, display-ready projection of an entry. Never persisted.
type ChartPoint struct {
	Date        string  `json:"date"`
	Travel      float64 `json:"travel"`
	Food        float64 `json:"food"`
	Waste       float64 `json:"waste"`
	Electricity float64 `json:"electricity"`
	Total       float64 `json:"total"`
}

// ChartFilter selects the chart window.
type ChartFilter string

const (
	ChartDaily   ChartFilter = "daily"
	ChartWeekly  ChartFilter = "weekly"
	ChartMonthly ChartFilter = "monthly"
)
