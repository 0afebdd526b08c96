package services

import (
	"sort"

	"ecometer/models"
)

// DefaultSummaryWindow is how many recent entries a summary covers.
const DefaultSummaryWindow = 30

// CategorySummary totals recent emissions per category.
type CategorySummary struct {
	Entries     int                 `json:"entries"`
	Totals      models.Categories   `json:"totals"`
	Total       float64             `json:"total"`
	Highest     models.GoalCategory `json:"highest,omitempty"`
	HighestTips []string            `json:"tips,omitempty"`
}

// Entry categories map to goal categories; travel is tracked under transport.
var categoryTips = map[models.GoalCategory][]string{
	models.CategoryTransport: {
		"Walk or bike for trips under 2 km",
		"Use public transportation for longer distances",
		"Carpool or rideshare when driving is necessary",
		"Consider an electric or hybrid vehicle",
		"Work from home when possible",
	},
	models.CategoryFood: {
		"Eat more plant-based meals",
		"Reduce red meat consumption",
		"Buy local and seasonal produce",
		"Plan meals to reduce food waste",
		"Grow your own herbs and vegetables",
	},
	models.CategoryElectricity: {
		"Switch to LED light bulbs",
		"Unplug devices when not in use",
		"Use programmable thermostats",
		"Insulate your home properly",
		"Consider renewable energy sources",
	},
	models.CategoryWaste: {
		"Use reusable bags and containers",
		"Recycle properly and consistently",
		"Compost organic waste",
		"Buy products with minimal packaging",
		"Repair items instead of replacing them",
	},
}

// TipsFor returns the static tips of a category.
func TipsFor(c models.GoalCategory) []string {
	return append([]string(nil), categoryTips[c]...)
}

// Summarize sums the most recent window entries by category and names the
// highest-emitting one. Empty input yields a zero summary with no highest category.
func Summarize(entries []models.DailyEntry, window int) CategorySummary {
	if window <= 0 {
		window = DefaultSummaryWindow
	}
	sorted := append(make([]models.DailyEntry, 0, len(entries)), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if len(sorted) > window {
		sorted = sorted[len(sorted)-window:]
	}

	var sum CategorySummary
	sum.Entries = len(sorted)
	for _, e := range sorted {
		sum.Totals.Travel += e.Travel
		sum.Totals.Food += e.Food
		sum.Totals.Waste += e.Waste
		sum.Totals.Electricity += e.Electricity
	}
	sum.Total = sum.Totals.Sum()
	if sum.Total == 0 {
		return sum
	}

	ranked := rankCategories(sum.Totals)
	sum.Highest = ranked[0].category
	sum.HighestTips = TipsFor(ranked[0].category)
	return sum
}

type categoryTotal struct {
	category models.GoalCategory
	value    float64
}

// rankCategories orders the categories with positive totals, highest first.
// Ties keep display order.
func rankCategories(t models.Categories) []categoryTotal {
	all := []categoryTotal{
		{models.CategoryTransport, t.Travel},
		{models.CategoryFood, t.Food},
		{models.CategoryWaste, t.Waste},
		{models.CategoryElectricity, t.Electricity},
	}
	ranked := all[:0]
	for _, c := range all {
		if c.value > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].value > ranked[j].value })
	return ranked
}
