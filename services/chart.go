package services

import (
	"fmt"
	"sort"
	"strings"

	"ecometer/models"
)

// Windows select by entry count, not calendar span.
var chartWindows = map[models.ChartFilter]int{
	models.ChartDaily:   7,
	models.ChartWeekly:  28,
	models.ChartMonthly: 365,
}

// ChartDateLayout matches the en-US short date display.
const ChartDateLayout = "1/2/2006"

// ParseChartFilter checks a filter value at the boundary.
func ParseChartFilter(s string) (models.ChartFilter, error) {
	f := models.ChartFilter(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := chartWindows[f]; !ok {
		return "", fmt.Errorf("%w: unknown chart filter %q", ErrValidation, s)
	}
	return f, nil
}

// BuildSeries projects the most recent entries of the filter's window into
// chart points, oldest first. The input slice is not modified.
func BuildSeries(entries []models.DailyEntry, filter models.ChartFilter) []models.ChartPoint {
	window, ok := chartWindows[filter]
	if !ok || len(entries) == 0 {
		return []models.ChartPoint{}
	}

	sorted := append(make([]models.DailyEntry, 0, len(entries)), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if len(sorted) > window {
		sorted = sorted[len(sorted)-window:]
	}

	points := make([]models.ChartPoint, len(sorted))
	for i, e := range sorted {
		points[i] = models.ChartPoint{
			Date:        e.Date.Format(ChartDateLayout),
			Travel:      e.Travel,
			Food:        e.Food,
			Waste:       e.Waste,
			Electricity: e.Electricity,
			Total:       e.TotalFootprint,
		}
	}
	return points
}
