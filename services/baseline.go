package services

import (
	"fmt"
	"strings"

	"ecometer/models"

	"golang.org/x/text/cases"
)

// Estimated tons CO2/year per person for each location type.
var baselineMultipliers = map[string]float64{
	models.LocationUrban:    12.5,
	models.LocationSuburban: 16.2,
	models.LocationRural:    18.8,
}

// DefaultBaselineMultiplier applies to any unrecognized location type.
// Unknown locations are not an error.
const DefaultBaselineMultiplier = 15.0

// ComputeBaseline returns the yearly footprint estimate for a household.
func ComputeBaseline(locationType string, householdSize int) (float64, error) {
	if householdSize <= 0 {
		return 0, fmt.Errorf("%w: household size must be positive, got %d", ErrValidation, householdSize)
	}
	return baselineMultiplier(locationType) * float64(householdSize), nil
}

func baselineMultiplier(locationType string) float64 {
	key := cases.Fold().String(strings.TrimSpace(locationType))
	if m, ok := baselineMultipliers[key]; ok {
		return m
	}
	return DefaultBaselineMultiplier
}
