package services

import "ecometer/models"

// EmissionFactors convert raw activity quantities into kg CO2.
type EmissionFactors struct {
	Travel      float64 // per km
	Food        float64 // per meat-based meal
	Waste       float64 // per kg of waste
	Electricity float64 // per kWh
}

var DefaultEmissionFactors = EmissionFactors{
	Travel:      0.192,
	Food:        2.5,
	Waste:       1.5,
	Electricity: 4.5,
}

// ConvertActivity validates raw quantities and converts them to emissions.
func ConvertActivity(raw models.Categories, f EmissionFactors) (models.Categories, error) {
	if err := validateCategories(raw); err != nil {
		return models.Categories{}, err
	}
	return models.Categories{
		Travel:      raw.Travel * f.Travel,
		Food:        raw.Food * f.Food,
		Waste:       raw.Waste * f.Waste,
		Electricity: raw.Electricity * f.Electricity,
	}, nil
}
