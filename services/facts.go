package services

import "time"

var carbonFacts = []string{
	"The average person's carbon footprint is about 16 tons of CO2 per year.",
	"Transportation accounts for about 29% of greenhouse gas emissions.",
	"A single tree can absorb about 48 pounds of CO2 per year.",
	"Eating less meat can reduce your carbon footprint by up to 35%.",
	"LED bulbs use 75% less energy than traditional incandescent bulbs.",
	"Carpooling can reduce your carbon emissions by up to 45%.",
	"Recycling one aluminum can saves enough energy to power a TV for 3 hours.",
	"Walking or biking instead of driving can save 1 pound of CO2 per mile.",
}

// DailyFact picks the fact of the day. YearDay counts days since Jan 0,
// so the pick is stable within a calendar day and cycles every year.
func DailyFact(now time.Time) string {
	return carbonFacts[now.YearDay()%len(carbonFacts)]
}
