// handlers/footprint_routes.go
package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ecometer/middleware"
	"ecometer/models"
	"ecometer/services"

	"github.com/gofiber/fiber/v2"
)

type setupRequest struct {
	Location      string `json:"location"`
	HouseholdSize int    `json:"household_size"`
}

// entryRequest carries either footprint values (kg CO2) or, with mode
// "activity", raw quantities converted by the emission factors.
type entryRequest struct {
	Date        string  `json:"date"`
	Mode        string  `json:"mode"`
	Travel      float64 `json:"travel"`
	Food        float64 `json:"food"`
	Waste       float64 `json:"waste"`
	Electricity float64 `json:"electricity"`
}

const (
	modeFootprint = "footprint"
	modeActivity  = "activity"
)

func parseEntryDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD or RFC3339", services.ErrValidation, s)
}

func setupFootprintRoutes(app *fiber.App, secured fiber.Router, engine *services.Engine) {
	// 🔓 No user context needed
	app.Get("/baseline", func(c *fiber.Ctx) error {
		size, err := strconv.Atoi(c.Query("household_size", "1"))
		if err != nil {
			return fail(c, fmt.Errorf("%w: household_size must be an integer", services.ErrValidation), "invalid household size")
		}
		baseline, err := services.ComputeBaseline(c.Query("location"), size)
		if err != nil {
			return fail(c, err, "failed to compute baseline")
		}
		return c.JSON(fiber.Map{"baseline_footprint": baseline})
	})

	app.Get("/fact", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"fact": engine.DailyFact()})
	})

	// 🔐 Secured routes
	secured.Post("/setup", func(c *fiber.Ctx) error {
		var req setupRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		user, err := engine.Setup(c.UserContext(), middleware.UserID(c), req.Location, req.HouseholdSize)
		if err != nil {
			return fail(c, err, "setup failed")
		}
		return c.JSON(user)
	})

	secured.Post("/entries", func(c *fiber.Ctx) error {
		var req entryRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		date, err := parseEntryDate(req.Date)
		if err != nil {
			return fail(c, err, "invalid entry date")
		}
		values := models.Categories{
			Travel:      req.Travel,
			Food:        req.Food,
			Waste:       req.Waste,
			Electricity: req.Electricity,
		}

		var entry models.DailyEntry
		switch strings.ToLower(req.Mode) {
		case "", modeFootprint:
			entry, err = engine.AddEntry(c.UserContext(), middleware.UserID(c), date, values)
		case modeActivity:
			entry, err = engine.AddActivity(c.UserContext(), middleware.UserID(c), date, values)
		default:
			err = fmt.Errorf("%w: unknown mode %q", services.ErrValidation, req.Mode)
		}
		if err != nil {
			return fail(c, err, "failed to record entry")
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	})

	secured.Get("/entries", func(c *fiber.Ctx) error {
		entries, err := engine.Entries(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err, "failed to get entries")
		}
		return c.JSON(fiber.Map{"dailyData": entries})
	})

	secured.Get("/chart/:filter", func(c *fiber.Ctx) error {
		series, err := engine.BuildSeries(c.UserContext(), middleware.UserID(c), c.Params("filter"))
		if err != nil {
			if degraded(c, err) {
				return c.JSON(fiber.Map{"series": []models.ChartPoint{}, "degraded": true})
			}
			return fail(c, err, "failed to build chart")
		}
		return c.JSON(fiber.Map{"series": series})
	})

	secured.Get("/recommendations", func(c *fiber.Ctx) error {
		window, err := strconv.Atoi(c.Query("days", strconv.Itoa(services.DefaultSummaryWindow)))
		if err != nil || window <= 0 {
			return fail(c, fmt.Errorf("%w: days must be a positive integer", services.ErrValidation), "invalid summary window")
		}
		summary, err := engine.Recommendations(c.UserContext(), middleware.UserID(c), window)
		if err != nil {
			return fail(c, err, "failed to summarize entries")
		}
		return c.JSON(summary)
	})
}
