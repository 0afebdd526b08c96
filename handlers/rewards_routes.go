// handlers/rewards_routes.go
package handlers

import (
	"strconv"

	"ecometer/middleware"
	"ecometer/models"
	"ecometer/services"

	"github.com/gofiber/fiber/v2"
)

// DefaultLeaderboardRows is how many leaderboard rows are shown when no limit is given.
const DefaultLeaderboardRows = 5

func leaderboardPayload(res services.LeaderboardResult) fiber.Map {
	return fiber.Map{
		"rank":        res.Rank,
		"rank_label":  res.RankLabel(),
		"leaderboard": res.Entries,
	}
}

func setupRewardsRoutes(secured fiber.Router, engine *services.Engine) {
	secured.Get("/goals", func(c *fiber.Ctx) error {
		goals, err := engine.Goals(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err, "failed to get goals")
		}
		return c.JSON(fiber.Map{"goals": goals})
	})

	secured.Post("/goals", func(c *fiber.Ctx) error {
		var req services.GoalInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		goal, err := engine.AddGoal(c.UserContext(), middleware.UserID(c), req)
		if err != nil {
			return fail(c, err, "failed to add goal")
		}
		return c.Status(fiber.StatusCreated).JSON(goal)
	})

	secured.Post("/goals/generate", func(c *fiber.Ctx) error {
		gen, err := engine.GenerateGoals(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return fail(c, err, "failed to generate goals")
		}
		if gen.Skipped {
			return c.JSON(fiber.Map{
				"message":            "goals already generated recently",
				"goals":              gen.Goals,
				"next_generation_at": gen.NextAt,
			})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "goals generated",
			"goals":   gen.Goals,
		})
	})

	secured.Patch("/goals/:id/complete", func(c *fiber.Ctx) error {
		res, err := engine.CompleteGoal(c.UserContext(), middleware.UserID(c), c.Params("id"))
		if err != nil {
			return fail(c, err, "failed to complete goal")
		}
		if res.NewBadges == nil {
			res.NewBadges = []models.Badge{}
		}
		return c.JSON(res)
	})

	secured.Get("/badges", func(c *fiber.Ctx) error {
		res, err := engine.EvaluateBadges(c.UserContext(), middleware.UserID(c))
		if err != nil {
			if degraded(c, err) {
				return c.JSON(fiber.Map{"earned": []models.Badge{}, "available": []models.Badge{}, "degraded": true})
			}
			return fail(c, err, "failed to evaluate badges")
		}
		return c.JSON(res)
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLeaderboardRows)))
		if err != nil || limit < 0 {
			limit = DefaultLeaderboardRows
		}
		res, err := engine.Rank(c.UserContext(), middleware.UserID(c))
		if err != nil {
			if degraded(c, err) {
				payload := leaderboardPayload(services.LeaderboardResult{Entries: []models.LeaderboardEntry{}})
				payload["degraded"] = true
				return c.JSON(payload)
			}
			return fail(c, err, "failed to rank user")
		}
		return c.JSON(leaderboardPayload(res.Top(limit)))
	})

	// Points, badges and the top of the leaderboard in one payload.
	secured.Get("/rewards", func(c *fiber.Ctx) error {
		ctx, userID := c.UserContext(), middleware.UserID(c)
		payload := fiber.Map{
			"totalPoints":     0,
			"earnedBadges":    []models.Badge{},
			"availableBadges": []models.Badge{},
			"leaderboard":     []models.LeaderboardEntry{},
			"rank":            services.NoRank,
			"rank_label":      services.LeaderboardResult{Rank: services.NoRank}.RankLabel(),
		}

		badges, err := engine.EvaluateBadges(ctx, userID)
		if err != nil {
			if !degraded(c, err) {
				return fail(c, err, "failed to evaluate badges")
			}
			payload["degraded"] = true
			return c.JSON(payload)
		}
		points, err := engine.Points(ctx, userID)
		if err != nil {
			return fail(c, err, "failed to get points")
		}
		payload["totalPoints"] = points
		payload["earnedBadges"] = badges.Earned
		payload["availableBadges"] = badges.Available

		// The roster is optional; a leaderboard outage still returns points and badges.
		rank, err := engine.Rank(ctx, userID)
		if err != nil {
			if !degraded(c, err) {
				return fail(c, err, "failed to rank user")
			}
			payload["degraded"] = true
			return c.JSON(payload)
		}
		top := rank.Top(DefaultLeaderboardRows)
		payload["leaderboard"] = top.Entries
		payload["rank"] = top.Rank
		payload["rank_label"] = top.RankLabel()
		return c.JSON(payload)
	})
}
