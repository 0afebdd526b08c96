// handlers/respond.go
package handlers

import (
	"errors"

	"ecometer/services"
	"ecometer/utils"

	"github.com/gofiber/fiber/v2"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrCollaboratorUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error, msg string) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		utils.Logger.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("❌ " + msg)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
		"cause": err.Error(),
	})
}

// degraded reports whether a read failed only because a collaborator is
// down, in which case the route answers with an empty payload.
func degraded(c *fiber.Ctx, err error) bool {
	if !errors.Is(err, services.ErrCollaboratorUnavailable) {
		return false
	}
	utils.Logger.Warn().Err(err).Str("path", c.Path()).Msg("⚠️ serving degraded payload")
	return true
}
