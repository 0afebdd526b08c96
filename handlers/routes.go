// handlers/routes.go
package handlers

import (
	"ecometer/middleware"
	"ecometer/services"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes mounts the public routes and the /user group. Gateway auth is
// expected to be applied globally by the caller.
func SetupRoutes(app *fiber.App, engine *services.Engine) {
	secured := app.Group("/user", middleware.UserContextMiddleware())
	setupFootprintRoutes(app, secured, engine)
	setupRewardsRoutes(secured, engine)
}
