package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(GatewayAuthMiddleware("secret"))
	app.Use(UserContextMiddleware())
	app.Get("/user/me", func(c *fiber.Ctx) error { return c.SendString(UserID(c)) })
	app.Get("/fact", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestGatewayAndUserContext(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		auth   string
		userID string
		status int
	}{
		{"missing token", "/fact", "", "", fiber.StatusUnauthorized},
		{"wrong token", "/fact", "Bearer nope", "", fiber.StatusUnauthorized},
		{"bearer token", "/fact", "Bearer secret", "", fiber.StatusOK},
		{"raw token", "/fact", "secret", "", fiber.StatusOK},
		{"user route without id", "/user/me", "Bearer secret", "", fiber.StatusUnauthorized},
		{"user route with id", "/user/me", "Bearer secret", "u1", fiber.StatusOK},
	}

	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
