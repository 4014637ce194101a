package http

import (
	"github.com/meridian-press/chronicle/pkg/internal/http/exts"
	"github.com/meridian-press/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// authMiddleware resolves the session cookie into the acting account. Anonymous
// requests pass through untouched; handlers decide whether they need an actor.
func authMiddleware(c *fiber.Ctx) error {
	token := c.Cookies(exts.AuthCookieName)
	if len(token) == 0 {
		return c.Next()
	}

	session, err := services.GetAuthSessionWithToken(token)
	if err != nil {
		return c.Next()
	}

	c.Locals("user", session.Account)
	c.Locals("session", session)

	return c.Next()
}
