package exts

import (
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

const AuthCookieName = "chronicle_session"

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you must be logged in to do this")
	}

	return nil
}
