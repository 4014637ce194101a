package api

import (
	pkg "github.com/meridian-press/chronicle/pkg/internal"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

func getAboutPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title":   "About",
		"version": pkg.AppVersion,
		"content": viper.GetString("pages.about"),
	})
}

func getRulesPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title":   "Rules",
		"content": viper.GetString("pages.rules"),
	})
}
