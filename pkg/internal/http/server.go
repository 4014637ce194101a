package http

import (
	"github.com/meridian-press/chronicle/pkg/internal/http/api"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	*fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Chronicle",
		AppName:               "Chronicle",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             50 * 1024 * 1024,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
		ErrorHandler:          renderErrorPage,
	})

	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	app.Use(authMiddleware)

	api.MapAPIs(app, "/")

	return &App{app}
}

// renderErrorPage maps failures onto the distinct not-found, forbidden and
// internal error pages.
func renderErrorPage(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	var title string
	switch code {
	case fiber.StatusNotFound:
		title = "Page Not Found"
	case fiber.StatusForbidden:
		title = "Forbidden"
	case fiber.StatusInternalServerError:
		title = "Server Error"
	default:
		title = "Request Failed"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  code,
		"title":   title,
		"message": err.Error(),
	})
}

func (v *App) Listen() {
	if err := v.App.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
