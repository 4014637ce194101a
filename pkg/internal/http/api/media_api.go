package api

import (
	"fmt"
	"path/filepath"

	"github.com/meridian-press/chronicle/pkg/internal/http/exts"
	"github.com/meridian-press/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func uploadMedia(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	if !services.MediaStoreEnabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "media storage is not configured")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("missing file in request: %v", err))
	}

	file, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	defer file.Close()

	key := uuid.NewString() + filepath.Ext(header.Filename)
	contentType := header.Header.Get(fiber.HeaderContentType)

	if err := services.UploadMedia(c.Context(), key, file, header.Size, contentType); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"key": key,
		"url": fmt.Sprintf("/media/%s", key),
	})
}

func getMedia(c *fiber.Ctx) error {
	if !services.MediaStoreEnabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "media storage is not configured")
	}

	key := c.Params("key")

	object, contentType, err := services.OpenMedia(c.Context(), key)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.SendStream(object)
}
