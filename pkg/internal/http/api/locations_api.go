package api

import (
	"github.com/meridian-press/chronicle/pkg/internal/http/exts"
	"github.com/meridian-press/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listLocation(c *fiber.Ctx) error {
	take, offset := pageArgs(c)

	locations, err := services.ListLocation(take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(locations)
}

func createLocation(c *fiber.Ctx) error {
	if _, err := ensureCuratorRole(c); err != nil {
		return err
	}

	var data struct {
		Name string `json:"name" form:"name" validate:"required,max=256"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	location, err := services.NewLocation(data.Name)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(location)
}

func deleteLocation(c *fiber.Ctx) error {
	if _, err := ensureCuratorRole(c); err != nil {
		return err
	}
	id, _ := c.ParamsInt("locationId", 0)

	location, err := services.GetLocationWithID(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeleteLocation(location); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
