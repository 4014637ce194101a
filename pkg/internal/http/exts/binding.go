package exts

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

// BindAndValidate parses the request payload into out and checks it against the
// struct's validate tags, turning failures into field-level bad request errors.
func BindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := validation.Struct(out); err != nil {
		if fields, ok := err.(validator.ValidationErrors); ok {
			messages := make([]string, 0, len(fields))
			for _, field := range fields {
				messages = append(messages, fmt.Sprintf("field %s failed on %s", field.Field(), field.Tag()))
			}
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unable to validate request: %v", messages))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return nil
}
