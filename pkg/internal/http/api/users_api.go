package api

import (
	"fmt"

	"github.com/meridian-press/chronicle/pkg/internal/http/exts"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/meridian-press/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func getUserProfile(c *fiber.Ctx) error {
	name := c.Params("name")

	account, err := services.GetAccountWithName(name)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(account)
}

// listUserPost is the profile listing: every post the author wrote, drafts of
// the future included, newest first.
func listUserPost(c *fiber.Ctx) error {
	name := c.Params("name")
	take, offset := pageArgs(c)

	account, err := services.GetAccountWithName(name)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	count, items, err := services.ListPostsWithAuthor(account, take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if c.QueryBool("truncate", true) {
		for idx, item := range items {
			if item != nil {
				items[idx] = lo.ToPtr(services.TruncatePostContent(*item))
			}
		}
	}

	return c.JSON(fiber.Map{
		"profile": account,
		"count":   count,
		"data":    items,
	})
}

func editMyProfile(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Nick        string `json:"nick" form:"nick" validate:"max=256"`
		Description string `json:"description" form:"description"`
		Avatar      string `json:"avatar" form:"avatar"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.EditAccountProfile(user, data.Nick, data.Description, data.Avatar); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/users/%s/posts", user.Name), fiber.StatusSeeOther)
}
