package api

import (
	"github.com/meridian-press/chronicle/pkg/internal/http/exts"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/meridian-press/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ensureCuratorRole gates the curation surface for categories and locations.
// The publishing side of the system is self-service; taxonomy is not.
func ensureCuratorRole(c *fiber.Ctx) (models.Account, error) {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return models.Account{}, err
	}
	user := c.Locals("user").(models.Account)

	if !lo.Contains(viper.GetStringSlice("security.curator_accounts"), user.Name) {
		return user, fiber.NewError(fiber.StatusForbidden, "only curators can manage the taxonomy")
	}

	return user, nil
}

func listCategory(c *fiber.Ctx) error {
	take, offset := pageArgs(c)

	categories, err := services.ListCategory(take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(categories)
}

func getCategory(c *fiber.Ctx) error {
	slug := c.Params("slug")

	category, err := services.GetCategoryWithSlug(slug)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(category)
}

// listCategoryPost serves the category page. A missing or unpublished category
// is a page-not-found, never an empty listing.
func listCategoryPost(c *fiber.Ctx) error {
	slug := c.Params("slug")
	take, offset := pageArgs(c)

	count, items, err := services.ListPostsWithCategory(slug, take, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if c.QueryBool("truncate", true) {
		for idx, item := range items {
			if item != nil {
				items[idx] = lo.ToPtr(services.TruncatePostContent(*item))
			}
		}
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func createCategory(c *fiber.Ctx) error {
	if _, err := ensureCuratorRole(c); err != nil {
		return err
	}

	var data struct {
		Slug        string `json:"slug" form:"slug" validate:"required,lowercase,max=64"`
		Title       string `json:"title" form:"title" validate:"required,max=256"`
		Description string `json:"description" form:"description"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	category, err := services.NewCategory(data.Slug, data.Title, data.Description)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

func editCategory(c *fiber.Ctx) error {
	if _, err := ensureCuratorRole(c); err != nil {
		return err
	}
	slug := c.Params("slug")

	category, err := services.GetCategory(slug)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	var data struct {
		Slug        string `json:"slug" form:"slug" validate:"required,lowercase,max=64"`
		Title       string `json:"title" form:"title" validate:"required,max=256"`
		Description string `json:"description" form:"description"`
		IsPublished bool   `json:"is_published" form:"is_published"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	category, err = services.EditCategory(category, data.Slug, data.Title, data.Description, data.IsPublished)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(category)
}

func deleteCategory(c *fiber.Ctx) error {
	if _, err := ensureCuratorRole(c); err != nil {
		return err
	}
	slug := c.Params("slug")

	category, err := services.GetCategory(slug)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if err := services.DeleteCategory(category); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
