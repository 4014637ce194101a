package api

import (
	"fmt"
	"time"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/http/exts"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/meridian-press/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// pageArgs reads the fixed-size pagination window. Page size is a process-wide
// configuration constant, not a request parameter.
func pageArgs(c *fiber.Ctx) (take int, offset int) {
	take = viper.GetInt("app.page_size")
	if take <= 0 {
		take = 10
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	return take, (page - 1) * take
}

// parsePubDate reads an optional RFC 3339 publication moment. Future values
// are allowed; they schedule the post.
func parsePubDate(raw string) (*time.Time, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	when, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid pub_date, must be RFC 3339: %v", err))
	}
	return &when, nil
}

func listPost(c *fiber.Ctx) error {
	take, offset := pageArgs(c)

	count, items, err := services.ListVisiblePosts(take, offset)
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
		"count": count,
		"data":  items,
	})
}

func getPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	comments, err := services.ListPostComments(item.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"post":     item,
		"comments": comments,
	})
}

func createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Title       string   `json:"title" form:"title" validate:"required,max=256"`
		Text        string   `json:"text" form:"text" validate:"required"`
		PubDate     string   `json:"pub_date" form:"pub_date"`
		CategoryID  *uint    `json:"category_id" form:"category_id"`
		LocationID  *uint    `json:"location_id" form:"location_id"`
		Image       *string  `json:"image" form:"image"`
		Attachments []string `json:"attachments" form:"attachments"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	pubDate, err := parsePubDate(data.PubDate)
	if err != nil {
		return err
	}

	item := models.Post{
		Title:       data.Title,
		Text:        data.Text,
		CategoryID:  data.CategoryID,
		LocationID:  data.LocationID,
		Image:       data.Image,
		Attachments: data.Attachments,
	}
	if pubDate != nil {
		item.PubDate = *pubDate
	}

	if _, err := services.NewPost(user, item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/users/%s/posts", user.Name), fiber.StatusSeeOther)
}

func editPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("postId", 0)

	var item models.Post
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	// Non-authors are quietly sent back to the read-only view instead of
	// getting an error.
	if !services.CanMutate(user, item.AuthorID) {
		return c.Redirect(fmt.Sprintf("/posts/%d", item.ID), fiber.StatusSeeOther)
	}

	var data struct {
		Title       string   `json:"title" form:"title" validate:"required,max=256"`
		Text        string   `json:"text" form:"text" validate:"required"`
		PubDate     string   `json:"pub_date" form:"pub_date"`
		CategoryID  *uint    `json:"category_id" form:"category_id"`
		LocationID  *uint    `json:"location_id" form:"location_id"`
		Image       *string  `json:"image" form:"image"`
		Attachments []string `json:"attachments" form:"attachments"`
		IsPublished *bool    `json:"is_published" form:"is_published"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	pubDate, err := parsePubDate(data.PubDate)
	if err != nil {
		return err
	}

	item.Title = data.Title
	item.Text = data.Text
	item.CategoryID = data.CategoryID
	item.LocationID = data.LocationID
	item.Image = data.Image
	item.Attachments = data.Attachments
	if pubDate != nil {
		item.PubDate = *pubDate
	}
	if data.IsPublished != nil {
		item.IsPublished = *data.IsPublished
	}

	if _, err := services.EditPost(item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect("/posts", fiber.StatusSeeOther)
}

func deletePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("postId", 0)

	var item models.Post
	if err := database.C.Where("id = ?", id).First(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if services.CanMutate(user, item.AuthorID) {
		if err := services.DeletePost(item); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	}

	return c.Redirect("/posts", fiber.StatusSeeOther)
}
