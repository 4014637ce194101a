package api

import (
	"fmt"

	"github.com/meridian-press/chronicle/pkg/internal/database"
	"github.com/meridian-press/chronicle/pkg/internal/http/exts"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/meridian-press/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func createComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	postId, _ := c.ParamsInt("postId", 0)

	var post models.Post
	if err := database.C.Where("id = ?", postId).First(&post).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unable to find post to comment: %v", err))
	}

	var data struct {
		Text string `json:"text" form:"text" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.NewComment(user, post, data.Text); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", post.ID), fiber.StatusSeeOther)
}

func editComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	postId, _ := c.ParamsInt("postId", 0)
	commentId, _ := c.ParamsInt("commentId", 0)

	comment, err := services.GetComment(uint(postId), uint(commentId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	// Unlike posts, tampering with someone else's comment is an explicit
	// denial, not a silent redirect.
	if !services.CanMutate(user, comment.AuthorID) {
		return fiber.NewError(fiber.StatusForbidden, "only the author can modify this comment")
	}

	var data struct {
		Text string `json:"text" form:"text" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.EditComment(comment, data.Text); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect(fmt.Sprintf("/posts/%d", comment.PostID), fiber.StatusSeeOther)
}

func deleteComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	postId, _ := c.ParamsInt("postId", 0)
	commentId, _ := c.ParamsInt("commentId", 0)

	comment, err := services.GetComment(uint(postId), uint(commentId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	if !services.CanMutate(user, comment.AuthorID) {
		return fiber.NewError(fiber.StatusForbidden, "only the author can delete this comment")
	}

	if err := services.DeleteComment(comment); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect("/posts", fiber.StatusSeeOther)
}
