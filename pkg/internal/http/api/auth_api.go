package api

import (
	"time"

	"github.com/meridian-press/chronicle/pkg/internal/http/exts"
	"github.com/meridian-press/chronicle/pkg/internal/models"
	"github.com/meridian-press/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func doRegister(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" form:"name" validate:"required,lowercase,alphanum,min=3,max=32"`
		Nick     string `json:"nick" form:"nick" validate:"max=256"`
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required,min=6"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if len(data.Nick) == 0 {
		data.Nick = data.Name
	}

	account, err := services.NewAccount(data.Name, data.Nick, data.Email, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

func doLogin(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" form:"name" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.GetAccountWithName(data.Name)
	if err != nil || !services.CheckAccountPassword(account, data.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	session, err := services.NewAuthSession(account)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Cookie(&fiber.Cookie{
		Name:     exts.AuthCookieName,
		Value:    session.Token,
		Expires:  session.ExpiredAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect("/posts", fiber.StatusSeeOther)
}

func doLogout(c *fiber.Ctx) error {
	if session, ok := c.Locals("session").(models.AuthSession); ok {
		_ = services.DeleteAuthSession(session)
	}

	c.Cookie(&fiber.Cookie{
		Name:     exts.AuthCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect("/posts", fiber.StatusSeeOther)
}
