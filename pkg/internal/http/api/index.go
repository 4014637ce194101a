package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		auth := api.Group("/auth").Name("Auth API")
		{
			auth.Post("/register", doRegister)
			auth.Post("/login", doLogin)
			auth.Post("/logout", doLogout)
		}

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", listPost)
			posts.Post("/", createPost)
			posts.Get("/:postId", getPost)
			posts.Put("/:postId", editPost)
			posts.Delete("/:postId", deletePost)

			posts.Post("/:postId/comments", createComment)
			posts.Put("/:postId/comments/:commentId", editComment)
			posts.Delete("/:postId/comments/:commentId", deleteComment)
		}

		categories := api.Group("/categories").Name("Categories API")
		{
			categories.Get("/", listCategory)
			categories.Post("/", createCategory)
			categories.Get("/:slug", getCategory)
			categories.Get("/:slug/posts", listCategoryPost)
			categories.Put("/:slug", editCategory)
			categories.Delete("/:slug", deleteCategory)
		}

		locations := api.Group("/locations").Name("Locations API")
		{
			locations.Get("/", listLocation)
			locations.Post("/", createLocation)
			locations.Delete("/:locationId", deleteLocation)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Put("/me", editMyProfile)
			users.Get("/:name", getUserProfile)
			users.Get("/:name/posts", listUserPost)
		}

		media := api.Group("/media").Name("Media API")
		{
			media.Post("/", uploadMedia)
			media.Get("/:key", getMedia)
		}

		pages := api.Group("/pages").Name("Pages API")
		{
			pages.Get("/about", getAboutPage)
			pages.Get("/rules", getRulesPage)
		}
	}
}
