package routes

import (
	"github.com/fathima-sithara/media-catalog/internal/handlers"
	"github.com/fathima-sithara/media-catalog/internal/middleware"
	"github.com/fathima-sithara/media-catalog/internal/utils"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, ah *handlers.AuthHandler, mh *handlers.MovieHandler, jwtMgr *utils.JWTManager, limiter *middleware.IPRateLimiter) {
	auth := app.Group("/auth", limiter.Handler())
	auth.Post("/register", ah.Register)
	auth.Post("/login", ah.Login)
	auth.Get("/me", middleware.JWTMiddleware(jwtMgr), ah.Me)

	movies := app.Group("/movies")
	movies.Post("/", mh.Create)
	movies.Get("/", mh.List)
	movies.Get("/:id", mh.GetByID)
	movies.Put("/:id", mh.Update)
	movies.Delete("/:id", mh.Delete)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
}
