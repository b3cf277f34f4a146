package userProfileRoutes

import (
	userProfileController "pythonista/controllers/userControllers"
	"pythonista/middleware"
	"pythonista/progress"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	app.Get("/profile", middleware.JWTMiddleware, middleware.RequirePermission(progress.PermViewProfile), userProfileController.GetProfile)
}
