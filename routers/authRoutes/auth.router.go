package authRoutes

import (
	authControllers "pythonista/controllers/auth"
	"pythonista/middleware"
	authValidators "pythonista/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Post("/signup", authValidators.Signup(), authControllers.Signup)
	app.Post("/login", authValidators.Login(), authControllers.Login)
	app.Post("/logout", middleware.JWTMiddleware, authControllers.Logout)
}
