package routers

import (
	"errors"
	"log"

	"pythonista/config"
	"pythonista/middleware"
	authRoutes "pythonista/routers/authRoutes"
	courseRoutes "pythonista/routers/courseRoutes"
	userProfileRoutes "pythonista/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// NewApp builds the fiber application with every route and middleware installed.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  config.AppConfig.CorsOrigins,
		AllowMethods:  "GET,POST",
		AllowHeaders:  "Content-Type,Authorization",
		ExposeHeaders: middleware.SessionHeader,
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupTeacherRoutes(app)
	userProfileRoutes.SetupUserRoutes(app)

	return app
}

// errorHandler answers unmatched routes and unexpected failures with the usual
// JSON shape.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound {
			return middleware.JsonResponse(c, fe.Code, middleware.KeyError, "Page not found.", nil)
		}
		return middleware.JsonResponse(c, fe.Code, middleware.KeyError, fe.Message, nil)
	}
	log.Printf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
		"There was a bug with our servers, please try again later!", nil)
}
