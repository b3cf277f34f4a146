package courseRoutes

import (
	controllers "pythonista/controllers/course"
	"pythonista/middleware"
	"pythonista/progress"
	validators "pythonista/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupTeacherRoutes sets up the teacher-only reporting and authoring routes
func SetupTeacherRoutes(app *fiber.App) {
	app.Get("/students", middleware.JWTMiddleware, middleware.RequirePermission(progress.PermViewStudents), controllers.GetStudents)

	questions := middleware.RequirePermission(progress.PermManageQuestions)
	app.Get("/questions", middleware.JWTMiddleware, questions, controllers.GetQuestionCatalog)
	app.Post("/questions", middleware.JWTMiddleware, questions, validators.CreateQuestion(), controllers.CreateQuestion)
}
