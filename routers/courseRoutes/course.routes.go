package courseRoutes

import (
	controllers "pythonista/controllers/course"
	"pythonista/middleware"
	"pythonista/progress"
	validators "pythonista/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the learner-facing chapter, test and placement routes
func SetupCourseRoutes(app *fiber.App) {
	learner := middleware.RequirePermission(progress.PermTakeCourse)

	// Chapters
	app.Get("/chapters", middleware.JWTMiddleware, learner, controllers.GetChapters)
	app.Post("/chapters", middleware.JWTMiddleware, learner, validators.CompleteChapter(), controllers.CompleteChapter)

	// Tests
	app.Get("/tests", middleware.JWTMiddleware, learner, validators.SelectTest(), controllers.GetTest)
	app.Post("/tests", middleware.JWTMiddleware, learner, validators.SelectTest(), controllers.GetTest)

	// Answers and results
	app.Post("/rightanswer", middleware.JWTMiddleware, middleware.RequirePermission(progress.PermAnswer), validators.RightAnswer(), controllers.RightAnswer)
	app.Post("/submitanswer", middleware.JWTMiddleware, learner, validators.SubmitAnswer(), controllers.SubmitAnswer)

	// Placement test
	app.Post("/leveltest", middleware.JWTMiddleware, learner, validators.LevelTest(), controllers.LevelTest)
}
