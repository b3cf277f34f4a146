package userController

import (
	"pythonista/config"
	"pythonista/database"
	"pythonista/middleware"
	"pythonista/progress"

	"github.com/gofiber/fiber/v2"
)

type completedTest struct {
	Test  string  `json:"test"`
	Score float64 `json:"score"`
}

// GetProfile returns the caller's completed chapters and tests with the sum and
// average of their scores.
func GetProfile(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	eng := progress.NewEngine(database.Database.Store, progress.WithPassThreshold(config.AppConfig.PassThreshold))

	p, err := eng.Profile(c.UserContext(), id)
	if err != nil {
		return middleware.ErrorResponse(c, err, map[progress.Kind]string{
			progress.KindPersistence: "An error occurred while fetching your profile data.",
		})
	}

	chapters := make([]string, 0, len(p.Chapters))
	for _, ch := range p.Chapters {
		chapters = append(chapters, ch.Name)
	}
	tests := make([]completedTest, 0, len(p.Tests))
	for _, t := range p.Tests {
		tests = append(tests, completedTest{Test: t.Name, Score: t.Score})
	}
	var average interface{} = "-"
	if p.Average != nil {
		average = *p.Average
	}

	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, "Profile fetched successfully!", fiber.Map{
		"username":     id.Username,
		"chapters":     chapters,
		"tests":        tests,
		"all_chapters": p.AllChapters,
		"all_tests":    p.AllTests,
		"sum":          p.Sum,
		"average":      average,
	})
}
