package controllers

import (
	"errors"

	"pythonista/middleware"
	"pythonista/progress"
	courseValidator "pythonista/validators/course"

	"github.com/gofiber/fiber/v2"
)

type questionResponse struct {
	ID         uint     `json:"id"`
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Chapter    string   `json:"chapter_name"`
	Subchapter string   `json:"subchapter"`
}

// GetTest serves the questions of the requested test. Right answers never leave
// the server; they are checked one by one through /rightanswer.
func GetTest(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	reqData := c.Locals("validatedTest").(*courseValidator.TestRequest)

	questions, err := engine().SelectQuestions(c.UserContext(), id, reqData.Test)
	if errors.Is(err, progress.ErrNotEnoughQuestions) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, middleware.KeyError, "This test is not available yet.", nil)
	}
	if err != nil {
		return middleware.ErrorResponse(c, err, map[progress.Kind]string{
			progress.KindNotFound:    "The selected test does not exist.",
			progress.KindSequence:    "You must complete the previous tests before accessing this one.",
			progress.KindPersistence: "An error occurred while processing your request.",
		})
	}

	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		out = append(out, questionResponse{
			ID:         q.ID,
			Type:       q.Type,
			Question:   q.Prompt,
			Options:    options,
			Chapter:    q.Chapter,
			Subchapter: q.Subchapter,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, "Good luck!", fiber.Map{
		"test":      reqData.Test,
		"questions": out,
	})
}
