package controllers

import (
	"log"

	"pythonista/middleware"
	"pythonista/progress"
	courseValidator "pythonista/validators/course"

	"github.com/gofiber/fiber/v2"
)

// RightAnswer grades one answer and tells the user which chapter it came from.
func RightAnswer(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	reqData := c.Locals("validatedAnswer").(*courseValidator.RightAnswerRequest)

	bank := progress.ChapterBank
	if reqData.Test == progress.PlacementTest {
		bank = progress.PlacementBank
	}

	fb, err := engine().Grade(c.UserContext(), id, bank, reqData.Question, reqData.Answer)
	if err != nil {
		return middleware.ErrorResponse(c, err, map[progress.Kind]string{
			progress.KindNotFound: "No question found with the provided ID.",
		})
	}

	if fb.Correct {
		return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, fb.Message, fiber.Map{"correct": true})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeyFalse, fb.Message, fiber.Map{"correct": false})
}

// SubmitAnswer applies a finished test: the placement test assigns a level,
// chapter tests are recorded when passed.
func SubmitAnswer(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	reqData := c.Locals("validatedSubmission").(*courseValidator.SubmitAnswerRequest)

	out, err := engine().SubmitTestResult(c.UserContext(), id, reqData.Test, *reqData.Score)
	if err != nil {
		return middleware.ErrorResponse(c, err, map[progress.Kind]string{
			progress.KindValidation:  "Invalid score",
			progress.KindNotFound:    "The selected test does not exist.",
			progress.KindSequence:    "You must complete the previous tests before accessing this one.",
			progress.KindPersistence: "An error occurred processing your submission.",
		})
	}

	extra := fiber.Map{"passed": out.Passed, "score": out.Score}
	switch {
	case out.Placement:
		log.Printf("[LEVEL] user %d placed as %s with %.2f", id.UserID, out.Level.Tier, out.Score)
		extra["tier"] = string(out.Level.Tier)
		return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeyInfo, out.Message, extra)
	case out.Passed:
		return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, out.Message, extra)
	default:
		return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeyError, out.Message, extra)
	}
}

// LevelTest handles the answer to the placement prompt. Declining records a
// cancelled placement and returns the (empty) progress read back from storage.
func LevelTest(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	reqData := c.Locals("validatedLevelTest").(*courseValidator.LevelTestRequest)

	if reqData.Answer != "no" {
		return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeyInfo, "Good luck with the placement test!", fiber.Map{
			"redirect": "/tests?test=" + progress.PlacementTest,
		})
	}

	snap, err := engine().CancelPlacement(c.UserContext(), id)
	if err != nil {
		return middleware.ErrorResponse(c, err, map[progress.Kind]string{
			progress.KindPersistence: "An error occurred processing your request.",
		})
	}
	log.Printf("[LEVEL] user %d declined the placement test", id.UserID)
	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeyCancel, "You were assigned to be a beginner!", snapshotFields(snap))
}
