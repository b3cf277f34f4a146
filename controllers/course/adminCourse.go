package controllers

import (
	"errors"
	"log"

	"pythonista/database"
	"pythonista/middleware"
	courseModels "pythonista/models/course"
	"pythonista/progress"
	courseValidator "pythonista/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GetQuestionCatalog returns the chapters and tests a teacher can attach a
// question to.
func GetQuestionCatalog(c *fiber.Ctx) error {
	ctx := c.UserContext()
	store := database.Database.Store

	chapters, err := store.Catalog(ctx, progress.Chapters)
	if err == nil {
		var tests []string
		if tests, err = store.Catalog(ctx, progress.Tests); err == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, "Catalog fetched successfully!", fiber.Map{
				"chapters": nonNil(chapters),
				"tests":    nonNil(tests),
			})
		}
	}
	log.Printf("[QUESTIONS] Error fetching catalog: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError, "An error occurred while fetching data.", nil)
}

// CreateQuestion adds a question to a chapter test's bank.
func CreateQuestion(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	reqData := c.Locals("validatedQuestion").(*courseValidator.CreateQuestionRequest)
	ctx := c.UserContext()
	store := database.Database.Store

	if _, err := store.Position(ctx, progress.Tests, reqData.TestName); err != nil {
		if errors.Is(err, progress.ErrNotFound) {
			return middleware.ValidationErrorResponse(c, map[string]string{"test_name": "Unknown test!"})
		}
		log.Printf("[QUESTIONS] Error resolving test %q: %v", reqData.TestName, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError, "An error occurred while submitting the question.", nil)
	}

	question := courseModels.TestQuestion{
		TestName: reqData.TestName,
		QuestionFields: courseModels.QuestionFields{
			QuestionType: reqData.QuestionType,
			Question:     reqData.Question,
			Multiple1:    reqData.Multiple1,
			Multiple2:    reqData.Multiple2,
			Multiple3:    reqData.Multiple3,
			Multiple4:    reqData.Multiple4,
			RightAnswer:  reqData.RightAnswer,
			ChapterName:  reqData.ChapterName,
			Subchapter:   reqData.Subchapter,
		},
	}
	if err := store.CreateQuestion(ctx, &question); err != nil {
		log.Printf("[QUESTIONS] Error submitting question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError, "An error occurred while submitting the question.", nil)
	}

	log.Printf("[QUESTIONS] Teacher %d added question %d to %s", id.UserID, question.ID, question.TestName)
	return middleware.JsonResponse(c, fiber.StatusCreated, middleware.KeySuccess, "Successfully submitted!", fiber.Map{
		"id": question.ID,
	})
}
