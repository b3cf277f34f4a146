package courseValidator

import (
	"strings"

	"pythonista/middleware"
	"pythonista/validators"

	"github.com/gofiber/fiber/v2"
)

type RightAnswerRequest struct {
	Question uint   `json:"question" form:"question" validate:"required,gt=0"`
	Answer   string `json:"answer" form:"answer" validate:"required,max=1000"`
	Test     string `json:"test" form:"test" validate:"required,max=100"`
}

type SubmitAnswerRequest struct {
	Score *float64 `json:"score" form:"score" validate:"required,gte=0,lte=100"`
	Test  string   `json:"test" form:"test" validate:"required,max=100"`
}

type LevelTestRequest struct {
	Answer string `json:"answer" form:"answer" validate:"required,oneof=yes no"`
}

func badBody(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusBadRequest, middleware.KeyError, "Missing required fields.", nil)
}

// RightAnswer validates a single answer to grade.
func RightAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RightAnswerRequest)
		if err := c.BodyParser(reqData); err != nil {
			return badBody(c)
		}
		reqData.Test = strings.TrimSpace(reqData.Test)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}

// SubmitAnswer validates a finished test score.
func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitAnswerRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, middleware.KeyError, "Invalid score", nil)
		}
		reqData.Test = strings.TrimSpace(reqData.Test)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			if _, ok := errors["score"]; ok {
				errors["score"] = "Invalid score"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

// LevelTest validates the learner's answer to the placement prompt.
func LevelTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LevelTestRequest)
		if err := c.BodyParser(reqData); err != nil {
			return badBody(c)
		}
		reqData.Answer = strings.ToLower(strings.TrimSpace(reqData.Answer))

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLevelTest", reqData)
		return c.Next()
	}
}
