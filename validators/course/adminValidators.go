package courseValidator

import (
	"strings"

	"pythonista/middleware"
	"pythonista/validators"

	"github.com/gofiber/fiber/v2"
)

// CreateQuestionRequest is a chapter-test question authored by a teacher.
type CreateQuestionRequest struct {
	Question     string `json:"question" form:"question" validate:"required,max=2000"`
	TestName     string `json:"test_name" form:"test_name" validate:"required,max=100"`
	ChapterName  string `json:"chapter_name" form:"chapter_name" validate:"required,max=100"`
	Subchapter   string `json:"subchapter" form:"subchapter" validate:"required,max=100"`
	QuestionType string `json:"type" form:"type" validate:"required,max=50"`
	Multiple1    string `json:"multiple1" form:"multiple1" validate:"max=255"`
	Multiple2    string `json:"multiple2" form:"multiple2" validate:"max=255"`
	Multiple3    string `json:"multiple3" form:"multiple3" validate:"max=255"`
	Multiple4    string `json:"multiple4" form:"multiple4" validate:"max=255"`
	RightAnswer  string `json:"right_answer" form:"right_answer" validate:"required,max=255"`
}

// CreateQuestion validates a new question; every field error is reported at once.
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateQuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, middleware.KeyError, "All form fields are required.", nil)
		}
		for _, f := range []*string{&reqData.Question, &reqData.TestName, &reqData.ChapterName,
			&reqData.Subchapter, &reqData.QuestionType, &reqData.RightAnswer} {
			*f = strings.TrimSpace(*f)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
