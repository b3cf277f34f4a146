package courseValidator

import (
	"strings"

	"pythonista/middleware"
	"pythonista/validators"

	"github.com/gofiber/fiber/v2"
)

type CompleteChapterRequest struct {
	Chapter string `json:"chapter" form:"chapter" validate:"required,max=100"`
}

type TestRequest struct {
	Test string `json:"test" form:"test" query:"test" validate:"required,max=100"`
}

// CompleteChapter validates the chapter a learner marks as done.
func CompleteChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CompleteChapterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, middleware.KeyError, "Invalid request body!", nil)
		}
		reqData.Chapter = strings.TrimSpace(reqData.Chapter)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

// SelectTest reads the requested test from the query string on GET and from
// the body on POST.
func SelectTest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TestRequest)
		var err error
		if c.Method() == fiber.MethodGet {
			err = c.QueryParser(reqData)
		} else {
			err = c.BodyParser(reqData)
			if reqData.Test == "" {
				reqData.Test = c.Query("test")
			}
		}
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, middleware.KeyError, "Invalid request!", nil)
		}
		reqData.Test = strings.TrimSpace(reqData.Test)

		if reqData.Test == "" {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, middleware.KeyInfo,
				"Please select a test from the chapters.", fiber.Map{"redirect": "/chapters"})
		}
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTest", reqData)
		return c.Next()
	}
}
