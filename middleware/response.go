package middleware

import (
	"errors"
	"log"

	"pythonista/progress"

	"github.com/gofiber/fiber/v2"
)

// Message keys of the JSON payloads.
const (
	KeySuccess = "success"
	KeyError   = "error"
	KeyInfo    = "info"
	KeyFalse   = "false" // wrong answer
	KeyCancel  = "cancel"
)

// JsonResponse writes {key: message} merged with extra.
func JsonResponse(c *fiber.Ctx, statusCode int, key, message string, extra fiber.Map) error {
	body := fiber.Map{key: message}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(statusCode).JSON(body)
}

func ValidationErrorResponse(c *fiber.Ctx, fields map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, KeyError, "Validation failed!", fiber.Map{"fields": fields})
}

// AuthorizationResponse points the client back to the login flow.
func AuthorizationResponse(c *fiber.Ctx, statusCode int, notice string) error {
	return JsonResponse(c, statusCode, KeyError, notice, fiber.Map{"redirect": "/login"})
}

// ErrorResponse maps an engine error to its status code and user-facing message.
// Persistence failures are logged and never leak detail.
func ErrorResponse(c *fiber.Ctx, err error, messages map[progress.Kind]string) error {
	kind := progress.KindOf(err)
	msg, ok := messages[kind]

	switch kind {
	case progress.KindValidation:
		var ve *progress.ValidationError
		if errors.As(err, &ve) {
			if len(ve.Fields) == 1 {
				for _, m := range ve.Fields {
					return JsonResponse(c, fiber.StatusUnprocessableEntity, KeyError, m, fiber.Map{"fields": ve.Fields})
				}
			}
			return ValidationErrorResponse(c, ve.Fields)
		}
		if !ok {
			msg = "Invalid request."
		}
		return JsonResponse(c, fiber.StatusUnprocessableEntity, KeyError, msg, nil)
	case progress.KindAuthorization:
		var ae *progress.AuthorizationError
		if errors.As(err, &ae) && !ok {
			msg = ae.Reason
		}
		return AuthorizationResponse(c, fiber.StatusForbidden, msg)
	case progress.KindNotFound:
		if !ok {
			msg = "The requested item does not exist."
		}
		return JsonResponse(c, fiber.StatusNotFound, KeyError, msg, nil)
	case progress.KindSequence:
		if !ok {
			msg = "You must complete all previous items before accessing this one."
		}
		return JsonResponse(c, fiber.StatusConflict, KeyError, msg, nil)
	default:
		log.Printf("[PROGRESS] user=%d path=%s request=%v: %v",
			CurrentIdentity(c).UserID, c.Path(), c.Locals("requestid"), err)
		if !ok {
			msg = "There was a bug with our servers, please try again later!"
		}
		return JsonResponse(c, fiber.StatusInternalServerError, KeyError, msg, nil)
	}
}
