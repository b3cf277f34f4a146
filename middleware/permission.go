package middleware

import (
	"pythonista/progress"

	"github.com/gofiber/fiber/v2"
)

// RequirePermission rejects callers whose role does not grant p. It must run
// after JWTMiddleware.
func RequirePermission(p progress.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := CurrentIdentity(c)
		if id.UserID == 0 {
			return AuthorizationResponse(c, fiber.StatusUnauthorized,
				"You need to log in or create an account to access our learning materials!")
		}
		if !id.Can(p) {
			if p == progress.PermManageQuestions || p == progress.PermViewStudents {
				return AuthorizationResponse(c, fiber.StatusForbidden,
					"You need to log in with a teacher account to access this page!")
			}
			return AuthorizationResponse(c, fiber.StatusForbidden,
				"You need to log in with a student account to access our learning materials!")
		}
		return c.Next()
	}
}
