package middleware

import (
	"fmt"
	"strings"
	"time"

	"pythonista/config"
	"pythonista/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SessionHeader carries the refreshed session token on every authenticated response.
const SessionHeader = "X-Session-Token"

const identityKey = "identity"

func sessionTTL() time.Duration {
	minutes := config.AppConfig.SessionIdleMinutes
	if minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}

// GenerateJWT issues a session token for id that expires after the idle timeout.
func GenerateJWT(id progress.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   id.UserID,
		"username": id.Username,
		"role":     string(id.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(sessionTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// ParseJWT validates tokenString and returns the identity it carries.
func ParseJWT(tokenString string) (progress.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return progress.Identity{}, fmt.Errorf("invalid or expired token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return progress.Identity{}, fmt.Errorf("invalid token payload")
	}
	userID, ok := claims["userId"].(float64) // JWT numbers decode as float64
	if !ok || userID <= 0 {
		return progress.Identity{}, fmt.Errorf("invalid token payload")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return progress.Identity{UserID: uint(userID), Username: username, Role: progress.ParseRole(role)}, nil
}

// JWTMiddleware authenticates the request and slides the session expiry forward.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return AuthorizationResponse(c, fiber.StatusUnauthorized,
			"You need to log in or create an account to access our learning materials!")
	}

	id, err := ParseJWT(authHeader[len("Bearer "):])
	if err != nil {
		return AuthorizationResponse(c, fiber.StatusUnauthorized, "Your session has expired, please log in again.")
	}

	refreshed, err := GenerateJWT(id)
	if err == nil {
		c.Set(SessionHeader, refreshed)
	}

	c.Locals(identityKey, id)
	return c.Next()
}

// CurrentIdentity returns the identity set by JWTMiddleware, or the zero identity.
func CurrentIdentity(c *fiber.Ctx) progress.Identity {
	id, _ := c.Locals(identityKey).(progress.Identity)
	return id
}
