package authController

import (
	"errors"
	"log"
	"time"

	"pythonista/config"
	"pythonista/database"
	"pythonista/middleware"
	"pythonista/models"
	"pythonista/progress"
	"pythonista/utils"
	authValidator "pythonista/validators/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func Signup(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSignup").(*authValidator.SignupRequest)
	db := database.Database.Db.WithContext(c.UserContext())

	// Check if the username or email is already registered
	var existing []models.User
	if err := db.Where("username = ? OR email = ?", reqData.Username, reqData.Email).Find(&existing).Error; err != nil {
		log.Printf("[AUTH] Error checking existing users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
			"An error occurred during sign-up. Please try again later.", nil)
	}
	for _, u := range existing {
		if u.Username == reqData.Username {
			return middleware.JsonResponse(c, fiber.StatusConflict, middleware.KeyInfo, "Username already exists, please try logging in!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, middleware.KeyInfo, "Email already exists, please try logging in!", nil)
	}

	hash, salt, err := utils.HashPassword(reqData.Password, config.AppConfig.PBKDF2Iterations)
	if err != nil {
		log.Printf("[AUTH] Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
			"An error occurred during sign-up. Please try again later.", nil)
	}

	newUser := models.User{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: hash,
		Salt:     salt,
		Age:      reqData.Age,
		Role:     string(progress.RoleLearner),
	}
	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, middleware.KeyInfo, "Username or email already exists, please try logging in!", nil)
		}
		log.Printf("[AUTH] Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
			"An error occurred during sign-up. Please try again later.", nil)
	}

	id := progress.Identity{UserID: newUser.ID, Username: newUser.Username, Role: progress.RoleLearner}
	token, err := middleware.GenerateJWT(id)
	if err != nil {
		log.Printf("[AUTH] Error generating token for user %d: %v", newUser.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
			"An error occurred during sign-up. Please try again later.", nil)
	}

	log.Printf("[AUTH] New user %d signed up", newUser.ID)
	return middleware.JsonResponse(c, fiber.StatusCreated, middleware.KeySuccess, "Welcome "+newUser.Username+"!", fiber.Map{
		"token": token,
	})
}

func Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	db := database.Database.Db.WithContext(c.UserContext())

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, middleware.KeyError, "An account with that email does not exist!", nil)
		}
		log.Printf("[AUTH] Error fetching user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
			"There was a bug with our servers, please try again later!", nil)
	}

	if !utils.VerifyPassword(reqData.Password, user.Salt, user.Password, config.AppConfig.PBKDF2Iterations) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, middleware.KeyError, "The given password is incorrect. Please try again!", nil)
	}

	id := progress.Identity{UserID: user.ID, Username: user.Username, Role: progress.ParseRole(user.Role)}
	token, err := middleware.GenerateJWT(id)
	if err != nil {
		log.Printf("[AUTH] Error generating token for user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
			"There was a bug with our servers, please try again later!", nil)
	}

	now := time.Now()
	tracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: c.IP(),
		Device:    c.Get("User-Agent"),
		Timestamp: now,
	}
	if err := db.Create(&tracking).Error; err != nil {
		log.Printf("[AUTH] Error recording login for user %d: %v", user.ID, err)
	}
	if err := db.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("[AUTH] Error updating last login for user %d: %v", user.ID, err)
	}

	extra := fiber.Map{"token": token}
	if id.Role == progress.RoleTeacher {
		extra["teacher"] = "true"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, "Welcome back "+user.Username+"!", extra)
}

// Logout says goodbye; the client discards its token and the session lapses.
func Logout(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	c.Response().Header.Del(middleware.SessionHeader)
	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, "Hope to see you soon, "+id.Username+"!", nil)
}
