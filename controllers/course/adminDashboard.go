package controllers

import (
	"log"

	"pythonista/database"
	"pythonista/middleware"
	"pythonista/models"
	courseModels "pythonista/models/course"
	"pythonista/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

type studentScore struct {
	Test  string  `json:"test"`
	Score float64 `json:"score"`
}

type studentRow struct {
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	Scores         []studentScore `json:"scores"`
	Average        interface{}    `json:"average"` // number, or "-" without scores
	LoginsThisWeek int64          `json:"logins_this_week"`
}

// GetStudents lists every learner with their test scores in sequence order, the
// average score and how often they logged in this week.
func GetStudents(c *fiber.Ctx) error {
	db := database.Database.Db.WithContext(c.UserContext())

	var users []models.User
	if err := db.Where("role <> ? AND is_deleted = ?", string(progress.RoleTeacher), false).
		Order("username").Find(&users).Error; err != nil {
		log.Printf("[STUDENTS] Error fetching students: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
			"An error occurred while fetching student data.", nil)
	}

	userIDs := make([]uint, len(users))
	for i, u := range users {
		userIDs[i] = u.ID
	}

	var completed []courseModels.CompletedTest
	if len(userIDs) > 0 {
		if err := db.Where("user_id IN ?", userIDs).Order("user_id, position").Find(&completed).Error; err != nil {
			log.Printf("[STUDENTS] Error fetching scores: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
				"An error occurred while fetching student data.", nil)
		}
	}
	byUser := make(map[uint][]progress.Completion, len(users))
	for _, ct := range completed {
		byUser[ct.UserID] = append(byUser[ct.UserID], progress.Completion{Position: ct.Position, Name: ct.TestName, Score: ct.Score})
	}

	type loginCount struct {
		UserID uint
		Total  int64
	}
	var logins []loginCount
	if len(userIDs) > 0 {
		if err := db.Model(&models.LoginTracking{}).
			Select("user_id, COUNT(*) AS total").
			Where("user_id IN ? AND timestamp >= ?", userIDs, now.BeginningOfWeek()).
			Group("user_id").
			Scan(&logins).Error; err != nil {
			log.Printf("[STUDENTS] Error counting logins: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, middleware.KeyError,
				"An error occurred while fetching student data.", nil)
		}
	}
	loginsByUser := make(map[uint]int64, len(logins))
	for _, l := range logins {
		loginsByUser[l.UserID] = l.Total
	}

	rows := make([]studentRow, 0, len(users))
	for _, u := range users {
		tests := byUser[u.ID]
		row := studentRow{
			Username:       u.Username,
			Email:          u.Email,
			Scores:         make([]studentScore, 0, len(tests)),
			Average:        "-",
			LoginsThisWeek: loginsByUser[u.ID],
		}
		for _, t := range tests {
			row.Scores = append(row.Scores, studentScore{Test: t.Name, Score: t.Score})
		}
		if _, avg := progress.ScoreSummary(tests); avg != nil {
			row.Average = *avg
		}
		rows = append(rows, row)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, "Students fetched successfully!", fiber.Map{
		"students": rows,
	})
}
