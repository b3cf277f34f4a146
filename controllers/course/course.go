package controllers

import (
	"pythonista/config"
	"pythonista/database"
	"pythonista/middleware"
	"pythonista/progress"
	courseValidator "pythonista/validators/course"

	"github.com/gofiber/fiber/v2"
)

// LevelPrompt is shown to learners who have not resolved the placement test yet.
const LevelPrompt = "Wanna take a test to determine your level and possibly skip a couple of chapters? " +
	"If you score 0% to 39% you will be assigned as a beginner. If you score 40% to 69%, " +
	"you will be assigned as an intermediate. If you score 70% to 100%, you will be assigned as an expert."

// engine builds the progress engine over the global store with the configured policies.
func engine() *progress.Engine {
	cfg := config.AppConfig
	return progress.NewEngine(database.Database.Store,
		progress.WithPassThreshold(cfg.PassThreshold),
		progress.WithSamplePolicy(progress.PrefixPolicy{
			QuickPrefixes: cfg.QuickCheckPrefixes,
			QuickSize:     cfg.QuickCheckSize,
			FullSize:      cfg.FullTestSize,
		}),
	)
}

func snapshotFields(snap progress.Snapshot) fiber.Map {
	return fiber.Map{
		"chapters":     nonNil(snap.Chapters),
		"tests":        nonNil(snap.Tests),
		"all_chapters": nonNil(snap.AllChapters),
		"all_tests":    nonNil(snap.AllTests),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// GetChapters returns the learner's progress, or the placement prompt when the
// placement flow has not been resolved.
func GetChapters(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)

	snap, err := engine().Snapshot(c.UserContext(), id)
	if err != nil {
		return middleware.ErrorResponse(c, err, map[progress.Kind]string{
			progress.KindPersistence: "An error occurred while fetching your progress.",
		})
	}

	fields := snapshotFields(snap)
	if snap.NeedsPlacement {
		fields["level_test"] = true
		return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeyInfo, LevelPrompt, fields)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, "Progress loaded.", fields)
}

// CompleteChapter marks the learner's next chapter as completed.
func CompleteChapter(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	reqData := c.Locals("validatedChapter").(*courseValidator.CompleteChapterRequest)

	if err := engine().CompleteChapter(c.UserContext(), id, reqData.Chapter); err != nil {
		return middleware.ErrorResponse(c, err, map[progress.Kind]string{
			progress.KindNotFound:    "Invalid chapter name.",
			progress.KindSequence:    "You must complete all previous chapters before accessing this one.",
			progress.KindPersistence: "An error occurred while saving your progress. Please try again later.",
		})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, middleware.KeySuccess, "completed", nil)
}
