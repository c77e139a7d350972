// handlers/achievements.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"finhabit/middleware"
	"finhabit/models"
)

// GetAchievements returns the full catalog with per-user unlock state.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	achievements, err := achievementService.List(userID)
	if err != nil {
		return serviceError(c, err)
	}

	unlocked := 0
	for _, a := range achievements {
		if a.Unlocked {
			unlocked++
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(achievements),
		"unlocked":     unlocked,
	})
}

// UnlockAchievement unlocks a badge by type. Fully idempotent: repeated
// calls return the original record and credit nothing.
func UnlockAchievement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	// c.Params aliases fiber's reusable request buffer; copy before the
	// value is persisted past this handler.
	achievementType := models.AchievementType(utils.CopyString(c.Params("type")))
	achievement, celebration, err := achievementService.Unlock(userID, achievementType)
	if err != nil {
		return serviceError(c, err)
	}

	if celebration != nil {
		PushCelebrations(userID, []models.CelebrationEvent{*celebration})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"achievement": achievement,
		"new":         celebration != nil,
	})
}
