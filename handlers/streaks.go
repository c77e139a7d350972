// handlers/streaks.go
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"finhabit/middleware"
	"finhabit/models"
)

type StreakCheckInRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

// CheckInStreak records activity for a streak type, optionally backdated.
func CheckInStreak(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	streakType := models.StreakType(c.Params("type"))
	valid := false
	for _, t := range models.AllStreakTypes() {
		if t == streakType {
			valid = true
			break
		}
	}
	if !valid {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown streak type"})
	}

	var req StreakCheckInRequest
	_ = c.BodyParser(&req)

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Date must be YYYY-MM-DD"})
		}
	}

	result, err := streakService.UpdateStreak(userID, streakType, date)
	if err != nil {
		return serviceError(c, err)
	}

	if result.Celebration != nil {
		PushCelebrations(userID, []models.CelebrationEvent{*result.Celebration})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// GetStreaks lists the user's streaks with freshly computed risk.
func GetStreaks(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	streaks, err := streakService.ListStreaks(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"streaks": streaks,
	})
}

// GetStreakRisks scores every active streak for reminder priority.
func GetStreakRisks(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	analyses, err := streakService.AnalyzeStreakRisks(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"risks":   analyses,
	})
}
