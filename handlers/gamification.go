// handlers/gamification.go
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"finhabit/middleware"
	"finhabit/models"
	"finhabit/services"
	"finhabit/store"
)

var (
	pointsService      *services.PointsService
	streakService      *services.StreakService
	recoveryService    *services.RecoveryService
	achievementService *services.AchievementService
	microWinService    *services.MicroWinService
	reminderService    *services.ReminderService
)

// InitGamificationHandlers wires the service layer into the handler
// package. Call once at startup before registering routes.
func InitGamificationHandlers(
	points *services.PointsService,
	streaks *services.StreakService,
	recoveries *services.RecoveryService,
	achievements *services.AchievementService,
	microWins *services.MicroWinService,
	reminders *services.ReminderService,
) {
	pointsService = points
	streakService = streaks
	recoveryService = recoveries
	achievementService = achievements
	microWinService = microWins
	reminderService = reminders
}

// serviceError maps engine errors onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownAction),
		errors.Is(err, services.ErrStreakNotBroken),
		errors.Is(err, services.ErrRecoveryOpen):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrRecoveryComplete):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Not found"})
	default:
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Internal error"})
	}
}

type AwardPointsRequest struct {
	Action      models.UserAction `json:"action"`
	Points      *int              `json:"points,omitempty"`
	Description string            `json:"description,omitempty"`
}

// AwardPoints scores a user action. One call can award points, extend a
// streak, unlock achievements, and emit celebrations, all atomically.
func AwardPoints(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AwardPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Action == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Action is required"})
	}

	result, err := pointsService.Award(userID, req.Action, req.Points, req.Description)
	if err != nil {
		return serviceError(c, err)
	}

	PushCelebrations(userID, result.Celebrations)

	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// GetProfile returns level, points, and progress toward the next level.
func GetProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := pointsService.GetProfile(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

// GetPointsHistory returns the most recent ledger entries.
func GetPointsHistory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 50)
	entries, err := pointsService.History(userID, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"history": entries,
		"count":   len(entries),
	})
}
