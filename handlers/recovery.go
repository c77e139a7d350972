// handlers/recovery.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"finhabit/middleware"
	"finhabit/models"
)

type InitiateRecoveryRequest struct {
	StreakID string `json:"streak_id"`
}

// InitiateRecovery opens a recovery workflow for a broken streak.
func InitiateRecovery(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req InitiateRecoveryRequest
	if err := c.BodyParser(&req); err != nil || req.StreakID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "streak_id is required"})
	}

	recovery, err := recoveryService.Initiate(userID, req.StreakID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":  true,
		"recovery": recovery,
	})
}

type RecoveryActionRequest struct {
	Action      models.UserAction `json:"action"`
	Description string            `json:"description,omitempty"`
}

// ProcessRecoveryAction appends one completed action to an open recovery.
// The third action completes it and rebuilds the streak.
func ProcessRecoveryAction(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req RecoveryActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Action == "" {
		req.Action = models.ActionRecoveryStep
	}

	result, err := recoveryService.ProcessAction(userID, c.Params("id"), req.Action, req.Description)
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

// AbandonRecovery closes an open recovery as unsuccessful.
func AbandonRecovery(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	recovery, err := recoveryService.Abandon(userID, c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"recovery": recovery,
	})
}

// GetRecoveries lists the user's open recoveries.
func GetRecoveries(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	recoveries, err := recoveryService.ListOpen(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"recoveries": recoveries,
	})
}
