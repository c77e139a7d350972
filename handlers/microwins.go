// handlers/microwins.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"finhabit/middleware"
)

// GetMicroWins returns a ranked list of small suggested actions, generated
// fresh from the user's current streak/recovery/history state.
func GetMicroWins(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 5)
	wins, err := microWinService.Generate(userID, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"micro_wins": wins,
	})
}
