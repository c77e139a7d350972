// handlers/reminders.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"finhabit/middleware"
)

// GetReminders lists the user's reminders, soonest first.
func GetReminders(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 20)
	reminders, err := reminderService.List(userID, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"reminders": reminders,
	})
}

// AcknowledgeReminder marks a reminder as read.
func AcknowledgeReminder(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	reminder, err := reminderService.Acknowledge(userID, c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"reminder": reminder,
	})
}
