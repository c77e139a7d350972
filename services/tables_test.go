package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"finhabit/models"
)

func TestValidateTables(t *testing.T) {
	assert.NoError(t, ValidateTables())
}

func TestEveryStreakTypeHasAPrimaryAction(t *testing.T) {
	for _, st := range models.AllStreakTypes() {
		action, ok := streakPrimaryAction[st]
		assert.True(t, ok, "streak type %s", st)
		_, hasPoints := actionPoints[action]
		assert.True(t, hasPoints, "primary action %s of %s", action, st)
	}
}

func TestStreakBoundActionsMapBack(t *testing.T) {
	// An action bound to a streak must award points, or extending the
	// streak through the ledger would be impossible.
	for action, st := range actionStreakTypes {
		_, ok := actionPoints[action]
		assert.True(t, ok, "action %s (streak %s)", action, st)
	}
}

func TestStreakDisplayNameFallsBack(t *testing.T) {
	assert.Equal(t, "Savings", StreakDisplayName(models.StreakSavings))
	assert.Equal(t, "weekly_review", StreakDisplayName(models.StreakType("weekly_review")))
}
