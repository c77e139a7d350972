package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhabit/models"
)

func TestGenerateNeverEmpty(t *testing.T) {
	e := newTestEngine()

	wins, err := e.microWins.Generate(1, 5)
	require.NoError(t, err)
	require.NotEmpty(t, wins, "a brand-new user still gets suggestions")

	seen := make(map[models.UserAction]bool)
	for _, w := range wins {
		assert.False(t, seen[w.ActionType], "duplicate action %s", w.ActionType)
		seen[w.ActionType] = true
		assert.NotEmpty(t, w.Title)
		assert.Positive(t, w.PointsAwarded)
	}
}

func TestGenerateMaintenanceWinForAtRiskStreak(t *testing.T) {
	e := newTestEngine()

	for day := 0; day < 6; day++ {
		_, err := e.streaks.UpdateStreak(1, models.StreakSavings, e.clock)
		require.NoError(t, err)
		e.advanceDays(1)
	}
	e.advanceDays(1) // two days since last activity: low risk

	wins, err := e.microWins.Generate(1, 5)
	require.NoError(t, err)
	require.NotEmpty(t, wins)

	// The endangered streak's primary action ranks first.
	top := wins[0]
	assert.Equal(t, models.ActionContributeSavings, top.ActionType)
	assert.Equal(t, models.DifficultyEasy, top.Difficulty)
	assert.True(t, top.IsPersonalized)
	assert.Equal(t, string(models.RiskLow), top.ContextData["risk_level"])
	assert.Contains(t, top.Title, "6-day")
}

func TestGenerateRecoveryWinOutranksEverything(t *testing.T) {
	e := newTestEngine()
	streakID := breakStreak(t, e, 1, 5)

	recovery, err := e.recoveries.Initiate(1, streakID)
	require.NoError(t, err)

	wins, err := e.microWins.Generate(1, 5)
	require.NoError(t, err)
	require.NotEmpty(t, wins)

	top := wins[0]
	assert.Equal(t, models.ActionRecoveryStep, top.ActionType)
	assert.Equal(t, models.DifficultyHard, top.Difficulty)
	assert.Equal(t, recovery.ID, top.ContextData["recovery_id"])
}

func TestGenerateSkipsWellUsedActions(t *testing.T) {
	e := newTestEngine()

	// Heavy recent use of check-balance keeps it out of habit suggestions.
	for i := 0; i < 5; i++ {
		_, err := e.points.Award(1, models.ActionCheckBalance, nil, "")
		require.NoError(t, err)
	}

	wins, err := e.microWins.Generate(1, 10)
	require.NoError(t, err)
	for _, w := range wins {
		if w.ActionType == models.ActionCheckBalance {
			// Only acceptable as a maintenance win, never a habit one.
			assert.Equal(t, models.DifficultyEasy, w.Difficulty)
		}
	}
}

func TestGenerateHonorsLimit(t *testing.T) {
	e := newTestEngine()

	wins, err := e.microWins.Generate(1, 1)
	require.NoError(t, err)
	assert.Len(t, wins, 1)
}

func TestGenerateDefaultLimit(t *testing.T) {
	e := newTestEngine()

	wins, err := e.microWins.Generate(1, 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(wins), 5)
}
