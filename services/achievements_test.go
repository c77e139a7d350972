package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhabit/models"
)

func TestUnlockIsIdempotent(t *testing.T) {
	e := newTestEngine()

	first, celebration, err := e.achievements.Unlock(1, models.AchievementBudgetBuilder)
	require.NoError(t, err)
	require.NotNil(t, celebration)
	assert.Equal(t, models.CelebrationAchievement, celebration.Type)
	assert.Equal(t, "Budget Builder", first.Title)
	assert.Equal(t, e.clock, first.UnlockedAt)

	e.advanceDays(2)
	for i := 0; i < 3; i++ {
		again, c, err := e.achievements.Unlock(1, models.AchievementBudgetBuilder)
		require.NoError(t, err)
		assert.Nil(t, c, "repeat unlocks celebrate nothing")
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, first.UnlockedAt, again.UnlockedAt, "original timestamp survives")
	}
}

func TestUnlockCreditsPointsOnce(t *testing.T) {
	e := newTestEngine()

	_, _, err := e.achievements.Unlock(1, models.AchievementSavingsStarter)
	require.NoError(t, err)
	_, _, err = e.achievements.Unlock(1, models.AchievementSavingsStarter)
	require.NoError(t, err)

	profile, err := e.points.GetProfile(1)
	require.NoError(t, err)
	assert.Equal(t, 30, profile.TotalPoints)

	history, err := e.points.History(1, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionAchievementBonus, history[0].Action)
}

func TestUnlockUnknownType(t *testing.T) {
	e := newTestEngine()

	_, _, err := e.achievements.Unlock(1, models.AchievementType("time_traveler"))
	assert.Error(t, err)
}

func TestAchievementCatalog(t *testing.T) {
	e := newTestEngine()

	_, _, err := e.achievements.Unlock(1, models.AchievementFirstCategorization)
	require.NoError(t, err)

	views, err := e.achievements.List(1)
	require.NoError(t, err)
	assert.Len(t, views, len(models.AllAchievementTypes()))

	unlocked := 0
	for _, v := range views {
		if v.Unlocked {
			unlocked++
			assert.Equal(t, models.AchievementFirstCategorization, v.Type)
			require.NotNil(t, v.UnlockedAt)
		} else {
			assert.Nil(t, v.UnlockedAt)
		}
		assert.NotEmpty(t, v.Title)
		assert.NotEmpty(t, v.Description)
	}
	assert.Equal(t, 1, unlocked)
}

func TestAchievementsScopedPerUser(t *testing.T) {
	e := newTestEngine()

	_, _, err := e.achievements.Unlock(1, models.AchievementWeekStreak)
	require.NoError(t, err)

	views, err := e.achievements.List(2)
	require.NoError(t, err)
	for _, v := range views {
		assert.False(t, v.Unlocked)
	}
}
