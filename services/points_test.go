package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhabit/models"
)

func TestAwardUnknownAction(t *testing.T) {
	e := newTestEngine()

	_, err := e.points.Award(1, models.UserAction("transfer_money"), nil, "")
	assert.ErrorIs(t, err, ErrUnknownAction)

	// Explicit points do not smuggle an unknown action past the table.
	points := 50
	_, err = e.points.Award(1, models.UserAction("transfer_money"), &points, "")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestAwardBasics(t *testing.T) {
	e := newTestEngine()

	result, err := e.points.Award(1, models.ActionCheckBalance, nil, "morning glance")
	require.NoError(t, err)

	assert.Equal(t, 5, result.PointsAwarded)
	assert.Equal(t, 5, result.TotalPoints)
	assert.Equal(t, 1, result.Level)
	assert.False(t, result.LeveledUp)

	// Check-in actions keep the daily check-in streak alive.
	require.NotNil(t, result.Streak)
	assert.Equal(t, models.StreakDailyCheckIn, result.Streak.Streak.Type)
	assert.Equal(t, 1, result.Streak.Streak.CurrentCount)

	// Every award carries at least the points celebration.
	require.NotEmpty(t, result.Celebrations)
	assert.Equal(t, models.CelebrationPoints, result.Celebrations[0].Type)

	history, err := e.points.History(1, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ActionCheckBalance, history[0].Action)
	assert.Equal(t, "morning glance", history[0].Description)
}

func TestAwardExplicitPointsOverride(t *testing.T) {
	e := newTestEngine()

	points := 500
	result, err := e.points.Award(1, models.ActionCompleteLesson, &points, "bonus lesson")
	require.NoError(t, err)

	assert.Equal(t, 500, result.PointsAwarded)
	assert.Equal(t, 500, result.TotalPoints)
	assert.Equal(t, 3, result.Level)
	assert.True(t, result.LeveledUp)
	assert.Contains(t, result.UnlockedFeatures, "savings_goals")
}

func TestAwardLevelUpCelebration(t *testing.T) {
	e := newTestEngine()

	points := 120
	result, err := e.points.Award(1, models.ActionCompleteLesson, &points, "")
	require.NoError(t, err)
	require.True(t, result.LeveledUp)

	var found bool
	for _, c := range result.Celebrations {
		if c.Type == models.CelebrationLevelUp {
			found = true
			assert.Equal(t, "2", c.AdditionalData["level"])
		}
	}
	assert.True(t, found, "level up must emit its own celebration")
}

func TestAwardActionAchievement(t *testing.T) {
	e := newTestEngine()

	result, err := e.points.Award(1, models.ActionLinkAccount, nil, "")
	require.NoError(t, err)

	require.Len(t, result.NewAchievements, 1)
	ach := result.NewAchievements[0]
	assert.Equal(t, models.AchievementFirstAccountLinked, ach.Type)
	// 15 for the action plus the 25-point badge bonus.
	assert.Equal(t, 40, result.TotalPoints)

	// A second link unlocks nothing new and credits no bonus.
	again, err := e.points.Award(1, models.ActionLinkAccount, nil, "")
	require.NoError(t, err)
	assert.Empty(t, again.NewAchievements)
	assert.Equal(t, 55, again.TotalPoints)
}

func TestAwardBonusCrossesLevelThreshold(t *testing.T) {
	e := newTestEngine()

	// 70 banked, link_account adds 15 (85, still level 1) and the
	// 25-point badge bonus tips the total to 110, level 2.
	seed := 70
	_, err := e.points.Award(1, models.ActionCompleteLesson, &seed, "")
	require.NoError(t, err)

	result, err := e.points.Award(1, models.ActionLinkAccount, nil, "")
	require.NoError(t, err)

	assert.Equal(t, 110, result.TotalPoints)
	assert.Equal(t, 2, result.Level)
	require.True(t, result.LeveledUp)
	assert.Contains(t, result.UnlockedFeatures, "custom_categories")

	var found bool
	for _, c := range result.Celebrations {
		if c.Type == models.CelebrationLevelUp {
			found = true
			assert.Equal(t, "2", c.AdditionalData["level"])
		}
	}
	assert.True(t, found, "a bonus-driven level up must emit its own celebration")
}

func TestAwardWeekStreakAchievement(t *testing.T) {
	e := newTestEngine()

	var result *PointsResult
	for day := 0; day < 7; day++ {
		var err error
		result, err = e.points.Award(1, models.ActionCheckBalance, nil, "")
		require.NoError(t, err)
		e.advanceDays(1)
	}

	var types []models.AchievementType
	for _, a := range result.NewAchievements {
		types = append(types, a.Type)
	}
	assert.Contains(t, types, models.AchievementWeekStreak)
}

func TestAwardDailyRoutineProgression(t *testing.T) {
	e := newTestEngine()

	for day := 0; day < 20; day++ {
		_, err := e.points.Award(1, models.ActionCheckBalance, nil, "")
		require.NoError(t, err)
		e.advanceDays(1)
	}

	profile, err := e.points.GetProfile(1)
	require.NoError(t, err)
	// 20 days x 5 points plus the 50-point week-streak badge.
	assert.Equal(t, 150, profile.TotalPoints)
	assert.Equal(t, 2, profile.Level)
	assert.Equal(t, 250, profile.PointsToNext)
}

func TestAwardSaturatesInsteadOfWrapping(t *testing.T) {
	e := newTestEngine()

	huge := math.MaxInt - 10
	_, err := e.points.Award(1, models.ActionCompleteLesson, &huge, "")
	require.NoError(t, err)

	result, err := e.points.Award(1, models.ActionCompleteLesson, nil, "")
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, result.TotalPoints)
}

func TestAwardNegativeAdjustmentFloorsAtZero(t *testing.T) {
	e := newTestEngine()

	_, err := e.points.Award(1, models.ActionCheckBalance, nil, "")
	require.NoError(t, err)

	penalty := -500
	result, err := e.points.Award(1, models.ActionCheckBalance, &penalty, "correction")
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalPoints)
	assert.Equal(t, 1, result.Level)
}

func TestGetProfileWithoutActivity(t *testing.T) {
	e := newTestEngine()

	profile, err := e.points.GetProfile(7)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Level)
	assert.Equal(t, 0, profile.TotalPoints)
	assert.Equal(t, 100, profile.PointsToNext)
	assert.Equal(t, 0.0, profile.ProgressPercent)
}

func TestHistoryNewestFirst(t *testing.T) {
	e := newTestEngine()

	_, err := e.points.Award(1, models.ActionCheckBalance, nil, "first")
	require.NoError(t, err)
	e.advanceDays(1)
	_, err = e.points.Award(1, models.ActionPayBill, nil, "second")
	require.NoError(t, err)

	history, err := e.points.History(1, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Description)
	assert.Equal(t, "first", history[1].Description)
}
