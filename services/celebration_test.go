package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhabit/models"
)

var celebrationAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPointsCelebrationIntensity(t *testing.T) {
	small := PointsCelebration(5, celebrationAt)
	assert.Equal(t, models.IntensityLow, small.Intensity)
	assert.Equal(t, 1000, small.DurationMs)
	assert.Equal(t, "+5 points", small.Message)

	big := PointsCelebration(50, celebrationAt)
	assert.Equal(t, models.IntensityMedium, big.Intensity)
	assert.Equal(t, 2000, big.DurationMs)
}

func TestLevelUpCelebrationIntensity(t *testing.T) {
	low := LevelUpCelebration(2, nil, celebrationAt)
	assert.Equal(t, models.IntensityMedium, low.Intensity)

	high := LevelUpCelebration(5, []string{"spending_insights"}, celebrationAt)
	assert.Equal(t, models.IntensityHigh, high.Intensity)
	assert.Equal(t, 3000, high.DurationMs)
	assert.Contains(t, high.Message, "unlocked new features")
}

func TestMilestoneCelebrationScalesWithCount(t *testing.T) {
	c3 := MilestoneCelebration(models.StreakDailyCheckIn, 3, false, celebrationAt)
	assert.Equal(t, models.IntensityLow, c3.Intensity)

	c7 := MilestoneCelebration(models.StreakDailyCheckIn, 7, false, celebrationAt)
	assert.Equal(t, models.IntensityMedium, c7.Intensity)

	c30 := MilestoneCelebration(models.StreakDailyCheckIn, 30, false, celebrationAt)
	assert.Equal(t, models.IntensityHigh, c30.Intensity)
	assert.Equal(t, "30", c30.AdditionalData["count"])
	assert.NotContains(t, c30.Animations, "record_breaker")
}

func TestMilestoneCelebrationRecordFlag(t *testing.T) {
	c := MilestoneCelebration(models.StreakSavings, 14, true, celebrationAt)
	assert.Contains(t, c.Animations, "record_breaker")
	assert.Equal(t, "true", c.AdditionalData["new_record"])
}

func TestAchievementCelebrationIntensity(t *testing.T) {
	modest := &models.Achievement{Type: models.AchievementWeekStreak, Title: "One Week Strong", BadgeIcon: "🔥", PointsAwarded: 50}
	assert.Equal(t, models.IntensityMedium, AchievementCelebration(modest, celebrationAt).Intensity)

	grand := &models.Achievement{Type: models.AchievementMonthStreak, Title: "Habit Formed", BadgeIcon: "🏆", PointsAwarded: 150}
	assert.Equal(t, models.IntensityHigh, AchievementCelebration(grand, celebrationAt).Intensity)
}

func TestRecoveryCelebration(t *testing.T) {
	c := RecoveryCelebration(models.StreakBudgetReview, 21, celebrationAt)
	assert.Equal(t, models.CelebrationRecovery, c.Type)
	assert.Equal(t, models.IntensityMedium, c.Intensity)
	assert.Contains(t, c.Message, "21-day")
	assert.NotContains(t, c.AdditionalData, "new_record")
}

func TestCelebrationsAreDeterministic(t *testing.T) {
	a := MicroWinCelebration("Check your balance", 8, celebrationAt)
	b := MicroWinCelebration("Check your balance", 8, celebrationAt)
	assert.Equal(t, a, b)
}

func TestCelebrationsCarryFullSensoryPayload(t *testing.T) {
	for _, intensity := range []models.CelebrationIntensity{models.IntensityLow, models.IntensityMedium, models.IntensityHigh} {
		c := newCelebration(models.CelebrationPoints, intensity, "t", "m", celebrationAt)
		require.NotEmpty(t, c.Animations, "intensity %s", intensity)
		require.NotEmpty(t, c.Sounds, "intensity %s", intensity)
		require.NotEmpty(t, c.HapticFeedback, "intensity %s", intensity)
		assert.Positive(t, c.DurationMs)
		assert.Equal(t, celebrationAt, c.Timestamp)
	}
}
