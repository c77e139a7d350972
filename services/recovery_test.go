package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhabit/models"
)

// breakStreak builds a streak over the given days, then misses enough days
// to break it on the next activity. Returns the streak ID.
func breakStreak(t *testing.T, e *testEngine, userID uint, days int) string {
	t.Helper()
	for day := 0; day < days; day++ {
		_, err := e.streaks.UpdateStreak(userID, models.StreakDailyCheckIn, e.clock)
		require.NoError(t, err)
		e.advanceDays(1)
	}
	e.advanceDays(2)
	result, err := e.streaks.UpdateStreak(userID, models.StreakDailyCheckIn, e.clock)
	require.NoError(t, err)
	require.True(t, result.WasBroken)
	return result.Streak.ID
}

func TestInitiateRequiresBrokenStreak(t *testing.T) {
	e := newTestEngine()

	result, err := e.streaks.UpdateStreak(1, models.StreakDailyCheckIn, e.clock)
	require.NoError(t, err)

	_, err = e.recoveries.Initiate(1, result.Streak.ID)
	assert.ErrorIs(t, err, ErrStreakNotBroken)
}

func TestInitiateRetiresStreakAndSchedulesNudges(t *testing.T) {
	e := newTestEngine()
	streakID := breakStreak(t, e, 1, 5)

	recovery, err := e.recoveries.Initiate(1, streakID)
	require.NoError(t, err)

	assert.Equal(t, models.StreakDailyCheckIn, recovery.StreakType)
	assert.Equal(t, 5, recovery.OriginalCount, "snapshots the best count")
	assert.False(t, recovery.Closed())

	retired, err := e.store.GetStreakByID(1, streakID)
	require.NoError(t, err)
	assert.False(t, retired.IsActive)

	var nudges int
	reminders, err := e.reminders.List(1, 50)
	require.NoError(t, err)
	for _, r := range reminders {
		if r.ReminderType == models.ReminderRecoveryNudge {
			nudges++
		}
	}
	assert.Equal(t, 3, nudges)
}

func TestInitiateRejectsSecondOpenRecovery(t *testing.T) {
	e := newTestEngine()
	streakID := breakStreak(t, e, 1, 5)

	_, err := e.recoveries.Initiate(1, streakID)
	require.NoError(t, err)

	_, err = e.recoveries.Initiate(1, streakID)
	assert.ErrorIs(t, err, ErrRecoveryOpen)
}

func TestRecoveryCompletesAtThreeActions(t *testing.T) {
	e := newTestEngine()
	streakID := breakStreak(t, e, 1, 5)

	recovery, err := e.recoveries.Initiate(1, streakID)
	require.NoError(t, err)

	before, err := e.points.GetProfile(1)
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		result, err := e.recoveries.ProcessAction(1, recovery.ID, models.ActionRecoveryStep, "step")
		require.NoError(t, err)
		assert.Equal(t, i, result.ActionsCompleted)
		assert.Equal(t, 3-i, result.ActionsRemaining)
		assert.False(t, result.Completed)
		assert.Nil(t, result.NewStreak)
	}

	final, err := e.recoveries.ProcessAction(1, recovery.ID, models.ActionRecoveryStep, "step")
	require.NoError(t, err)
	assert.True(t, final.Completed)
	assert.True(t, final.Recovery.IsSuccessful)
	require.NotNil(t, final.Recovery.RecoveryCompleted)

	// The rebuilt streak restarts at one but keeps the old best.
	require.NotNil(t, final.NewStreak)
	assert.Equal(t, 1, final.NewStreak.CurrentCount)
	assert.Equal(t, 5, final.NewStreak.BestCount)
	assert.True(t, final.NewStreak.IsActive)

	require.NotNil(t, final.Celebration)
	assert.Equal(t, models.CelebrationRecovery, final.Celebration.Type)

	var types []models.AchievementType
	for _, a := range final.NewAchievements {
		types = append(types, a.Type)
	}
	assert.Contains(t, types, models.AchievementComebackKid)

	after, err := e.points.GetProfile(1)
	require.NoError(t, err)
	// 3 recovery steps at 15 points each plus the 40-point badge.
	assert.Equal(t, before.TotalPoints+3*15+40, after.TotalPoints)
}

func TestRecoveryRejectsFourthAction(t *testing.T) {
	e := newTestEngine()
	streakID := breakStreak(t, e, 1, 3)

	recovery, err := e.recoveries.Initiate(1, streakID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := e.recoveries.ProcessAction(1, recovery.ID, models.ActionRecoveryStep, "")
		require.NoError(t, err)
	}

	_, err = e.recoveries.ProcessAction(1, recovery.ID, models.ActionRecoveryStep, "")
	assert.ErrorIs(t, err, ErrRecoveryComplete)
}

func TestRecoveryInheritsBestIntoNaturalRestart(t *testing.T) {
	e := newTestEngine()
	streakID := breakStreak(t, e, 1, 6)

	recovery, err := e.recoveries.Initiate(1, streakID)
	require.NoError(t, err)

	// The user restarts the habit on their own mid-recovery.
	restart, err := e.streaks.UpdateStreak(1, models.StreakDailyCheckIn, e.clock)
	require.NoError(t, err)
	require.NotEqual(t, streakID, restart.Streak.ID)

	for i := 0; i < 3; i++ {
		final, err := e.recoveries.ProcessAction(1, recovery.ID, models.ActionRecoveryStep, "")
		require.NoError(t, err)
		if final.Completed {
			assert.Equal(t, restart.Streak.ID, final.NewStreak.ID)
			assert.Equal(t, 6, final.NewStreak.BestCount)
		}
	}
}

func TestAbandonClosesRecovery(t *testing.T) {
	e := newTestEngine()
	streakID := breakStreak(t, e, 1, 4)

	recovery, err := e.recoveries.Initiate(1, streakID)
	require.NoError(t, err)

	abandoned, err := e.recoveries.Abandon(1, recovery.ID)
	require.NoError(t, err)
	assert.False(t, abandoned.IsSuccessful)
	assert.True(t, abandoned.Closed())

	_, err = e.recoveries.ProcessAction(1, recovery.ID, models.ActionRecoveryStep, "")
	assert.ErrorIs(t, err, ErrRecoveryComplete)

	open, err := e.recoveries.ListOpen(1)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAbandonTwiceFails(t *testing.T) {
	e := newTestEngine()
	streakID := breakStreak(t, e, 1, 4)

	recovery, err := e.recoveries.Initiate(1, streakID)
	require.NoError(t, err)

	_, err = e.recoveries.Abandon(1, recovery.ID)
	require.NoError(t, err)
	_, err = e.recoveries.Abandon(1, recovery.ID)
	assert.ErrorIs(t, err, ErrRecoveryComplete)
}
