package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhabit/models"
)

// captureSink records delivered reminders for assertions.
type captureSink struct {
	delivered []models.StreakReminder
}

func (c *captureSink) Notify(userID uint, reminder models.StreakReminder) {
	c.delivered = append(c.delivered, reminder)
}

func TestScheduleRiskDelays(t *testing.T) {
	e := newTestEngine()

	cases := []struct {
		risk  models.RiskLevel
		delay time.Duration
	}{
		{models.RiskLow, 4 * time.Hour},
		{models.RiskMedium, 2 * time.Hour},
		{models.RiskHigh, 30 * time.Minute},
	}
	for _, c := range cases {
		streak := &models.Streak{ID: "s-" + string(c.risk), UserID: 1, Type: models.StreakDailyCheckIn, CurrentCount: 4, RiskLevel: c.risk}
		reminder, err := e.reminders.scheduleRisk(e.store, streak, e.clock)
		require.NoError(t, err)
		require.NotNil(t, reminder)
		assert.Equal(t, models.ReminderRiskAlert, reminder.ReminderType)
		assert.Equal(t, e.clock.Add(c.delay), reminder.ScheduledFor, "risk %s", c.risk)
		assert.Contains(t, reminder.Message, "4-day")
	}
}

func TestScheduleRiskIgnoresSafeStreaks(t *testing.T) {
	e := newTestEngine()

	streak := &models.Streak{ID: "s1", UserID: 1, Type: models.StreakSavings, RiskLevel: models.RiskSafe}
	reminder, err := e.reminders.scheduleRisk(e.store, streak, e.clock)
	require.NoError(t, err)
	assert.Nil(t, reminder)
}

func TestScheduleRecoverySpacing(t *testing.T) {
	e := newTestEngine()

	recovery := &models.StreakRecovery{ID: "r1", UserID: 1, OriginalStreakID: "s1", StreakType: models.StreakSavings}
	nudges, err := e.reminders.scheduleRecovery(e.store, recovery, e.clock)
	require.NoError(t, err)
	require.Len(t, nudges, 3)

	assert.Equal(t, e.clock.Add(4*time.Hour), nudges[0].ScheduledFor)
	assert.Equal(t, e.clock.Add(24*time.Hour), nudges[1].ScheduledFor)
	assert.Equal(t, e.clock.Add(48*time.Hour), nudges[2].ScheduledFor)
	for i, n := range nudges {
		assert.Equal(t, models.ReminderRecoveryNudge, n.ReminderType)
		assert.Contains(t, n.Message, "step "+string(rune('1'+i)))
	}
}

func TestAcknowledgeIsSticky(t *testing.T) {
	e := newTestEngine()

	streak := &models.Streak{ID: "s1", UserID: 1, Type: models.StreakSavings, CurrentCount: 2, RiskLevel: models.RiskLow}
	reminder, err := e.reminders.scheduleRisk(e.store, streak, e.clock)
	require.NoError(t, err)

	acked, err := e.reminders.Acknowledge(1, reminder.ID)
	require.NoError(t, err)
	assert.True(t, acked.IsRead)

	again, err := e.reminders.Acknowledge(1, reminder.ID)
	require.NoError(t, err)
	assert.True(t, again.IsRead)
}

func TestDispatchDueDeliversOnce(t *testing.T) {
	e := newTestEngine()
	sink := &captureSink{}
	d := &ReminderDispatcher{store: e.store, sink: sink}

	streak := &models.Streak{ID: "s1", UserID: 7, Type: models.StreakDailyCheckIn, CurrentCount: 5, RiskLevel: models.RiskHigh}
	_, err := e.reminders.scheduleRisk(e.store, streak, e.clock)
	require.NoError(t, err)

	// Not due yet.
	assert.Equal(t, 0, d.DispatchDue(e.clock))
	assert.Empty(t, sink.delivered)

	// Due after the 30-minute high-risk delay.
	assert.Equal(t, 1, d.DispatchDue(e.clock.Add(time.Hour)))
	require.Len(t, sink.delivered, 1)
	assert.Equal(t, uint(7), sink.delivered[0].UserID)

	// Never redelivered.
	assert.Equal(t, 0, d.DispatchDue(e.clock.Add(2*time.Hour)))
}

func TestDispatcherStartStop(t *testing.T) {
	e := newTestEngine()
	InitReminderDispatcher(e.store, &captureSink{}, 10*time.Millisecond)
	d := GetReminderDispatcher()
	require.NotNil(t, d)
	time.Sleep(30 * time.Millisecond)
	d.Stop()
}
