package services

import (
	"math/rand"
	"time"

	"finhabit/store"
	"finhabit/utils"
)

// testEngine wires the full service graph onto an in-memory store with a
// controllable clock.
type testEngine struct {
	store        *store.Memory
	points       *PointsService
	streaks      *StreakService
	achievements *AchievementService
	recoveries   *RecoveryService
	reminders    *ReminderService
	microWins    *MicroWinService

	clock time.Time
}

func newTestEngine() *testEngine {
	e := &testEngine{
		store: store.NewMemory(),
		clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	now := func() time.Time { return e.clock }
	locks := utils.NewKeyedMutex()

	e.reminders = NewReminderService(e.store)
	e.reminders.SetClock(now)
	e.streaks = NewStreakService(e.store, e.reminders, locks)
	e.streaks.SetClock(now)
	e.achievements = NewAchievementService(e.store, locks)
	e.achievements.SetClock(now)
	e.points = NewPointsService(e.store, e.streaks, e.achievements, locks)
	e.points.SetClock(now)
	e.recoveries = NewRecoveryService(e.store, e.achievements, e.reminders, locks)
	e.recoveries.SetClock(now)
	e.microWins = NewMicroWinService(e.store, rand.New(rand.NewSource(1)))
	e.microWins.SetClock(now)

	return e
}

// advanceDays moves the engine clock forward by whole days.
func (e *testEngine) advanceDays(n int) {
	e.clock = e.clock.AddDate(0, 0, n)
}
