// services/reminders.go - Turns risk classifications into reminder requests
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"finhabit/models"
	"finhabit/store"
)

// NotificationSink is the external collaborator that delivers reminders.
// Delivery and retries are its problem; the engine only hands records over.
type NotificationSink interface {
	Notify(userID uint, reminder models.StreakReminder)
}

// riskDelays spaces a reminder out by how endangered the streak is: the
// closer to breaking, the sooner the nudge.
var riskDelays = map[models.RiskLevel]time.Duration{
	models.RiskLow:    4 * time.Hour,
	models.RiskMedium: 2 * time.Hour,
	models.RiskHigh:   30 * time.Minute,
}

// recoveryDelays spaces the three recovery nudges after initiation.
var recoveryDelays = []time.Duration{4 * time.Hour, 24 * time.Hour, 48 * time.Hour}

type ReminderService struct {
	store store.Store
	now   func() time.Time
}

func NewReminderService(st store.Store) *ReminderService {
	return &ReminderService{store: st, now: time.Now}
}

// scheduleRisk creates a reminder for a streak whose risk is not safe.
func (s *ReminderService) scheduleRisk(st store.Store, streak *models.Streak, now time.Time) (*models.StreakReminder, error) {
	delay, ok := riskDelays[streak.RiskLevel]
	if !ok {
		return nil, nil
	}

	reminder := &models.StreakReminder{
		ID:           uuid.NewString(),
		UserID:       streak.UserID,
		StreakID:     streak.ID,
		StreakType:   streak.Type,
		ReminderType: models.ReminderRiskAlert,
		Message: fmt.Sprintf("Your %d-day %s streak needs attention today",
			streak.CurrentCount, StreakDisplayName(streak.Type)),
		ScheduledFor: now.Add(delay),
	}
	if err := st.SaveReminder(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// scheduleBroken creates the "your streak broke, recover it" nudge.
func (s *ReminderService) scheduleBroken(st store.Store, streak *models.Streak, now time.Time) (*models.StreakReminder, error) {
	reminder := &models.StreakReminder{
		ID:           uuid.NewString(),
		UserID:       streak.UserID,
		StreakID:     streak.ID,
		StreakType:   streak.Type,
		ReminderType: models.ReminderStreakBroken,
		Message: fmt.Sprintf("Your %s streak broke — start a recovery to win back your momentum",
			StreakDisplayName(streak.Type)),
		ScheduledFor: now.Add(1 * time.Hour),
	}
	if err := st.SaveReminder(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

// scheduleRecovery creates the three spaced nudges for an open recovery.
func (s *ReminderService) scheduleRecovery(st store.Store, recovery *models.StreakRecovery, now time.Time) ([]models.StreakReminder, error) {
	reminders := make([]models.StreakReminder, 0, len(recoveryDelays))
	for i, delay := range recoveryDelays {
		reminder := models.StreakReminder{
			ID:           uuid.NewString(),
			UserID:       recovery.UserID,
			StreakID:     recovery.OriginalStreakID,
			StreakType:   recovery.StreakType,
			ReminderType: models.ReminderRecoveryNudge,
			Message: fmt.Sprintf("Recovery step %d of 3: complete any money action to rebuild your %s streak",
				i+1, StreakDisplayName(recovery.StreakType)),
			ScheduledFor: now.Add(delay),
		}
		if err := st.SaveReminder(&reminder); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

// List returns a user's reminders, soonest first.
func (s *ReminderService) List(userID uint, limit int) ([]models.StreakReminder, error) {
	return s.store.ListReminders(userID, limit)
}

// Acknowledge flips the read flag. Reminders are never otherwise mutated.
func (s *ReminderService) Acknowledge(userID uint, reminderID string) (*models.StreakReminder, error) {
	reminder, err := s.store.GetReminder(userID, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder.IsRead {
		return reminder, nil
	}
	reminder.IsRead = true
	if err := s.store.SaveReminder(reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}
