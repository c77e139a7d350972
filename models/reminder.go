// models/reminder.go
package models

import "time"

// ReminderType distinguishes why a reminder was scheduled.
type ReminderType string

const (
	ReminderRiskAlert     ReminderType = "risk_alert"
	ReminderStreakBroken  ReminderType = "streak_broken"
	ReminderRecoveryNudge ReminderType = "recovery_nudge"
)

// StreakReminder is handed to the notification layer for delivery. The
// engine only creates it and flips the read/sent flags.
type StreakReminder struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	StreakID     string       `gorm:"size:36;index" json:"streak_id"`
	StreakType   StreakType   `gorm:"size:50" json:"streak_type"`
	ReminderType ReminderType `gorm:"not null;size:30" json:"reminder_type"`
	Message      string       `gorm:"not null" json:"message"`
	ScheduledFor time.Time    `gorm:"index" json:"scheduled_for"`
	SentAt       *time.Time   `json:"sent_at,omitempty"`
	IsRead       bool         `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
