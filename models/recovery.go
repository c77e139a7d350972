// models/recovery.go
package models

import "time"

// StreakRecovery tracks the bounded workflow that lets a user restore a
// broken streak. At most one open recovery exists per broken streak.
type StreakRecovery struct {
	ID                string           `gorm:"primaryKey;size:36" json:"id"`
	UserID            uint             `gorm:"not null;index" json:"user_id"`
	OriginalStreakID  string           `gorm:"not null;size:36;index" json:"original_streak_id"`
	StreakType        StreakType       `gorm:"not null;size:50" json:"streak_type"`
	BrokenAt          time.Time        `json:"broken_at"`
	RecoveryStarted   time.Time        `json:"recovery_started"`
	RecoveryCompleted *time.Time       `json:"recovery_completed,omitempty"`
	OriginalCount     int              `gorm:"default:0" json:"original_count"`
	Actions           []RecoveryAction `gorm:"foreignKey:RecoveryID" json:"recovery_actions,omitempty"`
	IsSuccessful      bool             `gorm:"default:false" json:"is_successful"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Closed reports whether the recovery has finished, successfully or not.
func (r *StreakRecovery) Closed() bool {
	return r.RecoveryCompleted != nil
}

// RecoveryAction is an immutable step appended to a recovery.
type RecoveryAction struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	RecoveryID    string     `gorm:"not null;size:36;index" json:"recovery_id"`
	ActionType    UserAction `gorm:"not null;size:50" json:"action_type"`
	CompletedAt   time.Time  `json:"completed_at"`
	PointsAwarded int        `gorm:"default:0" json:"points_awarded"`
	Description   string     `json:"description"`
}
