// models/streak.go
package models

import "time"

// StreakType identifies a habit tracked as a consecutive-day streak.
type StreakType string

const (
	StreakDailyCheckIn   StreakType = "daily_check_in"
	StreakCategorization StreakType = "categorization"
	StreakSavings        StreakType = "savings"
	StreakBudgetReview   StreakType = "budget_review"
)

// AllStreakTypes returns every known streak type.
func AllStreakTypes() []StreakType {
	return []StreakType{
		StreakDailyCheckIn,
		StreakCategorization,
		StreakSavings,
		StreakBudgetReview,
	}
}

// RiskLevel classifies how likely a streak is to break, from days since
// last activity.
type RiskLevel string

const (
	RiskSafe   RiskLevel = "safe"
	RiskLow    RiskLevel = "low_risk"
	RiskMedium RiskLevel = "medium_risk"
	RiskHigh   RiskLevel = "high_risk"
)

// Streak tracks one habit for one user. At most one row per (user, type)
// is active; superseded rows (replaced by a recovery) stay for history.
// bestCount never drops below currentCount.
type Streak struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	UserID           uint       `gorm:"not null;index:idx_streaks_user_type" json:"user_id"`
	Type             StreakType `gorm:"not null;size:50;index:idx_streaks_user_type" json:"type"`
	CurrentCount     int        `gorm:"default:0" json:"current_count"`
	BestCount        int        `gorm:"default:0" json:"best_count"`
	LastActivityDate time.Time  `json:"last_activity_date"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RiskLevel        RiskLevel  `gorm:"size:20;default:'safe'" json:"risk_level"`
	RecoveryAttempts int        `gorm:"default:0" json:"recovery_attempts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
