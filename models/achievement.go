// models/achievement.go
package models

import "time"

// AchievementType identifies an unlockable badge.
type AchievementType string

const (
	AchievementFirstAccountLinked  AchievementType = "first_account_linked"
	AchievementFirstCategorization AchievementType = "first_categorization"
	AchievementBudgetBuilder       AchievementType = "budget_builder"
	AchievementSavingsStarter      AchievementType = "savings_starter"
	AchievementWeekStreak          AchievementType = "week_streak"
	AchievementMonthStreak         AchievementType = "month_streak"
	AchievementComebackKid         AchievementType = "comeback_kid"
	AchievementLevel5              AchievementType = "level_5"
	AchievementLevel10             AchievementType = "level_10"
	AchievementPoints1000          AchievementType = "points_1000"
)

// AllAchievementTypes returns every known achievement type.
func AllAchievementTypes() []AchievementType {
	return []AchievementType{
		AchievementFirstAccountLinked,
		AchievementFirstCategorization,
		AchievementBudgetBuilder,
		AchievementSavingsStarter,
		AchievementWeekStreak,
		AchievementMonthStreak,
		AchievementComebackKid,
		AchievementLevel5,
		AchievementLevel10,
		AchievementPoints1000,
	}
}

// Achievement is an unlocked badge. One per (user, type); re-unlocking
// returns the original row unchanged.
type Achievement struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	UserID        uint            `gorm:"not null;uniqueIndex:idx_achievements_user_type" json:"user_id"`
	Type          AchievementType `gorm:"not null;size:50;uniqueIndex:idx_achievements_user_type" json:"type"`
	Title         string          `gorm:"not null" json:"title"`
	Description   string          `gorm:"not null" json:"description"`
	BadgeIcon     string          `json:"badge_icon"`
	Category      string          `gorm:"not null;index" json:"category"` // Onboarding, Streak, Progression, Money
	PointsAwarded int             `gorm:"default:0" json:"points_awarded"`
	UnlockedAt    time.Time       `json:"unlocked_at"`
}
