// store/store.go - Persistence contract for the gamification engine
package store

import (
	"errors"
	"time"

	"finhabit/models"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("entity not found")

// Store is the persistence collaborator the engine writes through. It is
// assumed to give read-your-writes consistency per user; serializing
// mutations for a user is the engine's job, not the store's.
type Store interface {
	// Profiles and points history
	GetProfile(userID uint) (*models.GamificationProfile, error)
	SaveProfile(p *models.GamificationProfile) error
	AppendHistory(e *models.PointsHistoryEntry) error
	RecentHistory(userID uint, limit int) ([]models.PointsHistoryEntry, error)

	// Streaks. GetStreak returns the active streak for the type.
	GetStreak(userID uint, t models.StreakType) (*models.Streak, error)
	GetStreakByID(userID uint, id string) (*models.Streak, error)
	ListStreaks(userID uint) ([]models.Streak, error)
	SaveStreak(s *models.Streak) error

	// Recoveries
	GetRecovery(userID uint, id string) (*models.StreakRecovery, error)
	OpenRecoveryForStreak(userID uint, streakID string) (*models.StreakRecovery, error)
	ListOpenRecoveries(userID uint) ([]models.StreakRecovery, error)
	SaveRecovery(r *models.StreakRecovery) error
	AppendRecoveryAction(a *models.RecoveryAction) error

	// Achievements
	GetAchievement(userID uint, t models.AchievementType) (*models.Achievement, error)
	ListAchievements(userID uint) ([]models.Achievement, error)
	SaveAchievement(a *models.Achievement) error

	// Reminders
	GetReminder(userID uint, id string) (*models.StreakReminder, error)
	ListReminders(userID uint, limit int) ([]models.StreakReminder, error)
	SaveReminder(r *models.StreakReminder) error
	DueReminders(now time.Time, limit int) ([]models.StreakReminder, error)

	// Transact runs fn against a store whose writes either all apply or
	// none do. Implementations without real transactions may run fn
	// directly; the engine pre-validates so mid-flight failures are
	// store outages, not logic errors.
	Transact(fn func(Store) error) error
}
