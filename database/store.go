// database/store.go - GORM-backed implementation of the engine's Store
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"finhabit/models"
	"finhabit/store"
)

// GormStore adapts a *gorm.DB to the store.Store interface the
// gamification services are written against.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func wrapErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *GormStore) GetProfile(userID uint) (*models.GamificationProfile, error) {
	var p models.GamificationProfile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, wrapErr("get profile", err)
	}
	return &p, nil
}

func (s *GormStore) SaveProfile(p *models.GamificationProfile) error {
	if err := s.db.Save(p).Error; err != nil {
		return wrapErr("save profile", err)
	}
	return nil
}

func (s *GormStore) AppendHistory(e *models.PointsHistoryEntry) error {
	if err := s.db.Create(e).Error; err != nil {
		return wrapErr("append history", err)
	}
	return nil
}

func (s *GormStore) RecentHistory(userID uint, limit int) ([]models.PointsHistoryEntry, error) {
	var entries []models.PointsHistoryEntry
	q := s.db.Where("user_id = ?", userID).Order("earned_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, wrapErr("recent history", err)
	}
	return entries, nil
}

func (s *GormStore) GetStreak(userID uint, t models.StreakType) (*models.Streak, error) {
	var streak models.Streak
	if err := s.db.Where("user_id = ? AND type = ? AND is_active = ?", userID, t, true).First(&streak).Error; err != nil {
		return nil, wrapErr("get streak", err)
	}
	return &streak, nil
}

func (s *GormStore) GetStreakByID(userID uint, id string) (*models.Streak, error) {
	var streak models.Streak
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&streak).Error; err != nil {
		return nil, wrapErr("get streak by id", err)
	}
	return &streak, nil
}

func (s *GormStore) ListStreaks(userID uint) ([]models.Streak, error) {
	var streaks []models.Streak
	if err := s.db.Where("user_id = ?", userID).Order("type ASC").Find(&streaks).Error; err != nil {
		return nil, wrapErr("list streaks", err)
	}
	return streaks, nil
}

func (s *GormStore) SaveStreak(streak *models.Streak) error {
	if err := s.db.Save(streak).Error; err != nil {
		return wrapErr("save streak", err)
	}
	return nil
}

func (s *GormStore) GetRecovery(userID uint, id string) (*models.StreakRecovery, error) {
	var r models.StreakRecovery
	err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Actions", func(db *gorm.DB) *gorm.DB {
			return db.Order("completed_at ASC")
		}).
		First(&r).Error
	if err != nil {
		return nil, wrapErr("get recovery", err)
	}
	return &r, nil
}

func (s *GormStore) OpenRecoveryForStreak(userID uint, streakID string) (*models.StreakRecovery, error) {
	var r models.StreakRecovery
	err := s.db.Where("user_id = ? AND original_streak_id = ? AND recovery_completed IS NULL", userID, streakID).
		Preload("Actions").
		First(&r).Error
	if err != nil {
		return nil, wrapErr("open recovery for streak", err)
	}
	return &r, nil
}

func (s *GormStore) ListOpenRecoveries(userID uint) ([]models.StreakRecovery, error) {
	var recoveries []models.StreakRecovery
	err := s.db.Where("user_id = ? AND recovery_completed IS NULL", userID).
		Preload("Actions").
		Order("recovery_started ASC").
		Find(&recoveries).Error
	if err != nil {
		return nil, wrapErr("list open recoveries", err)
	}
	return recoveries, nil
}

func (s *GormStore) SaveRecovery(r *models.StreakRecovery) error {
	// Actions are appended through AppendRecoveryAction; avoid GORM
	// re-saving the association here.
	if err := s.db.Omit("Actions").Save(r).Error; err != nil {
		return wrapErr("save recovery", err)
	}
	return nil
}

func (s *GormStore) AppendRecoveryAction(a *models.RecoveryAction) error {
	if err := s.db.Create(a).Error; err != nil {
		return wrapErr("append recovery action", err)
	}
	return nil
}

func (s *GormStore) GetAchievement(userID uint, t models.AchievementType) (*models.Achievement, error) {
	var a models.Achievement
	if err := s.db.Where("user_id = ? AND type = ?", userID, t).First(&a).Error; err != nil {
		return nil, wrapErr("get achievement", err)
	}
	return &a, nil
}

func (s *GormStore) ListAchievements(userID uint) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := s.db.Where("user_id = ?", userID).Order("unlocked_at ASC").Find(&achievements).Error; err != nil {
		return nil, wrapErr("list achievements", err)
	}
	return achievements, nil
}

func (s *GormStore) SaveAchievement(a *models.Achievement) error {
	if err := s.db.Save(a).Error; err != nil {
		return wrapErr("save achievement", err)
	}
	return nil
}

func (s *GormStore) GetReminder(userID uint, id string) (*models.StreakReminder, error) {
	var r models.StreakReminder
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&r).Error; err != nil {
		return nil, wrapErr("get reminder", err)
	}
	return &r, nil
}

func (s *GormStore) ListReminders(userID uint, limit int) ([]models.StreakReminder, error) {
	var reminders []models.StreakReminder
	q := s.db.Where("user_id = ?", userID).Order("scheduled_for ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reminders).Error; err != nil {
		return nil, wrapErr("list reminders", err)
	}
	return reminders, nil
}

func (s *GormStore) SaveReminder(r *models.StreakReminder) error {
	if err := s.db.Save(r).Error; err != nil {
		return wrapErr("save reminder", err)
	}
	return nil
}

func (s *GormStore) DueReminders(now time.Time, limit int) ([]models.StreakReminder, error) {
	var reminders []models.StreakReminder
	q := s.db.Where("sent_at IS NULL AND scheduled_for <= ?", now).Order("scheduled_for ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reminders).Error; err != nil {
		return nil, wrapErr("due reminders", err)
	}
	return reminders, nil
}

func (s *GormStore) Transact(fn func(store.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
