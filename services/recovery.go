// services/recovery.go - Bounded workflow to restore a broken streak
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"finhabit/models"
	"finhabit/store"
	"finhabit/utils"
)

// recoveryActionsRequired is how many completed actions close a recovery
// successfully.
const recoveryActionsRequired = 3

// RecoveryActionResult reports one processed recovery step.
type RecoveryActionResult struct {
	Recovery         *models.StreakRecovery   `json:"recovery"`
	ActionsCompleted int                      `json:"actions_completed"`
	ActionsRemaining int                      `json:"actions_remaining"`
	Completed        bool                     `json:"completed"`
	NewStreak        *models.Streak           `json:"new_streak,omitempty"`
	Celebration      *models.CelebrationEvent `json:"celebration,omitempty"`
	NewAchievements  []models.Achievement     `json:"new_achievements"`
}

type RecoveryService struct {
	store        store.Store
	achievements *AchievementService
	reminders    *ReminderService
	locks        *utils.KeyedMutex
	now          func() time.Time
}

func NewRecoveryService(st store.Store, achievements *AchievementService, reminders *ReminderService, locks *utils.KeyedMutex) *RecoveryService {
	return &RecoveryService{
		store:        st,
		achievements: achievements,
		reminders:    reminders,
		locks:        locks,
		now:          time.Now,
	}
}

// Initiate opens a recovery for a broken streak: snapshots its best count,
// retires the broken row, and schedules three spaced nudges. Only one open
// recovery may exist per streak.
func (s *RecoveryService) Initiate(userID uint, streakID string) (*models.StreakRecovery, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	now := s.now()
	var recovery *models.StreakRecovery

	err := s.store.Transact(func(tx store.Store) error {
		streak, err := tx.GetStreakByID(userID, streakID)
		if err != nil {
			return err
		}

		daysSince := epochDay(now) - epochDay(streak.LastActivityDate)
		if daysSince <= 1 && streak.RecoveryAttempts == 0 {
			return ErrStreakNotBroken
		}

		if _, err := tx.OpenRecoveryForStreak(userID, streakID); err == nil {
			return ErrRecoveryOpen
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// The broken row is retired; the recovery (or the next natural
		// activity) produces its successor.
		streak.IsActive = false
		if err := tx.SaveStreak(streak); err != nil {
			return err
		}

		recovery = &models.StreakRecovery{
			ID:               uuid.NewString(),
			UserID:           userID,
			OriginalStreakID: streak.ID,
			StreakType:       streak.Type,
			BrokenAt:         now,
			RecoveryStarted:  now,
			OriginalCount:    streak.BestCount,
		}
		if err := tx.SaveRecovery(recovery); err != nil {
			return err
		}

		_, err = s.reminders.scheduleRecovery(tx, recovery, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recovery, nil
}

// ProcessAction appends one completed action to an open recovery and
// credits its fixed point value. The third action closes the recovery and
// rebuilds the streak with the snapshotted best count.
func (s *RecoveryService) ProcessAction(userID uint, recoveryID string, actionType models.UserAction, description string) (*RecoveryActionResult, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	now := s.now()
	result := &RecoveryActionResult{NewAchievements: []models.Achievement{}}

	err := s.store.Transact(func(tx store.Store) error {
		recovery, err := tx.GetRecovery(userID, recoveryID)
		if err != nil {
			return err
		}
		if recovery.Closed() {
			return ErrRecoveryComplete
		}

		points := actionPoints[models.ActionRecoveryStep]
		action := &models.RecoveryAction{
			ID:            uuid.NewString(),
			RecoveryID:    recovery.ID,
			ActionType:    actionType,
			CompletedAt:   now,
			PointsAwarded: points,
			Description:   description,
		}
		if err := tx.AppendRecoveryAction(action); err != nil {
			return err
		}
		if _, _, err := creditPoints(tx, userID, points, models.ActionRecoveryStep, description, now); err != nil {
			return err
		}

		completed := len(recovery.Actions) + 1
		recovery.Actions = append(recovery.Actions, *action)
		result.ActionsCompleted = completed
		result.ActionsRemaining = recoveryActionsRequired - completed
		if result.ActionsRemaining < 0 {
			result.ActionsRemaining = 0
		}

		if completed >= recoveryActionsRequired {
			recovery.IsSuccessful = true
			at := now
			recovery.RecoveryCompleted = &at
			result.Completed = true

			newStreak, err := s.rebuildStreak(tx, recovery, completed, now)
			if err != nil {
				return err
			}
			result.NewStreak = newStreak

			c := RecoveryCelebration(recovery.StreakType, recovery.OriginalCount, now)
			result.Celebration = &c

			comeback, newly, err := s.achievements.unlockLocked(tx, userID, models.AchievementComebackKid, now)
			if err != nil {
				return err
			}
			if newly {
				if _, _, err := creditPoints(tx, userID, comeback.PointsAwarded,
					models.ActionAchievementBonus, comeback.Title, now); err != nil {
					return err
				}
				result.NewAchievements = append(result.NewAchievements, *comeback)
			}
		}

		if err := tx.SaveRecovery(recovery); err != nil {
			return err
		}
		result.Recovery = recovery
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// rebuildStreak produces the successor streak after a successful recovery:
// a fresh one-day streak that inherits the snapshotted best count. If the
// user already restarted the habit naturally, that streak just inherits
// the best count instead.
func (s *RecoveryService) rebuildStreak(tx store.Store, recovery *models.StreakRecovery, attempts int, now time.Time) (*models.Streak, error) {
	existing, err := tx.GetStreak(recovery.UserID, recovery.StreakType)
	if err == nil {
		if recovery.OriginalCount > existing.BestCount {
			existing.BestCount = recovery.OriginalCount
		}
		if err := tx.SaveStreak(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	best := recovery.OriginalCount
	if best < 1 {
		best = 1
	}
	streak := &models.Streak{
		ID:               uuid.NewString(),
		UserID:           recovery.UserID,
		Type:             recovery.StreakType,
		CurrentCount:     1,
		BestCount:        best,
		LastActivityDate: now,
		IsActive:         true,
		RiskLevel:        models.RiskSafe,
		RecoveryAttempts: attempts,
		CreatedAt:        now,
	}
	if err := tx.SaveStreak(streak); err != nil {
		return nil, err
	}
	return streak, nil
}

// Abandon closes an open recovery as unsuccessful. Recoveries never expire
// on their own; this is the only way one ends without completing.
func (s *RecoveryService) Abandon(userID uint, recoveryID string) (*models.StreakRecovery, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	recovery, err := s.store.GetRecovery(userID, recoveryID)
	if err != nil {
		return nil, err
	}
	if recovery.Closed() {
		return nil, ErrRecoveryComplete
	}

	at := s.now()
	recovery.RecoveryCompleted = &at
	recovery.IsSuccessful = false
	if err := s.store.SaveRecovery(recovery); err != nil {
		return nil, err
	}
	return recovery, nil
}

// ListOpen returns a user's open recoveries, oldest first.
func (s *RecoveryService) ListOpen(userID uint) ([]models.StreakRecovery, error) {
	return s.store.ListOpenRecoveries(userID)
}
