// services/streaks.go - Per (user, streak type) consecutive-day state machine
package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"finhabit/models"
	"finhabit/store"
	"finhabit/utils"
)

// StreakUpdateResult reports what a single activity did to a streak.
type StreakUpdateResult struct {
	Streak       *models.Streak           `json:"streak"`
	WasExtended  bool                     `json:"was_extended"`
	WasBroken    bool                     `json:"was_broken"`
	NewRiskLevel models.RiskLevel         `json:"new_risk_level"`
	Celebration  *models.CelebrationEvent `json:"celebration,omitempty"`
	Reminder     *models.StreakReminder   `json:"reminder,omitempty"`
}

// StreakRiskAnalysis scores one streak for the reminder prioritizer.
type StreakRiskAnalysis struct {
	Streak            models.Streak    `json:"streak"`
	RiskLevel         models.RiskLevel `json:"risk_level"`
	DaysSinceActivity int              `json:"days_since_activity"`
	UrgencyScore      int              `json:"urgency_score"`
}

type StreakService struct {
	store     store.Store
	reminders *ReminderService
	locks     *utils.KeyedMutex
	now       func() time.Time
}

func NewStreakService(st store.Store, reminders *ReminderService, locks *utils.KeyedMutex) *StreakService {
	return &StreakService{
		store:     st,
		reminders: reminders,
		locks:     locks,
		now:       time.Now,
	}
}

// epochDay collapses a timestamp to its UTC calendar day so day deltas
// ignore the time of day.
func epochDay(t time.Time) int {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / 86400)
}

// ClassifyRisk derives a streak's risk purely from days since last
// activity. It is recomputed on every read, never cached across days.
func ClassifyRisk(lastActivity, today time.Time) models.RiskLevel {
	days := epochDay(today) - epochDay(lastActivity)
	switch {
	case days <= 1:
		return models.RiskSafe
	case days == 2:
		return models.RiskLow
	case days == 3:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

// UrgencyScore ranks a streak for reminder priority: a risk-tier base
// scaled by streak length, clamped to [1,10].
func UrgencyScore(risk models.RiskLevel, currentCount int) int {
	base := map[models.RiskLevel]float64{
		models.RiskSafe:   1,
		models.RiskLow:    3,
		models.RiskMedium: 6,
		models.RiskHigh:   9,
	}[risk]

	factor := 1.0
	switch {
	case currentCount >= 30:
		factor = 2.0
	case currentCount >= 7:
		factor = 1.5
	}

	score := int(math.Round(base * factor))
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// IsMilestone reports whether a streak count sits exactly on a milestone.
func IsMilestone(count int) bool {
	for _, m := range streakMilestones {
		if count == m {
			return true
		}
	}
	return false
}

// UpdateStreak records activity of the given type on the given date (zero
// date means now) and advances the state machine. Same-day activity is a
// no-op; the next consecutive day extends; a larger gap resets to one.
func (s *StreakService) UpdateStreak(userID uint, t models.StreakType, date time.Time) (*StreakUpdateResult, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)
	return s.updateLocked(s.store, userID, t, date)
}

// updateLocked assumes the caller holds the user lock. st may be a
// transaction-bound store when called from the points ledger.
func (s *StreakService) updateLocked(st store.Store, userID uint, t models.StreakType, date time.Time) (*StreakUpdateResult, error) {
	now := s.now()
	if date.IsZero() {
		date = now
	}

	streak, err := st.GetStreak(userID, t)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	result := &StreakUpdateResult{}

	if streak == nil {
		streak = &models.Streak{
			ID:               uuid.NewString(),
			UserID:           userID,
			Type:             t,
			CurrentCount:     1,
			BestCount:        1,
			LastActivityDate: date,
			IsActive:         true,
			CreatedAt:        now,
		}
		result.WasExtended = true
	} else {
		days := epochDay(date) - epochDay(streak.LastActivityDate)
		switch {
		case days <= 0:
			// Same-day (or backdated) activity never double-increments.
		case days == 1:
			prevBest := streak.BestCount
			streak.CurrentCount++
			if streak.CurrentCount > streak.BestCount {
				streak.BestCount = streak.CurrentCount
			}
			streak.RecoveryAttempts = 0
			streak.LastActivityDate = date
			result.WasExtended = true
			if IsMilestone(streak.CurrentCount) {
				c := MilestoneCelebration(t, streak.CurrentCount, streak.CurrentCount > prevBest, now)
				result.Celebration = &c
			}
		default: // days > 1: the chain broke; restart at one
			streak.CurrentCount = 1
			streak.RecoveryAttempts++
			streak.LastActivityDate = date
			result.WasBroken = true
		}
	}

	streak.RiskLevel = ClassifyRisk(streak.LastActivityDate, now)
	if err := st.SaveStreak(streak); err != nil {
		return nil, err
	}

	result.Streak = streak
	result.NewRiskLevel = streak.RiskLevel

	if result.WasBroken {
		if rem, err := s.reminders.scheduleBroken(st, streak, now); err == nil {
			result.Reminder = rem
		} else {
			return nil, err
		}
	} else if streak.RiskLevel != models.RiskSafe {
		if rem, err := s.reminders.scheduleRisk(st, streak, now); err == nil {
			result.Reminder = rem
		} else {
			return nil, err
		}
	}

	return result, nil
}

// ListStreaks returns a user's streaks with risk freshly recomputed.
func (s *StreakService) ListStreaks(userID uint) ([]models.Streak, error) {
	streaks, err := s.store.ListStreaks(userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range streaks {
		streaks[i].RiskLevel = ClassifyRisk(streaks[i].LastActivityDate, now)
	}
	return streaks, nil
}

// AnalyzeStreakRisks scores every active streak for reminder priority,
// most urgent first. Read-only; safe to run concurrently with writes.
func (s *StreakService) AnalyzeStreakRisks(userID uint) ([]StreakRiskAnalysis, error) {
	streaks, err := s.store.ListStreaks(userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	analyses := make([]StreakRiskAnalysis, 0, len(streaks))
	for _, streak := range streaks {
		if !streak.IsActive {
			continue
		}
		risk := ClassifyRisk(streak.LastActivityDate, now)
		streak.RiskLevel = risk
		analyses = append(analyses, StreakRiskAnalysis{
			Streak:            streak,
			RiskLevel:         risk,
			DaysSinceActivity: epochDay(now) - epochDay(streak.LastActivityDate),
			UrgencyScore:      UrgencyScore(risk, streak.CurrentCount),
		})
	}

	// Most urgent first
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].UrgencyScore > analyses[j].UrgencyScore
	})
	return analyses, nil
}
