// services/points.go - The points ledger: score actions, derive levels,
// fan out to streaks and achievement triggers.
package services

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"finhabit/models"
	"finhabit/store"
	"finhabit/utils"
)

// PointsResult is everything a single award produced.
type PointsResult struct {
	PointsAwarded    int                       `json:"points_awarded"`
	TotalPoints      int                       `json:"total_points"`
	Level            int                       `json:"level"`
	PreviousLevel    int                       `json:"previous_level"`
	LeveledUp        bool                      `json:"leveled_up"`
	UnlockedFeatures []string                  `json:"unlocked_features,omitempty"`
	NewAchievements  []models.Achievement      `json:"new_achievements"`
	Celebrations     []models.CelebrationEvent `json:"celebrations"`
	Streak           *StreakUpdateResult       `json:"streak,omitempty"`
}

type PointsService struct {
	store        store.Store
	streaks      *StreakService
	achievements *AchievementService
	locks        *utils.KeyedMutex
	now          func() time.Time
}

func NewPointsService(st store.Store, streaks *StreakService, achievements *AchievementService, locks *utils.KeyedMutex) *PointsService {
	return &PointsService{
		store:        st,
		streaks:      streaks,
		achievements: achievements,
		locks:        locks,
		now:          time.Now,
	}
}

// creditPoints applies a point delta to the profile (creating it lazily)
// and appends the matching history entry. The total saturates instead of
// wrapping, and the level is re-derived on every write so it can never go
// stale. Caller holds the user lock.
func creditPoints(st store.Store, userID uint, points int, action models.UserAction, description string, now time.Time) (*models.GamificationProfile, *models.PointsHistoryEntry, error) {
	profile, err := st.GetProfile(userID)
	if errors.Is(err, store.ErrNotFound) {
		profile = &models.GamificationProfile{UserID: userID, Level: 1, TotalPoints: 0}
	} else if err != nil {
		return nil, nil, err
	}

	newTotal := profile.TotalPoints + points
	if points > 0 && newTotal < profile.TotalPoints {
		newTotal = math.MaxInt
	}
	if newTotal < 0 {
		newTotal = 0
	}

	profile.TotalPoints = newTotal
	profile.Level = GetLevelFromPoints(newTotal)
	profile.LastActivity = now
	if err := st.SaveProfile(profile); err != nil {
		return nil, nil, err
	}

	entry := &models.PointsHistoryEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		Points:      points,
		Action:      action,
		Description: description,
		EarnedAt:    now,
	}
	if err := st.AppendHistory(entry); err != nil {
		return nil, nil, err
	}
	return profile, entry, nil
}

// Award scores an action for a user: credits points, advances the bound
// streak, checks achievement triggers, and emits celebrations. Everything
// commits together or not at all.
func (s *PointsService) Award(userID uint, action models.UserAction, explicitPoints *int, description string) (*PointsResult, error) {
	if _, known := actionPoints[action]; !known {
		return nil, ErrUnknownAction
	}
	points := actionPoints[action]
	if explicitPoints != nil {
		points = *explicitPoints
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	now := s.now()
	result := &PointsResult{
		PointsAwarded:   points,
		NewAchievements: []models.Achievement{},
		Celebrations:    []models.CelebrationEvent{},
	}

	err := s.store.Transact(func(tx store.Store) error {
		oldLevel := 1
		if existing, err := tx.GetProfile(userID); err == nil {
			oldLevel = existing.Level
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		profile, _, err := creditPoints(tx, userID, points, action, description, now)
		if err != nil {
			return err
		}

		result.TotalPoints = profile.TotalPoints
		result.Level = profile.Level
		result.PreviousLevel = oldLevel
		result.LeveledUp = profile.Level > oldLevel
		result.Celebrations = append(result.Celebrations, PointsCelebration(points, now))

		if result.LeveledUp {
			result.UnlockedFeatures = FeaturesForLevel(profile.Level)
			result.Celebrations = append(result.Celebrations,
				LevelUpCelebration(profile.Level, result.UnlockedFeatures, now))
		}

		if streakType, bound := actionStreakTypes[action]; bound {
			streakResult, err := s.streaks.updateLocked(tx, userID, streakType, now)
			if err != nil {
				return err
			}
			result.Streak = streakResult
			if streakResult.Celebration != nil {
				result.Celebrations = append(result.Celebrations, *streakResult.Celebration)
			}
		}

		return s.checkTriggers(tx, userID, action, profile, result, now)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkTriggers re-evaluates every achievement trigger this award could
// have tripped. Re-checking on each call is idempotent: already-unlocked
// achievements come back unchanged and credit nothing.
func (s *PointsService) checkTriggers(tx store.Store, userID uint, action models.UserAction, profile *models.GamificationProfile, result *PointsResult, now time.Time) error {
	var triggered []models.AchievementType

	if t, ok := actionAchievements[action]; ok {
		triggered = append(triggered, t)
	}
	if profile.Level >= 5 {
		triggered = append(triggered, models.AchievementLevel5)
	}
	if profile.Level >= 10 {
		triggered = append(triggered, models.AchievementLevel10)
	}
	if profile.TotalPoints >= 1000 {
		triggered = append(triggered, models.AchievementPoints1000)
	}
	if result.Streak != nil && result.Streak.Streak != nil {
		count := result.Streak.Streak.CurrentCount
		if count >= 7 {
			triggered = append(triggered, models.AchievementWeekStreak)
		}
		if count >= 30 {
			triggered = append(triggered, models.AchievementMonthStreak)
		}
	}

	for _, t := range triggered {
		achievement, newly, err := s.achievements.unlockLocked(tx, userID, t, now)
		if err != nil {
			return err
		}
		if !newly {
			continue
		}
		if achievement.PointsAwarded > 0 {
			updated, _, err := creditPoints(tx, userID, achievement.PointsAwarded,
				models.ActionAchievementBonus, achievement.Title, now)
			if err != nil {
				return err
			}
			if updated.Level > result.Level {
				result.UnlockedFeatures = FeaturesForLevel(updated.Level)
				result.Celebrations = append(result.Celebrations,
					LevelUpCelebration(updated.Level, result.UnlockedFeatures, now))
			}
			result.TotalPoints = updated.TotalPoints
			result.Level = updated.Level
			result.LeveledUp = result.Level > result.PreviousLevel
		}
		result.NewAchievements = append(result.NewAchievements, *achievement)
		result.Celebrations = append(result.Celebrations, AchievementCelebration(achievement, now))
	}
	return nil
}

// GetProfile returns the profile with next-level progress, creating
// nothing. A user with no profile yet reads as level 1 with zero points.
func (s *PointsService) GetProfile(userID uint) (*ProfileView, error) {
	profile, err := s.store.GetProfile(userID)
	if errors.Is(err, store.ErrNotFound) {
		profile = &models.GamificationProfile{UserID: userID, Level: 1, TotalPoints: 0}
	} else if err != nil {
		return nil, err
	}

	next := PointsRequiredForNextLevel(profile.Level)
	floor := PointsForLevel(profile.Level)
	progress := 0.0
	if next > floor {
		progress = float64(profile.TotalPoints-floor) / float64(next-floor) * 100
	}

	return &ProfileView{
		Level:            profile.Level,
		TotalPoints:      profile.TotalPoints,
		PointsToNext:     next - profile.TotalPoints,
		ProgressPercent:  progress,
		LastActivity:     profile.LastActivity,
		UnlockedFeatures: featuresUpTo(profile.Level),
	}, nil
}

// ProfileView is the progression summary served to the client.
type ProfileView struct {
	Level            int       `json:"level"`
	TotalPoints      int       `json:"total_points"`
	PointsToNext     int       `json:"points_to_next_level"`
	ProgressPercent  float64   `json:"progress_percent"`
	LastActivity     time.Time `json:"last_activity"`
	UnlockedFeatures []string  `json:"unlocked_features"`
}

func featuresUpTo(level int) []string {
	features := []string{}
	for l := 1; l <= level; l++ {
		features = append(features, levelFeatures[l]...)
	}
	return features
}

// History returns the most recent ledger entries, newest first.
func (s *PointsService) History(userID uint, limit int) ([]models.PointsHistoryEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.RecentHistory(userID, limit)
}
