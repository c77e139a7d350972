// services/achievements.go - Idempotent unlock-or-fetch of badges
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"finhabit/models"
	"finhabit/store"
	"finhabit/utils"
)

type AchievementService struct {
	store store.Store
	locks *utils.KeyedMutex
	now   func() time.Time
}

func NewAchievementService(st store.Store, locks *utils.KeyedMutex) *AchievementService {
	return &AchievementService{store: st, locks: locks, now: time.Now}
}

// Unlock unlocks an achievement for a user. Calling it again for the same
// (user, type) returns the original record unchanged and credits nothing.
func (s *AchievementService) Unlock(userID uint, t models.AchievementType) (*models.Achievement, *models.CelebrationEvent, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	var (
		achievement *models.Achievement
		newly       bool
	)
	err := s.store.Transact(func(tx store.Store) error {
		var err error
		achievement, newly, err = s.unlockLocked(tx, userID, t, s.now())
		if err != nil {
			return err
		}
		if newly && achievement.PointsAwarded > 0 {
			_, _, err = creditPoints(tx, userID, achievement.PointsAwarded,
				models.ActionAchievementBonus, achievement.Title, s.now())
		}
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if !newly {
		return achievement, nil, nil
	}
	c := AchievementCelebration(achievement, s.now())
	return achievement, &c, nil
}

// unlockLocked is the idempotent core: fetch-or-create without crediting
// points. Caller holds the user lock and supplies the transaction store.
func (s *AchievementService) unlockLocked(st store.Store, userID uint, t models.AchievementType, now time.Time) (*models.Achievement, bool, error) {
	existing, err := st.GetAchievement(userID, t)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	def, ok := achievementDefs[t]
	if !ok {
		return nil, false, store.ErrNotFound
	}

	achievement := &models.Achievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          t,
		Title:         def.Title,
		Description:   def.Description,
		BadgeIcon:     def.BadgeIcon,
		Category:      def.Category,
		PointsAwarded: def.Points,
		UnlockedAt:    now,
	}
	if err := st.SaveAchievement(achievement); err != nil {
		return nil, false, err
	}
	return achievement, true, nil
}

// AchievementView is one catalog row: the static definition plus whether
// this user has unlocked it.
type AchievementView struct {
	Type        models.AchievementType `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	BadgeIcon   string                 `json:"badge_icon"`
	Category    string                 `json:"category"`
	Points      int                    `json:"points"`
	Unlocked    bool                   `json:"unlocked"`
	UnlockedAt  *time.Time             `json:"unlocked_at,omitempty"`
}

// List returns the full catalog with per-user unlock state.
func (s *AchievementService) List(userID uint) ([]AchievementView, error) {
	unlocked, err := s.store.ListAchievements(userID)
	if err != nil {
		return nil, err
	}

	unlockedByType := make(map[models.AchievementType]models.Achievement, len(unlocked))
	for _, a := range unlocked {
		unlockedByType[a.Type] = a
	}

	views := make([]AchievementView, 0, len(achievementDefs))
	for _, t := range models.AllAchievementTypes() {
		def := achievementDefs[t]
		view := AchievementView{
			Type:        t,
			Title:       def.Title,
			Description: def.Description,
			BadgeIcon:   def.BadgeIcon,
			Category:    def.Category,
			Points:      def.Points,
		}
		if a, ok := unlockedByType[t]; ok {
			view.Unlocked = true
			at := a.UnlockedAt
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	return views, nil
}
