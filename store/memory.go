// store/memory.go - In-memory Store used by tests and the offline simulator
package store

import (
	"sort"
	"sync"
	"time"

	"finhabit/models"
)

// Memory is a mutex-protected in-memory Store. Values are copied in and
// out so callers never share state with the store.
type Memory struct {
	mu sync.RWMutex

	profiles     map[uint]models.GamificationProfile
	history      map[uint][]models.PointsHistoryEntry
	streaks      map[string]models.Streak
	recoveries   map[string]models.StreakRecovery
	recActions   map[string][]models.RecoveryAction
	achievements map[string]models.Achievement
	reminders    map[string]models.StreakReminder

	nextProfileID uint
}

func NewMemory() *Memory {
	return &Memory{
		profiles:      make(map[uint]models.GamificationProfile),
		history:       make(map[uint][]models.PointsHistoryEntry),
		streaks:       make(map[string]models.Streak),
		recoveries:    make(map[string]models.StreakRecovery),
		recActions:    make(map[string][]models.RecoveryAction),
		achievements:  make(map[string]models.Achievement),
		reminders:     make(map[string]models.StreakReminder),
		nextProfileID: 1,
	}
}

func (m *Memory) GetProfile(userID uint) (*models.GamificationProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) SaveProfile(p *models.GamificationProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.nextProfileID
		m.nextProfileID++
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	m.profiles[p.UserID] = *p
	return nil
}

func (m *Memory) AppendHistory(e *models.PointsHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[e.UserID] = append(m.history[e.UserID], *e)
	return nil
}

func (m *Memory) RecentHistory(userID uint, limit int) ([]models.PointsHistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.history[userID]
	out := make([]models.PointsHistoryEntry, 0, limit)
	for i := len(all) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (m *Memory) GetStreak(userID uint, t models.StreakType) (*models.Streak, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.streaks {
		if s.UserID == userID && s.Type == t && s.IsActive {
			s := s
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetStreakByID(userID uint, id string) (*models.Streak, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.streaks[id]
	if !ok || s.UserID != userID {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *Memory) ListStreaks(userID uint) ([]models.Streak, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Streak
	for _, s := range m.streaks {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (m *Memory) SaveStreak(s *models.Streak) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now()
	m.streaks[s.ID] = *s
	return nil
}

func (m *Memory) GetRecovery(userID uint, id string) (*models.StreakRecovery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recoveries[id]
	if !ok || r.UserID != userID {
		return nil, ErrNotFound
	}
	r.Actions = append([]models.RecoveryAction(nil), m.recActions[id]...)
	return &r, nil
}

func (m *Memory) OpenRecoveryForStreak(userID uint, streakID string) (*models.StreakRecovery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, r := range m.recoveries {
		if r.UserID == userID && r.OriginalStreakID == streakID && r.RecoveryCompleted == nil {
			r.Actions = append([]models.RecoveryAction(nil), m.recActions[id]...)
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListOpenRecoveries(userID uint) ([]models.StreakRecovery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.StreakRecovery
	for id, r := range m.recoveries {
		if r.UserID == userID && r.RecoveryCompleted == nil {
			r.Actions = append([]models.RecoveryAction(nil), m.recActions[id]...)
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecoveryStarted.Before(out[j].RecoveryStarted) })
	return out, nil
}

func (m *Memory) SaveRecovery(r *models.StreakRecovery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *r
	saved.Actions = nil // actions live in their own map
	saved.UpdatedAt = time.Now()
	m.recoveries[r.ID] = saved
	return nil
}

func (m *Memory) AppendRecoveryAction(a *models.RecoveryAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recActions[a.RecoveryID] = append(m.recActions[a.RecoveryID], *a)
	return nil
}

func (m *Memory) GetAchievement(userID uint, t models.AchievementType) (*models.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.achievements {
		if a.UserID == userID && a.Type == t {
			a := a
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListAchievements(userID uint) ([]models.Achievement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Achievement
	for _, a := range m.achievements {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnlockedAt.Before(out[j].UnlockedAt) })
	return out, nil
}

func (m *Memory) SaveAchievement(a *models.Achievement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.achievements[a.ID] = *a
	return nil
}

func (m *Memory) GetReminder(userID uint, id string) (*models.StreakReminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reminders[id]
	if !ok || r.UserID != userID {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) ListReminders(userID uint, limit int) ([]models.StreakReminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.StreakReminder
	for _, r := range m.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) SaveReminder(r *models.StreakReminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[r.ID]; !ok {
		r.CreatedAt = time.Now()
	}
	m.reminders[r.ID] = *r
	return nil
}

func (m *Memory) DueReminders(now time.Time, limit int) ([]models.StreakReminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.StreakReminder
	for _, r := range m.reminders {
		if r.SentAt == nil && !r.ScheduledFor.After(now) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Transact runs fn directly. The memory store has no rollback; engine
// callers pre-validate before writing, which is enough for tests and the
// simulator.
func (m *Memory) Transact(fn func(Store) error) error {
	return fn(m)
}
