// models/celebration.go
package models

import "time"

// CelebrationType identifies the gamification moment being celebrated.
type CelebrationType string

const (
	CelebrationPoints      CelebrationType = "points_awarded"
	CelebrationLevelUp     CelebrationType = "level_up"
	CelebrationMilestone   CelebrationType = "streak_milestone"
	CelebrationAchievement CelebrationType = "achievement_unlocked"
	CelebrationMicroWin    CelebrationType = "micro_win"
	CelebrationRecovery    CelebrationType = "streak_recovered"
)

// AllCelebrationTypes returns every celebration kind the engine can emit.
func AllCelebrationTypes() []CelebrationType {
	return []CelebrationType{
		CelebrationPoints,
		CelebrationLevelUp,
		CelebrationMilestone,
		CelebrationAchievement,
		CelebrationMicroWin,
		CelebrationRecovery,
	}
}

// CelebrationIntensity scales how loud the client should make the moment.
type CelebrationIntensity string

const (
	IntensityLow    CelebrationIntensity = "low"
	IntensityMedium CelebrationIntensity = "medium"
	IntensityHigh   CelebrationIntensity = "high"
)

// CelebrationEvent is a declarative descriptor consumed by the client's
// renderer. The engine never persists it.
type CelebrationEvent struct {
	Type           CelebrationType      `json:"type"`
	Title          string               `json:"title"`
	Message        string               `json:"message"`
	Intensity      CelebrationIntensity `json:"intensity"`
	DurationMs     int                  `json:"duration_ms"`
	Animations     []string             `json:"animations"`
	Sounds         []string             `json:"sounds"`
	HapticFeedback []string             `json:"haptic_feedback"`
	Timestamp      time.Time            `json:"timestamp"`
	AdditionalData map[string]string    `json:"additional_data,omitempty"`
}
