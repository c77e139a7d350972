// services/celebration.go - Pure mapping from engine events to celebration
// descriptors. No I/O, no state; same inputs always give the same output
// modulo the stamped timestamp.
package services

import (
	"fmt"
	"time"

	"finhabit/models"
)

var animationsByIntensity = map[models.CelebrationIntensity][]string{
	models.IntensityLow:    {"sparkle"},
	models.IntensityMedium: {"confetti", "badge_pop"},
	models.IntensityHigh:   {"confetti_burst", "fireworks", "badge_shine"},
}

var soundsByIntensity = map[models.CelebrationIntensity][]string{
	models.IntensityLow:    {"chime_soft"},
	models.IntensityMedium: {"chime_bright"},
	models.IntensityHigh:   {"fanfare"},
}

var hapticsByIntensity = map[models.CelebrationIntensity][]string{
	models.IntensityLow:    {"tap_light"},
	models.IntensityMedium: {"tap_double"},
	models.IntensityHigh:   {"buzz_success"},
}

var durationByIntensity = map[models.CelebrationIntensity]int{
	models.IntensityLow:    1000,
	models.IntensityMedium: 2000,
	models.IntensityHigh:   3000,
}

func newCelebration(kind models.CelebrationType, intensity models.CelebrationIntensity, title, message string, at time.Time) models.CelebrationEvent {
	return models.CelebrationEvent{
		Type:           kind,
		Title:          title,
		Message:        message,
		Intensity:      intensity,
		DurationMs:     durationByIntensity[intensity],
		Animations:     append([]string(nil), animationsByIntensity[intensity]...),
		Sounds:         append([]string(nil), soundsByIntensity[intensity]...),
		HapticFeedback: append([]string(nil), hapticsByIntensity[intensity]...),
		Timestamp:      at,
		AdditionalData: map[string]string{},
	}
}

// PointsCelebration marks an ordinary points award.
func PointsCelebration(points int, at time.Time) models.CelebrationEvent {
	intensity := models.IntensityLow
	if points >= 50 {
		intensity = models.IntensityMedium
	}
	c := newCelebration(models.CelebrationPoints, intensity,
		"Points earned!",
		fmt.Sprintf("+%d points", points), at)
	c.AdditionalData["points"] = fmt.Sprintf("%d", points)
	return c
}

// LevelUpCelebration marks reaching a new level.
func LevelUpCelebration(newLevel int, features []string, at time.Time) models.CelebrationEvent {
	intensity := models.IntensityMedium
	if newLevel >= 5 {
		intensity = models.IntensityHigh
	}
	message := fmt.Sprintf("You reached level %d!", newLevel)
	if len(features) > 0 {
		message = fmt.Sprintf("You reached level %d and unlocked new features!", newLevel)
	}
	c := newCelebration(models.CelebrationLevelUp, intensity, "Level up!", message, at)
	c.AdditionalData["level"] = fmt.Sprintf("%d", newLevel)
	return c
}

// MilestoneCelebration marks a streak landing exactly on a milestone
// count. Intensity scales with the milestone; a new personal record gets
// the record animation on top.
func MilestoneCelebration(t models.StreakType, count int, isNewRecord bool, at time.Time) models.CelebrationEvent {
	intensity := models.IntensityLow
	switch {
	case count >= 30:
		intensity = models.IntensityHigh
	case count >= 7:
		intensity = models.IntensityMedium
	}
	title := fmt.Sprintf("%d-day streak!", count)
	message := fmt.Sprintf("Your %s streak hit %d days", StreakDisplayName(t), count)
	c := newCelebration(models.CelebrationMilestone, intensity, title, message, at)
	if isNewRecord {
		c.Animations = append(c.Animations, "record_breaker")
		c.AdditionalData["new_record"] = "true"
	}
	c.AdditionalData["streak_type"] = string(t)
	c.AdditionalData["count"] = fmt.Sprintf("%d", count)
	return c
}

// AchievementCelebration marks an achievement unlock.
func AchievementCelebration(a *models.Achievement, at time.Time) models.CelebrationEvent {
	intensity := models.IntensityMedium
	if a.PointsAwarded >= 100 {
		intensity = models.IntensityHigh
	}
	c := newCelebration(models.CelebrationAchievement, intensity,
		"Achievement unlocked!",
		fmt.Sprintf("%s %s — %s", a.BadgeIcon, a.Title, a.Description), at)
	c.AdditionalData["achievement_type"] = string(a.Type)
	return c
}

// MicroWinCelebration marks a completed micro-win suggestion.
func MicroWinCelebration(title string, points int, at time.Time) models.CelebrationEvent {
	c := newCelebration(models.CelebrationMicroWin, models.IntensityLow,
		"Nice one!",
		fmt.Sprintf("%s (+%d points)", title, points), at)
	c.AdditionalData["points"] = fmt.Sprintf("%d", points)
	return c
}

// RecoveryCelebration marks a successful streak recovery. Never flagged as
// a record; the rebuilt streak starts at one.
func RecoveryCelebration(t models.StreakType, originalCount int, at time.Time) models.CelebrationEvent {
	c := newCelebration(models.CelebrationRecovery, models.IntensityMedium,
		"Streak recovered!",
		fmt.Sprintf("Your %s streak is back — your %d-day best still stands", StreakDisplayName(t), originalCount), at)
	c.AdditionalData["streak_type"] = string(t)
	return c
}
