// services/tables.go - Static enum-keyed tables for the gamification engine
//
// These are initialized once and never mutated. cmd/tables-lint and the
// table tests check that every enum variant has an entry.
package services

import (
	"fmt"

	"finhabit/models"
)

// actionPoints is the fixed per-action point table. Actions missing here
// are rejected with ErrUnknownAction; explicit points only override the
// value for actions the table already knows.
var actionPoints = map[models.UserAction]int{
	models.ActionCheckBalance:          5,
	models.ActionCategorizeTransaction: 10,
	models.ActionLinkAccount:           15,
	models.ActionSetBudget:             20,
	models.ActionContributeSavings:     25,
	models.ActionReviewInsights:        10,
	models.ActionCompleteLesson:        15,
	models.ActionPayBill:               10,
	models.ActionRecoveryStep:          15,
	models.ActionMicroWin:              8,
	models.ActionAchievementBonus:      0, // always carries explicit points
}

// actionStreakTypes binds actions to the streak they keep alive. Actions
// absent here touch no streak.
var actionStreakTypes = map[models.UserAction]models.StreakType{
	models.ActionCheckBalance:          models.StreakDailyCheckIn,
	models.ActionCategorizeTransaction: models.StreakCategorization,
	models.ActionContributeSavings:     models.StreakSavings,
	models.ActionSetBudget:             models.StreakBudgetReview,
	models.ActionReviewInsights:        models.StreakBudgetReview,
}

// actionAchievements maps first-time actions to the badge they unlock.
var actionAchievements = map[models.UserAction]models.AchievementType{
	models.ActionLinkAccount:           models.AchievementFirstAccountLinked,
	models.ActionCategorizeTransaction: models.AchievementFirstCategorization,
	models.ActionSetBudget:             models.AchievementBudgetBuilder,
	models.ActionContributeSavings:     models.AchievementSavingsStarter,
}

// levelFeatures lists features unlocked on reaching a level. Most levels
// unlock nothing.
var levelFeatures = map[int][]string{
	2:  {"custom_categories"},
	3:  {"savings_goals"},
	5:  {"spending_insights"},
	7:  {"advanced_budgets"},
	10: {"premium_themes", "priority_support"},
}

// streakDisplayNames feeds reminder and celebration copy.
var streakDisplayNames = map[models.StreakType]string{
	models.StreakDailyCheckIn:   "Daily Check-In",
	models.StreakCategorization: "Categorization",
	models.StreakSavings:        "Savings",
	models.StreakBudgetReview:   "Budget Review",
}

// streakMilestones are the counts that trigger a milestone celebration,
// ascending.
var streakMilestones = []int{3, 7, 14, 21, 30, 60, 90, 180, 365}

type achievementDef struct {
	Title       string
	Description string
	BadgeIcon   string
	Category    string
	Points      int
}

var achievementDefs = map[models.AchievementType]achievementDef{
	models.AchievementFirstAccountLinked: {
		Title:       "Connected",
		Description: "Link your first bank account",
		BadgeIcon:   "🔗",
		Category:    "Onboarding",
		Points:      25,
	},
	models.AchievementFirstCategorization: {
		Title:       "Sorter",
		Description: "Categorize your first transaction",
		BadgeIcon:   "🏷️",
		Category:    "Onboarding",
		Points:      15,
	},
	models.AchievementBudgetBuilder: {
		Title:       "Budget Builder",
		Description: "Set up your first budget",
		BadgeIcon:   "📊",
		Category:    "Money",
		Points:      30,
	},
	models.AchievementSavingsStarter: {
		Title:       "Savings Starter",
		Description: "Make your first savings contribution",
		BadgeIcon:   "🐷",
		Category:    "Money",
		Points:      30,
	},
	models.AchievementWeekStreak: {
		Title:       "One Week Strong",
		Description: "Keep any streak alive for 7 days",
		BadgeIcon:   "🔥",
		Category:    "Streak",
		Points:      50,
	},
	models.AchievementMonthStreak: {
		Title:       "Habit Formed",
		Description: "Keep any streak alive for 30 days",
		BadgeIcon:   "🏆",
		Category:    "Streak",
		Points:      150,
	},
	models.AchievementComebackKid: {
		Title:       "Comeback Kid",
		Description: "Complete a streak recovery",
		BadgeIcon:   "💪",
		Category:    "Streak",
		Points:      40,
	},
	models.AchievementLevel5: {
		Title:       "Level 5",
		Description: "Reach level 5",
		BadgeIcon:   "⭐",
		Category:    "Progression",
		Points:      50,
	},
	models.AchievementLevel10: {
		Title:       "Level 10",
		Description: "Reach level 10",
		BadgeIcon:   "🌟",
		Category:    "Progression",
		Points:      100,
	},
	models.AchievementPoints1000: {
		Title:       "Point Collector",
		Description: "Earn 1,000 lifetime points",
		BadgeIcon:   "💎",
		Category:    "Progression",
		Points:      75,
	},
}

// ValidateTables checks that every enum variant is covered by its table.
// Run by cmd/tables-lint and by tests.
func ValidateTables() error {
	for _, a := range models.AllUserActions() {
		if _, ok := actionPoints[a]; !ok {
			return fmt.Errorf("action %q has no point value", a)
		}
	}
	for _, t := range models.AllStreakTypes() {
		if _, ok := streakDisplayNames[t]; !ok {
			return fmt.Errorf("streak type %q has no display name", t)
		}
	}
	for _, t := range models.AllAchievementTypes() {
		def, ok := achievementDefs[t]
		if !ok {
			return fmt.Errorf("achievement type %q has no definition", t)
		}
		if def.Title == "" || def.Description == "" || def.Category == "" {
			return fmt.Errorf("achievement type %q has an incomplete definition", t)
		}
	}
	for st, t := range actionStreakTypes {
		if _, ok := streakDisplayNames[t]; !ok {
			return fmt.Errorf("action %q maps to unknown streak type %q", st, t)
		}
	}
	for a, t := range actionAchievements {
		if _, ok := achievementDefs[t]; !ok {
			return fmt.Errorf("action %q maps to unknown achievement %q", a, t)
		}
	}
	for _, intensity := range []models.CelebrationIntensity{models.IntensityLow, models.IntensityMedium, models.IntensityHigh} {
		if len(animationsByIntensity[intensity]) == 0 {
			return fmt.Errorf("no animations for intensity %q", intensity)
		}
		if len(soundsByIntensity[intensity]) == 0 {
			return fmt.Errorf("no sounds for intensity %q", intensity)
		}
		if len(hapticsByIntensity[intensity]) == 0 {
			return fmt.Errorf("no haptics for intensity %q", intensity)
		}
	}
	return nil
}

// StreakDisplayName returns the user-facing name for a streak type.
func StreakDisplayName(t models.StreakType) string {
	if name, ok := streakDisplayNames[t]; ok {
		return name
	}
	return string(t)
}
