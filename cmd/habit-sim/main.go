// Simulates a user's habit activity against an in-memory store and prints
// the day-by-day progression: points, level, streaks, breaks, recoveries,
// achievements. Useful for eyeballing the engine's pacing without a
// database or HTTP layer.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"finhabit/models"
	"finhabit/services"
	"finhabit/store"
	"finhabit/utils"
)

func main() {
	days := flag.Int("days", 30, "number of simulated days")
	skipEvery := flag.Int("skip-every", 9, "skip activity every Nth day (0 = never skip)")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	if *days <= 0 {
		fmt.Println("error: -days must be positive")
		os.Exit(1)
	}

	st := store.NewMemory()
	locks := utils.NewKeyedMutex()
	rng := rand.New(rand.NewSource(*seed))

	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	reminders := services.NewReminderService(st)
	reminders.SetClock(now)
	streaks := services.NewStreakService(st, reminders, locks)
	streaks.SetClock(now)
	achievements := services.NewAchievementService(st, locks)
	achievements.SetClock(now)
	points := services.NewPointsService(st, streaks, achievements, locks)
	points.SetClock(now)
	recoveries := services.NewRecoveryService(st, achievements, reminders, locks)
	recoveries.SetClock(now)
	microWins := services.NewMicroWinService(st, rng)
	microWins.SetClock(now)

	const userID uint = 1

	routine := []models.UserAction{
		models.ActionCheckBalance,
		models.ActionCategorizeTransaction,
	}
	extras := []models.UserAction{
		models.ActionContributeSavings,
		models.ActionSetBudget,
		models.ActionReviewInsights,
		models.ActionPayBill,
		models.ActionCompleteLesson,
	}

	for day := 1; day <= *days; day++ {
		if *skipEvery > 0 && day%*skipEvery == 0 {
			fmt.Printf("day %2d: (skipped)\n", day)
			clock = clock.AddDate(0, 0, 1)
			continue
		}

		actions := append([]models.UserAction{}, routine...)
		if rng.Intn(2) == 0 {
			actions = append(actions, extras[rng.Intn(len(extras))])
		}

		for _, action := range actions {
			result, err := points.Award(userID, action, nil, "simulated")
			if err != nil {
				fmt.Printf("day %2d: award %s failed: %v\n", day, action, err)
				os.Exit(1)
			}
			for _, ach := range result.NewAchievements {
				fmt.Printf("day %2d:   🏆 unlocked %q (+%d pts)\n", day, ach.Title, ach.PointsAwarded)
			}
			if result.Streak != nil && result.Streak.WasBroken {
				fmt.Printf("day %2d:   💔 %s streak broke, attempting recovery\n", day, result.Streak.Streak.Type)
				runRecovery(recoveries, st, userID, result.Streak.Streak.ID)
			}
		}

		profile, err := points.GetProfile(userID)
		if err != nil {
			fmt.Println("error: read profile:", err)
			os.Exit(1)
		}
		fmt.Printf("day %2d: level %d, %d pts (%.0f%% to next)\n",
			day, profile.Level, profile.TotalPoints, profile.ProgressPercent)

		clock = clock.AddDate(0, 0, 1)
	}

	fmt.Println()
	printSummary(st, streaks, achievements, microWins, userID)
}

// runRecovery walks a broken streak through the full recovery workflow.
func runRecovery(recoveries *services.RecoveryService, st store.Store, userID uint, streakID string) {
	recovery, err := recoveries.Initiate(userID, streakID)
	if err != nil {
		fmt.Println("         recovery not started:", err)
		return
	}
	for i := 0; i < 3; i++ {
		result, err := recoveries.ProcessAction(userID, recovery.ID, models.ActionRecoveryStep, "simulated recovery step")
		if err != nil {
			fmt.Println("         recovery step failed:", err)
			return
		}
		if result.Completed {
			fmt.Println("         ✅ recovery complete, streak rebuilt")
		}
	}
}

func printSummary(st store.Store, streaks *services.StreakService, achievements *services.AchievementService, microWins *services.MicroWinService, userID uint) {
	fmt.Println("=== final state ===")

	all, err := streaks.ListStreaks(userID)
	if err == nil {
		for _, s := range all {
			if !s.IsActive {
				continue
			}
			fmt.Printf("streak %-15s current %2d best %2d risk %s\n",
				s.Type, s.CurrentCount, s.BestCount, s.RiskLevel)
		}
	}

	unlocked, err := st.ListAchievements(userID)
	if err == nil {
		fmt.Printf("achievements unlocked: %d\n", len(unlocked))
		for _, a := range unlocked {
			fmt.Printf("  %s %s\n", a.BadgeIcon, a.Title)
		}
	}

	wins, err := microWins.Generate(userID, 3)
	if err == nil && len(wins) > 0 {
		fmt.Println("suggested next steps:")
		for _, w := range wins {
			fmt.Printf("  [%s] %s (+%d pts, ~%d min)\n", w.Difficulty, w.Title, w.PointsAwarded, w.EstimatedTimeMinutes)
		}
	}
}
