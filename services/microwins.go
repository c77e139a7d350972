// services/microwins.go - Ranked, deduplicated small-action suggestions
package services

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"finhabit/models"
	"finhabit/store"
)

// historyWindow is how many recent ledger entries feed the habit-building
// heuristic.
const historyWindow = 20

// habitUseThreshold: actions used fewer times than this recently are
// suggested as habits to build.
const habitUseThreshold = 3

// suggestionCopy is the user-facing copy for suggestible actions.
var suggestionCopy = map[models.UserAction]struct {
	Title   string
	Desc    string
	Minutes int
}{
	models.ActionCheckBalance:          {"Check your balance", "A ten-second look keeps you in touch with your money", 1},
	models.ActionCategorizeTransaction: {"Categorize a transaction", "Sort one recent transaction into the right bucket", 2},
	models.ActionLinkAccount:           {"Link another account", "Connect an account to see your full picture", 5},
	models.ActionSetBudget:             {"Set a budget", "Give one spending category a monthly limit", 5},
	models.ActionContributeSavings:     {"Add to savings", "Even a small transfer keeps the habit alive", 3},
	models.ActionReviewInsights:        {"Review your insights", "See what changed in your spending this week", 3},
	models.ActionCompleteLesson:        {"Finish a money lesson", "Two minutes of learning, a few points richer", 2},
	models.ActionPayBill:               {"Pay an upcoming bill", "Knock out a bill before it sneaks up on you", 3},
}

// streakPrimaryAction is the action that keeps each streak type alive.
var streakPrimaryAction = map[models.StreakType]models.UserAction{
	models.StreakDailyCheckIn:   models.ActionCheckBalance,
	models.StreakCategorization: models.ActionCategorizeTransaction,
	models.StreakSavings:        models.ActionContributeSavings,
	models.StreakBudgetReview:   models.ActionSetBudget,
}

type MicroWinService struct {
	store store.Store
	now   func() time.Time
	rng   *rand.Rand
}

func NewMicroWinService(st store.Store, rng *rand.Rand) *MicroWinService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MicroWinService{store: st, now: time.Now, rng: rng}
}

type scoredWin struct {
	win      models.MicroWinOpportunity
	priority int
}

func difficultyBonus(d models.Difficulty) int {
	switch d {
	case models.DifficultyEasy:
		return 5
	case models.DifficultyMedium:
		return 3
	default:
		return 1
	}
}

// Generate builds a fresh, ranked suggestion list from the user's current
// streak, recovery, and history state. Nothing is persisted.
func (s *MicroWinService) Generate(userID uint, limit int) ([]models.MicroWinOpportunity, error) {
	if limit <= 0 {
		limit = 5
	}
	now := s.now()

	var candidates []scoredWin

	// 1. Maintenance: one win per at-risk active streak.
	streaks, err := s.store.ListStreaks(userID)
	if err != nil {
		return nil, err
	}
	for _, streak := range streaks {
		if !streak.IsActive {
			continue
		}
		risk := ClassifyRisk(streak.LastActivityDate, now)
		if risk == models.RiskSafe {
			continue
		}
		action := streakPrimaryAction[streak.Type]
		text := suggestionCopy[action]
		win := models.MicroWinOpportunity{
			ID:                   uuid.NewString(),
			Title:                fmt.Sprintf("Keep your %d-day %s streak alive", streak.CurrentCount, StreakDisplayName(streak.Type)),
			Description:          text.Desc,
			PointsAwarded:        actionPoints[action],
			ActionType:           action,
			Difficulty:           models.DifficultyEasy,
			EstimatedTimeMinutes: text.Minutes,
			IsPersonalized:       true,
			ContextData:          map[string]string{"streak_id": streak.ID, "risk_level": string(risk)},
		}
		candidates = append(candidates, scoredWin{win, 10 + 15 + difficultyBonus(win.Difficulty)})
	}

	// 2. Habit-building: actions rarely used in recent history.
	history, err := s.store.RecentHistory(userID, historyWindow)
	if err != nil {
		return nil, err
	}
	usage := make(map[models.UserAction]int)
	for _, entry := range history {
		usage[entry.Action]++
	}

	var rare []models.UserAction
	for action := range suggestionCopy {
		if usage[action] < habitUseThreshold {
			rare = append(rare, action)
		}
	}
	sort.Slice(rare, func(i, j int) bool { return rare[i] < rare[j] })
	s.rng.Shuffle(len(rare), func(i, j int) { rare[i], rare[j] = rare[j], rare[i] })
	if len(rare) > 2 {
		rare = rare[:2]
	}
	for _, action := range rare {
		text := suggestionCopy[action]
		win := models.MicroWinOpportunity{
			ID:                   uuid.NewString(),
			Title:                text.Title,
			Description:          text.Desc,
			PointsAwarded:        actionPoints[action],
			ActionType:           action,
			Difficulty:           models.DifficultyMedium,
			EstimatedTimeMinutes: text.Minutes,
			IsPersonalized:       true,
		}
		candidates = append(candidates, scoredWin{win, 10 + difficultyBonus(win.Difficulty)})
	}

	// 3. Exploration: static fallback so the list is never empty.
	exploreCopy := suggestionCopy[models.ActionReviewInsights]
	explore := models.MicroWinOpportunity{
		ID:                   uuid.NewString(),
		Title:                exploreCopy.Title,
		Description:          exploreCopy.Desc,
		PointsAwarded:        actionPoints[models.ActionReviewInsights],
		ActionType:           models.ActionReviewInsights,
		Difficulty:           models.DifficultyEasy,
		EstimatedTimeMinutes: exploreCopy.Minutes,
	}
	candidates = append(candidates, scoredWin{explore, difficultyBonus(explore.Difficulty)})

	// 4. Recovery: one hard win per open recovery.
	recoveries, err := s.store.ListOpenRecoveries(userID)
	if err != nil {
		return nil, err
	}
	for _, recovery := range recoveries {
		remaining := recoveryActionsRequired - len(recovery.Actions)
		win := models.MicroWinOpportunity{
			ID:                   uuid.NewString(),
			Title:                fmt.Sprintf("Rebuild your %s streak", StreakDisplayName(recovery.StreakType)),
			Description:          fmt.Sprintf("%d more actions to bring your streak back", remaining),
			PointsAwarded:        actionPoints[models.ActionRecoveryStep],
			ActionType:           models.ActionRecoveryStep,
			Difficulty:           models.DifficultyHard,
			EstimatedTimeMinutes: 5,
			IsPersonalized:       true,
			ContextData:          map[string]string{"recovery_id": recovery.ID},
		}
		candidates = append(candidates, scoredWin{win, 10 + 20 + difficultyBonus(win.Difficulty)})
	}

	// 5. Dedupe by action type (highest priority wins), rank, cut.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})
	seen := make(map[models.UserAction]bool)
	wins := make([]models.MicroWinOpportunity, 0, limit)
	for _, c := range candidates {
		if seen[c.win.ActionType] {
			continue
		}
		seen[c.win.ActionType] = true
		wins = append(wins, c.win)
		if len(wins) == limit {
			break
		}
	}
	return wins, nil
}
