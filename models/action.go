// models/action.go
package models

// UserAction identifies something a user did in the app that the
// gamification engine can score.
type UserAction string

const (
	ActionCheckBalance          UserAction = "check_balance"
	ActionCategorizeTransaction UserAction = "categorize_transaction"
	ActionLinkAccount           UserAction = "link_account"
	ActionSetBudget             UserAction = "set_budget"
	ActionContributeSavings     UserAction = "contribute_savings"
	ActionReviewInsights        UserAction = "review_insights"
	ActionCompleteLesson        UserAction = "complete_lesson"
	ActionPayBill               UserAction = "pay_bill"
	ActionRecoveryStep          UserAction = "recovery_action"
	ActionMicroWin              UserAction = "micro_win"
	ActionAchievementBonus      UserAction = "achievement_bonus"
)

// AllUserActions returns every known action. Kept in sync with the
// constants above; the tables-lint tool and tests depend on it.
func AllUserActions() []UserAction {
	return []UserAction{
		ActionCheckBalance,
		ActionCategorizeTransaction,
		ActionLinkAccount,
		ActionSetBudget,
		ActionContributeSavings,
		ActionReviewInsights,
		ActionCompleteLesson,
		ActionPayBill,
		ActionRecoveryStep,
		ActionMicroWin,
		ActionAchievementBonus,
	}
}
