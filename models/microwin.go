// models/microwin.go
package models

// Difficulty grades a suggested micro-win.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// MicroWinOpportunity is a small suggested action with a modest reward.
// Generated fresh per query, never persisted.
type MicroWinOpportunity struct {
	ID                   string            `json:"id"`
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	PointsAwarded        int               `json:"points_awarded"`
	ActionType           UserAction        `json:"action_type"`
	Difficulty           Difficulty        `json:"difficulty"`
	EstimatedTimeMinutes int               `json:"estimated_time_minutes"`
	IsPersonalized       bool              `json:"is_personalized"`
	ContextData          map[string]string `json:"context_data,omitempty"`
}
