// models/gamification.go
package models

import "time"

// GamificationProfile holds a user's level and lifetime points. Created
// lazily on the first scored action, never deleted.
type GamificationProfile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Level        int       `gorm:"default:1" json:"level"`
	TotalPoints  int       `gorm:"default:0" json:"total_points"`
	LastActivity time.Time `json:"last_activity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PointsHistoryEntry is one row of the append-only points ledger.
type PointsHistoryEntry struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Points      int        `gorm:"not null" json:"points"`
	Action      UserAction `gorm:"not null;size:50" json:"action"`
	Description string     `json:"description,omitempty"`
	EarnedAt    time.Time  `gorm:"index" json:"earned_at"`
}
