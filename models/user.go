// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	// Relationships
	Profile      *GamificationProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Achievements []Achievement        `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
	Streaks      []Streak             `gorm:"foreignKey:UserID" json:"streaks,omitempty"`
}
