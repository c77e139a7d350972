// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"finhabit/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.GamificationProfile{},
		&models.PointsHistoryEntry{},
		&models.Streak{},
		&models.StreakRecovery{},
		&models.RecoveryAction{},
		&models.Achievement{},
		&models.StreakReminder{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what AutoMigrate declares
func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Points ledger indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_points_history_user_earned ON points_history_entries(user_id, earned_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_points ON gamification_profiles(total_points DESC)")

	// Streak indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_streaks_user ON streaks(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_streaks_last_activity ON streaks(last_activity_date)")

	// Recovery indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_recoveries_user_open ON streak_recoveries(user_id) WHERE recovery_completed IS NULL")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_recovery_actions_recovery ON recovery_actions(recovery_id)")

	// Reminder dispatch index
	db.Exec("CREATE INDEX IF NOT EXISTS idx_reminders_due ON streak_reminders(scheduled_for) WHERE sent_at IS NULL")
}
