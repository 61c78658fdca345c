package database

import (
	"agrotrack/internal/logger"
	"agrotrack/internal/models"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []any{
		&models.User{},
		&models.ReminderPreferences{},
		&models.Plant{},
		&models.CareLog{},
		&models.Reminder{},
		&models.AIRecommendation{},
		&models.ForumPost{},
		&models.ForumComment{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_reminders_user_status ON reminders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_reminders_plant_kind_status ON reminders(plant_id, kind, status)",
		"CREATE INDEX IF NOT EXISTS idx_care_logs_plant_kind ON care_logs(plant_id, kind, performed_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_forum_posts_created_at ON forum_posts(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_ai_recommendations_user_plant ON ai_recommendations(user_id, plant_id, created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.SQL.Exec(index).Error; err != nil {
			return log.Err("Failed to create index", err, "index", index)
		}
	}

	log.Info("Additional database indexes created successfully")
	return nil
}
