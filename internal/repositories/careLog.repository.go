package repositories

import (
	"context"

	"agrotrack/internal/database"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CareLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, careLog *CareLog) error
	ListByPlant(ctx context.Context, plantID uuid.UUID, userID uuid.UUID) ([]CareLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]CareLog, error)
	CountAll(ctx context.Context) (int64, error)
}

type careLogRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCareLogRepository(db database.DB) CareLogRepository {
	return &careLogRepository{
		db:  db,
		log: logger.New("careLogRepository"),
	}
}

// Create appends a care log row. Accepts a transaction handle because care
// logging also stamps the plant and completes the matching reminder
// occurrence atomically; pass nil to use the base connection.
func (r *careLogRepository) Create(ctx context.Context, tx *gorm.DB, careLog *CareLog) error {
	log := r.log.Function("Create")

	db := tx
	if db == nil {
		db = r.db.SQLWithContext(ctx)
	}

	if err := db.Create(careLog).Error; err != nil {
		return log.Err("failed to create care log", err, "plantID", careLog.PlantID)
	}

	return nil
}

func (r *careLogRepository) ListByPlant(
	ctx context.Context,
	plantID uuid.UUID,
	userID uuid.UUID,
) ([]CareLog, error) {
	log := r.log.Function("ListByPlant")

	var careLogs []CareLog
	if err := r.db.SQLWithContext(ctx).
		Where("plant_id = ? AND user_id = ?", plantID, userID).
		Order("performed_at DESC").
		Find(&careLogs).Error; err != nil {
		return nil, log.Err("failed to list care logs", err, "plantID", plantID)
	}

	return careLogs, nil
}

func (r *careLogRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]CareLog, error) {
	log := r.log.Function("ListByUser")

	if limit <= 0 {
		limit = 50
	}

	var careLogs []CareLog
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("performed_at DESC").
		Limit(limit).
		Find(&careLogs).Error; err != nil {
		return nil, log.Err("failed to list care logs", err, "userID", userID)
	}

	return careLogs, nil
}

func (r *careLogRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.SQLWithContext(ctx).Model(&CareLog{}).Count(&count).Error
	return count, err
}
