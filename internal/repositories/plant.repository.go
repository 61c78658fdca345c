package repositories

import (
	"context"
	"time"

	"agrotrack/internal/database"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Plant, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Plant, error)
	Create(ctx context.Context, plant *Plant) error
	Update(ctx context.Context, plant *Plant) error
	RecordCare(ctx context.Context, tx *gorm.DB, plantID uuid.UUID, kind CareKind, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)
}

type plantRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPlantRepository(db database.DB) PlantRepository {
	return &plantRepository{
		db:  db,
		log: logger.New("plantRepository"),
	}
}

func (r *plantRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*Plant, error) {
	log := r.log.Function("GetByID")

	var plant Plant
	if err := r.db.SQLWithContext(ctx).
		First(&plant, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, log.Err("failed to get plant", err, "plantID", id, "userID", userID)
	}

	return &plant, nil
}

func (r *plantRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Plant, error) {
	log := r.log.Function("ListByUser")

	var plants []Plant
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&plants).Error; err != nil {
		return nil, log.Err("failed to list plants", err, "userID", userID)
	}

	return plants, nil
}

func (r *plantRepository) Create(ctx context.Context, plant *Plant) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(plant).Error; err != nil {
		return log.Err("failed to create plant", err, "userID", plant.UserID)
	}

	return nil
}

func (r *plantRepository) Update(ctx context.Context, plant *Plant) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(plant).Error; err != nil {
		return log.Err("failed to update plant", err, "plantID", plant.ID)
	}

	return nil
}

// RecordCare stamps the plant's last-cared timestamp for a tracked kind
// inside the caller's transaction. Untracked kinds are a no-op.
func (r *plantRepository) RecordCare(
	ctx context.Context,
	tx *gorm.DB,
	plantID uuid.UUID,
	kind CareKind,
	at time.Time,
) error {
	log := r.log.Function("RecordCare")

	var column string
	switch kind {
	case CareWatering:
		column = "last_watered_at"
	case CareFertilizing:
		column = "last_fertilized_at"
	default:
		return nil
	}

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.WithContext(ctx).Model(&Plant{}).
		Where("id = ?", plantID).
		Update(column, at).Error; err != nil {
		return log.Err("failed to stamp plant care", err, "plantID", plantID, "kind", kind)
	}

	return nil
}

// Delete soft-deletes the plant and hard-deletes its derived pending
// reminders. Care logs are kept for history.
func (r *plantRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Plant{})
	if result.Error != nil {
		return log.Err("failed to delete plant", result.Error, "plantID", id)
	}
	if result.RowsAffected == 0 {
		return log.Error("plant not found", "plantID", id, "userID", userID)
	}

	if err := r.db.SQLWithContext(ctx).
		Where("plant_id = ? AND status <> ?", id, StatusCompleted).
		Delete(&Reminder{}).Error; err != nil {
		log.Warn("failed to delete plant reminders", "plantID", id, "error", err)
	}

	return nil
}

func (r *plantRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.SQLWithContext(ctx).Model(&Plant{}).Count(&count).Error
	return count, err
}
