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

const (
	REMINDER_CACHE_EXPIRY = 15 * time.Minute
	REMINDER_CACHE_PREFIX = "reminders:"
)

type ReminderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Reminder, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Reminder, error)
	Save(ctx context.Context, reminder *Reminder) error
	ReplacePending(ctx context.Context, tx *gorm.DB, userID uuid.UUID, generated []Reminder) error
	CompletePending(ctx context.Context, tx *gorm.DB, plantID uuid.UUID, kind CareKind, at time.Time) error
	ListUserIDsWithActive(ctx context.Context) ([]uuid.UUID, error)
	ClearUserCache(ctx context.Context, userID uuid.UUID)
}

type reminderRepository struct {
	db  database.DB
	log logger.Logger
}

func NewReminderRepository(db database.DB) ReminderRepository {
	return &reminderRepository{
		db:  db,
		log: logger.New("reminderRepository"),
	}
}

func (r *reminderRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*Reminder, error) {
	log := r.log.Function("GetByID")

	var reminder Reminder
	if err := r.db.SQLWithContext(ctx).
		First(&reminder, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, log.Err("failed to get reminder", err, "reminderID", id)
	}

	return &reminder, nil
}

func (r *reminderRepository) ListActiveByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]Reminder, error) {
	log := r.log.Function("ListActiveByUser")

	cacheKey := REMINDER_CACHE_PREFIX + userID.String()
	var cached []Reminder
	found, err := database.NewCacheBuilder(r.db.Cache.Reminder, cacheKey).
		WithContext(ctx).
		Get(&cached)
	if err == nil && found {
		return cached, nil
	}

	var reminders []Reminder
	if err := r.db.SQLWithContext(ctx).
		Preload("Plant").
		Where("user_id = ? AND status <> ?", userID, StatusCompleted).
		Order("due_at").
		Find(&reminders).Error; err != nil {
		return nil, log.Err("failed to list reminders", err, "userID", userID)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Reminder, cacheKey).
		WithStruct(reminders).
		WithTTL(REMINDER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache reminders", "userID", userID, "error", err)
	}

	return reminders, nil
}

func (r *reminderRepository) Save(ctx context.Context, reminder *Reminder) error {
	log := r.log.Function("Save")

	if err := r.db.SQLWithContext(ctx).Save(reminder).Error; err != nil {
		return log.Err("failed to save reminder", err, "reminderID", reminder.ID)
	}

	r.ClearUserCache(ctx, reminder.UserID)
	return nil
}

// ReplacePending reconciles the stored pending occurrences for a user with a
// freshly generated set. Snoozed occurrences are the user's explicit choice
// and survive regeneration; pending ones are replaced wholesale.
func (r *reminderRepository) ReplacePending(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	generated []Reminder,
) error {
	log := r.log.Function("ReplacePending")

	db := tx
	if db == nil {
		db = r.db.SQLWithContext(ctx)
	}

	// Keep plant/kind pairs the user has snoozed.
	var snoozed []Reminder
	if err := db.
		Where("user_id = ? AND status = ?", userID, StatusSnoozed).
		Find(&snoozed).Error; err != nil {
		return log.Err("failed to load snoozed reminders", err, "userID", userID)
	}
	snoozedKeys := make(map[string]bool, len(snoozed))
	for _, s := range snoozed {
		snoozedKeys[s.PlantID.String()+":"+string(s.Kind)] = true
	}

	if err := db.
		Where("user_id = ? AND status = ?", userID, StatusPending).
		Delete(&Reminder{}).Error; err != nil {
		return log.Err("failed to clear pending reminders", err, "userID", userID)
	}

	for i := range generated {
		if snoozedKeys[generated[i].PlantID.String()+":"+string(generated[i].Kind)] {
			continue
		}
		if err := db.Create(&generated[i]).Error; err != nil {
			return log.Err("failed to insert generated reminder", err,
				"plantID", generated[i].PlantID, "kind", generated[i].Kind)
		}
	}

	r.ClearUserCache(ctx, userID)
	return nil
}

// CompletePending marks any open occurrence for the plant/kind pair as
// completed, typically because a matching care log was just recorded.
func (r *reminderRepository) CompletePending(
	ctx context.Context,
	tx *gorm.DB,
	plantID uuid.UUID,
	kind CareKind,
	at time.Time,
) error {
	log := r.log.Function("CompletePending")

	db := tx
	if db == nil {
		db = r.db.SQLWithContext(ctx)
	}

	if err := db.Model(&Reminder{}).
		Where("plant_id = ? AND kind = ? AND status <> ?", plantID, kind, StatusCompleted).
		Updates(map[string]any{
			"status":       StatusCompleted,
			"completed_at": at,
		}).Error; err != nil {
		return log.Err("failed to complete pending reminders", err,
			"plantID", plantID, "kind", kind)
	}

	return nil
}

func (r *reminderRepository) ListUserIDsWithActive(ctx context.Context) ([]uuid.UUID, error) {
	log := r.log.Function("ListUserIDsWithActive")

	var userIDs []uuid.UUID
	if err := r.db.SQLWithContext(ctx).
		Model(&Reminder{}).
		Where("status <> ?", StatusCompleted).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, log.Err("failed to list users with active reminders", err)
	}

	return userIDs, nil
}

func (r *reminderRepository) ClearUserCache(ctx context.Context, userID uuid.UUID) {
	cacheKey := REMINDER_CACHE_PREFIX + userID.String()
	if err := database.NewCacheBuilder(r.db.Cache.Reminder, cacheKey).
		WithContext(ctx).
		Delete(); err != nil {
		r.log.Function("ClearUserCache").
			Warn("failed to clear reminder cache", "userID", userID, "error", err)
	}
}
