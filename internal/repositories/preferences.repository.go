package repositories

import (
	"context"
	"errors"
	"time"

	"agrotrack/internal/database"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PREFERENCES_CACHE_EXPIRY = 24 * time.Hour
	PREFERENCES_CACHE_PREFIX = "prefs:"
)

type PreferencesRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*ReminderPreferences, error)
	Upsert(ctx context.Context, prefs *ReminderPreferences) error
}

type preferencesRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPreferencesRepository(db database.DB) PreferencesRepository {
	return &preferencesRepository{
		db:  db,
		log: logger.New("preferencesRepository"),
	}
}

// GetByUserID returns the user's reminder preferences, creating the default
// row on first access.
func (r *preferencesRepository) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*ReminderPreferences, error) {
	log := r.log.Function("GetByUserID")

	cacheKey := PREFERENCES_CACHE_PREFIX + userID.String()
	var cached ReminderPreferences
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithContext(ctx).
		Get(&cached)
	if err == nil && found {
		return &cached, nil
	}

	var prefs ReminderPreferences
	err = r.db.SQLWithContext(ctx).First(&prefs, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = ReminderPreferences{
			UserID:                 userID,
			DefaultWateringDays:    7,
			DefaultFertilizingDays: 30,
			SnoozeHours:            24,
			LookaheadDays:          2,
			UrgentMultiplier:       2,
			SeasonalAdjustment:     true,
		}
		if err := r.db.SQLWithContext(ctx).Create(&prefs).Error; err != nil {
			return nil, log.Err("failed to create default preferences", err, "userID", userID)
		}
	} else if err != nil {
		return nil, log.Err("failed to get preferences", err, "userID", userID)
	}

	if err := r.addToCache(ctx, &prefs); err != nil {
		log.Warn("failed to cache preferences", "userID", userID, "error", err)
	}

	return &prefs, nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, prefs *ReminderPreferences) error {
	log := r.log.Function("Upsert")

	if err := r.db.SQLWithContext(ctx).Save(prefs).Error; err != nil {
		return log.Err("failed to save preferences", err, "userID", prefs.UserID)
	}

	cacheKey := PREFERENCES_CACHE_PREFIX + prefs.UserID.String()
	if err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to clear preferences cache", "userID", prefs.UserID, "error", err)
	}

	return nil
}

func (r *preferencesRepository) addToCache(ctx context.Context, prefs *ReminderPreferences) error {
	cacheKey := PREFERENCES_CACHE_PREFIX + prefs.UserID.String()
	return database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithStruct(prefs).
		WithTTL(PREFERENCES_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}
