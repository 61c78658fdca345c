package repositories

import (
	"context"

	"agrotrack/internal/database"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"

	"github.com/google/uuid"
)

type AIRecommendationRepository interface {
	Create(ctx context.Context, rec *AIRecommendation) error
	ListByPlant(ctx context.Context, plantID uuid.UUID, userID uuid.UUID) ([]AIRecommendation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]AIRecommendation, error)
}

type aiRecommendationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAIRecommendationRepository(db database.DB) AIRecommendationRepository {
	return &aiRecommendationRepository{
		db:  db,
		log: logger.New("aiRecommendationRepository"),
	}
}

// Create persists one analysis. Records are write-once; there is no update
// path.
func (r *aiRecommendationRepository) Create(ctx context.Context, rec *AIRecommendation) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(rec).Error; err != nil {
		return log.Err("failed to create recommendation", err,
			"plantID", rec.PlantID, "kind", rec.Kind)
	}

	return nil
}

func (r *aiRecommendationRepository) ListByPlant(
	ctx context.Context,
	plantID uuid.UUID,
	userID uuid.UUID,
) ([]AIRecommendation, error) {
	log := r.log.Function("ListByPlant")

	var recs []AIRecommendation
	if err := r.db.SQLWithContext(ctx).
		Where("plant_id = ? AND user_id = ?", plantID, userID).
		Order("created_at DESC").
		Find(&recs).Error; err != nil {
		return nil, log.Err("failed to list recommendations", err, "plantID", plantID)
	}

	return recs, nil
}

func (r *aiRecommendationRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]AIRecommendation, error) {
	log := r.log.Function("ListByUser")

	if limit <= 0 {
		limit = 20
	}

	var recs []AIRecommendation
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, log.Err("failed to list recommendations", err, "userID", userID)
	}

	return recs, nil
}
