package adviceController

import (
	"context"
	"errors"

	"agrotrack/internal/logger"
	. "agrotrack/internal/models"
	"agrotrack/internal/repositories"
	"agrotrack/internal/services"

	"github.com/google/uuid"
)

// ErrUnavailable is returned when no generative model is configured.
var ErrUnavailable = errors.New("ai advice is not configured")

type AdviceController struct {
	adviceService *services.AdviceService
	recRepo       repositories.AIRecommendationRepository
	plantRepo     repositories.PlantRepository
	log           logger.Logger
}

type AdviceControllerInterface interface {
	GetAdvice(ctx context.Context, user *User, request AdviceRequest) (*AIRecommendation, error)
	Diagnose(ctx context.Context, user *User, request DiagnosisRequest) (*AIRecommendation, error)
	History(ctx context.Context, user *User, plantID *uuid.UUID) ([]AIRecommendation, error)
	Available() bool
}

func New(repos repositories.Repository, services *services.Service) AdviceControllerInterface {
	return &AdviceController{
		adviceService: services.Advice,
		recRepo:       repos.AIRecommendation,
		plantRepo:     repos.Plant,
		log:           logger.New("adviceController"),
	}
}

// Available reports whether a generative model client was configured.
func (c *AdviceController) Available() bool {
	return c.adviceService != nil
}

func (c *AdviceController) GetAdvice(
	ctx context.Context,
	user *User,
	request AdviceRequest,
) (*AIRecommendation, error) {
	log := c.log.TraceFromContext(ctx).Function("GetAdvice")

	if !c.Available() {
		return nil, ErrUnavailable
	}

	plant, err := c.plantRepo.GetByID(ctx, request.PlantID, user.ID)
	if err != nil {
		return nil, log.Err("failed to get plant", err, "plantID", request.PlantID)
	}

	advice, err := c.adviceService.GenerateCareAdvice(ctx, plant, request.Question)
	if err != nil {
		return nil, err
	}

	rec := &AIRecommendation{
		UserID:    user.ID,
		PlantID:   plant.ID,
		Kind:      RecommendationAdvice,
		Advice:    advice,
		ModelName: c.adviceService.ModelName(),
	}

	if err := c.recRepo.Create(ctx, rec); err != nil {
		return nil, log.Err("failed to store recommendation", err, "plantID", plant.ID)
	}

	log.Info("care advice generated", "plantID", plant.ID, "recommendationID", rec.ID)
	return rec, nil
}

func (c *AdviceController) Diagnose(
	ctx context.Context,
	user *User,
	request DiagnosisRequest,
) (*AIRecommendation, error) {
	log := c.log.TraceFromContext(ctx).Function("Diagnose")

	if !c.Available() {
		return nil, ErrUnavailable
	}

	plant, err := c.plantRepo.GetByID(ctx, request.PlantID, user.ID)
	if err != nil {
		return nil, log.Err("failed to get plant", err, "plantID", request.PlantID)
	}

	diagnosis, prompt, err := c.adviceService.DiagnoseDisease(ctx, plant, request.Symptoms)
	if err != nil {
		return nil, err
	}

	rec, err := diagnosis.ToRecommendation(user.ID, plant.ID, prompt, c.adviceService.ModelName())
	if err != nil {
		return nil, log.Err("failed to build recommendation", err, "plantID", plant.ID)
	}

	if err := c.recRepo.Create(ctx, rec); err != nil {
		return nil, log.Err("failed to store recommendation", err, "plantID", plant.ID)
	}

	log.Info("diagnosis generated",
		"plantID", plant.ID,
		"severity", rec.Severity,
		"recommendationID", rec.ID,
	)
	return rec, nil
}

func (c *AdviceController) History(
	ctx context.Context,
	user *User,
	plantID *uuid.UUID,
) ([]AIRecommendation, error) {
	log := c.log.TraceFromContext(ctx).Function("History")

	var (
		recs []AIRecommendation
		err  error
	)
	if plantID != nil {
		recs, err = c.recRepo.ListByPlant(ctx, *plantID, user.ID)
	} else {
		recs, err = c.recRepo.ListByUser(ctx, user.ID, 0)
	}
	if err != nil {
		return nil, log.Err("failed to list recommendations", err, "userID", user.ID)
	}

	return recs, nil
}
