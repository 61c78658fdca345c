package plantController

import (
	"context"
	"errors"

	reminderController "agrotrack/internal/controllers/reminders"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"
	"agrotrack/internal/repositories"

	"github.com/google/uuid"
)

var ErrInvalidPlant = errors.New("plant name is required")

type PlantController struct {
	plantRepo repositories.PlantRepository
	reminders reminderController.ReminderControllerInterface
	log       logger.Logger
}

type PlantControllerInterface interface {
	Get(ctx context.Context, user *User, plantID uuid.UUID) (*Plant, error)
	List(ctx context.Context, user *User) ([]Plant, error)
	Create(ctx context.Context, user *User, request PlantRequest) (*Plant, error)
	Update(ctx context.Context, user *User, plantID uuid.UUID, request PlantRequest) (*Plant, error)
	Delete(ctx context.Context, user *User, plantID uuid.UUID) error
}

func New(
	repos repositories.Repository,
	reminders reminderController.ReminderControllerInterface,
) PlantControllerInterface {
	return &PlantController{
		plantRepo: repos.Plant,
		reminders: reminders,
		log:       logger.New("plantController"),
	}
}

func (c *PlantController) Get(ctx context.Context, user *User, plantID uuid.UUID) (*Plant, error) {
	log := c.log.TraceFromContext(ctx).Function("Get")

	plant, err := c.plantRepo.GetByID(ctx, plantID, user.ID)
	if err != nil {
		return nil, log.Err("failed to get plant", err, "plantID", plantID)
	}

	return plant, nil
}

func (c *PlantController) List(ctx context.Context, user *User) ([]Plant, error) {
	log := c.log.TraceFromContext(ctx).Function("List")

	plants, err := c.plantRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to list plants", err, "userID", user.ID)
	}

	return plants, nil
}

func (c *PlantController) Create(ctx context.Context, user *User, request PlantRequest) (*Plant, error) {
	log := c.log.TraceFromContext(ctx).Function("Create")

	if request.Name == "" {
		return nil, ErrInvalidPlant
	}

	plant := &Plant{
		UserID:          user.ID,
		Name:            request.Name,
		Species:         request.Species,
		Category:        request.Category,
		Sunlight:        request.Sunlight,
		Health:          request.Health,
		WateringDays:    request.WateringDays,
		FertilizingDays: request.FertilizingDays,
		AcquiredAt:      request.AcquiredAt,
		Notes:           request.Notes,
	}
	applyPlantDefaults(plant)

	if err := c.plantRepo.Create(ctx, plant); err != nil {
		return nil, log.Err("failed to create plant", err, "name", request.Name)
	}

	c.regenerate(ctx, user.ID, log)

	log.Info("plant created", "plantID", plant.ID, "name", plant.Name)
	return plant, nil
}

func (c *PlantController) Update(
	ctx context.Context,
	user *User,
	plantID uuid.UUID,
	request PlantRequest,
) (*Plant, error) {
	log := c.log.TraceFromContext(ctx).Function("Update")

	plant, err := c.plantRepo.GetByID(ctx, plantID, user.ID)
	if err != nil {
		return nil, log.Err("failed to get plant", err, "plantID", plantID)
	}

	if request.Name == "" {
		return nil, ErrInvalidPlant
	}

	plant.Name = request.Name
	plant.Species = request.Species
	plant.Category = request.Category
	plant.Sunlight = request.Sunlight
	plant.Health = request.Health
	plant.WateringDays = request.WateringDays
	plant.FertilizingDays = request.FertilizingDays
	plant.AcquiredAt = request.AcquiredAt
	plant.Notes = request.Notes
	applyPlantDefaults(plant)

	if err := c.plantRepo.Update(ctx, plant); err != nil {
		return nil, log.Err("failed to update plant", err, "plantID", plantID)
	}

	c.regenerate(ctx, user.ID, log)

	log.Info("plant updated", "plantID", plant.ID)
	return plant, nil
}

func (c *PlantController) Delete(ctx context.Context, user *User, plantID uuid.UUID) error {
	log := c.log.TraceFromContext(ctx).Function("Delete")

	if err := c.plantRepo.Delete(ctx, plantID, user.ID); err != nil {
		return log.Err("failed to delete plant", err, "plantID", plantID)
	}

	c.regenerate(ctx, user.ID, log)

	log.Info("plant deleted", "plantID", plantID)
	return nil
}

// Cadence changes move due dates, so every plant mutation triggers a
// regeneration. Failures are logged, not surfaced; the hourly reconciliation
// job will catch up.
func (c *PlantController) regenerate(ctx context.Context, userID uuid.UUID, log logger.Logger) {
	if _, err := c.reminders.Refresh(ctx, userID); err != nil {
		log.Warn("failed to refresh reminders after plant change", "userID", userID, "error", err)
	}
}

func applyPlantDefaults(plant *Plant) {
	if plant.Category == "" {
		plant.Category = CategoryFoliage
	}
	if plant.Sunlight == "" {
		plant.Sunlight = SunlightPartial
	}
	if plant.Health == "" {
		plant.Health = HealthHealthy
	}
	if plant.WateringDays < 0 {
		plant.WateringDays = 0
	}
	if plant.FertilizingDays < 0 {
		plant.FertilizingDays = 0
	}
}
