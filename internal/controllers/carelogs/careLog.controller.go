package careLogController

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	reminderController "agrotrack/internal/controllers/reminders"
	"agrotrack/internal/events"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"
	"agrotrack/internal/repositories"
	"agrotrack/internal/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidCareKind = errors.New("invalid care kind")

type CareLogController struct {
	careLogRepo  repositories.CareLogRepository
	plantRepo    repositories.PlantRepository
	reminderRepo repositories.ReminderRepository
	transaction  *services.TransactionService
	reminders    reminderController.ReminderControllerInterface
	eventBus     *events.EventBus
	log          logger.Logger
}

type CareLogControllerInterface interface {
	Create(ctx context.Context, user *User, request CareLogRequest) (*CareLog, error)
	ListByPlant(ctx context.Context, user *User, plantID uuid.UUID) ([]CareLog, error)
	ListByUser(ctx context.Context, user *User, limit int) ([]CareLog, error)
}

func New(
	repos repositories.Repository,
	services *services.Service,
	reminders reminderController.ReminderControllerInterface,
	eventBus *events.EventBus,
) CareLogControllerInterface {
	return &CareLogController{
		careLogRepo:  repos.CareLog,
		plantRepo:    repos.Plant,
		reminderRepo: repos.Reminder,
		transaction:  services.Transaction,
		reminders:    reminders,
		eventBus:     eventBus,
		log:          logger.New("careLogController"),
	}
}

// Create records a care event. The log row, the plant's last-cared stamp, and
// completion of any matching pending reminder commit in one transaction so a
// failure leaves no partial care state.
func (c *CareLogController) Create(
	ctx context.Context,
	user *User,
	request CareLogRequest,
) (*CareLog, error) {
	log := c.log.TraceFromContext(ctx).Function("Create")

	if !request.Kind.Valid() {
		return nil, ErrInvalidCareKind
	}

	plant, err := c.plantRepo.GetByID(ctx, request.PlantID, user.ID)
	if err != nil {
		return nil, log.Err("failed to get plant", err, "plantID", request.PlantID)
	}

	performedAt := time.Now()
	if request.PerformedAt != nil {
		performedAt = *request.PerformedAt
	}

	careLog := &CareLog{
		UserID:      user.ID,
		PlantID:     plant.ID,
		Kind:        request.Kind,
		PerformedAt: performedAt,
		Notes:       request.Notes,
	}

	if len(request.Photos) > 0 {
		photos, err := json.Marshal(request.Photos)
		if err != nil {
			return nil, log.Err("failed to marshal photos", err)
		}
		careLog.Photos = photos
	}

	err = c.transaction.Execute(ctx, func(txCtx context.Context, tx *gorm.DB) error {
		if err := c.careLogRepo.Create(txCtx, tx, careLog); err != nil {
			return log.Err("failed to create care log", err, "plantID", plant.ID)
		}

		if err := c.plantRepo.RecordCare(txCtx, tx, plant.ID, request.Kind, performedAt); err != nil {
			return err
		}

		if err := c.reminderRepo.CompletePending(txCtx, tx, plant.ID, request.Kind, performedAt); err != nil {
			return log.Err("failed to complete pending reminder", err, "plantID", plant.ID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.reminderRepo.ClearUserCache(ctx, user.ID)

	if err := c.eventBus.Publish(events.CARE_CHANNEL, events.Event{
		Type:   events.CARE_LOGGED,
		UserID: &user.ID,
		Data: map[string]any{
			"plantId": plant.ID.String(),
			"kind":    string(request.Kind),
		},
	}); err != nil {
		log.Warn("failed to publish care event", "plantID", plant.ID, "error", err)
	}

	if _, err := c.reminders.Refresh(ctx, user.ID); err != nil {
		log.Warn("failed to refresh reminders after care log", "userID", user.ID, "error", err)
	}

	log.Info("care logged", "plantID", plant.ID, "kind", request.Kind, "careLogID", careLog.ID)
	return careLog, nil
}

func (c *CareLogController) ListByPlant(
	ctx context.Context,
	user *User,
	plantID uuid.UUID,
) ([]CareLog, error) {
	log := c.log.TraceFromContext(ctx).Function("ListByPlant")

	logs, err := c.careLogRepo.ListByPlant(ctx, plantID, user.ID)
	if err != nil {
		return nil, log.Err("failed to list care logs", err, "plantID", plantID)
	}

	return logs, nil
}

func (c *CareLogController) ListByUser(ctx context.Context, user *User, limit int) ([]CareLog, error) {
	log := c.log.TraceFromContext(ctx).Function("ListByUser")

	logs, err := c.careLogRepo.ListByUser(ctx, user.ID, limit)
	if err != nil {
		return nil, log.Err("failed to list care logs", err, "userID", user.ID)
	}

	return logs, nil
}
