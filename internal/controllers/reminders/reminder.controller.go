package reminderController

import (
	"context"
	"time"

	"agrotrack/internal/events"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"
	"agrotrack/internal/reminders"
	"agrotrack/internal/repositories"
	"agrotrack/internal/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderController struct {
	reminderRepo    repositories.ReminderRepository
	plantRepo       repositories.PlantRepository
	preferencesRepo repositories.PreferencesRepository
	transaction     *services.TransactionService
	eventBus        *events.EventBus
	log             logger.Logger
}

type ReminderControllerInterface interface {
	Refresh(ctx context.Context, userID uuid.UUID) ([]Reminder, error)
	Buckets(ctx context.Context, user *User) (reminders.Buckets, error)
	Snooze(ctx context.Context, user *User, reminderID uuid.UUID, request SnoozeRequest) (*Reminder, error)
	Complete(ctx context.Context, user *User, reminderID uuid.UUID) (*Reminder, error)
	RefreshAllUsers(ctx context.Context) error
}

func New(
	repos repositories.Repository,
	services *services.Service,
	eventBus *events.EventBus,
) ReminderControllerInterface {
	return &ReminderController{
		reminderRepo:    repos.Reminder,
		plantRepo:       repos.Plant,
		preferencesRepo: repos.Preferences,
		transaction:     services.Transaction,
		eventBus:        eventBus,
		log:             logger.New("reminderController"),
	}
}

// Refresh regenerates pending reminders for a user from current plant and
// care-log state. Snoozed occurrences are left untouched so a snooze survives
// regeneration.
func (c *ReminderController) Refresh(ctx context.Context, userID uuid.UUID) ([]Reminder, error) {
	log := c.log.TraceFromContext(ctx).Function("Refresh")

	config, err := c.engineConfig(ctx, userID)
	if err != nil {
		return nil, err
	}

	plants, err := c.plantRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to list plants", err, "userID", userID)
	}

	now := time.Now()
	generated := make([]Reminder, 0, len(plants)*len(TrackedCareKinds))
	for i := range plants {
		generated = append(generated, reminders.Generate(&plants[i], config, now)...)
	}

	err = c.transaction.Execute(ctx, func(txCtx context.Context, tx *gorm.DB) error {
		return c.reminderRepo.ReplacePending(txCtx, tx, userID, generated)
	})
	if err != nil {
		return nil, log.Err("failed to replace pending reminders", err, "userID", userID)
	}

	active, err := c.reminderRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to list reminders after refresh", err, "userID", userID)
	}

	c.publish(log, events.REMINDER_REFRESHED, userID, map[string]any{
		"count": len(active),
	})

	log.Info("reminders refreshed", "userID", userID, "generated", len(generated), "active", len(active))
	return active, nil
}

// Buckets partitions the user's active reminders into overdue, today, and
// upcoming windows relative to the current local day.
func (c *ReminderController) Buckets(ctx context.Context, user *User) (reminders.Buckets, error) {
	log := c.log.TraceFromContext(ctx).Function("Buckets")

	active, err := c.reminderRepo.ListActiveByUser(ctx, user.ID)
	if err != nil {
		return reminders.Buckets{}, log.Err("failed to list reminders", err, "userID", user.ID)
	}

	return reminders.Bucket(active, time.Now()), nil
}

// Snooze applies the transition locally first, then persists; a persistence
// failure restores the prior record state so callers never observe a
// half-applied snooze.
func (c *ReminderController) Snooze(
	ctx context.Context,
	user *User,
	reminderID uuid.UUID,
	request SnoozeRequest,
) (*Reminder, error) {
	log := c.log.TraceFromContext(ctx).Function("Snooze")

	reminder, err := c.reminderRepo.GetByID(ctx, reminderID, user.ID)
	if err != nil {
		return nil, log.Err("failed to get reminder", err, "reminderID", reminderID)
	}

	config, err := c.engineConfig(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var offset time.Duration
	if request.Hours != nil && *request.Hours > 0 {
		offset = time.Duration(*request.Hours) * time.Hour
	}

	prior := *reminder
	snoozed, err := reminders.Snooze(*reminder, config, time.Now(), offset)
	if err != nil {
		return nil, log.Err("snooze rejected", err, "reminderID", reminderID, "status", reminder.Status)
	}

	*reminder = snoozed
	if err := c.reminderRepo.Save(ctx, reminder); err != nil {
		*reminder = prior
		return nil, log.Err("failed to persist snooze, reverted", err, "reminderID", reminderID)
	}

	c.publish(log, events.REMINDER_SNOOZED, user.ID, map[string]any{
		"reminderId": reminder.ID.String(),
		"dueAt":      reminder.DueAt,
	})

	log.Info("reminder snoozed", "reminderID", reminderID, "dueAt", reminder.DueAt)
	return reminder, nil
}

// Complete marks a reminder done. Completed is terminal, so a second complete
// or a snooze after completion is rejected by the lifecycle rules.
func (c *ReminderController) Complete(
	ctx context.Context,
	user *User,
	reminderID uuid.UUID,
) (*Reminder, error) {
	log := c.log.TraceFromContext(ctx).Function("Complete")

	reminder, err := c.reminderRepo.GetByID(ctx, reminderID, user.ID)
	if err != nil {
		return nil, log.Err("failed to get reminder", err, "reminderID", reminderID)
	}

	prior := *reminder
	completed, err := reminders.Complete(*reminder, time.Now())
	if err != nil {
		return nil, log.Err("complete rejected", err, "reminderID", reminderID, "status", reminder.Status)
	}

	*reminder = completed
	if err := c.reminderRepo.Save(ctx, reminder); err != nil {
		*reminder = prior
		return nil, log.Err("failed to persist completion, reverted", err, "reminderID", reminderID)
	}

	c.publish(log, events.REMINDER_COMPLETED, user.ID, map[string]any{
		"reminderId": reminder.ID.String(),
	})

	log.Info("reminder completed", "reminderID", reminderID)
	return reminder, nil
}

// RefreshAllUsers reconciles reminders for every user that has active rows.
// Driven by the hourly scheduler job.
func (c *ReminderController) RefreshAllUsers(ctx context.Context) error {
	log := c.log.Function("RefreshAllUsers")

	userIDs, err := c.reminderRepo.ListUserIDsWithActive(ctx)
	if err != nil {
		return log.Err("failed to list users with active reminders", err)
	}

	var failures int
	for _, userID := range userIDs {
		if _, err := c.Refresh(ctx, userID); err != nil {
			failures++
			log.Er("failed to refresh reminders for user", err, "userID", userID)
		}
	}

	if failures > 0 {
		return log.Errorf("reminder reconciliation finished with failures", "some users failed to refresh")
	}

	log.Info("reminder reconciliation completed", "userCount", len(userIDs))
	return nil
}

func (c *ReminderController) publish(
	log logger.Logger,
	eventType events.MessageType,
	userID uuid.UUID,
	data map[string]any,
) {
	if c.eventBus == nil {
		return
	}
	if err := c.eventBus.PublishReminderEvent(eventType, userID, data); err != nil {
		log.Warn("failed to publish reminder event", "eventType", eventType, "error", err)
	}
}

func (c *ReminderController) engineConfig(ctx context.Context, userID uuid.UUID) (reminders.Config, error) {
	log := c.log.TraceFromContext(ctx).Function("engineConfig")

	prefs, err := c.preferencesRepo.GetByUserID(ctx, userID)
	if err != nil {
		return reminders.Config{}, log.Err("failed to get reminder preferences", err, "userID", userID)
	}

	return reminders.ConfigFromPreferences(prefs), nil
}
