package userController

import (
	"context"

	reminderController "agrotrack/internal/controllers/reminders"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"
	"agrotrack/internal/repositories"
)

type UserController struct {
	userRepo        repositories.UserRepository
	preferencesRepo repositories.PreferencesRepository
	reminders       reminderController.ReminderControllerInterface
	log             logger.Logger
}

type UserControllerInterface interface {
	GetProfile(ctx context.Context, user *User) UserProfile
	GetPreferences(ctx context.Context, user *User) (*ReminderPreferences, error)
	UpdatePreferences(ctx context.Context, user *User, request ReminderPreferencesRequest) (*ReminderPreferences, error)
}

func New(
	repos repositories.Repository,
	reminders reminderController.ReminderControllerInterface,
) UserControllerInterface {
	return &UserController{
		userRepo:        repos.User,
		preferencesRepo: repos.Preferences,
		reminders:       reminders,
		log:             logger.New("userController"),
	}
}

func (c *UserController) GetProfile(ctx context.Context, user *User) UserProfile {
	return user.ToProfile()
}

func (c *UserController) GetPreferences(ctx context.Context, user *User) (*ReminderPreferences, error) {
	log := c.log.TraceFromContext(ctx).Function("GetPreferences")

	prefs, err := c.preferencesRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to get preferences", err, "userID", user.ID)
	}

	return prefs, nil
}

// UpdatePreferences applies only the fields present in the request, then
// regenerates reminders since scheduling knobs changed.
func (c *UserController) UpdatePreferences(
	ctx context.Context,
	user *User,
	request ReminderPreferencesRequest,
) (*ReminderPreferences, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdatePreferences")

	prefs, err := c.preferencesRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to get preferences", err, "userID", user.ID)
	}

	applyPreferences(prefs, request)

	if err := c.preferencesRepo.Upsert(ctx, prefs); err != nil {
		return nil, log.Err("failed to save preferences", err, "userID", user.ID)
	}

	if _, err := c.reminders.Refresh(ctx, user.ID); err != nil {
		log.Warn("failed to refresh reminders after preference change", "userID", user.ID, "error", err)
	}

	log.Info("preferences updated", "userID", user.ID)
	return prefs, nil
}

func applyPreferences(prefs *ReminderPreferences, request ReminderPreferencesRequest) {
	if request.DefaultWateringDays != nil && *request.DefaultWateringDays > 0 {
		prefs.DefaultWateringDays = *request.DefaultWateringDays
	}
	if request.DefaultFertilizingDays != nil && *request.DefaultFertilizingDays > 0 {
		prefs.DefaultFertilizingDays = *request.DefaultFertilizingDays
	}
	if request.SnoozeHours != nil && *request.SnoozeHours > 0 {
		prefs.SnoozeHours = *request.SnoozeHours
	}
	if request.LookaheadDays != nil && *request.LookaheadDays >= 0 {
		prefs.LookaheadDays = *request.LookaheadDays
	}
	if request.UrgentMultiplier != nil && *request.UrgentMultiplier >= 1 {
		prefs.UrgentMultiplier = *request.UrgentMultiplier
	}
	if request.NewPlantGraceDays != nil && *request.NewPlantGraceDays >= 0 {
		prefs.NewPlantGraceDays = *request.NewPlantGraceDays
	}
	if request.SeasonalAdjustment != nil {
		prefs.SeasonalAdjustment = *request.SeasonalAdjustment
	}
}
