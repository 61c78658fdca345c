package controllers

import (
	"agrotrack/internal/events"
	"agrotrack/internal/repositories"
	"agrotrack/internal/services"

	adminController "agrotrack/internal/controllers/admin"
	adviceController "agrotrack/internal/controllers/advice"
	authController "agrotrack/internal/controllers/auth"
	careLogController "agrotrack/internal/controllers/carelogs"
	forumController "agrotrack/internal/controllers/forum"
	plantController "agrotrack/internal/controllers/plants"
	reminderController "agrotrack/internal/controllers/reminders"
	userController "agrotrack/internal/controllers/users"
)

type Controllers struct {
	Auth     authController.AuthControllerInterface
	User     userController.UserControllerInterface
	Plant    plantController.PlantControllerInterface
	CareLog  careLogController.CareLogControllerInterface
	Reminder reminderController.ReminderControllerInterface
	Advice   adviceController.AdviceControllerInterface
	Forum    forumController.ForumControllerInterface
	Admin    adminController.AdminControllerInterface
}

func New(
	services *services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
) Controllers {
	// Reminder orchestration first: plant, care-log, and preference
	// mutations all trigger regeneration through it.
	reminder := reminderController.New(repos, services, eventBus)

	return Controllers{
		Auth:     authController.New(repos, services),
		User:     userController.New(repos, reminder),
		Plant:    plantController.New(repos, reminder),
		CareLog:  careLogController.New(repos, services, reminder, eventBus),
		Reminder: reminder,
		Advice:   adviceController.New(repos, services),
		Forum:    forumController.New(repos, eventBus),
		Admin:    adminController.New(repos),
	}
}
