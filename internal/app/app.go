package app

import (
	"context"

	"agrotrack/config"
	"agrotrack/internal/controllers"
	"agrotrack/internal/database"
	"agrotrack/internal/events"
	"agrotrack/internal/handlers/middleware"
	"agrotrack/internal/jobs"
	"agrotrack/internal/logger"
	"agrotrack/internal/repositories"
	"agrotrack/internal/services"
	"agrotrack/internal/websockets"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	Services     *services.Service
	Repositories repositories.Repository
	Controllers  controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")
	ctx := context.Background()

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	service, err := services.New(ctx, config, db)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	repos := repositories.New(db)

	websocket, err := websockets.New(db, eventBus, config, service.Auth, repos.User)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	middleware := middleware.New(db, eventBus, config, repos)
	controllers := controllers.New(service, repos, eventBus)

	// Register jobs with scheduler if enabled
	if config.SchedulerEnabled {
		reconciliationJob := jobs.NewReminderReconciliationJob(
			controllers.Reminder,
			services.Hourly,
		)
		if err := service.Scheduler.AddJob(reconciliationJob); err != nil {
			return &App{}, log.Err("failed to register reminder reconciliation job", err)
		}

		digestJob := jobs.NewDailyDigestJob(repos.Reminder, eventBus, services.Daily)
		if err := service.Scheduler.AddJob(digestJob); err != nil {
			return &App{}, log.Err("failed to register daily digest job", err)
		}

		if err := service.Scheduler.Start(ctx); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:     db,
		Config:       config,
		Middleware:   middleware,
		EventBus:     eventBus,
		Websocket:    websocket,
		Services:     service,
		Repositories: repos,
		Controllers:  controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services,
		a.Controllers.Auth,
		a.Controllers.User,
		a.Controllers.Plant,
		a.Controllers.CareLog,
		a.Controllers.Reminder,
		a.Controllers.Advice,
		a.Controllers.Forum,
		a.Controllers.Admin,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services != nil {
		if closeErr := a.Services.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
