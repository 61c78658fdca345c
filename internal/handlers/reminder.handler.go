package handlers

import (
	"errors"

	"agrotrack/internal/app"
	reminderController "agrotrack/internal/controllers/reminders"
	"agrotrack/internal/handlers/middleware"
	"agrotrack/internal/logger"
	"agrotrack/internal/reminders"
	"agrotrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	. "agrotrack/internal/models"
)

type ReminderHandler struct {
	Handler
	reminderController reminderController.ReminderControllerInterface
	authService        *services.AuthService
}

func NewReminderHandler(app app.App, router fiber.Router) *ReminderHandler {
	log := logger.New("handlers").File("reminder_handler")
	return &ReminderHandler{
		reminderController: app.Controllers.Reminder,
		authService:        app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReminderHandler) Register() {
	rem := h.router.Group("/reminders", h.middleware.RequireAuth(h.authService))

	rem.Get("/", h.getBuckets)
	rem.Post("/refresh", h.refresh)
	rem.Post("/:id/snooze", h.snooze)
	rem.Post("/:id/complete", h.complete)
}

func (h *ReminderHandler) getBuckets(c *fiber.Ctx) error {
	log := h.log.Function("getBuckets")

	user := middleware.GetUser(c)
	buckets, err := h.reminderController.Buckets(c.UserContext(), user)
	if err != nil {
		log.Er("failed to get reminder buckets", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get reminders",
		})
	}

	return c.JSON(buckets)
}

func (h *ReminderHandler) refresh(c *fiber.Ctx) error {
	log := h.log.Function("refresh")

	user := middleware.GetUser(c)
	active, err := h.reminderController.Refresh(c.UserContext(), user.ID)
	if err != nil {
		log.Er("failed to refresh reminders", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh reminders",
		})
	}

	return c.JSON(fiber.Map{"reminders": active})
}

func (h *ReminderHandler) snooze(c *fiber.Ctx) error {
	log := h.log.Function("snooze")

	reminderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reminder id"})
	}

	var request SnoozeRequest
	if err := c.BodyParser(&request); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	reminder, err := h.reminderController.Snooze(c.UserContext(), user, reminderID, request)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reminder not found"})
		case errors.Is(err, reminders.ErrCompleted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Reminder already completed"})
		}
		log.Er("failed to snooze reminder", err, "reminderID", reminderID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to snooze reminder",
		})
	}

	return c.JSON(fiber.Map{"reminder": reminder})
}

func (h *ReminderHandler) complete(c *fiber.Ctx) error {
	log := h.log.Function("complete")

	reminderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reminder id"})
	}

	user := middleware.GetUser(c)
	reminder, err := h.reminderController.Complete(c.UserContext(), user, reminderID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reminder not found"})
		case errors.Is(err, reminders.ErrCompleted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Reminder already completed"})
		}
		log.Er("failed to complete reminder", err, "reminderID", reminderID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to complete reminder",
		})
	}

	return c.JSON(fiber.Map{"reminder": reminder})
}
