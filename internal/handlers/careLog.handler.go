package handlers

import (
	"errors"
	"strconv"

	"agrotrack/internal/app"
	careLogController "agrotrack/internal/controllers/carelogs"
	"agrotrack/internal/handlers/middleware"
	"agrotrack/internal/logger"
	"agrotrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	. "agrotrack/internal/models"
)

type CareLogHandler struct {
	Handler
	careLogController careLogController.CareLogControllerInterface
	authService       *services.AuthService
}

func NewCareLogHandler(app app.App, router fiber.Router) *CareLogHandler {
	log := logger.New("handlers").File("care_log_handler")
	return &CareLogHandler{
		careLogController: app.Controllers.CareLog,
		authService:       app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CareLogHandler) Register() {
	logs := h.router.Group("/care-logs", h.middleware.RequireAuth(h.authService))

	logs.Get("/", h.listCareLogs)
	logs.Post("/", h.createCareLog)

	plants := h.router.Group("/plants", h.middleware.RequireAuth(h.authService))
	plants.Get("/:id/care-logs", h.listPlantCareLogs)
}

func (h *CareLogHandler) createCareLog(c *fiber.Ctx) error {
	log := h.log.Function("createCareLog")

	var request CareLogRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	careLog, err := h.careLogController.Create(c.UserContext(), user, request)
	if err != nil {
		switch {
		case errors.Is(err, careLogController.ErrInvalidCareKind):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
		}
		log.Er("failed to create care log", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to log care",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"careLog": careLog})
}

func (h *CareLogHandler) listCareLogs(c *fiber.Ctx) error {
	log := h.log.Function("listCareLogs")

	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	user := middleware.GetUser(c)
	logs, err := h.careLogController.ListByUser(c.UserContext(), user, limit)
	if err != nil {
		log.Er("failed to list care logs", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list care logs",
		})
	}

	return c.JSON(fiber.Map{"careLogs": logs})
}

func (h *CareLogHandler) listPlantCareLogs(c *fiber.Ctx) error {
	log := h.log.Function("listPlantCareLogs")

	plantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plant id"})
	}

	user := middleware.GetUser(c)
	logs, err := h.careLogController.ListByPlant(c.UserContext(), user, plantID)
	if err != nil {
		log.Er("failed to list plant care logs", err, "plantID", plantID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list care logs",
		})
	}

	return c.JSON(fiber.Map{"careLogs": logs})
}
