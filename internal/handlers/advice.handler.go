package handlers

import (
	"errors"

	"agrotrack/internal/app"
	adviceController "agrotrack/internal/controllers/advice"
	"agrotrack/internal/handlers/middleware"
	"agrotrack/internal/logger"
	"agrotrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	. "agrotrack/internal/models"
)

type AdviceHandler struct {
	Handler
	adviceController adviceController.AdviceControllerInterface
	authService      *services.AuthService
}

func NewAdviceHandler(app app.App, router fiber.Router) *AdviceHandler {
	log := logger.New("handlers").File("advice_handler")
	return &AdviceHandler{
		adviceController: app.Controllers.Advice,
		authService:      app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdviceHandler) Register() {
	advice := h.router.Group("/advice", h.middleware.RequireAuth(h.authService))

	advice.Post("/care", h.getCareAdvice)
	advice.Post("/diagnose", h.diagnose)
	advice.Get("/history", h.history)
}

func (h *AdviceHandler) getCareAdvice(c *fiber.Ctx) error {
	log := h.log.Function("getCareAdvice")

	var request AdviceRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	rec, err := h.adviceController.GetAdvice(c.UserContext(), user, request)
	if err != nil {
		switch {
		case errors.Is(err, adviceController.ErrUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
		}
		log.Er("failed to generate care advice", err, "plantID", request.PlantID)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to generate advice",
		})
	}

	return c.JSON(fiber.Map{"recommendation": rec})
}

func (h *AdviceHandler) diagnose(c *fiber.Ctx) error {
	log := h.log.Function("diagnose")

	var request DiagnosisRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	rec, err := h.adviceController.Diagnose(c.UserContext(), user, request)
	if err != nil {
		switch {
		case errors.Is(err, adviceController.ErrUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
		}
		log.Er("failed to generate diagnosis", err, "plantID", request.PlantID)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to generate diagnosis",
		})
	}

	return c.JSON(fiber.Map{"recommendation": rec})
}

func (h *AdviceHandler) history(c *fiber.Ctx) error {
	log := h.log.Function("history")

	var plantID *uuid.UUID
	if raw := c.Query("plantId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plant id"})
		}
		plantID = &id
	}

	user := middleware.GetUser(c)
	recs, err := h.adviceController.History(c.UserContext(), user, plantID)
	if err != nil {
		log.Er("failed to list recommendations", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list recommendations",
		})
	}

	return c.JSON(fiber.Map{"recommendations": recs})
}
