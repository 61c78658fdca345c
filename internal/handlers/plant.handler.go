package handlers

import (
	"errors"

	"agrotrack/internal/app"
	plantController "agrotrack/internal/controllers/plants"
	"agrotrack/internal/handlers/middleware"
	"agrotrack/internal/logger"
	"agrotrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	. "agrotrack/internal/models"
)

type PlantHandler struct {
	Handler
	plantController plantController.PlantControllerInterface
	authService     *services.AuthService
}

func NewPlantHandler(app app.App, router fiber.Router) *PlantHandler {
	log := logger.New("handlers").File("plant_handler")
	return &PlantHandler{
		plantController: app.Controllers.Plant,
		authService:     app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PlantHandler) Register() {
	plants := h.router.Group("/plants", h.middleware.RequireAuth(h.authService))

	plants.Get("/", h.listPlants)
	plants.Post("/", h.createPlant)
	plants.Get("/:id", h.getPlant)
	plants.Put("/:id", h.updatePlant)
	plants.Delete("/:id", h.deletePlant)
}

func (h *PlantHandler) listPlants(c *fiber.Ctx) error {
	log := h.log.Function("listPlants")

	user := middleware.GetUser(c)
	plants, err := h.plantController.List(c.UserContext(), user)
	if err != nil {
		log.Er("failed to list plants", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list plants",
		})
	}

	return c.JSON(fiber.Map{"plants": plants})
}

func (h *PlantHandler) getPlant(c *fiber.Ctx) error {
	log := h.log.Function("getPlant")

	plantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plant id"})
	}

	user := middleware.GetUser(c)
	plant, err := h.plantController.Get(c.UserContext(), user, plantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
		}
		log.Er("failed to get plant", err, "plantID", plantID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get plant",
		})
	}

	return c.JSON(fiber.Map{"plant": plant})
}

func (h *PlantHandler) createPlant(c *fiber.Ctx) error {
	log := h.log.Function("createPlant")

	var request PlantRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	plant, err := h.plantController.Create(c.UserContext(), user, request)
	if err != nil {
		if errors.Is(err, plantController.ErrInvalidPlant) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Er("failed to create plant", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create plant",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plant": plant})
}

func (h *PlantHandler) updatePlant(c *fiber.Ctx) error {
	log := h.log.Function("updatePlant")

	plantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plant id"})
	}

	var request PlantRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	plant, err := h.plantController.Update(c.UserContext(), user, plantID, request)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
		case errors.Is(err, plantController.ErrInvalidPlant):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Er("failed to update plant", err, "plantID", plantID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update plant",
		})
	}

	return c.JSON(fiber.Map{"plant": plant})
}

func (h *PlantHandler) deletePlant(c *fiber.Ctx) error {
	log := h.log.Function("deletePlant")

	plantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plant id"})
	}

	user := middleware.GetUser(c)
	if err := h.plantController.Delete(c.UserContext(), user, plantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
		}
		log.Er("failed to delete plant", err, "plantID", plantID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete plant",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
