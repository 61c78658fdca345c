package handlers

import (
	"agrotrack/internal/app"
	userController "agrotrack/internal/controllers/users"
	"agrotrack/internal/handlers/middleware"
	"agrotrack/internal/logger"
	"agrotrack/internal/services"

	"github.com/gofiber/fiber/v2"

	. "agrotrack/internal/models"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
	authService    *services.AuthService
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		userController: app.Controllers.User,
		authService:    app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users", h.middleware.RequireAuth(h.authService))

	users.Get("/me", h.getCurrentUser)
	users.Get("/me/preferences", h.getPreferences)
	users.Patch("/me/preferences", h.updatePreferences)
}

func (h *UserHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	return c.JSON(fiber.Map{
		"user": h.userController.GetProfile(c.UserContext(), user),
	})
}

func (h *UserHandler) getPreferences(c *fiber.Ctx) error {
	log := h.log.Function("getPreferences")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	prefs, err := h.userController.GetPreferences(c.UserContext(), user)
	if err != nil {
		log.Er("failed to get preferences", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get preferences",
		})
	}

	return c.JSON(fiber.Map{"preferences": prefs})
}

func (h *UserHandler) updatePreferences(c *fiber.Ctx) error {
	log := h.log.Function("updatePreferences")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var request ReminderPreferencesRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	prefs, err := h.userController.UpdatePreferences(c.UserContext(), user, request)
	if err != nil {
		log.Er("failed to update preferences", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update preferences",
		})
	}

	return c.JSON(fiber.Map{"preferences": prefs})
}
