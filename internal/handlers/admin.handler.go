package handlers

import (
	"errors"

	"agrotrack/internal/app"
	adminController "agrotrack/internal/controllers/admin"
	"agrotrack/internal/handlers/middleware"
	"agrotrack/internal/logger"
	"agrotrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
	authService     *services.AuthService
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.Controllers.Admin,
		authService:     app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group(
		"/admin",
		h.middleware.RequireAuth(h.authService),
		h.middleware.RequireAdmin(),
	)

	admin.Get("/users", h.listUsers)
	admin.Post("/users/:id/activate", h.activateUser)
	admin.Post("/users/:id/deactivate", h.deactivateUser)
	admin.Delete("/posts/:id", h.removePost)
	admin.Delete("/comments/:id", h.removeComment)
	admin.Get("/stats", h.getStats)
}

func (h *AdminHandler) listUsers(c *fiber.Ctx) error {
	log := h.log.Function("listUsers")

	users, err := h.adminController.ListUsers(c.UserContext())
	if err != nil {
		log.Er("failed to list users", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}

	return c.JSON(fiber.Map{"users": users})
}

func (h *AdminHandler) activateUser(c *fiber.Ctx) error {
	return h.setUserActive(c, true)
}

func (h *AdminHandler) deactivateUser(c *fiber.Ctx) error {
	return h.setUserActive(c, false)
}

func (h *AdminHandler) setUserActive(c *fiber.Ctx, active bool) error {
	log := h.log.Function("setUserActive")

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	admin := middleware.GetUser(c)
	profile, err := h.adminController.SetUserActive(c.UserContext(), admin, userID, active)
	if err != nil {
		switch {
		case errors.Is(err, adminController.ErrSelfDeactivation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Er("failed to update user activation", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user",
		})
	}

	return c.JSON(fiber.Map{"user": profile})
}

func (h *AdminHandler) removePost(c *fiber.Ctx) error {
	log := h.log.Function("removePost")

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	if err := h.adminController.RemovePost(c.UserContext(), postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		log.Er("failed to remove post", err, "postID", postID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove post",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) removeComment(c *fiber.Ctx) error {
	log := h.log.Function("removeComment")

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid comment id"})
	}

	if err := h.adminController.RemoveComment(c.UserContext(), commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Comment not found"})
		}
		log.Er("failed to remove comment", err, "commentID", commentID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove comment",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) getStats(c *fiber.Ctx) error {
	log := h.log.Function("getStats")

	stats, err := h.adminController.Stats(c.UserContext())
	if err != nil {
		log.Er("failed to get stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get stats",
		})
	}

	return c.JSON(stats)
}
