package handlers

import (
	"errors"
	"strconv"

	"agrotrack/internal/app"
	forumController "agrotrack/internal/controllers/forum"
	"agrotrack/internal/handlers/middleware"
	"agrotrack/internal/logger"
	"agrotrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	. "agrotrack/internal/models"
)

type ForumHandler struct {
	Handler
	forumController forumController.ForumControllerInterface
	authService     *services.AuthService
}

func NewForumHandler(app app.App, router fiber.Router) *ForumHandler {
	log := logger.New("handlers").File("forum_handler")
	return &ForumHandler{
		forumController: app.Controllers.Forum,
		authService:     app.Services.Auth,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ForumHandler) Register() {
	forum := h.router.Group("/forum", h.middleware.RequireAuth(h.authService))

	forum.Get("/posts", h.listPosts)
	forum.Post("/posts", h.createPost)
	forum.Get("/posts/:id", h.getPost)
	forum.Delete("/posts/:id", h.deletePost)
	forum.Post("/posts/:id/comments", h.createComment)
	forum.Delete("/comments/:id", h.deleteComment)
}

func (h *ForumHandler) listPosts(c *fiber.Ctx) error {
	log := h.log.Function("listPosts")

	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	posts, err := h.forumController.ListPosts(c.UserContext(), c.Query("search"), c.Query("tag"), limit)
	if err != nil {
		log.Er("failed to list posts", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list posts",
		})
	}

	return c.JSON(fiber.Map{"posts": posts})
}

func (h *ForumHandler) getPost(c *fiber.Ctx) error {
	log := h.log.Function("getPost")

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	post, err := h.forumController.GetPost(c.UserContext(), postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		log.Er("failed to get post", err, "postID", postID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get post",
		})
	}

	return c.JSON(fiber.Map{"post": post})
}

func (h *ForumHandler) createPost(c *fiber.Ctx) error {
	log := h.log.Function("createPost")

	var request ForumPostRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	post, err := h.forumController.CreatePost(c.UserContext(), user, request)
	if err != nil {
		if errors.Is(err, forumController.ErrEmptyPost) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Er("failed to create post", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

func (h *ForumHandler) deletePost(c *fiber.Ctx) error {
	log := h.log.Function("deletePost")

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	user := middleware.GetUser(c)
	if err := h.forumController.DeletePost(c.UserContext(), user, postID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		case errors.Is(err, forumController.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		log.Er("failed to delete post", err, "postID", postID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete post",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ForumHandler) createComment(c *fiber.Ctx) error {
	log := h.log.Function("createComment")

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	var request ForumCommentRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user := middleware.GetUser(c)
	comment, err := h.forumController.CreateComment(c.UserContext(), user, postID, request)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		case errors.Is(err, forumController.ErrEmptyComment):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Er("failed to create comment", err, "postID", postID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

func (h *ForumHandler) deleteComment(c *fiber.Ctx) error {
	log := h.log.Function("deleteComment")

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid comment id"})
	}

	user := middleware.GetUser(c)
	if err := h.forumController.DeleteComment(c.UserContext(), user, commentID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Comment not found"})
		case errors.Is(err, forumController.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		log.Er("failed to delete comment", err, "commentID", commentID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete comment",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
