package admin

import (
	"context"
	"errors"

	"agrotrack/internal/logger"
	. "agrotrack/internal/models"
	"agrotrack/internal/repositories"

	"github.com/google/uuid"
)

// ErrSelfDeactivation prevents an admin from locking themselves out.
var ErrSelfDeactivation = errors.New("cannot deactivate own account")

type StatsResponse struct {
	Users      int64 `json:"users"`
	Plants     int64 `json:"plants"`
	CareLogs   int64 `json:"careLogs"`
	ForumPosts int64 `json:"forumPosts"`
}

type AdminControllerInterface interface {
	ListUsers(ctx context.Context) ([]UserProfile, error)
	SetUserActive(ctx context.Context, admin *User, userID uuid.UUID, active bool) (*UserProfile, error)
	RemovePost(ctx context.Context, postID uuid.UUID) error
	RemoveComment(ctx context.Context, commentID uuid.UUID) error
	Stats(ctx context.Context) (*StatsResponse, error)
}

type AdminController struct {
	userRepo    repositories.UserRepository
	plantRepo   repositories.PlantRepository
	careLogRepo repositories.CareLogRepository
	forumRepo   repositories.ForumRepository
	log         logger.Logger
}

func New(repos repositories.Repository) AdminControllerInterface {
	return &AdminController{
		userRepo:    repos.User,
		plantRepo:   repos.Plant,
		careLogRepo: repos.CareLog,
		forumRepo:   repos.Forum,
		log:         logger.New("adminController"),
	}
}

func (c *AdminController) ListUsers(ctx context.Context) ([]UserProfile, error) {
	log := c.log.TraceFromContext(ctx).Function("ListUsers")

	users, err := c.userRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}

	return profiles, nil
}

func (c *AdminController) SetUserActive(
	ctx context.Context,
	admin *User,
	userID uuid.UUID,
	active bool,
) (*UserProfile, error) {
	log := c.log.TraceFromContext(ctx).Function("SetUserActive")

	if !active && admin.ID == userID {
		return nil, ErrSelfDeactivation
	}

	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to get user", err, "userID", userID)
	}

	user.IsActive = active
	if err := c.userRepo.Update(ctx, user); err != nil {
		return nil, log.Err("failed to update user", err, "userID", userID)
	}

	profile := user.ToProfile()
	log.Info("user activation changed", "userID", userID, "active", active, "byAdminID", admin.ID)
	return &profile, nil
}

func (c *AdminController) RemovePost(ctx context.Context, postID uuid.UUID) error {
	log := c.log.TraceFromContext(ctx).Function("RemovePost")

	if _, err := c.forumRepo.GetPost(ctx, postID); err != nil {
		return log.Err("failed to get post", err, "postID", postID)
	}

	if err := c.forumRepo.DeletePost(ctx, postID); err != nil {
		return log.Err("failed to delete post", err, "postID", postID)
	}

	log.Info("post removed by moderation", "postID", postID)
	return nil
}

func (c *AdminController) RemoveComment(ctx context.Context, commentID uuid.UUID) error {
	log := c.log.TraceFromContext(ctx).Function("RemoveComment")

	if _, err := c.forumRepo.GetComment(ctx, commentID); err != nil {
		return log.Err("failed to get comment", err, "commentID", commentID)
	}

	if err := c.forumRepo.DeleteComment(ctx, commentID); err != nil {
		return log.Err("failed to delete comment", err, "commentID", commentID)
	}

	log.Info("comment removed by moderation", "commentID", commentID)
	return nil
}

func (c *AdminController) Stats(ctx context.Context) (*StatsResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Stats")

	users, err := c.userRepo.CountAll(ctx)
	if err != nil {
		return nil, log.Err("failed to count users", err)
	}

	plants, err := c.plantRepo.CountAll(ctx)
	if err != nil {
		return nil, log.Err("failed to count plants", err)
	}

	careLogs, err := c.careLogRepo.CountAll(ctx)
	if err != nil {
		return nil, log.Err("failed to count care logs", err)
	}

	posts, err := c.forumRepo.CountPosts(ctx)
	if err != nil {
		return nil, log.Err("failed to count forum posts", err)
	}

	return &StatsResponse{
		Users:      users,
		Plants:     plants,
		CareLogs:   careLogs,
		ForumPosts: posts,
	}, nil
}
